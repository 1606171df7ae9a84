package utils

import (
	"caresync-service/internal/pkg/constvars"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

func GenerateStaffJWT(staffID, secret string, jwtExpiryTime int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   staffID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(jwtExpiryTime) * time.Hour)),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GenerateNumericSuffix returns a random string of decimal digits.
func GenerateNumericSuffix(length int) (string, error) {
	const digits = "0123456789"
	max := big.NewInt(int64(len(digits)))

	suffix := make([]byte, length)
	for i := range suffix {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		suffix[i] = digits[num.Int64()]
	}

	return string(suffix), nil
}

func GenerateAppointmentNumber(now time.Time) string {
	suffix, err := GenerateNumericSuffix(4)
	if err != nil {
		suffix = "0000"
	}
	return fmt.Sprintf("APT-%s-%s", now.Format("20060102150405"), suffix)
}

func GenerateBillNumber(now time.Time) string {
	suffix, err := GenerateNumericSuffix(4)
	if err != nil {
		suffix = "0000"
	}
	return fmt.Sprintf("BILL-%s-%s", now.Format("20060102150405"), suffix)
}

func GenerateTransactionNumber(now time.Time) string {
	suffix, err := GenerateNumericSuffix(4)
	if err != nil {
		suffix = "0000"
	}
	return fmt.Sprintf("TXN-%s-%s", now.Format("20060102150405"), suffix)
}
