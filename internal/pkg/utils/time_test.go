package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	minutes, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)

	_, err = ParseClock("9:30 AM")
	assert.Error(t, err)

	_, err = ParseClock("25:00")
	assert.Error(t, err)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:30", FormatClock(570))
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "23:59", FormatClock(1439))
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2026-09-07")
	require.NoError(t, err)
	assert.Equal(t, 2026, date.Year())
	assert.Equal(t, time.September, date.Month())
	assert.Equal(t, 7, date.Day())

	_, err = ParseDate("07-09-2026")
	assert.Error(t, err)
}

func TestSameDate(t *testing.T) {
	a := time.Date(2026, 9, 7, 0, 0, 0, 0, time.Local)
	b := time.Date(2026, 9, 7, 23, 59, 0, 0, time.Local)
	c := time.Date(2026, 9, 8, 0, 0, 0, 0, time.Local)

	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(a, c))
}

func TestMinutesOfDay(t *testing.T) {
	at := time.Date(2026, 9, 7, 10, 5, 0, 0, time.Local)
	assert.Equal(t, 605, MinutesOfDay(at))
}

func TestGenerateNumbers(t *testing.T) {
	now := time.Date(2026, 9, 7, 10, 5, 42, 0, time.Local)

	appointmentNumber := GenerateAppointmentNumber(now)
	assert.Regexp(t, `^APT-20260907100542-\d{4}$`, appointmentNumber)

	billNumber := GenerateBillNumber(now)
	assert.Regexp(t, `^BILL-20260907100542-\d{4}$`, billNumber)

	transactionNumber := GenerateTransactionNumber(now)
	assert.Regexp(t, `^TXN-20260907100542-\d{4}$`, transactionNumber)
}
