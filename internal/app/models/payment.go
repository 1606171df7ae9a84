package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentMode string

const (
	PaymentModeCash       PaymentMode = "CASH"
	PaymentModeCard       PaymentMode = "CARD"
	PaymentModeUPI        PaymentMode = "UPI"
	PaymentModeNetBanking PaymentMode = "NET_BANKING"
	PaymentModeCheque     PaymentMode = "CHEQUE"
	PaymentModeInsurance  PaymentMode = "INSURANCE"
	PaymentModeOther      PaymentMode = "OTHER"
)

type PaymentTransactionStatus string

const (
	PaymentSuccess PaymentTransactionStatus = "SUCCESS"
)

// PaymentTransaction is one settled payment against a bill. The collection is
// append only, transactions are never updated or deleted.
type PaymentTransaction struct {
	ID                primitive.ObjectID       `bson:"_id,omitempty" json:"id"`
	BillID            string                   `bson:"bill_id" json:"bill_id"`
	TransactionNumber string                   `bson:"transaction_number" json:"transaction_number"`
	Amount            float64                  `bson:"amount" json:"amount"`
	PaymentMode       PaymentMode              `bson:"payment_mode" json:"payment_mode"`
	Status            PaymentTransactionStatus `bson:"status" json:"status"`
	ReferenceNumber   string                   `bson:"reference_number,omitempty" json:"reference_number,omitempty"`
	CardLast4         string                   `bson:"card_last4,omitempty" json:"card_last4,omitempty"`
	UpiID             string                   `bson:"upi_id,omitempty" json:"upi_id,omitempty"`
	BankName          string                   `bson:"bank_name,omitempty" json:"bank_name,omitempty"`
	ChequeNumber      string                   `bson:"cheque_number,omitempty" json:"cheque_number,omitempty"`
	ReceivedBy        string                   `bson:"received_by,omitempty" json:"received_by,omitempty"`
	Notes             string                   `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt         time.Time                `bson:"created_at" json:"created_at"`
}
