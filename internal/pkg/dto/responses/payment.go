package responses

import (
	"caresync-service/internal/app/models"
	"time"
)

type PaymentTransaction struct {
	ID                string    `json:"id"`
	BillID            string    `json:"bill_id"`
	TransactionNumber string    `json:"transaction_number"`
	Amount            float64   `json:"amount"`
	PaymentMode       string    `json:"payment_mode"`
	Status            string    `json:"status"`
	ReferenceNumber   string    `json:"reference_number,omitempty"`
	CardLast4         string    `json:"card_last4,omitempty"`
	UpiID             string    `json:"upi_id,omitempty"`
	BankName          string    `json:"bank_name,omitempty"`
	ChequeNumber      string    `json:"cheque_number,omitempty"`
	ReceivedBy        string    `json:"received_by,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// PaymentResult pairs the recorded transaction with the bill it settled
// against, so clients see the updated balance in one round trip.
type PaymentResult struct {
	Transaction PaymentTransaction `json:"transaction"`
	Bill        Bill               `json:"bill"`
}

func NewPaymentTransactionResponse(transaction *models.PaymentTransaction) *PaymentTransaction {
	return &PaymentTransaction{
		ID:                transaction.ID.Hex(),
		BillID:            transaction.BillID,
		TransactionNumber: transaction.TransactionNumber,
		Amount:            transaction.Amount,
		PaymentMode:       string(transaction.PaymentMode),
		Status:            string(transaction.Status),
		ReferenceNumber:   transaction.ReferenceNumber,
		CardLast4:         transaction.CardLast4,
		UpiID:             transaction.UpiID,
		BankName:          transaction.BankName,
		ChequeNumber:      transaction.ChequeNumber,
		ReceivedBy:        transaction.ReceivedBy,
		Notes:             transaction.Notes,
		CreatedAt:         transaction.CreatedAt,
	}
}

func NewPaymentTransactionListResponse(transactions []models.PaymentTransaction) []PaymentTransaction {
	result := make([]PaymentTransaction, 0, len(transactions))
	for idx := range transactions {
		result = append(result, *NewPaymentTransactionResponse(&transactions[idx]))
	}
	return result
}
