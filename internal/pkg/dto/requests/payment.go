package requests

import "caresync-service/internal/pkg/utils"

type RecordPayment struct {
	BillID          string  `json:"bill_id" validate:"required"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	PaymentMode     string  `json:"payment_mode" validate:"required,oneof=CASH CARD UPI NET_BANKING CHEQUE INSURANCE OTHER"`
	ReferenceNumber string  `json:"reference_number" validate:"omitempty,max=100"`
	CardLast4       string  `json:"card_last4" validate:"omitempty,len=4,numeric"`
	UpiID           string  `json:"upi_id" validate:"omitempty,max=100"`
	BankName        string  `json:"bank_name" validate:"omitempty,max=100"`
	ChequeNumber    string  `json:"cheque_number" validate:"omitempty,max=50"`
	ReceivedBy      string  `json:"received_by" validate:"omitempty,max=100"`
	Notes           string  `json:"notes" validate:"omitempty,max=2000"`
}

func (r *RecordPayment) Validate() error {
	return utils.ValidateStruct(r)
}
