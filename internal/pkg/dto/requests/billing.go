package requests

import "caresync-service/internal/pkg/utils"

type BillItemPayload struct {
	ItemType        string  `json:"item_type" validate:"required,oneof=CONSULTATION PROCEDURE MEDICINE LAB_TEST ROOM_CHARGE NURSING_CHARGE EQUIPMENT OTHER"`
	Description     string  `json:"description" validate:"required,max=500"`
	Quantity        int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice       float64 `json:"unit_price" validate:"gte=0"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=100"`
	TaxPercent      float64 `json:"tax_percent" validate:"gte=0,lte=100"`
}

func (r *BillItemPayload) Validate() error {
	return utils.ValidateStruct(r)
}

type CreateBill struct {
	PatientID     string            `json:"patient_id" validate:"required"`
	AppointmentID string            `json:"appointment_id" validate:"omitempty"`
	Items         []BillItemPayload `json:"items" validate:"required,min=1,dive"`
	DueDate       string            `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Notes         string            `json:"notes" validate:"omitempty,max=2000"`
}

func (r *CreateBill) Validate() error {
	return utils.ValidateStruct(r)
}

type ApplyDiscount struct {
	Amount float64 `json:"amount" validate:"gte=0"`
}

func (r *ApplyDiscount) Validate() error {
	return utils.ValidateStruct(r)
}
