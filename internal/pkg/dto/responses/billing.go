package responses

import (
	"caresync-service/internal/app/models"
	"time"
)

type BillItem struct {
	ItemID          string  `json:"item_id"`
	ItemType        string  `json:"item_type"`
	Description     string  `json:"description"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountPercent float64 `json:"discount_percent"`
	TaxPercent      float64 `json:"tax_percent"`
	TotalPrice      float64 `json:"total_price"`
	DiscountValue   float64 `json:"discount_value"`
	TaxValue        float64 `json:"tax_value"`
	NetPrice        float64 `json:"net_price"`
}

type Bill struct {
	ID             string     `json:"id"`
	BillNumber     string     `json:"bill_number"`
	PatientID      string     `json:"patient_id"`
	AppointmentID  string     `json:"appointment_id,omitempty"`
	Items          []BillItem `json:"items"`
	TotalAmount    float64    `json:"total_amount"`
	DiscountAmount float64    `json:"discount_amount"`
	TaxAmount      float64    `json:"tax_amount"`
	NetAmount      float64    `json:"net_amount"`
	PaidAmount     float64    `json:"paid_amount"`
	BalanceAmount  float64    `json:"balance_amount"`
	PaymentStatus  string     `json:"payment_status"`
	BillDate       time.Time  `json:"bill_date"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

func NewBillResponse(bill *models.Bill) *Bill {
	items := make([]BillItem, 0, len(bill.Items))
	for _, item := range bill.Items {
		items = append(items, BillItem{
			ItemID:          item.ItemID,
			ItemType:        string(item.ItemType),
			Description:     item.Description,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			TaxPercent:      item.TaxPercent,
			TotalPrice:      item.TotalPrice,
			DiscountValue:   item.DiscountValue,
			TaxValue:        item.TaxValue,
			NetPrice:        item.NetPrice,
		})
	}
	return &Bill{
		ID:             bill.ID.Hex(),
		BillNumber:     bill.BillNumber,
		PatientID:      bill.PatientID,
		AppointmentID:  bill.AppointmentID,
		Items:          items,
		TotalAmount:    bill.TotalAmount,
		DiscountAmount: bill.DiscountAmount,
		TaxAmount:      bill.TaxAmount,
		NetAmount:      bill.NetAmount,
		PaidAmount:     bill.PaidAmount,
		BalanceAmount:  bill.BalanceAmount,
		PaymentStatus:  string(bill.PaymentStatus),
		BillDate:       bill.BillDate,
		DueDate:        bill.DueDate,
		Notes:          bill.Notes,
	}
}

func NewBillListResponse(bills []models.Bill) []Bill {
	result := make([]Bill, 0, len(bills))
	for idx := range bills {
		result = append(result, *NewBillResponse(&bills[idx]))
	}
	return result
}
