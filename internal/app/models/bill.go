package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BillPaymentStatus string

const (
	BillUnpaid    BillPaymentStatus = "UNPAID"
	BillPartial   BillPaymentStatus = "PARTIAL"
	BillPaid      BillPaymentStatus = "PAID"
	BillCancelled BillPaymentStatus = "CANCELLED"
)

type BillItemType string

const (
	ItemConsultation  BillItemType = "CONSULTATION"
	ItemProcedure     BillItemType = "PROCEDURE"
	ItemMedicine      BillItemType = "MEDICINE"
	ItemLabTest       BillItemType = "LAB_TEST"
	ItemRoomCharge    BillItemType = "ROOM_CHARGE"
	ItemNursingCharge BillItemType = "NURSING_CHARGE"
	ItemEquipment     BillItemType = "EQUIPMENT"
	ItemOther         BillItemType = "OTHER"
)

type BillItem struct {
	ItemID          string       `bson:"item_id" json:"item_id"`
	ItemType        BillItemType `bson:"item_type" json:"item_type"`
	Description     string       `bson:"description" json:"description"`
	Quantity        int          `bson:"quantity" json:"quantity"`
	UnitPrice       float64      `bson:"unit_price" json:"unit_price"`
	DiscountPercent float64      `bson:"discount_percent" json:"discount_percent"`
	TaxPercent      float64      `bson:"tax_percent" json:"tax_percent"`
	TotalPrice      float64      `bson:"total_price" json:"total_price"`
	DiscountValue   float64      `bson:"discount_value" json:"discount_value"`
	TaxValue        float64      `bson:"tax_value" json:"tax_value"`
	NetPrice        float64      `bson:"net_price" json:"net_price"`
}

// ComputeDerived fills TotalPrice, DiscountValue, TaxValue and NetPrice from
// the quantity, unit price and percentages. All intermediate values round to
// 2 decimals, half up.
func (i *BillItem) ComputeDerived() {
	unitPrice := decimal.NewFromFloat(i.UnitPrice)
	total := unitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))).Round(2)
	discount := total.Mul(decimal.NewFromFloat(i.DiscountPercent)).Div(decimal.NewFromInt(100)).Round(2)
	tax := total.Sub(discount).Mul(decimal.NewFromFloat(i.TaxPercent)).Div(decimal.NewFromInt(100)).Round(2)
	net := total.Sub(discount).Add(tax)

	i.TotalPrice = total.InexactFloat64()
	i.DiscountValue = discount.InexactFloat64()
	i.TaxValue = tax.InexactFloat64()
	i.NetPrice = net.InexactFloat64()
}

type Bill struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BillNumber     string             `bson:"bill_number" json:"bill_number"`
	PatientID      string             `bson:"patient_id" json:"patient_id"`
	AppointmentID  string             `bson:"appointment_id,omitempty" json:"appointment_id,omitempty"`
	Items          []BillItem         `bson:"items" json:"items"`
	TotalAmount    float64            `bson:"total_amount" json:"total_amount"`
	DiscountAmount float64            `bson:"discount_amount" json:"discount_amount"`
	TaxAmount      float64            `bson:"tax_amount" json:"tax_amount"`
	NetAmount      float64            `bson:"net_amount" json:"net_amount"`
	PaidAmount     float64            `bson:"paid_amount" json:"paid_amount"`
	BalanceAmount  float64            `bson:"balance_amount" json:"balance_amount"`
	PaymentStatus  BillPaymentStatus  `bson:"payment_status" json:"payment_status"`
	BillDate       time.Time          `bson:"bill_date" json:"bill_date"`
	DueDate        *time.Time         `bson:"due_date,omitempty" json:"due_date,omitempty"`
	Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// Recalculate rebuilds every derived amount from the items and recorded
// payments. Running it twice in a row yields the same result.
func (b *Bill) Recalculate() {
	total := decimal.Zero
	tax := decimal.Zero
	net := decimal.Zero
	for idx := range b.Items {
		b.Items[idx].ComputeDerived()
		total = total.Add(decimal.NewFromFloat(b.Items[idx].TotalPrice))
		tax = tax.Add(decimal.NewFromFloat(b.Items[idx].TaxValue))
		net = net.Add(decimal.NewFromFloat(b.Items[idx].NetPrice))
	}
	net = net.Sub(decimal.NewFromFloat(b.DiscountAmount)).Round(2)
	paid := decimal.NewFromFloat(b.PaidAmount).Round(2)
	balance := net.Sub(paid)

	b.TotalAmount = total.Round(2).InexactFloat64()
	b.TaxAmount = tax.Round(2).InexactFloat64()
	b.NetAmount = net.InexactFloat64()
	b.PaidAmount = paid.InexactFloat64()
	b.BalanceAmount = balance.InexactFloat64()

	if b.PaymentStatus == BillCancelled {
		return
	}
	switch {
	case balance.IsZero() && paid.GreaterThan(decimal.Zero):
		b.PaymentStatus = BillPaid
	case paid.GreaterThan(decimal.Zero):
		b.PaymentStatus = BillPartial
	default:
		b.PaymentStatus = BillUnpaid
	}
}
