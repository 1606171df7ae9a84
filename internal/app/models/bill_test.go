package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBillItemComputeDerived(t *testing.T) {
	item := BillItem{
		ItemType:        ItemConsultation,
		Quantity:        2,
		UnitPrice:       100,
		DiscountPercent: 10,
		TaxPercent:      5,
	}
	item.ComputeDerived()

	assert.Equal(t, 200.0, item.TotalPrice)
	assert.Equal(t, 20.0, item.DiscountValue)
	assert.Equal(t, 9.0, item.TaxValue)
	assert.Equal(t, 189.0, item.NetPrice)
}

func TestBillItemComputeDerivedRoundsHalfUp(t *testing.T) {
	item := BillItem{
		ItemType:   ItemMedicine,
		Quantity:   3,
		UnitPrice:  33.335,
		TaxPercent: 0,
	}
	item.ComputeDerived()

	// 33.335 * 3 = 100.005 rounds up to 100.01
	assert.Equal(t, 100.01, item.TotalPrice)
	assert.Equal(t, 100.01, item.NetPrice)
}

func TestBillRecalculateAggregatesItems(t *testing.T) {
	bill := Bill{
		Items: []BillItem{
			{ItemType: ItemConsultation, Quantity: 1, UnitPrice: 500},
			{ItemType: ItemLabTest, Quantity: 2, UnitPrice: 250, DiscountPercent: 10, TaxPercent: 18},
		},
	}
	bill.Recalculate()

	assert.Equal(t, 1000.0, bill.TotalAmount)
	assert.Equal(t, 81.0, bill.TaxAmount)
	assert.Equal(t, 1031.0, bill.NetAmount)
	assert.Equal(t, 1031.0, bill.BalanceAmount)
	assert.Equal(t, BillUnpaid, bill.PaymentStatus)
}

func TestBillRecalculateIsIdempotent(t *testing.T) {
	bill := Bill{
		Items: []BillItem{
			{ItemType: ItemProcedure, Quantity: 3, UnitPrice: 199.99, DiscountPercent: 7.5, TaxPercent: 12},
		},
		DiscountAmount: 25,
		PaidAmount:     100,
	}
	bill.Recalculate()
	first := bill

	bill.Recalculate()
	assert.Equal(t, first.TotalAmount, bill.TotalAmount)
	assert.Equal(t, first.TaxAmount, bill.TaxAmount)
	assert.Equal(t, first.NetAmount, bill.NetAmount)
	assert.Equal(t, first.BalanceAmount, bill.BalanceAmount)
	assert.Equal(t, first.PaymentStatus, bill.PaymentStatus)
}

func TestBillRecalculateStatusDerivation(t *testing.T) {
	bill := Bill{
		Items: []BillItem{{ItemType: ItemConsultation, Quantity: 1, UnitPrice: 500}},
	}

	bill.Recalculate()
	assert.Equal(t, BillUnpaid, bill.PaymentStatus)

	bill.PaidAmount = 200
	bill.Recalculate()
	assert.Equal(t, BillPartial, bill.PaymentStatus)
	assert.Equal(t, 300.0, bill.BalanceAmount)

	bill.PaidAmount = 500
	bill.Recalculate()
	assert.Equal(t, BillPaid, bill.PaymentStatus)
	assert.Equal(t, 0.0, bill.BalanceAmount)
}

func TestBillRecalculateCancelledIsSticky(t *testing.T) {
	bill := Bill{
		Items:         []BillItem{{ItemType: ItemOther, Quantity: 1, UnitPrice: 100}},
		PaymentStatus: BillCancelled,
	}
	bill.Recalculate()
	assert.Equal(t, BillCancelled, bill.PaymentStatus)
}

func TestActiveAppointmentStatusesExcludeCancelled(t *testing.T) {
	assert.NotContains(t, ActiveAppointmentStatuses(), AppointmentCancelled)
	assert.Contains(t, ActiveAppointmentStatuses(), AppointmentScheduled)
}
