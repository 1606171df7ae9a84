package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Schedule-related messages
	CreateScheduleSuccessMessage = "doctor schedule created successfully"
	UpdateScheduleSuccessMessage = "doctor schedule updated successfully"
	GetSchedulesSuccessMessage   = "get doctor schedules successfully"
	GetSlotsSuccessMessage       = "get available slots successfully"

	// Appointment-related messages
	BookAppointmentSuccessMessage       = "appointment booked successfully"
	GetAppointmentSuccessMessage        = "get appointment successfully"
	GetAppointmentsSuccessMessage       = "get appointments successfully"
	CompleteAppointmentSuccessMessage   = "appointment completed successfully"
	CancelAppointmentSuccessMessage     = "appointment cancelled successfully"
	NoShowAppointmentSuccessMessage     = "appointment marked as no-show successfully"
	RescheduleAppointmentSuccessMessage = "appointment rescheduled successfully"
	DeleteAppointmentSuccessMessage     = "appointment deleted successfully"

	// Billing-related messages
	CreateBillSuccessMessage     = "bill created successfully"
	GetBillSuccessMessage        = "get bill successfully"
	GetBillsSuccessMessage       = "get bills successfully"
	AddBillItemSuccessMessage    = "bill item added successfully"
	RemoveBillItemSuccessMessage = "bill item removed successfully"
	ApplyDiscountSuccessMessage  = "discount applied successfully"
	CancelBillSuccessMessage     = "bill cancelled successfully"

	// Payment-related messages
	RecordPaymentSuccessMessage  = "payment recorded successfully"
	GetPaymentsSuccessMessage    = "get payment transactions successfully"
	GetTransactionSuccessMessage = "get payment transaction successfully"
)
