package contracts

import (
	"caresync-service/internal/app/models"
	"context"
)

// Notifier publishes domain events to interested parties. Callers must treat
// a returned error as non-fatal, the triggering operation is already durable.
type Notifier interface {
	NotifyAppointmentBooked(ctx context.Context, appointment *models.Appointment) error
	NotifyBillCreated(ctx context.Context, bill *models.Bill) error
	NotifyPaymentReceived(ctx context.Context, transaction *models.PaymentTransaction) error
}
