package contracts

import (
	"caresync-service/internal/app/models"
	"caresync-service/internal/pkg/dto/requests"
	"caresync-service/internal/pkg/dto/responses"
	"context"
)

type PaymentRepository interface {
	Insert(ctx context.Context, transaction *models.PaymentTransaction) (string, error)
	FindByBill(ctx context.Context, billID string) ([]models.PaymentTransaction, error)
	FindByTransactionNumber(ctx context.Context, transactionNumber string) (*models.PaymentTransaction, error)
}

type PaymentUsecase interface {
	RecordPayment(ctx context.Context, request *requests.RecordPayment) (*responses.PaymentResult, error)
	ListPaymentsByBill(ctx context.Context, billID string) ([]responses.PaymentTransaction, error)
	GetPaymentByTransactionNumber(ctx context.Context, transactionNumber string) (*responses.PaymentTransaction, error)
}
