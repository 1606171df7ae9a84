package contracts

import (
	"caresync-service/internal/app/models"
	"caresync-service/internal/pkg/dto/requests"
	"caresync-service/internal/pkg/dto/responses"
	"context"
)

type BillRepository interface {
	Insert(ctx context.Context, bill *models.Bill) (string, error)
	Update(ctx context.Context, bill *models.Bill) error
	FindByID(ctx context.Context, billID string) (*models.Bill, error)
	FindByNumber(ctx context.Context, billNumber string) (*models.Bill, error)
	FindByPatient(ctx context.Context, patientID string) ([]models.Bill, error)
}

type BillingUsecase interface {
	CreateBill(ctx context.Context, request *requests.CreateBill) (*responses.Bill, error)
	GetBillByID(ctx context.Context, billID string) (*responses.Bill, error)
	GetBillByNumber(ctx context.Context, billNumber string) (*responses.Bill, error)
	ListBillsByPatient(ctx context.Context, patientID string) ([]responses.Bill, error)
	AddBillItem(ctx context.Context, billID string, request *requests.BillItemPayload) (*responses.Bill, error)
	RemoveBillItem(ctx context.Context, billID, itemID string) (*responses.Bill, error)
	ApplyDiscount(ctx context.Context, billID string, request *requests.ApplyDiscount) (*responses.Bill, error)
	CancelBill(ctx context.Context, billID string) (*responses.Bill, error)
}
