package billing

import (
	"caresync-service/internal/app/config"
	"caresync-service/internal/app/contracts"
	"caresync-service/internal/app/models"
	"caresync-service/internal/pkg/constvars"
	"caresync-service/internal/pkg/dto/requests"
	"caresync-service/internal/pkg/dto/responses"
	"caresync-service/internal/pkg/exceptions"
	"caresync-service/internal/pkg/utils"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type billingUsecase struct {
	BillRepository        contracts.BillRepository
	AppointmentRepository contracts.AppointmentRepository
	PatientDirectory      contracts.PatientDirectory
	Notifier              contracts.Notifier
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	Now                   func() time.Time
}

var (
	billingUsecaseInstance contracts.BillingUsecase
	onceBillingUsecase     sync.Once
)

func NewBillingUsecase(
	billRepository contracts.BillRepository,
	appointmentRepository contracts.AppointmentRepository,
	patientDirectory contracts.PatientDirectory,
	notifier contracts.Notifier,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.BillingUsecase {
	onceBillingUsecase.Do(func() {
		instance := &billingUsecase{
			BillRepository:        billRepository,
			AppointmentRepository: appointmentRepository,
			PatientDirectory:      patientDirectory,
			Notifier:              notifier,
			InternalConfig:        internalConfig,
			Log:                   logger,
			Now:                   time.Now,
		}
		billingUsecaseInstance = instance
	})
	return billingUsecaseInstance
}

func buildBillItem(payload *requests.BillItemPayload) models.BillItem {
	item := models.BillItem{
		ItemID:          uuid.NewString(),
		ItemType:        models.BillItemType(payload.ItemType),
		Description:     payload.Description,
		Quantity:        payload.Quantity,
		UnitPrice:       payload.UnitPrice,
		DiscountPercent: payload.DiscountPercent,
		TaxPercent:      payload.TaxPercent,
	}
	item.ComputeDerived()
	return item
}

func (uc *billingUsecase) CreateBill(ctx context.Context, request *requests.CreateBill) (*responses.Bill, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("billingUsecase.CreateBill called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		zap.Int("item_count", len(request.Items)),
	)

	exists, err := uc.PatientDirectory.PatientExists(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, exceptions.ErrPatientNotFound(nil)
	}

	if request.AppointmentID != "" {
		appointment, err := uc.AppointmentRepository.FindByID(ctx, request.AppointmentID)
		if err != nil {
			return nil, err
		}
		if appointment == nil {
			return nil, exceptions.ErrAppointmentNotFound(nil)
		}
	}

	if len(request.Items) == 0 {
		return nil, exceptions.ErrBillMustHaveItems(nil)
	}

	items := make([]models.BillItem, 0, len(request.Items))
	for idx := range request.Items {
		items = append(items, buildBillItem(&request.Items[idx]))
	}

	now := uc.Now()
	bill := &models.Bill{
		BillNumber:    utils.GenerateBillNumber(now),
		PatientID:     request.PatientID,
		AppointmentID: request.AppointmentID,
		Items:         items,
		PaymentStatus: models.BillUnpaid,
		BillDate:      now,
		Notes:         request.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if request.DueDate != "" {
		dueDate, err := utils.ParseDate(request.DueDate)
		if err != nil {
			return nil, exceptions.ErrCannotParseDate(err)
		}
		bill.DueDate = &dueDate
	} else {
		dueDate := now.AddDate(0, 0, uc.InternalConfig.App.BillDueInDays)
		bill.DueDate = &dueDate
	}

	bill.Recalculate()

	billID, err := uc.BillRepository.Insert(ctx, bill)
	if err != nil {
		return nil, err
	}

	created, err := uc.BillRepository.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, exceptions.ErrBillNotFound(nil)
	}

	if err := uc.Notifier.NotifyBillCreated(ctx, created); err != nil {
		uc.Log.Warn("billingUsecase.CreateBill notification failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBillIDKey, billID),
			zap.Error(err),
		)
	}

	uc.Log.Info("billingUsecase.CreateBill succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBillIDKey, billID),
		zap.String("bill_number", created.BillNumber),
		zap.Float64("net_amount", created.NetAmount),
	)
	return responses.NewBillResponse(created), nil
}

func (uc *billingUsecase) GetBillByID(ctx context.Context, billID string) (*responses.Bill, error) {
	bill, err := uc.BillRepository.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, exceptions.ErrBillNotFound(nil)
	}
	return responses.NewBillResponse(bill), nil
}

func (uc *billingUsecase) GetBillByNumber(ctx context.Context, billNumber string) (*responses.Bill, error) {
	bill, err := uc.BillRepository.FindByNumber(ctx, billNumber)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, exceptions.ErrBillNotFound(nil)
	}
	return responses.NewBillResponse(bill), nil
}

func (uc *billingUsecase) ListBillsByPatient(ctx context.Context, patientID string) ([]responses.Bill, error) {
	exists, err := uc.PatientDirectory.PatientExists(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, exceptions.ErrPatientNotFound(nil)
	}

	bills, err := uc.BillRepository.FindByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return responses.NewBillListResponse(bills), nil
}

// loadModifiableBill fetches the bill and rejects mutation once money has
// moved or the bill has reached a terminal payment status.
func (uc *billingUsecase) loadModifiableBill(ctx context.Context, billID string) (*models.Bill, error) {
	bill, err := uc.BillRepository.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, exceptions.ErrBillNotFound(nil)
	}
	if bill.PaymentStatus == models.BillCancelled {
		return nil, exceptions.ErrBillCancelled(nil)
	}
	if bill.PaymentStatus == models.BillPaid {
		return nil, exceptions.ErrBillAlreadyPaid(nil)
	}
	if bill.PaidAmount > 0 {
		return nil, exceptions.ErrBillHasPayments(nil)
	}
	return bill, nil
}

func (uc *billingUsecase) AddBillItem(ctx context.Context, billID string, request *requests.BillItemPayload) (*responses.Bill, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("billingUsecase.AddBillItem called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBillIDKey, billID),
		zap.String("item_type", request.ItemType),
	)

	bill, err := uc.loadModifiableBill(ctx, billID)
	if err != nil {
		return nil, err
	}

	bill.Items = append(bill.Items, buildBillItem(request))
	bill.UpdatedAt = uc.Now()
	bill.Recalculate()

	if err := uc.BillRepository.Update(ctx, bill); err != nil {
		return nil, err
	}
	return responses.NewBillResponse(bill), nil
}

func (uc *billingUsecase) RemoveBillItem(ctx context.Context, billID, itemID string) (*responses.Bill, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("billingUsecase.RemoveBillItem called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBillIDKey, billID),
		zap.String("item_id", itemID),
	)

	bill, err := uc.loadModifiableBill(ctx, billID)
	if err != nil {
		return nil, err
	}

	if len(bill.Items) <= 1 {
		return nil, exceptions.ErrBillMustHaveItems(nil)
	}

	kept := make([]models.BillItem, 0, len(bill.Items))
	removed := false
	for _, item := range bill.Items {
		if item.ItemID == itemID {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return nil, exceptions.ErrBillNotFound(fmt.Errorf("bill has no item %s", itemID))
	}

	bill.Items = kept
	bill.UpdatedAt = uc.Now()
	bill.Recalculate()

	if err := uc.BillRepository.Update(ctx, bill); err != nil {
		return nil, err
	}
	return responses.NewBillResponse(bill), nil
}

func (uc *billingUsecase) ApplyDiscount(ctx context.Context, billID string, request *requests.ApplyDiscount) (*responses.Bill, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("billingUsecase.ApplyDiscount called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBillIDKey, billID),
		zap.Float64("amount", request.Amount),
	)

	bill, err := uc.loadModifiableBill(ctx, billID)
	if err != nil {
		return nil, err
	}

	if request.Amount > bill.TotalAmount {
		return nil, exceptions.ErrDiscountExceedsTotal(fmt.Errorf("discount %.2f exceeds bill total %.2f", request.Amount, bill.TotalAmount))
	}

	bill.DiscountAmount = request.Amount
	bill.UpdatedAt = uc.Now()
	bill.Recalculate()

	if err := uc.BillRepository.Update(ctx, bill); err != nil {
		return nil, err
	}
	return responses.NewBillResponse(bill), nil
}

func (uc *billingUsecase) CancelBill(ctx context.Context, billID string) (*responses.Bill, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("billingUsecase.CancelBill called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBillIDKey, billID),
	)

	bill, err := uc.BillRepository.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, exceptions.ErrBillNotFound(nil)
	}
	if bill.PaymentStatus == models.BillCancelled {
		return nil, exceptions.ErrBillCancelled(nil)
	}
	if bill.PaidAmount > 0 {
		return nil, exceptions.ErrBillHasPayments(nil)
	}

	bill.PaymentStatus = models.BillCancelled
	bill.UpdatedAt = uc.Now()
	bill.Recalculate()

	if err := uc.BillRepository.Update(ctx, bill); err != nil {
		return nil, err
	}

	uc.Log.Info("billingUsecase.CancelBill succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBillIDKey, billID),
	)
	return responses.NewBillResponse(bill), nil
}
