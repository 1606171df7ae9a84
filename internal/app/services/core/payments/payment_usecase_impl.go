package payments

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

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type paymentUsecase struct {
	PaymentRepository contracts.PaymentRepository
	BillRepository    contracts.BillRepository
	TxManager         contracts.TransactionManager
	LockerService     contracts.LockerService
	Notifier          contracts.Notifier
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
	Now               func() time.Time
}

var (
	paymentUsecaseInstance contracts.PaymentUsecase
	oncePaymentUsecase     sync.Once
)

func NewPaymentUsecase(
	paymentRepository contracts.PaymentRepository,
	billRepository contracts.BillRepository,
	txManager contracts.TransactionManager,
	lockerService contracts.LockerService,
	notifier contracts.Notifier,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	oncePaymentUsecase.Do(func() {
		instance := &paymentUsecase{
			PaymentRepository: paymentRepository,
			BillRepository:    billRepository,
			TxManager:         txManager,
			LockerService:     lockerService,
			Notifier:          notifier,
			InternalConfig:    internalConfig,
			Log:               logger,
			Now:               time.Now,
		}
		paymentUsecaseInstance = instance
	})
	return paymentUsecaseInstance
}

func paymentLockKey(billID string) string {
	return fmt.Sprintf("payment:lock:bill:%s", billID)
}

func (uc *paymentUsecase) RecordPayment(ctx context.Context, request *requests.RecordPayment) (*responses.PaymentResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.RecordPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBillIDKey, request.BillID),
		zap.Float64("amount", request.Amount),
		zap.String("payment_mode", request.PaymentMode),
	)

	lockKey := paymentLockKey(request.BillID)
	lockTTL := time.Duration(uc.InternalConfig.App.BookingLockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrPaymentProcessingBusy(nil)
	}
	defer func() {
		if err := uc.LockerService.Unlock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
			uc.Log.Warn("paymentUsecase.RecordPayment failed to release payment lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
		}
	}()

	bill, err := uc.BillRepository.FindByID(ctx, request.BillID)
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

	amount := decimal.NewFromFloat(request.Amount).Round(2)
	if !amount.GreaterThan(decimal.Zero) {
		return nil, exceptions.ErrPaymentAmountNotValid(nil)
	}
	balance := decimal.NewFromFloat(bill.BalanceAmount)
	if amount.GreaterThan(balance) {
		return nil, exceptions.ErrPaymentExceedsBalance(fmt.Errorf("amount %s exceeds outstanding balance %s", amount.StringFixed(2), balance.StringFixed(2)))
	}

	receivedBy := request.ReceivedBy
	if receivedBy == "" {
		receivedBy, _ = ctx.Value(constvars.CONTEXT_STAFF_ID_KEY).(string)
	}

	now := uc.Now()
	transaction := &models.PaymentTransaction{
		BillID:            request.BillID,
		TransactionNumber: utils.GenerateTransactionNumber(now),
		Amount:            amount.InexactFloat64(),
		PaymentMode:       models.PaymentMode(request.PaymentMode),
		Status:            models.PaymentSuccess,
		ReferenceNumber:   request.ReferenceNumber,
		CardLast4:         request.CardLast4,
		UpiID:             request.UpiID,
		BankName:          request.BankName,
		ChequeNumber:      request.ChequeNumber,
		ReceivedBy:        receivedBy,
		Notes:             request.Notes,
		CreatedAt:         now,
	}

	// The transaction row and the bill summary commit or abort together,
	// PaidAmount must always equal the sum of SUCCESS transactions.
	var (
		transactionID string
		created       *models.PaymentTransaction
	)
	err = uc.TxManager.WithTransaction(ctx, func(txCtx context.Context) error {
		transactionID, err = uc.PaymentRepository.Insert(txCtx, transaction)
		if err != nil {
			return err
		}

		created, err = uc.PaymentRepository.FindByTransactionNumber(txCtx, transaction.TransactionNumber)
		if err != nil {
			return err
		}
		if created == nil {
			return exceptions.ErrTransactionNotFound(nil)
		}

		bill.PaidAmount = decimal.NewFromFloat(bill.PaidAmount).Add(amount).InexactFloat64()
		bill.UpdatedAt = now
		bill.Recalculate()

		return uc.BillRepository.Update(txCtx, bill)
	})
	if err != nil {
		return nil, err
	}

	if err := uc.Notifier.NotifyPaymentReceived(ctx, created); err != nil {
		uc.Log.Warn("paymentUsecase.RecordPayment notification failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTransactionIDKey, transactionID),
			zap.Error(err),
		)
	}

	uc.Log.Info("paymentUsecase.RecordPayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBillIDKey, request.BillID),
		zap.String("transaction_number", created.TransactionNumber),
		zap.String("payment_status", string(bill.PaymentStatus)),
		zap.Float64("balance_amount", bill.BalanceAmount),
	)
	return &responses.PaymentResult{
		Transaction: *responses.NewPaymentTransactionResponse(created),
		Bill:        *responses.NewBillResponse(bill),
	}, nil
}

func (uc *paymentUsecase) ListPaymentsByBill(ctx context.Context, billID string) ([]responses.PaymentTransaction, error) {
	bill, err := uc.BillRepository.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, exceptions.ErrBillNotFound(nil)
	}

	transactions, err := uc.PaymentRepository.FindByBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	return responses.NewPaymentTransactionListResponse(transactions), nil
}

func (uc *paymentUsecase) GetPaymentByTransactionNumber(ctx context.Context, transactionNumber string) (*responses.PaymentTransaction, error) {
	transaction, err := uc.PaymentRepository.FindByTransactionNumber(ctx, transactionNumber)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, exceptions.ErrTransactionNotFound(nil)
	}
	return responses.NewPaymentTransactionResponse(transaction), nil
}
