package payments

import (
	"caresync-service/internal/app/config"
	"caresync-service/internal/app/models"
	"caresync-service/internal/pkg/dto/requests"
	"caresync-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memoryPaymentRepository struct {
	transactions []models.PaymentTransaction
}

func (m *memoryPaymentRepository) Insert(_ context.Context, transaction *models.PaymentTransaction) (string, error) {
	transaction.ID = primitive.NewObjectID()
	m.transactions = append(m.transactions, *transaction)
	return transaction.ID.Hex(), nil
}

func (m *memoryPaymentRepository) FindByBill(_ context.Context, billID string) ([]models.PaymentTransaction, error) {
	var result []models.PaymentTransaction
	for _, transaction := range m.transactions {
		if transaction.BillID == billID {
			result = append(result, transaction)
		}
	}
	return result, nil
}

func (m *memoryPaymentRepository) FindByTransactionNumber(_ context.Context, transactionNumber string) (*models.PaymentTransaction, error) {
	for idx := range m.transactions {
		if m.transactions[idx].TransactionNumber == transactionNumber {
			copied := m.transactions[idx]
			return &copied, nil
		}
	}
	return nil, nil
}

type memoryBillRepository struct {
	bills     map[string]*models.Bill
	updateErr error
}

func newMemoryBillRepository() *memoryBillRepository {
	return &memoryBillRepository{bills: map[string]*models.Bill{}}
}

func (m *memoryBillRepository) Insert(_ context.Context, bill *models.Bill) (string, error) {
	bill.ID = primitive.NewObjectID()
	copied := *bill
	m.bills[bill.ID.Hex()] = &copied
	return bill.ID.Hex(), nil
}

func (m *memoryBillRepository) Update(_ context.Context, bill *models.Bill) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	copied := *bill
	m.bills[bill.ID.Hex()] = &copied
	return nil
}

func (m *memoryBillRepository) FindByID(_ context.Context, billID string) (*models.Bill, error) {
	bill, ok := m.bills[billID]
	if !ok {
		return nil, nil
	}
	copied := *bill
	return &copied, nil
}

func (m *memoryBillRepository) FindByNumber(_ context.Context, _ string) (*models.Bill, error) {
	return nil, nil
}

func (m *memoryBillRepository) FindByPatient(_ context.Context, _ string) ([]models.Bill, error) {
	return nil, nil
}

// rollbackTxManager mimics the all-or-nothing behaviour of a database
// transaction by snapshotting both repositories and restoring them when fn
// returns an error.
type rollbackTxManager struct {
	paymentRepo *memoryPaymentRepository
	billRepo    *memoryBillRepository
}

func (r *rollbackTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	savedTransactions := append([]models.PaymentTransaction(nil), r.paymentRepo.transactions...)
	savedBills := map[string]*models.Bill{}
	for id, bill := range r.billRepo.bills {
		copied := *bill
		savedBills[id] = &copied
	}

	if err := fn(ctx); err != nil {
		r.paymentRepo.transactions = savedTransactions
		r.billRepo.bills = savedBills
		return err
	}
	return nil
}

type stubLocker struct {
	denyLock bool
	unlocked int
}

func (s *stubLocker) TryLock(_ context.Context, _ string, _ time.Duration) (bool, string, error) {
	if s.denyLock {
		return false, "", nil
	}
	return true, "token", nil
}

func (s *stubLocker) Unlock(_ context.Context, _, _ string) error {
	s.unlocked++
	return nil
}

type countingNotifier struct {
	paymentEvents int
	fail          bool
}

func (c *countingNotifier) NotifyAppointmentBooked(_ context.Context, _ *models.Appointment) error {
	return nil
}
func (c *countingNotifier) NotifyBillCreated(_ context.Context, _ *models.Bill) error { return nil }
func (c *countingNotifier) NotifyPaymentReceived(_ context.Context, _ *models.PaymentTransaction) error {
	c.paymentEvents++
	if c.fail {
		return errors.New("broker unavailable")
	}
	return nil
}

func seedBill(t *testing.T, repo *memoryBillRepository, netAmount float64) string {
	t.Helper()
	bill := &models.Bill{
		BillNumber: "BILL-TEST",
		PatientID:  "pat-1",
		Items: []models.BillItem{
			{ItemType: models.ItemConsultation, Quantity: 1, UnitPrice: netAmount},
		},
	}
	bill.Recalculate()
	billID, err := repo.Insert(context.Background(), bill)
	require.NoError(t, err)
	return billID
}

func newTestPaymentUsecase(
	paymentRepo *memoryPaymentRepository,
	billRepo *memoryBillRepository,
	locker *stubLocker,
	notifier *countingNotifier,
) *paymentUsecase {
	return &paymentUsecase{
		PaymentRepository: paymentRepo,
		BillRepository:    billRepo,
		TxManager:         &rollbackTxManager{paymentRepo: paymentRepo, billRepo: billRepo},
		LockerService:     locker,
		Notifier:          notifier,
		InternalConfig: &config.InternalConfig{
			App: config.App{BookingLockTTLInSeconds: 10},
		},
		Log: zap.NewNop(),
		Now: func() time.Time { return time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local) },
	}
}

func paymentRequest(billID string, amount float64) *requests.RecordPayment {
	return &requests.RecordPayment{
		BillID:      billID,
		Amount:      amount,
		PaymentMode: string(models.PaymentModeCash),
		ReceivedBy:  "staff-7",
	}
}

func customErrorStatus(t *testing.T, err error) int {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	return customErr.StatusCode
}

func TestRecordPaymentPartialThenPaid(t *testing.T) {
	billRepo := newMemoryBillRepository()
	billID := seedBill(t, billRepo, 500)
	notifier := &countingNotifier{}
	uc := newTestPaymentUsecase(&memoryPaymentRepository{}, billRepo, &stubLocker{}, notifier)

	first, err := uc.RecordPayment(context.Background(), paymentRequest(billID, 200))
	require.NoError(t, err)
	assert.Equal(t, string(models.BillPartial), first.Bill.PaymentStatus)
	assert.Equal(t, 300.0, first.Bill.BalanceAmount)
	assert.Contains(t, first.Transaction.TransactionNumber, "TXN-")
	assert.Equal(t, string(models.PaymentSuccess), first.Transaction.Status)

	second, err := uc.RecordPayment(context.Background(), paymentRequest(billID, 300))
	require.NoError(t, err)
	assert.Equal(t, string(models.BillPaid), second.Bill.PaymentStatus)
	assert.Equal(t, 0.0, second.Bill.BalanceAmount)
	assert.Equal(t, 2, notifier.paymentEvents)
}

func TestRecordPaymentOverpaymentRejected(t *testing.T) {
	billRepo := newMemoryBillRepository()
	billID := seedBill(t, billRepo, 500)
	uc := newTestPaymentUsecase(&memoryPaymentRepository{}, billRepo, &stubLocker{}, &countingNotifier{})

	_, err := uc.RecordPayment(context.Background(), paymentRequest(billID, 500.01))
	require.Error(t, err)
	assert.Equal(t, 400, customErrorStatus(t, err))

	// nothing was recorded
	transactions, err := uc.ListPaymentsByBill(context.Background(), billID)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestRecordPaymentAgainstPaidBillRejected(t *testing.T) {
	billRepo := newMemoryBillRepository()
	billID := seedBill(t, billRepo, 500)
	uc := newTestPaymentUsecase(&memoryPaymentRepository{}, billRepo, &stubLocker{}, &countingNotifier{})

	_, err := uc.RecordPayment(context.Background(), paymentRequest(billID, 500))
	require.NoError(t, err)

	_, err = uc.RecordPayment(context.Background(), paymentRequest(billID, 1))
	require.Error(t, err)
	assert.Equal(t, 409, customErrorStatus(t, err))
}

func TestRecordPaymentAgainstCancelledBillRejected(t *testing.T) {
	billRepo := newMemoryBillRepository()
	billID := seedBill(t, billRepo, 500)

	bill, err := billRepo.FindByID(context.Background(), billID)
	require.NoError(t, err)
	bill.PaymentStatus = models.BillCancelled
	require.NoError(t, billRepo.Update(context.Background(), bill))

	uc := newTestPaymentUsecase(&memoryPaymentRepository{}, billRepo, &stubLocker{}, &countingNotifier{})
	_, err = uc.RecordPayment(context.Background(), paymentRequest(billID, 100))
	require.Error(t, err)
	assert.Equal(t, 409, customErrorStatus(t, err))
}

func TestRecordPaymentUnknownBill(t *testing.T) {
	uc := newTestPaymentUsecase(&memoryPaymentRepository{}, newMemoryBillRepository(), &stubLocker{}, &countingNotifier{})

	_, err := uc.RecordPayment(context.Background(), paymentRequest(primitive.NewObjectID().Hex(), 100))
	require.Error(t, err)
	assert.Equal(t, 404, customErrorStatus(t, err))
}

func TestRecordPaymentLockContention(t *testing.T) {
	billRepo := newMemoryBillRepository()
	billID := seedBill(t, billRepo, 500)
	uc := newTestPaymentUsecase(&memoryPaymentRepository{}, billRepo, &stubLocker{denyLock: true}, &countingNotifier{})

	_, err := uc.RecordPayment(context.Background(), paymentRequest(billID, 100))
	require.Error(t, err)
	assert.Equal(t, 409, customErrorStatus(t, err))
}

func TestRecordPaymentReleasesLock(t *testing.T) {
	billRepo := newMemoryBillRepository()
	billID := seedBill(t, billRepo, 500)
	locker := &stubLocker{}
	uc := newTestPaymentUsecase(&memoryPaymentRepository{}, billRepo, locker, &countingNotifier{})

	_, err := uc.RecordPayment(context.Background(), paymentRequest(billID, 100))
	require.NoError(t, err)
	assert.Equal(t, 1, locker.unlocked)
}

func TestRecordPaymentInvariantPaidPlusBalance(t *testing.T) {
	billRepo := newMemoryBillRepository()
	billID := seedBill(t, billRepo, 777.77)
	uc := newTestPaymentUsecase(&memoryPaymentRepository{}, billRepo, &stubLocker{}, &countingNotifier{})

	amounts := []float64{123.45, 200.1, 300}
	for _, amount := range amounts {
		result, err := uc.RecordPayment(context.Background(), paymentRequest(billID, amount))
		require.NoError(t, err)
		assert.InDelta(t, result.Bill.NetAmount, result.Bill.PaidAmount+result.Bill.BalanceAmount, 0.001)
	}
}

func TestRecordPaymentBillUpdateFailureLeavesNoTransaction(t *testing.T) {
	billRepo := newMemoryBillRepository()
	billID := seedBill(t, billRepo, 500)
	billRepo.updateErr = errors.New("write conflict")
	paymentRepo := &memoryPaymentRepository{}
	notifier := &countingNotifier{}
	uc := newTestPaymentUsecase(paymentRepo, billRepo, &stubLocker{}, notifier)

	_, err := uc.RecordPayment(context.Background(), paymentRequest(billID, 200))
	require.Error(t, err)

	// the transaction row and the bill summary stand or fall together
	transactions, err := paymentRepo.FindByBill(context.Background(), billID)
	require.NoError(t, err)
	assert.Empty(t, transactions)

	stored, err := billRepo.FindByID(context.Background(), billID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stored.PaidAmount)
	assert.Equal(t, string(models.BillUnpaid), string(stored.PaymentStatus))
	assert.Equal(t, 0, notifier.paymentEvents)
}

func TestRecordPaymentNotificationFailureDoesNotRollBack(t *testing.T) {
	billRepo := newMemoryBillRepository()
	billID := seedBill(t, billRepo, 500)
	uc := newTestPaymentUsecase(&memoryPaymentRepository{}, billRepo, &stubLocker{}, &countingNotifier{fail: true})

	result, err := uc.RecordPayment(context.Background(), paymentRequest(billID, 200))
	require.NoError(t, err)

	stored, err := billRepo.FindByID(context.Background(), billID)
	require.NoError(t, err)
	assert.Equal(t, 200.0, stored.PaidAmount)
	assert.Equal(t, result.Bill.PaidAmount, stored.PaidAmount)
}

func TestGetPaymentByTransactionNumber(t *testing.T) {
	billRepo := newMemoryBillRepository()
	billID := seedBill(t, billRepo, 500)
	uc := newTestPaymentUsecase(&memoryPaymentRepository{}, billRepo, &stubLocker{}, &countingNotifier{})

	result, err := uc.RecordPayment(context.Background(), paymentRequest(billID, 250))
	require.NoError(t, err)

	found, err := uc.GetPaymentByTransactionNumber(context.Background(), result.Transaction.TransactionNumber)
	require.NoError(t, err)
	assert.Equal(t, result.Transaction.ID, found.ID)

	_, err = uc.GetPaymentByTransactionNumber(context.Background(), "TXN-UNKNOWN")
	require.Error(t, err)
	assert.Equal(t, 404, customErrorStatus(t, err))
}
