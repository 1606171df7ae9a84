package billing

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

type memoryBillRepository struct {
	bills map[string]*models.Bill
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

func (m *memoryBillRepository) FindByNumber(_ context.Context, billNumber string) (*models.Bill, error) {
	for _, bill := range m.bills {
		if bill.BillNumber == billNumber {
			copied := *bill
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memoryBillRepository) FindByPatient(_ context.Context, patientID string) ([]models.Bill, error) {
	var result []models.Bill
	for _, bill := range m.bills {
		if bill.PatientID == patientID {
			result = append(result, *bill)
		}
	}
	return result, nil
}

type stubAppointmentLookup struct {
	appointment *models.Appointment
}

func (s *stubAppointmentLookup) Insert(_ context.Context, _ *models.Appointment) (string, error) {
	return "", nil
}
func (s *stubAppointmentLookup) Update(_ context.Context, _ *models.Appointment) error { return nil }
func (s *stubAppointmentLookup) FindByID(_ context.Context, _ string) (*models.Appointment, error) {
	return s.appointment, nil
}
func (s *stubAppointmentLookup) FindActiveByDoctorDateTime(_ context.Context, _, _, _ string) (*models.Appointment, error) {
	return nil, nil
}
func (s *stubAppointmentLookup) FindActiveStartTimesByDoctorAndDate(_ context.Context, _, _ string) ([]string, error) {
	return nil, nil
}
func (s *stubAppointmentLookup) FindByPatient(_ context.Context, _ string) ([]models.Appointment, error) {
	return nil, nil
}
func (s *stubAppointmentLookup) FindByDoctor(_ context.Context, _ string) ([]models.Appointment, error) {
	return nil, nil
}
func (s *stubAppointmentLookup) FindByDoctorAndDate(_ context.Context, _, _ string) ([]models.Appointment, error) {
	return nil, nil
}
func (s *stubAppointmentLookup) Delete(_ context.Context, _ string) error { return nil }

type stubPatientDirectory struct {
	exists bool
}

func (s *stubPatientDirectory) PatientExists(_ context.Context, _ string) (bool, error) {
	return s.exists, nil
}

type countingNotifier struct {
	billEvents int
	fail       bool
}

func (c *countingNotifier) NotifyAppointmentBooked(_ context.Context, _ *models.Appointment) error {
	return nil
}
func (c *countingNotifier) NotifyBillCreated(_ context.Context, _ *models.Bill) error {
	c.billEvents++
	if c.fail {
		return errors.New("broker unavailable")
	}
	return nil
}
func (c *countingNotifier) NotifyPaymentReceived(_ context.Context, _ *models.PaymentTransaction) error {
	return nil
}

func newTestBillingUsecase(repo *memoryBillRepository, notifier *countingNotifier, now time.Time) *billingUsecase {
	return &billingUsecase{
		BillRepository:        repo,
		AppointmentRepository: &stubAppointmentLookup{},
		PatientDirectory:      &stubPatientDirectory{exists: true},
		Notifier:              notifier,
		InternalConfig: &config.InternalConfig{
			App: config.App{BillDueInDays: 7},
		},
		Log: zap.NewNop(),
		Now: func() time.Time { return now },
	}
}

func consultationBillRequest() *requests.CreateBill {
	return &requests.CreateBill{
		PatientID: "pat-1",
		Items: []requests.BillItemPayload{
			{
				ItemType:        string(models.ItemConsultation),
				Description:     "General consultation",
				Quantity:        2,
				UnitPrice:       100,
				DiscountPercent: 10,
				TaxPercent:      5,
			},
		},
	}
}

func customErrorStatus(t *testing.T, err error) int {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	return customErr.StatusCode
}

func TestCreateBillComputesAmounts(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	notifier := &countingNotifier{}
	uc := newTestBillingUsecase(newMemoryBillRepository(), notifier, now)

	bill, err := uc.CreateBill(context.Background(), consultationBillRequest())
	require.NoError(t, err)

	assert.Equal(t, 200.0, bill.TotalAmount)
	assert.Equal(t, 9.0, bill.TaxAmount)
	assert.Equal(t, 189.0, bill.NetAmount)
	assert.Equal(t, 189.0, bill.BalanceAmount)
	assert.Equal(t, string(models.BillUnpaid), bill.PaymentStatus)
	assert.Contains(t, bill.BillNumber, "BILL-")
	require.NotNil(t, bill.DueDate)
	assert.Equal(t, now.AddDate(0, 0, 7).Day(), bill.DueDate.Day())
	assert.Equal(t, 1, notifier.billEvents)
	require.Len(t, bill.Items, 1)
	assert.NotEmpty(t, bill.Items[0].ItemID)
}

func TestCreateBillUnknownPatient(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	uc := newTestBillingUsecase(newMemoryBillRepository(), &countingNotifier{}, now)
	uc.PatientDirectory = &stubPatientDirectory{exists: false}

	_, err := uc.CreateBill(context.Background(), consultationBillRequest())
	require.Error(t, err)
	assert.Equal(t, 404, customErrorStatus(t, err))
}

func TestCreateBillNotificationFailureDoesNotRollBack(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	repo := newMemoryBillRepository()
	uc := newTestBillingUsecase(repo, &countingNotifier{fail: true}, now)

	bill, err := uc.CreateBill(context.Background(), consultationBillRequest())
	require.NoError(t, err)

	stored, err := repo.FindByID(context.Background(), bill.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestAddBillItemRecomputesTotals(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	uc := newTestBillingUsecase(newMemoryBillRepository(), &countingNotifier{}, now)

	bill, err := uc.CreateBill(context.Background(), consultationBillRequest())
	require.NoError(t, err)

	updated, err := uc.AddBillItem(context.Background(), bill.ID, &requests.BillItemPayload{
		ItemType:    string(models.ItemLabTest),
		Description: "Blood panel",
		Quantity:    1,
		UnitPrice:   150,
		TaxPercent:  18,
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)
	assert.Equal(t, 350.0, updated.TotalAmount)
	assert.Equal(t, 366.0, updated.NetAmount)
}

func TestRemoveBillItemRecomputesTotals(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	uc := newTestBillingUsecase(newMemoryBillRepository(), &countingNotifier{}, now)

	request := consultationBillRequest()
	request.Items = append(request.Items, requests.BillItemPayload{
		ItemType:    string(models.ItemMedicine),
		Description: "Antibiotics",
		Quantity:    1,
		UnitPrice:   50,
	})
	bill, err := uc.CreateBill(context.Background(), request)
	require.NoError(t, err)
	require.Len(t, bill.Items, 2)

	updated, err := uc.RemoveBillItem(context.Background(), bill.ID, bill.Items[1].ItemID)
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 200.0, updated.TotalAmount)
}

func TestRemoveLastBillItemRejected(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	uc := newTestBillingUsecase(newMemoryBillRepository(), &countingNotifier{}, now)

	bill, err := uc.CreateBill(context.Background(), consultationBillRequest())
	require.NoError(t, err)

	_, err = uc.RemoveBillItem(context.Background(), bill.ID, bill.Items[0].ItemID)
	require.Error(t, err)
	assert.Equal(t, 400, customErrorStatus(t, err))
}

func TestApplyDiscountRecomputesNet(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	uc := newTestBillingUsecase(newMemoryBillRepository(), &countingNotifier{}, now)

	bill, err := uc.CreateBill(context.Background(), consultationBillRequest())
	require.NoError(t, err)

	updated, err := uc.ApplyDiscount(context.Background(), bill.ID, &requests.ApplyDiscount{Amount: 39})
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.NetAmount)
	assert.Equal(t, 150.0, updated.BalanceAmount)
}

func TestApplyDiscountExceedingTotalRejected(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	uc := newTestBillingUsecase(newMemoryBillRepository(), &countingNotifier{}, now)

	bill, err := uc.CreateBill(context.Background(), consultationBillRequest())
	require.NoError(t, err)

	_, err = uc.ApplyDiscount(context.Background(), bill.ID, &requests.ApplyDiscount{Amount: 250})
	require.Error(t, err)
	assert.Equal(t, 400, customErrorStatus(t, err))
}

func TestModifyingPaidBillRejected(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	repo := newMemoryBillRepository()
	uc := newTestBillingUsecase(repo, &countingNotifier{}, now)

	bill, err := uc.CreateBill(context.Background(), consultationBillRequest())
	require.NoError(t, err)

	stored, err := repo.FindByID(context.Background(), bill.ID)
	require.NoError(t, err)
	stored.PaidAmount = 50
	stored.Recalculate()
	require.NoError(t, repo.Update(context.Background(), stored))

	_, err = uc.AddBillItem(context.Background(), bill.ID, &requests.BillItemPayload{
		ItemType:    string(models.ItemOther),
		Description: "Extra",
		Quantity:    1,
		UnitPrice:   10,
	})
	require.Error(t, err)
	assert.Equal(t, 409, customErrorStatus(t, err))
}

func TestCancelBillWithPaymentsRejected(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	repo := newMemoryBillRepository()
	uc := newTestBillingUsecase(repo, &countingNotifier{}, now)

	bill, err := uc.CreateBill(context.Background(), consultationBillRequest())
	require.NoError(t, err)

	stored, err := repo.FindByID(context.Background(), bill.ID)
	require.NoError(t, err)
	stored.PaidAmount = 100
	stored.Recalculate()
	require.NoError(t, repo.Update(context.Background(), stored))

	_, err = uc.CancelBill(context.Background(), bill.ID)
	require.Error(t, err)
	assert.Equal(t, 409, customErrorStatus(t, err))
}

func TestCancelBillMarksCancelled(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	uc := newTestBillingUsecase(newMemoryBillRepository(), &countingNotifier{}, now)

	bill, err := uc.CreateBill(context.Background(), consultationBillRequest())
	require.NoError(t, err)

	cancelled, err := uc.CancelBill(context.Background(), bill.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.BillCancelled), cancelled.PaymentStatus)

	// cancelled bills refuse further mutation
	_, err = uc.ApplyDiscount(context.Background(), bill.ID, &requests.ApplyDiscount{Amount: 10})
	require.Error(t, err)
	assert.Equal(t, 409, customErrorStatus(t, err))
}

func TestGetBillByNumber(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	uc := newTestBillingUsecase(newMemoryBillRepository(), &countingNotifier{}, now)

	bill, err := uc.CreateBill(context.Background(), consultationBillRequest())
	require.NoError(t, err)

	found, err := uc.GetBillByNumber(context.Background(), bill.BillNumber)
	require.NoError(t, err)
	assert.Equal(t, bill.ID, found.ID)

	_, err = uc.GetBillByNumber(context.Background(), "BILL-UNKNOWN")
	require.Error(t, err)
	assert.Equal(t, 404, customErrorStatus(t, err))
}
