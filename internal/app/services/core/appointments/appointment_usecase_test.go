package appointments

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

type memoryAppointmentRepository struct {
	appointments map[string]*models.Appointment
}

func newMemoryAppointmentRepository() *memoryAppointmentRepository {
	return &memoryAppointmentRepository{appointments: map[string]*models.Appointment{}}
}

func (m *memoryAppointmentRepository) Insert(_ context.Context, appointment *models.Appointment) (string, error) {
	for _, existing := range m.appointments {
		if existing.DoctorID == appointment.DoctorID &&
			existing.Date == appointment.Date &&
			existing.StartTime == appointment.StartTime &&
			existing.Status != models.AppointmentCancelled {
			return "", exceptions.ErrSlotAlreadyBooked(nil)
		}
	}
	appointment.ID = primitive.NewObjectID()
	copied := *appointment
	m.appointments[appointment.ID.Hex()] = &copied
	return appointment.ID.Hex(), nil
}

func (m *memoryAppointmentRepository) Update(_ context.Context, appointment *models.Appointment) error {
	copied := *appointment
	m.appointments[appointment.ID.Hex()] = &copied
	return nil
}

func (m *memoryAppointmentRepository) FindByID(_ context.Context, appointmentID string) (*models.Appointment, error) {
	appointment, ok := m.appointments[appointmentID]
	if !ok {
		return nil, nil
	}
	copied := *appointment
	return &copied, nil
}

func (m *memoryAppointmentRepository) FindActiveByDoctorDateTime(_ context.Context, doctorID, date, startTime string) (*models.Appointment, error) {
	for _, appointment := range m.appointments {
		if appointment.DoctorID == doctorID &&
			appointment.Date == date &&
			appointment.StartTime == startTime &&
			appointment.Status != models.AppointmentCancelled {
			copied := *appointment
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memoryAppointmentRepository) FindActiveStartTimesByDoctorAndDate(_ context.Context, doctorID, date string) ([]string, error) {
	var startTimes []string
	for _, appointment := range m.appointments {
		if appointment.DoctorID == doctorID && appointment.Date == date && appointment.Status != models.AppointmentCancelled {
			startTimes = append(startTimes, appointment.StartTime)
		}
	}
	return startTimes, nil
}

func (m *memoryAppointmentRepository) FindByPatient(_ context.Context, patientID string) ([]models.Appointment, error) {
	var result []models.Appointment
	for _, appointment := range m.appointments {
		if appointment.PatientID == patientID {
			result = append(result, *appointment)
		}
	}
	return result, nil
}

func (m *memoryAppointmentRepository) FindByDoctor(_ context.Context, doctorID string) ([]models.Appointment, error) {
	var result []models.Appointment
	for _, appointment := range m.appointments {
		if appointment.DoctorID == doctorID {
			result = append(result, *appointment)
		}
	}
	return result, nil
}

func (m *memoryAppointmentRepository) FindByDoctorAndDate(_ context.Context, doctorID, date string) ([]models.Appointment, error) {
	var result []models.Appointment
	for _, appointment := range m.appointments {
		if appointment.DoctorID == doctorID && appointment.Date == date {
			result = append(result, *appointment)
		}
	}
	return result, nil
}

func (m *memoryAppointmentRepository) Delete(_ context.Context, appointmentID string) error {
	delete(m.appointments, appointmentID)
	return nil
}

type fixedScheduleRepository struct {
	schedule *models.DoctorSchedule
}

func (f *fixedScheduleRepository) Insert(_ context.Context, _ *models.DoctorSchedule) (string, error) {
	return "", nil
}
func (f *fixedScheduleRepository) Update(_ context.Context, _ *models.DoctorSchedule) error {
	return nil
}
func (f *fixedScheduleRepository) FindByID(_ context.Context, _ string) (*models.DoctorSchedule, error) {
	return f.schedule, nil
}
func (f *fixedScheduleRepository) FindByDoctorAndDay(_ context.Context, _ string, _ models.DayOfWeek) (*models.DoctorSchedule, error) {
	return f.schedule, nil
}
func (f *fixedScheduleRepository) FindByDoctor(_ context.Context, _ string) ([]models.DoctorSchedule, error) {
	return nil, nil
}

type stubPatientDirectory struct {
	exists bool
}

func (s *stubPatientDirectory) PatientExists(_ context.Context, _ string) (bool, error) {
	return s.exists, nil
}

type stubDoctorDirectory struct {
	exists    bool
	available bool
}

func (s *stubDoctorDirectory) DoctorExists(_ context.Context, _ string) (bool, error) {
	return s.exists, nil
}
func (s *stubDoctorDirectory) IsDoctorAvailable(_ context.Context, _ string) (bool, error) {
	return s.available, nil
}

type stubLocker struct {
	denyLock bool
	locked   []string
	unlocked []string
}

func (s *stubLocker) TryLock(_ context.Context, key string, _ time.Duration) (bool, string, error) {
	if s.denyLock {
		return false, "", nil
	}
	s.locked = append(s.locked, key)
	return true, "token", nil
}

func (s *stubLocker) Unlock(_ context.Context, key, _ string) error {
	s.unlocked = append(s.unlocked, key)
	return nil
}

type recordingNotifier struct {
	appointmentEvents int
	billEvents        int
	paymentEvents     int
	fail              bool
}

func (r *recordingNotifier) NotifyAppointmentBooked(_ context.Context, _ *models.Appointment) error {
	r.appointmentEvents++
	if r.fail {
		return errors.New("broker unavailable")
	}
	return nil
}
func (r *recordingNotifier) NotifyBillCreated(_ context.Context, _ *models.Bill) error {
	r.billEvents++
	if r.fail {
		return errors.New("broker unavailable")
	}
	return nil
}
func (r *recordingNotifier) NotifyPaymentReceived(_ context.Context, _ *models.PaymentTransaction) error {
	r.paymentEvents++
	if r.fail {
		return errors.New("broker unavailable")
	}
	return nil
}

func weekSchedule() *models.DoctorSchedule {
	return &models.DoctorSchedule{
		ID:                  primitive.NewObjectID(),
		DoctorID:            "doc-1",
		StartTime:           "09:00",
		EndTime:             "17:00",
		SlotDurationMinutes: 30,
		IsAvailable:         true,
	}
}

func newTestAppointmentUsecase(
	repo *memoryAppointmentRepository,
	locker *stubLocker,
	notifier *recordingNotifier,
	now time.Time,
) *appointmentUsecase {
	return &appointmentUsecase{
		AppointmentRepository: repo,
		ScheduleRepository:    &fixedScheduleRepository{schedule: weekSchedule()},
		PatientDirectory:      &stubPatientDirectory{exists: true},
		DoctorDirectory:       &stubDoctorDirectory{exists: true, available: true},
		LockerService:         locker,
		Notifier:              notifier,
		InternalConfig: &config.InternalConfig{
			App: config.App{BookingLockTTLInSeconds: 10},
		},
		Log: zap.NewNop(),
		Now: func() time.Time { return now },
	}
}

func bookingRequest() *requests.BookAppointment {
	return &requests.BookAppointment{
		PatientID: "pat-1",
		DoctorID:  "doc-1",
		Date:      "2026-09-07",
		StartTime: "10:00",
		Reason:    "follow up",
	}
}

func customErrorStatus(t *testing.T, err error) int {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	return customErr.StatusCode
}

func TestBookAppointmentSuccess(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	locker := &stubLocker{}
	notifier := &recordingNotifier{}
	uc := newTestAppointmentUsecase(newMemoryAppointmentRepository(), locker, notifier, now)

	response, err := uc.BookAppointment(context.Background(), bookingRequest())
	require.NoError(t, err)
	assert.Equal(t, string(models.AppointmentScheduled), response.Status)
	assert.Equal(t, "10:30", response.EndTime)
	assert.Contains(t, response.AppointmentNumber, "APT-")
	assert.Equal(t, 1, notifier.appointmentEvents)
	assert.Len(t, locker.unlocked, 1, "booking lock must be released")
}

func TestBookAppointmentDoubleBookingRejected(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	repo := newMemoryAppointmentRepository()
	uc := newTestAppointmentUsecase(repo, &stubLocker{}, &recordingNotifier{}, now)

	_, err := uc.BookAppointment(context.Background(), bookingRequest())
	require.NoError(t, err)

	_, err = uc.BookAppointment(context.Background(), bookingRequest())
	require.Error(t, err)
	assert.Equal(t, 409, customErrorStatus(t, err))
}

func TestBookAppointmentAfterCancellationAllowed(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	repo := newMemoryAppointmentRepository()
	uc := newTestAppointmentUsecase(repo, &stubLocker{}, &recordingNotifier{}, now)

	booked, err := uc.BookAppointment(context.Background(), bookingRequest())
	require.NoError(t, err)

	_, err = uc.CancelAppointment(context.Background(), booked.ID, &requests.CancelAppointment{Reason: "patient request"})
	require.NoError(t, err)

	_, err = uc.BookAppointment(context.Background(), bookingRequest())
	require.NoError(t, err)
}

func TestBookAppointmentOffGridRejected(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	uc := newTestAppointmentUsecase(newMemoryAppointmentRepository(), &stubLocker{}, &recordingNotifier{}, now)

	request := bookingRequest()
	request.StartTime = "10:15"
	_, err := uc.BookAppointment(context.Background(), request)
	require.Error(t, err)
	assert.Equal(t, 400, customErrorStatus(t, err))
}

func TestBookAppointmentPastDateRejected(t *testing.T) {
	now := time.Date(2026, 9, 10, 8, 0, 0, 0, time.Local)
	uc := newTestAppointmentUsecase(newMemoryAppointmentRepository(), &stubLocker{}, &recordingNotifier{}, now)

	_, err := uc.BookAppointment(context.Background(), bookingRequest())
	require.Error(t, err)
	assert.Equal(t, 400, customErrorStatus(t, err))
}

func TestBookAppointmentUnavailableDoctorRejected(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	uc := newTestAppointmentUsecase(newMemoryAppointmentRepository(), &stubLocker{}, &recordingNotifier{}, now)
	uc.DoctorDirectory = &stubDoctorDirectory{exists: true, available: false}

	_, err := uc.BookAppointment(context.Background(), bookingRequest())
	require.Error(t, err)
	assert.Equal(t, 409, customErrorStatus(t, err))
}

func TestBookAppointmentUnknownPatientRejected(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	uc := newTestAppointmentUsecase(newMemoryAppointmentRepository(), &stubLocker{}, &recordingNotifier{}, now)
	uc.PatientDirectory = &stubPatientDirectory{exists: false}

	_, err := uc.BookAppointment(context.Background(), bookingRequest())
	require.Error(t, err)
	assert.Equal(t, 404, customErrorStatus(t, err))
}

func TestBookAppointmentLockContention(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	uc := newTestAppointmentUsecase(newMemoryAppointmentRepository(), &stubLocker{denyLock: true}, &recordingNotifier{}, now)

	_, err := uc.BookAppointment(context.Background(), bookingRequest())
	require.Error(t, err)
	assert.Equal(t, 409, customErrorStatus(t, err))
}

func TestBookAppointmentNotificationFailureDoesNotRollBack(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	notifier := &recordingNotifier{fail: true}
	repo := newMemoryAppointmentRepository()
	uc := newTestAppointmentUsecase(repo, &stubLocker{}, notifier, now)

	response, err := uc.BookAppointment(context.Background(), bookingRequest())
	require.NoError(t, err)

	stored, err := repo.FindByID(context.Background(), response.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.AppointmentScheduled, stored.Status)
}

func TestCompleteAppointment(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	uc := newTestAppointmentUsecase(newMemoryAppointmentRepository(), &stubLocker{}, &recordingNotifier{}, now)

	booked, err := uc.BookAppointment(context.Background(), bookingRequest())
	require.NoError(t, err)

	completed, err := uc.CompleteAppointment(context.Background(), booked.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.AppointmentCompleted), completed.Status)

	// terminal states admit no further transitions
	_, err = uc.MarkNoShow(context.Background(), booked.ID)
	require.Error(t, err)
	assert.Equal(t, 409, customErrorStatus(t, err))
}

func TestCancelAppointmentRecordsReason(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	uc := newTestAppointmentUsecase(newMemoryAppointmentRepository(), &stubLocker{}, &recordingNotifier{}, now)

	booked, err := uc.BookAppointment(context.Background(), bookingRequest())
	require.NoError(t, err)

	cancelled, err := uc.CancelAppointment(context.Background(), booked.ID, &requests.CancelAppointment{Reason: "feeling better"})
	require.NoError(t, err)
	assert.Equal(t, string(models.AppointmentCancelled), cancelled.Status)
	assert.Equal(t, "feeling better", cancelled.CancellationReason)
	require.NotNil(t, cancelled.CancelledAt)
}

func TestMarkNoShow(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	uc := newTestAppointmentUsecase(newMemoryAppointmentRepository(), &stubLocker{}, &recordingNotifier{}, now)

	booked, err := uc.BookAppointment(context.Background(), bookingRequest())
	require.NoError(t, err)

	noShow, err := uc.MarkNoShow(context.Background(), booked.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.AppointmentNoShow), noShow.Status)
}

func TestRescheduleAppointmentMovesSlot(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	uc := newTestAppointmentUsecase(newMemoryAppointmentRepository(), &stubLocker{}, &recordingNotifier{}, now)

	booked, err := uc.BookAppointment(context.Background(), bookingRequest())
	require.NoError(t, err)

	moved, err := uc.RescheduleAppointment(context.Background(), booked.ID, &requests.RescheduleAppointment{
		Date:      "2026-09-08",
		StartTime: "14:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-09-08", moved.Date)
	assert.Equal(t, "14:00", moved.StartTime)
	assert.Equal(t, "14:30", moved.EndTime)
}

func TestRescheduleAppointmentIntoTakenSlotRejected(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	uc := newTestAppointmentUsecase(newMemoryAppointmentRepository(), &stubLocker{}, &recordingNotifier{}, now)

	first, err := uc.BookAppointment(context.Background(), bookingRequest())
	require.NoError(t, err)

	other := bookingRequest()
	other.StartTime = "11:00"
	_, err = uc.BookAppointment(context.Background(), other)
	require.NoError(t, err)

	_, err = uc.RescheduleAppointment(context.Background(), first.ID, &requests.RescheduleAppointment{
		Date:      "2026-09-07",
		StartTime: "11:00",
	})
	require.Error(t, err)
	assert.Equal(t, 409, customErrorStatus(t, err))
}

func TestBookAppointmentDefaultsSlotDuration(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	uc := newTestAppointmentUsecase(newMemoryAppointmentRepository(), &stubLocker{}, &recordingNotifier{}, now)

	schedule := weekSchedule()
	schedule.SlotDurationMinutes = 0
	uc.ScheduleRepository = &fixedScheduleRepository{schedule: schedule}

	response, err := uc.BookAppointment(context.Background(), bookingRequest())
	require.NoError(t, err)
	assert.Equal(t, "10:30", response.EndTime)
}

func TestDeleteAppointmentRemovesRecord(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	repo := newMemoryAppointmentRepository()
	uc := newTestAppointmentUsecase(repo, &stubLocker{}, &recordingNotifier{}, now)

	booked, err := uc.BookAppointment(context.Background(), bookingRequest())
	require.NoError(t, err)

	// removal works in any status, unlike the regular transitions
	_, err = uc.CompleteAppointment(context.Background(), booked.ID)
	require.NoError(t, err)

	require.NoError(t, uc.DeleteAppointment(context.Background(), booked.ID))

	_, err = uc.GetAppointmentByID(context.Background(), booked.ID)
	require.Error(t, err)
	assert.Equal(t, 404, customErrorStatus(t, err))
}

func TestDeleteAppointmentUnknown(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	uc := newTestAppointmentUsecase(newMemoryAppointmentRepository(), &stubLocker{}, &recordingNotifier{}, now)

	err := uc.DeleteAppointment(context.Background(), primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.Equal(t, 404, customErrorStatus(t, err))
}

func TestGetAppointmentByIDNotFound(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	uc := newTestAppointmentUsecase(newMemoryAppointmentRepository(), &stubLocker{}, &recordingNotifier{}, now)

	_, err := uc.GetAppointmentByID(context.Background(), primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.Equal(t, 404, customErrorStatus(t, err))
}
