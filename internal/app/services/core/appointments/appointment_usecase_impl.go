package appointments

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

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	ScheduleRepository    contracts.ScheduleRepository
	PatientDirectory      contracts.PatientDirectory
	DoctorDirectory       contracts.DoctorDirectory
	LockerService         contracts.LockerService
	Notifier              contracts.Notifier
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	Now                   func() time.Time
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	scheduleRepository contracts.ScheduleRepository,
	patientDirectory contracts.PatientDirectory,
	doctorDirectory contracts.DoctorDirectory,
	lockerService contracts.LockerService,
	notifier contracts.Notifier,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		instance := &appointmentUsecase{
			AppointmentRepository: appointmentRepository,
			ScheduleRepository:    scheduleRepository,
			PatientDirectory:      patientDirectory,
			DoctorDirectory:       doctorDirectory,
			LockerService:         lockerService,
			Notifier:              notifier,
			InternalConfig:        internalConfig,
			Log:                   logger,
			Now:                   time.Now,
		}
		appointmentUsecaseInstance = instance
	})
	return appointmentUsecaseInstance
}

func bookingLockKey(doctorID, date string) string {
	return fmt.Sprintf("booking:lock:doctor:%s:%s", doctorID, date)
}

func (uc *appointmentUsecase) BookAppointment(ctx context.Context, request *requests.BookAppointment) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.BookAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingDateKey, request.Date),
		zap.String("start_time", request.StartTime),
	)

	patientExists, err := uc.PatientDirectory.PatientExists(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}
	if !patientExists {
		return nil, exceptions.ErrPatientNotFound(nil)
	}

	doctorExists, err := uc.DoctorDirectory.DoctorExists(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doctorExists {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	available, err := uc.DoctorDirectory.IsDoctorAvailable(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, exceptions.ErrDoctorNotAvailable(nil)
	}

	schedule, err := uc.validateSlot(ctx, request.DoctorID, request.Date, request.StartTime)
	if err != nil {
		return nil, err
	}

	lockKey := bookingLockKey(request.DoctorID, request.Date)
	lockTTL := time.Duration(uc.InternalConfig.App.BookingLockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrBookingBusy(nil)
	}
	defer func() {
		if err := uc.LockerService.Unlock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
			uc.Log.Warn("appointmentUsecase.BookAppointment failed to release booking lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
		}
	}()

	occupied, err := uc.AppointmentRepository.FindActiveByDoctorDateTime(ctx, request.DoctorID, request.Date, request.StartTime)
	if err != nil {
		return nil, err
	}
	if occupied != nil {
		return nil, exceptions.ErrSlotAlreadyBooked(nil)
	}

	startMinutes, err := utils.ParseClock(request.StartTime)
	if err != nil {
		return nil, exceptions.ErrCannotParseClock(err)
	}

	now := uc.Now()
	appointment := &models.Appointment{
		AppointmentNumber: utils.GenerateAppointmentNumber(now),
		PatientID:         request.PatientID,
		DoctorID:          request.DoctorID,
		Date:              request.Date,
		StartTime:         request.StartTime,
		EndTime:           utils.FormatClock(startMinutes + schedule.SlotDurationMinutes),
		Status:            models.AppointmentScheduled,
		Reason:            request.Reason,
		Notes:             request.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	appointmentID, err := uc.AppointmentRepository.Insert(ctx, appointment)
	if err != nil {
		return nil, err
	}

	created, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}

	if err := uc.Notifier.NotifyAppointmentBooked(ctx, created); err != nil {
		uc.Log.Warn("appointmentUsecase.BookAppointment notification failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
	}

	uc.Log.Info("appointmentUsecase.BookAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String("appointment_number", created.AppointmentNumber),
	)
	return responses.NewAppointmentResponse(created), nil
}

// validateSlot checks that the requested start time lies on the doctor's
// weekly grid for that date and has not already passed.
func (uc *appointmentUsecase) validateSlot(ctx context.Context, doctorID, date, startTime string) (*models.DoctorSchedule, error) {
	requestedDate, err := utils.ParseDate(date)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	startMinutes, err := utils.ParseClock(startTime)
	if err != nil {
		return nil, exceptions.ErrCannotParseClock(err)
	}

	now := uc.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if requestedDate.Before(today) {
		return nil, exceptions.ErrDateInPast(nil)
	}
	if utils.SameDate(requestedDate, now) && startMinutes <= utils.MinutesOfDay(now) {
		return nil, exceptions.ErrDateInPast(fmt.Errorf("slot %s on %s has already started", startTime, date))
	}

	schedule, err := uc.ScheduleRepository.FindByDoctorAndDay(ctx, doctorID, models.DayOfWeekFromTime(requestedDate))
	if err != nil {
		return nil, err
	}
	if schedule == nil || !schedule.IsAvailable {
		return nil, exceptions.ErrDoctorNotAvailable(nil)
	}

	scheduleStart, err := utils.ParseClock(schedule.StartTime)
	if err != nil {
		return nil, exceptions.ErrCannotParseClock(err)
	}
	scheduleEnd, err := utils.ParseClock(schedule.EndTime)
	if err != nil {
		return nil, exceptions.ErrCannotParseClock(err)
	}

	duration := schedule.SlotDurationMinutes
	if duration <= 0 {
		duration = models.DefaultSlotDurationMinutes
	}
	if startMinutes < scheduleStart || startMinutes+duration > scheduleEnd || (startMinutes-scheduleStart)%duration != 0 {
		return nil, exceptions.ErrSlotNotOnSchedule(fmt.Errorf("start time %s does not match the %d minute grid between %s and %s", startTime, duration, schedule.StartTime, schedule.EndTime))
	}

	// callers derive the end time from this field, so hand back the
	// defaulted duration, not the raw stored one
	schedule.SlotDurationMinutes = duration
	return schedule, nil
}

func (uc *appointmentUsecase) GetAppointmentByID(ctx context.Context, appointmentID string) (*responses.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}
	return responses.NewAppointmentResponse(appointment), nil
}

func (uc *appointmentUsecase) CompleteAppointment(ctx context.Context, appointmentID string) (*responses.Appointment, error) {
	return uc.transition(ctx, appointmentID, models.AppointmentCompleted, "")
}

func (uc *appointmentUsecase) CancelAppointment(ctx context.Context, appointmentID string, request *requests.CancelAppointment) (*responses.Appointment, error) {
	return uc.transition(ctx, appointmentID, models.AppointmentCancelled, request.Reason)
}

func (uc *appointmentUsecase) MarkNoShow(ctx context.Context, appointmentID string) (*responses.Appointment, error) {
	return uc.transition(ctx, appointmentID, models.AppointmentNoShow, "")
}

// transition moves a SCHEDULED appointment to one of its terminal states.
// Every terminal state is final, there are no further transitions.
func (uc *appointmentUsecase) transition(ctx context.Context, appointmentID string, target models.AppointmentStatus, cancellationReason string) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.transition called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String("target_status", string(target)),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}
	if appointment.Status != models.AppointmentScheduled {
		return nil, exceptions.ErrAppointmentNotActive(fmt.Errorf("appointment is %s", appointment.Status))
	}

	now := uc.Now()
	appointment.Status = target
	appointment.UpdatedAt = now
	if target == models.AppointmentCancelled {
		appointment.CancellationReason = cancellationReason
		appointment.CancelledAt = &now
	}

	if err := uc.AppointmentRepository.Update(ctx, appointment); err != nil {
		return nil, err
	}

	uc.Log.Info("appointmentUsecase.transition succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String("status", string(appointment.Status)),
	)
	return responses.NewAppointmentResponse(appointment), nil
}

func (uc *appointmentUsecase) RescheduleAppointment(ctx context.Context, appointmentID string, request *requests.RescheduleAppointment) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.RescheduleAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingDateKey, request.Date),
		zap.String("start_time", request.StartTime),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}
	if appointment.Status != models.AppointmentScheduled {
		return nil, exceptions.ErrAppointmentNotActive(fmt.Errorf("appointment is %s", appointment.Status))
	}

	schedule, err := uc.validateSlot(ctx, appointment.DoctorID, request.Date, request.StartTime)
	if err != nil {
		return nil, err
	}

	lockKey := bookingLockKey(appointment.DoctorID, request.Date)
	lockTTL := time.Duration(uc.InternalConfig.App.BookingLockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrBookingBusy(nil)
	}
	defer func() {
		if err := uc.LockerService.Unlock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
			uc.Log.Warn("appointmentUsecase.RescheduleAppointment failed to release booking lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
		}
	}()

	occupied, err := uc.AppointmentRepository.FindActiveByDoctorDateTime(ctx, appointment.DoctorID, request.Date, request.StartTime)
	if err != nil {
		return nil, err
	}
	if occupied != nil && occupied.ID != appointment.ID {
		return nil, exceptions.ErrSlotAlreadyBooked(nil)
	}

	startMinutes, err := utils.ParseClock(request.StartTime)
	if err != nil {
		return nil, exceptions.ErrCannotParseClock(err)
	}

	appointment.Date = request.Date
	appointment.StartTime = request.StartTime
	appointment.EndTime = utils.FormatClock(startMinutes + schedule.SlotDurationMinutes)
	appointment.UpdatedAt = uc.Now()

	if err := uc.AppointmentRepository.Update(ctx, appointment); err != nil {
		return nil, err
	}

	uc.Log.Info("appointmentUsecase.RescheduleAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return responses.NewAppointmentResponse(appointment), nil
}

// DeleteAppointment removes the record entirely, in any status. Cancellation
// is the regular path; this one is for administrative cleanup.
func (uc *appointmentUsecase) DeleteAppointment(ctx context.Context, appointmentID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.DeleteAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment == nil {
		return exceptions.ErrAppointmentNotFound(nil)
	}

	if err := uc.AppointmentRepository.Delete(ctx, appointmentID); err != nil {
		return err
	}

	uc.Log.Info("appointmentUsecase.DeleteAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String("appointment_number", appointment.AppointmentNumber),
	)
	return nil
}

func (uc *appointmentUsecase) ListAppointmentsByPatient(ctx context.Context, patientID string) ([]responses.Appointment, error) {
	exists, err := uc.PatientDirectory.PatientExists(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, exceptions.ErrPatientNotFound(nil)
	}

	appointments, err := uc.AppointmentRepository.FindByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return responses.NewAppointmentListResponse(appointments), nil
}

func (uc *appointmentUsecase) ListAppointmentsByDoctor(ctx context.Context, doctorID, date string) ([]responses.Appointment, error) {
	exists, err := uc.DoctorDirectory.DoctorExists(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	var (
		appointments []models.Appointment
	)
	if date == "" {
		appointments, err = uc.AppointmentRepository.FindByDoctor(ctx, doctorID)
	} else {
		if _, parseErr := utils.ParseDate(date); parseErr != nil {
			return nil, exceptions.ErrCannotParseDate(parseErr)
		}
		appointments, err = uc.AppointmentRepository.FindByDoctorAndDate(ctx, doctorID, date)
	}
	if err != nil {
		return nil, err
	}
	return responses.NewAppointmentListResponse(appointments), nil
}
