package schedules

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

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type scheduleUsecase struct {
	ScheduleRepository    contracts.ScheduleRepository
	AppointmentRepository contracts.AppointmentRepository
	DoctorDirectory       contracts.DoctorDirectory
	RedisRepository       contracts.RedisRepository
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	Now                   func() time.Time
}

var (
	scheduleUsecaseInstance contracts.ScheduleUsecase
	onceScheduleUsecase     sync.Once
)

func NewScheduleUsecase(
	scheduleRepository contracts.ScheduleRepository,
	appointmentRepository contracts.AppointmentRepository,
	doctorDirectory contracts.DoctorDirectory,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ScheduleUsecase {
	onceScheduleUsecase.Do(func() {
		instance := &scheduleUsecase{
			ScheduleRepository:    scheduleRepository,
			AppointmentRepository: appointmentRepository,
			DoctorDirectory:       doctorDirectory,
			RedisRepository:       redisRepository,
			InternalConfig:        internalConfig,
			Log:                   logger,
			Now:                   time.Now,
		}
		scheduleUsecaseInstance = instance
	})
	return scheduleUsecaseInstance
}

func slotCacheKey(doctorID, date string) string {
	return fmt.Sprintf("slots:doctor:%s:%s", doctorID, date)
}

func (uc *scheduleUsecase) CreateSchedule(ctx context.Context, request *requests.CreateSchedule) (*responses.Schedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.CreateSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String("day_of_week", request.DayOfWeek),
	)

	exists, err := uc.DoctorDirectory.DoctorExists(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	startMinutes, err := utils.ParseClock(request.StartTime)
	if err != nil {
		return nil, exceptions.ErrCannotParseClock(err)
	}
	endMinutes, err := utils.ParseClock(request.EndTime)
	if err != nil {
		return nil, exceptions.ErrCannotParseClock(err)
	}
	if startMinutes >= endMinutes {
		return nil, exceptions.ErrSlotNotOnSchedule(fmt.Errorf("start time %s is not before end time %s", request.StartTime, request.EndTime))
	}

	existing, err := uc.ScheduleRepository.FindByDoctorAndDay(ctx, request.DoctorID, models.DayOfWeek(request.DayOfWeek))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrScheduleAlreadyExists(nil)
	}

	duration := request.SlotDurationMinutes
	if duration == 0 {
		duration = models.DefaultSlotDurationMinutes
	}
	available := true
	if request.IsAvailable != nil {
		available = *request.IsAvailable
	}

	now := uc.Now()
	schedule := &models.DoctorSchedule{
		DoctorID:            request.DoctorID,
		DayOfWeek:           models.DayOfWeek(request.DayOfWeek),
		StartTime:           request.StartTime,
		EndTime:             request.EndTime,
		SlotDurationMinutes: duration,
		IsAvailable:         available,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	scheduleID, err := uc.ScheduleRepository.Insert(ctx, schedule)
	if err != nil {
		return nil, err
	}

	created, err := uc.ScheduleRepository.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, exceptions.ErrScheduleNotFound(nil)
	}

	uc.Log.Info("scheduleUsecase.CreateSchedule succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, scheduleID),
	)
	return responses.NewScheduleResponse(created), nil
}

func (uc *scheduleUsecase) UpdateSchedule(ctx context.Context, doctorID, scheduleID string, request *requests.UpdateSchedule) (*responses.Schedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.UpdateSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingScheduleIDKey, scheduleID),
	)

	schedule, err := uc.ScheduleRepository.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	// a schedule reached through another doctor's URL does not exist
	// as far as that caller is concerned
	if schedule == nil || schedule.DoctorID != doctorID {
		return nil, exceptions.ErrScheduleNotFound(nil)
	}

	startMinutes, err := utils.ParseClock(request.StartTime)
	if err != nil {
		return nil, exceptions.ErrCannotParseClock(err)
	}
	endMinutes, err := utils.ParseClock(request.EndTime)
	if err != nil {
		return nil, exceptions.ErrCannotParseClock(err)
	}
	if startMinutes >= endMinutes {
		return nil, exceptions.ErrSlotNotOnSchedule(fmt.Errorf("start time %s is not before end time %s", request.StartTime, request.EndTime))
	}

	schedule.StartTime = request.StartTime
	schedule.EndTime = request.EndTime
	if request.SlotDurationMinutes != 0 {
		schedule.SlotDurationMinutes = request.SlotDurationMinutes
	}
	if request.IsAvailable != nil {
		schedule.IsAvailable = *request.IsAvailable
	}
	schedule.UpdatedAt = uc.Now()

	if err := uc.ScheduleRepository.Update(ctx, schedule); err != nil {
		return nil, err
	}

	uc.Log.Info("scheduleUsecase.UpdateSchedule succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, scheduleID),
	)
	return responses.NewScheduleResponse(schedule), nil
}

func (uc *scheduleUsecase) ListSchedulesByDoctor(ctx context.Context, doctorID string) ([]responses.Schedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.ListSchedulesByDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	exists, err := uc.DoctorDirectory.DoctorExists(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	schedules, err := uc.ScheduleRepository.FindByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	result := make([]responses.Schedule, 0, len(schedules))
	for idx := range schedules {
		result = append(result, *responses.NewScheduleResponse(&schedules[idx]))
	}
	return result, nil
}

// GetAvailableSlots derives the bookable slots for one doctor on one date:
// the weekly template minus slots held by non-cancelled appointments, and for
// today also minus slots whose start time has already passed.
func (uc *scheduleUsecase) GetAvailableSlots(ctx context.Context, doctorID, date string) ([]models.Slot, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.GetAvailableSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingDateKey, date),
	)

	requestedDate, err := utils.ParseDate(date)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}

	exists, err := uc.DoctorDirectory.DoctorExists(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	now := uc.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if requestedDate.Before(today) {
		return nil, exceptions.ErrDateInPast(nil)
	}

	cacheKey := slotCacheKey(doctorID, date)
	if cached, err := uc.RedisRepository.Get(ctx, cacheKey); err == nil && cached != "" {
		var slots []models.Slot
		if err := json.Unmarshal([]byte(cached), &slots); err == nil {
			uc.Log.Debug("scheduleUsecase.GetAvailableSlots cache hit",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, cacheKey),
			)
			return slots, nil
		}
	}

	schedule, err := uc.ScheduleRepository.FindByDoctorAndDay(ctx, doctorID, models.DayOfWeekFromTime(requestedDate))
	if err != nil {
		return nil, err
	}
	if schedule == nil || !schedule.IsAvailable {
		return []models.Slot{}, nil
	}

	bookedTimes, err := uc.AppointmentRepository.FindActiveStartTimesByDoctorAndDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	slots, err := generateSlots(schedule, bookedTimes, utils.SameDate(requestedDate, now), utils.MinutesOfDay(now))
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(uc.InternalConfig.App.SlotCacheTTLInSeconds) * time.Second
	if err := uc.RedisRepository.Set(ctx, cacheKey, slots, ttl); err != nil {
		uc.Log.Warn("scheduleUsecase.GetAvailableSlots failed to cache slots",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	uc.Log.Info("scheduleUsecase.GetAvailableSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("slot_count", len(slots)),
	)
	return slots, nil
}

// generateSlots walks the schedule window in slot-duration steps. A candidate
// survives when it fits fully before the window end, is not held by a booked
// start time, and has not already started when the date is today.
func generateSlots(schedule *models.DoctorSchedule, bookedStartTimes []string, isToday bool, nowMinutes int) ([]models.Slot, error) {
	startMinutes, err := utils.ParseClock(schedule.StartTime)
	if err != nil {
		return nil, exceptions.ErrCannotParseClock(err)
	}
	endMinutes, err := utils.ParseClock(schedule.EndTime)
	if err != nil {
		return nil, exceptions.ErrCannotParseClock(err)
	}

	duration := schedule.SlotDurationMinutes
	if duration <= 0 {
		duration = models.DefaultSlotDurationMinutes
	}

	booked := make(map[string]struct{}, len(bookedStartTimes))
	for _, startTime := range bookedStartTimes {
		booked[startTime] = struct{}{}
	}

	slots := []models.Slot{}
	for minutes := startMinutes; minutes+duration <= endMinutes; minutes += duration {
		startTime := utils.FormatClock(minutes)
		if _, taken := booked[startTime]; taken {
			continue
		}
		if isToday && minutes <= nowMinutes {
			continue
		}
		slots = append(slots, models.Slot{
			StartTime: startTime,
			EndTime:   utils.FormatClock(minutes + duration),
			Available: true,
		})
	}
	return slots, nil
}
