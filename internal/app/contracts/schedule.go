package contracts

import (
	"caresync-service/internal/app/models"
	"caresync-service/internal/pkg/dto/requests"
	"caresync-service/internal/pkg/dto/responses"
	"context"
)

type ScheduleRepository interface {
	Insert(ctx context.Context, schedule *models.DoctorSchedule) (string, error)
	Update(ctx context.Context, schedule *models.DoctorSchedule) error
	FindByID(ctx context.Context, scheduleID string) (*models.DoctorSchedule, error)
	FindByDoctorAndDay(ctx context.Context, doctorID string, day models.DayOfWeek) (*models.DoctorSchedule, error)
	FindByDoctor(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error)
}

type ScheduleUsecase interface {
	CreateSchedule(ctx context.Context, request *requests.CreateSchedule) (*responses.Schedule, error)
	UpdateSchedule(ctx context.Context, doctorID, scheduleID string, request *requests.UpdateSchedule) (*responses.Schedule, error)
	ListSchedulesByDoctor(ctx context.Context, doctorID string) ([]responses.Schedule, error)
	GetAvailableSlots(ctx context.Context, doctorID, date string) ([]models.Slot, error)
}
