package contracts

import (
	"caresync-service/internal/app/models"
	"caresync-service/internal/pkg/dto/requests"
	"caresync-service/internal/pkg/dto/responses"
	"context"
)

type AppointmentRepository interface {
	Insert(ctx context.Context, appointment *models.Appointment) (string, error)
	Update(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	// FindActiveByDoctorDateTime returns the non-cancelled appointment that
	// occupies (doctor, date, start time), or nil when the slot is free.
	FindActiveByDoctorDateTime(ctx context.Context, doctorID, date, startTime string) (*models.Appointment, error)
	// FindActiveStartTimesByDoctorAndDate lists start times of non-cancelled
	// appointments for the doctor on the given date.
	FindActiveStartTimesByDoctorAndDate(ctx context.Context, doctorID, date string) ([]string, error)
	FindByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	FindByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	FindByDoctorAndDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error)
	Delete(ctx context.Context, appointmentID string) error
}

type AppointmentUsecase interface {
	BookAppointment(ctx context.Context, request *requests.BookAppointment) (*responses.Appointment, error)
	GetAppointmentByID(ctx context.Context, appointmentID string) (*responses.Appointment, error)
	CompleteAppointment(ctx context.Context, appointmentID string) (*responses.Appointment, error)
	CancelAppointment(ctx context.Context, appointmentID string, request *requests.CancelAppointment) (*responses.Appointment, error)
	MarkNoShow(ctx context.Context, appointmentID string) (*responses.Appointment, error)
	RescheduleAppointment(ctx context.Context, appointmentID string, request *requests.RescheduleAppointment) (*responses.Appointment, error)
	ListAppointmentsByPatient(ctx context.Context, patientID string) ([]responses.Appointment, error)
	ListAppointmentsByDoctor(ctx context.Context, doctorID, date string) ([]responses.Appointment, error)
	DeleteAppointment(ctx context.Context, appointmentID string) error
}
