package responses

import (
	"caresync-service/internal/app/models"
	"time"
)

type Appointment struct {
	ID                 string     `json:"id"`
	AppointmentNumber  string     `json:"appointment_number"`
	PatientID          string     `json:"patient_id"`
	DoctorID           string     `json:"doctor_id"`
	Date               string     `json:"date"`
	StartTime          string     `json:"start_time"`
	EndTime            string     `json:"end_time"`
	Status             string     `json:"status"`
	Reason             string     `json:"reason"`
	Notes              string     `json:"notes,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

func NewAppointmentResponse(appointment *models.Appointment) *Appointment {
	return &Appointment{
		ID:                 appointment.ID.Hex(),
		AppointmentNumber:  appointment.AppointmentNumber,
		PatientID:          appointment.PatientID,
		DoctorID:           appointment.DoctorID,
		Date:               appointment.Date,
		StartTime:          appointment.StartTime,
		EndTime:            appointment.EndTime,
		Status:             string(appointment.Status),
		Reason:             appointment.Reason,
		Notes:              appointment.Notes,
		CancellationReason: appointment.CancellationReason,
		CancelledAt:        appointment.CancelledAt,
		CreatedAt:          appointment.CreatedAt,
	}
}

func NewAppointmentListResponse(appointments []models.Appointment) []Appointment {
	result := make([]Appointment, 0, len(appointments))
	for idx := range appointments {
		result = append(result, *NewAppointmentResponse(&appointments[idx]))
	}
	return result
}
