package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "SCHEDULED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
	AppointmentNoShow    AppointmentStatus = "NO_SHOW"
)

// ActiveAppointmentStatuses are the statuses that keep a slot occupied.
func ActiveAppointmentStatuses() []AppointmentStatus {
	return []AppointmentStatus{AppointmentScheduled, AppointmentCompleted, AppointmentNoShow}
}

func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentCompleted || s == AppointmentCancelled || s == AppointmentNoShow
}

type Appointment struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AppointmentNumber  string             `bson:"appointment_number" json:"appointment_number"`
	PatientID          string             `bson:"patient_id" json:"patient_id"`
	DoctorID           string             `bson:"doctor_id" json:"doctor_id"`
	Date               string             `bson:"date" json:"date"`
	StartTime          string             `bson:"start_time" json:"start_time"`
	EndTime            string             `bson:"end_time" json:"end_time"`
	Status             AppointmentStatus  `bson:"status" json:"status"`
	Reason             string             `bson:"reason" json:"reason"`
	Notes              string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CancellationReason string             `bson:"cancellation_reason,omitempty" json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time         `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at"`
}
