package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

func DayOfWeekFromTime(t time.Time) DayOfWeek {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// DoctorSchedule is the weekly availability template for one doctor.
// One document per (doctor, day of week).
type DoctorSchedule struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DoctorID            string             `bson:"doctor_id" json:"doctor_id"`
	DayOfWeek           DayOfWeek          `bson:"day_of_week" json:"day_of_week"`
	StartTime           string             `bson:"start_time" json:"start_time"`
	EndTime             string             `bson:"end_time" json:"end_time"`
	SlotDurationMinutes int                `bson:"slot_duration_minutes" json:"slot_duration_minutes"`
	IsAvailable         bool               `bson:"is_available" json:"is_available"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updated_at"`
}

const DefaultSlotDurationMinutes = 30

// Slot is a derived bookable interval, never persisted.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}
