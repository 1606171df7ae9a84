package responses

import "caresync-service/internal/app/models"

type Schedule struct {
	ID                  string `json:"id"`
	DoctorID            string `json:"doctor_id"`
	DayOfWeek           string `json:"day_of_week"`
	StartTime           string `json:"start_time"`
	EndTime             string `json:"end_time"`
	SlotDurationMinutes int    `json:"slot_duration_minutes"`
	IsAvailable         bool   `json:"is_available"`
}

func NewScheduleResponse(schedule *models.DoctorSchedule) *Schedule {
	return &Schedule{
		ID:                  schedule.ID.Hex(),
		DoctorID:            schedule.DoctorID,
		DayOfWeek:           string(schedule.DayOfWeek),
		StartTime:           schedule.StartTime,
		EndTime:             schedule.EndTime,
		SlotDurationMinutes: schedule.SlotDurationMinutes,
		IsAvailable:         schedule.IsAvailable,
	}
}
