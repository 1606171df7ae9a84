package requests

import "caresync-service/internal/pkg/utils"

type CreateSchedule struct {
	DoctorID            string `json:"doctor_id" validate:"required"`
	DayOfWeek           string `json:"day_of_week" validate:"required,day_of_week"`
	StartTime           string `json:"start_time" validate:"required,clock_time"`
	EndTime             string `json:"end_time" validate:"required,clock_time"`
	SlotDurationMinutes int    `json:"slot_duration_minutes" validate:"omitempty,gte=5,lte=240"`
	IsAvailable         *bool  `json:"is_available"`
}

func (r *CreateSchedule) Validate() error {
	return utils.ValidateStruct(r)
}

type UpdateSchedule struct {
	StartTime           string `json:"start_time" validate:"required,clock_time"`
	EndTime             string `json:"end_time" validate:"required,clock_time"`
	SlotDurationMinutes int    `json:"slot_duration_minutes" validate:"omitempty,gte=5,lte=240"`
	IsAvailable         *bool  `json:"is_available"`
}

func (r *UpdateSchedule) Validate() error {
	return utils.ValidateStruct(r)
}
