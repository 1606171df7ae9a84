package requests

import "caresync-service/internal/pkg/utils"

type BookAppointment struct {
	PatientID string `json:"patient_id" validate:"required"`
	DoctorID  string `json:"doctor_id" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,clock_time"`
	Reason    string `json:"reason" validate:"required,max=500"`
	Notes     string `json:"notes" validate:"omitempty,max=2000"`
}

func (r *BookAppointment) Validate() error {
	return utils.ValidateStruct(r)
}

type CancelAppointment struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

func (r *CancelAppointment) Validate() error {
	return utils.ValidateStruct(r)
}

type RescheduleAppointment struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,clock_time"`
}

func (r *RescheduleAppointment) Validate() error {
	return utils.ValidateStruct(r)
}
