package routers

import (
	"caresync-service/internal/app/delivery/http/controllers"
	"caresync-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachScheduleRoutes(r chi.Router, m *middlewares.Middlewares, controller *controllers.ScheduleController) {
	r.Get("/{doctorID}/slots", controller.GetAvailableSlots)
	r.Get("/{doctorID}/schedules", controller.ListSchedulesByDoctor)

	r.Group(func(r chi.Router) {
		r.Use(m.StaffAuth)
		r.Post("/{doctorID}/schedules", controller.CreateSchedule)
		r.Put("/{doctorID}/schedules/{scheduleID}", controller.UpdateSchedule)
	})
}
