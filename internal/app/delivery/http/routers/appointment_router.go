package routers

import (
	"caresync-service/internal/app/delivery/http/controllers"
	"caresync-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(r chi.Router, m *middlewares.Middlewares, controller *controllers.AppointmentController) {
	r.Post("/", controller.BookAppointment)
	r.Get("/{appointmentID}", controller.GetAppointmentByID)
	r.Post("/{appointmentID}/cancel", controller.CancelAppointment)
	r.Post("/{appointmentID}/reschedule", controller.RescheduleAppointment)

	r.Group(func(r chi.Router) {
		r.Use(m.StaffAuth)
		r.Post("/{appointmentID}/complete", controller.CompleteAppointment)
		r.Post("/{appointmentID}/no-show", controller.MarkNoShow)
		r.Delete("/{appointmentID}", controller.DeleteAppointment)
	})

	r.Get("/doctor/{doctorID}", controller.ListAppointmentsByDoctor)
}
