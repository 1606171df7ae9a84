package routers

import (
	"caresync-service/internal/app/delivery/http/controllers"
	"caresync-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

// Patient-scoped read views over appointments and bills.
func attachPatientViewRoutes(
	r chi.Router,
	m *middlewares.Middlewares,
	appointmentController *controllers.AppointmentController,
	billingController *controllers.BillingController,
) {
	r.Get("/{patientID}/appointments", appointmentController.ListAppointmentsByPatient)
	r.Get("/{patientID}/bills", billingController.ListBillsByPatient)
}
