package routers

import (
	"caresync-service/internal/app/delivery/http/controllers"
	"caresync-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRoutes(r chi.Router, m *middlewares.Middlewares, controller *controllers.PaymentController) {
	r.Get("/bill/{billID}", controller.ListPaymentsByBill)
	r.Get("/{transactionNumber}", controller.GetPaymentByTransactionNumber)

	r.Group(func(r chi.Router) {
		r.Use(m.StaffAuth)
		r.Post("/", controller.RecordPayment)
	})
}
