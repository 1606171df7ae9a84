package routers

import (
	"caresync-service/internal/app/delivery/http/controllers"
	"caresync-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachBillingRoutes(r chi.Router, m *middlewares.Middlewares, controller *controllers.BillingController) {
	r.Get("/{billID}", controller.GetBillByID)
	r.Get("/number/{billNumber}", controller.GetBillByNumber)

	r.Group(func(r chi.Router) {
		r.Use(m.StaffAuth)
		r.Post("/", controller.CreateBill)
		r.Post("/{billID}/items", controller.AddBillItem)
		r.Delete("/{billID}/items/{itemID}", controller.RemoveBillItem)
		r.Post("/{billID}/discount", controller.ApplyDiscount)
		r.Post("/{billID}/cancel", controller.CancelBill)
	})
}
