package router

import (
	"haven_manager/handler"
	"haven_manager/middleware"
	"haven_manager/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App, h *handler.Handler) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")

	bookings := v1.Group("/bookings")
	bookings.Post("/", middleware.Protected(), validate.CreateBooking(), h.CreateBooking)
	bookings.Get("/", middleware.Protected(), h.GetBookings)
	bookings.Patch("/", middleware.Protected(), validate.UpdateBookingStatus(), h.UpdateBookingStatus)
	bookings.Delete("/", middleware.Protected(), h.DeleteBooking)
	bookings.Get("/:bookingId", middleware.Protected(), validate.GetById("bookingId"), h.GetBookingById)

	users := v1.Group("/users")
	users.Get("/:userId/bookings", middleware.Protected(), validate.GetById("userId"), h.GetUserBookings)

	payments := v1.Group("/booking-payments")
	payments.Post("/", middleware.Protected(), validate.CreateBookingPayment(), h.CreateBookingPayment)
	payments.Get("/", middleware.Protected(), h.GetBookingPayments)
	payments.Get("/:paymentId", middleware.Protected(), validate.GetById("paymentId"), h.GetBookingPaymentById)
	payments.Patch("/", middleware.Protected(), validate.UpdateBookingPayment(), h.UpdateBookingPayment)
	payments.Patch("/:paymentId", middleware.Protected(), validate.GetById("paymentId"), validate.UpdateBookingPayment(), h.UpdateBookingPayment)
	payments.Delete("/:paymentId", middleware.Protected(), validate.GetById("paymentId"), h.DeleteBookingPayment)

	havens := v1.Group("/havens")
	havens.Post("/", middleware.Protected(), validate.CreateHaven(), h.CreateHaven)
	havens.Get("/", middleware.Protected(), h.GetHavens)
	havens.Get("/:havenId", middleware.Protected(), validate.GetById("havenId"), h.GetHavenById)
	havens.Put("/:havenId", middleware.Protected(), validate.GetById("havenId"), validate.UpdateHaven(), h.UpdateHaven)
	havens.Delete("/:havenId", middleware.Protected(), validate.GetById("havenId"), h.DeleteHaven)
	havens.Get("/:havenId/bookings", middleware.Protected(), validate.GetById("havenId"), h.GetHavenBookings)
}
