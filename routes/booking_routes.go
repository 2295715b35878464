package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joy095/consult/config/db"
	"github.com/joy095/consult/controllers/booking_status_controller"
	"github.com/joy095/consult/controllers/notification_controller"
	middleware "github.com/joy095/consult/middlewares"
	"github.com/joy095/consult/middlewares/auth"
)

func RegisterBookingRoutes(router *gin.Engine, dispatcher *notification_controller.Dispatcher) {
	controller, err := booking_status_controller.NewBookingStatusController(db.DB, dispatcher)
	if err != nil {
		panic(fmt.Errorf("failed to initialize booking status controller: %w", err))
	}

	// Protected routes
	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware())
	{
		protected.PUT("/bookings/:booking_id/status", middleware.NewRateLimiter("30-1m", "booking-status"), controller.UpdateBookingStatus)
		protected.GET("/bookings/:booking_id", middleware.NewRateLimiter("60-1m", "booking-get"), controller.GetBooking)
		protected.GET("/experts/me/bookings", middleware.NewRateLimiter("60-1m", "booking-list"), controller.ListExpertBookings)
	}
}
