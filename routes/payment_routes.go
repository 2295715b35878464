package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joy095/consult/clients"
	"github.com/joy095/consult/config/db"
	"github.com/joy095/consult/controllers/payment_controller"
	middleware "github.com/joy095/consult/middlewares"
	"github.com/joy095/consult/middlewares/auth"
)

func RegisterPaymentRoutes(router *gin.Engine, rz clients.RazorpayClientWrapper, webhookSecret string) {
	controller, err := payment_controller.NewPaymentController(db.DB, rz, webhookSecret)
	if err != nil {
		panic(fmt.Errorf("failed to initialize payment controller: %w", err))
	}

	// The webhook is authenticated by its signature, not a bearer token.
	router.POST("/payments/webhook", middleware.NewRateLimiter("120-1m", "payment-webhook"), controller.HandleWebhook)

	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("/bookings/:booking_id/payment-order", middleware.NewRateLimiter("10-1m", "payment-order"), controller.CreatePaymentOrder)
	}
}
