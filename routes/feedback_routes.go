package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joy095/consult/config/db"
	"github.com/joy095/consult/controllers/feedback_controller"
	middleware "github.com/joy095/consult/middlewares"
	"github.com/joy095/consult/middlewares/auth"
)

func RegisterFeedbackRoutes(router *gin.Engine) {
	controller, err := feedback_controller.NewFeedbackController(db.DB)
	if err != nil {
		panic(fmt.Errorf("failed to initialize feedback controller: %w", err))
	}

	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("/session-feedback", middleware.NewRateLimiter("10-1m", "feedback-submit"), controller.SubmitFeedback)
		protected.GET("/session-feedback/booking/:booking_id", controller.GetFeedbackForBooking)
		protected.GET("/session-feedback/expert/:expert_id", controller.GetFeedbackForExpert)
	}
}
