package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joy095/consult/clients"
	"github.com/joy095/consult/config/db"
	"github.com/joy095/consult/controllers/session_controller"
	middleware "github.com/joy095/consult/middlewares"
	"github.com/joy095/consult/middlewares/auth"
)

func RegisterSessionRoutes(router *gin.Engine, builder *clients.RTCTokenBuilder) {
	controller, err := session_controller.NewSessionController(db.DB, builder)
	if err != nil {
		panic(fmt.Errorf("failed to initialize session controller: %w", err))
	}

	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("/sessions/:booking_id/join", middleware.NewRateLimiter("20-1m", "session-join"), controller.JoinSession)
	}
}
