package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/joy095/consult/config/db"
	"github.com/joy095/consult/controllers/notification_controller"
	"github.com/joy095/consult/middlewares/auth"
)

func RegisterNotificationRoutes(router *gin.Engine) {
	controller := notification_controller.NewNotificationController(db.DB)

	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware())
	{
		protected.GET("/notifications", controller.ListNotifications)
		protected.PATCH("/notifications/:notification_id/read", controller.MarkRead)
	}
}
