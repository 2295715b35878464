package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joy095/consult/config/db"
	"github.com/joy095/consult/logger"
	middleware "github.com/joy095/consult/middlewares"
	"github.com/joy095/consult/middlewares/auth"
	"github.com/joy095/consult/models/user_models"
	"github.com/joy095/consult/utils"
)

type pushTokenRequest struct {
	Token *string `json:"token"`
}

// RegisterUserRoutes exposes device token registration. A null token clears
// the registration and stops push delivery for the account.
func RegisterUserRoutes(router *gin.Engine) {
	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware())
	{
		protected.PATCH("/users/push-token", middleware.NewRateLimiter("10-1m", "push-token"), func(c *gin.Context) {
			userID, err := utils.GetUserIDFromContext(c)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
				return
			}

			var req pushTokenRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
				return
			}

			if err := user_models.UpdatePushToken(c.Request.Context(), db.DB, userID, req.Token); err != nil {
				if errors.Is(err, user_models.ErrUserNotFound) {
					c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
					return
				}
				logger.ErrorLogger.Errorf("Failed to update push token for user %s: %v", userID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update push token"})
				return
			}

			c.JSON(http.StatusOK, gin.H{"success": true})
		})

		protected.GET("/users/push-token", func(c *gin.Context) {
			userID, err := utils.GetUserIDFromContext(c)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
				return
			}

			token, err := user_models.GetPushToken(c.Request.Context(), db.DB, userID)
			if err != nil {
				if errors.Is(err, user_models.ErrUserNotFound) {
					c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
					return
				}
				logger.ErrorLogger.Errorf("Failed to fetch push token for user %s: %v", userID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch push token"})
				return
			}

			c.JSON(http.StatusOK, gin.H{"success": true, "registered": token != nil && *token != ""})
		})
	}
}
