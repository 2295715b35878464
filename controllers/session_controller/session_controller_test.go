package session_controller

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joy095/consult/clients"
	"github.com/stretchr/testify/assert"
)

func TestJoinSessionValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(authenticated bool) *gin.Engine {
		r := gin.New()
		sc := &SessionController{builder: clients.NewRTCTokenBuilder("test-secret", time.Minute)}
		if authenticated {
			r.Use(func(c *gin.Context) {
				c.Set("user_id", uuid.New().String())
				c.Next()
			})
		}
		r.POST("/sessions/:booking_id/join", sc.JoinSession)
		return r
	}

	t.Run("InvalidBookingID", func(t *testing.T) {
		r := newRouter(true)
		req, _ := http.NewRequest("POST", "/sessions/not-a-uuid/join", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		r := newRouter(false)
		req, _ := http.NewRequest("POST", "/sessions/"+uuid.New().String()+"/join", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestJoinableStatuses(t *testing.T) {
	assert.True(t, joinableStatuses["accepted"])
	assert.True(t, joinableStatuses["confirmed"])
	assert.False(t, joinableStatuses["pending"])
	assert.False(t, joinableStatuses["completed"])
	assert.False(t, joinableStatuses["cancelled"])
}
