package booking_status_controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joy095/consult/controllers/notification_controller"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAuth stands in for the JWT middleware and injects the acting user.
func mockAuth(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID.String())
		c.Next()
	}
}

func newStatusRouter(authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	bc := &BookingStatusController{}
	if authenticated {
		r.Use(mockAuth(uuid.New()))
	}
	r.PUT("/bookings/:booking_id/status", bc.UpdateBookingStatus)
	return r
}

func putStatus(r *gin.Engine, bookingID string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("PUT", "/bookings/"+bookingID+"/status", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateBookingStatusValidation(t *testing.T) {
	t.Run("InvalidBookingID", func(t *testing.T) {
		r := newStatusRouter(true)
		w := putStatus(r, "not-a-uuid", map[string]interface{}{"status": "accepted"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid booking id")
	})

	t.Run("MissingStatus", func(t *testing.T) {
		r := newStatusRouter(true)
		w := putStatus(r, uuid.New().String(), map[string]interface{}{"reason": "running late"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid request body")
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		r := newStatusRouter(false)
		w := putStatus(r, uuid.New().String(), map[string]interface{}{"status": "accepted"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// lockedBookingRows builds the row shape GetBookingWithPartiesForUpdate scans.
func lockedBookingRows(bookingID, expertID, seekerID uuid.UUID, status string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "expert_id", "seeker_id", "appointment_date", "start_time", "end_time",
		"session_type", "status", "expert_reason", "seeker_reason", "amount",
		"created_at", "updated_at", "expert_name", "seeker_name",
	}).AddRow(bookingID, expertID, seekerID, now, "10:00", "11:00",
		"video", status, nil, nil, 500.0, now, now, "Asha Verma", "Rohit Nair")
}

func TestTransitionRejectsNonParty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	bc, err := NewBookingStatusController(mock, notification_controller.NewDispatcher(nil, nil, nil, false))
	require.NoError(t, err)

	bookingID := uuid.New()
	stranger := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings").WithArgs(bookingID).
		WillReturnRows(lockedBookingRows(bookingID, uuid.New(), uuid.New(), "pending"))
	mock.ExpectRollback()

	_, err = bc.transitionBookingStatus(context.Background(), bookingID, "accepted", "", stranger)
	assert.ErrorIs(t, err, ErrNotParticipant)

	// No UPDATE, no notification insert, no commit.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionConflictWritesNothing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	bc, err := NewBookingStatusController(mock, notification_controller.NewDispatcher(nil, nil, nil, false))
	require.NoError(t, err)

	bookingID := uuid.New()
	expertID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings").WithArgs(bookingID).
		WillReturnRows(lockedBookingRows(bookingID, expertID, uuid.New(), "completed"))
	mock.ExpectRollback()

	_, err = bc.transitionBookingStatus(context.Background(), bookingID, "accepted", "", expertID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBookingValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	bc := &BookingStatusController{}
	r.GET("/bookings/:booking_id", bc.GetBooking)

	req, _ := http.NewRequest("GET", "/bookings/garbage", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
