package session_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joy095/consult/clients"
	"github.com/joy095/consult/logger"
	"github.com/joy095/consult/models/booking_models"
	"github.com/joy095/consult/models/shared_models"
	"github.com/joy095/consult/utils"
)

// SessionController issues join credentials for the real-time session channel
// of a booking. The media transport itself belongs to the external provider;
// this end only mints the credential.
type SessionController struct {
	db      shared_models.Querier
	builder *clients.RTCTokenBuilder
}

func NewSessionController(db shared_models.Querier, builder *clients.RTCTokenBuilder) (*SessionController, error) {
	if db == nil {
		return nil, errors.New("database pool cannot be nil")
	}
	if builder == nil {
		return nil, errors.New("token builder cannot be nil")
	}
	return &SessionController{db: db, builder: builder}, nil
}

// joinableStatuses are the booking states with a live session channel.
var joinableStatuses = map[string]bool{
	shared_models.BookingStatusAccepted:  true,
	shared_models.BookingStatusConfirmed: true,
}

// JoinSession handles POST /sessions/:booking_id/join.
func (sc *SessionController) JoinSession(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("booking_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid booking id"})
		return
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return
	}

	booking, err := booking_models.GetBookingByID(c.Request.Context(), sc.db, bookingID)
	if err != nil {
		if errors.Is(err, booking_models.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
			return
		}
		logger.ErrorLogger.Errorf("Failed to fetch booking %s for session join: %v", bookingID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch booking"})
		return
	}

	if userID != booking.ExpertID && userID != booking.SeekerID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to join this session"})
		return
	}

	if !joinableStatuses[booking.Status] {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Session is not joinable in status " + booking.Status})
		return
	}

	credential := sc.builder.BuildToken("session-"+booking.ID.String(), userID.String())

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"session_type": booking.SessionType,
		"credential":   credential,
	})
}
