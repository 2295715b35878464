package booking_status_controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joy095/consult/controllers/notification_controller"
	"github.com/joy095/consult/logger"
	"github.com/joy095/consult/models/booking_models"
	"github.com/joy095/consult/models/notification_models"
	"github.com/joy095/consult/models/shared_models"
	"github.com/joy095/consult/models/user_models"
	"github.com/joy095/consult/utils"
)

// BookingStatusController owns the booking status transition workflow: it
// validates the requested transition against the state machine and the
// caller's role, persists it, and fans out the derived notification.
type BookingStatusController struct {
	db         shared_models.Pool
	dispatcher *notification_controller.Dispatcher
}

// NewBookingStatusController creates and returns a new instance of
// BookingStatusController.
func NewBookingStatusController(db shared_models.Pool, dispatcher *notification_controller.Dispatcher) (*BookingStatusController, error) {
	if db == nil {
		return nil, errors.New("database pool cannot be nil")
	}
	if dispatcher == nil {
		return nil, errors.New("dispatcher cannot be nil")
	}
	return &BookingStatusController{db: db, dispatcher: dispatcher}, nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// transitionResult carries everything the handler needs after commit.
type transitionResult struct {
	booking      *booking_models.Booking
	notification *notification_models.Notification
	recipientID  uuid.UUID
}

// UpdateBookingStatus handles PUT /bookings/:booking_id/status.
func (bc *BookingStatusController) UpdateBookingStatus(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("booking_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid booking id"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body: " + err.Error()})
		return
	}

	actorID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	result, err := bc.transitionBookingStatus(c.Request.Context(), bookingID, req.Status, req.Reason, actorID)
	if err != nil {
		logger.InfoLogger.Errorf("Booking %s status transition failed: %v", bookingID, err)

		switch {
		case errors.Is(err, booking_models.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Booking not found"})
		case errors.Is(err, ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Not authorized to update this booking"})
		case errors.Is(err, ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unknown booking status"})
		case errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": utils.InternalError("Failed to update booking status", err)})
		}
		return
	}

	// The transition is committed; notification side effects must not fail it.
	bc.runSideEffects(c.Request.Context(), result)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result.booking})
}

// transitionBookingStatus performs the workflow inside one transaction: lock
// the booking row, check party and state machine, write the transition and the
// derived in-app notification, commit.
func (bc *BookingStatusController) transitionBookingStatus(ctx context.Context, bookingID uuid.UUID, requestedStatus, reason string, actorID uuid.UUID) (*transitionResult, error) {
	if !shared_models.IsValidBookingStatus(requestedStatus) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, requestedStatus)
	}

	tx, err := bc.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	booking, err := booking_models.GetBookingWithPartiesForUpdate(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}

	var actorRole, actorName string
	switch actorID {
	case booking.ExpertID:
		actorRole, actorName = shared_models.RoleExpert, booking.ExpertName
	case booking.SeekerID:
		actorRole, actorName = shared_models.RoleSeeker, booking.SeekerName
	default:
		return nil, ErrNotParticipant
	}

	if !transitionAllowed(booking.Status, requestedStatus, actorRole) {
		return nil, fmt.Errorf("%w: %s -> %s by %s", ErrInvalidTransition, booking.Status, requestedStatus, actorRole)
	}

	updated, err := booking_models.UpdateBookingStatusTx(ctx, tx, bookingID, requestedStatus, reason, actorRole == shared_models.RoleExpert)
	if err != nil {
		return nil, err
	}

	result := &transitionResult{booking: updated}

	if spec, ok := deriveNotification(actorRole, requestedStatus); ok {
		recipientID := booking.SeekerID
		if spec.recipientIsExpert {
			recipientID = booking.ExpertID
		}

		message := renderMessage(spec.notifType, actorName, booking)
		notification, err := bc.dispatcher.CreateInTx(ctx, tx, recipientID, spec.notifType, message, bookingID, spec.statusColor)
		if err != nil {
			return nil, err
		}
		result.notification = notification
		result.recipientID = recipientID
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.InfoLogger.Infof("Booking %s moved to %s by %s", bookingID, requestedStatus, actorRole)
	return result, nil
}

// runSideEffects fans the committed notification out to push and email.
func (bc *BookingStatusController) runSideEffects(ctx context.Context, result *transitionResult) {
	if result.notification == nil {
		return
	}

	recipient, err := user_models.GetUserByID(ctx, bc.db, result.recipientID)
	if err != nil {
		logger.ErrorLogger.Errorf("Could not load recipient %s for notification %s: %v",
			result.recipientID, result.notification.ID, err)
		return
	}

	bc.dispatcher.DispatchSideEffects(ctx, result.notification, recipient)
}

// ListExpertBookings handles GET /experts/me/bookings and returns the
// caller's bookings as the expert side, newest first.
func (bc *BookingStatusController) ListExpertBookings(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	bookings, err := booking_models.ListBookingsForExpert(c.Request.Context(), bc.db, userID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list bookings for expert %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": bookings})
}

// GetBooking handles GET /bookings/:booking_id. Only parties may read.
func (bc *BookingStatusController) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("booking_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid booking id"})
		return
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	booking, err := booking_models.GetBookingByID(c.Request.Context(), bc.db, bookingID)
	if err != nil {
		if errors.Is(err, booking_models.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch booking"})
		return
	}

	if userID != booking.ExpertID && userID != booking.SeekerID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Not authorized to view this booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": booking})
}
