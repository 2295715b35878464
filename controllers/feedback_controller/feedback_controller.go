package feedback_controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joy095/consult/logger"
	"github.com/joy095/consult/models/booking_models"
	"github.com/joy095/consult/models/feedback_models"
	"github.com/joy095/consult/models/shared_models"
	"github.com/joy095/consult/utils"
)

// FeedbackController handles one-time post-session feedback: a rating and
// review from the seeker, or a note from the expert.
type FeedbackController struct {
	db shared_models.Pool
}

// NewFeedbackController creates and returns a new instance of FeedbackController.
func NewFeedbackController(db shared_models.Pool) (*FeedbackController, error) {
	if db == nil {
		return nil, errors.New("database pool cannot be nil")
	}
	return &FeedbackController{db: db}, nil
}

type SubmitFeedbackRequest struct {
	BookingID string  `json:"booking_id" binding:"required"`
	UserRole  string  `json:"user_role" binding:"required"`
	Rating    *int    `json:"rating"`
	Review    *string `json:"review"`
	Message   *string `json:"message"`
}

// SubmitFeedback handles POST /session-feedback.
func (fc *FeedbackController) SubmitFeedback(c *gin.Context) {
	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body: " + err.Error()})
		return
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid booking id"})
		return
	}

	feedback, err := fc.submitFeedback(c.Request.Context(), bookingID, userID, req)
	if err != nil {
		logger.InfoLogger.Errorf("Feedback submission for booking %s failed: %v", bookingID, err)

		switch {
		case errors.Is(err, booking_models.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
		case errors.Is(err, ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to submit feedback for this booking"})
		case errors.Is(err, ErrInvalidRole), errors.Is(err, ErrRatingRequired), errors.Is(err, ErrRatingOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		case errors.Is(err, ErrDuplicateFeedback):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Feedback already submitted for this booking"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": utils.InternalError("Failed to submit feedback", err)})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "feedbackId": feedback.ID})
}

// submitFeedback runs the checks and the insert inside one transaction so the
// duplicate check and the write see the same snapshot.
func (fc *FeedbackController) submitFeedback(ctx context.Context, bookingID, userID uuid.UUID, req SubmitFeedbackRequest) (*feedback_models.SessionFeedback, error) {
	role := shared_models.NormalizeRole(req.UserRole)
	if role == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, req.UserRole)
	}

	if role == shared_models.RoleSeeker {
		if req.Rating == nil {
			return nil, ErrRatingRequired
		}
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, ErrRatingOutOfRange
		}
	}

	booking, err := booking_models.GetBookingByID(ctx, fc.db, bookingID)
	if err != nil {
		return nil, err
	}
	if userID != booking.ExpertID && userID != booking.SeekerID {
		return nil, ErrNotParticipant
	}

	tx, err := fc.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	exists, err := feedback_models.FeedbackExistsTx(ctx, tx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateFeedback
	}

	var rating *int
	if role == shared_models.RoleSeeker {
		rating = req.Rating
	}
	feedback, err := feedback_models.NewSessionFeedback(bookingID, userID, role, rating, req.Review, req.Message)
	if err != nil {
		return nil, err
	}

	if err := feedback_models.CreateFeedbackTx(ctx, tx, feedback); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.InfoLogger.Infof("Feedback %s recorded for booking %s by %s", feedback.ID, bookingID, role)
	return feedback, nil
}

// GetFeedbackForBooking handles GET /session-feedback/booking/:booking_id.
// Only parties to the booking may read its feedback.
func (fc *FeedbackController) GetFeedbackForBooking(c *gin.Context) {
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

	booking, err := booking_models.GetBookingByID(c.Request.Context(), fc.db, bookingID)
	if err != nil {
		if errors.Is(err, booking_models.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch booking"})
		return
	}

	if userID != booking.ExpertID && userID != booking.SeekerID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to view feedback for this booking"})
		return
	}

	feedbacks, err := feedback_models.ListFeedbackForBooking(c.Request.Context(), fc.db, bookingID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list feedback for booking %s: %v", bookingID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"feedbacks": feedbacks,
		"booking": gin.H{
			"id":        booking.ID,
			"expert_id": booking.ExpertID,
			"seeker_id": booking.SeekerID,
			"status":    booking.Status,
		},
	})
}

// GetFeedbackForExpert handles GET /session-feedback/expert/:expert_id. It
// returns all seeker-authored feedback across the expert's bookings and is
// readable by any authenticated user (it backs the public expert profile).
func (fc *FeedbackController) GetFeedbackForExpert(c *gin.Context) {
	expertID, err := uuid.Parse(c.Param("expert_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid expert id"})
		return
	}

	feedbacks, err := feedback_models.ListSeekerFeedbackForExpert(c.Request.Context(), fc.db, expertID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list feedback for expert %s: %v", expertID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "feedbacks": feedbacks})
}
