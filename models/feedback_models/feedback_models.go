package feedback_models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joy095/consult/logger"
	"github.com/joy095/consult/models/shared_models"
)

// SessionFeedback is a one-time post-session submission: a rating and review
// from the seeker, or a free-text note from the expert.
type SessionFeedback struct {
	ID        uuid.UUID `json:"id"`
	BookingID uuid.UUID `json:"booking_id"`
	UserID    uuid.UUID `json:"user_id"`
	UserRole  string    `json:"user_role"`
	Rating    *int      `json:"rating,omitempty"`
	Review    *string   `json:"review,omitempty"`
	Message   *string   `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSessionFeedback builds a feedback row with a fresh UUIDv7.
func NewSessionFeedback(bookingID, userID uuid.UUID, role string, rating *int, review, message *string) (*SessionFeedback, error) {
	id, err := shared_models.GenerateUUIDv7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for feedback: %w", err)
	}
	return &SessionFeedback{
		ID:        id,
		BookingID: bookingID,
		UserID:    userID,
		UserRole:  role,
		Rating:    rating,
		Review:    review,
		Message:   message,
		CreatedAt: time.Now(),
	}, nil
}

// FeedbackExistsTx reports whether the user already submitted feedback for the
// booking. Runs in the caller's transaction so the check and the insert see
// the same snapshot.
func FeedbackExistsTx(ctx context.Context, tx pgx.Tx, bookingID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM session_feedback WHERE booking_id = $1 AND user_id = $2)`,
		bookingID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existing feedback: %w", err)
	}
	return exists, nil
}

// CreateFeedbackTx inserts the feedback row inside the caller's transaction.
func CreateFeedbackTx(ctx context.Context, tx pgx.Tx, fb *SessionFeedback) error {
	query := `
		INSERT INTO session_feedback (id, booking_id, user_id, user_role, rating, review, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		fb.ID, fb.BookingID, fb.UserID, fb.UserRole, fb.Rating, fb.Review, fb.Message, fb.CreatedAt)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert feedback for booking %s: %v", fb.BookingID, err)
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

// ListFeedbackForBooking returns every feedback row tied to the booking.
func ListFeedbackForBooking(ctx context.Context, db shared_models.Querier, bookingID uuid.UUID) ([]SessionFeedback, error) {
	query := `
		SELECT id, booking_id, user_id, user_role, rating, review, message, created_at
		FROM session_feedback
		WHERE booking_id = $1
		ORDER BY created_at ASC`

	rows, err := db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	return collectFeedback(rows)
}

// ListSeekerFeedbackForExpert returns all seeker-authored feedback across an
// expert's bookings, newest first.
func ListSeekerFeedbackForExpert(ctx context.Context, db shared_models.Querier, expertID uuid.UUID) ([]SessionFeedback, error) {
	query := `
		SELECT f.id, f.booking_id, f.user_id, f.user_role, f.rating, f.review, f.message, f.created_at
		FROM session_feedback f
		JOIN bookings b ON b.id = f.booking_id
		WHERE b.expert_id = $1 AND f.user_role = $2
		ORDER BY f.created_at DESC`

	rows, err := db.Query(ctx, query, expertID, shared_models.RoleSeeker)
	if err != nil {
		return nil, fmt.Errorf("failed to list expert feedback: %w", err)
	}
	defer rows.Close()

	return collectFeedback(rows)
}

func collectFeedback(rows pgx.Rows) ([]SessionFeedback, error) {
	feedbacks := make([]SessionFeedback, 0)
	for rows.Next() {
		var fb SessionFeedback
		if err := rows.Scan(&fb.ID, &fb.BookingID, &fb.UserID, &fb.UserRole,
			&fb.Rating, &fb.Review, &fb.Message, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		feedbacks = append(feedbacks, fb)
	}
	return feedbacks, rows.Err()
}
