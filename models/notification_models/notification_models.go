package notification_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joy095/consult/logger"
	"github.com/joy095/consult/models/shared_models"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification is an in-app record owned by the recipient. Rows are created by
// the dispatcher and only ever mutated to flip the read flag.
type Notification struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	RelatedID   uuid.UUID `json:"related_id"`
	StatusColor string    `json:"status_color"`
	ReadStatus  bool      `json:"read_status"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewNotification builds an unread notification with a fresh UUIDv7.
func NewNotification(userID uuid.UUID, notifType, message string, relatedID uuid.UUID, statusColor string) (*Notification, error) {
	id, err := shared_models.GenerateUUIDv7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for notification: %w", err)
	}
	return &Notification{
		ID:          id,
		UserID:      userID,
		Type:        notifType,
		Message:     message,
		RelatedID:   relatedID,
		StatusColor: statusColor,
		ReadStatus:  false,
		CreatedAt:   time.Now(),
	}, nil
}

// CreateNotificationTx inserts the notification inside the caller's
// transaction so the in-app record commits atomically with the event that
// produced it.
func CreateNotificationTx(ctx context.Context, tx pgx.Tx, n *Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, message, related_id, status_color, read_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		n.ID, n.UserID, n.Type, n.Message, n.RelatedID, n.StatusColor, n.ReadStatus, n.CreatedAt)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert notification for user %s: %v", n.UserID, err)
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// ListNotificationsForUser returns the recipient's notifications, newest first.
func ListNotificationsForUser(ctx context.Context, db shared_models.Querier, userID uuid.UUID, limit int) ([]Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `
		SELECT id, user_id, type, message, related_id, status_color, read_status, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]Notification, 0)
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &n.RelatedID,
			&n.StatusColor, &n.ReadStatus, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationRead flips the read flag. The recipient check is part of the
// statement so a user can only touch their own rows.
func MarkNotificationRead(ctx context.Context, db shared_models.Querier, notificationID, userID uuid.UUID) error {
	cmdTag, err := db.Exec(ctx,
		`UPDATE notifications SET read_status = TRUE WHERE id = $1 AND user_id = $2`,
		notificationID, userID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to mark notification %s read: %v", notificationID, err)
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
