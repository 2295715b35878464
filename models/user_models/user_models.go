package user_models

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

var ErrUserNotFound = errors.New("user not found")

// User is a marketplace account. Role disambiguates experts from seekers; both
// live in the same table. PushToken is nil until the client registers a device.
type User struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	PushToken *string   `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName joins first and last name for message rendering.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// GetUserByID fetches a user row by primary key.
func GetUserByID(ctx context.Context, db shared_models.Querier, userID uuid.UUID) (*User, error) {
	query := `
		SELECT id, first_name, last_name, email, role, push_token, created_at
		FROM users
		WHERE id = $1`

	var user User
	err := db.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Role,
		&user.PushToken,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// GetPushToken returns the registered device token for a user, or nil when the
// user has none.
func GetPushToken(ctx context.Context, db shared_models.Querier, userID uuid.UUID) (*string, error) {
	var token *string
	err := db.QueryRow(ctx, `SELECT push_token FROM users WHERE id = $1`, userID).Scan(&token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch push token: %w", err)
	}
	return token, nil
}

// UpdatePushToken registers or clears the device token for push delivery.
func UpdatePushToken(ctx context.Context, db shared_models.Querier, userID uuid.UUID, token *string) error {
	cmdTag, err := db.Exec(ctx, `UPDATE users SET push_token = $2 WHERE id = $1`, userID, token)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to update push token for user %s: %v", userID, err)
		return fmt.Errorf("failed to update push token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
