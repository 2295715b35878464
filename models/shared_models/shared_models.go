package shared_models

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the query surface shared by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pool adds transaction control to Querier. *pgxpool.Pool satisfies it.
// This interface allows for easier testing by mocking database interactions.
type Pool interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Booking status values. Status is only ever written through the booking
// status workflow.
const (
	BookingStatusPending     = "pending"
	BookingStatusConfirmed   = "confirmed"
	BookingStatusAccepted    = "accepted"
	BookingStatusRejected    = "rejected"
	BookingStatusCancelled   = "cancelled"
	BookingStatusRescheduled = "rescheduled"
	BookingStatusCompleted   = "completed"
)

// Session types for a booking.
const (
	SessionTypeVideo = "video"
	SessionTypeAudio = "audio"
	SessionTypeChat  = "chat"
)

// Canonical participant roles.
const (
	RoleExpert = "expert"
	RoleSeeker = "seeker"
)

// Notification event types.
const (
	NotificationSessionAccepted    = "session_accepted"
	NotificationSessionRejected    = "session_rejected"
	NotificationSessionRescheduled = "session_rescheduled"
	NotificationSessionCancelled   = "session_cancelled"
)

// Notification display hints.
const (
	StatusColorSuccess = "success"
	StatusColorError   = "error"
	StatusColorWarning = "warning"
)

var validStatuses = map[string]bool{
	BookingStatusPending:     true,
	BookingStatusConfirmed:   true,
	BookingStatusAccepted:    true,
	BookingStatusRejected:    true,
	BookingStatusCancelled:   true,
	BookingStatusRescheduled: true,
	BookingStatusCompleted:   true,
}

// IsValidBookingStatus reports whether s is a member of the closed status enum.
func IsValidBookingStatus(s string) bool {
	return validStatuses[s]
}

// NormalizeRole maps external role spellings to the canonical value. Clients
// send "seeker" and "solution_seeker" interchangeably; both collapse to
// RoleSeeker. Unknown spellings return "".
func NormalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleExpert:
		return RoleExpert
	case RoleSeeker, "solution_seeker":
		return RoleSeeker
	default:
		return ""
	}
}

// GenerateUUIDv7 generates a new time-ordered UUID for row identity.
func GenerateUUIDv7() (uuid.UUID, error) {
	return uuid.NewV7()
}
