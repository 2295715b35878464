package booking_models

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

var ErrBookingNotFound = errors.New("booking not found")

// Booking is a scheduled paid session between an expert and a seeker.
// Cancellation is a status value; rows are never deleted.
type Booking struct {
	ID              uuid.UUID `json:"id"`
	ExpertID        uuid.UUID `json:"expert_id"`
	SeekerID        uuid.UUID `json:"seeker_id"`
	AppointmentDate time.Time `json:"appointment_date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	SessionType     string    `json:"session_type"`
	Status          string    `json:"status"`
	ExpertReason    *string   `json:"expert_reason,omitempty"`
	SeekerReason    *string   `json:"seeker_reason,omitempty"`
	Amount          float64   `json:"amount"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BookingWithParties carries the booking row plus denormalized party names for
// notification message rendering.
type BookingWithParties struct {
	Booking
	ExpertName string `json:"expert_name"`
	SeekerName string `json:"seeker_name"`
}

const bookingColumns = `
	b.id, b.expert_id, b.seeker_id, b.appointment_date, b.start_time, b.end_time,
	b.session_type, b.status, b.expert_reason, b.seeker_reason, b.amount,
	b.created_at, b.updated_at`

func scanBooking(row pgx.Row, b *Booking) error {
	return row.Scan(
		&b.ID, &b.ExpertID, &b.SeekerID, &b.AppointmentDate, &b.StartTime,
		&b.EndTime, &b.SessionType, &b.Status, &b.ExpertReason, &b.SeekerReason,
		&b.Amount, &b.CreatedAt, &b.UpdatedAt,
	)
}

// GetBookingByID fetches a booking row by primary key.
func GetBookingByID(ctx context.Context, db shared_models.Querier, bookingID uuid.UUID) (*Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings b WHERE b.id = $1`

	var booking Booking
	if err := scanBooking(db.QueryRow(ctx, query, bookingID), &booking); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch booking %s: %v", bookingID, err)
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return &booking, nil
}

// GetBookingWithPartiesForUpdate loads the booking together with party names
// and locks the booking row for the lifetime of the transaction. Concurrent
// status transitions on the same booking serialize on this lock.
func GetBookingWithPartiesForUpdate(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID) (*BookingWithParties, error) {
	query := `
		SELECT` + bookingColumns + `,
			e.first_name || ' ' || e.last_name AS expert_name,
			s.first_name || ' ' || s.last_name AS seeker_name
		FROM bookings b
		JOIN users e ON e.id = b.expert_id
		JOIN users s ON s.id = b.seeker_id
		WHERE b.id = $1
		FOR UPDATE OF b`

	var bp BookingWithParties
	err := tx.QueryRow(ctx, query, bookingID).Scan(
		&bp.ID, &bp.ExpertID, &bp.SeekerID, &bp.AppointmentDate, &bp.StartTime,
		&bp.EndTime, &bp.SessionType, &bp.Status, &bp.ExpertReason, &bp.SeekerReason,
		&bp.Amount, &bp.CreatedAt, &bp.UpdatedAt,
		&bp.ExpertName, &bp.SeekerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch booking %s for update: %v", bookingID, err)
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return &bp, nil
}

// UpdateBookingStatusTx writes the status transition inside the caller's
// transaction. The reason lands in expert_reason or seeker_reason depending on
// who performed the transition; the other column is left untouched.
func UpdateBookingStatusTx(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID, status, reason string, byExpert bool) (*Booking, error) {
	reasonColumn := "seeker_reason"
	if byExpert {
		reasonColumn = "expert_reason"
	}

	query := fmt.Sprintf(`
		UPDATE bookings b
		SET status = $2, %s = $3, updated_at = NOW()
		WHERE b.id = $1
		RETURNING`+bookingColumns, reasonColumn)

	var booking Booking
	if err := scanBooking(tx.QueryRow(ctx, query, bookingID, status, reason), &booking); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		logger.ErrorLogger.Errorf("Failed to update booking %s status: %v", bookingID, err)
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	logger.InfoLogger.Infof("Booking %s status updated to %s", bookingID, status)
	return &booking, nil
}

// ListBookingsForExpert returns an expert's bookings, newest appointment first.
func ListBookingsForExpert(ctx context.Context, db shared_models.Querier, expertID uuid.UUID) ([]Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM bookings b
		WHERE b.expert_id = $1
		ORDER BY b.appointment_date DESC, b.start_time DESC`

	rows, err := db.Query(ctx, query, expertID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]Booking, 0)
	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
