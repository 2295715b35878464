package payment_transaction_models

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

var ErrPaymentTransactionNotFound = errors.New("payment transaction not found")

// Payment transaction states mirror the provider's order lifecycle.
const (
	PaymentStatusCreated = "created"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// PaymentTransaction records one payment attempt for a booking against the
// payment provider.
type PaymentTransaction struct {
	ID               uuid.UUID  `json:"id"`
	BookingID        uuid.UUID  `json:"booking_id"`
	ProviderOrderID  string     `json:"provider_order_id"`
	Amount           float64    `json:"amount"`
	Currency         string     `json:"currency"`
	Status           string     `json:"status"`
	PaymentMethod    *string    `json:"payment_method,omitempty"`
	ErrorDescription *string    `json:"error_description,omitempty"`
	CapturedAt       *time.Time `json:"captured_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// NewPaymentTransaction builds an initial "created" transaction for a booking.
func NewPaymentTransaction(bookingID uuid.UUID, providerOrderID string, amount float64, currency string) (*PaymentTransaction, error) {
	id, err := shared_models.GenerateUUIDv7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for payment transaction: %w", err)
	}
	now := time.Now()
	return &PaymentTransaction{
		ID:              id,
		BookingID:       bookingID,
		ProviderOrderID: providerOrderID,
		Amount:          amount,
		Currency:        currency,
		Status:          PaymentStatusCreated,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// CreatePaymentTransaction inserts the transaction record.
func CreatePaymentTransaction(ctx context.Context, db shared_models.Querier, tx *PaymentTransaction) (*PaymentTransaction, error) {
	query := `
		INSERT INTO payment_transactions (
			id, booking_id, provider_order_id, amount, currency, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := db.Exec(ctx, query,
		tx.ID, tx.BookingID, tx.ProviderOrderID, tx.Amount, tx.Currency,
		tx.Status, tx.CreatedAt, tx.UpdatedAt)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert payment transaction for booking %s: %v", tx.BookingID, err)
		return nil, fmt.Errorf("failed to create payment transaction: %w", err)
	}
	return tx, nil
}

// GetPaymentTransactionByOrderID fetches a transaction by the provider's order id.
func GetPaymentTransactionByOrderID(ctx context.Context, db shared_models.Querier, providerOrderID string) (*PaymentTransaction, error) {
	query := `
		SELECT id, booking_id, provider_order_id, amount, currency, status,
			payment_method, error_description, captured_at, created_at, updated_at
		FROM payment_transactions
		WHERE provider_order_id = $1`

	var tx PaymentTransaction
	err := db.QueryRow(ctx, query, providerOrderID).Scan(
		&tx.ID, &tx.BookingID, &tx.ProviderOrderID, &tx.Amount, &tx.Currency,
		&tx.Status, &tx.PaymentMethod, &tx.ErrorDescription, &tx.CapturedAt,
		&tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentTransactionNotFound
		}
		return nil, fmt.Errorf("failed to fetch payment transaction: %w", err)
	}
	return &tx, nil
}

// UpdatePaymentTransaction persists status fields set from a webhook.
func UpdatePaymentTransaction(ctx context.Context, db shared_models.Querier, tx *PaymentTransaction) error {
	query := `
		UPDATE payment_transactions
		SET status = $2, payment_method = $3, error_description = $4, captured_at = $5, updated_at = NOW()
		WHERE id = $1`

	cmdTag, err := db.Exec(ctx, query,
		tx.ID, tx.Status, tx.PaymentMethod, tx.ErrorDescription, tx.CapturedAt)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to update payment transaction %s: %v", tx.ID, err)
		return fmt.Errorf("failed to update payment transaction: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrPaymentTransactionNotFound
	}
	return nil
}
