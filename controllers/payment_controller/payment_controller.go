package payment_controller

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joy095/consult/clients"
	"github.com/joy095/consult/logger"
	"github.com/joy095/consult/models/booking_models"
	"github.com/joy095/consult/models/payment_transaction_models"
	"github.com/joy095/consult/models/shared_models"
	"github.com/joy095/consult/utils"
)

// PaymentController creates provider orders for booking amounts and consumes
// the provider's webhooks.
type PaymentController struct {
	db            shared_models.Querier
	razorpay      clients.RazorpayClientWrapper
	webhookSecret string
}

func NewPaymentController(db shared_models.Querier, rz clients.RazorpayClientWrapper, webhookSecret string) (*PaymentController, error) {
	if db == nil {
		return nil, errors.New("database pool cannot be nil")
	}
	if rz == nil {
		return nil, errors.New("razorpay client cannot be nil")
	}
	return &PaymentController{db: db, razorpay: rz, webhookSecret: webhookSecret}, nil
}

// amountToSubunits converts a booking amount to the provider's smallest
// currency unit, rounding to the nearest unit. Truncation would turn 19.99
// into 1998 paise.
func amountToSubunits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreatePaymentOrder handles POST /bookings/:booking_id/payment-order. Only
// the seeker pays, so only the seeker may create an order.
func (pc *PaymentController) CreatePaymentOrder(c *gin.Context) {
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

	ctx := c.Request.Context()
	booking, err := booking_models.GetBookingByID(ctx, pc.db, bookingID)
	if err != nil {
		if errors.Is(err, booking_models.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch booking"})
		return
	}

	if userID != booking.SeekerID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Only the seeker can pay for this booking"})
		return
	}

	orderData := map[string]interface{}{
		"amount":   amountToSubunits(booking.Amount),
		"currency": "INR",
		"receipt":  booking.ID.String(),
		"notes": map[string]interface{}{
			"booking_id": booking.ID.String(),
			"seeker_id":  booking.SeekerID.String(),
		},
	}

	order, err := pc.razorpay.CreateOrder(orderData)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to create payment order for booking %s: %v", bookingID, err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Failed to initiate payment"})
		return
	}

	orderID, ok := order["id"].(string)
	if !ok || orderID == "" {
		logger.ErrorLogger.Errorf("Payment provider returned no order id for booking %s", bookingID)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Invalid payment provider response"})
		return
	}

	paymentTx, err := payment_transaction_models.NewPaymentTransaction(bookingID, orderID, booking.Amount, "INR")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to record payment attempt"})
		return
	}
	if _, err := payment_transaction_models.CreatePaymentTransaction(ctx, pc.db, paymentTx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to record payment attempt"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"order_id": orderID,
		"amount":   booking.Amount,
		"currency": "INR",
	})
}

type webhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID               string `json:"id"`
				OrderID          string `json:"order_id"`
				Method           string `json:"method"`
				ErrorDescription string `json:"error_description"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhook handles POST /payments/webhook. Signature verification runs
// before anything else; replays of processed orders are acknowledged without
// a second write.
func (pc *PaymentController) HandleWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to read webhook body"})
		return
	}

	signature := c.GetHeader("X-Razorpay-Signature")
	if !pc.razorpay.VerifyWebhookSignature(signature, string(body), pc.webhookSecret) {
		logger.ErrorLogger.Error("Payment webhook signature verification failed")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid webhook signature"})
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid webhook payload"})
		return
	}

	if payload.Event != "payment.captured" && payload.Event != "payment.failed" {
		logger.InfoLogger.Infof("Ignoring payment webhook event %s", payload.Event)
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	ctx := c.Request.Context()
	entity := payload.Payload.Payment.Entity

	paymentTx, err := payment_transaction_models.GetPaymentTransactionByOrderID(ctx, pc.db, entity.OrderID)
	if err != nil {
		if errors.Is(err, payment_transaction_models.ErrPaymentTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Payment transaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch payment transaction"})
		return
	}

	if paymentTx.Status == payment_transaction_models.PaymentStatusPaid {
		logger.InfoLogger.Infof("Webhook for order %s already processed, skipping", entity.OrderID)
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	if entity.Method != "" {
		paymentTx.PaymentMethod = &entity.Method
	}

	switch payload.Event {
	case "payment.captured":
		now := time.Now()
		paymentTx.Status = payment_transaction_models.PaymentStatusPaid
		paymentTx.CapturedAt = &now
	case "payment.failed":
		paymentTx.Status = payment_transaction_models.PaymentStatusFailed
		if entity.ErrorDescription != "" {
			paymentTx.ErrorDescription = &entity.ErrorDescription
		}
	}

	if err := payment_transaction_models.UpdatePaymentTransaction(ctx, pc.db, paymentTx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update payment transaction"})
		return
	}

	logger.InfoLogger.Infof("Processed payment webhook %s for order %s", payload.Event, entity.OrderID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
