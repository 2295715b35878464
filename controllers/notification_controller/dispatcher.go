package notification_controller

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joy095/consult/clients"
	"github.com/joy095/consult/logger"
	"github.com/joy095/consult/models/notification_models"
	"github.com/joy095/consult/models/shared_models"
	"github.com/joy095/consult/models/user_models"
	"github.com/joy095/consult/queue"
	"github.com/joy095/consult/utils"
	"github.com/joy095/consult/utils/mail"
)

// Dispatcher creates in-app notification rows and fans the event out to the
// push and email channels. The in-app insert runs inside the caller's
// transaction; push and email happen after commit and are best-effort.
type Dispatcher struct {
	DB    shared_models.Querier
	Queue *queue.PushQueue
	Push  clients.PushClientWrapper
	Email bool
}

// NewDispatcher wires a dispatcher. Queue may be nil; pushes then go out
// synchronously through the client. Push may also be nil, which disables the
// push channel entirely.
func NewDispatcher(db shared_models.Querier, q *queue.PushQueue, push clients.PushClientWrapper, email bool) *Dispatcher {
	return &Dispatcher{
		DB:    db,
		Queue: q,
		Push:  push,
		Email: email,
	}
}

// CreateInTx inserts the in-app notification inside tx so the record commits
// atomically with the event that produced it.
func (d *Dispatcher) CreateInTx(ctx context.Context, tx pgx.Tx, recipientID uuid.UUID, notifType, message string, relatedID uuid.UUID, statusColor string) (*notification_models.Notification, error) {
	notification, err := notification_models.NewNotification(recipientID, notifType, message, relatedID, statusColor)
	if err != nil {
		return nil, err
	}
	if err := notification_models.CreateNotificationTx(ctx, tx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// DispatchSideEffects runs the channels that live outside the transaction:
// push (when the recipient registered a device token) and an email copy.
// Failures are logged and swallowed; the caller's operation already succeeded.
func (d *Dispatcher) DispatchSideEffects(ctx context.Context, n *notification_models.Notification, recipient *user_models.User) {
	d.dispatchPush(ctx, n, recipient)
	d.dispatchEmail(n, recipient)
}

func (d *Dispatcher) dispatchPush(ctx context.Context, n *notification_models.Notification, recipient *user_models.User) {
	if d.Push == nil && d.Queue == nil {
		return
	}
	if recipient.PushToken == nil || *recipient.PushToken == "" {
		logger.InfoLogger.Infof("User %s has no push token, skipping push for notification %s", recipient.ID, n.ID)
		return
	}

	title := utils.HumanizeType(n.Type)
	data := map[string]string{
		"type":        n.Type,
		"relatedId":   n.RelatedID.String(),
		"statusColor": n.StatusColor,
	}

	if d.Queue != nil {
		err := d.Queue.Enqueue(ctx, queue.PushJob{
			NotificationID: n.ID.String(),
			Token:          *recipient.PushToken,
			Title:          title,
			Body:           n.Message,
			Data:           data,
		})
		if err != nil {
			logger.ErrorLogger.Errorf("Failed to enqueue push for notification %s: %v", n.ID, err)
		}
		return
	}

	err := d.Push.Send(ctx, clients.PushMessage{
		Token: *recipient.PushToken,
		Title: title,
		Body:  n.Message,
		Data:  data,
	})
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to send push for notification %s: %v", n.ID, err)
	}
}

func (d *Dispatcher) dispatchEmail(n *notification_models.Notification, recipient *user_models.User) {
	if !d.Email || recipient.Email == "" {
		return
	}

	err := mail.SendBookingStatusEmail(recipient.Email, utils.HumanizeType(n.Type), mail.BookingStatusEmailData{
		RecipientName: recipient.FullName(),
		Message:       n.Message,
		StatusColor:   n.StatusColor,
	})
	if err != nil {
		logger.WarnLogger.Warnf("Email copy of notification %s not delivered: %v", n.ID, err)
	}
}
