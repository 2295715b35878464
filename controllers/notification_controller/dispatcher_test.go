package notification_controller

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/joy095/consult/clients"
	"github.com/joy095/consult/models/notification_models"
	"github.com/joy095/consult/models/shared_models"
	"github.com/joy095/consult/models/user_models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePush struct {
	sent []clients.PushMessage
}

func (c *capturePush) Send(_ context.Context, msg clients.PushMessage) error {
	c.sent = append(c.sent, msg)
	return nil
}

func testNotification(t *testing.T) *notification_models.Notification {
	t.Helper()
	n, err := notification_models.NewNotification(uuid.New(), shared_models.NotificationSessionAccepted,
		"Asha accepted your session request.", uuid.New(), shared_models.StatusColorSuccess)
	require.NoError(t, err)
	return n
}

func TestDispatchPushDirect(t *testing.T) {
	push := &capturePush{}
	d := NewDispatcher(nil, nil, push, false)

	token := "ExponentPushToken[abc]"
	recipient := &user_models.User{ID: uuid.New(), FirstName: "Rohit", PushToken: &token}
	n := testNotification(t)

	d.DispatchSideEffects(context.Background(), n, recipient)

	require.Len(t, push.sent, 1)
	msg := push.sent[0]
	assert.Equal(t, token, msg.Token)
	assert.Equal(t, "Session Accepted", msg.Title)
	assert.Equal(t, n.Message, msg.Body)
	assert.Equal(t, n.RelatedID.String(), msg.Data["relatedId"])
	assert.Equal(t, shared_models.StatusColorSuccess, msg.Data["statusColor"])
}

func TestDispatchPushSkipsWithoutToken(t *testing.T) {
	push := &capturePush{}
	d := NewDispatcher(nil, nil, push, false)

	d.DispatchSideEffects(context.Background(), testNotification(t), &user_models.User{ID: uuid.New()})
	assert.Empty(t, push.sent)

	empty := ""
	d.DispatchSideEffects(context.Background(), testNotification(t), &user_models.User{ID: uuid.New(), PushToken: &empty})
	assert.Empty(t, push.sent)
}

func TestDispatchWithAllChannelsDisabled(t *testing.T) {
	d := NewDispatcher(nil, nil, nil, false)
	token := "tok"
	// Must be a no-op rather than a panic.
	d.DispatchSideEffects(context.Background(), testNotification(t),
		&user_models.User{ID: uuid.New(), PushToken: &token})
}
