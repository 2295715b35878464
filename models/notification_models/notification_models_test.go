package notification_models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/joy095/consult/models/shared_models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	userID := uuid.New()
	bookingID := uuid.New()

	n, err := NewNotification(userID, shared_models.NotificationSessionAccepted,
		"Asha accepted your session request.", bookingID, shared_models.StatusColorSuccess)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, n.ID)
	assert.Equal(t, uuid.Version(7), n.ID.Version())
	assert.Equal(t, userID, n.UserID)
	assert.Equal(t, bookingID, n.RelatedID)
	assert.Equal(t, shared_models.NotificationSessionAccepted, n.Type)
	assert.Equal(t, shared_models.StatusColorSuccess, n.StatusColor)
	assert.False(t, n.ReadStatus)
	assert.False(t, n.CreatedAt.IsZero())
}
