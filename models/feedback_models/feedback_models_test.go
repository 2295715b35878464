package feedback_models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/joy095/consult/models/shared_models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionFeedback(t *testing.T) {
	bookingID := uuid.New()
	userID := uuid.New()

	t.Run("SeekerWithRating", func(t *testing.T) {
		rating := 4
		review := "Very helpful session."
		fb, err := NewSessionFeedback(bookingID, userID, shared_models.RoleSeeker, &rating, &review, nil)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, fb.ID)
		assert.Equal(t, bookingID, fb.BookingID)
		assert.Equal(t, userID, fb.UserID)
		assert.Equal(t, shared_models.RoleSeeker, fb.UserRole)
		require.NotNil(t, fb.Rating)
		assert.Equal(t, 4, *fb.Rating)
		require.NotNil(t, fb.Review)
		assert.Nil(t, fb.Message)
	})

	t.Run("ExpertNote", func(t *testing.T) {
		note := "Client arrived late."
		fb, err := NewSessionFeedback(bookingID, userID, shared_models.RoleExpert, nil, nil, &note)
		require.NoError(t, err)

		assert.Equal(t, shared_models.RoleExpert, fb.UserRole)
		assert.Nil(t, fb.Rating)
		require.NotNil(t, fb.Message)
		assert.Equal(t, note, *fb.Message)
	})
}
