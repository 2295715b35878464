package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanizeType(t *testing.T) {
	cases := map[string]string{
		"session_accepted":    "Session Accepted",
		"session_rejected":    "Session Rejected",
		"session_rescheduled": "Session Rescheduled",
		"session_cancelled":   "Session Cancelled",
		"update":              "Update",
		"":                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, HumanizeType(in))
	}
}

func TestInternalError(t *testing.T) {
	cause := errors.New("connection refused")

	t.Run("Production", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		assert.Equal(t, "Failed to update booking status",
			InternalError("Failed to update booking status", cause))
	})

	t.Run("Development", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		assert.Equal(t, "Failed to update booking status: connection refused",
			InternalError("Failed to update booking status", cause))
	})
}
