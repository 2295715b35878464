package shared_models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidBookingStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "accepted", "rejected", "cancelled", "rescheduled", "completed"} {
		assert.Truef(t, IsValidBookingStatus(s), "%q should be valid", s)
	}
	for _, s := range []string{"", "Pending", "done", "canceled", "in_progress"} {
		assert.Falsef(t, IsValidBookingStatus(s), "%q should be invalid", s)
	}
}

func TestNormalizeRole(t *testing.T) {
	cases := map[string]string{
		"expert":          RoleExpert,
		"seeker":          RoleSeeker,
		"solution_seeker": RoleSeeker,
		"Solution_Seeker": RoleSeeker,
		"  expert  ":      RoleExpert,
		"EXPERT":          RoleExpert,
		"admin":           "",
		"":                "",
	}
	for in, want := range cases {
		assert.Equalf(t, want, NormalizeRole(in), "NormalizeRole(%q)", in)
	}
}

func TestGenerateUUIDv7(t *testing.T) {
	id, err := GenerateUUIDv7()
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, uuid.Version(7), id.Version())
}
