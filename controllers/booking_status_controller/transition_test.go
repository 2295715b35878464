package booking_status_controller

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joy095/consult/models/booking_models"
	"github.com/joy095/consult/models/shared_models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionAllowed(t *testing.T) {
	expert := shared_models.RoleExpert
	seeker := shared_models.RoleSeeker

	cases := []struct {
		name      string
		current   string
		requested string
		role      string
		want      bool
	}{
		{"expert accepts pending", shared_models.BookingStatusPending, shared_models.BookingStatusAccepted, expert, true},
		{"expert rejects pending", shared_models.BookingStatusPending, shared_models.BookingStatusRejected, expert, true},
		{"seeker cannot accept", shared_models.BookingStatusPending, shared_models.BookingStatusAccepted, seeker, false},
		{"seeker cannot reject", shared_models.BookingStatusPending, shared_models.BookingStatusRejected, seeker, false},
		{"seeker cancels pending", shared_models.BookingStatusPending, shared_models.BookingStatusCancelled, seeker, true},
		{"expert cannot cancel", shared_models.BookingStatusPending, shared_models.BookingStatusCancelled, expert, false},
		{"either side reschedules pending", shared_models.BookingStatusPending, shared_models.BookingStatusRescheduled, seeker, true},
		{"expert reschedules pending", shared_models.BookingStatusPending, shared_models.BookingStatusRescheduled, expert, true},
		{"expert completes accepted", shared_models.BookingStatusAccepted, shared_models.BookingStatusCompleted, expert, true},
		{"seeker cannot complete", shared_models.BookingStatusAccepted, shared_models.BookingStatusCompleted, seeker, false},
		{"seeker cancels accepted", shared_models.BookingStatusAccepted, shared_models.BookingStatusCancelled, seeker, true},
		{"expert completes confirmed", shared_models.BookingStatusConfirmed, shared_models.BookingStatusCompleted, expert, true},
		{"seeker reschedules confirmed", shared_models.BookingStatusConfirmed, shared_models.BookingStatusRescheduled, seeker, true},
		{"expert accepts rescheduled", shared_models.BookingStatusRescheduled, shared_models.BookingStatusAccepted, expert, true},
		{"expert rejects rescheduled", shared_models.BookingStatusRescheduled, shared_models.BookingStatusRejected, expert, true},
		{"seeker cancels rescheduled", shared_models.BookingStatusRescheduled, shared_models.BookingStatusCancelled, seeker, true},
		{"no self transition", shared_models.BookingStatusPending, shared_models.BookingStatusPending, expert, false},
		{"cannot move back to pending", shared_models.BookingStatusAccepted, shared_models.BookingStatusPending, expert, false},
		{"unknown role denied", shared_models.BookingStatusPending, shared_models.BookingStatusAccepted, "admin", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, transitionAllowed(tc.current, tc.requested, tc.role))
		})
	}
}

func TestTerminalStatusesHaveNoOutgoingTransitions(t *testing.T) {
	terminals := []string{
		shared_models.BookingStatusRejected,
		shared_models.BookingStatusCancelled,
		shared_models.BookingStatusCompleted,
	}
	all := []string{
		shared_models.BookingStatusPending,
		shared_models.BookingStatusConfirmed,
		shared_models.BookingStatusAccepted,
		shared_models.BookingStatusRejected,
		shared_models.BookingStatusCancelled,
		shared_models.BookingStatusRescheduled,
		shared_models.BookingStatusCompleted,
	}

	for _, current := range terminals {
		for _, requested := range all {
			for _, role := range []string{shared_models.RoleExpert, shared_models.RoleSeeker} {
				assert.Falsef(t, transitionAllowed(current, requested, role),
					"%s -> %s by %s should be refused", current, requested, role)
			}
		}
	}
}

func TestDeriveNotification(t *testing.T) {
	cases := []struct {
		name        string
		role        string
		status      string
		wantOK      bool
		wantExpert  bool
		wantType    string
		wantColor   string
	}{
		{"expert accepts", shared_models.RoleExpert, shared_models.BookingStatusAccepted, true, false, shared_models.NotificationSessionAccepted, shared_models.StatusColorSuccess},
		{"expert rejects", shared_models.RoleExpert, shared_models.BookingStatusRejected, true, false, shared_models.NotificationSessionRejected, shared_models.StatusColorError},
		{"expert reschedules", shared_models.RoleExpert, shared_models.BookingStatusRescheduled, true, false, shared_models.NotificationSessionRescheduled, shared_models.StatusColorWarning},
		{"seeker cancels", shared_models.RoleSeeker, shared_models.BookingStatusCancelled, true, true, shared_models.NotificationSessionCancelled, shared_models.StatusColorError},
		{"seeker reschedules", shared_models.RoleSeeker, shared_models.BookingStatusRescheduled, true, true, shared_models.NotificationSessionRescheduled, shared_models.StatusColorWarning},
		{"expert completes fans out nothing", shared_models.RoleExpert, shared_models.BookingStatusCompleted, false, false, "", ""},
		{"seeker accept fans out nothing", shared_models.RoleSeeker, shared_models.BookingStatusAccepted, false, false, "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec, ok := deriveNotification(tc.role, tc.status)
			require.Equal(t, tc.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tc.wantExpert, spec.recipientIsExpert)
			assert.Equal(t, tc.wantType, spec.notifType)
			assert.Equal(t, tc.wantColor, spec.statusColor)
		})
	}
}

func TestRenderMessage(t *testing.T) {
	booking := &booking_models.BookingWithParties{
		Booking: booking_models.Booking{
			ID:              uuid.New(),
			AppointmentDate: time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC),
			StartTime:       "15:30",
		},
		ExpertName: "Asha Verma",
		SeekerName: "Rohit Nair",
	}

	t.Run("accepted", func(t *testing.T) {
		msg := renderMessage(shared_models.NotificationSessionAccepted, "Asha Verma", booking)
		assert.Equal(t, "Asha Verma accepted your session request for Mar 14, 2025 at 15:30.", msg)
	})

	t.Run("rejected", func(t *testing.T) {
		msg := renderMessage(shared_models.NotificationSessionRejected, "Asha Verma", booking)
		assert.Contains(t, msg, "declined your session request")
		assert.Contains(t, msg, "Mar 14, 2025 at 15:30")
	})

	t.Run("cancelled", func(t *testing.T) {
		msg := renderMessage(shared_models.NotificationSessionCancelled, "Rohit Nair", booking)
		assert.Contains(t, msg, "Rohit Nair cancelled the session")
	})

	t.Run("rescheduled", func(t *testing.T) {
		msg := renderMessage(shared_models.NotificationSessionRescheduled, "Rohit Nair", booking)
		assert.Contains(t, msg, "asked to reschedule")
	})
}
