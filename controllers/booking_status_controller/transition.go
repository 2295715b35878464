package booking_status_controller

import (
	"fmt"

	"github.com/joy095/consult/models/booking_models"
	"github.com/joy095/consult/models/shared_models"
)

// transitionKey identifies one edge of the booking state machine.
type transitionKey struct {
	current   string
	requested string
	role      string
}

// allowedTransitions is the closed transition table. Rejected, cancelled and
// completed are terminal. Any (current, requested, role) triple missing here
// is refused before anything is written.
var allowedTransitions = map[transitionKey]bool{}

func init() {
	allow := func(current, requested string, roles ...string) {
		for _, role := range roles {
			allowedTransitions[transitionKey{current, requested, role}] = true
		}
	}

	expert := shared_models.RoleExpert
	seeker := shared_models.RoleSeeker

	allow(shared_models.BookingStatusPending, shared_models.BookingStatusAccepted, expert)
	allow(shared_models.BookingStatusPending, shared_models.BookingStatusRejected, expert)
	allow(shared_models.BookingStatusPending, shared_models.BookingStatusCancelled, seeker)
	allow(shared_models.BookingStatusPending, shared_models.BookingStatusRescheduled, expert, seeker)

	for _, active := range []string{shared_models.BookingStatusAccepted, shared_models.BookingStatusConfirmed} {
		allow(active, shared_models.BookingStatusCompleted, expert)
		allow(active, shared_models.BookingStatusCancelled, seeker)
		allow(active, shared_models.BookingStatusRescheduled, expert, seeker)
	}

	allow(shared_models.BookingStatusRescheduled, shared_models.BookingStatusAccepted, expert)
	allow(shared_models.BookingStatusRescheduled, shared_models.BookingStatusRejected, expert)
	allow(shared_models.BookingStatusRescheduled, shared_models.BookingStatusCancelled, seeker)
}

// transitionAllowed reports whether the actor's role may move the booking from
// current to requested.
func transitionAllowed(current, requested, role string) bool {
	return allowedTransitions[transitionKey{current, requested, role}]
}

// notificationSpec describes the fan-out derived from a transition: who gets
// told, tagged how, and with which display hint.
type notificationSpec struct {
	recipientIsExpert bool
	notifType         string
	statusColor       string
}

type fanOutKey struct {
	role   string
	status string
}

// fanOutTable maps (actor role, new status) to the notification the other
// party receives. Combinations outside the table fan out nothing; the status
// write still happens.
var fanOutTable = map[fanOutKey]notificationSpec{
	{shared_models.RoleExpert, shared_models.BookingStatusAccepted}:    {false, shared_models.NotificationSessionAccepted, shared_models.StatusColorSuccess},
	{shared_models.RoleExpert, shared_models.BookingStatusRejected}:    {false, shared_models.NotificationSessionRejected, shared_models.StatusColorError},
	{shared_models.RoleExpert, shared_models.BookingStatusRescheduled}: {false, shared_models.NotificationSessionRescheduled, shared_models.StatusColorWarning},
	{shared_models.RoleSeeker, shared_models.BookingStatusCancelled}:   {true, shared_models.NotificationSessionCancelled, shared_models.StatusColorError},
	{shared_models.RoleSeeker, shared_models.BookingStatusRescheduled}: {true, shared_models.NotificationSessionRescheduled, shared_models.StatusColorWarning},
}

// deriveNotification looks up the fan-out for a performed transition.
func deriveNotification(actorRole, newStatus string) (notificationSpec, bool) {
	spec, ok := fanOutTable[fanOutKey{actorRole, newStatus}]
	return spec, ok
}

// renderMessage builds the human-readable notification text.
func renderMessage(notifType, actorName string, booking *booking_models.BookingWithParties) string {
	when := fmt.Sprintf("%s at %s", booking.AppointmentDate.Format("Jan 2, 2006"), booking.StartTime)

	switch notifType {
	case shared_models.NotificationSessionAccepted:
		return fmt.Sprintf("%s accepted your session request for %s.", actorName, when)
	case shared_models.NotificationSessionRejected:
		return fmt.Sprintf("%s declined your session request for %s.", actorName, when)
	case shared_models.NotificationSessionRescheduled:
		return fmt.Sprintf("%s asked to reschedule your session planned for %s.", actorName, when)
	case shared_models.NotificationSessionCancelled:
		return fmt.Sprintf("%s cancelled the session planned for %s.", actorName, when)
	default:
		return fmt.Sprintf("Your session for %s was updated by %s.", when, actorName)
	}
}
