package booking_status_controller

import "errors"

var (
	ErrNotParticipant    = errors.New("user is not a party to this booking")
	ErrInvalidStatus     = errors.New("unknown booking status")
	ErrInvalidTransition = errors.New("status transition not allowed")
)
