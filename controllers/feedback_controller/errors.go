package feedback_controller

import "errors"

var (
	ErrNotParticipant    = errors.New("user is not a party to this booking")
	ErrRatingRequired    = errors.New("rating is required for seeker feedback")
	ErrRatingOutOfRange  = errors.New("rating must be between 1 and 5")
	ErrDuplicateFeedback = errors.New("feedback already submitted for this booking")
	ErrInvalidRole       = errors.New("invalid user role")
)
