package services

import (
	"errors"
	"fmt"
)

var (
	ErrMatchNotFound             = errors.New("match not found")
	ErrUnauthorized              = errors.New("only the creator can modify this match")
	ErrMatchFull                 = errors.New("match is full")
	ErrAlreadyJoined             = errors.New("already joined this match")
	ErrPastDate                  = errors.New("match date cannot be in the past")
	ErrCapacityBelowParticipants = errors.New("cannot set max players below current participant count")
	ErrInviteCodeExhausted       = errors.New("could not allocate a unique invite code")
)

// ValidationError reports a rejected input field. Err, when set, is a more
// specific sentinel such as ErrPastDate.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
