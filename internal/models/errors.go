package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when a workflow action is not allowed
	// from the record's current status.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrPermanentlyIneligible is returned when a qualifying offer is attempted
	// for a player who has already received one in their career.
	ErrPermanentlyIneligible = errors.New("player has already received a qualifying offer")

	// ErrEmptySide is returned when a trade is evaluated without assets on both sides.
	ErrEmptySide = errors.New("both sides of a trade need at least one asset")

	ErrOutOfTurn         = errors.New("the same party cannot make two offers in a row")
	ErrNegotiationClosed = errors.New("negotiation is already closed")
	ErrNoPendingOffer    = errors.New("there is no pending offer")
)

// TransitionError describes a rejected workflow action.
type TransitionError struct {
	Workflow string // "arbitration", "qualifying offer", "negotiation"
	From     string // status the record was in
	Action   string // action that was attempted
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s from status %q", e.Workflow, e.Action, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ValidationError reports an input value the core refuses to compute with.
type ValidationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
