package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrInProgress rejects a submit while another attempt is still
	// running; a single user action must never create two orders.
	ErrInProgress = errors.New("checkout already in progress")

	// ErrEmptyCart guards the entry: callers are expected to redirect
	// away from checkout before ever submitting an empty cart.
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

	// ErrPaymentInconclusive marks a confirmation that reported an
	// intermediate status. The attempt is over, the order stays
	// pending, the cart is kept; there is no polling.
	ErrPaymentInconclusive = errors.New("payment confirmation did not reach a final status")
)

// StageError tags a failure with the stage it happened in, so callers
// can report step-specific messages.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func failAt(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}
