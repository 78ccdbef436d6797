package payment

import (
	"errors"
	"fmt"
)

// ErrNoPaymentMethod is returned when a checkout is attempted without
// selecting wallet or online payment.  It is raised before any
// network call is made.
var ErrNoPaymentMethod = errors.New("no payment method selected")

// ErrPaymentNotSucceeded is returned when an online completion is
// attempted but the provider does not report the intent as
// succeeded.  The checkout draft is retained so the user can retry
// without recomputing the price.
var ErrPaymentNotSucceeded = errors.New("payment has not succeeded")

// ErrDraftNotFound is returned when completing an intent whose
// checkout draft has expired or never existed.
var ErrDraftNotFound = errors.New("checkout draft not found")

// ProviderError carries a failure reported by the payment provider
// verbatim.  Handlers surface Message to the user unchanged and keep
// the checkout state so the attempt can be retried.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payment provider: %s: %s", e.Code, e.Message)
	}
	return "payment provider: " + e.Message
}

// ReconciliationError marks the hazardous case where the provider
// confirmed a successful payment but the booking could not be
// created.  Money has already moved, so this must never be retried
// blindly: the correct recovery is to look the booking up by intent
// id before anything else.  It is deliberately distinct from
// ProviderError.
type ReconciliationError struct {
	IntentID string
	Err      error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("payment %s succeeded but booking creation failed: %v", e.IntentID, e.Err)
}

func (e *ReconciliationError) Unwrap() error { return e.Err }
