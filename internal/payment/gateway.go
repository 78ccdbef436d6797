// Package payment drives a checkout attempt from method selection to
// a confirmed booking.  The external payment provider sits behind
// the Gateway interface so the orchestrator can be exercised with a
// scripted fake in tests.
package payment

import "context"

// Intent statuses reported by the provider.  Only succeeded allows a
// booking to be created.
const (
	IntentStatusPending   = "pending"
	IntentStatusSucceeded = "succeeded"
	IntentStatusFailed    = "failed"
)

// Intent is the engine's view of a provider payment intent: an id to
// reconcile by and a client secret handed to the browser.  No card
// data ever reaches this service.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

// Gateway abstracts the external payment provider.  CreateIntent
// registers a pending charge for the given amount in the provider's
// minor currency unit (whole units * 100 in this domain) and returns
// the intent reference.  ConfirmIntent fetches the current status of
// an intent; it is a read, safe to repeat.  Both calls may block for
// a network round trip and honour ctx cancellation.
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinorUnits int64) (Intent, error)
	ConfirmIntent(ctx context.Context, intentID string) (Intent, error)
}
