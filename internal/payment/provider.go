package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPGateway talks to the payment provider's REST API.  The
// provider owns the card flow end to end; this client only creates
// intents and polls their status.  No request timeout is imposed on
// confirmation beyond the caller's ctx, because the user may take
// arbitrarily long to enter card details.
type HTTPGateway struct {
	BaseURL   string
	SecretKey string
	Client    *http.Client
}

// NewHTTPGateway returns a gateway bound to the provider endpoint.
func NewHTTPGateway(baseURL, secretKey string) *HTTPGateway {
	return &HTTPGateway{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		Client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// providerErrorBody is the provider's error envelope.
type providerErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateIntent registers a pending charge with the provider and
// returns its id and client secret.
func (g *HTTPGateway) CreateIntent(ctx context.Context, amountMinorUnits int64) (Intent, error) {
	body, _ := json.Marshal(map[string]interface{}{
		"amount":   amountMinorUnits,
		"currency": "inr",
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/v1/payment_intents", bytes.NewReader(body))
	if err != nil {
		return Intent{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.SecretKey)
	return g.do(req)
}

// ConfirmIntent fetches the current status of an intent.  It never
// mutates provider state and may be called repeatedly while waiting
// for the user to complete payment.
func (g *HTTPGateway) ConfirmIntent(ctx context.Context, intentID string) (Intent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"/v1/payment_intents/"+intentID, nil)
	if err != nil {
		return Intent{}, err
	}
	req.Header.Set("Authorization", "Bearer "+g.SecretKey)
	return g.do(req)
}

func (g *HTTPGateway) do(req *http.Request) (Intent, error) {
	resp, err := g.Client.Do(req)
	if err != nil {
		return Intent{}, &ProviderError{Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Intent{}, &ProviderError{Message: err.Error()}
	}
	if resp.StatusCode >= 400 {
		var pe providerErrorBody
		if json.Unmarshal(raw, &pe) == nil && pe.Error.Message != "" {
			return Intent{}, &ProviderError{Code: pe.Error.Code, Message: pe.Error.Message}
		}
		return Intent{}, &ProviderError{Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}
	var in Intent
	if err := json.Unmarshal(raw, &in); err != nil {
		return Intent{}, &ProviderError{Message: "malformed provider response"}
	}
	return in, nil
}
