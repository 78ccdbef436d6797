package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGatewayCreateIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(185000), body["amount"])
		assert.Equal(t, "inr", body["currency"])

		_ = json.NewEncoder(w).Encode(Intent{ID: "pi_1", ClientSecret: "pi_1_secret", Status: IntentStatusPending})
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "sk_test")
	in, err := gw.CreateIntent(context.Background(), 185000)
	require.NoError(t, err)
	assert.Equal(t, "pi_1", in.ID)
	assert.Equal(t, "pi_1_secret", in.ClientSecret)
	assert.Equal(t, IntentStatusPending, in.Status)
}

func TestHTTPGatewayConfirmIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/payment_intents/pi_1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Intent{ID: "pi_1", Status: IntentStatusSucceeded})
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "sk_test")
	in, err := gw.ConfirmIntent(context.Background(), "pi_1")
	require.NoError(t, err)
	assert.Equal(t, IntentStatusSucceeded, in.Status)
}

func TestHTTPGatewayProviderErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"code":"card_declined","message":"Your card was declined."}}`))
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "sk_test")
	_, err := gw.ConfirmIntent(context.Background(), "pi_1")

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "card_declined", perr.Code)
	assert.Equal(t, "Your card was declined.", perr.Message)
}

func TestHTTPGatewayNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "sk_test")
	_, err := gw.ConfirmIntent(context.Background(), "pi_1")

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "unexpected status 502")
}
