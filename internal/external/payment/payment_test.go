package payment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velvet/config"
	"velvet/infras/otel/mocks"
	"velvet/internal/external/payment"
	"velvet/shared/failure"
)

func newClient(baseURL string) payment.Payment {
	cfg := &config.Config{}
	cfg.External.Payment.BaseURL = baseURL
	cfg.External.Payment.APIKey = "test-key"
	cfg.External.Payment.TimeoutSeconds = 5

	return payment.New(cfg, mocks.NewOtel())
}

func TestPaymentClient_Refund(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/refunds", r.URL.Path)
			assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))

			var req payment.RefundRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "pay_123", req.PaymentRef)
			assert.Equal(t, int64(5000), req.Amount)
			assert.Equal(t, payment.ReasonRequestedByCustomer, req.ReasonCode)

			json.NewEncoder(w).Encode(payment.RefundResponse{
				Success:   true,
				RefundRef: "re_789",
				Amount:    5000,
				Status:    "succeeded",
			})
		}))
		defer server.Close()

		res, err := newClient(server.URL).Refund(context.Background(), payment.RefundRequest{
			PaymentRef: "pay_123",
			Amount:     5000,
			ReasonCode: payment.ReasonRequestedByCustomer,
		})

		require.NoError(t, err)
		assert.Equal(t, "re_789", res.RefundRef)
		assert.Equal(t, "succeeded", res.Status)
	})

	t.Run("the provider's rejection reason is propagated verbatim", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(payment.RefundResponse{
				Success: false,
				Error:   "insufficient provider balance",
			})
		}))
		defer server.Close()

		_, err := newClient(server.URL).Refund(context.Background(), payment.RefundRequest{
			PaymentRef: "pay_123",
			Amount:     5000,
			ReasonCode: payment.ReasonOther,
		})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
		assert.Equal(t, "insufficient provider balance", failure.GetMessage(err))
	})

	t.Run("a rejection without a reason reports the status code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(payment.RefundResponse{Success: false})
		}))
		defer server.Close()

		_, err := newClient(server.URL).Refund(context.Background(), payment.RefundRequest{
			PaymentRef: "pay_123",
			Amount:     5000,
			ReasonCode: payment.ReasonOther,
		})

		require.Error(t, err)
		assert.Contains(t, failure.GetMessage(err), "status 500")
	})

	t.Run("an unreachable provider is a dependency failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		_, err := newClient(server.URL).Refund(context.Background(), payment.RefundRequest{
			PaymentRef: "pay_123",
			Amount:     5000,
			ReasonCode: payment.ReasonOther,
		})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
	})
}

func TestMapReasonCode(t *testing.T) {
	tests := []struct {
		name     string
		reason   string
		expected string
	}{
		{"customer asked", "Customer changed their mind", payment.ReasonRequestedByCustomer},
		{"guest wording", "guest no longer coming", payment.ReasonRequestedByCustomer},
		{"request wording", "refund requested by phone", payment.ReasonRequestedByCustomer},
		{"venue closure", "venue closed for the night", payment.ReasonVenueCancelled},
		{"maintenance", "terrace maintenance", payment.ReasonVenueCancelled},
		{"duplicate charge", "duplicate booking", payment.ReasonDuplicate},
		{"duplicate beats customer", "customer reported a duplicate charge", payment.ReasonDuplicate},
		{"anything else", "goodwill gesture", payment.ReasonOther},
		{"empty", "", payment.ReasonOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, payment.MapReasonCode(tt.reason))
		})
	}
}
