package payment

//go:generate go run go.uber.org/mock/mockgen -source=./payment.go -destination=./mocks/payment_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"velvet/config"
	"velvet/infras/otel"
	"velvet/shared/constant"
	"velvet/shared/failure"

	"github.com/rs/zerolog/log"
)

// Reason codes accepted by the payment provider. Free-text staff reasons are
// mapped onto this fixed set before calling out.
const (
	ReasonRequestedByCustomer = "requested_by_customer"
	ReasonVenueCancelled      = "venue_cancelled"
	ReasonDuplicate           = "duplicate"
	ReasonOther               = "other"
)

type RefundRequest struct {
	PaymentRef string `json:"payment_ref"`
	Amount     int64  `json:"amount"`
	ReasonCode string `json:"reason_code"`
}

type RefundResponse struct {
	Success   bool   `json:"success"`
	RefundRef string `json:"refund_ref"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

type Payment interface {
	Refund(ctx context.Context, req RefundRequest) (RefundResponse, error)
}

type clientImpl struct {
	cfg    *config.Config
	client *http.Client
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Payment {
	return &clientImpl{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.External.Payment.TimeoutSeconds) * time.Second,
		},
		otel: otel,
	}
}

// Refund asks the provider to return deposit money. Any non-success outcome is
// returned as a failure so the ledger performs no state change.
func (c *clientImpl) Refund(ctx context.Context, req RefundRequest) (res RefundResponse, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".payment.Refund")
	defer scope.End()
	defer scope.TraceIfError(err)

	body, err := json.Marshal(req)
	if err != nil {
		return res, fmt.Errorf("failed to marshal refund request: %w", err)
	}

	url := c.cfg.External.Payment.BaseURL + "/refunds"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return res, fmt.Errorf("failed to build refund request: %w", err)
	}

	httpReq.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	httpReq.Header.Set(constant.RequestHeaderAPIKey, c.cfg.External.Payment.APIKey)

	httpRes, err := c.client.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Msg("payment provider unreachable")

		return res, failure.DependencyFailed("payment provider unreachable") // nolint:wrapcheck
	}
	defer httpRes.Body.Close()

	if err = json.NewDecoder(httpRes.Body).Decode(&res); err != nil {
		log.Error().Err(err).Msg("failed to decode refund response")

		return res, failure.DependencyFailed("payment provider returned an unreadable response") // nolint:wrapcheck
	}

	if httpRes.StatusCode != http.StatusOK || !res.Success {
		reason := res.Error
		if reason == constant.Empty {
			reason = fmt.Sprintf("payment provider rejected the refund (status %d)", httpRes.StatusCode)
		}

		log.Error().Str("paymentRef", req.PaymentRef).Str("reason", reason).Msg("refund rejected")

		return res, failure.DependencyFailed(reason) // nolint:wrapcheck
	}

	return res, nil
}

// MapReasonCode folds a free-text staff reason into the provider's fixed set.
func MapReasonCode(reason string) string {
	lowered := strings.ToLower(reason)

	switch {
	case strings.Contains(lowered, "duplicate"):
		return ReasonDuplicate
	case strings.Contains(lowered, "customer") || strings.Contains(lowered, "guest") || strings.Contains(lowered, "request"):
		return ReasonRequestedByCustomer
	case strings.Contains(lowered, "venue") || strings.Contains(lowered, "maintenance") || strings.Contains(lowered, "closed"):
		return ReasonVenueCancelled
	default:
		return ReasonOther
	}
}
