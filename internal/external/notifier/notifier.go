package notifier

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=./mocks/notifier_mock.go -package=mocks

import (
	"context"

	"velvet/config"
	"velvet/infras/kafka"
	"velvet/infras/otel"
	"velvet/internal/domains/reservation/model/dto"
	"velvet/shared/constant"
	"velvet/shared/timezone"
)

// Notifier publishes reservation lifecycle events for downstream consumers
// (guest email, host stand displays). Delivery is fire-and-acknowledge: a
// failed publish never rolls back the reservation change that caused it.
type Notifier interface {
	PublishReservationEvent(ctx context.Context, eventType string, payload dto.ReservationResponse) error
}

type notifierImpl struct {
	cfg   *config.Config
	kafka kafka.Client
	otel  otel.Otel
}

func New(cfg *config.Config, kafkaClient kafka.Client, otel otel.Otel) Notifier {
	return &notifierImpl{
		cfg:   cfg,
		kafka: kafkaClient,
		otel:  otel,
	}
}

func (n *notifierImpl) PublishReservationEvent(ctx context.Context, eventType string, payload dto.ReservationResponse) (err error) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".PublishReservationEvent")
	defer scope.End()
	defer scope.TraceIfError(err)

	event := dto.ReservationEvent{
		Type:       eventType,
		OccurredAt: timezone.Now(),
		Payload:    payload,
	}

	message := kafka.Message{
		Key:   payload.Reference,
		Value: event,
	}

	return n.kafka.SendMessages(ctx, n.cfg.Kafka.Topic.ReservationEvents, message) // nolint:wrapcheck
}
