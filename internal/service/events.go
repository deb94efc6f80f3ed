package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/noah-isme/nido-go-api/internal/observability"
)

// EventPublisher broadcasts domain events to interested consumers
// (notification workers, audit sinks). Publishing is best effort: callers
// log failures and continue.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
}

type natsEventPublisher struct {
	conn   *nats.Conn
	base   string
	logger zerolog.Logger
}

// NewNATSEventPublisher constructs an event publisher backed by NATS.
func NewNATSEventPublisher(conn *nats.Conn, subjectBase string, logger zerolog.Logger) EventPublisher {
	base := strings.Trim(subjectBase, ".")
	if base == "" {
		base = "nido"
	}

	return &natsEventPublisher{
		conn:   conn,
		base:   base,
		logger: logger.With().Str("component", "event_publisher").Logger(),
	}
}

func (p *natsEventPublisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	if p.conn == nil {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode event payload: %w", err)
	}

	full := p.base + "." + subject
	if err := p.conn.Publish(full, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	observability.EventsPublished().WithLabelValues(subject).Inc()
	p.logger.Debug().Str("subject", full).Msg("event published")

	return nil
}
