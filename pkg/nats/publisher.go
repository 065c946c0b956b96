package nats

import (
	"context"
	"fmt"

	"github.com/abgdnv/productsvc/pkg/config"
	"github.com/abgdnv/productsvc/pkg/messaging"
	"github.com/nats-io/nats.go/jetstream"
)

// streamPublisher is the part of jetstream.JetStream the publisher needs.
type streamPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

type NatsPublisher struct {
	js   streamPublisher
	opts []jetstream.PublishOpt
}

// NewNatsPublisher publishes to JetStream, retrying "no responders" failures as configured.
func NewNatsPublisher(js jetstream.JetStream, retry config.RetryConfig) *NatsPublisher {
	return newNatsPublisher(js, retry)
}

func newNatsPublisher(js streamPublisher, retry config.RetryConfig) *NatsPublisher {
	var opts []jetstream.PublishOpt
	if retry.MaxAttempts > 0 {
		opts = append(opts, jetstream.WithRetryAttempts(int(retry.MaxAttempts)))
	}
	if retry.InitialBackoff > 0 {
		opts = append(opts, jetstream.WithRetryWait(retry.InitialBackoff))
	}
	return &NatsPublisher{js: js, opts: opts}
}

func (p *NatsPublisher) Publish(ctx context.Context, event messaging.Event) error {
	data, err := event.Payload()
	if err != nil {
		return fmt.Errorf("failed to get event payload: %w", err)
	}
	if _, err = p.js.Publish(ctx, event.Subject(), data, p.opts...); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", event.Subject(), err)
	}
	return nil
}
