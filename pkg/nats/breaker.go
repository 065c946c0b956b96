package nats

import (
	"context"
	"errors"

	"github.com/abgdnv/productsvc/pkg/config"
	"github.com/abgdnv/productsvc/pkg/messaging"
	"github.com/sony/gobreaker/v2"
)

// BreakerPublisher stops calling the wrapped publisher while the broker keeps failing.
// While open, Publish fails fast with gobreaker.ErrOpenState.
type BreakerPublisher struct {
	next messaging.Publisher
	cb   *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerPublisher(next messaging.Publisher, cfg config.CircuitBreakerConfig) *BreakerPublisher {
	st := gobreaker.Settings{
		Name:        "nats-publisher",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			total := counts.TotalSuccesses + counts.TotalFailures
			return counts.ConsecutiveFailures > cfg.ConsecutiveFailures ||
				(total > cfg.ConsecutiveFailures &&
					float64(counts.TotalFailures)/float64(total)*100 > float64(cfg.ErrorRatePercent))
		},
		IsSuccessful: func(err error) bool {
			// a cancelled request says nothing about the broker
			return err == nil || errors.Is(err, context.Canceled)
		},
	}
	return &BreakerPublisher{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[struct{}](st),
	}
}

func (p *BreakerPublisher) Publish(ctx context.Context, event messaging.Event) error {
	_, err := p.cb.Execute(func() (struct{}, error) {
		return struct{}{}, p.next.Publish(ctx, event)
	})
	return err
}

// State reports the breaker state, for logs and tests.
func (p *BreakerPublisher) State() gobreaker.State {
	return p.cb.State()
}
