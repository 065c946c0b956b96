package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/abgdnv/productsvc/pkg/messaging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// ProductEvent is the payload shared by all product events. Carrier holds the
// trace context of the request that caused the change.
type ProductEvent struct {
	Carrier    propagation.MapCarrier `json:"carrier,omitempty"`
	ProductID  int64                  `json:"product_id"`
	Name       string                 `json:"name,omitempty"`
	Sku        string                 `json:"sku,omitempty"`
	Price      string                 `json:"price,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// NewProductEvent captures the trace context of ctx into the event carrier.
func NewProductEvent(ctx context.Context, id int64, name, sku, price string) ProductEvent {
	carrier := make(propagation.MapCarrier)
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	return ProductEvent{
		Carrier:    carrier,
		ProductID:  id,
		Name:       name,
		Sku:        sku,
		Price:      price,
		OccurredAt: time.Now().UTC(),
	}
}

type ProductCreatedEvent struct {
	ProductEvent
}

func (e ProductCreatedEvent) Subject() string {
	return messaging.ProductsCreatedSubject
}

func (e ProductCreatedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type ProductUpdatedEvent struct {
	ProductEvent
}

func (e ProductUpdatedEvent) Subject() string {
	return messaging.ProductsUpdatedSubject
}

func (e ProductUpdatedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type ProductDeletedEvent struct {
	ProductEvent
}

func (e ProductDeletedEvent) Subject() string {
	return messaging.ProductsDeletedSubject
}

func (e ProductDeletedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
