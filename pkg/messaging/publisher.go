// Package messaging defines the events published by the service and the publisher abstraction.
package messaging

import (
	"context"
)

const (
	ProductsSubjectPrefix  = "products."
	ProductsCreatedSubject = ProductsSubjectPrefix + "created"
	ProductsUpdatedSubject = ProductsSubjectPrefix + "updated"
	ProductsDeletedSubject = ProductsSubjectPrefix + "deleted"
	// ProductsSubjects matches every product subject; used when declaring the stream.
	ProductsSubjects = ProductsSubjectPrefix + ">"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error {
	return nil
}
