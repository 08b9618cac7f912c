// Package notification fans settlement and tracking events out to external
// subscribers over redis pub/sub.
package notification

import (
	"context"
	"log"
)

// Broker is the pub/sub surface the service publishes through.
type Broker interface {
	Publish(ctx context.Context, channel string, payload interface{}) error
}

// Service publishes event payloads on named channels. Delivery is best
// effort; a failed publish is logged, never retried.
type Service struct {
	broker Broker
}

// NewService creates a new notification service.
func NewService(broker Broker) *Service {
	if broker == nil {
		panic("broker is required")
	}
	return &Service{broker: broker}
}

func (s *Service) Publish(ctx context.Context, channel string, payload interface{}) error {
	if err := s.broker.Publish(ctx, channel, payload); err != nil {
		log.Printf("publish on %s failed: %v", channel, err)
		return err
	}
	return nil
}
