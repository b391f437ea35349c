package services

import (
	"encoding/json"
	"time"

	"catalog/internal/dto"
)

// Product lifecycle event names.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher delivers product lifecycle events to a message broker.
type EventPublisher interface {
	PublishProductEvent(eventType string, body []byte) error
}

// ProductEvent is the JSON payload of a lifecycle event.
type ProductEvent struct {
	Event      string          `json:"event"`
	ID         uint            `json:"id"`
	Product    *dto.ProductDTO `json:"product,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// publish sends an event after the transaction committed. Failures are
// logged and never returned to the caller.
func (s *ProductService) publish(event string, id uint, product *dto.ProductDTO) {
	if s.publisher == nil {
		s.logger.Debug().Str("event", event).Msg("event publisher not configured, skipping")
		return
	}

	body, err := json.Marshal(ProductEvent{
		Event:      event,
		ID:         id,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("event", event).Msg("failed to marshal product event")
		return
	}

	if err := s.publisher.PublishProductEvent(event, body); err != nil {
		s.logger.Warn().Err(err).Str("event", event).Uint("product_id", id).Msg("failed to publish product event")
		return
	}
	s.logger.Debug().Str("event", event).Uint("product_id", id).Msg("published product event")
}
