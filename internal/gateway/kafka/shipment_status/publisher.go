package shipment_status

import (
	"context"
	"encoding/json"
	"fmt"

	"samudra/internal/entities"
	"samudra/internal/pkg/config"
)

type Publisher struct {
	producer Producer
	topic    string
}

func New(producer Producer, cfg config.Kafka) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    cfg.StatusChangedTopic,
	}
}

// PublishStatusChanged использует накладную как ключ, чтобы события
// одного заказа читались по порядку.
func (p *Publisher) PublishStatusChanged(ctx context.Context, event entities.ShipmentStatusEvent) error {
	payload, err := json.Marshal(statusChangedEvent{
		Waybill:        event.Waybill,
		PreviousStatus: event.PreviousStatus.String(),
		Status:         event.Status.String(),
		Location:       event.Location,
		OccurredAt:     event.OccurredAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal status event: %w", err)
	}

	if err := p.producer.Send(ctx, p.topic, event.Waybill, payload); err != nil {
		return fmt.Errorf("publish status event %s: %w", event.Waybill, err)
	}
	return nil
}
