package shipment_status

import "time"

// statusChangedEvent - формат сообщения shipment.status.changed.
type statusChangedEvent struct {
	Waybill        string    `json:"waybill"`
	PreviousStatus string    `json:"previous_status"`
	Status         string    `json:"status"`
	Location       string    `json:"location,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
