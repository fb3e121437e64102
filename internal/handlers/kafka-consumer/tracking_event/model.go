package tracking_event

import "time"

// trackingEvent - сообщение топика forwarder.tracking.
type trackingEvent struct {
	Waybill    string    `json:"waybill"`
	Code       string    `json:"code"`
	Location   string    `json:"location"`
	Notes      string    `json:"notes"`
	OccurredAt time.Time `json:"occurred_at"`
}
