package tracking_status

import (
	"context"
	"fmt"

	"samudra/internal/entities"
	"samudra/internal/service/tracking"
)

// ForwarderUser - автор записей истории, пришедших от экспедитора.
const ForwarderUser = "forwarder"

// коды партнера -> статус заказа
var codeStatuses = map[string]entities.ShipmentStatus{
	"PICKUP":          entities.StatusProcessed,
	"DEPARTED":        entities.StatusInTransit,
	"ARRIVED":         entities.StatusArrivedAtDestination,
	"WITH_COURIER":    entities.StatusOutForDelivery,
	"DELIVERED":       entities.StatusDelivered,
	"DELIVERY_FAILED": entities.StatusFailedDelivery,
	"RETURNED":        entities.StatusReturned,
}

type StatusHandlerFactory struct {
	shipmentService ShipmentService
}

func NewStatusHandlerFactory(shipmentService ShipmentService) *StatusHandlerFactory {
	return &StatusHandlerFactory{
		shipmentService: shipmentService,
	}
}

func (f *StatusHandlerFactory) GetHandler(code string) (tracking.ExecuteFn, error) {
	status, ok := codeStatuses[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", tracking.ErrUndefinedCode, code)
	}
	return f.transitionHandler(status), nil
}

func (f *StatusHandlerFactory) transitionHandler(status entities.ShipmentStatus) tracking.ExecuteFn {
	return func(ctx context.Context, event entities.TrackingEvent) (*entities.ShipmentOrder, error) {
		order, err := f.shipmentService.TransitionStatus(ctx, entities.StatusChange{
			Waybill:  event.Waybill,
			Status:   status,
			Location: event.Location,
			Notes:    event.Notes,
			User:     ForwarderUser,
			At:       event.OccurredAt,
		})
		if err != nil {
			return nil, fmt.Errorf("move shipment %s to %s: %w", event.Waybill, status, err)
		}
		return order, nil
	}
}
