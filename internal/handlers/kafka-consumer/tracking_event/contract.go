//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=tracking_event_test
package tracking_event

import (
	"context"

	"samudra/internal/entities"
	"samudra/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ProcessTrackingEvent(ctx context.Context, event entities.TrackingEvent) (*entities.ShipmentOrder, error)
}
