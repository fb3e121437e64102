//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=shipment_status_post_test
package shipment_status_post

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
	TransitionStatus(ctx context.Context, change entities.StatusChange) (*entities.ShipmentOrder, error)
}
