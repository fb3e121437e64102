//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=shipments_calculate_price_post_test
package shipments_calculate_price_post

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
	CalculatePrice(ctx context.Context, req entities.QuoteRequest) (*entities.Quote, error)
}
