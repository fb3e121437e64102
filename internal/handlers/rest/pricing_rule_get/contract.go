//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=pricing_rule_get_test
package pricing_rule_get

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
	GetPricingRule(ctx context.Context, id int64) (*entities.PricingRule, error)
}
