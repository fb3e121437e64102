//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=pricing_rules_get_test
package pricing_rules_get

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
	ListPricingRules(ctx context.Context, filter entities.PricingRuleFilter) ([]entities.PricingRule, error)
}
