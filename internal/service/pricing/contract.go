//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=pricing_test
package pricing

import (
	"context"
	"time"

	"samudra/internal/entities"
	"samudra/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, rule entities.PricingRule) (*entities.PricingRule, error)
	GetByID(ctx context.Context, id int64) (*entities.PricingRule, error)
	GetActiveByRoute(ctx context.Context, route entities.Route) (*entities.PricingRule, error)
	List(ctx context.Context, filter entities.PricingRuleFilter) ([]entities.PricingRule, error)

	IncrementDiscountUsage(ctx context.Context, discountID int64) (*entities.Discount, error)
	// DeactivateExpiredDiscounts возвращает направления правил, у которых выключены скидки.
	DeactivateExpiredDiscounts(ctx context.Context, at time.Time) ([]entities.Route, error)
}

// RuleCache кэширует активное правило направления. Промах - ErrRuleCacheMiss.
type RuleCache interface {
	Get(ctx context.Context, route entities.Route) (*entities.PricingRule, error)
	Set(ctx context.Context, rule entities.PricingRule) error
	Invalidate(ctx context.Context, routes ...entities.Route) error
}

type ForwarderGateway interface {
	GetRate(ctx context.Context, req entities.ForwarderRateRequest) (*entities.ForwarderRate, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type serviceLogger interface {
	Warn(msg string, fields ...logger.Field)
}
