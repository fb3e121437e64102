package pricing_cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"samudra/internal/entities"
	"samudra/internal/pkg/cache"
	"samudra/internal/pkg/config"
	"samudra/internal/service/pricing"
)

const keyPrefix = "pricing_rule:"

// Repository хранит активное правило направления в кэше в JSON.
type Repository struct {
	cache cache.Cache
	ttl   time.Duration
}

func New(c cache.Cache, cfg config.Redis) *Repository {
	return &Repository{
		cache: c,
		ttl:   cfg.PricingRuleTTL,
	}
}

func (r *Repository) Get(ctx context.Context, route entities.Route) (*entities.PricingRule, error) {
	raw, err := r.cache.Get(ctx, routeKey(route))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, pricing.ErrRuleCacheMiss
		}
		return nil, fmt.Errorf("unexpected pricing cache get error: %w", err)
	}

	var rule entities.PricingRule
	if err := json.Unmarshal(raw, &rule); err != nil {
		// битая запись ведет себя как промах, правило перечитается из БД
		return nil, fmt.Errorf("%w: %v", pricing.ErrRuleCacheMiss, err)
	}
	return &rule, nil
}

func (r *Repository) Set(ctx context.Context, rule entities.PricingRule) error {
	raw, err := json.Marshal(rule)
	if err != nil {
		return fmt.Errorf("unexpected pricing cache set error: %w", err)
	}

	if err := r.cache.Set(ctx, routeKey(rule.Route()), raw, r.ttl); err != nil {
		return fmt.Errorf("unexpected pricing cache set error: %w", err)
	}
	return nil
}

func (r *Repository) Invalidate(ctx context.Context, routes ...entities.Route) error {
	keys := make([]string, 0, len(routes))
	seen := make(map[string]struct{}, len(routes))
	for _, route := range routes {
		key := routeKey(route)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	if err := r.cache.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("unexpected pricing cache invalidate error: %w", err)
	}
	return nil
}

func routeKey(route entities.Route) string {
	return keyPrefix + route.String()
}
