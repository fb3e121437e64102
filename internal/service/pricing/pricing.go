package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"samudra/internal/entities"
	"samudra/internal/pkg/config"
	corepricing "samudra/internal/pkg/pricing"
	"samudra/pkg/logger"
)

type Pricing struct {
	repository     Repository
	cache          RuleCache
	forwarder      ForwarderGateway
	txManager      TxManager
	log            serviceLogger
	forwarderCode  string
	defaultDivisor float64
}

func New(
	repository Repository,
	cache RuleCache,
	forwarder ForwarderGateway,
	txManager TxManager,
	log serviceLogger,
	pricingCfg config.Pricing,
	forwarderCfg config.ForwarderService,
) *Pricing {
	return &Pricing{
		repository:     repository,
		cache:          cache,
		forwarder:      forwarder,
		txManager:      txManager,
		log:            log,
		forwarderCode:  forwarderCfg.Code,
		defaultDivisor: pricingCfg.DefaultVolumetricDivisor,
	}
}

// CalculatePrice считает стоимость по активному правилу направления.
// Если правила нет, базовый тариф запрашивается у экспедитора.
func (p *Pricing) CalculatePrice(ctx context.Context, req entities.QuoteRequest) (*entities.Quote, error) {
	if err := validateQuoteRequest(req); err != nil {
		return nil, err
	}

	route := entities.Route{
		OriginArea:      req.OriginArea,
		DestinationArea: req.DestinationArea,
		ServiceType:     req.ServiceType,
	}

	rule, err := p.activeRule(ctx, route)
	if err != nil {
		if errors.Is(err, ErrPricingRuleNotFound) {
			return p.forwarderQuote(ctx, req, err)
		}
		return nil, err
	}

	quote, err := p.ruleQuote(*rule, req, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	quotesTotal.WithLabelValues(entities.RateSourcePricingRule.String()).Inc()
	return quote, nil
}

func (p *Pricing) ruleQuote(rule entities.PricingRule, req entities.QuoteRequest, at time.Time) (*entities.Quote, error) {
	weight, err := corepricing.CalculateWeight(req.Items, p.divisor(rule.VolumetricDivisor))
	if err != nil {
		return nil, fmt.Errorf("weight: %w", err)
	}

	weightTier, basePrice, err := corepricing.QuoteTier(rule.WeightTiers, weight.Chargeable)
	if err != nil {
		return nil, fmt.Errorf("weight tier: %w", err)
	}

	quote := &entities.Quote{
		PricingRuleID: rule.ID,
		RateSource:    entities.RateSourcePricingRule,
		Weight:        weight,
		WeightTier:    &weightTier,
	}

	if req.DistanceKm != nil && len(rule.DistanceTiers) > 0 {
		distanceTier, distancePrice, err := corepricing.QuoteTier(rule.DistanceTiers, *req.DistanceKm)
		if err != nil {
			return nil, fmt.Errorf("distance tier: %w", err)
		}
		basePrice = basePrice.Add(distancePrice)
		quote.DistanceTier = &distanceTier
	}

	services, err := selectServices(rule, req.SpecialServices)
	if err != nil {
		return nil, err
	}

	adjustments := corepricing.Adjustments{
		Services:      services,
		TaxRate:       rule.TaxRate,
		InsuranceRate: rule.InsuranceRate,
		At:            at,
	}

	if req.DiscountCode != "" {
		discount, ok := rule.FindDiscount(req.DiscountCode)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrDiscountNotFound, req.DiscountCode)
		}
		adjustments.Discount = &discount
		quote.AppliedDiscount = &discount
	}

	breakdown, err := corepricing.ApplyAdjustments(basePrice, adjustments)
	if err != nil {
		return nil, fmt.Errorf("adjustments: %w", err)
	}
	quote.Breakdown = breakdown

	return quote, nil
}

// forwarderQuote не поддерживает услуги и скидки: они описаны только в своих правилах.
func (p *Pricing) forwarderQuote(ctx context.Context, req entities.QuoteRequest, ruleErr error) (*entities.Quote, error) {
	if len(req.SpecialServices) > 0 || req.DiscountCode != "" {
		return nil, ruleErr
	}

	weight, err := corepricing.CalculateWeight(req.Items, p.divisor(0))
	if err != nil {
		return nil, fmt.Errorf("weight: %w", err)
	}

	rate, err := p.forwarder.GetRate(ctx, entities.ForwarderRateRequest{
		ForwarderCode:   p.forwarderCode,
		OriginArea:      req.OriginArea,
		DestinationArea: req.DestinationArea,
		ServiceType:     req.ServiceType,
		Weight:          weight.Chargeable,
		DistanceKm:      req.DistanceKm,
	})
	if err != nil {
		if errors.Is(err, ErrForwarderUnavailable) {
			return nil, ruleErr
		}
		return nil, fmt.Errorf("forwarder rate: %w", err)
	}

	breakdown, err := corepricing.ApplyAdjustments(rate.BaseRate, corepricing.Adjustments{At: time.Now().UTC()})
	if err != nil {
		return nil, fmt.Errorf("adjustments: %w", err)
	}

	quotesTotal.WithLabelValues(entities.RateSourceForwarder.String()).Inc()
	return &entities.Quote{
		RateSource:    entities.RateSourceForwarder,
		ForwarderCode: rate.ForwarderCode,
		Weight:        weight,
		Breakdown:     breakdown,
	}, nil
}

func (p *Pricing) activeRule(ctx context.Context, route entities.Route) (*entities.PricingRule, error) {
	rule, err := p.cache.Get(ctx, route)
	if err == nil {
		ruleCacheTotal.WithLabelValues("hit").Inc()
		return rule, nil
	}
	if !errors.Is(err, ErrRuleCacheMiss) {
		p.log.Warn("pricing rule cache read failed",
			logger.NewField("route", route.String()),
			logger.NewField("error", err),
		)
	}
	ruleCacheTotal.WithLabelValues("miss").Inc()

	rule, err = p.repository.GetActiveByRoute(ctx, route)
	if err != nil {
		return nil, fmt.Errorf("get pricing rule %s: %w", route, err)
	}

	if err := p.cache.Set(ctx, *rule); err != nil {
		p.log.Warn("pricing rule cache write failed",
			logger.NewField("route", route.String()),
			logger.NewField("error", err),
		)
	}
	return rule, nil
}

func (p *Pricing) divisor(ruleDivisor float64) float64 {
	if ruleDivisor > 0 {
		return ruleDivisor
	}
	return p.defaultDivisor
}

func selectServices(rule entities.PricingRule, codes []string) ([]entities.SpecialService, error) {
	services := make([]entities.SpecialService, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}

		service, ok := rule.FindSpecialService(code)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSpecialService, code)
		}
		services = append(services, service)
	}
	return services, nil
}

func (p *Pricing) CreatePricingRule(ctx context.Context, rule entities.PricingRule) (*entities.PricingRule, error) {
	if err := validatePricingRule(rule); err != nil {
		return nil, err
	}

	var created *entities.PricingRule
	err := p.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = p.repository.Create(ctx, rule)
		if err != nil {
			return fmt.Errorf("create pricing rule: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.invalidate(ctx, created.Route())
	return created, nil
}

func (p *Pricing) GetPricingRule(ctx context.Context, id int64) (*entities.PricingRule, error) {
	rule, err := p.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get pricing rule: %w", err)
	}
	return rule, nil
}

func (p *Pricing) ListPricingRules(ctx context.Context, filter entities.PricingRuleFilter) ([]entities.PricingRule, error) {
	if filter.ServiceType != nil && !filter.ServiceType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidServiceType, *filter.ServiceType)
	}

	rules, err := p.repository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list pricing rules: %w", err)
	}
	return rules, nil
}

// RedeemDiscount атомарно увеличивает счетчик использований скидки.
// Вызывается в транзакции создания заказа. Кэш правила сбрасывается,
// иначе расчет цены видит старый счетчик до истечения TTL.
func (p *Pricing) RedeemDiscount(ctx context.Context, discountID int64) (*entities.Discount, error) {
	discount, err := p.repository.IncrementDiscountUsage(ctx, discountID)
	if err != nil {
		return nil, fmt.Errorf("redeem discount %d: %w", discountID, err)
	}

	rule, err := p.repository.GetByID(ctx, discount.PricingRuleID)
	if err != nil {
		p.log.Warn("pricing rule lookup for cache invalidation failed",
			logger.NewField("pricing_rule_id", discount.PricingRuleID),
			logger.NewField("error", err),
		)
		return discount, nil
	}

	p.invalidate(ctx, rule.Route())
	return discount, nil
}

func (p *Pricing) DeactivateExpiredDiscounts(ctx context.Context) (int64, error) {
	routes, err := p.repository.DeactivateExpiredDiscounts(ctx, time.Now().UTC())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, fmt.Errorf("deactivate expired discounts timed out: %w", err)
		}
		return 0, fmt.Errorf("deactivate expired discounts: %w", err)
	}

	p.invalidate(ctx, routes...)
	return int64(len(routes)), nil
}

func (p *Pricing) invalidate(ctx context.Context, routes ...entities.Route) {
	if len(routes) == 0 {
		return
	}
	if err := p.cache.Invalidate(ctx, routes...); err != nil {
		p.log.Warn("pricing rule cache invalidation failed",
			logger.NewField("routes", len(routes)),
			logger.NewField("error", err),
		)
	}
}
