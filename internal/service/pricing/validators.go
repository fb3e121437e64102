package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"samudra/internal/entities"
	corepricing "samudra/internal/pkg/pricing"
)

var hundred = decimal.NewFromInt(100)

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validateQuoteRequest(req entities.QuoteRequest) error {
	if isBlank(req.OriginArea) || isBlank(req.DestinationArea) || len(req.Items) == 0 {
		return ErrMissingRequiredFields
	}
	if !req.ServiceType.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidServiceType, req.ServiceType)
	}
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("item %d quantity must be positive: %w", i, corepricing.ErrInvalidItem)
		}
	}
	if req.DistanceKm != nil && *req.DistanceKm < 0 {
		return fmt.Errorf("distance: %w", corepricing.ErrNegativeValue)
	}
	return nil
}

func validatePricingRule(rule entities.PricingRule) error {
	if isBlank(rule.Code) || isBlank(rule.OriginArea) || isBlank(rule.DestinationArea) {
		return ErrMissingRequiredFields
	}
	if !rule.ServiceType.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidServiceType, rule.ServiceType)
	}
	if rule.VolumetricDivisor < 0 {
		return fmt.Errorf("%w: volumetric divisor must not be negative", ErrInvalidPricingRule)
	}
	if len(rule.WeightTiers) == 0 {
		return fmt.Errorf("%w: weight tiers are required", ErrInvalidPricingRule)
	}
	if err := corepricing.ValidateTiers(rule.WeightTiers); err != nil {
		return fmt.Errorf("weight tiers: %w", err)
	}
	if err := corepricing.ValidateTiers(rule.DistanceTiers); err != nil {
		return fmt.Errorf("distance tiers: %w", err)
	}
	if !isPercent(rule.TaxRate) || !isPercent(rule.InsuranceRate) {
		return corepricing.ErrInvalidRate
	}

	services := make(map[string]struct{}, len(rule.SpecialServices))
	for _, service := range rule.SpecialServices {
		if err := corepricing.ValidateSpecialService(service); err != nil {
			return err
		}
		if _, ok := services[service.Code]; ok {
			return fmt.Errorf("%w: duplicate special service %q", ErrInvalidPricingRule, service.Code)
		}
		services[service.Code] = struct{}{}
	}

	discounts := make(map[string]struct{}, len(rule.Discounts))
	for _, discount := range rule.Discounts {
		if err := corepricing.ValidateDiscount(discount); err != nil {
			return err
		}
		if _, ok := discounts[discount.Code]; ok {
			return fmt.Errorf("%w: duplicate discount %q", ErrInvalidPricingRule, discount.Code)
		}
		discounts[discount.Code] = struct{}{}

		if discount.Type == entities.DiscountFreeService {
			if _, ok := services[discount.FreeServiceCode]; !ok {
				return fmt.Errorf("%w: discount %q waives unknown service %q",
					ErrInvalidPricingRule, discount.Code, discount.FreeServiceCode)
			}
		}
	}
	return nil
}

func isPercent(rate decimal.Decimal) bool {
	return !rate.IsNegative() && !rate.GreaterThan(hundred)
}
