package pricing_rule

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"samudra/internal/entities"
)

func ToDomain(r *PricingRuleDB, discounts []DiscountDB) (*entities.PricingRule, error) {
	if r == nil {
		return nil, nil
	}

	weightTiers, err := tiersToDomain(r.WeightTiers)
	if err != nil {
		return nil, fmt.Errorf("weight tiers: %w", err)
	}
	distanceTiers, err := tiersToDomain(r.DistanceTiers)
	if err != nil {
		return nil, fmt.Errorf("distance tiers: %w", err)
	}

	var servicesDB []SpecialServiceDB
	if len(r.SpecialServices) > 0 {
		if err := json.Unmarshal(r.SpecialServices, &servicesDB); err != nil {
			return nil, fmt.Errorf("special services: %w", err)
		}
	}
	services := make([]entities.SpecialService, len(servicesDB))
	for i, s := range servicesDB {
		services[i] = entities.SpecialService{
			Code:  s.Code,
			Name:  s.Name,
			Type:  entities.SpecialServiceType(s.Type),
			Value: s.Value,
		}
	}

	return &entities.PricingRule{
		ID:                r.ID,
		Code:              r.Code,
		OriginArea:        r.OriginArea,
		DestinationArea:   r.DestinationArea,
		ServiceType:       entities.ServiceType(r.ServiceType),
		VolumetricDivisor: r.VolumetricDivisor,
		WeightTiers:       weightTiers,
		DistanceTiers:     distanceTiers,
		SpecialServices:   services,
		Discounts:         DiscountsToDomain(discounts),
		TaxRate:           r.TaxRate,
		InsuranceRate:     r.InsuranceRate,
		Active:            r.Active,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}, nil
}

func FromDomain(rule *entities.PricingRule) (*PricingRuleDB, error) {
	if rule == nil {
		return nil, nil
	}

	weightTiers, err := tiersFromDomain(rule.WeightTiers)
	if err != nil {
		return nil, fmt.Errorf("weight tiers: %w", err)
	}
	distanceTiers, err := tiersFromDomain(rule.DistanceTiers)
	if err != nil {
		return nil, fmt.Errorf("distance tiers: %w", err)
	}

	servicesDB := make([]SpecialServiceDB, len(rule.SpecialServices))
	for i, s := range rule.SpecialServices {
		servicesDB[i] = SpecialServiceDB{
			Code:  s.Code,
			Name:  s.Name,
			Type:  s.Type.String(),
			Value: s.Value,
		}
	}
	services, err := json.Marshal(servicesDB)
	if err != nil {
		return nil, fmt.Errorf("special services: %w", err)
	}

	return &PricingRuleDB{
		ID:                rule.ID,
		Code:              rule.Code,
		OriginArea:        rule.OriginArea,
		DestinationArea:   rule.DestinationArea,
		ServiceType:       rule.ServiceType.String(),
		VolumetricDivisor: rule.VolumetricDivisor,
		WeightTiers:       weightTiers,
		DistanceTiers:     distanceTiers,
		SpecialServices:   services,
		TaxRate:           rule.TaxRate,
		InsuranceRate:     rule.InsuranceRate,
		Active:            rule.Active,
	}, nil
}

func DiscountToDomain(d *DiscountDB) *entities.Discount {
	if d == nil {
		return nil
	}

	discount := &entities.Discount{
		ID:              d.ID,
		PricingRuleID:   d.PricingRuleID,
		Code:            d.Code,
		Type:            entities.DiscountType(d.Type),
		Value:           d.Value,
		FreeServiceCode: d.FreeServiceCode,
		MinOrderValue:   d.MinOrderValue,
		StartDate:       d.StartDate,
		EndDate:         d.EndDate,
		UsageLimit:      d.UsageLimit,
		UsageCount:      d.UsageCount,
		Active:          d.Active,
	}
	if d.MaxDiscountAmount.Valid {
		maxAmount := d.MaxDiscountAmount.Decimal
		discount.MaxDiscountAmount = &maxAmount
	}
	return discount
}

func DiscountFromDomain(d *entities.Discount) *DiscountDB {
	if d == nil {
		return nil
	}

	discountDB := &DiscountDB{
		ID:              d.ID,
		PricingRuleID:   d.PricingRuleID,
		Code:            d.Code,
		Type:            d.Type.String(),
		Value:           d.Value,
		FreeServiceCode: d.FreeServiceCode,
		MinOrderValue:   d.MinOrderValue,
		StartDate:       d.StartDate,
		EndDate:         d.EndDate,
		UsageLimit:      d.UsageLimit,
		UsageCount:      d.UsageCount,
		Active:          d.Active,
	}
	if d.MaxDiscountAmount != nil {
		discountDB.MaxDiscountAmount = decimal.NewNullDecimal(*d.MaxDiscountAmount)
	}
	return discountDB
}

func DiscountsToDomain(discountsDB []DiscountDB) []entities.Discount {
	if len(discountsDB) == 0 {
		return []entities.Discount{}
	}

	result := make([]entities.Discount, len(discountsDB))
	for i, discountDB := range discountsDB {
		result[i] = *DiscountToDomain(&discountDB)
	}
	return result
}

func tiersToDomain(raw []byte) ([]entities.Tier, error) {
	if len(raw) == 0 {
		return []entities.Tier{}, nil
	}

	var tiersDB []TierDB
	if err := json.Unmarshal(raw, &tiersDB); err != nil {
		return nil, err
	}

	tiers := make([]entities.Tier, len(tiersDB))
	for i, t := range tiersDB {
		tiers[i] = entities.Tier{
			MinBound:     t.MinBound,
			MaxBound:     t.MaxBound,
			PerUnitPrice: t.PerUnitPrice,
			FlatPrice:    t.FlatPrice,
		}
	}
	return tiers, nil
}

func tiersFromDomain(tiers []entities.Tier) ([]byte, error) {
	tiersDB := make([]TierDB, len(tiers))
	for i, t := range tiers {
		tiersDB[i] = TierDB{
			MinBound:     t.MinBound,
			MaxBound:     t.MaxBound,
			PerUnitPrice: t.PerUnitPrice,
			FlatPrice:    t.FlatPrice,
		}
	}
	return json.Marshal(tiersDB)
}
