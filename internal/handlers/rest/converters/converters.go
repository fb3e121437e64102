// Package converters переводит DTO REST API в сущности и обратно.
// Денежные суммы передаются строками, чтобы не терять точность.
package converters

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlekSi/pointer"
	"github.com/shopspring/decimal"
	"samudra/internal/entities"
	"samudra/internal/generated/dto"
)

var ErrInvalidDecimal = errors.New("invalid decimal value")

func ParseDecimal(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidDecimal, field)
	}
	return d, nil
}

func parseOptionalDecimal(field string, value *string) (*decimal.Decimal, error) {
	if value == nil {
		return nil, nil
	}
	d, err := ParseDecimal(field, *value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func ItemsFromDTO(items []dto.ShipmentItem) ([]entities.Item, error) {
	result := make([]entities.Item, len(items))
	for i, item := range items {
		result[i] = entities.Item{
			Description: pointer.Get(item.Description),
			Weight:      item.Weight,
			Quantity:    item.Quantity,
		}
		if item.Dimensions != nil {
			result[i].Dimensions = &entities.Dimensions{
				Length: item.Dimensions.Length,
				Width:  item.Dimensions.Width,
				Height: item.Dimensions.Height,
				Unit:   entities.DimensionUnit(pointer.Get(item.Dimensions.Unit)),
			}
		}
		if item.Value != nil {
			value, err := ParseDecimal("items.value", *item.Value)
			if err != nil {
				return nil, err
			}
			result[i].Value = value
		}
	}
	return result, nil
}

func ItemsToDTO(items []entities.Item) []dto.ShipmentItem {
	result := make([]dto.ShipmentItem, len(items))
	for i, item := range items {
		result[i] = dto.ShipmentItem{
			Weight:   item.Weight,
			Quantity: item.Quantity,
			Value:    pointer.ToString(item.Value.StringFixed(2)),
		}
		if item.Description != "" {
			result[i].Description = pointer.ToString(item.Description)
		}
		if item.Dimensions != nil {
			result[i].Dimensions = &dto.Dimensions{
				Length: item.Dimensions.Length,
				Width:  item.Dimensions.Width,
				Height: item.Dimensions.Height,
				Unit:   pointer.ToString(item.Dimensions.Unit.String()),
			}
		}
	}
	return result
}

func QuoteRequestFromDTO(req dto.PriceCalculationRequest) (entities.QuoteRequest, error) {
	items, err := ItemsFromDTO(req.Items)
	if err != nil {
		return entities.QuoteRequest{}, err
	}

	return entities.QuoteRequest{
		OriginArea:      req.OriginArea,
		DestinationArea: req.DestinationArea,
		ServiceType:     entities.ServiceType(req.ServiceType),
		DistanceKm:      req.DistanceKm,
		Items:           items,
		SpecialServices: pointer.Get(req.SpecialServices),
		DiscountCode:    strings.TrimSpace(pointer.Get(req.DiscountCode)),
	}, nil
}

func QuoteToDTO(quote entities.Quote) dto.PriceQuote {
	result := dto.PriceQuote{
		RateSource: quote.RateSource.String(),
		Weight: dto.WeightSummary{
			Actual:     quote.Weight.Actual,
			Volumetric: quote.Weight.Volumetric,
			Chargeable: quote.Weight.Chargeable,
		},
		Breakdown: BreakdownToDTO(quote.Breakdown),
	}
	if quote.RateSource == entities.RateSourcePricingRule {
		result.PricingRuleID = pointer.ToInt64(quote.PricingRuleID)
	}
	if quote.ForwarderCode != "" {
		result.ForwarderCode = pointer.ToString(quote.ForwarderCode)
	}
	if quote.WeightTier != nil {
		tier := TierToDTO(*quote.WeightTier)
		result.WeightTier = &tier
	}
	if quote.DistanceTier != nil {
		tier := TierToDTO(*quote.DistanceTier)
		result.DistanceTier = &tier
	}
	return result
}

func BreakdownToDTO(b entities.PriceBreakdown) dto.PriceBreakdown {
	surcharges := make([]dto.SurchargeLine, len(b.Surcharges))
	for i, s := range b.Surcharges {
		surcharges[i] = dto.SurchargeLine{
			Code:   s.Code,
			Name:   s.Name,
			Type:   s.Type.String(),
			Amount: money(s.Amount),
			Waived: s.Waived,
		}
	}

	result := dto.PriceBreakdown{
		BasePrice:          money(b.BasePrice),
		Surcharges:         surcharges,
		SurchargeTotal:     money(b.SurchargeTotal),
		Subtotal:           money(b.Subtotal),
		DiscountedSubtotal: money(b.DiscountedSubtotal),
		Tax:                money(b.Tax),
		Insurance:          money(b.Insurance),
		Total:              money(b.Total),
	}
	if b.Discount != nil {
		result.Discount = &dto.DiscountLine{
			Code:   b.Discount.Code,
			Type:   b.Discount.Type.String(),
			Amount: money(b.Discount.Amount),
		}
	}
	return result
}

func ShipmentCreateFromDTO(req dto.ShipmentCreateRequest) (entities.ShipmentCreate, error) {
	items, err := ItemsFromDTO(req.Items)
	if err != nil {
		return entities.ShipmentCreate{}, err
	}

	serviceType := entities.ServiceType(req.ServiceType)
	return entities.ShipmentCreate{
		SenderName:      &req.SenderName,
		ReceiverName:    &req.ReceiverName,
		OriginArea:      &req.OriginArea,
		DestinationArea: &req.DestinationArea,
		ServiceType:     &serviceType,
		DistanceKm:      req.DistanceKm,
		Items:           items,
		SpecialServices: pointer.Get(req.SpecialServices),
		DiscountCode:    req.DiscountCode,
		User:            req.User,
	}, nil
}

func ShipmentToDTO(order entities.ShipmentOrder) dto.Shipment {
	history := make([]dto.StatusHistoryEntry, len(order.StatusHistory))
	for i, entry := range order.StatusHistory {
		history[i] = dto.StatusHistoryEntry{
			Status:    entry.Status.String(),
			Timestamp: entry.Timestamp,
			Location:  optionalString(entry.Location),
			Notes:     optionalString(entry.Notes),
			User:      optionalString(entry.User),
		}
	}

	return dto.Shipment{
		ID:              order.ID,
		Waybill:         order.Waybill,
		SenderName:      order.SenderName,
		ReceiverName:    order.ReceiverName,
		OriginArea:      order.OriginArea,
		DestinationArea: order.DestinationArea,
		ServiceType:     order.ServiceType.String(),
		DistanceKm:      order.DistanceKm,
		Items:           ItemsToDTO(order.Items),
		TotalWeight:     order.TotalWeight,
		Amount: dto.Amount{
			BaseRate:           money(order.Amount.BaseRate),
			AdditionalServices: money(order.Amount.AdditionalServices),
			Discount:           money(order.Amount.Discount),
			Insurance:          money(order.Amount.Insurance),
			Tax:                money(order.Amount.Tax),
			Total:              money(order.Amount.Total),
		},
		PricingRuleID:       order.PricingRuleID,
		DiscountCode:        optionalString(order.DiscountCode),
		Status:              order.Status.String(),
		StatusHistory:       history,
		EstimatedDeliveryAt: order.EstimatedDeliveryAt,
		Version:             order.Version,
		CreatedAt:           order.CreatedAt,
		UpdatedAt:           order.UpdatedAt,
	}
}

func TierFromDTO(field string, tier dto.Tier) (entities.Tier, error) {
	perUnit, err := ParseDecimal(field+".per_unit_price", tier.PerUnitPrice)
	if err != nil {
		return entities.Tier{}, err
	}
	flat, err := parseOptionalDecimal(field+".flat_price", tier.FlatPrice)
	if err != nil {
		return entities.Tier{}, err
	}

	return entities.Tier{
		MinBound:     tier.MinBound,
		MaxBound:     tier.MaxBound,
		PerUnitPrice: perUnit,
		FlatPrice:    flat,
	}, nil
}

func TierToDTO(tier entities.Tier) dto.Tier {
	result := dto.Tier{
		MinBound:     tier.MinBound,
		MaxBound:     tier.MaxBound,
		PerUnitPrice: money(tier.PerUnitPrice),
	}
	if tier.FlatPrice != nil {
		result.FlatPrice = pointer.ToString(money(*tier.FlatPrice))
	}
	return result
}

func tiersFromDTO(field string, tiers []dto.Tier) ([]entities.Tier, error) {
	result := make([]entities.Tier, len(tiers))
	for i, tier := range tiers {
		var err error
		result[i], err = TierFromDTO(field, tier)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func tiersToDTO(tiers []entities.Tier) []dto.Tier {
	result := make([]dto.Tier, len(tiers))
	for i, tier := range tiers {
		result[i] = TierToDTO(tier)
	}
	return result
}

func PricingRuleFromDTO(req dto.PricingRuleCreate) (entities.PricingRule, error) {
	weightTiers, err := tiersFromDTO("weight_tiers", req.WeightTiers)
	if err != nil {
		return entities.PricingRule{}, err
	}
	distanceTiers, err := tiersFromDTO("distance_tiers", pointer.Get(req.DistanceTiers))
	if err != nil {
		return entities.PricingRule{}, err
	}

	services := pointer.Get(req.SpecialServices)
	specialServices := make([]entities.SpecialService, len(services))
	for i, s := range services {
		value, err := ParseDecimal("special_services.value", s.Value)
		if err != nil {
			return entities.PricingRule{}, err
		}
		specialServices[i] = entities.SpecialService{
			Code:  s.Code,
			Name:  s.Name,
			Type:  entities.SpecialServiceType(s.Type),
			Value: value,
		}
	}

	discountDTOs := pointer.Get(req.Discounts)
	discounts := make([]entities.Discount, len(discountDTOs))
	for i, d := range discountDTOs {
		discounts[i], err = discountFromDTO(d)
		if err != nil {
			return entities.PricingRule{}, err
		}
	}

	rule := entities.PricingRule{
		Code:              strings.TrimSpace(req.Code),
		OriginArea:        strings.TrimSpace(req.OriginArea),
		DestinationArea:   strings.TrimSpace(req.DestinationArea),
		ServiceType:       entities.ServiceType(req.ServiceType),
		VolumetricDivisor: pointer.Get(req.VolumetricDivisor),
		WeightTiers:       weightTiers,
		DistanceTiers:     distanceTiers,
		SpecialServices:   specialServices,
		Discounts:         discounts,
		Active:            true,
	}
	if req.TaxRate != nil {
		if rule.TaxRate, err = ParseDecimal("tax_rate", *req.TaxRate); err != nil {
			return entities.PricingRule{}, err
		}
	}
	if req.InsuranceRate != nil {
		if rule.InsuranceRate, err = ParseDecimal("insurance_rate", *req.InsuranceRate); err != nil {
			return entities.PricingRule{}, err
		}
	}
	return rule, nil
}

func discountFromDTO(d dto.Discount) (entities.Discount, error) {
	value, err := ParseDecimal("discounts.value", d.Value)
	if err != nil {
		return entities.Discount{}, err
	}
	maxAmount, err := parseOptionalDecimal("discounts.max_discount_amount", d.MaxDiscountAmount)
	if err != nil {
		return entities.Discount{}, err
	}

	discount := entities.Discount{
		Code:              strings.TrimSpace(d.Code),
		Type:              entities.DiscountType(d.Type),
		Value:             value,
		FreeServiceCode:   pointer.Get(d.FreeServiceCode),
		MaxDiscountAmount: maxAmount,
		StartDate:         d.StartDate,
		EndDate:           d.EndDate,
		UsageLimit:        pointer.Get(d.UsageLimit),
		Active:            d.Active == nil || *d.Active,
	}
	if d.MinOrderValue != nil {
		if discount.MinOrderValue, err = ParseDecimal("discounts.min_order_value", *d.MinOrderValue); err != nil {
			return entities.Discount{}, err
		}
	}
	return discount, nil
}

func PricingRuleToDTO(rule entities.PricingRule) dto.PricingRule {
	services := make([]dto.SpecialService, len(rule.SpecialServices))
	for i, s := range rule.SpecialServices {
		services[i] = dto.SpecialService{
			Code:  s.Code,
			Name:  s.Name,
			Type:  s.Type.String(),
			Value: s.Value.String(),
		}
	}

	discounts := make([]dto.Discount, len(rule.Discounts))
	for i, d := range rule.Discounts {
		discounts[i] = dto.Discount{
			ID:            pointer.ToInt64(d.ID),
			Code:          d.Code,
			Type:          d.Type.String(),
			Value:         d.Value.String(),
			MinOrderValue: pointer.ToString(money(d.MinOrderValue)),
			StartDate:     d.StartDate,
			EndDate:       d.EndDate,
			UsageLimit:    pointer.ToInt64(d.UsageLimit),
			UsageCount:    pointer.ToInt64(d.UsageCount),
			Active:        pointer.ToBool(d.Active),
		}
		if d.FreeServiceCode != "" {
			discounts[i].FreeServiceCode = pointer.ToString(d.FreeServiceCode)
		}
		if d.MaxDiscountAmount != nil {
			discounts[i].MaxDiscountAmount = pointer.ToString(money(*d.MaxDiscountAmount))
		}
	}

	return dto.PricingRule{
		ID:                rule.ID,
		Code:              rule.Code,
		OriginArea:        rule.OriginArea,
		DestinationArea:   rule.DestinationArea,
		ServiceType:       rule.ServiceType.String(),
		VolumetricDivisor: rule.VolumetricDivisor,
		WeightTiers:       tiersToDTO(rule.WeightTiers),
		DistanceTiers:     tiersToDTO(rule.DistanceTiers),
		SpecialServices:   services,
		Discounts:         discounts,
		TaxRate:           rule.TaxRate.String(),
		InsuranceRate:     rule.InsuranceRate.String(),
		Active:            rule.Active,
		CreatedAt:         rule.CreatedAt,
		UpdatedAt:         rule.UpdatedAt,
	}
}

func OrgUnitCreateFromDTO(kind entities.OrgUnitKind, req dto.OrgUnitCreate) entities.OrgUnitModify {
	unit := entities.OrgUnitModify{
		Kind:        kind,
		Code:        &req.Code,
		Name:        &req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
		DivisionID:  req.DivisionID,
	}
	if req.Status != nil {
		status := entities.OrgUnitStatus(*req.Status)
		unit.Status = &status
	}
	return unit
}

func OrgUnitUpdateFromDTO(kind entities.OrgUnitKind, id int64, req dto.OrgUnitUpdate) entities.OrgUnitModify {
	unit := entities.OrgUnitModify{
		ID:          &id,
		Kind:        kind,
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
		ClearParent: pointer.GetBool(req.ClearParent),
		DivisionID:  req.DivisionID,
	}
	if req.Status != nil {
		status := entities.OrgUnitStatus(*req.Status)
		unit.Status = &status
	}
	return unit
}

func OrgUnitToDTO(unit entities.OrgUnit) dto.OrgUnit {
	return dto.OrgUnit{
		ID:          unit.ID,
		Kind:        unit.Kind.String(),
		Code:        unit.Code,
		Name:        unit.Name,
		Description: unit.Description,
		ParentID:    unit.ParentID,
		DivisionID:  unit.DivisionID,
		Level:       unit.Level,
		Status:      unit.Status.String(),
		CreatedAt:   unit.CreatedAt,
		UpdatedAt:   unit.UpdatedAt,
	}
}

func OrgUnitsToDTO(units []entities.OrgUnit) []dto.OrgUnit {
	result := make([]dto.OrgUnit, len(units))
	for i, unit := range units {
		result[i] = OrgUnitToDTO(unit)
	}
	return result
}

func OrgUnitTreeToDTO(trees []entities.OrgUnitTree) []dto.OrgUnitTree {
	result := make([]dto.OrgUnitTree, len(trees))
	for i, tree := range trees {
		result[i] = dto.OrgUnitTree{
			Unit:     OrgUnitToDTO(tree.Unit),
			Children: OrgUnitTreeToDTO(tree.Children),
		}
	}
	return result
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
