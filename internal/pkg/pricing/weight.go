package pricing

import (
	"fmt"
	"math"

	"samudra/internal/entities"
)

// CalculateWeight считает фактический, объемный и оплачиваемый вес.
// Вызывается и при расчете стоимости, и при создании заказа.
func CalculateWeight(items []entities.Item, divisor float64) (entities.WeightSummary, error) {
	if divisor <= 0 {
		divisor = entities.DefaultVolumetricDivisor
	}

	var summary entities.WeightSummary
	for i, item := range items {
		if item.Weight < 0 || item.Quantity < 0 {
			return entities.WeightSummary{}, fmt.Errorf("item %d: %w", i, ErrInvalidItem)
		}

		volumetric, err := VolumetricWeight(item.Dimensions, item.Quantity, divisor)
		if err != nil {
			return entities.WeightSummary{}, fmt.Errorf("item %d: %w", i, err)
		}

		summary.Actual += item.Weight * float64(item.Quantity)
		summary.Volumetric += volumetric
	}

	summary.Chargeable = math.Max(summary.Actual, summary.Volumetric)
	return summary, nil
}

func ChargeableWeight(items []entities.Item, divisor float64) (float64, error) {
	summary, err := CalculateWeight(items, divisor)
	if err != nil {
		return 0, err
	}
	return summary.Chargeable, nil
}

// VolumetricWeight: L*W*H (см) / divisor * quantity.
// Без габаритов (любое измерение равно нулю) объемный вес нулевой.
func VolumetricWeight(dimensions *entities.Dimensions, quantity int, divisor float64) (float64, error) {
	if dimensions == nil {
		return 0, nil
	}
	if dimensions.Length < 0 || dimensions.Width < 0 || dimensions.Height < 0 {
		return 0, ErrInvalidDimensions
	}
	if dimensions.Length == 0 || dimensions.Width == 0 || dimensions.Height == 0 {
		return 0, nil
	}

	factor, err := centimetersPerUnit(dimensions.Unit)
	if err != nil {
		return 0, err
	}

	volume := (dimensions.Length * factor) * (dimensions.Width * factor) * (dimensions.Height * factor)
	return volume / divisor * float64(quantity), nil
}

func centimetersPerUnit(unit entities.DimensionUnit) (float64, error) {
	switch unit {
	case "", entities.UnitCentimeter:
		return 1, nil
	case entities.UnitMeter:
		return 100, nil
	case entities.UnitMillimeter:
		return 0.1, nil
	case entities.UnitInch:
		return 2.54, nil
	default:
		return 0, fmt.Errorf("unit %q: %w", unit, ErrInvalidDimensions)
	}
}
