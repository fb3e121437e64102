package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"samudra/internal/entities"
)

// ValidateTiers проверяет, что тарифы отсортированы по MinBound и не пересекаются.
// Соседние тарифы могут делить границу: значение на границе достается первому.
// Открытым (без MaxBound) может быть только последний тариф.
func ValidateTiers(tiers []entities.Tier) error {
	for i, tier := range tiers {
		if tier.MinBound < 0 {
			return fmt.Errorf("tier %d: %w", i, ErrInvalidTierBounds)
		}
		if tier.MaxBound != nil && *tier.MaxBound < tier.MinBound {
			return fmt.Errorf("tier %d: %w", i, ErrInvalidTierBounds)
		}
		if tier.PerUnitPrice.IsNegative() || (tier.FlatPrice != nil && tier.FlatPrice.IsNegative()) {
			return fmt.Errorf("tier %d: %w", i, ErrInvalidTierPrice)
		}

		if i == 0 {
			continue
		}
		prev := tiers[i-1]
		if tier.MinBound < prev.MinBound {
			return fmt.Errorf("tier %d: %w", i, ErrTiersNotSorted)
		}
		if prev.MaxBound == nil || tier.MinBound < *prev.MaxBound {
			return fmt.Errorf("tier %d: %w", i, ErrTiersOverlap)
		}
	}
	return nil
}

func MatchTier(tiers []entities.Tier, value float64) (entities.Tier, error) {
	if value < 0 {
		return entities.Tier{}, ErrNegativeValue
	}
	if err := ValidateTiers(tiers); err != nil {
		return entities.Tier{}, err
	}

	for _, tier := range tiers {
		if tier.MinBound <= value && (tier.MaxBound == nil || value <= *tier.MaxBound) {
			return tier, nil
		}
	}
	return entities.Tier{}, fmt.Errorf("%v: %w", value, ErrTierNotFound)
}

// TierPrice - FlatPrice, если задан, иначе PerUnitPrice * value.
func TierPrice(tier entities.Tier, value float64) decimal.Decimal {
	if tier.FlatPrice != nil {
		return *tier.FlatPrice
	}
	return tier.PerUnitPrice.Mul(decimal.NewFromFloat(value)).Round(moneyPlaces)
}

// QuoteTier находит тариф и считает по нему цену.
func QuoteTier(tiers []entities.Tier, value float64) (entities.Tier, decimal.Decimal, error) {
	tier, err := MatchTier(tiers, value)
	if err != nil {
		return entities.Tier{}, decimal.Zero, err
	}
	return tier, TierPrice(tier, value), nil
}
