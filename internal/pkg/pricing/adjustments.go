package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"samudra/internal/entities"
)

const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

type Adjustments struct {
	Services      []entities.SpecialService
	Discount      *entities.Discount
	TaxRate       decimal.Decimal // percent
	InsuranceRate decimal.Decimal // percent
	At            time.Time       // момент проверки окна действия скидки
}

// ApplyAdjustments применяет надбавки, скидку, налог и страховку к базовой цене.
//
// Порядок: надбавки (процентные считаются от basePrice) -> скидка от subtotal ->
// налог и страховка от суммы после скидки.
func ApplyAdjustments(basePrice decimal.Decimal, adj Adjustments) (entities.PriceBreakdown, error) {
	if basePrice.IsNegative() {
		return entities.PriceBreakdown{}, ErrNegativeValue
	}
	if err := validateRate(adj.TaxRate); err != nil {
		return entities.PriceBreakdown{}, fmt.Errorf("tax: %w", err)
	}
	if err := validateRate(adj.InsuranceRate); err != nil {
		return entities.PriceBreakdown{}, fmt.Errorf("insurance: %w", err)
	}

	breakdown := entities.PriceBreakdown{
		BasePrice:      basePrice,
		Surcharges:     make([]entities.SurchargeLine, 0, len(adj.Services)),
		SurchargeTotal: decimal.Zero,
	}

	for _, service := range adj.Services {
		line, err := surchargeLine(basePrice, service)
		if err != nil {
			return entities.PriceBreakdown{}, err
		}
		breakdown.Surcharges = append(breakdown.Surcharges, line)
		breakdown.SurchargeTotal = breakdown.SurchargeTotal.Add(line.Amount)
	}
	breakdown.Subtotal = basePrice.Add(breakdown.SurchargeTotal)

	discountAmount := decimal.Zero
	if adj.Discount != nil {
		if err := CheckDiscount(*adj.Discount, basePrice, adj.At); err != nil {
			return entities.PriceBreakdown{}, err
		}

		amount, err := discountValue(*adj.Discount, &breakdown)
		if err != nil {
			return entities.PriceBreakdown{}, err
		}
		discountAmount = amount
		breakdown.Discount = &entities.DiscountLine{
			Code:   adj.Discount.Code,
			Type:   adj.Discount.Type,
			Amount: amount,
		}
	}

	breakdown.DiscountedSubtotal = breakdown.Subtotal.Sub(discountAmount)
	breakdown.Tax = percentOf(breakdown.DiscountedSubtotal, adj.TaxRate)
	breakdown.Insurance = percentOf(breakdown.DiscountedSubtotal, adj.InsuranceRate)
	breakdown.Total = breakdown.DiscountedSubtotal.Add(breakdown.Tax).Add(breakdown.Insurance)

	return breakdown, nil
}

// CheckDiscount проверяет активность, окно действия, лимит использований
// и минимальную сумму заказа.
func CheckDiscount(discount entities.Discount, basePrice decimal.Decimal, at time.Time) error {
	if !discount.Active {
		return fmt.Errorf("discount %s: %w", discount.Code, ErrDiscountInactive)
	}
	if at.Before(discount.StartDate) || at.After(discount.EndDate) {
		return fmt.Errorf("discount %s: %w", discount.Code, ErrDiscountExpired)
	}
	if discount.UsageLimit > 0 && discount.UsageCount >= discount.UsageLimit {
		return fmt.Errorf("discount %s: %w", discount.Code, ErrDiscountUsageLimit)
	}
	if basePrice.LessThan(discount.MinOrderValue) {
		return fmt.Errorf("discount %s: %w", discount.Code, ErrMinOrderValueNotMet)
	}
	return nil
}

func ValidateSpecialService(service entities.SpecialService) error {
	if service.Code == "" || service.Value.IsNegative() {
		return fmt.Errorf("service %q: %w", service.Code, ErrInvalidService)
	}
	switch service.Type {
	case entities.SpecialServiceFlat:
		return nil
	case entities.SpecialServicePercentage:
		if service.Value.GreaterThan(hundred) {
			return fmt.Errorf("service %q: %w", service.Code, ErrInvalidService)
		}
		return nil
	default:
		return fmt.Errorf("service %q type %q: %w", service.Code, service.Type, ErrInvalidService)
	}
}

func ValidateDiscount(discount entities.Discount) error {
	if discount.Code == "" || discount.Value.IsNegative() || discount.MinOrderValue.IsNegative() {
		return fmt.Errorf("discount %q: %w", discount.Code, ErrInvalidDiscount)
	}
	if discount.MaxDiscountAmount != nil && discount.MaxDiscountAmount.IsNegative() {
		return fmt.Errorf("discount %q: %w", discount.Code, ErrInvalidDiscount)
	}
	if discount.EndDate.Before(discount.StartDate) || discount.UsageLimit < 0 {
		return fmt.Errorf("discount %q: %w", discount.Code, ErrInvalidDiscount)
	}

	switch discount.Type {
	case entities.DiscountPercentage:
		if discount.Value.GreaterThan(hundred) {
			return fmt.Errorf("discount %q: %w", discount.Code, ErrInvalidDiscount)
		}
	case entities.DiscountFixed:
	case entities.DiscountFreeService:
		if discount.FreeServiceCode == "" {
			return fmt.Errorf("discount %q: free service code is required: %w", discount.Code, ErrInvalidDiscount)
		}
	default:
		return fmt.Errorf("discount %q type %q: %w", discount.Code, discount.Type, ErrInvalidDiscount)
	}
	return nil
}

func surchargeLine(basePrice decimal.Decimal, service entities.SpecialService) (entities.SurchargeLine, error) {
	if err := ValidateSpecialService(service); err != nil {
		return entities.SurchargeLine{}, err
	}

	amount := service.Value
	if service.Type == entities.SpecialServicePercentage {
		amount = percentOf(basePrice, service.Value)
	}

	return entities.SurchargeLine{
		Code:   service.Code,
		Name:   service.Name,
		Type:   service.Type,
		Amount: amount,
	}, nil
}

func discountValue(discount entities.Discount, breakdown *entities.PriceBreakdown) (decimal.Decimal, error) {
	if err := ValidateDiscount(discount); err != nil {
		return decimal.Zero, err
	}

	switch discount.Type {
	case entities.DiscountPercentage:
		amount := percentOf(breakdown.Subtotal, discount.Value)
		if discount.MaxDiscountAmount != nil && amount.GreaterThan(*discount.MaxDiscountAmount) {
			amount = *discount.MaxDiscountAmount
		}
		return amount, nil

	case entities.DiscountFixed:
		return decimal.Min(discount.Value, breakdown.Subtotal), nil

	case entities.DiscountFreeService:
		// скидка равна отмененной строке надбавки, subtotal не трогаем
		for i := range breakdown.Surcharges {
			if breakdown.Surcharges[i].Code == discount.FreeServiceCode {
				breakdown.Surcharges[i].Waived = true
				return breakdown.Surcharges[i].Amount, nil
			}
		}
		return decimal.Zero, fmt.Errorf("discount %s: %w", discount.Code, ErrFreeServiceNotSelected)
	}

	return decimal.Zero, ErrInvalidDiscount
}

func validateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return ErrInvalidRate
	}
	return nil
}

func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(hundred).Round(moneyPlaces)
}
