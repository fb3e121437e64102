package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultVolumetricDivisor = 5000.0

type PricingRule struct {
	ID                int64
	Code              string
	OriginArea        string
	DestinationArea   string
	ServiceType       ServiceType
	VolumetricDivisor float64
	WeightTiers       []Tier
	DistanceTiers     []Tier
	SpecialServices   []SpecialService
	Discounts         []Discount
	TaxRate           decimal.Decimal // percent
	InsuranceRate     decimal.Decimal // percent
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (r *PricingRule) Route() Route {
	return Route{
		OriginArea:      r.OriginArea,
		DestinationArea: r.DestinationArea,
		ServiceType:     r.ServiceType,
	}
}

func (r *PricingRule) FindSpecialService(code string) (SpecialService, bool) {
	for _, s := range r.SpecialServices {
		if s.Code == code {
			return s, true
		}
	}
	return SpecialService{}, false
}

func (r *PricingRule) FindDiscount(code string) (Discount, bool) {
	for _, d := range r.Discounts {
		if d.Code == code {
			return d, true
		}
	}
	return Discount{}, false
}

// Route identifies the active pricing rule: one per origin, destination and service type.
type Route struct {
	OriginArea      string
	DestinationArea string
	ServiceType     ServiceType
}

func (r Route) String() string {
	return r.OriginArea + ":" + r.DestinationArea + ":" + r.ServiceType.String()
}

type PricingRuleFilter struct {
	OriginArea      *string
	DestinationArea *string
	ServiceType     *ServiceType
	ActiveOnly      bool
}

// Tier is a bounded weight or distance range. A nil MaxBound means open-ended.
type Tier struct {
	MinBound     float64
	MaxBound     *float64
	PerUnitPrice decimal.Decimal
	FlatPrice    *decimal.Decimal
}

type SpecialServiceType string

const (
	SpecialServiceFlat       SpecialServiceType = "flat"
	SpecialServicePercentage SpecialServiceType = "percentage"
)

func (t SpecialServiceType) String() string {
	return string(t)
}

type SpecialService struct {
	Code  string
	Name  string
	Type  SpecialServiceType
	Value decimal.Decimal
}

type DiscountType string

const (
	DiscountPercentage  DiscountType = "percentage"
	DiscountFixed       DiscountType = "fixed"
	DiscountFreeService DiscountType = "free_service"
)

func (t DiscountType) String() string {
	return string(t)
}

type Discount struct {
	ID                int64
	PricingRuleID     int64
	Code              string
	Type              DiscountType
	Value             decimal.Decimal
	FreeServiceCode   string
	MinOrderValue     decimal.Decimal
	MaxDiscountAmount *decimal.Decimal
	StartDate         time.Time
	EndDate           time.Time
	UsageLimit        int64 // 0 - без ограничений
	UsageCount        int64
	Active            bool
}

type SurchargeLine struct {
	Code   string
	Name   string
	Type   SpecialServiceType
	Amount decimal.Decimal
	Waived bool
}

type DiscountLine struct {
	Code   string
	Type   DiscountType
	Amount decimal.Decimal
}

// PriceBreakdown exposes every intermediate figure of a price calculation.
type PriceBreakdown struct {
	BasePrice          decimal.Decimal
	Surcharges         []SurchargeLine
	SurchargeTotal     decimal.Decimal
	Subtotal           decimal.Decimal
	Discount           *DiscountLine
	DiscountedSubtotal decimal.Decimal
	Tax                decimal.Decimal
	Insurance          decimal.Decimal
	Total              decimal.Decimal
}

// Amount переносит разбивку цены в сумму заказа.
func (b PriceBreakdown) Amount() Amount {
	discount := decimal.Zero
	if b.Discount != nil {
		discount = b.Discount.Amount
	}
	return Amount{
		BaseRate:           b.BasePrice,
		AdditionalServices: b.SurchargeTotal,
		Discount:           discount,
		Insurance:          b.Insurance,
		Tax:                b.Tax,
		Total:              b.Total,
	}
}

type RateSource string

const (
	RateSourcePricingRule RateSource = "pricing_rule"
	RateSourceForwarder   RateSource = "forwarder"
)

func (s RateSource) String() string {
	return string(s)
}

type ForwarderRateRequest struct {
	ForwarderCode   string
	OriginArea      string
	DestinationArea string
	ServiceType     ServiceType
	Weight          float64
	DistanceKm      *float64
}

type ForwarderRate struct {
	ForwarderCode string
	BaseRate      decimal.Decimal
	EstimatedDays int
}

type QuoteRequest struct {
	OriginArea      string
	DestinationArea string
	ServiceType     ServiceType
	DistanceKm      *float64
	Items           []Item
	SpecialServices []string
	DiscountCode    string
}

type Quote struct {
	PricingRuleID   int64
	RateSource      RateSource
	ForwarderCode   string
	Weight          WeightSummary
	WeightTier      *Tier
	DistanceTier    *Tier
	Breakdown       PriceBreakdown
	AppliedDiscount *Discount
}

type WeightSummary struct {
	Actual     float64
	Volumetric float64
	Chargeable float64
}
