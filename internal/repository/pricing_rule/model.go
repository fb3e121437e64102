package pricing_rule

import (
	"time"

	"github.com/shopspring/decimal"
)

type PricingRuleDB struct {
	ID                int64
	Code              string
	OriginArea        string
	DestinationArea   string
	ServiceType       string
	VolumetricDivisor float64
	WeightTiers       []byte // jsonb, []TierDB
	DistanceTiers     []byte // jsonb, []TierDB
	SpecialServices   []byte // jsonb, []SpecialServiceDB
	TaxRate           decimal.Decimal
	InsuranceRate     decimal.Decimal
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type TierDB struct {
	MinBound     float64          `json:"min_bound"`
	MaxBound     *float64         `json:"max_bound,omitempty"`
	PerUnitPrice decimal.Decimal  `json:"per_unit_price"`
	FlatPrice    *decimal.Decimal `json:"flat_price,omitempty"`
}

type SpecialServiceDB struct {
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
}

type DiscountDB struct {
	ID                int64
	PricingRuleID     int64
	Code              string
	Type              string
	Value             decimal.Decimal
	FreeServiceCode   string
	MinOrderValue     decimal.Decimal
	MaxDiscountAmount decimal.NullDecimal
	StartDate         time.Time
	EndDate           time.Time
	UsageLimit        int64
	UsageCount        int64
	Active            bool
}
