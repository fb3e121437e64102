package shipment

import (
	"time"

	"github.com/shopspring/decimal"
)

type ShipmentDB struct {
	ID                  int64
	Waybill             string
	SenderName          string
	ReceiverName        string
	OriginArea          string
	DestinationArea     string
	ServiceType         string
	DistanceKm          *float64
	Items               []byte // jsonb, []ItemDB
	TotalWeight         float64
	BaseRate            decimal.Decimal
	AdditionalServices  decimal.Decimal
	Discount            decimal.Decimal
	Insurance           decimal.Decimal
	Tax                 decimal.Decimal
	Total               decimal.Decimal
	PricingRuleID       *int64
	DiscountCode        string
	Status              string
	EstimatedDeliveryAt time.Time
	Version             int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type ItemDB struct {
	Description string          `json:"description"`
	Weight      float64         `json:"weight"`
	Quantity    int             `json:"quantity"`
	Dimensions  *DimensionsDB   `json:"dimensions,omitempty"`
	Value       decimal.Decimal `json:"value"`
}

type DimensionsDB struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

type StatusHistoryDB struct {
	ID         int64
	ShipmentID int64
	Status     string
	Location   string
	Notes      string
	UserName   string
	OccurredAt time.Time
}
