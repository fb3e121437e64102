package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type ShipmentOrder struct {
	ID                  int64
	Waybill             string
	SenderName          string
	ReceiverName        string
	OriginArea          string
	DestinationArea     string
	ServiceType         ServiceType
	DistanceKm          *float64
	Items               []Item
	TotalWeight         float64
	Amount              Amount
	PricingRuleID       *int64
	DiscountCode        string
	Status              ShipmentStatus
	StatusHistory       []StatusHistoryEntry
	EstimatedDeliveryAt time.Time
	Version             int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type Item struct {
	Description string
	Weight      float64 // kg
	Quantity    int
	Dimensions  *Dimensions
	Value       decimal.Decimal
}

type DimensionUnit string

const (
	UnitCentimeter DimensionUnit = "cm"
	UnitMeter      DimensionUnit = "m"
	UnitMillimeter DimensionUnit = "mm"
	UnitInch       DimensionUnit = "in"
)

const DefaultDimensionUnit = UnitCentimeter

func (u DimensionUnit) String() string {
	return string(u)
}

type Dimensions struct {
	Length float64
	Width  float64
	Height float64
	Unit   DimensionUnit
}

type Amount struct {
	BaseRate           decimal.Decimal
	AdditionalServices decimal.Decimal
	Discount           decimal.Decimal
	Insurance          decimal.Decimal
	Tax                decimal.Decimal
	Total              decimal.Decimal
}

type ServiceType string

const (
	ServiceRegular ServiceType = "regular"
	ServiceExpress ServiceType = "express"
	ServiceSameDay ServiceType = "same_day"
	ServiceCargo   ServiceType = "cargo"
)

func (t ServiceType) String() string {
	return string(t)
}

type ShipmentStatus string

const (
	StatusCreated              ShipmentStatus = "created"
	StatusProcessed            ShipmentStatus = "processed"
	StatusInTransit            ShipmentStatus = "in_transit"
	StatusArrivedAtDestination ShipmentStatus = "arrived_at_destination"
	StatusOutForDelivery       ShipmentStatus = "out_for_delivery"
	StatusDelivered            ShipmentStatus = "delivered"
	StatusFailedDelivery       ShipmentStatus = "failed_delivery"
	StatusReturned             ShipmentStatus = "returned"
	StatusCancelled            ShipmentStatus = "cancelled"
)

func (s ShipmentStatus) String() string {
	return string(s)
}

var statusTransitions = map[ShipmentStatus][]ShipmentStatus{
	StatusCreated:              {StatusProcessed, StatusCancelled},
	StatusProcessed:            {StatusInTransit, StatusCancelled},
	StatusInTransit:            {StatusArrivedAtDestination},
	StatusArrivedAtDestination: {StatusOutForDelivery},
	StatusOutForDelivery:       {StatusDelivered, StatusFailedDelivery},
	StatusFailedDelivery:       {StatusOutForDelivery, StatusReturned},
	StatusDelivered:            {},
	StatusReturned:             {},
	StatusCancelled:            {},
}

func (s ShipmentStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

func (s ShipmentStatus) IsTerminal() bool {
	next, ok := statusTransitions[s]
	return ok && len(next) == 0
}

func (s ShipmentStatus) CanTransitionTo(next ShipmentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (t ServiceType) IsValid() bool {
	switch t {
	case ServiceRegular, ServiceExpress, ServiceSameDay, ServiceCargo:
		return true
	default:
		return false
	}
}

type StatusHistoryEntry struct {
	Status    ShipmentStatus
	Timestamp time.Time
	Location  string
	Notes     string
	User      string
}

type ShipmentCreate struct {
	SenderName      *string
	ReceiverName    *string
	OriginArea      *string
	DestinationArea *string
	ServiceType     *ServiceType
	DistanceKm      *float64
	Items           []Item
	SpecialServices []string
	DiscountCode    *string
	User            *string
}

type StatusChange struct {
	Waybill  string
	Status   ShipmentStatus
	Location string
	Notes    string
	User     string
	At       time.Time
}

// StatusTransition - запись смены статуса с проверкой версии заказа.
type StatusTransition struct {
	ShipmentID      int64
	ExpectedVersion int64
	Entry           StatusHistoryEntry
}

// TrackingEvent - событие трекинга от партнера-экспедитора.
type TrackingEvent struct {
	Waybill    string
	Code       string
	Location   string
	Notes      string
	OccurredAt time.Time
}

type ShipmentStatusEvent struct {
	Waybill        string
	PreviousStatus ShipmentStatus
	Status         ShipmentStatus
	Location       string
	OccurredAt     time.Time
}
