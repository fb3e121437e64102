//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=shipment_test
package shipment

import (
	"context"
	"time"

	"samudra/internal/entities"
	"samudra/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, order entities.ShipmentOrder) (*entities.ShipmentOrder, error)
	GetByWaybill(ctx context.Context, waybill string) (*entities.ShipmentOrder, error)
	// UpdateStatus возвращает ErrVersionConflict, если заказ изменили параллельно.
	UpdateStatus(ctx context.Context, transition entities.StatusTransition) (int64, error)
}

type PricingService interface {
	CalculatePrice(ctx context.Context, req entities.QuoteRequest) (*entities.Quote, error)
	RedeemDiscount(ctx context.Context, discountID int64) (*entities.Discount, error)
}

type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, event entities.ShipmentStatusEvent) error
}

type DeliveryEstimator interface {
	EstimateDelivery(serviceType entities.ServiceType, from time.Time) time.Time
}

type WaybillGenerator interface {
	Generate(at time.Time) string
}

type DocumentRenderer interface {
	RenderWaybill(order entities.ShipmentOrder) ([]byte, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type serviceLogger interface {
	Warn(msg string, fields ...logger.Field)
}
