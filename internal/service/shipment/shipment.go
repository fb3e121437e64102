package shipment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"samudra/internal/entities"
	"samudra/pkg/logger"
)

const createdNotes = "Shipment order created"

type Service struct {
	repository Repository
	pricing    PricingService
	publisher  EventPublisher
	estimator  DeliveryEstimator
	waybills   WaybillGenerator
	documents  DocumentRenderer
	txManager  TxManager
	log        serviceLogger
}

func New(
	repository Repository,
	pricing PricingService,
	publisher EventPublisher,
	estimator DeliveryEstimator,
	waybills WaybillGenerator,
	documents DocumentRenderer,
	txManager TxManager,
	log serviceLogger,
) *Service {
	return &Service{
		repository: repository,
		pricing:    pricing,
		publisher:  publisher,
		estimator:  estimator,
		waybills:   waybills,
		documents:  documents,
		txManager:  txManager,
		log:        log,
	}
}

// CreateOrder считает стоимость тем же расчетом, что и CalculatePrice,
// списывает использование скидки и сохраняет заказ в одной транзакции.
func (s *Service) CreateOrder(ctx context.Context, create entities.ShipmentCreate) (*entities.ShipmentOrder, error) {
	if err := validateCreate(create); err != nil {
		return nil, err
	}

	req := entities.QuoteRequest{
		OriginArea:      strings.TrimSpace(*create.OriginArea),
		DestinationArea: strings.TrimSpace(*create.DestinationArea),
		ServiceType:     *create.ServiceType,
		DistanceKm:      create.DistanceKm,
		Items:           create.Items,
		SpecialServices: create.SpecialServices,
	}
	if create.DiscountCode != nil {
		req.DiscountCode = strings.TrimSpace(*create.DiscountCode)
	}

	quote, err := s.pricing.CalculatePrice(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("calculate price: %w", err)
	}

	now := time.Now().UTC()
	order := entities.ShipmentOrder{
		Waybill:         s.waybills.Generate(now),
		SenderName:      strings.TrimSpace(*create.SenderName),
		ReceiverName:    strings.TrimSpace(*create.ReceiverName),
		OriginArea:      req.OriginArea,
		DestinationArea: req.DestinationArea,
		ServiceType:     req.ServiceType,
		DistanceKm:      req.DistanceKm,
		Items:           req.Items,
		TotalWeight:     quote.Weight.Chargeable,
		Amount:          quote.Breakdown.Amount(),
		DiscountCode:    req.DiscountCode,
		Status:          entities.StatusCreated,
		StatusHistory: []entities.StatusHistoryEntry{
			{
				Status:    entities.StatusCreated,
				Timestamp: now,
				Location:  req.OriginArea,
				Notes:     createdNotes,
				User:      stringValue(create.User),
			},
		},
		EstimatedDeliveryAt: s.estimator.EstimateDelivery(req.ServiceType, now),
		Version:             1,
	}
	if quote.RateSource == entities.RateSourcePricingRule {
		ruleID := quote.PricingRuleID
		order.PricingRuleID = &ruleID
	}

	var created *entities.ShipmentOrder
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if quote.AppliedDiscount != nil {
			if _, err := s.pricing.RedeemDiscount(ctx, quote.AppliedDiscount.ID); err != nil {
				return fmt.Errorf("redeem discount %s: %w", quote.AppliedDiscount.Code, err)
			}
		}

		var err error
		created, err = s.repository.Create(ctx, order)
		if err != nil {
			return fmt.Errorf("create shipment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	shipmentsCreatedTotal.WithLabelValues(created.ServiceType.String()).Inc()
	return created, nil
}

func (s *Service) GetOrder(ctx context.Context, waybill string) (*entities.ShipmentOrder, error) {
	if strings.TrimSpace(waybill) == "" {
		return nil, ErrMissingRequiredFields
	}

	order, err := s.repository.GetByWaybill(ctx, waybill)
	if err != nil {
		return nil, fmt.Errorf("get shipment %s: %w", waybill, err)
	}
	return order, nil
}

// TransitionStatus проверяет переход по таблице жизненного цикла, меняет статус
// с проверкой версии и дописывает историю. Событие публикуется после коммита.
func (s *Service) TransitionStatus(ctx context.Context, change entities.StatusChange) (*entities.ShipmentOrder, error) {
	if err := validateStatusChange(change); err != nil {
		return nil, err
	}

	at := change.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	var (
		order    *entities.ShipmentOrder
		previous entities.ShipmentStatus
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.repository.GetByWaybill(ctx, change.Waybill)
		if err != nil {
			return fmt.Errorf("get shipment %s: %w", change.Waybill, err)
		}

		previous = order.Status
		if !previous.CanTransitionTo(change.Status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, previous, change.Status)
		}

		entry := entities.StatusHistoryEntry{
			Status:    change.Status,
			Timestamp: at,
			Location:  change.Location,
			Notes:     change.Notes,
			User:      change.User,
		}

		version, err := s.repository.UpdateStatus(ctx, entities.StatusTransition{
			ShipmentID:      order.ID,
			ExpectedVersion: order.Version,
			Entry:           entry,
		})
		if err != nil {
			return fmt.Errorf("update shipment %s status: %w", change.Waybill, err)
		}

		order.Status = change.Status
		order.StatusHistory = append(order.StatusHistory, entry)
		order.Version = version
		return nil
	})
	if err != nil {
		return nil, err
	}

	statusTransitionsTotal.WithLabelValues(order.Status.String()).Inc()

	event := entities.ShipmentStatusEvent{
		Waybill:        order.Waybill,
		PreviousStatus: previous,
		Status:         order.Status,
		Location:       change.Location,
		OccurredAt:     at,
	}
	if err := s.publisher.PublishStatusChanged(ctx, event); err != nil {
		s.log.Warn("failed to publish shipment status event",
			logger.NewField("waybill", order.Waybill),
			logger.NewField("status", order.Status.String()),
			logger.NewField("error", err),
		)
	}

	return order, nil
}

// CancelOrder - мягкая отмена: заказ остается в базе со статусом cancelled.
func (s *Service) CancelOrder(ctx context.Context, waybill, user, notes string) (*entities.ShipmentOrder, error) {
	return s.TransitionStatus(ctx, entities.StatusChange{
		Waybill: waybill,
		Status:  entities.StatusCancelled,
		Notes:   notes,
		User:    user,
	})
}

func (s *Service) RenderWaybill(ctx context.Context, waybill string) ([]byte, error) {
	order, err := s.GetOrder(ctx, waybill)
	if err != nil {
		return nil, err
	}

	document, err := s.documents.RenderWaybill(*order)
	if err != nil {
		return nil, fmt.Errorf("render waybill %s: %w", waybill, err)
	}
	return document, nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
