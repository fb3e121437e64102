package tracking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"samudra/internal/entities"
	"samudra/internal/service/shipment"
	retrierconfig "samudra/pkg/retrier"
	"samudra/pkg/retrier/backoff_adapter"
)

// конкурентные события по одной накладной упираются в версию заказа
const (
	initialInterval = 50 * time.Millisecond
	maxInterval     = 500 * time.Millisecond
	maxElapsedTime  = 3 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

const unknownCodeLabel = "unknown"

type retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type Service struct {
	statusFactory HandlerFactory
	retrier       retrier
}

func New(statusFactory HandlerFactory) *Service {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isVersionConflict,
	}

	return &Service{
		statusFactory: statusFactory,
		retrier:       backoff_adapter.New(retryConfig),
	}
}

func (s *Service) ProcessTrackingEvent(ctx context.Context, event entities.TrackingEvent) (*entities.ShipmentOrder, error) {
	event.Waybill = strings.TrimSpace(event.Waybill)
	event.Code = strings.ToUpper(strings.TrimSpace(event.Code))
	if event.Waybill == "" || event.Code == "" {
		return nil, fmt.Errorf("%w: waybill and code are required", ErrInvalidEvent)
	}

	executeFn, err := s.statusFactory.GetHandler(event.Code)
	if err != nil {
		// код приходит от партнера, в метку не пишем
		trackingEventsTotal.WithLabelValues(unknownCodeLabel, "undefined").Inc()
		return nil, err
	}

	var order *entities.ShipmentOrder
	err = s.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		var err error
		order, err = executeFn(ctx, event)
		return err
	})
	if err != nil {
		trackingEventsTotal.WithLabelValues(event.Code, "failed").Inc()
		return nil, err
	}

	trackingEventsTotal.WithLabelValues(event.Code, "applied").Inc()
	return order, nil
}

func isVersionConflict(err error) bool {
	return errors.Is(err, shipment.ErrVersionConflict)
}
