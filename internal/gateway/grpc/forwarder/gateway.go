package forwarder

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"samudra/internal/entities"
	"samudra/internal/pkg/config"
	"samudra/internal/service/pricing"
	retrierconfig "samudra/pkg/retrier"
	"samudra/pkg/retrier/backoff_adapter"
)

const (
	serviceName   = "forwarder-service"
	getRateMethod = "/forwarder.v1.RateService/GetRate"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 1 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

type Gateway struct {
	client         client
	retrier        retrier
	requestTimeout time.Duration
}

// New с nil client - экспедитор не настроен, GetRate всегда возвращает
// pricing.ErrForwarderUnavailable.
func New(client client, cfg config.ForwarderService) *Gateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryableCode,
	}

	return &Gateway{
		client:         client,
		retrier:        backoff_adapter.New(retryConfig),
		requestTimeout: cfg.RequestTimeout,
	}
}

func (g *Gateway) GetRate(ctx context.Context, req entities.ForwarderRateRequest) (*entities.ForwarderRate, error) {
	if g.client == nil {
		return nil, pricing.ErrForwarderUnavailable
	}

	in, err := toProto(req)
	if err != nil {
		return nil, fmt.Errorf("gateway forwarder, build request: %w", err)
	}

	resp := &structpb.Struct{}
	err = g.executeWithMetrics(ctx, "GetRate", func(ctx context.Context) error {
		if g.requestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, g.requestTimeout)
			defer cancel()
		}
		return g.client.Invoke(ctx, getRateMethod, in, resp)
	})
	if err != nil {
		switch status.Code(err) {
		case codes.NotFound, codes.Unimplemented:
			// у партнера нет тарифа на направление
			return nil, fmt.Errorf("%w: %s", pricing.ErrForwarderUnavailable, status.Convert(err).Message())
		}
		return nil, fmt.Errorf("gateway forwarder, get rate: %w", err)
	}

	rate, err := toDomain(resp, req.ForwarderCode)
	if err != nil {
		return nil, fmt.Errorf("gateway forwarder, get rate: %w", err)
	}
	return rate, nil
}

func isRetryableCode(err error) bool {
	if err == nil {
		return false
	}
	st, ok := status.FromError(err)
	if !ok {
		return false
	}

	switch st.Code() {
	case codes.ResourceExhausted,
		codes.Unavailable,
		codes.DeadlineExceeded:
		return true
	default:
		return false
	}
}

func (g *Gateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	grpcCode := getGRPCCode(err)
	GatewayRequestDuration.WithLabelValues(serviceName, method, grpcCode).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(serviceName, method, grpcCode).Inc()
	}

	return err
}

func getGRPCCode(err error) string {
	if err == nil {
		return "OK"
	}
	if st, ok := status.FromError(err); ok {
		return st.Code().String()
	}
	return "UNKNOWN"
}
