//go:generate mockgen -source=discount_expiry.go -destination=./contract_mocks_test.go -package=discount_expiry_test
package discount_expiry

import (
	"context"
	"time"

	"samudra/pkg/logger"
)

type Service interface {
	DeactivateExpiredDiscounts(ctx context.Context) (int64, error)
}

// DiscountExpiry выключает скидки с истекшим окном действия.
type DiscountExpiry struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewDiscountExpiry(log logger.Logger, service Service, interval time.Duration) *DiscountExpiry {
	return &DiscountExpiry{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (d *DiscountExpiry) TTL() time.Duration {
	return d.interval
}

func (d *DiscountExpiry) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, d.interval)
	defer cancel()

	deactivated, err := d.service.DeactivateExpiredDiscounts(ctxWithTimeout)

	if deactivated > 0 {
		d.log.With(
			logger.NewField("deactivated_discounts", deactivated),
		).Info("discount expiry")
	}

	return err
}

func (d *DiscountExpiry) Info() string {
	return "discount expiry"
}
