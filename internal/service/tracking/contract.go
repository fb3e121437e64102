//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=tracking_test
package tracking

import (
	"context"

	"samudra/internal/entities"
)

type (
	ExecuteFn      func(ctx context.Context, event entities.TrackingEvent) (*entities.ShipmentOrder, error)
	HandlerFactory interface {
		GetHandler(code string) (ExecuteFn, error)
	}
)
