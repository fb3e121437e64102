//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=tracking_status_test
package tracking_status

import (
	"context"

	"samudra/internal/entities"
)

type ShipmentService interface {
	TransitionStatus(ctx context.Context, change entities.StatusChange) (*entities.ShipmentOrder, error)
}
