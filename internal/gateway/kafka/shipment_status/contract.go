//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=shipment_status_test
package shipment_status

import "context"

type Producer interface {
	Send(ctx context.Context, topic, key string, value []byte) error
}
