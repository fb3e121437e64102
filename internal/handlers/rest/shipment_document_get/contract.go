//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=shipment_document_get_test
package shipment_document_get

import (
	"context"

	"samudra/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	RenderWaybill(ctx context.Context, waybill string) ([]byte, error)
}
