//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=org_unit_ancestors_get_test
package org_unit_ancestors_get

import (
	"context"

	"samudra/internal/entities"
	"samudra/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Ancestors(ctx context.Context, kind entities.OrgUnitKind, id int64) ([]entities.OrgUnit, error)
}
