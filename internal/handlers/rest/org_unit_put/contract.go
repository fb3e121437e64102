//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=org_unit_put_test
package org_unit_put

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
	UpdateUnit(ctx context.Context, unitModify entities.OrgUnitModify) (*entities.OrgUnit, error)
}
