//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=organization_test
package organization

import (
	"context"

	"samudra/internal/entities"
	"samudra/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, unitModifyEntity entities.OrgUnitModify) (int64, error)
	Update(ctx context.Context, unitModifyEntity entities.OrgUnitModify) (*entities.OrgUnit, error)
	GetByID(ctx context.Context, kind entities.OrgUnitKind, id int64) (*entities.OrgUnit, error)
	GetAll(ctx context.Context, kind entities.OrgUnitKind) ([]entities.OrgUnit, error)
	UpdateLevels(ctx context.Context, kind entities.OrgUnitKind, levels map[int64]int) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type serviceLogger interface {
	Warn(msg string, fields ...logger.Field)
}
