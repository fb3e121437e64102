package org_unit

import (
	"context"
	"errors"
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"samudra/internal/entities"
	"samudra/internal/repository"
	"samudra/internal/service/organization"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// у подразделений нет division_id, колонка добивается NULL для общего Scan
const (
	divisionColumns = "id, code, name, description, parent_id, NULL::BIGINT AS division_id, level, status, created_at, updated_at"
	positionColumns = "id, code, name, description, parent_id, division_id, level, status, created_at, updated_at"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, unitModifyEntity entities.OrgUnitModify) (int64, error) {
	table, _, err := tableFor(unitModifyEntity.Kind)
	if err != nil {
		return 0, err
	}
	unitModifyModel := FromDomainModify(&unitModifyEntity)

	level := 0
	if unitModifyModel.Level != nil {
		level = *unitModifyModel.Level
	}
	status := entities.DefaultOrgUnitStatus.String()
	if unitModifyModel.Status != nil {
		status = *unitModifyModel.Status
	}
	description := ""
	if unitModifyModel.Description != nil {
		description = *unitModifyModel.Description
	}

	builder := qb.Insert(table)
	if unitModifyEntity.Kind == entities.KindPosition {
		builder = builder.
			Columns("code", "name", "description", "parent_id", "division_id", "level", "status").
			Values(unitModifyModel.Code, unitModifyModel.Name, description, unitModifyModel.ParentID, unitModifyModel.DivisionID, level, status)
	} else {
		builder = builder.
			Columns("code", "name", "description", "parent_id", "level", "status").
			Values(unitModifyModel.Code, unitModifyModel.Name, description, unitModifyModel.ParentID, level, status)
	}

	query, args, err := builder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("unexpected org unit repository create error: %w", err)
	}

	var id int64
	err = r.querier.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return 0, organization.ErrConflict
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return 0, organization.ErrParentNotFound
		}
		return 0, fmt.Errorf("unexpected org unit repository create error: %w", err)
	}

	return id, nil
}

func (r *Repository) Update(ctx context.Context, unitModifyEntity entities.OrgUnitModify) (*entities.OrgUnit, error) {
	table, columns, err := tableFor(unitModifyEntity.Kind)
	if err != nil {
		return nil, err
	}
	unitModifyModel := FromDomainModify(&unitModifyEntity)

	builder := qb.
		Update(table)

	// опционные поля
	if unitModifyModel.Code != nil {
		builder = builder.Set("code", unitModifyModel.Code)
	}
	if unitModifyModel.Name != nil {
		builder = builder.Set("name", unitModifyModel.Name)
	}
	if unitModifyModel.Description != nil {
		builder = builder.Set("description", unitModifyModel.Description)
	}
	switch {
	case unitModifyModel.ClearParent:
		builder = builder.Set("parent_id", nil)
	case unitModifyModel.ParentID != nil:
		builder = builder.Set("parent_id", unitModifyModel.ParentID)
	}
	if unitModifyModel.DivisionID != nil {
		builder = builder.Set("division_id", unitModifyModel.DivisionID)
	}
	if unitModifyModel.Level != nil {
		builder = builder.Set("level", unitModifyModel.Level)
	}
	if unitModifyModel.Status != nil {
		builder = builder.Set("status", unitModifyModel.Status)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	builder = builder.
		Where(sq.Eq{"id": unitModifyModel.ID}).
		Suffix("RETURNING " + columns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected org unit repository update error: %w", err)
	}

	unitModel, err := scanUnit(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, organization.ErrUnitNotFound
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, organization.ErrConflict
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return nil, organization.ErrParentNotFound
		}

		return nil, fmt.Errorf("unexpected org unit repository update error: %w", err)
	}

	return ToDomain(unitModifyEntity.Kind, unitModel), nil
}

func (r *Repository) GetByID(ctx context.Context, kind entities.OrgUnitKind, id int64) (*entities.OrgUnit, error) {
	table, columns, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s
		FROM %s
		WHERE id = $1`, columns, table)

	unitModel, err := scanUnit(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, organization.ErrUnitNotFound
		}

		return nil, fmt.Errorf("unexpected org unit repository getbyid error: %w", err)
	}

	return ToDomain(kind, unitModel), nil
}

func (r *Repository) GetAll(ctx context.Context, kind entities.OrgUnitKind) ([]entities.OrgUnit, error) {
	table, columns, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
	SELECT %s
	FROM %s
	ORDER BY id`, columns, table)

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected org unit repository getall error: %w", err)
	}
	defer rows.Close()

	unitModels := make([]OrgUnitDB, 0, 16)
	for rows.Next() {
		unitModel, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected org unit repository getall error: %w", err)
		}
		unitModels = append(unitModels, *unitModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected org unit repository getall error: %w", err)
	}

	return ToDomainList(kind, unitModels), nil
}

// UpdateLevels проставляет уровни пачкой одним запросом.
func (r *Repository) UpdateLevels(ctx context.Context, kind entities.OrgUnitKind, levels map[int64]int) error {
	if len(levels) == 0 {
		return nil
	}
	table, _, err := tableFor(kind)
	if err != nil {
		return err
	}

	ids := make([]int64, 0, len(levels))
	for id := range levels {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	values := make([]int32, len(ids))
	for i, id := range ids {
		values[i] = int32(levels[id])
	}

	query := fmt.Sprintf(`UPDATE %s AS u
		SET level = v.level, updated_at = NOW()
		FROM UNNEST($1::BIGINT[], $2::INT[]) AS v(id, level)
		WHERE u.id = v.id`, table)

	_, err = r.querier.Exec(ctx, query, ids, values)
	if err != nil {
		return fmt.Errorf("unexpected org unit repository update levels error: %w", err)
	}

	return nil
}

func tableFor(kind entities.OrgUnitKind) (string, string, error) {
	switch kind {
	case entities.KindDivision:
		return "divisions", divisionColumns, nil
	case entities.KindPosition:
		return "positions", positionColumns, nil
	default:
		return "", "", fmt.Errorf("%w: %q", organization.ErrInvalidKind, kind)
	}
}

func scanUnit(row pgx.Row) (*OrgUnitDB, error) {
	var unitModel OrgUnitDB
	err := row.Scan(
		&unitModel.ID,
		&unitModel.Code,
		&unitModel.Name,
		&unitModel.Description,
		&unitModel.ParentID,
		&unitModel.DivisionID,
		&unitModel.Level,
		&unitModel.Status,
		&unitModel.CreatedAt,
		&unitModel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &unitModel, nil
}
