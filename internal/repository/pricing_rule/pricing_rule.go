package pricing_rule

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"samudra/internal/entities"
	corepricing "samudra/internal/pkg/pricing"
	"samudra/internal/repository"
	"samudra/internal/service/pricing"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	ruleColumns = `id, code, origin_area, destination_area, service_type, volumetric_divisor,
		weight_tiers, distance_tiers, special_services, tax_rate, insurance_rate, active,
		created_at, updated_at`

	discountColumns = `id, pricing_rule_id, code, type, value, free_service_code, min_order_value,
		max_discount_amount, start_date, end_date, usage_limit, usage_count, active`
)

type scanner interface {
	Scan(dest ...any) error
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Create сохраняет правило вместе со скидками. Вызывается внутри транзакции.
func (r *Repository) Create(ctx context.Context, rule entities.PricingRule) (*entities.PricingRule, error) {
	ruleModel, err := FromDomain(&rule)
	if err != nil {
		return nil, fmt.Errorf("unexpected pricing rule repository create error: %w", err)
	}

	query := `INSERT INTO pricing_rules (code, origin_area, destination_area, service_type,
			volumetric_divisor, weight_tiers, distance_tiers, special_services, tax_rate,
			insurance_rate, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + ruleColumns

	created, err := scanRule(r.querier.QueryRow(
		ctx,
		query,
		ruleModel.Code,
		ruleModel.OriginArea,
		ruleModel.DestinationArea,
		ruleModel.ServiceType,
		ruleModel.VolumetricDivisor,
		ruleModel.WeightTiers,
		ruleModel.DistanceTiers,
		ruleModel.SpecialServices,
		ruleModel.TaxRate,
		ruleModel.InsuranceRate,
		ruleModel.Active,
	))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, pricing.ErrConflict
		}
		return nil, fmt.Errorf("unexpected pricing rule repository create error: %w", err)
	}

	discounts := make([]DiscountDB, 0, len(rule.Discounts))
	for _, discount := range rule.Discounts {
		discountModel := DiscountFromDomain(&discount)
		discountModel.PricingRuleID = created.ID

		inserted, err := r.createDiscount(ctx, *discountModel)
		if err != nil {
			return nil, err
		}
		discounts = append(discounts, *inserted)
	}

	result, err := ToDomain(created, discounts)
	if err != nil {
		return nil, fmt.Errorf("unexpected pricing rule repository create error: %w", err)
	}
	return result, nil
}

func (r *Repository) createDiscount(ctx context.Context, d DiscountDB) (*DiscountDB, error) {
	query := `INSERT INTO discounts (pricing_rule_id, code, type, value, free_service_code,
			min_order_value, max_discount_amount, start_date, end_date, usage_limit, usage_count, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + discountColumns

	inserted, err := scanDiscount(r.querier.QueryRow(
		ctx,
		query,
		d.PricingRuleID,
		d.Code,
		d.Type,
		d.Value,
		d.FreeServiceCode,
		d.MinOrderValue,
		d.MaxDiscountAmount,
		d.StartDate,
		d.EndDate,
		d.UsageLimit,
		d.UsageCount,
		d.Active,
	))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, pricing.ErrConflict
		}
		return nil, fmt.Errorf("unexpected pricing rule repository create discount error: %w", err)
	}
	return inserted, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.PricingRule, error) {
	query := `SELECT ` + ruleColumns + `
		FROM pricing_rules
		WHERE id = $1`

	return r.getOne(ctx, "getbyid", query, id)
}

func (r *Repository) GetActiveByRoute(ctx context.Context, route entities.Route) (*entities.PricingRule, error) {
	query := `SELECT ` + ruleColumns + `
		FROM pricing_rules
		WHERE origin_area = $1 AND destination_area = $2 AND service_type = $3 AND active`

	return r.getOne(ctx, "getactivebyroute", query,
		route.OriginArea,
		route.DestinationArea,
		route.ServiceType.String(),
	)
}

func (r *Repository) getOne(ctx context.Context, op, query string, args ...any) (*entities.PricingRule, error) {
	ruleModel, err := scanRule(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pricing.ErrPricingRuleNotFound
		}
		return nil, fmt.Errorf("unexpected pricing rule repository %s error: %w", op, err)
	}

	discounts, err := r.discountsByRule(ctx, ruleModel.ID)
	if err != nil {
		return nil, fmt.Errorf("unexpected pricing rule repository %s error: %w", op, err)
	}

	rule, err := ToDomain(ruleModel, discounts[ruleModel.ID])
	if err != nil {
		return nil, fmt.Errorf("unexpected pricing rule repository %s error: %w", op, err)
	}
	return rule, nil
}

func (r *Repository) List(ctx context.Context, filter entities.PricingRuleFilter) ([]entities.PricingRule, error) {
	builder := qb.
		Select(ruleColumns).
		From("pricing_rules")

	if filter.OriginArea != nil {
		builder = builder.Where(sq.Eq{"origin_area": *filter.OriginArea})
	}
	if filter.DestinationArea != nil {
		builder = builder.Where(sq.Eq{"destination_area": *filter.DestinationArea})
	}
	if filter.ServiceType != nil {
		builder = builder.Where(sq.Eq{"service_type": filter.ServiceType.String()})
	}
	if filter.ActiveOnly {
		builder = builder.Where(sq.Eq{"active": true})
	}

	query, args, err := builder.OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected pricing rule repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected pricing rule repository list error: %w", err)
	}
	defer rows.Close()

	ruleModels := make([]PricingRuleDB, 0, 8)
	for rows.Next() {
		ruleModel, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected pricing rule repository list error: %w", err)
		}
		ruleModels = append(ruleModels, *ruleModel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected pricing rule repository list error: %w", err)
	}
	rows.Close()

	if len(ruleModels) == 0 {
		return []entities.PricingRule{}, nil
	}

	ids := make([]int64, len(ruleModels))
	for i, ruleModel := range ruleModels {
		ids[i] = ruleModel.ID
	}
	discounts, err := r.discountsByRule(ctx, ids...)
	if err != nil {
		return nil, fmt.Errorf("unexpected pricing rule repository list error: %w", err)
	}

	result := make([]entities.PricingRule, 0, len(ruleModels))
	for i := range ruleModels {
		rule, err := ToDomain(&ruleModels[i], discounts[ruleModels[i].ID])
		if err != nil {
			return nil, fmt.Errorf("unexpected pricing rule repository list error: %w", err)
		}
		result = append(result, *rule)
	}
	return result, nil
}

// IncrementDiscountUsage увеличивает счетчик одним UPDATE, поэтому лимит
// не превышается при параллельных заказах.
func (r *Repository) IncrementDiscountUsage(ctx context.Context, discountID int64) (*entities.Discount, error) {
	query := `UPDATE discounts
		SET usage_count = usage_count + 1
		WHERE id = $1 AND active AND (usage_limit = 0 OR usage_count < usage_limit)
		RETURNING ` + discountColumns

	discountModel, err := scanDiscount(r.querier.QueryRow(ctx, query, discountID))
	if err == nil {
		return DiscountToDomain(discountModel), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("unexpected pricing rule repository increment discount usage error: %w", err)
	}

	var active bool
	err = r.querier.QueryRow(ctx, `SELECT active FROM discounts WHERE id = $1`, discountID).Scan(&active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pricing.ErrDiscountNotFound
		}
		return nil, fmt.Errorf("unexpected pricing rule repository increment discount usage error: %w", err)
	}
	if !active {
		return nil, corepricing.ErrDiscountInactive
	}
	return nil, corepricing.ErrDiscountUsageLimit
}

func (r *Repository) DeactivateExpiredDiscounts(ctx context.Context, at time.Time) ([]entities.Route, error) {
	query := `UPDATE discounts d
		SET active = FALSE
		FROM pricing_rules r
		WHERE d.pricing_rule_id = r.id AND d.active AND d.end_date < $1
		RETURNING r.origin_area, r.destination_area, r.service_type`

	rows, err := r.querier.Query(ctx, query, at)
	if err != nil {
		return nil, fmt.Errorf("unexpected pricing rule repository deactivate expired discounts error: %w", err)
	}
	defer rows.Close()

	routes := make([]entities.Route, 0)
	for rows.Next() {
		var (
			route       entities.Route
			serviceType string
		)
		if err := rows.Scan(&route.OriginArea, &route.DestinationArea, &serviceType); err != nil {
			return nil, fmt.Errorf("unexpected pricing rule repository deactivate expired discounts error: %w", err)
		}
		route.ServiceType = entities.ServiceType(serviceType)
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected pricing rule repository deactivate expired discounts error: %w", err)
	}

	return routes, nil
}

func (r *Repository) discountsByRule(ctx context.Context, ruleIDs ...int64) (map[int64][]DiscountDB, error) {
	query, args, err := qb.
		Select(discountColumns).
		From("discounts").
		Where(sq.Eq{"pricing_rule_id": ruleIDs}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]DiscountDB, len(ruleIDs))
	for rows.Next() {
		discountModel, err := scanDiscount(rows)
		if err != nil {
			return nil, err
		}
		result[discountModel.PricingRuleID] = append(result[discountModel.PricingRuleID], *discountModel)
	}
	return result, rows.Err()
}

func scanRule(row scanner) (*PricingRuleDB, error) {
	var ruleModel PricingRuleDB
	err := row.Scan(
		&ruleModel.ID,
		&ruleModel.Code,
		&ruleModel.OriginArea,
		&ruleModel.DestinationArea,
		&ruleModel.ServiceType,
		&ruleModel.VolumetricDivisor,
		&ruleModel.WeightTiers,
		&ruleModel.DistanceTiers,
		&ruleModel.SpecialServices,
		&ruleModel.TaxRate,
		&ruleModel.InsuranceRate,
		&ruleModel.Active,
		&ruleModel.CreatedAt,
		&ruleModel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ruleModel, nil
}

func scanDiscount(row scanner) (*DiscountDB, error) {
	var discountModel DiscountDB
	err := row.Scan(
		&discountModel.ID,
		&discountModel.PricingRuleID,
		&discountModel.Code,
		&discountModel.Type,
		&discountModel.Value,
		&discountModel.FreeServiceCode,
		&discountModel.MinOrderValue,
		&discountModel.MaxDiscountAmount,
		&discountModel.StartDate,
		&discountModel.EndDate,
		&discountModel.UsageLimit,
		&discountModel.UsageCount,
		&discountModel.Active,
	)
	if err != nil {
		return nil, err
	}
	return &discountModel, nil
}
