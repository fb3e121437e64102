package shipment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"samudra/internal/entities"
	"samudra/internal/repository"
	"samudra/internal/service/shipment"
)

const shipmentColumns = `id, waybill, sender_name, receiver_name, origin_area, destination_area,
	service_type, distance_km, items, total_weight, base_rate, additional_services, discount,
	insurance, tax, total, pricing_rule_id, discount_code, status, estimated_delivery_at,
	version, created_at, updated_at`

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

// Create сохраняет заказ и его начальную историю статусов. Вызывается внутри транзакции.
func (r *Repository) Create(ctx context.Context, order entities.ShipmentOrder) (*entities.ShipmentOrder, error) {
	shipmentModel, err := FromDomain(&order)
	if err != nil {
		return nil, fmt.Errorf("unexpected shipment repository create error: %w", err)
	}

	query := `INSERT INTO shipments (waybill, sender_name, receiver_name, origin_area,
			destination_area, service_type, distance_km, items, total_weight, base_rate,
			additional_services, discount, insurance, tax, total, pricing_rule_id, discount_code,
			status, estimated_delivery_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING ` + shipmentColumns

	created, err := scanShipment(r.querier.QueryRow(
		ctx,
		query,
		shipmentModel.Waybill,
		shipmentModel.SenderName,
		shipmentModel.ReceiverName,
		shipmentModel.OriginArea,
		shipmentModel.DestinationArea,
		shipmentModel.ServiceType,
		shipmentModel.DistanceKm,
		shipmentModel.Items,
		shipmentModel.TotalWeight,
		shipmentModel.BaseRate,
		shipmentModel.AdditionalServices,
		shipmentModel.Discount,
		shipmentModel.Insurance,
		shipmentModel.Tax,
		shipmentModel.Total,
		shipmentModel.PricingRuleID,
		shipmentModel.DiscountCode,
		shipmentModel.Status,
		shipmentModel.EstimatedDeliveryAt,
	))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, shipment.ErrConflict
		}
		return nil, fmt.Errorf("unexpected shipment repository create error: %w", err)
	}

	history := make([]StatusHistoryDB, 0, len(order.StatusHistory))
	for _, entry := range order.StatusHistory {
		inserted, err := r.appendHistory(ctx, created.ID, entry)
		if err != nil {
			return nil, fmt.Errorf("unexpected shipment repository create error: %w", err)
		}
		history = append(history, *inserted)
	}

	result, err := ToDomain(created, history)
	if err != nil {
		return nil, fmt.Errorf("unexpected shipment repository create error: %w", err)
	}
	return result, nil
}

func (r *Repository) GetByWaybill(ctx context.Context, waybill string) (*entities.ShipmentOrder, error) {
	query := `SELECT ` + shipmentColumns + `
		FROM shipments
		WHERE waybill = $1`

	shipmentModel, err := scanShipment(r.querier.QueryRow(ctx, query, waybill))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shipment.ErrShipmentNotFound
		}
		return nil, fmt.Errorf("unexpected shipment repository getbywaybill error: %w", err)
	}

	history, err := r.history(ctx, shipmentModel.ID)
	if err != nil {
		return nil, fmt.Errorf("unexpected shipment repository getbywaybill error: %w", err)
	}

	result, err := ToDomain(shipmentModel, history)
	if err != nil {
		return nil, fmt.Errorf("unexpected shipment repository getbywaybill error: %w", err)
	}
	return result, nil
}

// UpdateStatus меняет статус только если версия заказа совпадает с ожидаемой,
// и дописывает запись истории. Возвращает новую версию.
func (r *Repository) UpdateStatus(ctx context.Context, transition entities.StatusTransition) (int64, error) {
	query := `UPDATE shipments
		SET status = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND version = $3
		RETURNING version`

	var version int64
	err := r.querier.QueryRow(
		ctx,
		query,
		transition.Entry.Status.String(),
		transition.ShipmentID,
		transition.ExpectedVersion,
	).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, shipment.ErrVersionConflict
		}
		return 0, fmt.Errorf("unexpected shipment repository update status error: %w", err)
	}

	if _, err := r.appendHistory(ctx, transition.ShipmentID, transition.Entry); err != nil {
		return 0, fmt.Errorf("unexpected shipment repository update status error: %w", err)
	}

	return version, nil
}

func (r *Repository) appendHistory(ctx context.Context, shipmentID int64, entry entities.StatusHistoryEntry) (*StatusHistoryDB, error) {
	query := `INSERT INTO shipment_status_history (shipment_id, status, location, notes, user_name, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, shipment_id, status, location, notes, user_name, occurred_at`

	var h StatusHistoryDB
	err := r.querier.QueryRow(
		ctx,
		query,
		shipmentID,
		entry.Status.String(),
		entry.Location,
		entry.Notes,
		entry.User,
		entry.Timestamp,
	).Scan(
		&h.ID,
		&h.ShipmentID,
		&h.Status,
		&h.Location,
		&h.Notes,
		&h.UserName,
		&h.OccurredAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *Repository) history(ctx context.Context, shipmentID int64) ([]StatusHistoryDB, error) {
	query := `SELECT id, shipment_id, status, location, notes, user_name, occurred_at
		FROM shipment_status_history
		WHERE shipment_id = $1
		ORDER BY id`

	rows, err := r.querier.Query(ctx, query, shipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]StatusHistoryDB, 0, 8)
	for rows.Next() {
		var h StatusHistoryDB
		err := rows.Scan(
			&h.ID,
			&h.ShipmentID,
			&h.Status,
			&h.Location,
			&h.Notes,
			&h.UserName,
			&h.OccurredAt,
		)
		if err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

func scanShipment(row scanner) (*ShipmentDB, error) {
	var s ShipmentDB
	err := row.Scan(
		&s.ID,
		&s.Waybill,
		&s.SenderName,
		&s.ReceiverName,
		&s.OriginArea,
		&s.DestinationArea,
		&s.ServiceType,
		&s.DistanceKm,
		&s.Items,
		&s.TotalWeight,
		&s.BaseRate,
		&s.AdditionalServices,
		&s.Discount,
		&s.Insurance,
		&s.Tax,
		&s.Total,
		&s.PricingRuleID,
		&s.DiscountCode,
		&s.Status,
		&s.EstimatedDeliveryAt,
		&s.Version,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
