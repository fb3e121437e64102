package shipment

import (
	"encoding/json"
	"fmt"

	"samudra/internal/entities"
)

func ToDomain(s *ShipmentDB, history []StatusHistoryDB) (*entities.ShipmentOrder, error) {
	if s == nil {
		return nil, nil
	}

	var itemsDB []ItemDB
	if len(s.Items) > 0 {
		if err := json.Unmarshal(s.Items, &itemsDB); err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
	}

	items := make([]entities.Item, len(itemsDB))
	for i, item := range itemsDB {
		items[i] = entities.Item{
			Description: item.Description,
			Weight:      item.Weight,
			Quantity:    item.Quantity,
			Value:       item.Value,
		}
		if item.Dimensions != nil {
			items[i].Dimensions = &entities.Dimensions{
				Length: item.Dimensions.Length,
				Width:  item.Dimensions.Width,
				Height: item.Dimensions.Height,
				Unit:   entities.DimensionUnit(item.Dimensions.Unit),
			}
		}
	}

	return &entities.ShipmentOrder{
		ID:              s.ID,
		Waybill:         s.Waybill,
		SenderName:      s.SenderName,
		ReceiverName:    s.ReceiverName,
		OriginArea:      s.OriginArea,
		DestinationArea: s.DestinationArea,
		ServiceType:     entities.ServiceType(s.ServiceType),
		DistanceKm:      s.DistanceKm,
		Items:           items,
		TotalWeight:     s.TotalWeight,
		Amount: entities.Amount{
			BaseRate:           s.BaseRate,
			AdditionalServices: s.AdditionalServices,
			Discount:           s.Discount,
			Insurance:          s.Insurance,
			Tax:                s.Tax,
			Total:              s.Total,
		},
		PricingRuleID:       s.PricingRuleID,
		DiscountCode:        s.DiscountCode,
		Status:              entities.ShipmentStatus(s.Status),
		StatusHistory:       HistoryToDomain(history),
		EstimatedDeliveryAt: s.EstimatedDeliveryAt,
		Version:             s.Version,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}, nil
}

func FromDomain(order *entities.ShipmentOrder) (*ShipmentDB, error) {
	if order == nil {
		return nil, nil
	}

	itemsDB := make([]ItemDB, len(order.Items))
	for i, item := range order.Items {
		itemsDB[i] = ItemDB{
			Description: item.Description,
			Weight:      item.Weight,
			Quantity:    item.Quantity,
			Value:       item.Value,
		}
		if item.Dimensions != nil {
			itemsDB[i].Dimensions = &DimensionsDB{
				Length: item.Dimensions.Length,
				Width:  item.Dimensions.Width,
				Height: item.Dimensions.Height,
				Unit:   item.Dimensions.Unit.String(),
			}
		}
	}
	items, err := json.Marshal(itemsDB)
	if err != nil {
		return nil, fmt.Errorf("items: %w", err)
	}

	return &ShipmentDB{
		ID:                  order.ID,
		Waybill:             order.Waybill,
		SenderName:          order.SenderName,
		ReceiverName:        order.ReceiverName,
		OriginArea:          order.OriginArea,
		DestinationArea:     order.DestinationArea,
		ServiceType:         order.ServiceType.String(),
		DistanceKm:          order.DistanceKm,
		Items:               items,
		TotalWeight:         order.TotalWeight,
		BaseRate:            order.Amount.BaseRate,
		AdditionalServices:  order.Amount.AdditionalServices,
		Discount:            order.Amount.Discount,
		Insurance:           order.Amount.Insurance,
		Tax:                 order.Amount.Tax,
		Total:               order.Amount.Total,
		PricingRuleID:       order.PricingRuleID,
		DiscountCode:        order.DiscountCode,
		Status:              order.Status.String(),
		EstimatedDeliveryAt: order.EstimatedDeliveryAt,
		Version:             order.Version,
	}, nil
}

func HistoryToDomain(historyDB []StatusHistoryDB) []entities.StatusHistoryEntry {
	if len(historyDB) == 0 {
		return []entities.StatusHistoryEntry{}
	}

	result := make([]entities.StatusHistoryEntry, len(historyDB))
	for i, h := range historyDB {
		result[i] = entities.StatusHistoryEntry{
			Status:    entities.ShipmentStatus(h.Status),
			Timestamp: h.OccurredAt,
			Location:  h.Location,
			Notes:     h.Notes,
			User:      h.UserName,
		}
	}
	return result
}
