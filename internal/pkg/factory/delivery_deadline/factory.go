package delivery_deadline

import (
	"time"

	"samudra/internal/entities"
)

const day = 24 * time.Hour

type DeliveryTimeFactory struct{}

func New() *DeliveryTimeFactory {
	return &DeliveryTimeFactory{}
}

// EstimateDelivery - плановая дата доставки по типу сервиса.
func (d *DeliveryTimeFactory) EstimateDelivery(serviceType entities.ServiceType, from time.Time) time.Time {
	switch serviceType {
	case entities.ServiceSameDay:
		return sameDayDeadline(from)
	case entities.ServiceExpress:
		return from.Add(day)
	case entities.ServiceCargo:
		return from.Add(7 * day)
	case entities.ServiceRegular:
		return from.Add(3 * day)
	default:
		return from.Add(3 * day)
	}
}

// sameDayDeadline: конец дня отправки, но не меньше 6 часов на доставку.
func sameDayDeadline(from time.Time) time.Time {
	endOfDay := time.Date(from.Year(), from.Month(), from.Day(), 23, 59, 59, 0, from.Location())
	if endOfDay.Sub(from) < 6*time.Hour {
		return from.Add(6 * time.Hour)
	}
	return endOfDay
}
