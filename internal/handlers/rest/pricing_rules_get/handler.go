package pricing_rules_get

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"samudra/internal/entities"
	"samudra/internal/generated/dto"
	"samudra/internal/handlers/rest/converters"
	"samudra/internal/service/pricing"
	"samudra/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	rules, err := h.service.ListPricingRules(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrInvalidServiceType):
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	ruleDTOs := make([]dto.PricingRule, len(rules))
	for i, rule := range rules {
		ruleDTOs[i] = converters.PricingRuleToDTO(rule)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(ruleDTOs)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

// по умолчанию возвращаются только активные правила
func parseFilter(r *http.Request) (entities.PricingRuleFilter, error) {
	query := r.URL.Query()
	filter := entities.PricingRuleFilter{ActiveOnly: true}

	if v := query.Get("origin_area"); v != "" {
		filter.OriginArea = &v
	}
	if v := query.Get("destination_area"); v != "" {
		filter.DestinationArea = &v
	}
	if v := query.Get("service_type"); v != "" {
		serviceType := entities.ServiceType(v)
		filter.ServiceType = &serviceType
	}
	if v := query.Get("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return entities.PricingRuleFilter{}, err
		}
		filter.ActiveOnly = active
	}
	return filter, nil
}
