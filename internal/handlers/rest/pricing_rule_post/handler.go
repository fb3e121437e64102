package pricing_rule_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"samudra/internal/generated/dto"
	"samudra/internal/handlers/rest/converters"
	corepricing "samudra/internal/pkg/pricing"
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
	var ruleDTO dto.PricingRuleCreate
	err := json.NewDecoder(r.Body).Decode(&ruleDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	rule, err := converters.PricingRuleFromDTO(ruleDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	created, err := h.service.CreatePricingRule(r.Context(), rule)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrMissingRequiredFields),
			errors.Is(err, pricing.ErrInvalidServiceType),
			errors.Is(err, pricing.ErrInvalidPricingRule),
			errors.Is(err, corepricing.ErrValidation):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, pricing.ErrConflict):
			w.WriteHeader(http.StatusConflict)
		default:
			h.log.With(
				logger.NewField("error", err),
			).Error("create pricing rule")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(converters.PricingRuleToDTO(*created))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
