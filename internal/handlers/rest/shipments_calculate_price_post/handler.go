package shipments_calculate_price_post

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
	var requestDTO dto.PriceCalculationRequest
	err := json.NewDecoder(r.Body).Decode(&requestDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	quoteRequest, err := converters.QuoteRequestFromDTO(requestDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	quote, err := h.service.CalculatePrice(r.Context(), quoteRequest)
	if err != nil {
		switch {
		case errors.Is(err, corepricing.ErrMinOrderValueNotMet),
			errors.Is(err, corepricing.ErrTierNotFound),
			errors.Is(err, corepricing.ErrLimitExceeded),
			errors.Is(err, pricing.ErrUnknownSpecialService):
			w.WriteHeader(http.StatusUnprocessableEntity)
		case errors.Is(err, pricing.ErrMissingRequiredFields),
			errors.Is(err, pricing.ErrInvalidServiceType),
			errors.Is(err, corepricing.ErrValidation):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, pricing.ErrPricingRuleNotFound),
			errors.Is(err, pricing.ErrDiscountNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, corepricing.ErrExpired):
			w.WriteHeader(http.StatusGone)
		default:
			h.log.With(
				logger.NewField("error", err),
			).Error("calculate price")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(converters.QuoteToDTO(*quote))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
