package shipment_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"samudra/internal/generated/dto"
	"samudra/internal/handlers/rest/converters"
	corepricing "samudra/internal/pkg/pricing"
	"samudra/internal/service/pricing"
	"samudra/internal/service/shipment"
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
	var createDTO dto.ShipmentCreateRequest
	err := json.NewDecoder(r.Body).Decode(&createDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	create, err := converters.ShipmentCreateFromDTO(createDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), create)
	if err != nil {
		switch {
		case errors.Is(err, corepricing.ErrMinOrderValueNotMet),
			errors.Is(err, corepricing.ErrTierNotFound),
			errors.Is(err, corepricing.ErrLimitExceeded),
			errors.Is(err, pricing.ErrUnknownSpecialService):
			w.WriteHeader(http.StatusUnprocessableEntity)
		case errors.Is(err, shipment.ErrMissingRequiredFields),
			errors.Is(err, shipment.ErrInvalidName),
			errors.Is(err, shipment.ErrInvalidServiceType),
			errors.Is(err, pricing.ErrMissingRequiredFields),
			errors.Is(err, pricing.ErrInvalidServiceType),
			errors.Is(err, corepricing.ErrValidation):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, pricing.ErrPricingRuleNotFound),
			errors.Is(err, pricing.ErrDiscountNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, corepricing.ErrExpired):
			w.WriteHeader(http.StatusGone)
		case errors.Is(err, shipment.ErrConflict):
			w.WriteHeader(http.StatusConflict)
		default:
			h.log.With(
				logger.NewField("error", err),
			).Error("create shipment")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(converters.ShipmentToDTO(*order))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
