package shipment_status_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlekSi/pointer"
	"github.com/gorilla/mux"
	"samudra/internal/entities"
	"samudra/internal/generated/dto"
	"samudra/internal/handlers/rest/converters"
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
	waybill := mux.Vars(r)["waybill"]

	var changeDTO dto.StatusChangeRequest
	err := json.NewDecoder(r.Body).Decode(&changeDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	order, err := h.service.TransitionStatus(r.Context(), entities.StatusChange{
		Waybill:  waybill,
		Status:   entities.ShipmentStatus(changeDTO.Status),
		Location: pointer.Get(changeDTO.Location),
		Notes:    pointer.Get(changeDTO.Notes),
		User:     pointer.Get(changeDTO.User),
	})
	if err != nil {
		switch {
		case errors.Is(err, shipment.ErrMissingRequiredFields),
			errors.Is(err, shipment.ErrInvalidStatus):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, shipment.ErrShipmentNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, shipment.ErrInvalidTransition),
			errors.Is(err, shipment.ErrVersionConflict):
			w.WriteHeader(http.StatusConflict)
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("waybill", waybill),
			).Error("change shipment status")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(converters.ShipmentToDTO(*order))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
