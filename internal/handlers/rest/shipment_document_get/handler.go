package shipment_document_get

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
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

	document, err := h.service.RenderWaybill(r.Context(), waybill)
	if err != nil {
		switch {
		case errors.Is(err, shipment.ErrShipmentNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, shipment.ErrMissingRequiredFields):
			w.WriteHeader(http.StatusBadRequest)
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("waybill", waybill),
			).Error("render waybill")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(document)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("write document response")
	}
}
