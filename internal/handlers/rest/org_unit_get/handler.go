package org_unit_get

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"samudra/internal/entities"
	"samudra/internal/handlers/rest/converters"
	"samudra/internal/service/organization"
	"samudra/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
	kind    entities.OrgUnitKind
}

func New(log handlerLogger, service Service, kind entities.OrgUnitKind) *Handler {
	handlerLog := log.With(
		logger.NewField("kind", kind.String()),
	)

	return &Handler{
		service: service,
		log:     handlerLog,
		kind:    kind,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	unit, err := h.service.GetUnit(r.Context(), h.kind, id)
	if err != nil {
		switch {
		case errors.Is(err, organization.ErrUnitNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, organization.ErrInvalidKind):
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(converters.OrgUnitToDTO(*unit))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
