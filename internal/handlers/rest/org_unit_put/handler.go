package org_unit_put

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"samudra/internal/entities"
	"samudra/internal/generated/dto"
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
		log:     handlerLog,
		service: service,
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

	var unitDTO dto.OrgUnitUpdate
	err = json.NewDecoder(r.Body).Decode(&unitDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	unit, err := h.service.UpdateUnit(r.Context(), converters.OrgUnitUpdateFromDTO(h.kind, id, unitDTO))
	if err != nil {
		switch {
		case errors.Is(err, organization.ErrMissingRequiredFields),
			errors.Is(err, organization.ErrInvalidKind),
			errors.Is(err, organization.ErrInvalidCode),
			errors.Is(err, organization.ErrInvalidName),
			errors.Is(err, organization.ErrInvalidStatus),
			errors.Is(err, organization.ErrInvalidDivision):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, organization.ErrUnitNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, organization.ErrParentNotFound),
			errors.Is(err, organization.ErrDivisionNotFound):
			w.WriteHeader(http.StatusUnprocessableEntity)
		case errors.Is(err, organization.ErrConflict),
			errors.Is(err, organization.ErrUnitCycle):
			w.WriteHeader(http.StatusConflict)
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("id", id),
			).Error("update unit")
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
