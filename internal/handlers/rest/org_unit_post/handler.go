package org_unit_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"samudra/internal/entities"
	"samudra/internal/generated/dto"
	"samudra/internal/handlers/rest/converters"
	"samudra/internal/service/organization"
	"samudra/pkg/logger"
)

// Handler обслуживает и подразделения, и должности: вид задается при регистрации маршрута.
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
	var unitDTO dto.OrgUnitCreate
	err := json.NewDecoder(r.Body).Decode(&unitDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	unit, err := h.service.CreateUnit(r.Context(), converters.OrgUnitCreateFromDTO(h.kind, unitDTO))
	if err != nil {
		switch {
		case errors.Is(err, organization.ErrMissingRequiredFields),
			errors.Is(err, organization.ErrInvalidKind),
			errors.Is(err, organization.ErrInvalidCode),
			errors.Is(err, organization.ErrInvalidName),
			errors.Is(err, organization.ErrInvalidStatus),
			errors.Is(err, organization.ErrInvalidDivision):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, organization.ErrParentNotFound),
			errors.Is(err, organization.ErrDivisionNotFound):
			w.WriteHeader(http.StatusUnprocessableEntity)
		case errors.Is(err, organization.ErrConflict):
			w.WriteHeader(http.StatusConflict)
		default:
			h.log.With(
				logger.NewField("error", err),
			).Error("create unit")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(converters.OrgUnitToDTO(*unit))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
