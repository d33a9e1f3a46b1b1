package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"nasab-backend/application/services"
	"nasab-backend/domain/family"
	"nasab-backend/pkg/common"
	pkgerrors "nasab-backend/pkg/errors"
)

// FamilyHandler serves the family aggregate, its tree projection and its
// dashboard stats.
type FamilyHandler struct {
	familyService    *services.FamilyService
	hierarchyService *services.HierarchyService
	logger           *zap.Logger
}

// NewFamilyHandler creates a new family handler
func NewFamilyHandler(
	familyService *services.FamilyService,
	hierarchyService *services.HierarchyService,
	logger *zap.Logger,
) *FamilyHandler {
	return &FamilyHandler{
		familyService:    familyService,
		hierarchyService: hierarchyService,
		logger:           logger,
	}
}

// ListFamilies handles GET /api/v1/families
func (h *FamilyHandler) ListFamilies(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.familyService.ListFamilies(r.Context())
	if err != nil {
		pkgerrors.HandleHTTP(w, r, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, summaries)
}

// GetFamily handles GET /api/v1/families/{familyID}
func (h *FamilyHandler) GetFamily(w http.ResponseWriter, r *http.Request) {
	data, err := h.resolveFamily(r)
	if err != nil {
		pkgerrors.HandleHTTP(w, r, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, data)
}

// GetHierarchy handles GET /api/v1/families/{familyID}/hierarchy?rootId=
func (h *FamilyHandler) GetHierarchy(w http.ResponseWriter, r *http.Request) {
	if _, err := h.resolveFamily(r); err != nil {
		pkgerrors.HandleHTTP(w, r, h.logger, err)
		return
	}

	rootID := r.URL.Query().Get("rootId")
	node, err := h.hierarchyService.Project(r.Context(), rootID)
	if err != nil {
		pkgerrors.HandleHTTP(w, r, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, node)
}

// GetStats handles GET /api/v1/families/{familyID}/stats
func (h *FamilyHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if _, err := h.resolveFamily(r); err != nil {
		pkgerrors.HandleHTTP(w, r, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, h.familyService.Stats(r.Context()))
}

// resolveFamily checks the path id against the loaded family. The service
// hosts a single aggregate, so anything else is a 404.
func (h *FamilyHandler) resolveFamily(r *http.Request) (*family.FamilyData, error) {
	familyID := chi.URLParam(r, "familyID")
	data := h.familyService.Family(r.Context())
	if familyID != data.ID {
		return nil, pkgerrors.NewNotFoundError("family " + familyID)
	}
	return data, nil
}
