package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"nasab-backend/application/services"
	"nasab-backend/pkg/common"
	pkgerrors "nasab-backend/pkg/errors"
	"nasab-backend/pkg/utils"
)

// extractRequest is the payload for POST /api/v1/extract.
type extractRequest struct {
	Text string `json:"text" validate:"required,min=1,max=20000"`
}

// ExtractionHandler turns free-form family descriptions into imported
// person records.
type ExtractionHandler struct {
	extractionService *services.ExtractionService
	familyService     *services.FamilyService
	logger            *zap.Logger
}

// NewExtractionHandler creates a new extraction handler
func NewExtractionHandler(
	extractionService *services.ExtractionService,
	familyService *services.FamilyService,
	logger *zap.Logger,
) *ExtractionHandler {
	return &ExtractionHandler{
		extractionService: extractionService,
		familyService:     familyService,
		logger:            logger,
	}
}

// Extract handles POST /api/v1/extract: the description is parsed by the
// model, then the resulting records go through the normal batch ingest
// path, symmetry resync included.
func (h *ExtractionHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkgerrors.HandleHTTP(w, r, h.logger, pkgerrors.NewValidationError("invalid request body").WithCause(err))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		pkgerrors.HandleHTTP(w, r, h.logger, err)
		return
	}

	people, err := h.extractionService.Extract(r.Context(), req.Text)
	if err != nil {
		pkgerrors.HandleHTTP(w, r, h.logger, err)
		return
	}
	if len(people) == 0 {
		pkgerrors.HandleHTTP(w, r, h.logger, pkgerrors.NewValidationError("no people found in description"))
		return
	}

	inserted, persisted, err := h.familyService.ImportPeople(r.Context(), people)
	if err != nil {
		pkgerrors.HandleHTTP(w, r, h.logger, err)
		return
	}

	common.RespondWithMeta(w, http.StatusCreated, inserted, common.PersistenceMeta(persisted))
}
