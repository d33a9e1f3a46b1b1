package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"nasab-backend/application/services"
	"nasab-backend/domain/family"
	"nasab-backend/pkg/common"
	pkgerrors "nasab-backend/pkg/errors"
	"nasab-backend/pkg/utils"
)

// personRequest is the write-side payload for person endpoints.
type personRequest struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name" validate:"required,min=1,max=200"`
	Gender      string                 `json:"gender" validate:"required,oneof=male female"`
	BirthDate   string                 `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	DeathDate   string                 `json:"deathDate" validate:"omitempty,datetime=2006-01-02"`
	IsDeceased  bool                   `json:"isDeceased"`
	PhotoURL    string                 `json:"photoUrl"`
	NationalID  string                 `json:"nationalId"`
	Nationality string                 `json:"nationality"`
	PhoneNumber string                 `json:"phoneNumber"`
	Location    string                 `json:"location"`
	Latitude    float64                `json:"latitude"`
	Longitude   float64                `json:"longitude"`
	JobHistory  string                 `json:"jobHistory"`
	ParentIDs   []string               `json:"parentIds"`
	ChildrenIDs []string               `json:"childrenIds"`
	PartnerIDs  []string               `json:"partnerIds"`
	Attributes  map[string]interface{} `json:"attributes"`
}

// toPerson converts the request payload into a domain record, generating
// an id when the client did not supply one. Gender arrives pre-validated;
// no defaulting happens here.
func (req *personRequest) toPerson() *family.Person {
	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}
	return &family.Person{
		ID:          id,
		Name:        req.Name,
		Gender:      family.Gender(req.Gender),
		BirthDate:   req.BirthDate,
		DeathDate:   req.DeathDate,
		IsDeceased:  req.IsDeceased,
		PhotoURL:    req.PhotoURL,
		NationalID:  req.NationalID,
		Nationality: req.Nationality,
		PhoneNumber: req.PhoneNumber,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		JobHistory:  req.JobHistory,
		ParentIDs:   req.ParentIDs,
		ChildrenIDs: req.ChildrenIDs,
		PartnerIDs:  req.PartnerIDs,
		Attributes:  req.Attributes,
	}
}

// PersonHandler serves the person CRUD and batch endpoints.
type PersonHandler struct {
	familyService *services.FamilyService
	logger        *zap.Logger
}

// NewPersonHandler creates a new person handler
func NewPersonHandler(familyService *services.FamilyService, logger *zap.Logger) *PersonHandler {
	return &PersonHandler{
		familyService: familyService,
		logger:        logger,
	}
}

// CreatePerson handles POST /api/v1/people
func (h *PersonHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkgerrors.HandleHTTP(w, r, h.logger, pkgerrors.NewValidationError("invalid request body").WithCause(err))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		pkgerrors.HandleHTTP(w, r, h.logger, err)
		return
	}

	created, persisted, err := h.familyService.CreatePerson(r.Context(), req.toPerson())
	if err != nil {
		pkgerrors.HandleHTTP(w, r, h.logger, err)
		return
	}

	common.RespondWithMeta(w, http.StatusCreated, created, common.PersistenceMeta(persisted))
}

// GetPerson handles GET /api/v1/people/{personID}
func (h *PersonHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	personID := chi.URLParam(r, "personID")

	person := h.familyService.GetPerson(personID)
	if person == nil {
		pkgerrors.HandleHTTP(w, r, h.logger, pkgerrors.NewNotFoundError("person "+personID))
		return
	}

	common.RespondJSON(w, http.StatusOK, person)
}

// UpdatePerson handles PUT /api/v1/people/{personID}
func (h *PersonHandler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	personID := chi.URLParam(r, "personID")

	var req personRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkgerrors.HandleHTTP(w, r, h.logger, pkgerrors.NewValidationError("invalid request body").WithCause(err))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		pkgerrors.HandleHTTP(w, r, h.logger, err)
		return
	}

	// The path wins over any id in the body
	req.ID = personID

	updated, persisted, err := h.familyService.UpdatePerson(r.Context(), req.toPerson())
	if err != nil {
		pkgerrors.HandleHTTP(w, r, h.logger, err)
		return
	}

	common.RespondWithMeta(w, http.StatusOK, updated, common.PersistenceMeta(persisted))
}

// DeletePerson handles DELETE /api/v1/people/{personID}
func (h *PersonHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	personID := chi.URLParam(r, "personID")

	if _, err := h.familyService.DeletePerson(r.Context(), personID); err != nil {
		pkgerrors.HandleHTTP(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// batchRequest is the payload for POST /api/v1/people/batch.
type batchRequest struct {
	People []personRequest `json:"people" validate:"required,min=1,dive"`
}

// BatchImport handles POST /api/v1/people/batch
func (h *PersonHandler) BatchImport(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkgerrors.HandleHTTP(w, r, h.logger, pkgerrors.NewValidationError("invalid request body").WithCause(err))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		pkgerrors.HandleHTTP(w, r, h.logger, err)
		return
	}

	people := make([]*family.Person, 0, len(req.People))
	for i := range req.People {
		people = append(people, req.People[i].toPerson())
	}

	inserted, persisted, err := h.familyService.ImportPeople(r.Context(), people)
	if err != nil {
		pkgerrors.HandleHTTP(w, r, h.logger, err)
		return
	}

	common.RespondWithMeta(w, http.StatusCreated, inserted, common.PersistenceMeta(persisted))
}
