package handler

import (
	"net/http"

	"github.com/kayfabe/promoter/internal/service"
)

// RosterHandler handles wrestler, company and venue endpoints.
type RosterHandler struct {
	rosterSvc *service.RosterService
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(rosterSvc *service.RosterService) *RosterHandler {
	return &RosterHandler{rosterSvc: rosterSvc}
}

// CreateWrestler handles POST /wrestlers.
func (h *RosterHandler) CreateWrestler(w http.ResponseWriter, r *http.Request) {
	var input service.CreateWrestlerInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}

	wrestler, err := h.rosterSvc.CreateWrestler(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, wrestler)
}

// GetWrestler handles GET /wrestlers/{id}.
func (h *RosterHandler) GetWrestler(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	wrestler, err := h.rosterSvc.GetWrestler(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, wrestler)
}

// ListRoster handles GET /companies/{id}/roster.
func (h *RosterHandler) ListRoster(w http.ResponseWriter, r *http.Request) {
	companyID, err := URLParamUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	roster, err := h.rosterSvc.ListRoster(r.Context(), companyID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"roster": roster})
}

// BoostPopularity handles POST /wrestlers/{id}/popularity.
func (h *RosterHandler) BoostPopularity(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	var input struct {
		Delta int `json:"delta"`
	}
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}

	popularity, err := h.rosterSvc.BoostWrestlerPopularity(r.Context(), id, input.Delta)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"wrestler_id": id,
		"popularity":  popularity,
	})
}

// CreateCompany handles POST /companies.
func (h *RosterHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var input service.CreateCompanyInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}

	company, err := h.rosterSvc.CreateCompany(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, company)
}

// GetCompany handles GET /companies/{id}.
func (h *RosterHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	company, err := h.rosterSvc.GetCompany(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, company)
}

// CreateVenue handles POST /venues.
func (h *RosterHandler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var input service.CreateVenueInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}

	venue, err := h.rosterSvc.CreateVenue(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, venue)
}

// ListVenues handles GET /venues.
func (h *RosterHandler) ListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.rosterSvc.ListVenues(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"venues": venues})
}
