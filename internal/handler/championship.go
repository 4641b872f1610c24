package handler

import (
	"net/http"

	"github.com/kayfabe/promoter/internal/service"
)

// ChampionshipHandler handles championship and lineage endpoints.
type ChampionshipHandler struct {
	titleSvc *service.ChampionshipService
}

// NewChampionshipHandler creates a new ChampionshipHandler.
func NewChampionshipHandler(titleSvc *service.ChampionshipService) *ChampionshipHandler {
	return &ChampionshipHandler{titleSvc: titleSvc}
}

// Create handles POST /championships.
func (h *ChampionshipHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateChampionshipInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}

	title, err := h.titleSvc.CreateChampionship(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, title)
}

// Get handles GET /championships/{id}.
func (h *ChampionshipHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	title, err := h.titleSvc.GetChampionship(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, title)
}

// Crown handles POST /championships/{id}/crown.
func (h *ChampionshipHandler) Crown(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	var input service.CrownInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}

	reign, err := h.titleSvc.CrownChampion(r.Context(), id, input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, reign)
}

// Defend handles POST /championships/{id}/defend.
func (h *ChampionshipHandler) Defend(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	var input service.DefenseInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}

	defense, err := h.titleSvc.RecordDefense(r.Context(), id, input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, defense)
}

// Lineage handles GET /championships/{id}/lineage.
func (h *ChampionshipHandler) Lineage(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	view, err := h.titleSvc.Lineage(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, view)
}
