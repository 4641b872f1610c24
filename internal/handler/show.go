package handler

import (
	"net/http"

	"github.com/kayfabe/promoter/internal/domain"
	"github.com/kayfabe/promoter/internal/service"
)

// ShowHandler handles show booking, card editing and lifecycle endpoints.
type ShowHandler struct {
	showSvc *service.ShowService
}

// NewShowHandler creates a new ShowHandler.
func NewShowHandler(showSvc *service.ShowService) *ShowHandler {
	return &ShowHandler{showSvc: showSvc}
}

// BookShow handles POST /shows.
func (h *ShowHandler) BookShow(w http.ResponseWriter, r *http.Request) {
	var input service.BookShowInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}

	show, err := h.showSvc.BookShow(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, show)
}

// GetShow handles GET /shows/{id}.
func (h *ShowHandler) GetShow(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	show, err := h.showSvc.GetShow(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, show)
}

// ListShows handles GET /companies/{id}/shows.
func (h *ShowHandler) ListShows(w http.ResponseWriter, r *http.Request) {
	companyID, err := URLParamUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	shows, err := h.showSvc.ListShows(r.Context(), companyID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"shows": shows})
}

// ReplaceCard handles PUT /shows/{id}/card.
func (h *ShowHandler) ReplaceCard(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	var input struct {
		Matches  []domain.MatchRecord   `json:"matches"`
		Segments []domain.SegmentRecord `json:"segments"`
	}
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}

	show, err := h.showSvc.ReplaceCard(r.Context(), id, input.Matches, input.Segments)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, show)
}

// Transition handles POST /shows/{id}/status.
func (h *ShowHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	var input struct {
		Status domain.ShowStatus `json:"status"`
	}
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}

	show, err := h.showSvc.Transition(r.Context(), id, input.Status)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, show)
}

// CompleteShow handles POST /shows/{id}/complete.
func (h *ShowHandler) CompleteShow(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	result, err := h.showSvc.CompleteShow(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}
