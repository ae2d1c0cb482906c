package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	dashboard "github.com/goliatone/go-painel/components/dashboard"
	"github.com/goliatone/go-painel/components/dashboard/commands"
	"github.com/goliatone/go-painel/components/dashboard/queries"
)

// Handlers exposes HTTP endpoints backed by shared commands.
type Handlers struct {
	API Executor
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrNotDeletable):
		return http.StatusForbidden
	case errors.Is(err, dashboard.ErrEditModeRequired):
		return http.StatusConflict
	case errors.Is(err, dashboard.ErrInvalidCard),
		errors.Is(err, dashboard.ErrMalformedJSON),
		errors.Is(err, dashboard.ErrSchema):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handlers) HandleLayout(w http.ResponseWriter, r *http.Request, viewer dashboard.ViewerContext) {
	result, err := h.API.Layout(r.Context(), viewer)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

func (h *Handlers) HandleSetEditMode(w http.ResponseWriter, r *http.Request, viewer dashboard.ViewerContext) {
	var payload struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.SetEditMode(r.Context(), commands.SetEditModeInput{
		Viewer:  viewer,
		Enabled: payload.Enabled,
	}); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleAddCard(w http.ResponseWriter, r *http.Request, viewer dashboard.ViewerContext) {
	var payload dashboard.Card
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.AddCard(r.Context(), commands.AddCardInput{
		Viewer: viewer,
		Card:   payload,
	}); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleRemoveCard(w http.ResponseWriter, r *http.Request, viewer dashboard.ViewerContext, cardID string) {
	if err := h.API.RemoveCard(r.Context(), commands.RemoveCardInput{
		Viewer: viewer,
		CardID: cardID,
	}); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleHideCard(w http.ResponseWriter, r *http.Request, viewer dashboard.ViewerContext, cardID string) {
	var payload struct {
		Restore bool `json:"restore"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if err := h.API.HideCard(r.Context(), commands.HideCardInput{
		Viewer:  viewer,
		CardID:  cardID,
		Restore: payload.Restore,
	}); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleMoveCard(w http.ResponseWriter, r *http.Request, viewer dashboard.ViewerContext) {
	var payload struct {
		CardID  string `json:"card_id"`
		ToIndex int    `json:"to_index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.MoveCard(r.Context(), commands.MoveCardInput{
		Viewer:  viewer,
		CardID:  payload.CardID,
		ToIndex: payload.ToIndex,
	}); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleUpdateCard(w http.ResponseWriter, r *http.Request, viewer dashboard.ViewerContext, cardID string) {
	var patch dashboard.CardPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.UpdateCard(r.Context(), commands.UpdateCardInput{
		Viewer: viewer,
		CardID: cardID,
		Patch:  patch,
	}); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleSaveLayout(w http.ResponseWriter, r *http.Request, viewer dashboard.ViewerContext) {
	if err := h.API.SaveLayout(r.Context(), commands.SaveLayoutInput{Viewer: viewer}); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleResetLayout(w http.ResponseWriter, r *http.Request, viewer dashboard.ViewerContext) {
	if err := h.API.ResetLayout(r.Context(), commands.ResetLayoutInput{Viewer: viewer}); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request, viewer dashboard.ViewerContext) {
	data, err := h.API.Export(r.Context(), viewer)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="painel-config.json"`)
	_, _ = w.Write(data)
}

func (h *Handlers) HandleImport(w http.ResponseWriter, r *http.Request, viewer dashboard.ViewerContext) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := h.API.Import(r.Context(), queries.ImportInput{
		Viewer: viewer,
		Data:   data,
	})
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}
