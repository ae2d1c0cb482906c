package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	dashboard "github.com/goliatone/go-painel/components/dashboard"
	"github.com/goliatone/go-painel/components/dashboard/commands"
	"github.com/goliatone/go-painel/components/dashboard/queries"
)

type stubExecutor struct {
	editModeCalls int
	addCalls      int
	removeCalls   int
	hideCalls     int
	moveCalls     int
	updateCalls   int
	saveCalls     int
	resetCalls    int
	lastHide      commands.HideCardInput
	lastMove      commands.MoveCardInput
	err           error
}

func (s *stubExecutor) SetEditMode(context.Context, commands.SetEditModeInput) error {
	s.editModeCalls++
	return s.err
}

func (s *stubExecutor) AddCard(context.Context, commands.AddCardInput) error {
	s.addCalls++
	return s.err
}

func (s *stubExecutor) RemoveCard(context.Context, commands.RemoveCardInput) error {
	s.removeCalls++
	return s.err
}

func (s *stubExecutor) HideCard(_ context.Context, msg commands.HideCardInput) error {
	s.hideCalls++
	s.lastHide = msg
	return s.err
}

func (s *stubExecutor) MoveCard(_ context.Context, msg commands.MoveCardInput) error {
	s.moveCalls++
	s.lastMove = msg
	return s.err
}

func (s *stubExecutor) UpdateCard(context.Context, commands.UpdateCardInput) error {
	s.updateCalls++
	return s.err
}

func (s *stubExecutor) SaveLayout(context.Context, commands.SaveLayoutInput) error {
	s.saveCalls++
	return s.err
}

func (s *stubExecutor) ResetLayout(context.Context, commands.ResetLayoutInput) error {
	s.resetCalls++
	return s.err
}

func (s *stubExecutor) Layout(context.Context, dashboard.ViewerContext) (queries.LayoutResult, error) {
	return queries.LayoutResult{}, s.err
}

func (s *stubExecutor) Export(context.Context, dashboard.ViewerContext) ([]byte, error) {
	return []byte(`{"cards_config":[]}`), s.err
}

func (s *stubExecutor) Import(context.Context, queries.ImportInput) (queries.ImportResult, error) {
	return queries.ImportResult{}, s.err
}

func testViewer() dashboard.ViewerContext {
	return dashboard.ViewerContext{UserID: "user-1"}
}

func TestHandleAddCard(t *testing.T) {
	stub := &stubExecutor{}
	api := &Handlers{API: stub}
	buf, _ := json.Marshal(dashboard.Card{Type: dashboard.CardStandard, Title: "Ouvidoria"})
	req := httptest.NewRequest(http.MethodPost, "/painel/cards", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleAddCard(rec, req, testViewer())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if stub.addCalls != 1 {
		t.Fatalf("expected add to execute")
	}
}

func TestHandleRemoveCardErrorMapping(t *testing.T) {
	stub := &stubExecutor{err: dashboard.ErrNotDeletable}
	api := &Handlers{API: stub}
	req := httptest.NewRequest(http.MethodDelete, "/painel/cards/c1", nil)
	rec := httptest.NewRecorder()
	api.HandleRemoveCard(rec, req, testViewer(), "c1")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for system card, got %d", rec.Code)
	}
}

func TestHandleHideCardRestore(t *testing.T) {
	stub := &stubExecutor{}
	api := &Handlers{API: stub}
	req := httptest.NewRequest(http.MethodPost, "/painel/cards/c1/hide", bytes.NewReader([]byte(`{"restore":true}`)))
	rec := httptest.NewRecorder()
	api.HandleHideCard(rec, req, testViewer(), "c1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !stub.lastHide.Restore {
		t.Fatalf("expected restore flag propagation")
	}
}

func TestHandleMoveCard(t *testing.T) {
	stub := &stubExecutor{}
	api := &Handlers{API: stub}
	req := httptest.NewRequest(http.MethodPost, "/painel/cards/move", bytes.NewReader([]byte(`{"card_id":"c1","to_index":3}`)))
	rec := httptest.NewRecorder()
	api.HandleMoveCard(rec, req, testViewer())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.lastMove.CardID != "c1" || stub.lastMove.ToIndex != 3 {
		t.Fatalf("expected move payload propagation, got %+v", stub.lastMove)
	}
}

func TestHandleMoveCardEditModeConflict(t *testing.T) {
	stub := &stubExecutor{err: dashboard.ErrEditModeRequired}
	api := &Handlers{API: stub}
	req := httptest.NewRequest(http.MethodPost, "/painel/cards/move", bytes.NewReader([]byte(`{"card_id":"c1","to_index":0}`)))
	rec := httptest.NewRecorder()
	api.HandleMoveCard(rec, req, testViewer())
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 outside edit mode, got %d", rec.Code)
	}
}

func TestHandleExport(t *testing.T) {
	stub := &stubExecutor{}
	api := &Handlers{API: stub}
	req := httptest.NewRequest(http.MethodGet, "/painel/export", nil)
	rec := httptest.NewRecorder()
	api.HandleExport(rec, req, testViewer())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json content type, got %q", ct)
	}
}

func TestHandleImportMalformed(t *testing.T) {
	stub := &stubExecutor{err: dashboard.ErrMalformedJSON}
	api := &Handlers{API: stub}
	req := httptest.NewRequest(http.MethodPost, "/painel/import", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	api.HandleImport(rec, req, testViewer())
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed payload, got %d", rec.Code)
	}
}
