package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-painel/components/dashboard"
)

// ImportInput carries an exported document to load into the viewer's session.
type ImportInput struct {
	Viewer dashboard.ViewerContext `json:"viewer"`
	Data   []byte                  `json:"data"`
}

// ImportResult returns the replaced layout plus per-card warnings for
// entries that could not be imported.
type ImportResult struct {
	Layout   dashboard.Layout
	Warnings []dashboard.ImportWarning
}

type importService interface {
	Import(ctx context.Context, viewer dashboard.ViewerContext, data []byte) (dashboard.Layout, []dashboard.ImportWarning, error)
}

// ImportQuery parses a document and replaces the live session layout. The
// result is not persisted until the viewer saves.
type ImportQuery struct {
	service importService
}

// NewImportQuery builds the query.
func NewImportQuery(service importService) *ImportQuery {
	return &ImportQuery{service: service}
}

var _ gocommand.Querier[ImportInput, ImportResult] = (*ImportQuery)(nil)

// Query imports the document into the viewer's session.
func (q *ImportQuery) Query(ctx context.Context, input ImportInput) (ImportResult, error) {
	layout, warnings, err := q.service.Import(ctx, input.Viewer, input.Data)
	if err != nil {
		return ImportResult{}, err
	}
	return ImportResult{Layout: layout, Warnings: warnings}, nil
}
