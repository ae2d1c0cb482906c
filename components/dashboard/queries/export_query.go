package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-painel/components/dashboard"
)

type exportService interface {
	Export(ctx context.Context, viewer dashboard.ViewerContext) ([]byte, error)
}

// ExportQuery serializes the viewer's layout to a portable JSON document.
type ExportQuery struct {
	service exportService
}

// NewExportQuery builds the query.
func NewExportQuery(service exportService) *ExportQuery {
	return &ExportQuery{service: service}
}

var _ gocommand.Querier[dashboard.ViewerContext, []byte] = (*ExportQuery)(nil)

// Query exports the layout document.
func (q *ExportQuery) Query(ctx context.Context, viewer dashboard.ViewerContext) ([]byte, error) {
	return q.service.Export(ctx, viewer)
}
