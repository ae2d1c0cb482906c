package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-painel/components/dashboard"
)

type layoutService interface {
	Session(ctx context.Context, viewer dashboard.ViewerContext) (*dashboard.Store, error)
	ResolveCards(ctx context.Context, viewer dashboard.ViewerContext) ([]dashboard.ResolvedCard, error)
}

// LayoutResult pairs the layout snapshot with its resolved cards and dirty
// state so transports can render in one round trip.
type LayoutResult struct {
	Layout dashboard.Layout
	Cards  []dashboard.ResolvedCard
	Dirty  bool
}

// LayoutQuery executes read-only layout resolution.
type LayoutQuery struct {
	service layoutService
}

// NewLayoutQuery builds the query.
func NewLayoutQuery(service layoutService) *LayoutQuery {
	return &LayoutQuery{service: service}
}

var _ gocommand.Querier[dashboard.ViewerContext, LayoutResult] = (*LayoutQuery)(nil)

// Query resolves the layout for the viewer.
func (q *LayoutQuery) Query(ctx context.Context, viewer dashboard.ViewerContext) (LayoutResult, error) {
	store, err := q.service.Session(ctx, viewer)
	if err != nil {
		return LayoutResult{}, err
	}
	cards, err := q.service.ResolveCards(ctx, viewer)
	if err != nil {
		return LayoutResult{}, err
	}
	return LayoutResult{
		Layout: store.Snapshot(),
		Cards:  cards,
		Dirty:  store.IsDirty(),
	}, nil
}
