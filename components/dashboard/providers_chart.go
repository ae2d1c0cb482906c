package dashboard

import (
	"context"
	"fmt"
	"strings"
)

// OriginCount is one slice of the demandas-by-origin breakdown.
type OriginCount struct {
	Origin string
	Count  int
}

// OriginQuery describes the requested breakdown.
type OriginQuery struct {
	Period string
	Viewer ViewerContext
}

// OriginRepository fetches the demandas-per-origin breakdown rendered by the
// origin chart card.
type OriginRepository interface {
	OriginBreakdown(ctx context.Context, query OriginQuery) ([]OriginCount, error)
}

// OriginDemandChartProvider composes the origin breakdown into an echarts card.
type OriginDemandChartProvider struct {
	repo     OriginRepository
	renderer *EChartsProvider
}

// NewOriginDemandChartProvider builds a provider backed by the given repository.
func NewOriginDemandChartProvider(repo OriginRepository, renderer *EChartsProvider) Provider {
	if renderer == nil {
		renderer = NewEChartsProvider("bar")
	}
	return &OriginDemandChartProvider{
		repo:     repo,
		renderer: renderer,
	}
}

// Fetch renders the origin demand chart card.
func (p *OriginDemandChartProvider) Fetch(ctx context.Context, meta CardContext) (CardData, error) {
	if p.repo == nil {
		return nil, fmt.Errorf("dashboard: origin chart provider requires a repository")
	}

	cfg := meta.Card.Options
	if cfg == nil {
		cfg = map[string]any{}
	}
	period := strings.ToLower(stringValue(cfg["period"], "30d"))

	counts, err := p.repo.OriginBreakdown(ctx, OriginQuery{
		Period: period,
		Viewer: meta.Viewer,
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard: origin chart provider: %w", err)
	}

	points := make([]map[string]any, 0, len(counts))
	total := 0
	for _, count := range counts {
		total += count.Count
		points = append(points, map[string]any{
			"name":  titleize(count.Origin),
			"value": float64(count.Count),
		})
	}

	temp := meta
	temp.Card.Options = map[string]any{
		"title":    meta.Card.Title,
		"subtitle": strings.ToUpper(period),
		"series": []map[string]any{{
			"name": "Demandas",
			"data": points,
		}},
		"theme": cfg["theme"],
	}

	data, err := p.renderer.Fetch(ctx, temp)
	if err != nil {
		return nil, err
	}
	data["total"] = total
	data["period"] = period
	return data, nil
}

func titleize(value string) string {
	if value == "" {
		return value
	}
	lower := strings.ToLower(value)
	return strings.ToUpper(string(lower[0])) + lower[1:]
}

// NewStaticOriginRepository returns a repository that always serves the
// provided counts.
func NewStaticOriginRepository(counts []OriginCount) OriginRepository {
	return staticOriginRepository{counts: counts}
}

type staticOriginRepository struct {
	counts []OriginCount
}

func (s staticOriginRepository) OriginBreakdown(_ context.Context, _ OriginQuery) ([]OriginCount, error) {
	out := make([]OriginCount, len(s.counts))
	copy(out, s.counts)
	return out, nil
}

func defaultOriginBreakdown() []OriginCount {
	return []OriginCount{
		{Origin: "portal", Count: 182},
		{Origin: "telefone", Count: 96},
		{Origin: "presencial", Count: 43},
		{Origin: "aplicativo", Count: 27},
	}
}
