package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const chartHeight = "320px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// ThemeResolver selects a chart theme per viewer.
type ThemeResolver func(ViewerContext) string

// EChartsProvider renders chart cards to self-contained HTML server-side.
// One provider instance draws one chart type (bar, line or pie).
type EChartsProvider struct {
	chartType     string
	cache         RenderCache
	theme         string
	themeResolver ThemeResolver
	assetsHost    string
}

// EChartsProviderOption customizes provider behavior.
type EChartsProviderOption func(*EChartsProvider)

// WithChartCache injects a render cache. Passing nil disables caching.
func WithChartCache(cache RenderCache) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.cache = cache
	}
}

// WithChartTheme sets a static theme (defaults to Walden).
func WithChartTheme(theme string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.theme = theme
	}
}

// WithChartThemeResolver resolves the theme per viewer. A card-level
// "theme" option still wins over the resolver.
func WithChartThemeResolver(resolver ThemeResolver) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.themeResolver = resolver
	}
}

// WithChartAssetsHost points the generated markup at a different ECharts
// JS host.
func WithChartAssetsHost(host string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.assetsHost = host
	}
}

// NewEChartsProvider builds a provider for a specific chart type.
func NewEChartsProvider(chartType string, options ...EChartsProviderOption) *EChartsProvider {
	p := &EChartsProvider{
		chartType: strings.ToLower(chartType),
		cache:     sharedChartCache,
		theme:     types.ThemeWalden,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// chartFigure is everything needed to draw one chart, resolved from the
// card options before rendering.
type chartFigure struct {
	title    string
	subtitle string
	axis     []string
	series   []ChartSeries
	theme    string
}

// Fetch converts card options into go-echarts markup.
func (p *EChartsProvider) Fetch(ctx context.Context, meta CardContext) (CardData, error) {
	cfg := meta.Card.Options
	if cfg == nil {
		cfg = map[string]any{}
	}

	fig, err := p.figureFrom(ctx, cfg, meta)
	if err != nil {
		return nil, err
	}

	html, err := p.cachedRender(meta.Card, cfg, fig)
	if err != nil {
		return nil, err
	}

	return CardData{
		"chart_html": html,
		"chart_type": p.chartType,
		"title":      fig.title,
		"subtitle":   fig.subtitle,
		"theme":      fig.theme,
	}, nil
}

func (p *EChartsProvider) figureFrom(ctx context.Context, cfg map[string]any, meta CardContext) (chartFigure, error) {
	fig := chartFigure{
		title:    stringValue(cfg["title"], meta.Card.Title),
		subtitle: stringValue(cfg["subtitle"], meta.Card.Subtitle),
		series:   parseChartSeries(cfg["series"]),
	}
	if meta.Translator != nil {
		key := fmt.Sprintf("painel.card.%s.title", meta.Card.Type)
		fig.title = translateOrFallback(ctx, meta.Translator, key, meta.Viewer.Locale, fig.title, nil)
	}
	if len(fig.series) == 0 {
		return fig, fmt.Errorf("dashboard: chart series is required")
	}

	fig.axis = stringSliceValue(cfg["x_axis"])
	if len(fig.axis) == 0 {
		fig.axis = inferredAxisLabels(fig.series)
	}

	fig.theme = p.resolveTheme(meta.Viewer)
	if override := strings.TrimSpace(stringValue(cfg["theme"], "")); override != "" {
		fig.theme = override
	}
	return fig, nil
}

func (p *EChartsProvider) cachedRender(card Card, cfg map[string]any, fig chartFigure) (string, error) {
	render := func() (string, error) { return p.draw(fig) }
	if p.cache == nil {
		return render()
	}
	key := fmt.Sprintf("%s:%s:%s:%s", card.Type, card.ID, p.chartType, optionsHash(cfg))
	return p.cache.GetOrRender(key, render)
}

func (p *EChartsProvider) draw(fig chartFigure) (string, error) {
	base := p.baseOptions(fig)

	var renderable interface{ Render(io.Writer) error }
	switch p.chartType {
	case "bar":
		bar := charts.NewBar()
		bar.SetGlobalOptions(base...)
		bar.SetXAxis(fig.axis)
		for _, s := range fig.series {
			items := make([]opts.BarData, len(s.Points))
			for i, pt := range s.Points {
				items[i] = opts.BarData{Name: pt.Label, Value: pt.Value}
			}
			bar.AddSeries(s.Name, items)
		}
		renderable = bar
	case "line":
		line := charts.NewLine()
		line.SetGlobalOptions(base...)
		line.SetXAxis(fig.axis)
		for _, s := range fig.series {
			items := make([]opts.LineData, len(s.Points))
			for i, pt := range s.Points {
				items[i] = opts.LineData{Name: pt.Label, Value: pt.Value}
			}
			line.AddSeries(s.Name, items)
		}
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		renderable = line
	case "pie":
		pie := charts.NewPie()
		pie.SetGlobalOptions(base...)
		for _, s := range fig.series {
			items := make([]opts.PieData, len(s.Points))
			for i, pt := range s.Points {
				name := pt.Label
				if name == "" {
					name = fmt.Sprintf("Fatia %d", i+1)
				}
				items[i] = opts.PieData{Name: name, Value: pt.Value}
			}
			pie.AddSeries(s.Name, items)
		}
		renderable = pie
	default:
		return "", fmt.Errorf("dashboard: unsupported chart type: %s", p.chartType)
	}

	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (p *EChartsProvider) baseOptions(fig chartFigure) []charts.GlobalOpts {
	init := opts.Initialization{
		Theme:  fig.theme,
		Width:  "100%",
		Height: chartHeight,
	}
	if p.assetsHost != "" {
		init.AssetsHost = p.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: fig.title, Subtitle: fig.subtitle}),
		charts.WithInitializationOpts(init),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func (p *EChartsProvider) resolveTheme(viewer ViewerContext) string {
	if p.themeResolver != nil {
		if theme := p.themeResolver(viewer); theme != "" {
			return theme
		}
	}
	if p.theme != "" {
		return p.theme
	}
	return types.ThemeWalden
}

// ChartSeries is one legend entry and its plotted values.
type ChartSeries struct {
	Name   string
	Points []ChartPoint
}

// ChartPoint is a single value, optionally labeled.
type ChartPoint struct {
	Label string
	Value float64
}

// parseChartSeries accepts the loosely-typed "series" card option. Entries
// that are not objects, or that carry no usable data, are skipped.
func parseChartSeries(v any) []ChartSeries {
	var items []map[string]any
	switch val := v.(type) {
	case []map[string]any:
		items = val
	case []any:
		for _, item := range val {
			if m, ok := item.(map[string]any); ok {
				items = append(items, m)
			}
		}
	default:
		return nil
	}

	out := make([]ChartSeries, 0, len(items))
	for _, m := range items {
		s := ChartSeries{
			Name:   stringValue(m["name"], "Série"),
			Points: parseChartPoints(m["data"]),
		}
		if len(s.Points) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func parseChartPoints(v any) []ChartPoint {
	items := anySlice(v)
	if items == nil {
		return nil
	}
	points := make([]ChartPoint, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			points = append(points, ChartPoint{
				Label: stringValue(m["name"], ""),
				Value: float64Value(m["value"]),
			})
			continue
		}
		if value, ok := numericValue(item); ok {
			points = append(points, ChartPoint{Value: value})
		}
	}
	return points
}

// anySlice widens the typed slices JSON decoding or Go literals can
// produce into a uniform []any.
func anySlice(v any) []any {
	switch val := v.(type) {
	case []any:
		return val
	case []float64:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	case []int:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	default:
		return nil
	}
}

// inferredAxisLabels derives x-axis labels from the longest series when the
// card does not configure them, falling back to positional names.
func inferredAxisLabels(series []ChartSeries) []string {
	var longest []ChartPoint
	for _, s := range series {
		if len(s.Points) > len(longest) {
			longest = s.Points
		}
	}
	if longest == nil {
		return nil
	}
	labels := make([]string, len(longest))
	for i, point := range longest {
		labels[i] = point.Label
		if labels[i] == "" {
			labels[i] = fmt.Sprintf("Item %d", i+1)
		}
	}
	return labels
}

func stringSliceValue(v any) []string {
	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...)
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func stringValue(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func numericValue(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func float64Value(v any) float64 {
	f, _ := numericValue(v)
	return f
}
