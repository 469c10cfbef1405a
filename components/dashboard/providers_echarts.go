package dashboard

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// ChartSeries is a named sequence of points rendered as one series.
type ChartSeries struct {
	Name   string
	Points []ChartPoint
}

// ChartPoint is a single labeled value.
type ChartPoint struct {
	Label string
	Value float64
}

// ThemeResolver selects a chart theme per viewer.
type ThemeResolver func(ViewerContext) string

// EChartsRenderer renders server-side chart HTML for the given chart type.
type EChartsRenderer struct {
	chartType     string
	cache         RenderCache
	theme         string
	themeResolver ThemeResolver
	assetsHost    string
}

// EChartsOption customizes renderer behavior.
type EChartsOption func(*EChartsRenderer)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) EChartsOption {
	return func(r *EChartsRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets a static theme (defaults to Walden).
func WithChartTheme(theme string) EChartsOption {
	return func(r *EChartsRenderer) {
		r.theme = theme
	}
}

// WithChartThemeResolver resolves themes dynamically per viewer.
func WithChartThemeResolver(resolver ThemeResolver) EChartsOption {
	return func(r *EChartsRenderer) {
		r.themeResolver = resolver
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) EChartsOption {
	return func(r *EChartsRenderer) {
		r.assetsHost = host
	}
}

// NewEChartsRenderer builds a renderer for a specific chart type
// (bar, line, pie, gauge).
func NewEChartsRenderer(chartType string, options ...EChartsOption) *EChartsRenderer {
	r := &EChartsRenderer{
		chartType: strings.ToLower(chartType),
		cache:     sharedChartCache,
		theme:     types.ThemeWalden,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// RenderHTML produces chart markup for the series, memoized through the
// render cache when one is configured.
func (r *EChartsRenderer) RenderHTML(title, subtitle string, xAxis []string, series []ChartSeries, viewer ViewerContext, rng DateRange) (string, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("dashboard: chart series is required")
	}
	theme := r.resolveTheme(viewer)
	names := make([]string, len(series))
	for i, s := range series {
		names[i] = s.Name
	}
	// Series composition is part of the identity: the same widget can
	// render different series sets depending on its configuration.
	key := CacheKey(r.chartType+":"+title+":"+strings.Join(names, ","), theme, rng)
	if r.cache == nil {
		return r.render(title, subtitle, xAxis, series, theme)
	}
	return r.cache.GetOrRender(key, func() (string, error) {
		return r.render(title, subtitle, xAxis, series, theme)
	})
}

func (r *EChartsRenderer) render(title, subtitle string, xAxis []string, series []ChartSeries, theme string) (string, error) {
	switch r.chartType {
	case "bar":
		return r.renderBarChart(title, subtitle, xAxis, series, theme)
	case "line":
		return r.renderLineChart(title, subtitle, xAxis, series, theme)
	case "pie":
		return r.renderPieChart(title, subtitle, series, theme)
	case "gauge":
		return r.renderGaugeChart(title, series, theme)
	default:
		return "", fmt.Errorf("dashboard: unsupported chart type %q", r.chartType)
	}
}

func (r *EChartsRenderer) renderBarChart(title, subtitle string, xAxis []string, series []ChartSeries, theme string) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalChartOptions(title, subtitle, theme)...)
	bar.SetXAxis(xAxis)
	for _, s := range series {
		bar.AddSeries(s.Name, toBarData(s.Points))
	}
	return renderChart(bar)
}

func (r *EChartsRenderer) renderLineChart(title, subtitle string, xAxis []string, series []ChartSeries, theme string) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(r.globalChartOptions(title, subtitle, theme)...)
	line.SetXAxis(xAxis)
	for _, s := range series {
		line.AddSeries(s.Name, toLineData(s.Points))
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChart(line)
}

func (r *EChartsRenderer) renderPieChart(title, subtitle string, series []ChartSeries, theme string) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(r.globalChartOptions(title, subtitle, theme)...)
	for _, s := range series {
		pie.AddSeries(s.Name, toPieData(s.Points))
	}
	return renderChart(pie)
}

func (r *EChartsRenderer) renderGaugeChart(title string, series []ChartSeries, theme string) (string, error) {
	gauge := charts.NewGauge()
	gauge.SetGlobalOptions(r.globalChartOptions(title, "", theme)...)
	for _, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		gauge.AddSeries(s.Name, []opts.GaugeData{
			{Name: s.Name, Value: s.Points[0].Value},
		})
	}
	return renderChart(gauge)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *EChartsRenderer) globalChartOptions(title, subtitle, theme string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func (r *EChartsRenderer) resolveTheme(viewer ViewerContext) string {
	if r.themeResolver != nil {
		if theme := r.themeResolver(viewer); theme != "" {
			return theme
		}
	}
	return r.theme
}

func toBarData(points []ChartPoint) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{Value: point.Value}
	}
	return data
}

func toLineData(points []ChartPoint) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{Value: point.Value}
	}
	return data
}

func toPieData(points []ChartPoint) []opts.PieData {
	data := make([]opts.PieData, len(points))
	for i, point := range points {
		data[i] = opts.PieData{Name: point.Label, Value: point.Value}
	}
	return data
}

func axisLabels(points []ChartPoint) []string {
	labels := make([]string, len(points))
	for i, point := range points {
		labels[i] = point.Label
	}
	return labels
}

func stringValue(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func float64Value(v any) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case float32:
		return float64(value)
	case int:
		return float64(value)
	case int64:
		return float64(value)
	}
	return 0
}

func boolValue(v any) bool {
	b, ok := v.(bool)
	return ok && b
}
