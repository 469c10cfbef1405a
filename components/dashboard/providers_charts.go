package dashboard

import (
	"context"
	"fmt"
)

// EnergyChartProvider composes energy consumption data into an echarts
// widget: one line per source plus the aggregate cost.
type EnergyChartProvider struct {
	repo     EnergyRepository
	renderer *EChartsRenderer
}

// NewEnergyChartProvider builds a provider backed by the given repository.
func NewEnergyChartProvider(repo EnergyRepository, renderer *EChartsRenderer) Provider {
	if renderer == nil {
		renderer = NewEChartsRenderer("line")
	}
	return &EnergyChartProvider{repo: repo, renderer: renderer}
}

// Fetch renders the energy consumption widget.
func (p *EnergyChartProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	if p.repo == nil {
		return nil, fmt.Errorf("energy chart provider: repository is required")
	}
	report, err := p.repo.FetchEnergyReport(ctx, metricsQueryFrom(meta))
	if err != nil {
		return nil, fmt.Errorf("energy chart provider: %w", err)
	}

	source := stringValue(meta.Configuration["source"], "all")
	electricity := make([]ChartPoint, 0, len(report.Daily))
	diesel := make([]ChartPoint, 0, len(report.Daily))
	for _, day := range report.Daily {
		label := day.Day.Format("Jan 2")
		electricity = append(electricity, ChartPoint{Label: label, Value: day.ElectricityKWh})
		diesel = append(diesel, ChartPoint{Label: label, Value: day.DieselLiters})
	}

	var series []ChartSeries
	switch source {
	case "electricity":
		series = []ChartSeries{{Name: "Electricity (kWh)", Points: electricity}}
	case "diesel":
		series = []ChartSeries{{Name: "Diesel (L)", Points: diesel}}
	default:
		series = []ChartSeries{
			{Name: "Electricity (kWh)", Points: electricity},
			{Name: "Diesel (L)", Points: diesel},
		}
	}

	title := translateOrFallback(ctx, meta.Translator,
		"dashboard.widget.energy.title", meta.Viewer.Locale, "Energy Consumption", nil)
	xAxis := []string{}
	if len(series) > 0 {
		xAxis = axisLabels(series[0].Points)
	}
	html, err := p.renderer.RenderHTML(title, "", xAxis, series, meta.Viewer, meta.Range)
	if err != nil {
		return nil, fmt.Errorf("energy chart provider: %w", err)
	}

	data := WidgetData{
		"chart_html":      html,
		"electricity_kwh": report.ElectricityKWh,
		"diesel_liters":   report.DieselLiters,
	}
	if meta.Configuration["show_cost"] == nil || boolValue(meta.Configuration["show_cost"]) {
		data["total_cost_usd"] = report.TotalCostUSD
	}
	return data, nil
}

// EnvironmentalChartProvider renders water/emission series as a bar chart
// with waste totals alongside.
type EnvironmentalChartProvider struct {
	repo     EnvironmentalRepository
	renderer *EChartsRenderer
}

// NewEnvironmentalChartProvider builds a provider backed by the given repository.
func NewEnvironmentalChartProvider(repo EnvironmentalRepository, renderer *EChartsRenderer) Provider {
	if renderer == nil {
		renderer = NewEChartsRenderer("bar")
	}
	return &EnvironmentalChartProvider{repo: repo, renderer: renderer}
}

// Fetch renders the environmental impact widget.
func (p *EnvironmentalChartProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	if p.repo == nil {
		return nil, fmt.Errorf("environmental chart provider: repository is required")
	}
	report, err := p.repo.FetchEnvironmentalReport(ctx, metricsQueryFrom(meta))
	if err != nil {
		return nil, fmt.Errorf("environmental chart provider: %w", err)
	}

	water := make([]ChartPoint, 0, len(report.Daily))
	emissions := make([]ChartPoint, 0, len(report.Daily))
	for _, day := range report.Daily {
		label := day.Day.Format("Jan 2")
		water = append(water, ChartPoint{Label: label, Value: day.WaterM3})
		emissions = append(emissions, ChartPoint{Label: label, Value: day.CO2Kg})
	}
	series := []ChartSeries{
		{Name: "Water (m³)", Points: water},
		{Name: "CO₂ (kg)", Points: emissions},
	}

	title := translateOrFallback(ctx, meta.Translator,
		"dashboard.widget.environmental.title", meta.Viewer.Locale, "Environmental Impact", nil)
	html, err := p.renderer.RenderHTML(title, "", axisLabels(water), series, meta.Viewer, meta.Range)
	if err != nil {
		return nil, fmt.Errorf("environmental chart provider: %w", err)
	}

	return WidgetData{
		"chart_html":     html,
		"water_usage_m3": report.WaterUsageM3,
		"co2_tonnes":     report.CO2Tonnes,
		"waste_tonnes":   report.WasteTonnes,
	}, nil
}
