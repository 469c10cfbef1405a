package dashboard

import (
	"context"
	"fmt"
	"time"
)

// MetricsQuery is the common shape of repository calls: every widget
// fetches against the resolved date window for the session.
type MetricsQuery struct {
	Range  DateRange
	Zone   string
	Viewer ViewerContext
}

// InventoryKind distinguishes the two stock-tracking widgets.
type InventoryKind string

const (
	InventoryChemicals  InventoryKind = "chemicals"
	InventoryExplosives InventoryKind = "explosives"
)

// InventoryQuery requests stock levels for one inventory kind.
type InventoryQuery struct {
	Kind  InventoryKind
	Range DateRange
	Limit int
}

// ProductionReport aggregates ore movement over the window.
type ProductionReport struct {
	TonnesMined     float64
	TonnesProcessed float64
	OreGradeGPT     float64
	RecoveryRate    float64
	Daily           []ProductionDay
}

// ProductionDay is one day of ore movement.
type ProductionDay struct {
	Day    time.Time
	Tonnes float64
}

// GoldReport summarizes refined output for the window.
type GoldReport struct {
	WeightGrams       float64
	AveragePurity     float64
	EstimatedValueUSD float64
	Daily             []GoldDay
}

// GoldDay is one day of gold production.
type GoldDay struct {
	Day    time.Time
	Grams  float64
	Purity float64
}

// EnergyReport aggregates electricity/diesel consumption and cost.
type EnergyReport struct {
	ElectricityKWh float64
	DieselLiters   float64
	TotalCostUSD   float64
	Daily          []EnergyDay
}

// EnergyDay is one day of energy consumption.
type EnergyDay struct {
	Day            time.Time
	ElectricityKWh float64
	DieselLiters   float64
	CostUSD        float64
}

// SafetyReport captures incident history and the running streak.
type SafetyReport struct {
	DaysWithoutIncident int
	OpenIncidents       int
	Incidents           []SafetyIncident
}

// SafetyIncident is a single recorded incident.
type SafetyIncident struct {
	Day         time.Time
	Severity    string
	Description string
}

// EquipmentReport counts machinery by operational state.
type EquipmentReport struct {
	Operational      int
	UnderMaintenance int
	OutOfService     int
	Units            []EquipmentUnit
}

// EquipmentUnit is one machine with its current state.
type EquipmentUnit struct {
	Name   string
	Status string
	Zone   string
}

// InventoryReport lists stock items for chemicals or explosives.
type InventoryReport struct {
	Kind  InventoryKind
	Items []InventoryItem
}

// InventoryItem is one stocked material.
type InventoryItem struct {
	Name           string
	StockKg        float64
	ReorderLevelKg float64
	CostUSD        float64
}

// StockpileReport captures crushed/milled ore volumes.
type StockpileReport struct {
	CrushedTonnes float64
	MilledTonnes  float64
	Piles         []StockpilePile
}

// StockpilePile is one named stockpile.
type StockpilePile struct {
	Name   string
	Tonnes float64
}

// ExpenseReport breaks down operational spend for the window.
type ExpenseReport struct {
	TotalUSD   float64
	Categories []ExpenseCategory
}

// ExpenseCategory is one line of the spend breakdown.
type ExpenseCategory struct {
	Label     string
	AmountUSD float64
}

// LaborReport summarizes workforce activity.
type LaborReport struct {
	HeadCount     int
	ShiftsWorked  int
	OvertimeHours float64
	PayrollUSD    float64
}

// EnvironmentalReport aggregates water, emission, and waste metrics.
type EnvironmentalReport struct {
	WaterUsageM3 float64
	CO2Tonnes    float64
	WasteTonnes  float64
	Daily        []EnvironmentalDay
}

// EnvironmentalDay is one day of environmental measurements.
type EnvironmentalDay struct {
	Day     time.Time
	WaterM3 float64
	CO2Kg   float64
}

// ProductionReportRepository loads ore movement metrics.
type ProductionReportRepository interface {
	FetchProductionReport(ctx context.Context, query MetricsQuery) (ProductionReport, error)
}

// GoldProductionRepository loads refined gold output.
type GoldProductionRepository interface {
	FetchGoldReport(ctx context.Context, query MetricsQuery) (GoldReport, error)
}

// EnergyRepository loads energy consumption series.
type EnergyRepository interface {
	FetchEnergyReport(ctx context.Context, query MetricsQuery) (EnergyReport, error)
}

// SafetyRepository loads incident history.
type SafetyRepository interface {
	FetchSafetyReport(ctx context.Context, query MetricsQuery) (SafetyReport, error)
}

// EquipmentStatusRepository loads machinery state.
type EquipmentStatusRepository interface {
	FetchEquipmentReport(ctx context.Context, query MetricsQuery) (EquipmentReport, error)
}

// InventoryRepository loads chemical/explosive stock levels.
type InventoryRepository interface {
	FetchInventory(ctx context.Context, query InventoryQuery) (InventoryReport, error)
}

// StockpileRepository loads ore stockpile volumes.
type StockpileRepository interface {
	FetchStockpileReport(ctx context.Context, query MetricsQuery) (StockpileReport, error)
}

// ExpensesRepository loads operational spend.
type ExpensesRepository interface {
	FetchExpenseReport(ctx context.Context, query MetricsQuery) (ExpenseReport, error)
}

// LaborRepository loads workforce metrics.
type LaborRepository interface {
	FetchLaborReport(ctx context.Context, query MetricsQuery) (LaborReport, error)
}

// EnvironmentalRepository loads environmental measurements.
type EnvironmentalRepository interface {
	FetchEnvironmentalReport(ctx context.Context, query MetricsQuery) (EnvironmentalReport, error)
}

type productionProvider struct {
	repo ProductionReportRepository
}

// NewProductionProvider wires a ProductionReportRepository into a Provider.
func NewProductionProvider(repo ProductionReportRepository) Provider {
	if repo == nil {
		repo = DemoMiningRepository{}
	}
	return &productionProvider{repo: repo}
}

func (p *productionProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	report, err := p.repo.FetchProductionReport(ctx, metricsQueryFrom(meta))
	if err != nil {
		return nil, fmt.Errorf("production provider: %w", err)
	}
	trend := make([]map[string]any, 0, len(report.Daily))
	for _, day := range report.Daily {
		trend = append(trend, map[string]any{
			"day":    day.Day.Format("2006-01-02"),
			"tonnes": day.Tonnes,
		})
	}
	data := WidgetData{
		"tonnes_mined":     report.TonnesMined,
		"tonnes_processed": report.TonnesProcessed,
		"ore_grade_gpt":    report.OreGradeGPT,
		"recovery_rate":    report.RecoveryRate,
		"trend":            trend,
	}
	if target := float64Value(meta.Configuration["target_tonnes"]); target > 0 {
		data["target_tonnes"] = target
		data["target_attainment"] = report.TonnesMined / target
	}
	return data, nil
}

type goldProvider struct {
	repo GoldProductionRepository
}

// NewGoldProductionProvider wires a GoldProductionRepository into a Provider.
func NewGoldProductionProvider(repo GoldProductionRepository) Provider {
	if repo == nil {
		repo = DemoMiningRepository{}
	}
	return &goldProvider{repo: repo}
}

func (p *goldProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	report, err := p.repo.FetchGoldReport(ctx, metricsQueryFrom(meta))
	if err != nil {
		return nil, fmt.Errorf("gold production provider: %w", err)
	}
	unit := stringValue(meta.Configuration["unit"], "g")
	weight := report.WeightGrams
	switch unit {
	case "kg":
		weight = report.WeightGrams / 1000
	case "oz":
		weight = report.WeightGrams / 31.1034768
	}
	daily := make([]map[string]any, 0, len(report.Daily))
	for _, day := range report.Daily {
		daily = append(daily, map[string]any{
			"day":    day.Day.Format("2006-01-02"),
			"grams":  day.Grams,
			"purity": day.Purity,
		})
	}
	data := WidgetData{
		"weight":         weight,
		"unit":           unit,
		"average_purity": report.AveragePurity,
		"daily":          daily,
	}
	if boolValue(meta.Configuration["show_value"]) || meta.Configuration["show_value"] == nil {
		data["estimated_value_usd"] = report.EstimatedValueUSD
	}
	return data, nil
}

type safetyProvider struct {
	repo SafetyRepository
}

// NewSafetyProvider wires a SafetyRepository into a Provider.
func NewSafetyProvider(repo SafetyRepository) Provider {
	if repo == nil {
		repo = DemoMiningRepository{}
	}
	return &safetyProvider{repo: repo}
}

func (p *safetyProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	report, err := p.repo.FetchSafetyReport(ctx, metricsQueryFrom(meta))
	if err != nil {
		return nil, fmt.Errorf("safety provider: %w", err)
	}
	limit := intValue(meta.Configuration["limit"], 5)
	incidents := report.Incidents
	if limit > 0 && len(incidents) > limit {
		incidents = incidents[:limit]
	}
	items := make([]map[string]any, 0, len(incidents))
	for _, incident := range incidents {
		items = append(items, map[string]any{
			"day":         incident.Day.Format("2006-01-02"),
			"severity":    incident.Severity,
			"description": incident.Description,
		})
	}
	return WidgetData{
		"days_without_incident": report.DaysWithoutIncident,
		"open_incidents":        report.OpenIncidents,
		"incidents":             items,
	}, nil
}

type equipmentProvider struct {
	repo EquipmentStatusRepository
}

// NewEquipmentProvider wires an EquipmentStatusRepository into a Provider.
func NewEquipmentProvider(repo EquipmentStatusRepository) Provider {
	if repo == nil {
		repo = DemoMiningRepository{}
	}
	return &equipmentProvider{repo: repo}
}

func (p *equipmentProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	query := metricsQueryFrom(meta)
	query.Zone = stringValue(meta.Configuration["zone"], "")
	report, err := p.repo.FetchEquipmentReport(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("equipment provider: %w", err)
	}
	units := make([]map[string]any, 0, len(report.Units))
	includeMaint := meta.Configuration["include_maintenance"] == nil || boolValue(meta.Configuration["include_maintenance"])
	for _, unit := range report.Units {
		if !includeMaint && unit.Status == "maintenance" {
			continue
		}
		units = append(units, map[string]any{
			"name":   unit.Name,
			"status": unit.Status,
			"zone":   unit.Zone,
		})
	}
	return WidgetData{
		"operational":       report.Operational,
		"under_maintenance": report.UnderMaintenance,
		"out_of_service":    report.OutOfService,
		"units":             units,
	}, nil
}

type inventoryProvider struct {
	kind InventoryKind
	repo InventoryRepository
}

// NewInventoryProvider wires an InventoryRepository into a Provider for
// one inventory kind.
func NewInventoryProvider(kind InventoryKind, repo InventoryRepository) Provider {
	if repo == nil {
		repo = DemoMiningRepository{}
	}
	return &inventoryProvider{kind: kind, repo: repo}
}

func (p *inventoryProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	limit := intValue(meta.Configuration["limit"], 20)
	report, err := p.repo.FetchInventory(ctx, InventoryQuery{
		Kind:  p.kind,
		Range: meta.Range,
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("%s inventory provider: %w", p.kind, err)
	}
	threshold := float64Value(meta.Configuration["low_stock_threshold"])
	items := make([]map[string]any, 0, len(report.Items))
	low := 0
	for _, item := range report.Items {
		reorder := item.ReorderLevelKg
		if threshold > 0 {
			reorder = threshold
		}
		isLow := reorder > 0 && item.StockKg <= reorder
		if isLow {
			low++
		}
		items = append(items, map[string]any{
			"name":      item.Name,
			"stock_kg":  item.StockKg,
			"cost_usd":  item.CostUSD,
			"low_stock": isLow,
		})
	}
	return WidgetData{
		"kind":      string(p.kind),
		"items":     items,
		"low_stock": low,
	}, nil
}

type stockpileProvider struct {
	repo StockpileRepository
}

// NewStockpileProvider wires a StockpileRepository into a Provider.
func NewStockpileProvider(repo StockpileRepository) Provider {
	if repo == nil {
		repo = DemoMiningRepository{}
	}
	return &stockpileProvider{repo: repo}
}

func (p *stockpileProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	report, err := p.repo.FetchStockpileReport(ctx, metricsQueryFrom(meta))
	if err != nil {
		return nil, fmt.Errorf("stockpile provider: %w", err)
	}
	piles := make([]map[string]any, 0, len(report.Piles))
	for _, pile := range report.Piles {
		piles = append(piles, map[string]any{
			"name":   pile.Name,
			"tonnes": pile.Tonnes,
		})
	}
	return WidgetData{
		"crushed_tonnes": report.CrushedTonnes,
		"milled_tonnes":  report.MilledTonnes,
		"piles":          piles,
	}, nil
}

type expensesProvider struct {
	repo ExpensesRepository
}

// NewExpensesProvider wires an ExpensesRepository into a Provider.
func NewExpensesProvider(repo ExpensesRepository) Provider {
	if repo == nil {
		repo = DemoMiningRepository{}
	}
	return &expensesProvider{repo: repo}
}

func (p *expensesProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	report, err := p.repo.FetchExpenseReport(ctx, metricsQueryFrom(meta))
	if err != nil {
		return nil, fmt.Errorf("expenses provider: %w", err)
	}
	categories := make([]map[string]any, 0, len(report.Categories))
	for _, cat := range report.Categories {
		categories = append(categories, map[string]any{
			"label":      cat.Label,
			"amount_usd": cat.AmountUSD,
		})
	}
	return WidgetData{
		"total_usd":  report.TotalUSD,
		"categories": categories,
	}, nil
}

type laborProvider struct {
	repo LaborRepository
}

// NewLaborProvider wires a LaborRepository into a Provider.
func NewLaborProvider(repo LaborRepository) Provider {
	if repo == nil {
		repo = DemoMiningRepository{}
	}
	return &laborProvider{repo: repo}
}

func (p *laborProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	report, err := p.repo.FetchLaborReport(ctx, metricsQueryFrom(meta))
	if err != nil {
		return nil, fmt.Errorf("labor provider: %w", err)
	}
	return WidgetData{
		"head_count":     report.HeadCount,
		"shifts_worked":  report.ShiftsWorked,
		"overtime_hours": report.OvertimeHours,
		"payroll_usd":    report.PayrollUSD,
	}, nil
}

func metricsQueryFrom(meta WidgetContext) MetricsQuery {
	return MetricsQuery{
		Range:  meta.Range,
		Viewer: meta.Viewer,
	}
}

func intValue(v any, fallback int) int {
	switch value := v.(type) {
	case int:
		return value
	case int64:
		return int(value)
	case float64:
		return int(value)
	}
	return fallback
}
