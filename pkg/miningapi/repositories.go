package miningapi

import (
	"context"

	dashboard "github.com/minetrics/go-minedash/components/dashboard"
)

// Repositories bundles every dashboard repository over one client so
// hosts can wire a live API in a single call.
type Repositories struct {
	client Client
}

// NewRepositories adapts a client into the full repository set.
func NewRepositories(client Client) *Repositories {
	return &Repositories{client: client}
}

// FetchProductionReport implements dashboard.ProductionReportRepository.
func (r *Repositories) FetchProductionReport(ctx context.Context, query dashboard.MetricsQuery) (dashboard.ProductionReport, error) {
	return r.client.FetchProduction(ctx, query)
}

// FetchGoldReport implements dashboard.GoldProductionRepository.
func (r *Repositories) FetchGoldReport(ctx context.Context, query dashboard.MetricsQuery) (dashboard.GoldReport, error) {
	return r.client.FetchGold(ctx, query)
}

// FetchEnergyReport implements dashboard.EnergyRepository.
func (r *Repositories) FetchEnergyReport(ctx context.Context, query dashboard.MetricsQuery) (dashboard.EnergyReport, error) {
	return r.client.FetchEnergy(ctx, query)
}

// FetchSafetyReport implements dashboard.SafetyRepository.
func (r *Repositories) FetchSafetyReport(ctx context.Context, query dashboard.MetricsQuery) (dashboard.SafetyReport, error) {
	return r.client.FetchSafety(ctx, query)
}

// FetchEquipmentReport implements dashboard.EquipmentStatusRepository.
func (r *Repositories) FetchEquipmentReport(ctx context.Context, query dashboard.MetricsQuery) (dashboard.EquipmentReport, error) {
	return r.client.FetchEquipment(ctx, query)
}

// FetchInventory implements dashboard.InventoryRepository.
func (r *Repositories) FetchInventory(ctx context.Context, query dashboard.InventoryQuery) (dashboard.InventoryReport, error) {
	return r.client.FetchInventory(ctx, query)
}

// FetchStockpileReport implements dashboard.StockpileRepository.
func (r *Repositories) FetchStockpileReport(ctx context.Context, query dashboard.MetricsQuery) (dashboard.StockpileReport, error) {
	return r.client.FetchStockpile(ctx, query)
}

// FetchExpenseReport implements dashboard.ExpensesRepository.
func (r *Repositories) FetchExpenseReport(ctx context.Context, query dashboard.MetricsQuery) (dashboard.ExpenseReport, error) {
	return r.client.FetchExpenses(ctx, query)
}

// FetchLaborReport implements dashboard.LaborRepository.
func (r *Repositories) FetchLaborReport(ctx context.Context, query dashboard.MetricsQuery) (dashboard.LaborReport, error) {
	return r.client.FetchLabor(ctx, query)
}

// FetchEnvironmentalReport implements dashboard.EnvironmentalRepository.
func (r *Repositories) FetchEnvironmentalReport(ctx context.Context, query dashboard.MetricsQuery) (dashboard.EnvironmentalReport, error) {
	return r.client.FetchEnvironmental(ctx, query)
}

var (
	_ dashboard.ProductionReportRepository = (*Repositories)(nil)
	_ dashboard.GoldProductionRepository   = (*Repositories)(nil)
	_ dashboard.EnergyRepository           = (*Repositories)(nil)
	_ dashboard.SafetyRepository           = (*Repositories)(nil)
	_ dashboard.EquipmentStatusRepository  = (*Repositories)(nil)
	_ dashboard.InventoryRepository        = (*Repositories)(nil)
	_ dashboard.StockpileRepository        = (*Repositories)(nil)
	_ dashboard.ExpensesRepository         = (*Repositories)(nil)
	_ dashboard.LaborRepository            = (*Repositories)(nil)
	_ dashboard.EnvironmentalRepository    = (*Repositories)(nil)
)
