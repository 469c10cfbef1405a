// Package miningapi connects the dashboard widgets to a remote mine
// operations service over REST, with a mock client for demos and tests.
package miningapi

import (
	"context"

	dashboard "github.com/minetrics/go-minedash/components/dashboard"
)

// MetricsClient fetches time-windowed operational reports.
type MetricsClient interface {
	FetchProduction(ctx context.Context, query dashboard.MetricsQuery) (dashboard.ProductionReport, error)
	FetchGold(ctx context.Context, query dashboard.MetricsQuery) (dashboard.GoldReport, error)
	FetchEnergy(ctx context.Context, query dashboard.MetricsQuery) (dashboard.EnergyReport, error)
	FetchSafety(ctx context.Context, query dashboard.MetricsQuery) (dashboard.SafetyReport, error)
	FetchEquipment(ctx context.Context, query dashboard.MetricsQuery) (dashboard.EquipmentReport, error)
	FetchStockpile(ctx context.Context, query dashboard.MetricsQuery) (dashboard.StockpileReport, error)
	FetchExpenses(ctx context.Context, query dashboard.MetricsQuery) (dashboard.ExpenseReport, error)
	FetchLabor(ctx context.Context, query dashboard.MetricsQuery) (dashboard.LaborReport, error)
	FetchEnvironmental(ctx context.Context, query dashboard.MetricsQuery) (dashboard.EnvironmentalReport, error)
}

// InventoryClient fetches chemical and explosive stock levels.
type InventoryClient interface {
	FetchInventory(ctx context.Context, query dashboard.InventoryQuery) (dashboard.InventoryReport, error)
}

// Client is a convenience union for services that implement every call.
type Client interface {
	MetricsClient
	InventoryClient
}
