package miningapi

import (
	"context"
	"sync"

	dashboard "github.com/minetrics/go-minedash/components/dashboard"
)

// MockData seeds deterministic operational reports for tests and demos.
type MockData struct {
	Production    dashboard.ProductionReport
	Gold          dashboard.GoldReport
	Energy        dashboard.EnergyReport
	Safety        dashboard.SafetyReport
	Equipment     dashboard.EquipmentReport
	Stockpile     dashboard.StockpileReport
	Expenses      dashboard.ExpenseReport
	Labor         dashboard.LaborReport
	Environmental dashboard.EnvironmentalReport
	Inventory     map[dashboard.InventoryKind]dashboard.InventoryReport
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	mu   sync.RWMutex
	data MockData
}

// NewMockClient builds a mock operations client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// FetchProduction returns the configured report ignoring query filters.
func (c *MockClient) FetchProduction(context.Context, dashboard.MetricsQuery) (dashboard.ProductionReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	report := c.data.Production
	report.Daily = append([]dashboard.ProductionDay(nil), report.Daily...)
	return report, nil
}

// FetchGold returns the configured report ignoring query filters.
func (c *MockClient) FetchGold(context.Context, dashboard.MetricsQuery) (dashboard.GoldReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	report := c.data.Gold
	report.Daily = append([]dashboard.GoldDay(nil), report.Daily...)
	return report, nil
}

// FetchEnergy returns the configured report ignoring query filters.
func (c *MockClient) FetchEnergy(context.Context, dashboard.MetricsQuery) (dashboard.EnergyReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	report := c.data.Energy
	report.Daily = append([]dashboard.EnergyDay(nil), report.Daily...)
	return report, nil
}

// FetchSafety returns the configured report ignoring query filters.
func (c *MockClient) FetchSafety(context.Context, dashboard.MetricsQuery) (dashboard.SafetyReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	report := c.data.Safety
	report.Incidents = append([]dashboard.SafetyIncident(nil), report.Incidents...)
	return report, nil
}

// FetchEquipment returns the configured report ignoring query filters.
func (c *MockClient) FetchEquipment(context.Context, dashboard.MetricsQuery) (dashboard.EquipmentReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	report := c.data.Equipment
	report.Units = append([]dashboard.EquipmentUnit(nil), report.Units...)
	return report, nil
}

// FetchStockpile returns the configured report ignoring query filters.
func (c *MockClient) FetchStockpile(context.Context, dashboard.MetricsQuery) (dashboard.StockpileReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	report := c.data.Stockpile
	report.Piles = append([]dashboard.StockpilePile(nil), report.Piles...)
	return report, nil
}

// FetchExpenses returns the configured report ignoring query filters.
func (c *MockClient) FetchExpenses(context.Context, dashboard.MetricsQuery) (dashboard.ExpenseReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	report := c.data.Expenses
	report.Categories = append([]dashboard.ExpenseCategory(nil), report.Categories...)
	return report, nil
}

// FetchLabor returns the configured report ignoring query filters.
func (c *MockClient) FetchLabor(context.Context, dashboard.MetricsQuery) (dashboard.LaborReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Labor, nil
}

// FetchEnvironmental returns the configured report ignoring query filters.
func (c *MockClient) FetchEnvironmental(context.Context, dashboard.MetricsQuery) (dashboard.EnvironmentalReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	report := c.data.Environmental
	report.Daily = append([]dashboard.EnvironmentalDay(nil), report.Daily...)
	return report, nil
}

// FetchInventory returns the fixture matching the requested kind.
func (c *MockClient) FetchInventory(_ context.Context, query dashboard.InventoryQuery) (dashboard.InventoryReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	report := c.data.Inventory[query.Kind]
	report.Kind = query.Kind
	report.Items = append([]dashboard.InventoryItem(nil), report.Items...)
	return report, nil
}

var _ Client = (*MockClient)(nil)
