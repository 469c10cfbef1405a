package miningapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	dashboard "github.com/minetrics/go-minedash/components/dashboard"
)

// HTTPConfig configures the HTTP operations client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to the mine operations service via REST endpoints.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client capable of hitting a live operations API.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("miningapi: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

type metricsRequest struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Zone  string    `json:"zone,omitempty"`
}

func metricsRequestFrom(query dashboard.MetricsQuery) metricsRequest {
	return metricsRequest{
		Start: query.Range.Start,
		End:   query.Range.End,
		Zone:  query.Zone,
	}
}

// FetchProduction implements MetricsClient via the production endpoint.
func (c *HTTPClient) FetchProduction(ctx context.Context, query dashboard.MetricsQuery) (dashboard.ProductionReport, error) {
	var resp productionResponse
	if err := c.do(ctx, "/reports/production", metricsRequestFrom(query), &resp); err != nil {
		return dashboard.ProductionReport{}, err
	}
	return resp.toReport()
}

// FetchGold implements MetricsClient via the gold endpoint.
func (c *HTTPClient) FetchGold(ctx context.Context, query dashboard.MetricsQuery) (dashboard.GoldReport, error) {
	var resp goldResponse
	if err := c.do(ctx, "/reports/gold", metricsRequestFrom(query), &resp); err != nil {
		return dashboard.GoldReport{}, err
	}
	return resp.toReport()
}

// FetchEnergy implements MetricsClient via the energy endpoint.
func (c *HTTPClient) FetchEnergy(ctx context.Context, query dashboard.MetricsQuery) (dashboard.EnergyReport, error) {
	var resp energyResponse
	if err := c.do(ctx, "/reports/energy", metricsRequestFrom(query), &resp); err != nil {
		return dashboard.EnergyReport{}, err
	}
	return resp.toReport()
}

// FetchSafety implements MetricsClient via the safety endpoint.
func (c *HTTPClient) FetchSafety(ctx context.Context, query dashboard.MetricsQuery) (dashboard.SafetyReport, error) {
	var resp safetyResponse
	if err := c.do(ctx, "/reports/safety", metricsRequestFrom(query), &resp); err != nil {
		return dashboard.SafetyReport{}, err
	}
	return resp.toReport()
}

// FetchEquipment implements MetricsClient via the equipment endpoint.
func (c *HTTPClient) FetchEquipment(ctx context.Context, query dashboard.MetricsQuery) (dashboard.EquipmentReport, error) {
	var resp equipmentResponse
	if err := c.do(ctx, "/reports/equipment", metricsRequestFrom(query), &resp); err != nil {
		return dashboard.EquipmentReport{}, err
	}
	return resp.toReport(), nil
}

// FetchStockpile implements MetricsClient via the stockpile endpoint.
func (c *HTTPClient) FetchStockpile(ctx context.Context, query dashboard.MetricsQuery) (dashboard.StockpileReport, error) {
	var resp stockpileResponse
	if err := c.do(ctx, "/reports/stockpile", metricsRequestFrom(query), &resp); err != nil {
		return dashboard.StockpileReport{}, err
	}
	return resp.toReport(), nil
}

// FetchExpenses implements MetricsClient via the expenses endpoint.
func (c *HTTPClient) FetchExpenses(ctx context.Context, query dashboard.MetricsQuery) (dashboard.ExpenseReport, error) {
	var resp expenseResponse
	if err := c.do(ctx, "/reports/expenses", metricsRequestFrom(query), &resp); err != nil {
		return dashboard.ExpenseReport{}, err
	}
	return resp.toReport(), nil
}

// FetchLabor implements MetricsClient via the labor endpoint.
func (c *HTTPClient) FetchLabor(ctx context.Context, query dashboard.MetricsQuery) (dashboard.LaborReport, error) {
	var resp laborResponse
	if err := c.do(ctx, "/reports/labor", metricsRequestFrom(query), &resp); err != nil {
		return dashboard.LaborReport{}, err
	}
	return dashboard.LaborReport(resp), nil
}

// FetchEnvironmental implements MetricsClient via the environmental endpoint.
func (c *HTTPClient) FetchEnvironmental(ctx context.Context, query dashboard.MetricsQuery) (dashboard.EnvironmentalReport, error) {
	var resp environmentalResponse
	if err := c.do(ctx, "/reports/environmental", metricsRequestFrom(query), &resp); err != nil {
		return dashboard.EnvironmentalReport{}, err
	}
	return resp.toReport()
}

// FetchInventory implements InventoryClient via the inventory endpoint.
func (c *HTTPClient) FetchInventory(ctx context.Context, query dashboard.InventoryQuery) (dashboard.InventoryReport, error) {
	req := inventoryRequest{
		Kind:  string(query.Kind),
		Start: query.Range.Start,
		End:   query.Range.End,
		Limit: query.Limit,
	}
	var resp inventoryResponse
	if err := c.do(ctx, "/inventory/query", req, &resp); err != nil {
		return dashboard.InventoryReport{}, err
	}
	return resp.toReport(), nil
}

func (c *HTTPClient) do(ctx context.Context, path string, payload any, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("miningapi: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("miningapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("miningapi: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("miningapi: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("miningapi: decode response: %w", err)
	}
	return nil
}

type dayValue struct {
	Day   string  `json:"day"`
	Value float64 `json:"value"`
}

func parseDay(raw string) (time.Time, error) {
	day, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("miningapi: parse day %q: %w", raw, err)
	}
	return day, nil
}

type productionResponse struct {
	TonnesMined     float64    `json:"tonnes_mined"`
	TonnesProcessed float64    `json:"tonnes_processed"`
	OreGradeGPT     float64    `json:"ore_grade_gpt"`
	RecoveryRate    float64    `json:"recovery_rate"`
	Daily           []dayValue `json:"daily"`
}

func (r productionResponse) toReport() (dashboard.ProductionReport, error) {
	report := dashboard.ProductionReport{
		TonnesMined:     r.TonnesMined,
		TonnesProcessed: r.TonnesProcessed,
		OreGradeGPT:     r.OreGradeGPT,
		RecoveryRate:    r.RecoveryRate,
	}
	for _, entry := range r.Daily {
		day, err := parseDay(entry.Day)
		if err != nil {
			return dashboard.ProductionReport{}, err
		}
		report.Daily = append(report.Daily, dashboard.ProductionDay{Day: day, Tonnes: entry.Value})
	}
	return report, nil
}

type goldDay struct {
	Day    string  `json:"day"`
	Grams  float64 `json:"grams"`
	Purity float64 `json:"purity"`
}

type goldResponse struct {
	WeightGrams       float64   `json:"weight_grams"`
	AveragePurity     float64   `json:"average_purity"`
	EstimatedValueUSD float64   `json:"estimated_value_usd"`
	Daily             []goldDay `json:"daily"`
}

func (r goldResponse) toReport() (dashboard.GoldReport, error) {
	report := dashboard.GoldReport{
		WeightGrams:       r.WeightGrams,
		AveragePurity:     r.AveragePurity,
		EstimatedValueUSD: r.EstimatedValueUSD,
	}
	for _, entry := range r.Daily {
		day, err := parseDay(entry.Day)
		if err != nil {
			return dashboard.GoldReport{}, err
		}
		report.Daily = append(report.Daily, dashboard.GoldDay{Day: day, Grams: entry.Grams, Purity: entry.Purity})
	}
	return report, nil
}

type energyDay struct {
	Day            string  `json:"day"`
	ElectricityKWh float64 `json:"electricity_kwh"`
	DieselLiters   float64 `json:"diesel_liters"`
	CostUSD        float64 `json:"cost_usd"`
}

type energyResponse struct {
	ElectricityKWh float64     `json:"electricity_kwh"`
	DieselLiters   float64     `json:"diesel_liters"`
	TotalCostUSD   float64     `json:"total_cost_usd"`
	Daily          []energyDay `json:"daily"`
}

func (r energyResponse) toReport() (dashboard.EnergyReport, error) {
	report := dashboard.EnergyReport{
		ElectricityKWh: r.ElectricityKWh,
		DieselLiters:   r.DieselLiters,
		TotalCostUSD:   r.TotalCostUSD,
	}
	for _, entry := range r.Daily {
		day, err := parseDay(entry.Day)
		if err != nil {
			return dashboard.EnergyReport{}, err
		}
		report.Daily = append(report.Daily, dashboard.EnergyDay{
			Day:            day,
			ElectricityKWh: entry.ElectricityKWh,
			DieselLiters:   entry.DieselLiters,
			CostUSD:        entry.CostUSD,
		})
	}
	return report, nil
}

type safetyIncident struct {
	Day         string `json:"day"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

type safetyResponse struct {
	DaysWithoutIncident int              `json:"days_without_incident"`
	OpenIncidents       int              `json:"open_incidents"`
	Incidents           []safetyIncident `json:"incidents"`
}

func (r safetyResponse) toReport() (dashboard.SafetyReport, error) {
	report := dashboard.SafetyReport{
		DaysWithoutIncident: r.DaysWithoutIncident,
		OpenIncidents:       r.OpenIncidents,
	}
	for _, entry := range r.Incidents {
		day, err := parseDay(entry.Day)
		if err != nil {
			return dashboard.SafetyReport{}, err
		}
		report.Incidents = append(report.Incidents, dashboard.SafetyIncident{
			Day:         day,
			Severity:    entry.Severity,
			Description: entry.Description,
		})
	}
	return report, nil
}

type equipmentUnit struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Zone   string `json:"zone"`
}

type equipmentResponse struct {
	Operational      int             `json:"operational"`
	UnderMaintenance int             `json:"under_maintenance"`
	OutOfService     int             `json:"out_of_service"`
	Units            []equipmentUnit `json:"units"`
}

func (r equipmentResponse) toReport() dashboard.EquipmentReport {
	report := dashboard.EquipmentReport{
		Operational:      r.Operational,
		UnderMaintenance: r.UnderMaintenance,
		OutOfService:     r.OutOfService,
	}
	for _, unit := range r.Units {
		report.Units = append(report.Units, dashboard.EquipmentUnit(unit))
	}
	return report
}

type stockpilePile struct {
	Name   string  `json:"name"`
	Tonnes float64 `json:"tonnes"`
}

type stockpileResponse struct {
	CrushedTonnes float64         `json:"crushed_tonnes"`
	MilledTonnes  float64         `json:"milled_tonnes"`
	Piles         []stockpilePile `json:"piles"`
}

func (r stockpileResponse) toReport() dashboard.StockpileReport {
	report := dashboard.StockpileReport{
		CrushedTonnes: r.CrushedTonnes,
		MilledTonnes:  r.MilledTonnes,
	}
	for _, pile := range r.Piles {
		report.Piles = append(report.Piles, dashboard.StockpilePile(pile))
	}
	return report
}

type expenseCategory struct {
	Label     string  `json:"label"`
	AmountUSD float64 `json:"amount_usd"`
}

type expenseResponse struct {
	TotalUSD   float64           `json:"total_usd"`
	Categories []expenseCategory `json:"categories"`
}

func (r expenseResponse) toReport() dashboard.ExpenseReport {
	report := dashboard.ExpenseReport{TotalUSD: r.TotalUSD}
	for _, cat := range r.Categories {
		report.Categories = append(report.Categories, dashboard.ExpenseCategory(cat))
	}
	return report
}

type laborResponse struct {
	HeadCount     int     `json:"head_count"`
	ShiftsWorked  int     `json:"shifts_worked"`
	OvertimeHours float64 `json:"overtime_hours"`
	PayrollUSD    float64 `json:"payroll_usd"`
}

type environmentalDay struct {
	Day     string  `json:"day"`
	WaterM3 float64 `json:"water_m3"`
	CO2Kg   float64 `json:"co2_kg"`
}

type environmentalResponse struct {
	WaterUsageM3 float64            `json:"water_usage_m3"`
	CO2Tonnes    float64            `json:"co2_tonnes"`
	WasteTonnes  float64            `json:"waste_tonnes"`
	Daily        []environmentalDay `json:"daily"`
}

func (r environmentalResponse) toReport() (dashboard.EnvironmentalReport, error) {
	report := dashboard.EnvironmentalReport{
		WaterUsageM3: r.WaterUsageM3,
		CO2Tonnes:    r.CO2Tonnes,
		WasteTonnes:  r.WasteTonnes,
	}
	for _, entry := range r.Daily {
		day, err := parseDay(entry.Day)
		if err != nil {
			return dashboard.EnvironmentalReport{}, err
		}
		report.Daily = append(report.Daily, dashboard.EnvironmentalDay{
			Day:     day,
			WaterM3: entry.WaterM3,
			CO2Kg:   entry.CO2Kg,
		})
	}
	return report, nil
}

type inventoryItem struct {
	Name           string  `json:"name"`
	StockKg        float64 `json:"stock_kg"`
	ReorderLevelKg float64 `json:"reorder_level_kg"`
	CostUSD        float64 `json:"cost_usd"`
}

type inventoryRequest struct {
	Kind  string    `json:"kind"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Limit int       `json:"limit,omitempty"`
}

type inventoryResponse struct {
	Kind  string          `json:"kind"`
	Items []inventoryItem `json:"items"`
}

func (r inventoryResponse) toReport() dashboard.InventoryReport {
	report := dashboard.InventoryReport{Kind: dashboard.InventoryKind(r.Kind)}
	for _, item := range r.Items {
		report.Items = append(report.Items, dashboard.InventoryItem(item))
	}
	return report
}
