package dashboard

import (
	"context"
	"time"
)

// DemoMiningRepository serves deterministic sample data for every widget
// repository, derived only from the requested window. It keeps demos and
// tests reproducible without a live operations backend.
type DemoMiningRepository struct{}

const maxDemoDays = 31

func demoDays(rng DateRange) []time.Time {
	if rng.Start.IsZero() || rng.End.Before(rng.Start) {
		return nil
	}
	days := make([]time.Time, 0, maxDemoDays)
	for day := startOfDay(rng.Start); !day.After(rng.End) && len(days) < maxDemoDays; day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

// demoWave produces a repeatable value in [base, base+spread) keyed off
// the day ordinal so identical queries return identical data.
func demoWave(day time.Time, base, spread float64) float64 {
	ordinal := day.YearDay() + day.Year()
	return base + spread*float64(ordinal%7)/7
}

// FetchProductionReport implements ProductionReportRepository.
func (DemoMiningRepository) FetchProductionReport(_ context.Context, query MetricsQuery) (ProductionReport, error) {
	days := demoDays(query.Range)
	report := ProductionReport{
		OreGradeGPT:  2.4,
		RecoveryRate: 0.91,
	}
	for _, day := range days {
		tonnes := demoWave(day, 1150, 400)
		report.TonnesMined += tonnes
		report.TonnesProcessed += tonnes * 0.94
		report.Daily = append(report.Daily, ProductionDay{Day: day, Tonnes: tonnes})
	}
	return report, nil
}

// FetchGoldReport implements GoldProductionRepository.
func (DemoMiningRepository) FetchGoldReport(_ context.Context, query MetricsQuery) (GoldReport, error) {
	days := demoDays(query.Range)
	report := GoldReport{AveragePurity: 0.87}
	for _, day := range days {
		grams := demoWave(day, 2100, 600)
		report.WeightGrams += grams
		report.Daily = append(report.Daily, GoldDay{Day: day, Grams: grams, Purity: 0.87})
	}
	report.EstimatedValueUSD = report.WeightGrams * 0.87 * 74.5
	return report, nil
}

// FetchEnergyReport implements EnergyRepository.
func (DemoMiningRepository) FetchEnergyReport(_ context.Context, query MetricsQuery) (EnergyReport, error) {
	days := demoDays(query.Range)
	var report EnergyReport
	for _, day := range days {
		entry := EnergyDay{
			Day:            day,
			ElectricityKWh: demoWave(day, 14500, 3200),
			DieselLiters:   demoWave(day, 5200, 1100),
		}
		entry.CostUSD = entry.ElectricityKWh*0.14 + entry.DieselLiters*1.08
		report.ElectricityKWh += entry.ElectricityKWh
		report.DieselLiters += entry.DieselLiters
		report.TotalCostUSD += entry.CostUSD
		report.Daily = append(report.Daily, entry)
	}
	return report, nil
}

// FetchSafetyReport implements SafetyRepository.
func (DemoMiningRepository) FetchSafetyReport(_ context.Context, query MetricsQuery) (SafetyReport, error) {
	report := SafetyReport{DaysWithoutIncident: 46, OpenIncidents: 1}
	days := demoDays(query.Range)
	if len(days) > 0 {
		report.Incidents = []SafetyIncident{
			{Day: days[0], Severity: "minor", Description: "Loose guard rail on crusher platform"},
		}
	}
	return report, nil
}

// FetchEquipmentReport implements EquipmentStatusRepository.
func (DemoMiningRepository) FetchEquipmentReport(_ context.Context, query MetricsQuery) (EquipmentReport, error) {
	units := []EquipmentUnit{
		{Name: "Excavator EX-200", Status: "operational", Zone: "pit-a"},
		{Name: "Haul Truck HT-07", Status: "operational", Zone: "pit-a"},
		{Name: "Haul Truck HT-09", Status: "maintenance", Zone: "pit-b"},
		{Name: "Ball Mill BM-01", Status: "operational", Zone: "plant"},
		{Name: "Drill Rig DR-03", Status: "out_of_service", Zone: "pit-b"},
	}
	if query.Zone != "" {
		filtered := units[:0]
		for _, unit := range units {
			if unit.Zone == query.Zone {
				filtered = append(filtered, unit)
			}
		}
		units = filtered
	}
	report := EquipmentReport{Units: units}
	for _, unit := range units {
		switch unit.Status {
		case "operational":
			report.Operational++
		case "maintenance":
			report.UnderMaintenance++
		default:
			report.OutOfService++
		}
	}
	return report, nil
}

// FetchInventory implements InventoryRepository.
func (DemoMiningRepository) FetchInventory(_ context.Context, query InventoryQuery) (InventoryReport, error) {
	var items []InventoryItem
	switch query.Kind {
	case InventoryExplosives:
		items = []InventoryItem{
			{Name: "ANFO", StockKg: 3400, ReorderLevelKg: 1500, CostUSD: 4080},
			{Name: "Emulsion cartridges", StockKg: 820, ReorderLevelKg: 400, CostUSD: 2870},
			{Name: "Detonating cord", StockKg: 110, ReorderLevelKg: 150, CostUSD: 990},
		}
	default:
		items = []InventoryItem{
			{Name: "Sodium cyanide", StockKg: 5200, ReorderLevelKg: 2000, CostUSD: 14560},
			{Name: "Activated carbon", StockKg: 1800, ReorderLevelKg: 900, CostUSD: 5400},
			{Name: "Lime", StockKg: 7600, ReorderLevelKg: 3000, CostUSD: 1520},
			{Name: "Caustic soda", StockKg: 640, ReorderLevelKg: 800, CostUSD: 768},
		}
	}
	if query.Limit > 0 && len(items) > query.Limit {
		items = items[:query.Limit]
	}
	return InventoryReport{Kind: query.Kind, Items: items}, nil
}

// FetchStockpileReport implements StockpileRepository.
func (DemoMiningRepository) FetchStockpileReport(_ context.Context, query MetricsQuery) (StockpileReport, error) {
	return StockpileReport{
		CrushedTonnes: 8400,
		MilledTonnes:  6120,
		Piles: []StockpilePile{
			{Name: "ROM pad", Tonnes: 4300},
			{Name: "Crushed ore", Tonnes: 8400},
			{Name: "Mill feed", Tonnes: 6120},
		},
	}, nil
}

// FetchExpenseReport implements ExpensesRepository.
func (DemoMiningRepository) FetchExpenseReport(_ context.Context, query MetricsQuery) (ExpenseReport, error) {
	days := len(demoDays(query.Range))
	if days == 0 {
		days = 1
	}
	categories := []ExpenseCategory{
		{Label: "Fuel", AmountUSD: 5600 * float64(days)},
		{Label: "Reagents", AmountUSD: 3100 * float64(days)},
		{Label: "Maintenance", AmountUSD: 2400 * float64(days)},
		{Label: "Payroll", AmountUSD: 8900 * float64(days)},
	}
	var total float64
	for _, cat := range categories {
		total += cat.AmountUSD
	}
	return ExpenseReport{TotalUSD: total, Categories: categories}, nil
}

// FetchLaborReport implements LaborRepository.
func (DemoMiningRepository) FetchLaborReport(_ context.Context, query MetricsQuery) (LaborReport, error) {
	days := len(demoDays(query.Range))
	return LaborReport{
		HeadCount:     184,
		ShiftsWorked:  184 * 2 * days,
		OvertimeHours: 96 * float64(days),
		PayrollUSD:    8900 * float64(days),
	}, nil
}

// FetchEnvironmentalReport implements EnvironmentalRepository.
func (DemoMiningRepository) FetchEnvironmentalReport(_ context.Context, query MetricsQuery) (EnvironmentalReport, error) {
	days := demoDays(query.Range)
	var report EnvironmentalReport
	for _, day := range days {
		entry := EnvironmentalDay{
			Day:     day,
			WaterM3: demoWave(day, 940, 180),
			CO2Kg:   demoWave(day, 12200, 2600),
		}
		report.WaterUsageM3 += entry.WaterM3
		report.CO2Tonnes += entry.CO2Kg / 1000
		report.Daily = append(report.Daily, entry)
	}
	report.WasteTonnes = 4.1 * float64(len(days))
	return report, nil
}
