package dashboard

var defaultProviders = map[string]Provider{
	"mine.widget.equipment":       NewEquipmentProvider(DemoMiningRepository{}),
	"mine.widget.energy":          NewEnergyChartProvider(DemoMiningRepository{}, NewEChartsRenderer("line")),
	"mine.widget.gold_production": NewGoldProductionProvider(DemoMiningRepository{}),
	"mine.widget.production":      NewProductionProvider(DemoMiningRepository{}),
	"mine.widget.safety":          NewSafetyProvider(DemoMiningRepository{}),
	"mine.widget.chemicals":       NewInventoryProvider(InventoryChemicals, DemoMiningRepository{}),
	"mine.widget.explosives":      NewInventoryProvider(InventoryExplosives, DemoMiningRepository{}),
	"mine.widget.stockpile":       NewStockpileProvider(DemoMiningRepository{}),
	"mine.widget.expenses":        NewExpensesProvider(DemoMiningRepository{}),
	"mine.widget.labor":           NewLaborProvider(DemoMiningRepository{}),
	"mine.widget.environmental":   NewEnvironmentalChartProvider(DemoMiningRepository{}, NewEChartsRenderer("bar")),
}
