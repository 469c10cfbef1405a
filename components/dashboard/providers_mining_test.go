package dashboard

import (
	"context"
	"strings"
	"testing"
	"time"
)

func demoWindow() DateRange {
	return DateRange{
		Start: time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 19, 23, 59, 59, 0, time.UTC),
	}
}

func TestProductionProviderDemoData(t *testing.T) {
	provider := NewProductionProvider(DemoMiningRepository{})
	data, err := provider.Fetch(context.Background(), WidgetContext{Range: demoWindow()})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if data["tonnes_mined"].(float64) <= 0 {
		t.Fatalf("tonnes_mined = %v", data["tonnes_mined"])
	}
	trend := data["trend"].([]map[string]any)
	if len(trend) != 7 {
		t.Fatalf("trend days = %d, want 7", len(trend))
	}
	if trend[0]["day"] != "2024-05-13" {
		t.Fatalf("trend starts at %v", trend[0]["day"])
	}
}

func TestProductionProviderTargetAttainment(t *testing.T) {
	provider := NewProductionProvider(DemoMiningRepository{})
	data, err := provider.Fetch(context.Background(), WidgetContext{
		Range:         demoWindow(),
		Configuration: map[string]any{"target_tonnes": 10000.0},
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	attainment, ok := data["target_attainment"].(float64)
	if !ok || attainment <= 0 {
		t.Fatalf("target_attainment = %v", data["target_attainment"])
	}
}

func TestGoldProviderUnitConversion(t *testing.T) {
	provider := NewGoldProductionProvider(DemoMiningRepository{})
	ctx := context.Background()
	meta := WidgetContext{Range: demoWindow()}

	grams, err := provider.Fetch(ctx, meta)
	if err != nil {
		t.Fatalf("Fetch grams: %v", err)
	}
	meta.Configuration = map[string]any{"unit": "kg"}
	kilos, err := provider.Fetch(ctx, meta)
	if err != nil {
		t.Fatalf("Fetch kg: %v", err)
	}

	g := grams["weight"].(float64)
	kg := kilos["weight"].(float64)
	if g <= 0 || kg <= 0 {
		t.Fatalf("weights = %v g, %v kg", g, kg)
	}
	if diff := g/1000 - kg; diff > 0.0001 || diff < -0.0001 {
		t.Fatalf("kg conversion off: %v g vs %v kg", g, kg)
	}
	if kilos["unit"] != "kg" {
		t.Fatalf("unit = %v", kilos["unit"])
	}
}

func TestGoldProviderHidesValueWhenDisabled(t *testing.T) {
	provider := NewGoldProductionProvider(DemoMiningRepository{})
	data, err := provider.Fetch(context.Background(), WidgetContext{
		Range:         demoWindow(),
		Configuration: map[string]any{"show_value": false},
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if _, ok := data["estimated_value_usd"]; ok {
		t.Fatal("estimated value should be hidden")
	}
}

func TestSafetyProviderLimitsIncidents(t *testing.T) {
	provider := NewSafetyProvider(DemoMiningRepository{})
	data, err := provider.Fetch(context.Background(), WidgetContext{
		Range:         demoWindow(),
		Configuration: map[string]any{"limit": 1},
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	incidents := data["incidents"].([]map[string]any)
	if len(incidents) > 1 {
		t.Fatalf("limit ignored: %d incidents", len(incidents))
	}
}

func TestEquipmentProviderMaintenanceFilter(t *testing.T) {
	provider := NewEquipmentProvider(DemoMiningRepository{})
	ctx := context.Background()

	all, err := provider.Fetch(ctx, WidgetContext{Range: demoWindow()})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	filtered, err := provider.Fetch(ctx, WidgetContext{
		Range:         demoWindow(),
		Configuration: map[string]any{"include_maintenance": false},
	})
	if err != nil {
		t.Fatalf("Fetch filtered: %v", err)
	}

	allUnits := all["units"].([]map[string]any)
	filteredUnits := filtered["units"].([]map[string]any)
	if len(filteredUnits) >= len(allUnits) {
		t.Fatalf("maintenance filter had no effect: %d vs %d", len(filteredUnits), len(allUnits))
	}
	for _, unit := range filteredUnits {
		if unit["status"] == "maintenance" {
			t.Fatalf("maintenance unit leaked: %+v", unit)
		}
	}
}

func TestInventoryProviderKinds(t *testing.T) {
	ctx := context.Background()

	chem, err := NewInventoryProvider(InventoryChemicals, DemoMiningRepository{}).
		Fetch(ctx, WidgetContext{Range: demoWindow()})
	if err != nil {
		t.Fatalf("Fetch chemicals: %v", err)
	}
	expl, err := NewInventoryProvider(InventoryExplosives, DemoMiningRepository{}).
		Fetch(ctx, WidgetContext{Range: demoWindow()})
	if err != nil {
		t.Fatalf("Fetch explosives: %v", err)
	}

	if chem["kind"] != "chemicals" || expl["kind"] != "explosives" {
		t.Fatalf("kinds = %v, %v", chem["kind"], expl["kind"])
	}
	if len(chem["items"].([]map[string]any)) == 0 {
		t.Fatal("chemical inventory empty")
	}
}

func TestInventoryProviderLimit(t *testing.T) {
	data, err := NewInventoryProvider(InventoryChemicals, DemoMiningRepository{}).
		Fetch(context.Background(), WidgetContext{
			Range:         demoWindow(),
			Configuration: map[string]any{"limit": 2},
		})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if items := data["items"].([]map[string]any); len(items) != 2 {
		t.Fatalf("limit ignored: %d items", len(items))
	}
}

func TestLaborProviderScalesWithWindow(t *testing.T) {
	provider := NewLaborProvider(DemoMiningRepository{})
	ctx := context.Background()

	week, err := provider.Fetch(ctx, WidgetContext{Range: demoWindow()})
	if err != nil {
		t.Fatalf("Fetch week: %v", err)
	}
	day, err := provider.Fetch(ctx, WidgetContext{Range: DateRange{
		Start: time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 13, 23, 59, 59, 0, time.UTC),
	}})
	if err != nil {
		t.Fatalf("Fetch day: %v", err)
	}
	if week["shifts_worked"].(int) <= day["shifts_worked"].(int) {
		t.Fatalf("shifts: week %v vs day %v", week["shifts_worked"], day["shifts_worked"])
	}
}

func TestEnergyChartProviderRendersHTML(t *testing.T) {
	provider := NewEnergyChartProvider(DemoMiningRepository{}, NewEChartsRenderer("line"))
	data, err := provider.Fetch(context.Background(), WidgetContext{Range: demoWindow()})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	html := data["chart_html"].(string)
	if !strings.Contains(html, "Electricity (kWh)") {
		t.Fatalf("chart html missing series name: %.120s", html)
	}
	if data["total_cost_usd"].(float64) <= 0 {
		t.Fatalf("total_cost_usd = %v", data["total_cost_usd"])
	}
}

func TestEnergyChartProviderSourceFilter(t *testing.T) {
	provider := NewEnergyChartProvider(DemoMiningRepository{}, NewEChartsRenderer("line"))
	data, err := provider.Fetch(context.Background(), WidgetContext{
		Range:         demoWindow(),
		Configuration: map[string]any{"source": "diesel", "show_cost": false},
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	html := data["chart_html"].(string)
	if strings.Contains(html, "Electricity (kWh)") {
		t.Fatal("electricity series should be filtered out")
	}
	if _, ok := data["total_cost_usd"]; ok {
		t.Fatal("cost should be hidden")
	}
}

func TestEnvironmentalChartProviderRendersHTML(t *testing.T) {
	provider := NewEnvironmentalChartProvider(DemoMiningRepository{}, NewEChartsRenderer("bar"))
	data, err := provider.Fetch(context.Background(), WidgetContext{Range: demoWindow()})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if data["chart_html"].(string) == "" {
		t.Fatal("chart html empty")
	}
	if data["water_usage_m3"].(float64) <= 0 {
		t.Fatalf("water_usage_m3 = %v", data["water_usage_m3"])
	}
}

func TestDefaultProvidersCoverCatalog(t *testing.T) {
	for _, desc := range DefaultWidgetDescriptors() {
		if _, ok := defaultProviders[desc.Code]; !ok {
			t.Fatalf("no default provider for %s", desc.Code)
		}
	}
}
