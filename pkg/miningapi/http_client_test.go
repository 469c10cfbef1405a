package miningapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dashboard "github.com/minetrics/go-minedash/components/dashboard"
)

func metricsWindow() dashboard.MetricsQuery {
	return dashboard.MetricsQuery{
		Range: dashboard.DateRange{
			Start: time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 5, 19, 23, 59, 59, 0, time.UTC),
		},
	}
}

func TestHTTPClientFetchProduction(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		var req struct {
			Start time.Time `json:"start"`
			End   time.Time `json:"end"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Start.IsZero() || req.End.IsZero() {
			t.Errorf("window not forwarded: %+v", req)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"tonnes_mined":     9800.0,
			"tonnes_processed": 9100.0,
			"ore_grade_gpt":    2.4,
			"recovery_rate":    0.91,
			"daily": []map[string]any{
				{"day": "2024-05-13", "value": 1400.0},
				{"day": "2024-05-14", "value": 1350.0},
			},
		})
	}))
	defer server.Close()

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL, APIKey: "secret"})
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}

	report, err := client.FetchProduction(context.Background(), metricsWindow())
	if err != nil {
		t.Fatalf("FetchProduction: %v", err)
	}
	if gotPath != "/reports/production" {
		t.Fatalf("path = %s", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("authorization = %q", gotAuth)
	}
	if report.TonnesMined != 9800 {
		t.Fatalf("tonnes_mined = %v", report.TonnesMined)
	}
	if len(report.Daily) != 2 || !report.Daily[0].Day.Equal(time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("daily = %+v", report.Daily)
	}
}

func TestHTTPClientFetchInventory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/inventory/query" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req struct {
			Kind  string `json:"kind"`
			Limit int    `json:"limit"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Kind != "explosives" || req.Limit != 5 {
			t.Errorf("request = %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"kind": "explosives",
			"items": []map[string]any{
				{"name": "ANFO", "stock_kg": 3400.0, "reorder_level_kg": 1500.0, "cost_usd": 4080.0},
			},
		})
	}))
	defer server.Close()

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}

	report, err := client.FetchInventory(context.Background(), dashboard.InventoryQuery{
		Kind:  dashboard.InventoryExplosives,
		Limit: 5,
	})
	if err != nil {
		t.Fatalf("FetchInventory: %v", err)
	}
	if report.Kind != dashboard.InventoryExplosives || len(report.Items) != 1 {
		t.Fatalf("report = %+v", report)
	}
	if report.Items[0].Name != "ANFO" || report.Items[0].StockKg != 3400 {
		t.Fatalf("item = %+v", report.Items[0])
	}
}

func TestHTTPClientRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "window too large", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}

	_, err = client.FetchLabor(context.Background(), metricsWindow())
	if err == nil {
		t.Fatal("expected error for 422 response")
	}
	if !strings.Contains(err.Error(), "422") || !strings.Contains(err.Error(), "window too large") {
		t.Fatalf("error = %v", err)
	}
}

func TestHTTPClientMalformedDay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"daily": []map[string]any{{"day": "13/05/2024", "value": 1.0}},
		})
	}))
	defer server.Close()

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}

	if _, err := client.FetchProduction(context.Background(), metricsWindow()); err == nil {
		t.Fatal("expected error for malformed day")
	}
}

func TestNewHTTPClientRequiresBaseURL(t *testing.T) {
	if _, err := NewHTTPClient(HTTPConfig{}); err == nil {
		t.Fatal("missing base url accepted")
	}
}

func TestRepositoriesAdaptClient(t *testing.T) {
	mock := NewMockClient(MockData{
		Labor: dashboard.LaborReport{HeadCount: 120, ShiftsWorked: 240},
		Inventory: map[dashboard.InventoryKind]dashboard.InventoryReport{
			dashboard.InventoryChemicals: {
				Items: []dashboard.InventoryItem{{Name: "Lime", StockKg: 7600}},
			},
		},
	})
	repos := NewRepositories(mock)

	labor, err := repos.FetchLaborReport(context.Background(), metricsWindow())
	if err != nil || labor.HeadCount != 120 {
		t.Fatalf("labor = %+v, %v", labor, err)
	}

	inventory, err := repos.FetchInventory(context.Background(), dashboard.InventoryQuery{
		Kind: dashboard.InventoryChemicals,
	})
	if err != nil || len(inventory.Items) != 1 {
		t.Fatalf("inventory = %+v, %v", inventory, err)
	}
	if inventory.Kind != dashboard.InventoryChemicals {
		t.Fatalf("kind = %s", inventory.Kind)
	}
}

func TestRepositoriesDriveProviders(t *testing.T) {
	mock := NewMockClient(MockData{
		Safety: dashboard.SafetyReport{
			DaysWithoutIncident: 12,
			Incidents: []dashboard.SafetyIncident{
				{Day: time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC), Severity: "minor", Description: "near miss"},
			},
		},
	})
	provider := dashboard.NewSafetyProvider(NewRepositories(mock))

	data, err := provider.Fetch(context.Background(), dashboard.WidgetContext{Range: metricsWindow().Range})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if data["days_without_incident"] != 12 {
		t.Fatalf("days_without_incident = %v", data["days_without_incident"])
	}
}
