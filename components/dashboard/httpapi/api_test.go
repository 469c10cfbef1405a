package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dashboard "github.com/minetrics/go-minedash/components/dashboard"
	"github.com/minetrics/go-minedash/components/dashboard/commands"
)

func testHandlers(t *testing.T) (*Handlers, *dashboard.Service) {
	t.Helper()
	reg := dashboard.NewEmptyRegistry()
	for _, code := range []string{"a", "b", "c"} {
		err := reg.RegisterDescriptor(dashboard.WidgetDescriptor{
			Code:           code,
			Name:           code,
			Category:       dashboard.CategoryMetrics,
			DefaultVisible: true,
		})
		if err != nil {
			t.Fatalf("RegisterDescriptor: %v", err)
		}
	}
	svc := dashboard.NewService(dashboard.Options{
		Registry:    reg,
		Preferences: dashboard.NewPreferenceStore(reg, dashboard.NewMemoryBackend()),
		Filter: dashboard.NewDateFilter(dashboard.WithClock(func() time.Time {
			return time.Date(2024, 5, 15, 14, 32, 0, 0, time.UTC)
		})),
	})
	return &Handlers{API: NewCommandExecutor(svc, nil)}, svc
}

func TestHandleToggleWidget(t *testing.T) {
	handlers, svc := testHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/widgets/toggle",
		strings.NewReader(`{"code":"b"}`))
	rec := httptest.NewRecorder()
	handlers.HandleToggleWidget(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	prefs := svc.Preferences(context.Background())
	if prefs[1].Visible {
		t.Fatal("toggle did not reach the service")
	}
}

func TestHandleToggleWidgetBadJSON(t *testing.T) {
	handlers, _ := testHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/widgets/toggle",
		strings.NewReader(`{"code":`))
	rec := httptest.NewRecorder()
	handlers.HandleToggleWidget(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleReorderWidgets(t *testing.T) {
	handlers, svc := testHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/widgets/reorder",
		strings.NewReader(`{"codes":["c","a","b"]}`))
	rec := httptest.NewRecorder()
	handlers.HandleReorderWidgets(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	prefs := svc.Preferences(context.Background())
	if prefs[0].Code != "c" {
		t.Fatalf("order = %+v", prefs)
	}
}

func TestHandleSaveCustomization(t *testing.T) {
	handlers, svc := testHandlers(t)

	body := `{"widgets":[{"code":"b","visible":false,"position":0},{"code":"a","visible":true,"position":1},{"code":"c","visible":true,"position":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/dashboard/customize", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handlers.HandleSaveCustomization(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	prefs := svc.Preferences(context.Background())
	if prefs[0].Code != "b" || prefs[0].Visible {
		t.Fatalf("customization not applied: %+v", prefs)
	}
}

func TestHandleSelectDateRange(t *testing.T) {
	handlers, svc := testHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/daterange",
		strings.NewReader(`{"selector":"last-30-days"}`))
	rec := httptest.NewRecorder()
	handlers.HandleSelectDateRange(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	selector, _ := svc.CurrentRange()
	if selector != dashboard.SelectorLast30Days {
		t.Fatalf("selector = %s", selector)
	}
}

func TestHandleSelectDateRangeInvalidSelector(t *testing.T) {
	handlers, _ := testHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/daterange",
		strings.NewReader(`{"selector":"fortnight"}`))
	rec := httptest.NewRecorder()
	handlers.HandleSelectDateRange(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleResetPreferences(t *testing.T) {
	handlers, svc := testHandlers(t)
	if _, err := svc.ToggleWidget(context.Background(), "a"); err != nil {
		t.Fatalf("ToggleWidget: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/dashboard/customize/reset", nil)
	rec := httptest.NewRecorder()
	handlers.HandleResetPreferences(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	prefs := svc.Preferences(context.Background())
	if !prefs[0].Visible {
		t.Fatal("reset did not restore defaults")
	}
}

func TestHandleRefreshWidget(t *testing.T) {
	handlers, _ := testHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/widgets/refresh",
		strings.NewReader(`{"event":{"code":"a","reason":"manual"}}`))
	rec := httptest.NewRecorder()
	handlers.HandleRefreshWidget(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
}

func TestExecutorRejectsUnconfiguredCommand(t *testing.T) {
	executor := &CommandExecutor{}
	err := executor.Toggle(context.Background(), commands.ToggleWidgetInput{Code: "a"})
	if err == nil {
		t.Fatal("expected error for unconfigured command")
	}
}
