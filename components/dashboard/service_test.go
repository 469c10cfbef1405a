package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recordingTelemetry struct {
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.events = append(r.events, event)
}

func (r *recordingTelemetry) saw(event string) bool {
	for _, e := range r.events {
		if e == event {
			return true
		}
	}
	return false
}

type recordingRefreshHook struct {
	events []WidgetEvent
}

func (r *recordingRefreshHook) WidgetUpdated(_ context.Context, event WidgetEvent) error {
	r.events = append(r.events, event)
	return nil
}

func serviceFixture(t *testing.T, opts Options) *Service {
	t.Helper()
	if opts.Registry == nil {
		reg := NewEmptyRegistry()
		for _, desc := range testCatalog("a", "b", "c") {
			if err := reg.RegisterDescriptor(desc); err != nil {
				t.Fatalf("RegisterDescriptor: %v", err)
			}
		}
		opts.Registry = reg
	}
	if opts.Preferences == nil {
		opts.Preferences = NewPreferenceStore(opts.Registry, NewMemoryBackend())
	}
	if opts.Filter == nil {
		opts.Filter = NewDateFilter(WithClock(func() time.Time { return refNow }))
	}
	return NewService(opts)
}

func TestBuildDashboardVisibleWidgetsOnly(t *testing.T) {
	svc := serviceFixture(t, Options{})
	if _, err := svc.ToggleWidget(context.Background(), "b"); err != nil {
		t.Fatalf("ToggleWidget: %v", err)
	}

	layout, err := svc.BuildDashboard(context.Background(), ViewerContext{UserID: "u1"})
	if err != nil {
		t.Fatalf("BuildDashboard: %v", err)
	}
	if len(layout.Widgets) != 2 {
		t.Fatalf("widgets = %d, want 2", len(layout.Widgets))
	}
	if layout.Widgets[0].Descriptor.Code != "a" || layout.Widgets[1].Descriptor.Code != "c" {
		t.Fatalf("unexpected widget order: %+v", layout.Widgets)
	}
	if layout.Selector != SelectorThisWeek {
		t.Fatalf("selector = %s, want %s", layout.Selector, SelectorThisWeek)
	}
}

func TestBuildDashboardProviderErrorDegradesWidget(t *testing.T) {
	reg := NewEmptyRegistry()
	for _, desc := range testCatalog("ok", "broken") {
		if err := reg.RegisterDescriptor(desc); err != nil {
			t.Fatalf("RegisterDescriptor: %v", err)
		}
	}
	reg.RegisterProvider("ok", ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		return WidgetData{"value": 42}, nil
	}))
	reg.RegisterProvider("broken", ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		return nil, errors.New("upstream down")
	}))

	telemetry := &recordingTelemetry{}
	svc := serviceFixture(t, Options{Registry: reg, Telemetry: telemetry})

	layout, err := svc.BuildDashboard(context.Background(), ViewerContext{})
	if err != nil {
		t.Fatalf("BuildDashboard: %v", err)
	}
	if len(layout.Widgets) != 2 {
		t.Fatalf("provider failure must not drop the widget: %+v", layout.Widgets)
	}
	if layout.Widgets[0].Data["value"] != 42 {
		t.Fatalf("healthy widget lost its data: %+v", layout.Widgets[0].Data)
	}
	if layout.Widgets[1].Data != nil {
		t.Fatalf("failed widget should render without data")
	}
	if !telemetry.saw("dashboard.widget.provider_error") {
		t.Fatalf("provider error not recorded: %v", telemetry.events)
	}
}

func TestToggleWidgetValidation(t *testing.T) {
	svc := serviceFixture(t, Options{})

	if _, err := svc.ToggleWidget(context.Background(), ""); !errors.Is(err, errMissingWidgetCode) {
		t.Fatalf("empty code: %v", err)
	}
	if _, err := svc.ToggleWidget(context.Background(), "ghost"); !errors.Is(err, errUnknownWidget) {
		t.Fatalf("unknown code: %v", err)
	}
}

func TestToggleWidgetNotifiesRefreshHook(t *testing.T) {
	hook := &recordingRefreshHook{}
	svc := serviceFixture(t, Options{RefreshHook: hook})

	if _, err := svc.ToggleWidget(context.Background(), "a"); err != nil {
		t.Fatalf("ToggleWidget: %v", err)
	}
	if len(hook.events) != 1 || hook.events[0].Code != "a" || hook.events[0].Reason != "toggle" {
		t.Fatalf("unexpected refresh events: %+v", hook.events)
	}
}

func TestSetDateRangeUpdatesSharedWindow(t *testing.T) {
	hook := &recordingRefreshHook{}
	svc := serviceFixture(t, Options{RefreshHook: hook})

	rng, err := svc.SetDateRange(context.Background(), SelectorToday)
	if err != nil {
		t.Fatalf("SetDateRange: %v", err)
	}
	wantStart := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	if !rng.Start.Equal(wantStart) {
		t.Fatalf("range start = %v, want %v", rng.Start, wantStart)
	}

	sel, current := svc.CurrentRange()
	if sel != SelectorToday || !current.Start.Equal(rng.Start) {
		t.Fatalf("shared window not updated: %s %+v", sel, current)
	}
	if len(hook.events) != 1 || hook.events[0].Reason != "daterange" {
		t.Fatalf("daterange event missing: %+v", hook.events)
	}
}

func TestSetDateRangeRejectsCustomSelector(t *testing.T) {
	svc := serviceFixture(t, Options{})
	if _, err := svc.SetDateRange(context.Background(), SelectorCustom); !errors.Is(err, ErrInvalidSelector) {
		t.Fatalf("custom selector via SetDateRange: %v", err)
	}
}

func TestSetCustomRange(t *testing.T) {
	svc := serviceFixture(t, Options{})

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	if err := svc.SetCustomRange(context.Background(), DateRange{Start: start, End: end}); err != nil {
		t.Fatalf("SetCustomRange: %v", err)
	}
	sel, rng := svc.CurrentRange()
	if sel != SelectorCustom {
		t.Fatalf("selector = %s, want custom", sel)
	}
	if !rng.Start.Equal(start) || !rng.End.Equal(end) {
		t.Fatalf("range = %+v", rng)
	}
}

func TestSetCustomRangeRejectsInvertedWindow(t *testing.T) {
	svc := serviceFixture(t, Options{})

	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, 5)
	if err := svc.SetCustomRange(context.Background(), DateRange{Start: start, End: end}); err == nil {
		t.Fatal("expected error for inverted window")
	}
	if sel, _ := svc.CurrentRange(); sel == SelectorCustom {
		t.Fatal("failed custom range must not change the selector")
	}
}

func TestValidateConfigurationUnknownWidget(t *testing.T) {
	svc := serviceFixture(t, Options{})
	if err := svc.ValidateConfiguration("ghost", nil); !errors.Is(err, errUnknownWidget) {
		t.Fatalf("unknown widget: %v", err)
	}
}

func TestServicePreferencesIncludeHidden(t *testing.T) {
	svc := serviceFixture(t, Options{})
	if _, err := svc.ToggleWidget(context.Background(), "c"); err != nil {
		t.Fatalf("ToggleWidget: %v", err)
	}

	prefs := svc.Preferences(context.Background())
	assertCodes(t, prefs, "a", "b", "c")
	if prefs[2].Visible {
		t.Fatal("hidden widget should still be listed")
	}
}
