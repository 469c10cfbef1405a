package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/minetrics/go-minedash/pkg/activity"
)

var (
	errMissingWidgetCode = errors.New("dashboard: widget code is required")
	errUnknownWidget     = errors.New("dashboard: widget code is not in the catalog")
)

// Options configures the dashboard Service. Every collaborator is provided
// via interface so hosts can swap implementations without importing internal
// go-minedash packages.
type Options struct {
	Registry        DescriptorRegistry
	Preferences     *PreferenceStore
	Filter          *DateFilter
	ConfigValidator ConfigValidator
	RefreshHook     RefreshHook
	Telemetry       Telemetry
	Translator      TranslationService
	Logger          *slog.Logger
	Configuration   map[string]map[string]any
	ActivityHooks   activity.Hooks
	ActivityConfig  activity.Config
}

// Service orchestrates the operations dashboard: widget catalog, viewer
// preferences, and the shared date selection.
type Service struct {
	opts    Options
	emitter *activity.Emitter
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.Filter == nil {
		opts.Filter = NewDateFilter()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.Preferences == nil {
		opts.Preferences = NewPreferenceStore(opts.Registry, nil, WithLogger(opts.Logger))
	}
	return &Service{
		opts:    opts,
		emitter: activity.NewEmitter(opts.ActivityHooks, opts.ActivityConfig),
	}
}

// Registry exposes the descriptor catalog backing this service.
func (s *Service) Registry() DescriptorRegistry {
	return s.opts.Registry
}

// Preferences returns the preference sequence for every catalog widget,
// including hidden ones, in display order.
func (s *Service) Preferences(ctx context.Context) []WidgetPreference {
	return s.opts.Preferences.Load(ctx)
}

// BuildDashboard resolves the viewer's dashboard: visible widgets in
// preference order with provider data fetched for the active window.
// Provider failures degrade the single widget, never the whole layout.
func (s *Service) BuildDashboard(ctx context.Context, viewer ViewerContext) (Layout, error) {
	selector, rng := s.opts.Filter.Current()
	prefs := s.opts.Preferences.Load(ctx)
	layout := Layout{Selector: selector, Range: rng}
	for _, pref := range prefs {
		if !pref.Visible {
			continue
		}
		desc, ok := s.opts.Registry.Descriptor(pref.Code)
		if !ok {
			continue
		}
		widget := LayoutWidget{Descriptor: desc, Preference: pref}
		if provider, ok := s.opts.Registry.Provider(pref.Code); ok && provider != nil {
			data, err := provider.Fetch(ctx, WidgetContext{
				Descriptor:    desc,
				Preference:    pref,
				Viewer:        viewer,
				Range:         rng,
				Configuration: s.configurationFor(pref.Code),
				Translator:    s.opts.Translator,
			})
			if err != nil {
				s.opts.Logger.Warn("widget provider failed, rendering without data",
					"code", pref.Code, "error", err)
				s.recordTelemetry(ctx, "dashboard.widget.provider_error", map[string]any{
					"code":  pref.Code,
					"error": err.Error(),
				})
			} else {
				widget.Data = data
			}
		}
		layout.Widgets = append(layout.Widgets, widget)
	}
	s.recordTelemetry(ctx, "dashboard.layout.resolve", map[string]any{
		"viewer":   viewer.UserID,
		"selector": string(selector),
		"widgets":  len(layout.Widgets),
	})
	return layout, nil
}

// ToggleWidget flips visibility for one widget and notifies transports.
func (s *Service) ToggleWidget(ctx context.Context, code string) ([]WidgetPreference, error) {
	if code == "" {
		return nil, errMissingWidgetCode
	}
	if _, ok := s.opts.Registry.Descriptor(code); !ok {
		return nil, errUnknownWidget
	}
	prefs := s.opts.Preferences.Toggle(ctx, code)
	if err := s.notify(ctx, WidgetEvent{Code: code, Reason: "toggle"}); err != nil {
		return prefs, err
	}
	s.recordTelemetry(ctx, "dashboard.widget.toggle", map[string]any{"code": code})
	s.emitActivity(ctx, "dashboard.widget.toggle", code, nil)
	return prefs, nil
}

// ReorderWidgets replaces the display order wholesale. The sequence must
// be a permutation of the catalog codes; anything else leaves the stored
// order untouched.
func (s *Service) ReorderWidgets(ctx context.Context, codes []string) ([]WidgetPreference, error) {
	prefs := s.opts.Preferences.Reorder(ctx, codes)
	if err := s.notify(ctx, WidgetEvent{Reason: "reorder"}); err != nil {
		return prefs, err
	}
	s.recordTelemetry(ctx, "dashboard.widget.reorder", map[string]any{"count": len(codes)})
	s.emitActivity(ctx, "dashboard.widget.reorder", "", map[string]any{"count": len(codes)})
	return prefs, nil
}

// SaveCustomization bulk-replaces the preference set, the "apply" action
// of the customizer panel.
func (s *Service) SaveCustomization(ctx context.Context, prefs []WidgetPreference) ([]WidgetPreference, error) {
	saved := s.opts.Preferences.Save(ctx, prefs)
	if err := s.notify(ctx, WidgetEvent{Reason: "customize"}); err != nil {
		return saved, err
	}
	s.recordTelemetry(ctx, "dashboard.customization.save", map[string]any{"count": len(saved)})
	s.emitActivity(ctx, "dashboard.customization.save", "", map[string]any{"count": len(saved)})
	return saved, nil
}

// ResetPreferences restores the catalog defaults.
func (s *Service) ResetPreferences(ctx context.Context) ([]WidgetPreference, error) {
	prefs := s.opts.Preferences.Reset(ctx)
	if err := s.notify(ctx, WidgetEvent{Reason: "reset"}); err != nil {
		return prefs, err
	}
	s.recordTelemetry(ctx, "dashboard.customization.reset", nil)
	s.emitActivity(ctx, "dashboard.customization.reset", "", nil)
	return prefs, nil
}

// SetDateRange switches the shared date selection to a symbolic selector.
// Custom selections go through SetCustomRange, which carries the window.
func (s *Service) SetDateRange(ctx context.Context, selector Selector) (DateRange, error) {
	if selector == SelectorCustom {
		return DateRange{}, fmt.Errorf("%w: custom selection requires an explicit range", ErrInvalidSelector)
	}
	if err := s.opts.Filter.SetSelector(selector); err != nil {
		return DateRange{}, err
	}
	sel, rng := s.opts.Filter.Current()
	if err := s.notify(ctx, WidgetEvent{Reason: "daterange", Selector: sel, Range: rng}); err != nil {
		return rng, err
	}
	s.recordTelemetry(ctx, "dashboard.daterange.select", map[string]any{
		"selector": string(sel),
	})
	s.emitActivity(ctx, "dashboard.daterange.select", "", map[string]any{"selector": string(sel)})
	return rng, nil
}

// SetCustomRange installs a caller-supplied window and marks the selection
// custom.
func (s *Service) SetCustomRange(ctx context.Context, rng DateRange) error {
	if rng.End.Before(rng.Start) {
		return errors.New("dashboard: custom range end precedes start")
	}
	if err := s.opts.Filter.SetSelector(SelectorCustom); err != nil {
		return err
	}
	s.opts.Filter.SetRange(rng)
	if err := s.notify(ctx, WidgetEvent{Reason: "daterange", Selector: SelectorCustom, Range: rng}); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashboard.daterange.custom", map[string]any{
		"start": rng.Start,
		"end":   rng.End,
	})
	return nil
}

// CurrentRange reports the active selector and window.
func (s *Service) CurrentRange() (Selector, DateRange) {
	return s.opts.Filter.Current()
}

// ValidateConfiguration checks a widget configuration against the
// descriptor's JSON schema, when it declares one.
func (s *Service) ValidateConfiguration(code string, config map[string]any) error {
	desc, ok := s.opts.Registry.Descriptor(code)
	if !ok {
		return errUnknownWidget
	}
	return s.opts.ConfigValidator.Validate(desc, config)
}

// NotifyWidgetUpdated exposes refresh hook invocation for commands and
// transports.
func (s *Service) NotifyWidgetUpdated(ctx context.Context, event WidgetEvent) error {
	if err := s.notify(ctx, event); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashboard.widget.event", map[string]any{
		"code":   event.Code,
		"reason": event.Reason,
	})
	return nil
}

func (s *Service) notify(ctx context.Context, event WidgetEvent) error {
	return s.opts.RefreshHook.WidgetUpdated(ctx, event)
}

func (s *Service) configurationFor(code string) map[string]any {
	if s.opts.Configuration == nil {
		return nil
	}
	return s.opts.Configuration[code]
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

// emitActivity reports a dashboard mutation to the activity hooks. Actor
// identity rides on the context via ContextWithActivity. Failures are
// logged and absorbed so auditing problems never block the dashboard.
func (s *Service) emitActivity(ctx context.Context, verb, objectID string, metadata map[string]any) {
	if !s.emitter.Enabled() {
		return
	}
	actor := activityContextFrom(ctx)
	err := s.emitter.Emit(ctx, activity.Event{
		Verb:       verb,
		ActorID:    actor.ActorID,
		UserID:     actor.UserID,
		TenantID:   actor.TenantID,
		ObjectType: "widget",
		ObjectID:   objectID,
		Metadata:   metadata,
	})
	if err != nil {
		s.opts.Logger.Warn("activity emit failed", "verb", verb, "error", err)
	}
}

type noopRefreshHook struct{}

func (noopRefreshHook) WidgetUpdated(context.Context, WidgetEvent) error {
	return nil
}
