package dashboard

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by PreferenceBackend implementations when no
// document exists for the requested key.
var ErrNotFound = errors.New("dashboard: preference document not found")

// WidgetCategory classifies widgets for grouping in the customizer UI.
type WidgetCategory string

const (
	CategoryStatus    WidgetCategory = "status"
	CategoryChart     WidgetCategory = "chart"
	CategoryMetrics   WidgetCategory = "metrics"
	CategoryInventory WidgetCategory = "inventory"
)

// KnownCategory reports whether the category belongs to the closed set.
func KnownCategory(c WidgetCategory) bool {
	switch c {
	case CategoryStatus, CategoryChart, CategoryMetrics, CategoryInventory:
		return true
	}
	return false
}

// WidgetDescriptor describes a widget the dashboard knows how to render.
// Descriptors are code-defined and fixed for the life of the process.
type WidgetDescriptor struct {
	Code                 string            `json:"code" yaml:"code"`
	Name                 string            `json:"name" yaml:"name"`
	NameLocalized        map[string]string `json:"name_localized,omitempty" yaml:"name_localized,omitempty"`
	Category             WidgetCategory    `json:"category" yaml:"category"`
	Description          string            `json:"description,omitempty" yaml:"description,omitempty"`
	DescriptionLocalized map[string]string `json:"description_localized,omitempty" yaml:"description_localized,omitempty"`
	DefaultVisible       bool              `json:"default_visible" yaml:"default_visible"`
	Schema               map[string]any    `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// WidgetPreference is the persisted per-widget visibility/order choice.
type WidgetPreference struct {
	Code     string `json:"code"`
	Visible  bool   `json:"visible"`
	Position int    `json:"position"`
}

// DateRange is a resolved start/end window. Start and End are inclusive
// calendar boundaries except for custom ranges, which are caller-supplied
// verbatim.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsZero reports whether the range has neither boundary set.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// ViewerContext captures the active user/locale information needed to
// render dashboards.
type ViewerContext struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles,omitempty"`
	Locale string   `json:"locale,omitempty"`
}

// WidgetContext is handed to providers when fetching widget data.
type WidgetContext struct {
	Descriptor    WidgetDescriptor
	Preference    WidgetPreference
	Viewer        ViewerContext
	Range         DateRange
	Configuration map[string]any
	Translator    TranslationService
}

// WidgetData is an opaque payload passed to templates.
type WidgetData map[string]any

// Provider fetches data required to render a widget.
type Provider interface {
	Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error)
}

// ProviderFunc adapts a function into a Provider.
type ProviderFunc func(ctx context.Context, meta WidgetContext) (WidgetData, error)

// Fetch implements Provider.
func (f ProviderFunc) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	return f(ctx, meta)
}

// PreferenceBackend is the narrow persistence contract consumed by the
// preference store. Implementations only need last-writer-wins semantics
// for a single document per key.
type PreferenceBackend interface {
	ReadRaw(ctx context.Context, key string) ([]byte, error)
	WriteRaw(ctx context.Context, key string, data []byte) error
}

// DescriptorRegistry stores widget descriptors/providers discoverable via
// hooks or manifests.
type DescriptorRegistry interface {
	RegisterDescriptor(desc WidgetDescriptor) error
	RegisterProvider(code string, provider Provider) error
	Descriptor(code string) (WidgetDescriptor, bool)
	Provider(code string) (Provider, bool)
	Descriptors() []WidgetDescriptor
}

// RefreshHook notifies transports (REST/WebSocket) about dashboard changes.
type RefreshHook interface {
	WidgetUpdated(ctx context.Context, event WidgetEvent) error
}

// WidgetEvent describes changes that transports might care about.
type WidgetEvent struct {
	Code     string    `json:"code,omitempty"`
	Reason   string    `json:"reason"`
	Selector Selector  `json:"selector,omitempty"`
	Range    DateRange `json:"range,omitempty"`
}

// LayoutWidget pairs a descriptor with the viewer's preference and the
// provider payload fetched for the active date range.
type LayoutWidget struct {
	Descriptor WidgetDescriptor `json:"descriptor"`
	Preference WidgetPreference `json:"preference"`
	Data       WidgetData       `json:"data,omitempty"`
}

// Layout is the resolved dashboard for one viewer: the visible widgets in
// preference order plus the date window their data was fetched for.
type Layout struct {
	Selector Selector       `json:"selector"`
	Range    DateRange      `json:"range"`
	Widgets  []LayoutWidget `json:"widgets"`
}
