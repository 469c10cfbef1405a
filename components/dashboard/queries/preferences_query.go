package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/minetrics/go-minedash/components/dashboard"
)

// PreferencesInput requests the preference list. It carries no fields but
// keeps the query signature uniform for transports.
type PreferencesInput struct{}

// PreferencesResult pairs every catalog widget with its preference,
// hidden widgets included, so the customizer panel can list them all.
type PreferencesResult struct {
	Widgets []PreferenceEntry `json:"widgets"`
}

// PreferenceEntry joins a descriptor with its stored preference.
type PreferenceEntry struct {
	Descriptor dashboard.WidgetDescriptor `json:"descriptor"`
	Preference dashboard.WidgetPreference `json:"preference"`
}

type preferencesService interface {
	Preferences(ctx context.Context) []dashboard.WidgetPreference
	Registry() dashboard.DescriptorRegistry
}

// PreferencesQuery lists the full preference set for the customizer.
type PreferencesQuery struct {
	service preferencesService
}

// NewPreferencesQuery builds the query.
func NewPreferencesQuery(service preferencesService) *PreferencesQuery {
	return &PreferencesQuery{service: service}
}

var _ gocommand.Querier[PreferencesInput, PreferencesResult] = (*PreferencesQuery)(nil)

// Query returns every preference joined with its descriptor.
func (q *PreferencesQuery) Query(ctx context.Context, _ PreferencesInput) (PreferencesResult, error) {
	registry := q.service.Registry()
	prefs := q.service.Preferences(ctx)
	result := PreferencesResult{Widgets: make([]PreferenceEntry, 0, len(prefs))}
	for _, pref := range prefs {
		desc, ok := registry.Descriptor(pref.Code)
		if !ok {
			continue
		}
		result.Widgets = append(result.Widgets, PreferenceEntry{Descriptor: desc, Preference: pref})
	}
	return result, nil
}
