package dashboard

import (
	"fmt"
	"sync"
)

// WidgetHook lets packages register widgets/providers during init().
type WidgetHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []WidgetHook
)

// RegisterWidgetHook registers a hook executed against new registries.
func RegisterWidgetHook(h WidgetHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry implements DescriptorRegistry with hook + manifest support.
// Registration order is preserved: Descriptors returns the catalog in the
// order codes were first registered, so the default dashboard layout is
// stable across process restarts.
type Registry struct {
	mu           sync.RWMutex
	order        []string
	descriptors  map[string]WidgetDescriptor
	providers    map[string]Provider
	manifestMeta map[string]ManifestProvider
}

// NewRegistry builds a registry seeded with the mining widget catalog and
// applies global hooks.
func NewRegistry() *Registry {
	reg := &Registry{
		descriptors:  map[string]WidgetDescriptor{},
		providers:    map[string]Provider{},
		manifestMeta: map[string]ManifestProvider{},
	}
	reg.registerDefaults()
	_ = reg.ApplyHooks()
	return reg
}

// NewEmptyRegistry builds a registry with no catalog, used by tests and
// by hosts that define their own widget set from manifests.
func NewEmptyRegistry() *Registry {
	return &Registry{
		descriptors:  map[string]WidgetDescriptor{},
		providers:    map[string]Provider{},
		manifestMeta: map[string]ManifestProvider{},
	}
}

func (r *Registry) registerDefaults() {
	for _, desc := range DefaultWidgetDescriptors() {
		_ = r.RegisterDescriptor(desc)
		if provider, ok := defaultProviders[desc.Code]; ok {
			_ = r.RegisterProvider(desc.Code, provider)
		}
	}
}

// ApplyHooks executes registered widget hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDescriptor stores widget metadata. Re-registering a code
// replaces the metadata but keeps the original catalog position.
func (r *Registry) RegisterDescriptor(desc WidgetDescriptor) error {
	if desc.Code == "" {
		return fmt.Errorf("dashboard: widget descriptor code is required")
	}
	if desc.Category != "" && !KnownCategory(desc.Category) {
		return fmt.Errorf("dashboard: widget %s has unknown category %q", desc.Code, desc.Category)
	}
	desc.normalizeLocalizedFields()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.descriptors[desc.Code]; !exists {
		r.order = append(r.order, desc.Code)
	}
	r.descriptors[desc.Code] = desc
	return nil
}

// RegisterProvider associates a provider implementation with a descriptor.
func (r *Registry) RegisterProvider(code string, provider Provider) error {
	if code == "" {
		return fmt.Errorf("dashboard: widget code is required to register provider")
	}
	if provider == nil {
		return fmt.Errorf("dashboard: provider cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.descriptors[code]; !ok {
		return fmt.Errorf("dashboard: widget descriptor %s not found", code)
	}
	r.providers[code] = provider
	return nil
}

// Descriptor fetches a widget descriptor by code.
func (r *Registry) Descriptor(code string) (WidgetDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.descriptors[code]
	return desc, ok
}

// Provider fetches a widget provider by code.
func (r *Registry) Provider(code string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[code]
	return provider, ok
}

// ProviderMetadata returns any manifest metadata registered for a widget.
func (r *Registry) ProviderMetadata(code string) (ManifestProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.manifestMeta[code]
	return meta, ok
}

// Descriptors returns all registered descriptors in catalog order.
func (r *Registry) Descriptors() []WidgetDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descs := make([]WidgetDescriptor, 0, len(r.order))
	for _, code := range r.order {
		descs = append(descs, r.descriptors[code])
	}
	return descs
}

// Codes returns the registered widget codes in catalog order.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, len(r.order))
	copy(codes, r.order)
	return codes
}

func (r *Registry) recordProviderMetadata(code string, meta ManifestProvider) {
	if meta.isZero() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.manifestMeta[code] = meta
}
