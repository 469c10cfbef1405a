package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultPreferenceKey is the backend key the store writes its single
// preference document under.
const DefaultPreferenceKey = "minedash.widget.preferences"

const preferenceDocumentVersion = 1

// preferenceDocument is the persisted payload: one versioned JSON
// document holding every widget preference.
type preferenceDocument struct {
	Version   int                `json:"version"`
	UpdatedAt time.Time          `json:"updated_at"`
	Widgets   []WidgetPreference `json:"widgets"`
}

// PreferenceStore owns the per-widget visibility/order state and keeps
// it durable through a PreferenceBackend. All operations absorb
// persistence failures: the in-memory state stays correct for the
// session and the next mutation retries the write on its own.
type PreferenceStore struct {
	mu       sync.Mutex
	registry DescriptorRegistry
	backend  PreferenceBackend
	key      string
	log      *slog.Logger
	current  []WidgetPreference
	loaded   bool
}

// PreferenceStoreOption customizes store construction.
type PreferenceStoreOption func(*PreferenceStore)

// WithPreferenceKey overrides the backend document key, letting hosts
// scope preferences per user.
func WithPreferenceKey(key string) PreferenceStoreOption {
	return func(s *PreferenceStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger injects the structured logger used for absorbed failures.
func WithLogger(log *slog.Logger) PreferenceStoreOption {
	return func(s *PreferenceStore) {
		if log != nil {
			s.log = log
		}
	}
}

// NewPreferenceStore builds a store over the given registry and backend.
// A nil backend falls back to an in-memory document, which keeps the
// dashboard usable without durability.
func NewPreferenceStore(registry DescriptorRegistry, backend PreferenceBackend, opts ...PreferenceStoreOption) *PreferenceStore {
	if registry == nil {
		registry = NewRegistry()
	}
	if backend == nil {
		backend = NewMemoryBackend()
	}
	s := &PreferenceStore{
		registry: registry,
		backend:  backend,
		key:      DefaultPreferenceKey,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the canonical preference sequence, reading the backend
// on first use only. An absent or malformed document synthesizes
// defaults from the catalog; the failure is logged, never surfaced.
// Once loaded the in-memory sequence is authoritative for the session,
// so a failed write cannot be undone by a later read.
func (s *PreferenceStore) Load(ctx context.Context) []WidgetPreference {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)
	return clonePreferences(s.current)
}

func (s *PreferenceStore) loadLocked(ctx context.Context) {
	persisted := s.readLocked(ctx)
	s.current = Reconcile(s.registry.Descriptors(), persisted)
	s.loaded = true
	s.persistLocked(ctx)
}

func (s *PreferenceStore) readLocked(ctx context.Context) []WidgetPreference {
	raw, err := s.backend.ReadRaw(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("preference read failed, using catalog defaults",
				"key", s.key, "error", err)
		}
		return nil
	}
	prefs, err := decodePreferenceDocument(raw)
	if err != nil {
		s.log.Warn("persisted preferences are malformed, using catalog defaults",
			"key", s.key, "error", err)
		return nil
	}
	return prefs
}

// Toggle flips visibility for the given widget code. Unknown codes are a
// logged no-op. The new state persists synchronously before returning.
func (s *PreferenceStore) Toggle(ctx context.Context, code string) []WidgetPreference {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)
	found := false
	for i := range s.current {
		if s.current[i].Code == code {
			s.current[i].Visible = !s.current[i].Visible
			found = true
			break
		}
	}
	if !found {
		s.log.Debug("toggle ignored for unknown widget", "code", code)
		return clonePreferences(s.current)
	}
	s.persistLocked(ctx)
	return clonePreferences(s.current)
}

// Reorder replaces the ordering wholesale without changing visibility.
// A sequence that is not a permutation of the current codes is rejected
// as a no-op so a caller bug cannot silently drop a widget.
func (s *PreferenceStore) Reorder(ctx context.Context, codes []string) []WidgetPreference {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)
	if !isPermutation(codes, s.current) {
		s.log.Warn("reorder rejected: sequence is not a permutation of known widgets",
			"requested", len(codes), "known", len(s.current))
		return clonePreferences(s.current)
	}
	byCode := make(map[string]WidgetPreference, len(s.current))
	for _, pref := range s.current {
		byCode[pref.Code] = pref
	}
	reordered := make([]WidgetPreference, 0, len(codes))
	for i, code := range codes {
		pref := byCode[code]
		pref.Position = i
		reordered = append(reordered, pref)
	}
	s.current = reordered
	s.persistLocked(ctx)
	return clonePreferences(s.current)
}

// Save bulk-replaces the preference set, used by the explicit "apply
// customization" action. Input goes through the same reconciliation as
// Load, so stale or unknown codes are dropped rather than persisted.
func (s *PreferenceStore) Save(ctx context.Context, prefs []WidgetPreference) []WidgetPreference {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Reconcile(s.registry.Descriptors(), prefs)
	s.loaded = true
	s.persistLocked(ctx)
	return clonePreferences(s.current)
}

// Reset discards persisted state and restores catalog defaults.
func (s *PreferenceStore) Reset(ctx context.Context) []WidgetPreference {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Reconcile(s.registry.Descriptors(), nil)
	s.loaded = true
	s.persistLocked(ctx)
	return clonePreferences(s.current)
}

func (s *PreferenceStore) ensureLoadedLocked(ctx context.Context) {
	if !s.loaded {
		s.loadLocked(ctx)
	}
}

func (s *PreferenceStore) persistLocked(ctx context.Context) {
	doc := preferenceDocument{
		Version:   preferenceDocumentVersion,
		UpdatedAt: time.Now().UTC(),
		Widgets:   s.current,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		s.log.Warn("preference encode failed, state kept in memory only", "error", err)
		return
	}
	if err := s.backend.WriteRaw(ctx, s.key, data); err != nil {
		s.log.Warn("preference write failed, state kept in memory only",
			"key", s.key, "error", err)
	}
}

// decodePreferenceDocument strictly decodes a persisted payload. Any
// shape mismatch is an error so callers treat the document as absent
// instead of trusting partial state.
func decodePreferenceDocument(raw []byte) ([]WidgetPreference, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var doc preferenceDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("dashboard: decode preference document: %w", err)
	}
	if doc.Version != preferenceDocumentVersion {
		return nil, fmt.Errorf("dashboard: unsupported preference document version %d", doc.Version)
	}
	for i, pref := range doc.Widgets {
		if pref.Code == "" {
			return nil, fmt.Errorf("dashboard: preference entry %d is missing its widget code", i)
		}
	}
	return doc.Widgets, nil
}

func clonePreferences(prefs []WidgetPreference) []WidgetPreference {
	out := make([]WidgetPreference, len(prefs))
	copy(out, prefs)
	return out
}

// MemoryBackend is a concurrency-safe in-memory PreferenceBackend used
// as the default store and in tests.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

// ReadRaw returns the stored document or ErrNotFound.
func (b *MemoryBackend) ReadRaw(_ context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// WriteRaw stores the document under key.
func (b *MemoryBackend) WriteRaw(_ context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	b.data[key] = stored
	return nil
}
