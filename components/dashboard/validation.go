package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigValidator checks a widget configuration payload against the
// schema its descriptor declares. Descriptors without a schema accept
// any configuration.
type ConfigValidator interface {
	Validate(desc WidgetDescriptor, config map[string]any) error
}

// JSONSchemaValidator enforces descriptor schemas with jsonschema v5.
// Compiled schemas are cached per widget code; the catalog is fixed for
// the life of the process so the cache never invalidates.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator returns a validator with an empty schema cache.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Validate reports the first schema violation in config, wrapped with
// the widget code. A nil config is treated as an empty object, so
// schemas with required properties still reject it.
func (v *JSONSchemaValidator) Validate(desc WidgetDescriptor, config map[string]any) error {
	if len(desc.Schema) == 0 {
		return nil
	}
	schema, err := v.schemaFor(desc)
	if err != nil {
		return err
	}
	// Round-trip through JSON so typed values (int vs float64, nested
	// structs) land in the representation the schema library validates.
	var payload map[string]any
	if config == nil {
		payload = map[string]any{}
	} else {
		data, err := json.Marshal(config)
		if err != nil {
			return fmt.Errorf("dashboard: marshal config for %s: %w", desc.Code, err)
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("dashboard: normalize config for %s: %w", desc.Code, err)
		}
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("dashboard: configuration for %s failed validation: %w", desc.Code, err)
	}
	return nil
}

// schemaFor compiles the descriptor's schema on first use. Two callers
// racing on a cold code both compile; last write wins and the results
// are identical, so no singleflight is needed.
func (v *JSONSchemaValidator) schemaFor(desc WidgetDescriptor) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[desc.Code]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(desc.Schema)
	if err != nil {
		return nil, fmt.Errorf("dashboard: marshal schema %s: %w", desc.Code, err)
	}
	compiler := jsonschema.NewCompiler()
	name := desc.Code + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("dashboard: load schema %s: %w", desc.Code, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compile schema %s: %w", desc.Code, err)
	}
	v.mu.Lock()
	v.compiled[desc.Code] = compiled
	v.mu.Unlock()
	return compiled, nil
}

type noopConfigValidator struct{}

func (noopConfigValidator) Validate(WidgetDescriptor, map[string]any) error { return nil }
