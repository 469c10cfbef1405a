package dashboard

import (
	"strings"
	"testing"
)

func chartSchemaDescriptor() WidgetDescriptor {
	return WidgetDescriptor{
		Code:     "mine.widget.test_chart",
		Name:     "Test Chart",
		Category: CategoryChart,
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"chart_type": map[string]any{
					"type": "string",
					"enum": []any{"line", "bar"},
				},
				"limit": map[string]any{
					"type":    "integer",
					"minimum": 1,
				},
			},
			"required":             []any{"chart_type"},
			"additionalProperties": false,
		},
	}
}

func TestValidateConfigurationAccepts(t *testing.T) {
	v := NewJSONSchemaValidator()
	err := v.Validate(chartSchemaDescriptor(), map[string]any{
		"chart_type": "line",
		"limit":      10,
	})
	if err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidateConfigurationRejects(t *testing.T) {
	v := NewJSONSchemaValidator()
	desc := chartSchemaDescriptor()

	cases := []struct {
		name   string
		config map[string]any
	}{
		{"missing required", map[string]any{"limit": 5}},
		{"enum violation", map[string]any{"chart_type": "pie"}},
		{"wrong type", map[string]any{"chart_type": "line", "limit": "ten"}},
		{"unknown property", map[string]any{"chart_type": "bar", "theme": "dark"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(desc, tc.config)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), desc.Code) {
				t.Fatalf("error should name the widget: %v", err)
			}
		})
	}
}

func TestValidateConfigurationNoSchemaPasses(t *testing.T) {
	v := NewJSONSchemaValidator()
	desc := WidgetDescriptor{Code: "mine.widget.plain", Name: "Plain"}
	if err := v.Validate(desc, map[string]any{"anything": true}); err != nil {
		t.Fatalf("schema-less widget should accept any config: %v", err)
	}
}

func TestValidateConfigurationNilConfig(t *testing.T) {
	v := NewJSONSchemaValidator()
	if err := v.Validate(chartSchemaDescriptor(), nil); err == nil {
		t.Fatal("nil config should fail the required clause")
	}
}
