package dashboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `
version: "1"
name: Pit Sensors Pack
package: github.com/example/pit-sensors
widgets:
  - descriptor:
      code: pit.widget.seismic
      name: Seismic Activity
      name_localized:
        es: Actividad sísmica
      category: chart
      default_visible: true
    provider:
      name: seismic-feed
      entry: NewSeismicProvider
      capabilities: [realtime]
    tags: [geotech]
  - descriptor:
      code: pit.widget.slope
      name: Slope Monitoring
      category: status
`

func TestDecodeManifest(t *testing.T) {
	doc, err := DecodeManifest(strings.NewReader(sampleManifest))
	require.NoError(t, err)
	require.Len(t, doc.Widgets, 2)

	seismic := doc.Widgets[0]
	assert.Equal(t, "pit.widget.seismic", seismic.Descriptor.Code)
	assert.Equal(t, CategoryChart, seismic.Descriptor.Category)
	assert.True(t, seismic.Descriptor.DefaultVisible)
	assert.Equal(t, "Actividad sísmica", seismic.Descriptor.NameLocalized["es"])
	assert.Equal(t, "seismic-feed", seismic.Provider.Name)
	assert.Equal(t, []string{"realtime"}, seismic.Provider.Capabilities)

	assert.Equal(t, "pit.widget.slope", doc.Widgets[1].Descriptor.Code)
	assert.False(t, doc.Widgets[1].Descriptor.DefaultVisible)
}

func TestDecodeManifestRejectsUnknownFields(t *testing.T) {
	_, err := DecodeManifest(strings.NewReader(`
version: "1"
widgets:
  - descriptor:
      code: a
      name: A
    sidecar: nope
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse manifest")
}

func TestDecodeManifestRejectsEmptyInput(t *testing.T) {
	_, err := DecodeManifest(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestManifestValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     WidgetManifestDocument
		wantErr string
	}{
		{
			name:    "unsupported version",
			doc:     WidgetManifestDocument{Version: "2"},
			wantErr: "unsupported manifest version",
		},
		{
			name: "missing code",
			doc: WidgetManifestDocument{
				Version: "1",
				Widgets: []ManifestWidget{{Descriptor: WidgetDescriptor{Name: "A"}}},
			},
			wantErr: "missing descriptor.code",
		},
		{
			name: "missing name",
			doc: WidgetManifestDocument{
				Version: "1",
				Widgets: []ManifestWidget{{Descriptor: WidgetDescriptor{Code: "a"}}},
			},
			wantErr: "missing descriptor.name",
		},
		{
			name: "unknown category",
			doc: WidgetManifestDocument{
				Version: "1",
				Widgets: []ManifestWidget{{Descriptor: WidgetDescriptor{Code: "a", Name: "A", Category: "weird"}}},
			},
			wantErr: "unknown category",
		},
		{
			name: "duplicate codes",
			doc: WidgetManifestDocument{
				Version: "1",
				Widgets: []ManifestWidget{
					{Descriptor: WidgetDescriptor{Code: "a", Name: "A"}},
					{Descriptor: WidgetDescriptor{Code: "a", Name: "A again"}},
				},
			},
			wantErr: "duplicates widget code",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.doc.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadManifestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0o600))

	reg := NewEmptyRegistry()
	doc, err := reg.LoadManifestFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)

	desc, ok := reg.Descriptor("pit.widget.seismic")
	require.True(t, ok)
	assert.Equal(t, "Seismic Activity", desc.Name)

	meta, ok := reg.ProviderMetadata("pit.widget.seismic")
	require.True(t, ok)
	assert.Equal(t, "NewSeismicProvider", meta.Entry)

	// Slope has no provider metadata in the manifest.
	_, ok = reg.ProviderMetadata("pit.widget.slope")
	assert.False(t, ok)
}

func TestLoadManifestDocumentNil(t *testing.T) {
	reg := NewEmptyRegistry()
	require.Error(t, reg.LoadManifestDocument(nil))
}
