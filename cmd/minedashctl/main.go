package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	env "github.com/caarlos0/env/v11"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	dashboard "github.com/minetrics/go-minedash/components/dashboard"
	"github.com/minetrics/go-minedash/pkg/prefstore"
)

// envConfig holds defaults read from the environment so operators can
// point the CLI at a site's data directory once.
type envConfig struct {
	DataDir   string `env:"MINEDASH_DATA_DIR" envDefault:"."`
	WeekStart string `env:"MINEDASH_WEEK_START" envDefault:"monday"`
}

type cli struct {
	Scaffold scaffoldCmd `cmd:"" help:"Scaffold a widget descriptor, provider stub, and manifest entry."`
	Resolve  resolveCmd  `cmd:"" help:"Resolve a date-range selector to concrete start/end instants."`
	Prefs    prefsCmd    `cmd:"" help:"Inspect or mutate stored widget preferences."`
}

func main() {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "minedashctl: parse environment: %v\n", err)
		os.Exit(1)
	}
	ctx := kong.Parse(&cli{},
		kong.Description("Operations utility for go-minedash widget manifests and preferences."),
		kong.UsageOnError(),
		kong.Bind(&cfg),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

type scaffoldCmd struct {
	Code            string   `required:"" help:"Fully-qualified widget code (e.g. mine.widget.ventilation)."`
	Name            string   `required:"" help:"Display name for the widget."`
	Description     string   `required:"" help:"One-line description used in manifests."`
	Category        string   `default:"metrics" help:"Widget category (status, chart, metrics, inventory)."`
	Visible         bool     `help:"Mark the widget visible by default."`
	ManifestPath    string   `required:"" type:"path" help:"Path to the widget manifest YAML file to update."`
	SchemaPath      string   `type:"path" help:"Optional path to a JSON schema file for the widget configuration."`
	Tag             []string `help:"Optional tags to include in the manifest (use multiple --tag flags)."`
	Maintainer      []string `help:"Maintainers to record in the manifest."`
	Capabilities    []string `help:"Provider capability labels (html,json,sse,...)."`
	DocsURL         string   `help:"Link to provider documentation."`
	Channel         string   `help:"Distribution channel label (site, contractor, internal)."`
	ProviderPackage string   `default:"github.com/minetrics/go-minedash/components/dashboard" help:"Go package where the provider factory lives."`
	ProviderEntry   string   `help:"Factory identifier recorded in the manifest (defaults to New<Widget>Provider)."`
	ProviderOut     string   `help:"File path for the generated provider stub (defaults to components/dashboard/providers/<code>_provider.go)."`
	Overwrite       bool     `help:"Overwrite existing provider stub / manifest entry if present."`
	SkipProvider    bool     `name:"skip-provider" help:"Skip provider stub generation."`
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	if err := cmd.validate(); err != nil {
		return err
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("minedashctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	if !cmd.Overwrite {
		for _, widget := range doc.Widgets {
			if widget.Descriptor.Code == cmd.Code {
				return fmt.Errorf("minedashctl: manifest already defines widget %s (use --overwrite to replace)", cmd.Code)
			}
		}
	}

	schema, err := cmd.loadSchema()
	if err != nil {
		return err
	}

	baseName := deriveBaseName(cmd.Code)
	providerType := baseName + "Provider"
	providerEntry := cmd.ProviderEntry
	if providerEntry == "" {
		providerEntry = fmt.Sprintf("%s.New%s", cmd.ProviderPackage, providerType)
	}

	entry := dashboard.ManifestWidget{
		Descriptor: dashboard.WidgetDescriptor{
			Code:           cmd.Code,
			Name:           cmd.Name,
			Description:    cmd.Description,
			Category:       dashboard.WidgetCategory(cmd.Category),
			DefaultVisible: cmd.Visible,
			Schema:         schema,
		},
		Provider: dashboard.ManifestProvider{
			Name:         fmt.Sprintf("%s Provider", cmd.Name),
			Summary:      cmd.Description,
			Entry:        providerEntry,
			Package:      cmd.ProviderPackage,
			DocsURL:      cmd.DocsURL,
			Capabilities: cmd.Capabilities,
			Channel:      cmd.Channel,
		},
		Maintainers: cmd.Maintainer,
		Tags:        cmd.Tag,
	}

	if cmd.Overwrite {
		replaced := false
		for idx := range doc.Widgets {
			if doc.Widgets[idx].Descriptor.Code == cmd.Code {
				doc.Widgets[idx] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			doc.Widgets = append(doc.Widgets, entry)
		}
	} else {
		doc.Widgets = append(doc.Widgets, entry)
	}

	sort.Slice(doc.Widgets, func(i, j int) bool {
		return doc.Widgets[i].Descriptor.Code < doc.Widgets[j].Descriptor.Code
	})

	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}

	if cmd.SkipProvider {
		fmt.Fprintf(os.Stdout, "✓ Added %s to %s (provider entry recorded as %s)\n", cmd.Code, manifestPath, providerEntry)
		return nil
	}

	providerPath := cmd.ProviderOut
	if providerPath == "" {
		providerPath = filepath.Join("components", "dashboard", "providers", fmt.Sprintf("%s_provider.go", sanitizeFileName(cmd.Code)))
	}
	if err := writeProviderStub(providerPath, providerType, cmd.Code, cmd.Overwrite); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s to %s and generated %s\n", cmd.Code, manifestPath, providerPath)
	return nil
}

func (cmd *scaffoldCmd) validate() error {
	if !strings.Contains(cmd.Code, ".") {
		return fmt.Errorf("minedashctl: widget code %s must contain at least one '.' segment", cmd.Code)
	}
	if !dashboard.KnownCategory(dashboard.WidgetCategory(cmd.Category)) {
		return fmt.Errorf("minedashctl: unknown category %q", cmd.Category)
	}
	return nil
}

func (cmd *scaffoldCmd) loadSchema() (map[string]any, error) {
	if cmd.SchemaPath == "" {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}, nil
	}
	data, err := os.ReadFile(cmd.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("minedashctl: read schema file: %w", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("minedashctl: parse schema JSON: %w", err)
	}
	return schema, nil
}

func loadOrInitManifest(path string) (*dashboard.WidgetManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			doc := &dashboard.WidgetManifestDocument{
				Version: dashboard.ManifestVersion,
				Widgets: []dashboard.ManifestWidget{},
				Source:  path,
			}
			return doc, nil
		}
		return nil, fmt.Errorf("minedashctl: stat manifest: %w", err)
	}
	doc, err := dashboard.ReadManifest(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func writeManifest(path string, doc *dashboard.WidgetManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("minedashctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("minedashctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("minedashctl: write manifest: %w", err)
	}
	return nil
}

func writeProviderStub(path, providerType, code string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("minedashctl: provider stub %s already exists (use --overwrite or --provider-out)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("minedashctl: mkdir provider dir: %w", err)
	}
	content := fmt.Sprintf(`package dashboard

import (
	"context"
)

// %s fetches data for %s widgets.
type %s struct{}

// New%s wires the provider into the dashboard registry.
func New%s() Provider {
	return &%s{}
}

// Fetch retrieves the widget payload. Replace with your implementation.
func (p *%s) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	_ = meta
	return WidgetData{
		"message": "replace with real data",
	}, nil
}
`, providerType, code, providerType, providerType, providerType, providerType, providerType)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("minedashctl: write provider stub: %w", err)
	}
	return nil
}

func deriveBaseName(code string) string {
	parts := strings.Split(code, ".")
	slug := parts[len(parts)-1]
	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = code
	}
	return strcase.ToCamel(slug)
}

func sanitizeFileName(code string) string {
	replacer := strings.NewReplacer(".", "_", "-", "_", "/", "_", " ", "_")
	return strings.ToLower(replacer.Replace(code))
}

type resolveCmd struct {
	Selector string `arg:"" help:"Selector tag (today, this-week, this-month, last-7-days, last-30-days)."`
	At       string `help:"Reference instant in RFC 3339 (defaults to now)."`
}

func (cmd *resolveCmd) Run(_ context.Context, cfg *envConfig) error {
	now := time.Now()
	if cmd.At != "" {
		parsed, err := time.Parse(time.RFC3339, cmd.At)
		if err != nil {
			return fmt.Errorf("minedashctl: parse --at: %w", err)
		}
		now = parsed
	}
	weekStart, err := parseWeekStart(cfg.WeekStart)
	if err != nil {
		return err
	}
	rng, err := dashboard.Resolve(dashboard.Selector(cmd.Selector), now, weekStart)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(map[string]any{
		"selector": cmd.Selector,
		"start":    rng.Start.Format(time.RFC3339Nano),
		"end":      rng.End.Format(time.RFC3339Nano),
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}

func parseWeekStart(raw string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "monday":
		return time.Monday, nil
	case "sunday":
		return time.Sunday, nil
	case "saturday":
		return time.Saturday, nil
	default:
		return time.Monday, fmt.Errorf("minedashctl: unsupported week start %q", raw)
	}
}

type prefsCmd struct {
	List   prefsListCmd   `cmd:"" help:"Print stored widget preferences."`
	Toggle prefsToggleCmd `cmd:"" help:"Flip a widget's visibility."`
	Reset  prefsResetCmd  `cmd:"" help:"Restore catalog defaults."`
}

func openPrefStore(cfg *envConfig) (*dashboard.PreferenceStore, error) {
	backend, err := prefstore.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return dashboard.NewPreferenceStore(dashboard.NewRegistry(), backend), nil
}

type prefsListCmd struct{}

func (cmd *prefsListCmd) Run(ctx context.Context, cfg *envConfig) error {
	store, err := openPrefStore(cfg)
	if err != nil {
		return err
	}
	return printPreferences(store.Load(ctx))
}

type prefsToggleCmd struct {
	Code string `arg:"" help:"Widget code to toggle."`
}

func (cmd *prefsToggleCmd) Run(ctx context.Context, cfg *envConfig) error {
	store, err := openPrefStore(cfg)
	if err != nil {
		return err
	}
	return printPreferences(store.Toggle(ctx, cmd.Code))
}

type prefsResetCmd struct{}

func (cmd *prefsResetCmd) Run(ctx context.Context, cfg *envConfig) error {
	store, err := openPrefStore(cfg)
	if err != nil {
		return err
	}
	return printPreferences(store.Reset(ctx))
}

func printPreferences(prefs []dashboard.WidgetPreference) error {
	out, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
