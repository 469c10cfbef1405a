package prefstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	dashboard "github.com/minetrics/go-minedash/components/dashboard"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if _, err := store.ReadRaw(ctx, "minedash.widget.preferences"); !errors.Is(err, dashboard.ErrNotFound) {
		t.Fatalf("missing key: %v", err)
	}

	payload := []byte(`{"version":1,"widgets":[]}`)
	if err := store.WriteRaw(ctx, "minedash.widget.preferences", payload); err != nil {
		t.Fatalf("WriteRaw: %v", err)
	}
	got, err := store.ReadRaw(ctx, "minedash.widget.preferences")
	if err != nil {
		t.Fatalf("ReadRaw: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("document = %s", got)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	store.WriteRaw(ctx, "k", []byte("first"))
	store.WriteRaw(ctx, "k", []byte("second"))
	got, err := store.ReadRaw(ctx, "k")
	if err != nil || string(got) != "second" {
		t.Fatalf("got %s, %v", got, err)
	}
}

func TestFileStoreRejectsEscapingKeys(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	for _, key := range []string{"", "../escape", "a/b"} {
		if err := store.WriteRaw(ctx, key, []byte("x")); err == nil {
			t.Fatalf("key %q accepted", key)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("directory not empty: %v", entries)
	}
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "prefs")
	if _, err := NewFileStore(dir); err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}
}

func TestFileStoreBacksPreferenceStore(t *testing.T) {
	backend, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	reg := dashboard.NewEmptyRegistry()
	for _, code := range []string{"a", "b"} {
		err := reg.RegisterDescriptor(dashboard.WidgetDescriptor{
			Code: code, Name: code, Category: dashboard.CategoryMetrics, DefaultVisible: true,
		})
		if err != nil {
			t.Fatalf("RegisterDescriptor: %v", err)
		}
	}

	ctx := context.Background()
	store := dashboard.NewPreferenceStore(reg, backend)
	store.Toggle(ctx, "a")

	reloaded := dashboard.NewPreferenceStore(reg, backend).Load(ctx)
	if reloaded[0].Visible {
		t.Fatal("toggle did not survive through the file backend")
	}
}
