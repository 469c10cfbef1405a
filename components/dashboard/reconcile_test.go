package dashboard

import "testing"

func testCatalog(codes ...string) []WidgetDescriptor {
	descs := make([]WidgetDescriptor, len(codes))
	for i, code := range codes {
		descs[i] = WidgetDescriptor{
			Code:           code,
			Name:           code,
			Category:       CategoryMetrics,
			DefaultVisible: true,
		}
	}
	return descs
}

func codesOf(prefs []WidgetPreference) []string {
	codes := make([]string, len(prefs))
	for i, pref := range prefs {
		codes[i] = pref.Code
	}
	return codes
}

func assertCodes(t *testing.T, prefs []WidgetPreference, want ...string) {
	t.Helper()
	got := codesOf(prefs)
	if len(got) != len(want) {
		t.Fatalf("codes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("codes = %v, want %v", got, want)
		}
	}
	for i, pref := range prefs {
		if pref.Position != i {
			t.Fatalf("position of %s = %d, want %d", pref.Code, pref.Position, i)
		}
	}
}

func TestReconcileSynthesizesDefaults(t *testing.T) {
	catalog := testCatalog("a", "b", "c")
	out := Reconcile(catalog, nil)
	assertCodes(t, out, "a", "b", "c")
	for _, pref := range out {
		if !pref.Visible {
			t.Fatalf("widget %s should default visible", pref.Code)
		}
	}
}

func TestReconcileHonorsDefaultVisibility(t *testing.T) {
	catalog := testCatalog("a", "b")
	catalog[1].DefaultVisible = false
	out := Reconcile(catalog, nil)
	if out[0].Visible != true || out[1].Visible != false {
		t.Fatalf("visibility = %v/%v, want true/false", out[0].Visible, out[1].Visible)
	}
}

func TestReconcileAppendsNewWidgets(t *testing.T) {
	// Persisted state predates widget d: it joins at the end with its
	// default visibility while survivors keep their stored choices.
	catalog := testCatalog("a", "b", "c", "d")
	persisted := []WidgetPreference{
		{Code: "a", Visible: true, Position: 0},
		{Code: "b", Visible: false, Position: 1},
		{Code: "c", Visible: true, Position: 2},
	}
	out := Reconcile(catalog, persisted)
	assertCodes(t, out, "a", "b", "c", "d")
	if out[1].Visible {
		t.Fatalf("b should stay hidden")
	}
	if !out[3].Visible {
		t.Fatalf("d should join visible")
	}
}

func TestReconcileDropsRemovedWidgets(t *testing.T) {
	catalog := testCatalog("a", "b")
	persisted := []WidgetPreference{
		{Code: "z", Visible: false, Position: 0},
		{Code: "a", Visible: true, Position: 1},
		{Code: "b", Visible: false, Position: 2},
	}
	out := Reconcile(catalog, persisted)
	assertCodes(t, out, "a", "b")
}

func TestReconcileKeepsPersistedOrder(t *testing.T) {
	catalog := testCatalog("a", "b", "c")
	persisted := []WidgetPreference{
		{Code: "c", Visible: true, Position: 0},
		{Code: "a", Visible: true, Position: 1},
		{Code: "b", Visible: true, Position: 2},
	}
	out := Reconcile(catalog, persisted)
	assertCodes(t, out, "c", "a", "b")
}

func TestReconcileDedupesPersistedCodes(t *testing.T) {
	catalog := testCatalog("a", "b")
	persisted := []WidgetPreference{
		{Code: "a", Visible: false, Position: 0},
		{Code: "a", Visible: true, Position: 1},
		{Code: "b", Visible: true, Position: 2},
	}
	out := Reconcile(catalog, persisted)
	assertCodes(t, out, "a", "b")
	if out[0].Visible {
		t.Fatalf("first occurrence should win")
	}
}

func TestReconcileIdempotent(t *testing.T) {
	catalog := testCatalog("a", "b", "c", "d")
	persisted := []WidgetPreference{
		{Code: "d", Visible: false, Position: 0},
		{Code: "a", Visible: true, Position: 1},
	}
	once := Reconcile(catalog, persisted)
	twice := Reconcile(catalog, once)
	if len(once) != len(twice) {
		t.Fatalf("lengths differ: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("entry %d differs: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestIsPermutation(t *testing.T) {
	prefs := []WidgetPreference{{Code: "a"}, {Code: "b"}, {Code: "c"}}
	cases := []struct {
		name  string
		codes []string
		want  bool
	}{
		{"valid reorder", []string{"c", "a", "b"}, true},
		{"identity", []string{"a", "b", "c"}, true},
		{"missing entry", []string{"a", "b"}, false},
		{"duplicate entry", []string{"a", "a", "b"}, false},
		{"unknown entry", []string{"a", "b", "x"}, false},
		{"extra entry", []string{"a", "b", "c", "d"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isPermutation(tc.codes, prefs); got != tc.want {
				t.Fatalf("isPermutation(%v) = %v, want %v", tc.codes, got, tc.want)
			}
		})
	}
}
