package dashboard

// Reconcile aligns persisted preferences with the current widget catalog.
// Persisted entries keep their relative order and visibility; catalog
// entries missing from the persisted set are appended with their default
// visibility; persisted entries whose widget no longer exists are dropped.
// Positions are renumbered sequentially, which makes the function
// idempotent: Reconcile(d, Reconcile(d, p)) == Reconcile(d, p).
func Reconcile(descriptors []WidgetDescriptor, prefs []WidgetPreference) []WidgetPreference {
	known := make(map[string]bool, len(descriptors))
	for _, desc := range descriptors {
		known[desc.Code] = true
	}

	out := make([]WidgetPreference, 0, len(descriptors))
	seen := make(map[string]bool, len(prefs))
	for _, pref := range prefs {
		if !known[pref.Code] || seen[pref.Code] {
			continue
		}
		seen[pref.Code] = true
		out = append(out, WidgetPreference{Code: pref.Code, Visible: pref.Visible})
	}
	for _, desc := range descriptors {
		if seen[desc.Code] {
			continue
		}
		out = append(out, WidgetPreference{Code: desc.Code, Visible: desc.DefaultVisible})
	}
	for i := range out {
		out[i].Position = i
	}
	return out
}

// isPermutation reports whether codes is exactly a reordering of the
// codes carried by prefs: same length, no duplicates, no unknown codes.
func isPermutation(codes []string, prefs []WidgetPreference) bool {
	if len(codes) != len(prefs) {
		return false
	}
	current := make(map[string]bool, len(prefs))
	for _, pref := range prefs {
		current[pref.Code] = true
	}
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		if !current[code] || seen[code] {
			return false
		}
		seen[code] = true
	}
	return true
}
