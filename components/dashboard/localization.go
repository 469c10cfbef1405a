package dashboard

import (
	"context"
	"strings"
)

// TranslationService exposes locale-aware translation helpers.
// Implementations can provide pluralization or interpolation while
// providers rely on this lightweight interface.
type TranslationService interface {
	Translate(ctx context.Context, key, locale string, args map[string]any) (string, error)
}

// ResolveLocalizedValue selects the best translation for the provided
// locale and falls back to the supplied value. Keys are matched
// case-insensitively, and language-region pairs (`es-mx`) fall back to
// their base language (`es`) when present.
func ResolveLocalizedValue(values map[string]string, locale, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	for _, candidate := range localeCandidates(locale) {
		if candidate == "" {
			continue
		}
		for key, value := range values {
			if strings.EqualFold(key, candidate) && value != "" {
				return value
			}
		}
	}
	if value, ok := values["default"]; ok && value != "" {
		return value
	}
	return fallback
}

func (desc *WidgetDescriptor) normalizeLocalizedFields() {
	desc.NameLocalized = normalizeLocaleMap(desc.NameLocalized)
	desc.DescriptionLocalized = normalizeLocaleMap(desc.DescriptionLocalized)
}

// NameForLocale returns the display name for the requested locale with
// graceful fallback to the default name.
func (desc WidgetDescriptor) NameForLocale(locale string) string {
	return ResolveLocalizedValue(desc.NameLocalized, locale, desc.Name)
}

// DescriptionForLocale returns the localized description if available.
func (desc WidgetDescriptor) DescriptionForLocale(locale string) string {
	return ResolveLocalizedValue(desc.DescriptionLocalized, locale, desc.Description)
}

func normalizeLocaleMap(values map[string]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	normalized := make(map[string]string, len(values))
	for key, value := range values {
		key = normalizeLocale(key)
		if key == "" || value == "" {
			continue
		}
		normalized[key] = value
	}
	if len(normalized) == 0 {
		return nil
	}
	return normalized
}

func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(strings.ToLower(locale))
	return strings.ReplaceAll(locale, "_", "-")
}

func localeCandidates(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return nil
	}
	candidates := []string{locale}
	if idx := strings.Index(locale, "-"); idx > 0 {
		candidates = append(candidates, locale[:idx])
	}
	return candidates
}

func translateOrFallback(ctx context.Context, translator TranslationService, key, locale, fallback string, args map[string]any) string {
	if translator == nil || key == "" {
		return fallback
	}
	translated, err := translator.Translate(ctx, key, locale, args)
	if err != nil || strings.TrimSpace(translated) == "" || translated == key {
		return fallback
	}
	return translated
}
