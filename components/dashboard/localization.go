package dashboard

import (
	"context"
	"strings"
)

// TranslationService exposes locale-aware translation helpers so transports
// and providers can localize card payloads without binding to a concrete
// i18n engine.
type TranslationService interface {
	Translate(ctx context.Context, key, locale string, args map[string]any) (string, error)
}

// ResolveLocalizedValue selects the best translation for the locale and falls
// back to the supplied value. Keys match case-insensitively and
// language-region pairs (`pt-br`) fall back to their base language (`pt`).
func ResolveLocalizedValue(values map[string]string, locale, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	for _, candidate := range localeCandidates(locale) {
		if value := lookupFold(values, candidate); value != "" {
			return value
		}
	}
	return fallback
}

// localeCandidates lists lookup keys in preference order: the full locale,
// its base language, then the "default" entry.
func localeCandidates(locale string) []string {
	locale = strings.TrimSpace(strings.ToLower(locale))
	candidates := make([]string, 0, 3)
	if locale != "" {
		candidates = append(candidates, locale)
		if idx := strings.Index(locale, "-"); idx > 0 {
			candidates = append(candidates, locale[:idx])
		}
	}
	return append(candidates, "default")
}

func lookupFold(values map[string]string, candidate string) string {
	for key, value := range values {
		if strings.EqualFold(key, candidate) {
			return value
		}
	}
	return ""
}

func translateOrFallback(ctx context.Context, svc TranslationService, key, locale, fallback string, params map[string]any) string {
	if svc != nil {
		if translated, err := svc.Translate(ctx, key, locale, params); err == nil && translated != "" {
			return translated
		}
	}
	if fallback != "" {
		return fallback
	}
	return key
}
