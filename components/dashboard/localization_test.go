package dashboard

import "testing"

func TestResolveLocalizedValue(t *testing.T) {
	values := map[string]string{
		"pt":      "Pesquisar",
		"en":      "Search",
		"default": "Busca",
	}

	cases := []struct {
		name   string
		locale string
		want   string
	}{
		{"exact match", "en", "Search"},
		{"case insensitive", "EN", "Search"},
		{"region falls back to language", "pt-BR", "Pesquisar"},
		{"unknown locale uses default", "fr", "Busca"},
		{"empty locale uses default", "", "Busca"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveLocalizedValue(values, tc.locale, "fallback"); got != tc.want {
				t.Fatalf("locale %q: expected %q, got %q", tc.locale, tc.want, got)
			}
		})
	}
}

func TestResolveLocalizedValueFallback(t *testing.T) {
	if got := ResolveLocalizedValue(nil, "pt", "Pesquisar"); got != "Pesquisar" {
		t.Fatalf("expected fallback for nil map, got %q", got)
	}
	values := map[string]string{"en": "Search"}
	if got := ResolveLocalizedValue(values, "fr", "Pesquisar"); got != "Pesquisar" {
		t.Fatalf("expected fallback without default key, got %q", got)
	}
}
