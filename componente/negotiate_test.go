package componente

import (
	"testing"

	"componente-compartido/componente/domain"
)

func TestNegotiator_Match(t *testing.T) {
	n := newNegotiator(domain.DefaultPhrasebook().Locales())

	cases := map[string]domain.Locale{
		"":                "",
		"es-MX,es;q=0.9":  domain.LocaleES,
		"pt-BR":           domain.LocalePT,
		"fr-FR, en;q=0.5": domain.LocaleEN,
		"ja":              "",
	}
	for header, want := range cases {
		if got := n.Match(header); got != want {
			t.Errorf("Match(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestNegotiator_NoLocales(t *testing.T) {
	n := newNegotiator(nil)
	if got := n.Match("es"); got != "" {
		t.Fatalf("expected empty match, got %q", got)
	}
}
