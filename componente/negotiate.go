package componente

import (
	"golang.org/x/text/language"

	"componente-compartido/componente/domain"
)

// negotiator escolhe, entre os idiomas do phrasebook, o melhor para um
// header Accept-Language.
type negotiator struct {
	locales []domain.Locale
	matcher language.Matcher
}

func newNegotiator(locales []domain.Locale) *negotiator {
	n := &negotiator{}
	tags := make([]language.Tag, 0, len(locales))
	for _, loc := range locales {
		tag, err := language.Parse(string(loc))
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		n.locales = append(n.locales, loc)
	}
	if len(tags) > 0 {
		n.matcher = language.NewMatcher(tags)
	}
	return n
}

// Match devolve "" quando nada combina; o Builder aplica o fallback.
func (n *negotiator) Match(acceptLanguage string) domain.Locale {
	if n.matcher == nil || acceptLanguage == "" {
		return ""
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return ""
	}
	_, idx, conf := n.matcher.Match(prefs...)
	if conf == language.No || idx < 0 || idx >= len(n.locales) {
		return ""
	}
	return n.locales[idx]
}
