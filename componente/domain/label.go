package domain

import "strings"

// Label é o nome opcional que entra na mensagem. "" significa ausente.
//
// O texto é preservado como veio (acentos, espaços, qualquer runa).
type Label string

func (l Label) Present() bool { return l != "" }

// Locale identifica o idioma de uma frase ("es", "en", "pt", ...).
type Locale string

const (
	LocaleES Locale = "es"
	LocaleEN Locale = "en"
	LocalePT Locale = "pt"
)

// DefaultLocale é o idioma do domínio: espanhol.
const DefaultLocale = LocaleES

// ParseLocale normaliza uma tag vinda de fora (query, flag, env).
// "ES_mx " vira "es-mx".
func ParseLocale(s string) Locale {
	s = strings.ToLower(strings.TrimSpace(s))
	return Locale(strings.ReplaceAll(s, "_", "-"))
}

// Base devolve só o subtag primário ("es-mx" -> "es").
func (l Locale) Base() Locale {
	if i := strings.IndexByte(string(l), '-'); i > 0 {
		return l[:i]
	}
	return l
}

// Message é o resultado de uma construção. Criada a cada chamada, pertence
// a quem chamou.
type Message struct {
	Text      string
	Label     Label
	Locale    Locale
	Defaulted bool
}
