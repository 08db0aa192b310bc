package domain

import (
	"errors"
	"sort"
)

var (
	ErrEmptySuffix  = errors.New("phrase suffix is empty")
	ErrEmptySubject = errors.New("phrase subject is empty")
)

// Phrase é o par (sujeito padrão, sufixo fixo) de um idioma.
type Phrase struct {
	Subject string
	Suffix  string
}

func (p Phrase) Validate() error {
	if p.Suffix == "" {
		return ErrEmptySuffix
	}
	// sem sujeito o rótulo ausente renderizaria " <sufixo>"
	if p.Subject == "" {
		return ErrEmptySubject
	}
	return nil
}

// Render monta "<rótulo> <sufixo>", trocando o rótulo ausente pelo sujeito.
// Nunca falha.
func (p Phrase) Render(l Label) string {
	subject := string(l)
	if !l.Present() {
		subject = p.Subject
	}
	return subject + " " + p.Suffix
}

func (p Phrase) Compose(l Label, loc Locale) Message {
	return Message{
		Text:      p.Render(l),
		Label:     l,
		Locale:    loc,
		Defaulted: !l.Present(),
	}
}

// Phrasebook resolve a frase de um idioma.
type Phrasebook interface {
	Lookup(Locale) (Phrase, bool)
	Locales() []Locale
}

// StaticPhrasebook é um phrasebook em memória, imutável depois de montado.
type StaticPhrasebook map[Locale]Phrase

func (b StaticPhrasebook) Lookup(loc Locale) (Phrase, bool) {
	p, ok := b[loc]
	return p, ok
}

// Locales devolve os idiomas em ordem alfabética.
func (b StaticPhrasebook) Locales() []Locale {
	out := make([]Locale, 0, len(b))
	for loc := range b {
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DefaultPhrasebook devolve uma cópia nova das frases embutidas.
func DefaultPhrasebook() StaticPhrasebook {
	return StaticPhrasebook{
		LocaleES: {Subject: "Componente", Suffix: "compartido listo."},
		LocaleEN: {Subject: "Component", Suffix: "shared ready."},
		LocalePT: {Subject: "Componente", Suffix: "compartilhado pronto."},
	}
}
