package application

import (
	"context"
	"time"

	"componente-compartido/componente/domain"
)

// Builder constrói mensagens localizadas.
//
// O valor zero funciona: usa o phrasebook embutido e espanhol como fallback.
type Builder struct {
	Phrases  domain.Phrasebook
	Fallback domain.Locale
	Stats    domain.StatsStore
	Now      func() time.Time
}

// Build nunca falha. Idioma desconhecido cai na base ("es-mx" -> "es") e
// depois no Fallback; Message.Locale informa o idioma realmente usado.
func (b Builder) Build(ctx context.Context, label domain.Label, loc domain.Locale) domain.Message {
	used, phrase := b.resolve(loc)
	msg := phrase.Compose(label, used)

	if b.Stats != nil {
		now := time.Now
		if b.Now != nil {
			now = b.Now
		}
		_ = b.Stats.Record(ctx, domain.StatsEvent{
			Outcome:   domain.OutcomeIssued,
			Locale:    msg.Locale,
			Defaulted: msg.Defaulted,
			At:        now(),
		})
	}
	return msg
}

// Supported informa se o idioma tem frase própria (sem fallback).
func (b Builder) Supported(loc domain.Locale) bool {
	_, ok := b.phrases().Lookup(loc)
	return ok
}

func (b Builder) Locales() []domain.Locale { return b.phrases().Locales() }

func (b Builder) resolve(loc domain.Locale) (domain.Locale, domain.Phrase) {
	book := b.phrases()
	if p, ok := book.Lookup(loc); ok {
		return loc, p
	}
	if base := loc.Base(); base != loc {
		if p, ok := book.Lookup(base); ok {
			return base, p
		}
	}

	fb := b.Fallback
	if fb == "" {
		fb = domain.DefaultLocale
	}
	if p, ok := book.Lookup(fb); ok {
		return fb, p
	}
	// phrasebook sem o fallback: usa a frase embutida do idioma do domínio
	return domain.DefaultLocale, domain.DefaultPhrasebook()[domain.DefaultLocale]
}

func (b Builder) phrases() domain.Phrasebook {
	if b.Phrases == nil {
		return domain.DefaultPhrasebook()
	}
	return b.Phrases
}
