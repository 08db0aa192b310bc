package domain

import (
	"context"
	"time"
)

// Outcome classifica um evento de stats.
type Outcome string

const (
	OutcomeAllowed Outcome = "allowed"
	OutcomeDenied  Outcome = "denied"
	OutcomeIssued  Outcome = "issued"
)

// StatsEvent é um evento do serviço: decisão do rate limit (allowed/denied)
// ou mensagem emitida (issued, com Locale/Defaulted preenchidos).
//
// Cuidado com cardinalidade: Key e Path sem controle podem explodir o número
// de chaves no Redis.
type StatsEvent struct {
	Key     ClientKey
	Outcome Outcome

	Locale    Locale
	Defaulted bool

	Method string
	Path   string

	At time.Time
}

// StatsStore persiste eventos. Quem chama trata erro como best-effort.
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}

type StatsSnapshot struct {
	Total    map[Outcome]int64 `json:"total"`
	ByLocale map[Locale]int64  `json:"byLocale"`
}

// StatsReader é opcional: stores que sabem ler os próprios contadores.
type StatsReader interface {
	Snapshot(ctx context.Context) (StatsSnapshot, error)
}
