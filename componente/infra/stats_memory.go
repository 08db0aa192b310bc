package infra

import (
	"context"
	"sync"

	"componente-compartido/componente/domain"
)

// Counters conta eventos por outcome.
type Counters struct {
	Allowed int64 `json:"allowed"`
	Denied  int64 `json:"denied"`
	Issued  int64 `json:"issued"`
}

func (c *Counters) add(o domain.Outcome) {
	switch o {
	case domain.OutcomeAllowed:
		c.Allowed++
	case domain.OutcomeDenied:
		c.Denied++
	case domain.OutcomeIssued:
		c.Issued++
	}
}

// MemoryStatsStore guarda contadores em memória.
// Sem expiração; serve para testes e para rodar sem Redis.
type MemoryStatsStore struct {
	mu        sync.Mutex
	total     Counters
	defaulted int64
	byRoute   map[string]Counters
	byLocale  map[domain.Locale]int64
	byKey     map[domain.ClientKey]Counters

	trackKeys bool
}

type MemoryStatsOption func(*MemoryStatsStore)

func WithTrackKeys(track bool) MemoryStatsOption {
	return func(s *MemoryStatsStore) { s.trackKeys = track }
}

func NewMemoryStatsStore(opts ...MemoryStatsOption) *MemoryStatsStore {
	s := &MemoryStatsStore{
		byRoute:  make(map[string]Counters),
		byLocale: make(map[domain.Locale]int64),
		byKey:    make(map[domain.ClientKey]Counters),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.StatsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total.add(ev.Outcome)

	if route := routeField(ev.Method, ev.Path); route != "" {
		c := s.byRoute[route]
		c.add(ev.Outcome)
		s.byRoute[route] = c
	}

	if ev.Outcome == domain.OutcomeIssued {
		s.byLocale[ev.Locale]++
		if ev.Defaulted {
			s.defaulted++
		}
	}

	if s.trackKeys && ev.Key != "" {
		c := s.byKey[ev.Key]
		c.add(ev.Outcome)
		s.byKey[ev.Key] = c
	}
	return nil
}

func (s *MemoryStatsStore) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Defaulted conta mensagens emitidas com o sujeito padrão.
func (s *MemoryStatsStore) Defaulted() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaulted
}

func (s *MemoryStatsStore) ByRoute() map[string]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Counters, len(s.byRoute))
	for k, v := range s.byRoute {
		out[k] = v
	}
	return out
}

func (s *MemoryStatsStore) ByKey() map[domain.ClientKey]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[domain.ClientKey]Counters, len(s.byKey))
	for k, v := range s.byKey {
		out[k] = v
	}
	return out
}

// Snapshot implementa domain.StatsReader.
func (s *MemoryStatsStore) Snapshot(context.Context) (domain.StatsSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := domain.StatsSnapshot{
		Total: map[domain.Outcome]int64{
			domain.OutcomeAllowed: s.total.Allowed,
			domain.OutcomeDenied:  s.total.Denied,
			domain.OutcomeIssued:  s.total.Issued,
		},
		ByLocale: make(map[domain.Locale]int64, len(s.byLocale)),
	}
	for k, v := range s.byLocale {
		snap.ByLocale[k] = v
	}
	return snap, nil
}
