package application

import (
	"context"
	"time"

	"componente-compartido/componente/domain"
)

// ConcurrencyService adquire vaga no pool com timeout opcional.
type ConcurrencyService struct {
	Pool           domain.SlotPool
	AcquireTimeout time.Duration
}

// Acquire devolve (release, ok). Com ok=false nenhuma vaga foi tomada.
// AcquireTimeout <= 0 espera até o ctx da requisição encerrar.
func (s ConcurrencyService) Acquire(ctx context.Context) (func(), bool) {
	if s.Pool == nil {
		return func() {}, true
	}
	if s.AcquireTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.AcquireTimeout)
		defer cancel()
	}
	return s.Pool.Acquire(ctx)
}
