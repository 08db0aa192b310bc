package domain

import "context"

// SlotPool limita quantas requisições constroem mensagens ao mesmo tempo.
//
// Acquire bloqueia até haver vaga ou o ctx encerrar; release deve ser chamado
// exatamente uma vez.
type SlotPool interface {
	Acquire(ctx context.Context) (release func(), ok bool)
}
