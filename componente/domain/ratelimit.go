package domain

import "time"

// ClientKey identifica quem está chamando (IP, API key, ...).
type ClientKey string

// Limiter responde se mais uma requisição cabe agora.
// A infra usa token bucket (golang.org/x/time/rate).
type Limiter interface {
	Allow() bool
}

// LimiterStore entrega um Limiter por cliente.
type LimiterStore interface {
	Get(ClientKey) Limiter
}

type Decision struct {
	Allowed bool
	// RetryAfter vai no header Retry-After quando bloqueado. 0 = sem sugestão.
	RetryAfter time.Duration
}
