package componente

import (
	"net"
	"net/http"
	"strings"
	"time"

	"componente-compartido/componente/application"
	"componente-compartido/componente/domain"
	"componente-compartido/internal/logging"
)

// KeyFunc extrai a chave do cliente de uma requisição.
type KeyFunc func(r *http.Request) domain.ClientKey

type Options struct {
	Store               domain.LimiterStore
	Stats               domain.StatsStore
	Logger              *logging.Logger
	KeyFn               KeyFunc
	RouteFn             RouteFunc
	KeyHeader           string
	TrustXForwardedFor  bool
	RejectStatus        int
	RetryAfter          time.Duration
	AddRateLimitHeaders bool
}

// RouteFunc devolve o rótulo de rota gravado nas stats.
type RouteFunc func(r *http.Request) string

// otherRoute agrupa caminhos desconhecidos para não explodir a cardinalidade.
const otherRoute = "other"

// KnownRoutes grava só os caminhos informados; o resto vira "other".
func KnownRoutes(paths ...string) RouteFunc {
	known := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		known[p] = struct{}{}
	}
	return func(r *http.Request) string {
		if _, ok := known[r.URL.Path]; ok {
			return r.URL.Path
		}
		return otherRoute
	}
}

type rateInfo interface {
	RPS() float64
	Burst() int
}

// DefaultKeyFunc: header configurado, depois o primeiro IP do X-Forwarded-For
// (se confiável), depois o host de RemoteAddr.
func DefaultKeyFunc(keyHeader string, trustXFF bool) KeyFunc {
	return func(r *http.Request) domain.ClientKey {
		if keyHeader != "" {
			if v := strings.TrimSpace(r.Header.Get(keyHeader)); v != "" {
				return domain.ClientKey(v)
			}
		}

		if trustXFF {
			if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
				first, _, _ := strings.Cut(xff, ",")
				if ip := strings.TrimSpace(first); ip != "" {
					return domain.ClientKey(ip)
				}
			}
		}

		addr := strings.TrimSpace(r.RemoteAddr)
		if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
			return domain.ClientKey(host)
		}
		if addr != "" {
			return domain.ClientKey(addr)
		}
		return "unknown"
	}
}

// Middleware aplica o rate limit por cliente e registra allowed/denied.
func Middleware(opts Options) func(next http.Handler) http.Handler {
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusTooManyRequests
	}
	if opts.RetryAfter == 0 {
		opts.RetryAfter = time.Second
	}
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc(opts.KeyHeader, opts.TrustXForwardedFor)
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.RouteFn == nil {
		opts.RouteFn = KnownRoutes(routePaths...)
	}

	svc := application.Service{
		Store:      opts.Store,
		RetryAfter: opts.RetryAfter,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := opts.KeyFn(r)

			if opts.AddRateLimitHeaders {
				w.Header().Set("X-RateLimit-Key", string(key))
				if ri, ok := opts.Store.(rateInfo); ok {
					w.Header().Set("X-RateLimit-RPS", formatFloat(ri.RPS()))
					w.Header().Set("X-RateLimit-Burst", formatInt(ri.Burst()))
				}
			}

			dec := svc.Decide(key)
			if opts.Stats != nil {
				outcome := domain.OutcomeAllowed
				if !dec.Allowed {
					outcome = domain.OutcomeDenied
				}
				err := opts.Stats.Record(r.Context(), domain.StatsEvent{
					Key:     key,
					Outcome: outcome,
					Method:  r.Method,
					Path:    opts.RouteFn(r),
					At:      time.Now(),
				})
				if err != nil {
					requestLogger(r.Context(), opts.Logger).WithError(err).Warn("stats record failed")
				}
			}
			if !dec.Allowed {
				requestLogger(r.Context(), opts.Logger).Debugw("rate limited", "key", key)
				w.Header().Set("Retry-After", formatInt(retryAfterSeconds(dec.RetryAfter)))
				writeError(w, opts.RejectStatus, http.StatusText(opts.RejectStatus))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
