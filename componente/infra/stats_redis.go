package infra

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"componente-compartido/componente/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStatsStore grava contadores em hashes do Redis:
//
//	<prefix>:total               allowed/denied/issued (cumulativo, sem TTL)
//	<prefix>:minute:YYYYMMDDhhmm idem, por minuto (com TTL)
//	<prefix>:route               "<METHOD> <path>:<outcome>"
//	<prefix>:locale              issued por idioma (+ "<locale>:defaulted")
//	<prefix>:key:<cliente>       só com trackKeys (com TTL)
type RedisStatsStore struct {
	rdb redis.Cmdable

	prefix string
	ttl    time.Duration
	bucket string // "minute" (padrão) ou "none"

	trackKeys bool
}

type RedisStatsOption func(*RedisStatsStore)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.prefix = strings.Trim(prefix, ":") }
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.ttl = d }
}

func WithStatsBucket(bucket string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func WithStatsTrackKeys(track bool) RedisStatsOption {
	return func(s *RedisStatsStore) { s.trackKeys = track }
}

func NewRedisStatsStore(rdb redis.Cmdable, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix: "componente:stats",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStatsStore) totalKey() string  { return s.prefix + ":total" }
func (s *RedisStatsStore) routeKey() string  { return s.prefix + ":route" }
func (s *RedisStatsStore) localeKey() string { return s.prefix + ":locale" }

func (s *RedisStatsStore) minuteKey(at time.Time) string {
	return fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))
}

func (s *RedisStatsStore) clientKey(k domain.ClientKey) string {
	return s.prefix + ":key:" + string(k)
}

func (s *RedisStatsStore) Record(ctx context.Context, ev domain.StatsEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	field := string(ev.Outcome)

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.totalKey(), field, 1)

	if s.bucket == "minute" {
		bucketKey := s.minuteKey(at)
		pipe.HIncrBy(ctx, bucketKey, field, 1)
		if s.ttl > 0 {
			pipe.Expire(ctx, bucketKey, s.ttl)
		}
	}

	if route := routeField(ev.Method, ev.Path); route != "" {
		pipe.HIncrBy(ctx, s.routeKey(), route+":"+field, 1)
	}

	if ev.Outcome == domain.OutcomeIssued && ev.Locale != "" {
		pipe.HIncrBy(ctx, s.localeKey(), string(ev.Locale), 1)
		if ev.Defaulted {
			pipe.HIncrBy(ctx, s.localeKey(), string(ev.Locale)+":defaulted", 1)
		}
	}

	if s.trackKeys {
		if k := domain.ClientKey(strings.TrimSpace(string(ev.Key))); k != "" {
			keyKey := s.clientKey(k)
			pipe.HIncrBy(ctx, keyKey, field, 1)
			if s.ttl > 0 {
				pipe.Expire(ctx, keyKey, s.ttl)
			}
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis stats record: %w", err)
	}
	return nil
}

// Snapshot implementa domain.StatsReader lendo total e locale.
func (s *RedisStatsStore) Snapshot(ctx context.Context) (domain.StatsSnapshot, error) {
	snap := domain.StatsSnapshot{
		Total:    make(map[domain.Outcome]int64),
		ByLocale: make(map[domain.Locale]int64),
	}
	if s == nil || s.rdb == nil {
		return snap, nil
	}

	total, err := s.rdb.HGetAll(ctx, s.totalKey()).Result()
	if err != nil {
		return snap, fmt.Errorf("redis stats total: %w", err)
	}
	for k, v := range total {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return snap, fmt.Errorf("redis stats total %s=%q: %w", k, v, err)
		}
		snap.Total[domain.Outcome(k)] = n
	}

	locales, err := s.rdb.HGetAll(ctx, s.localeKey()).Result()
	if err != nil {
		return snap, fmt.Errorf("redis stats locale: %w", err)
	}
	for k, v := range locales {
		if strings.HasSuffix(k, ":defaulted") {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return snap, fmt.Errorf("redis stats locale %s=%q: %w", k, v, err)
		}
		snap.ByLocale[domain.Locale(k)] = n
	}
	return snap, nil
}

func routeField(method, path string) string {
	return strings.TrimSpace(strings.TrimSpace(method) + " " + strings.TrimSpace(path))
}
