// Package config lê a configuração do servidor a partir de variáveis de
// ambiente, carregando antes .env.local e .env se existirem.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr     string
	DefaultLocale  string
	PhrasebookPath string

	RateEnabled bool
	RateRPS     float64
	RateBurst   int
	KeyHeader   string
	TrustXFF    bool
	RetryAfter  time.Duration
	AddHeaders  bool

	ConcurrencyMax     int
	ConcurrencyTimeout time.Duration

	Stats StatsConfig
	Log   LogConfig
}

type StatsConfig struct {
	RedisEnabled  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Prefix        string
	TTL           time.Duration
	Bucket        string
	TrackKeys     bool
}

type LogConfig struct {
	Level    string
	Encoding string
	Output   string
	Dev      bool
}

var envFileNames = []string{".env.local", ".env"}

// LoadEnvFiles carrega os .env encontrados em dir. Variáveis já definidas no
// ambiente não são sobrescritas.
func LoadEnvFiles(dir string) {
	var files []string
	for _, name := range envFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			files = append(files, candidate)
		}
	}
	if len(files) == 0 {
		return
	}
	_ = godotenv.Load(files...)
}

// Load carrega .env do diretório atual e lê o ambiente.
func Load() (Config, error) {
	LoadEnvFiles(".")
	return FromEnv()
}

// FromEnv lê o ambiente. Valores malformados não caem no padrão: o erro
// nomeia a variável, e todos os problemas são devolvidos juntos.
func FromEnv() (Config, error) {
	var e env
	cfg := Config{}
	cfg.ListenAddr = e.str("LISTEN_ADDR", ":8080")
	cfg.DefaultLocale = strings.ToLower(e.str("DEFAULT_LOCALE", "es"))
	cfg.PhrasebookPath = os.Getenv("PHRASEBOOK_PATH")

	cfg.RateEnabled = e.boolean("RATE_ENABLED", true)
	cfg.RateRPS = e.float("RATE_RPS", 10)
	// burst alto com RPS baixo deixa passar a rajada inicial inteira,
	// então com RPS < 1 o padrão cai para 1.
	defBurst := 20
	if e.isSet("RATE_RPS") && cfg.RateRPS > 0 && cfg.RateRPS < 1 {
		defBurst = 1
	}
	cfg.RateBurst = e.integer("RATE_BURST", defBurst)
	cfg.KeyHeader = os.Getenv("RATE_KEY_HEADER")
	cfg.TrustXFF = e.boolean("TRUST_XFF", false)
	cfg.RetryAfter = e.duration("RETRY_AFTER", time.Second)
	cfg.AddHeaders = e.boolean("ADD_RATELIMIT_HEADERS", false)

	cfg.ConcurrencyMax = e.integer("CONCURRENCY_MAX", 100)
	cfg.ConcurrencyTimeout = e.duration("CONCURRENCY_TIMEOUT", 0)

	cfg.Stats = StatsConfig{
		RedisEnabled:  e.boolean("RATE_STATS_ENABLED", false),
		RedisAddr:     os.Getenv("RATE_STATS_REDIS_ADDR"),
		RedisPassword: os.Getenv("RATE_STATS_REDIS_PASSWORD"),
		RedisDB:       e.integer("RATE_STATS_REDIS_DB", 0),
		Prefix:        e.str("RATE_STATS_PREFIX", "componente:stats"),
		TTL:           e.duration("RATE_STATS_TTL", 24*time.Hour),
		Bucket:        e.str("RATE_STATS_BUCKET", "minute"),
		TrackKeys:     e.boolean("RATE_STATS_TRACK_KEYS", false),
	}

	cfg.Log = LogConfig{
		Level:    e.str("LOG_LEVEL", "info"),
		Encoding: e.str("LOG_ENCODING", "json"),
		Output:   e.str("LOG_OUTPUT", "stdout"),
		Dev:      e.boolean("LOG_DEV", false),
	}

	if err := e.err(); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.DefaultLocale == "" {
		return errors.New("DEFAULT_LOCALE must not be empty")
	}
	if c.RateRPS <= 0 {
		return errors.New("RATE_RPS must be > 0")
	}
	if c.RateBurst <= 0 {
		return errors.New("RATE_BURST must be > 0")
	}
	if c.ConcurrencyMax < 0 {
		return errors.New("CONCURRENCY_MAX must be >= 0")
	}
	if c.Stats.RedisEnabled && strings.TrimSpace(c.Stats.RedisAddr) == "" {
		return errors.New("RATE_STATS_REDIS_ADDR is required when RATE_STATS_ENABLED=true")
	}
	switch c.Stats.Bucket {
	case "minute", "none":
	default:
		return fmt.Errorf("RATE_STATS_BUCKET must be minute or none, got %q", c.Stats.Bucket)
	}
	return nil
}

// env lê variáveis e acumula os erros de conversão.
type env struct {
	errs []error
}

func (e *env) lookup(k string) (string, bool) {
	v, ok := os.LookupEnv(k)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (e *env) isSet(k string) bool {
	_, ok := e.lookup(k)
	return ok
}

func (e *env) fail(k string, err error) {
	e.errs = append(e.errs, fmt.Errorf("%s: %w", k, err))
}

func (e *env) err() error {
	return errors.Join(e.errs...)
}

func (e *env) str(k, def string) string {
	if v, ok := e.lookup(k); ok {
		return v
	}
	return def
}

func (e *env) integer(k string, def int) int {
	v, ok := e.lookup(k)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		e.fail(k, err)
		return def
	}
	return i
}

func (e *env) float(k string, def float64) float64 {
	v, ok := e.lookup(k)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		e.fail(k, err)
		return def
	}
	return f
}

func (e *env) boolean(k string, def bool) bool {
	v, ok := e.lookup(k)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		e.fail(k, err)
		return def
	}
	return b
}

func (e *env) duration(k string, def time.Duration) time.Duration {
	v, ok := e.lookup(k)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		e.fail(k, err)
		return def
	}
	return d
}
