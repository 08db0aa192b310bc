package componente

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"componente-compartido/componente/application"
	"componente-compartido/componente/domain"
	"componente-compartido/internal/logging"
)

const maxBodyBytes = 64 << 10

var errTrailingData = errors.New("trailing data after JSON object")

type MessageResponse struct {
	Message   string `json:"message"`
	Label     string `json:"label"`
	Locale    string `json:"locale"`
	Defaulted bool   `json:"defaulted"`
}

type MessageRequest struct {
	Name string `json:"name"`
	Lang string `json:"lang"`
}

type ReadyResponse struct {
	Status string `json:"status"`
}

type LocalesResponse struct {
	Locales  []domain.Locale `json:"locales"`
	Fallback domain.Locale   `json:"fallback"`
}

// Handler serve as mensagens, o health check e as estatísticas.
type Handler struct {
	builder application.Builder
	stats   domain.StatsReader
	log     *logging.Logger
	neg     *negotiator
}

// NewHandler aceita stats nil (GET /v1/stats responde 404).
func NewHandler(b application.Builder, stats domain.StatsReader, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.Nop()
	}
	return &Handler{
		builder: b,
		stats:   stats,
		log:     log,
		neg:     newNegotiator(b.Locales()),
	}
}

const (
	pathPlaceholder = "/v1/placeholder"
	pathLocales     = "/v1/locales"
	pathStats       = "/v1/stats"
	pathHealth      = "/healthz"
)

// routePaths são os caminhos servidos por Handler; o rate limit grava stats
// só para eles.
var routePaths = []string{pathPlaceholder, pathLocales, pathStats, pathHealth}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+pathPlaceholder, h.getPlaceholder)
	mux.HandleFunc("POST "+pathPlaceholder, h.postPlaceholder)
	mux.HandleFunc("GET "+pathLocales, h.getLocales)
	mux.HandleFunc("GET "+pathStats, h.getStats)
	mux.HandleFunc("GET "+pathHealth, h.getHealth)
	return mux
}

func (h *Handler) getPlaceholder(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.respond(w, r, MessageRequest{Name: q.Get("name"), Lang: q.Get("lang")}, q.Get("format"))
}

func (h *Handler) postPlaceholder(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(&req)
	if err == nil && dec.More() {
		err = errTrailingData
	}
	if err != nil && !errors.Is(err, io.EOF) {
		requestLogger(r.Context(), h.log).Debugw("invalid placeholder body", "error", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	h.respond(w, r, req, r.URL.Query().Get("format"))
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, req MessageRequest, format string) {
	loc := domain.ParseLocale(req.Lang)
	if loc == "" {
		loc = h.neg.Match(r.Header.Get("Accept-Language"))
	}

	msg := h.builder.Build(r.Context(), domain.Label(req.Name), loc)
	requestLogger(r.Context(), h.log).Debugw("message issued",
		"locale", msg.Locale,
		"defaulted", msg.Defaulted,
	)

	w.Header().Set("Content-Language", string(msg.Locale))
	if format == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, msg.Text)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{
		Message:   msg.Text,
		Label:     string(msg.Label),
		Locale:    string(msg.Locale),
		Defaulted: msg.Defaulted,
	})
}

func (h *Handler) getLocales(w http.ResponseWriter, _ *http.Request) {
	fb := h.builder.Fallback
	if fb == "" {
		fb = domain.DefaultLocale
	}
	writeJSON(w, http.StatusOK, LocalesResponse{Locales: h.builder.Locales(), Fallback: fb})
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	if h.stats == nil {
		writeError(w, http.StatusNotFound, "stats disabled")
		return
	}
	snap, err := h.stats.Snapshot(r.Context())
	if err != nil {
		requestLogger(r.Context(), h.log).WithError(err).Error("stats snapshot failed")
		writeError(w, http.StatusBadGateway, "stats unavailable")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) getHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ReadyResponse{Status: "ready"})
}

func requestLogger(ctx context.Context, log *logging.Logger) *logging.Logger {
	if id := RequestIDFrom(ctx); id != "" {
		return log.WithField("requestId", id)
	}
	return log
}
