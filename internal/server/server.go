// Package server exposes the sync pipeline, the bill store and the AI
// collaborators over HTTP.
package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"legisync/internal/ai"
	"legisync/internal/domain"
)

type BillStore interface {
	Upsert(ctx context.Context, bill *domain.Bill) (string, bool, error)
	GetByID(ctx context.Context, id string) (*domain.Bill, error)
	List(ctx context.Context, filter domain.BillFilter) ([]domain.Bill, error)
	SetImpactData(ctx context.Context, id string, impact *domain.ImpactData) error
	SetStages(ctx context.Context, id string, stages []domain.Stage) error
	SetArguments(ctx context.Context, id string, args []domain.Argument) error
}

type SyncLogReader interface {
	ListRecent(ctx context.Context, limit int) ([]domain.SyncLogEntry, error)
}

type Orchestrator interface {
	SyncAll(ctx context.Context) *domain.SyncReport
}

type AIGateway interface {
	Summarize(ctx context.Context, billText, readingLevel string) (string, error)
	GenerateArguments(ctx context.Context, billTitle, billText string) ([]domain.Argument, error)
	AnalyzeImpact(ctx context.Context, in ai.ImpactInput) (*domain.ImpactData, error)
	GenerateStages(ctx context.Context, in ai.StagesInput) ([]domain.Stage, error)
}

type CivicLookup interface {
	Lookup(ctx context.Context, zipCode string) (*domain.Representative, error)
}

type Handler struct {
	bills        BillStore
	syncLog      SyncLogReader
	orchestrator Orchestrator
	gateway      AIGateway
	civic        CivicLookup
	validate     *validator.Validate
	syncToken    string
	logger       *slog.Logger
}

func NewHandler(
	bills BillStore,
	syncLog SyncLogReader,
	orchestrator Orchestrator,
	gateway AIGateway,
	civic CivicLookup,
	syncToken string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		bills:        bills,
		syncLog:      syncLog,
		orchestrator: orchestrator,
		gateway:      gateway,
		civic:        civic,
		validate:     validator.New(),
		syncToken:    syncToken,
		logger:       logger,
	}
}

// Router wires all routes. Mutating endpoints sit behind bearer-token auth;
// the AI and lookup endpoints are open to the browsing UI.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", h.Health)
	r.Get("/bills", h.ListBills)
	r.Get("/bills/{id}", h.GetBill)
	r.Get("/sync-log", h.SyncLog)

	r.Post("/summarize", h.Summarize)
	r.Post("/generate-arguments", h.GenerateArguments)
	r.Post("/analyze-impact", h.AnalyzeImpact)
	r.Post("/generate-stages", h.GenerateStages)
	r.Post("/lookup-representative", h.LookupRepresentative)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Post("/sync", h.Sync)
		r.Post("/bills", h.CreateBill)
	})

	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.syncToken == "" {
			h.respondError(w, http.StatusServiceUnavailable, "service not configured")
			return
		}

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(token), []byte(h.syncToken)) != 1 {
			h.respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) decodeAndValidate(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return domain.ErrValidation
	}
	if err := h.validate.Struct(out); err != nil {
		return domain.ErrValidation
	}
	return nil
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// writeError maps an error kind to its HTTP status.
func (h *Handler) writeError(w http.ResponseWriter, err error, message string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConfiguration):
		status = http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrUpstreamGateway), errors.Is(err, domain.ErrUpstreamFetch), errors.Is(err, domain.ErrUpstreamParse):
		status = http.StatusBadGateway
	case errors.Is(err, domain.ErrPersistence):
		status = http.StatusInternalServerError
	}

	if message == "" {
		message = http.StatusText(status)
	}
	h.respondError(w, status, message)
}

// writeAIError maps AI-collaborator failures: an unreachable or unconfigured
// gateway is a 503 so operators can tell it from a bug.
func (h *Handler) writeAIError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		h.respondError(w, http.StatusBadRequest, "invalid request")
	case errors.Is(err, domain.ErrNotFound):
		h.respondError(w, http.StatusNotFound, "bill not found")
	case errors.Is(err, domain.ErrConfiguration), errors.Is(err, domain.ErrUpstreamGateway):
		h.respondError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	case errors.Is(err, domain.ErrUpstreamParse):
		h.respondError(w, http.StatusBadGateway, "unexpected response from AI gateway")
	default:
		h.respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
