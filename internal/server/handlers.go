package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"legisync/internal/ai"
	"legisync/internal/domain"
)

// clip cuts s to at most n bytes on a rune boundary.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// billView is the wire shape of a bill; field names match the persisted
// schema the browsing UI was built against.
type billView struct {
	ID               string             `json:"id"`
	ExternalID       string             `json:"external_id"`
	Source           string             `json:"source"`
	BillNumber       string             `json:"bill_number"`
	Title            string             `json:"title"`
	ShortDescription string             `json:"short_description"`
	FullText         string             `json:"full_text"`
	Status           domain.Status      `json:"status"`
	IntroducedDate   string             `json:"introduced_date"`
	Category         string             `json:"category"`
	Sponsor          *string            `json:"sponsor,omitempty"`
	OfficialURL      *string            `json:"official_url,omitempty"`
	LastSynced       time.Time          `json:"last_synced"`
	Cosponsors       json.RawMessage    `json:"cosponsors,omitempty"`
	Committees       json.RawMessage    `json:"committees,omitempty"`
	ImpactData       *domain.ImpactData `json:"impact_data,omitempty"`
	Stages           []domain.Stage     `json:"stages,omitempty"`
	Arguments        []domain.Argument  `json:"arguments,omitempty"`
}

func toBillView(b *domain.Bill) billView {
	return billView{
		ID:               b.ID,
		ExternalID:       b.ExternalID,
		Source:           b.Source,
		BillNumber:       b.BillNumber,
		Title:            b.Title,
		ShortDescription: b.ShortDescription,
		FullText:         b.FullText,
		Status:           b.Status,
		IntroducedDate:   b.IntroducedDate.Format("2006-01-02"),
		Category:         b.Category,
		Sponsor:          b.Sponsor,
		OfficialURL:      b.OfficialURL,
		LastSynced:       b.LastSynced,
		Cosponsors:       b.Cosponsors,
		Committees:       b.Committees,
		ImpactData:       b.ImpactData,
		Stages:           b.Stages,
		Arguments:        b.Arguments,
	}
}

// Sync triggers a full orchestrator run and returns the aggregated report.
// Partial failure is still a 200; callers inspect the per-source results.
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	report := h.orchestrator.SyncAll(r.Context())
	h.respondJSON(w, http.StatusOK, report)
}

func (h *Handler) ListBills(w http.ResponseWriter, r *http.Request) {
	filter := domain.BillFilter{
		Status: r.URL.Query().Get("status"),
		Source: r.URL.Query().Get("source"),
		Limit:  queryInt(r, "limit", 100),
	}

	bills, err := h.bills.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list bills", "error", err)
		h.writeError(w, err, "failed to list bills")
		return
	}

	views := make([]billView, 0, len(bills))
	for i := range bills {
		views = append(views, toBillView(&bills[i]))
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"bills": views})
}

func (h *Handler) GetBill(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	bill, err := h.bills.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "bill not found")
			return
		}
		h.logger.Error("failed to get bill", "id", id, "error", err)
		h.writeError(w, err, "")
		return
	}

	h.respondJSON(w, http.StatusOK, toBillView(bill))
}

type createBillRequest struct {
	BillNumber       string `json:"bill_number" validate:"required"`
	Title            string `json:"title" validate:"required"`
	ShortDescription string `json:"short_description"`
	FullText         string `json:"full_text"`
	Status           string `json:"status" validate:"omitempty,oneof=Introduced 'Committee Review' 'Passed House' 'Passed Senate' Enacted Vetoed Failed"`
	Category         string `json:"category"`
	Sponsor          string `json:"sponsor"`
}

// CreateBill stores a user-submitted bill. The submitter sets the status
// directly; re-sync never touches user submissions because their external_id
// is never produced by an adapter.
func (h *Handler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var req createBillRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid bill submission")
		return
	}

	now := time.Now().UTC()

	status := domain.Status(req.Status)
	if req.Status == "" {
		status = domain.StatusIntroduced
	}

	fullText := req.FullText
	if fullText == "" {
		fullText = req.Title
	}
	shortDesc := req.ShortDescription
	if shortDesc == "" {
		shortDesc = clip(req.Title, 200)
	}
	category := req.Category
	if category == "" {
		category = "Citizen Proposal"
	}

	bill := domain.Bill{
		ExternalID:       "user-" + uuid.NewString(),
		Source:           domain.SourceUserSubmission,
		BillNumber:       req.BillNumber,
		Title:            req.Title,
		ShortDescription: shortDesc,
		FullText:         fullText,
		Status:           status,
		IntroducedDate:   now,
		Category:         category,
		LastSynced:       now,
	}
	if req.Sponsor != "" {
		bill.Sponsor = &req.Sponsor
	}

	if _, _, err := h.bills.Upsert(r.Context(), &bill); err != nil {
		h.logger.Error("failed to store submitted bill", "error", err)
		h.writeError(w, err, "failed to store bill")
		return
	}

	h.respondJSON(w, http.StatusCreated, toBillView(&bill))
}

func (h *Handler) SyncLog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.syncLog.ListRecent(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		h.logger.Error("failed to list sync log", "error", err)
		h.writeError(w, err, "failed to list sync log")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

type summarizeRequest struct {
	BillText     string `json:"billText" validate:"required"`
	ReadingLevel string `json:"readingLevel" validate:"required,oneof=middle high college"`
}

func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "billText and a valid readingLevel are required")
		return
	}

	summary, err := h.gateway.Summarize(r.Context(), req.BillText, req.ReadingLevel)
	if err != nil {
		h.logger.Error("summarize failed", "error", err)
		h.writeAIError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

type argumentsRequest struct {
	BillText  string `json:"billText" validate:"required"`
	BillTitle string `json:"billTitle" validate:"required"`
	BillID    string `json:"billId"`
}

func (h *Handler) GenerateArguments(w http.ResponseWriter, r *http.Request) {
	var req argumentsRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "missing billText or billTitle")
		return
	}

	args, err := h.gateway.GenerateArguments(r.Context(), req.BillTitle, req.BillText)
	if err != nil {
		h.logger.Error("generate arguments failed", "error", err)
		h.writeAIError(w, err)
		return
	}

	// Persist onto the bill when the caller identifies one; the contract
	// response is the same either way.
	if req.BillID != "" {
		if err := h.bills.SetArguments(r.Context(), req.BillID, args); err != nil {
			h.logger.Error("failed to persist arguments", "bill_id", req.BillID, "error", err)
		}
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"arguments": args})
}

type impactRequest struct {
	BillID           string `json:"billId" validate:"required"`
	BillTitle        string `json:"billTitle" validate:"required"`
	BillNumber       string `json:"billNumber"`
	ShortDescription string `json:"shortDescription"`
	FullText         string `json:"fullText" validate:"required"`
}

func (h *Handler) AnalyzeImpact(w http.ResponseWriter, r *http.Request) {
	var req impactRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "missing billId, billTitle or fullText")
		return
	}

	impact, err := h.gateway.AnalyzeImpact(r.Context(), ai.ImpactInput{
		BillTitle:        req.BillTitle,
		BillNumber:       req.BillNumber,
		ShortDescription: req.ShortDescription,
		FullText:         req.FullText,
	})
	if err != nil {
		h.logger.Error("impact analysis failed", "error", err)
		h.writeAIError(w, err)
		return
	}

	if err := h.bills.SetImpactData(r.Context(), req.BillID, impact); err != nil {
		h.logger.Error("failed to persist impact data", "bill_id", req.BillID, "error", err)
		h.writeAIError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"impact": impact})
}

type stagesRequest struct {
	BillID     string `json:"billId" validate:"required"`
	BillTitle  string `json:"billTitle" validate:"required"`
	BillNumber string `json:"billNumber"`
	Status     string `json:"status" validate:"required"`
}

func (h *Handler) GenerateStages(w http.ResponseWriter, r *http.Request) {
	var req stagesRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "missing billId, billTitle or status")
		return
	}

	stages, err := h.gateway.GenerateStages(r.Context(), ai.StagesInput{
		BillTitle:  req.BillTitle,
		BillNumber: req.BillNumber,
		Status:     domain.Status(req.Status),
	})
	if err != nil {
		h.logger.Error("stage generation failed", "error", err)
		h.writeAIError(w, err)
		return
	}

	if err := h.bills.SetStages(r.Context(), req.BillID, stages); err != nil {
		h.logger.Error("failed to persist stages", "bill_id", req.BillID, "error", err)
		h.writeAIError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"stages": stages})
}

type lookupRequest struct {
	ZipCode string `json:"zipCode" validate:"required,len=5,numeric"`
}

func (h *Handler) LookupRepresentative(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "a 5-digit zipCode is required")
		return
	}

	rep, err := h.civic.Lookup(r.Context(), req.ZipCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "no representative found for this ZIP code")
			return
		}
		h.logger.Error("representative lookup failed", "zip", req.ZipCode, "error", err)
		h.writeError(w, err, "failed to look up representative")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"representative": rep})
}
