package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"legisync/internal/domain"
)

// OpenStatesConfig holds Open States adapter settings.
type OpenStatesConfig struct {
	BaseURL       string
	APIKey        string
	Jurisdictions []string
	PerPage       int
}

// OpenStates fetches the first page of bills for each configured state
// jurisdiction from the Open States v3 API.
type OpenStates struct {
	client        *restClient
	baseURL       string
	apiKey        string
	jurisdictions []string
	perPage       int
	logger        *slog.Logger
}

func NewOpenStates(cfg OpenStatesConfig, client ClientConfig, logger *slog.Logger) *OpenStates {
	return &OpenStates{
		client:        newRESTClient(client, logger.With("source", domain.SourceOpenStates)),
		baseURL:       cfg.BaseURL,
		apiKey:        cfg.APIKey,
		jurisdictions: cfg.Jurisdictions,
		perPage:       cfg.PerPage,
		logger:        logger.With("source", domain.SourceOpenStates),
	}
}

func (s *OpenStates) ID() string   { return domain.SourceOpenStates }
func (s *OpenStates) Name() string { return "Open States" }

type openStatesResponse struct {
	Results []openStatesBill `json:"results"`
}

type openStatesBill struct {
	ID              string            `json:"id"`
	Identifier      string            `json:"identifier"`
	Title           string            `json:"title"`
	Session         string            `json:"session"`
	Classification  []string          `json:"classification"`
	FirstActionDate string            `json:"first_action_date"`
	OpenStatesURL   string            `json:"openstates_url"`
	Sponsorships    []json.RawMessage `json:"sponsorships"`
}

// FetchBills fetches one page per jurisdiction. A failing jurisdiction is
// logged and skipped so the remaining states still sync.
func (s *OpenStates) FetchBills(ctx context.Context) ([]domain.Bill, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("%w: openstates API key missing", domain.ErrConfiguration)
	}

	headers := map[string]string{"X-API-Key": s.apiKey}

	var bills []domain.Bill
	for _, jurisdiction := range s.jurisdictions {
		if err := ctx.Err(); err != nil {
			return bills, err
		}

		url := fmt.Sprintf("%s/bills?jurisdiction=%s&page=1&per_page=%d", s.baseURL, jurisdiction, s.perPage)

		var resp openStatesResponse
		if err := s.client.getJSON(ctx, url, headers, &resp); err != nil {
			s.logger.Error("jurisdiction fetch failed",
				"jurisdiction", jurisdiction,
				"error", err,
			)
			continue
		}

		s.logger.Debug("fetched bills", "jurisdiction", jurisdiction, "count", len(resp.Results))

		bills = append(bills, s.transform(jurisdiction, resp.Results)...)
	}

	return bills, nil
}

func (s *OpenStates) transform(jurisdiction string, bills []openStatesBill) []domain.Bill {
	now := time.Now().UTC()
	out := make([]domain.Bill, 0, len(bills))

	for _, b := range bills {
		title := b.Title
		if title == "" {
			title = untitledBill
		}

		officialURL := b.OpenStatesURL
		if officialURL == "" {
			officialURL = fmt.Sprintf("https://openstates.org/%s/bills/%s/%s/",
				jurisdiction, b.Session, b.Identifier)
		}

		bill := domain.Bill{
			ExternalID:       "openstates-" + b.ID,
			Source:           domain.SourceOpenStates,
			BillNumber:       b.Identifier,
			Title:            title,
			ShortDescription: truncate(title, 200),
			FullText:         title, // Open States list payloads carry no text
			Status:           NormalizeOpenStatesClassification(b.Classification),
			IntroducedDate:   parseDateOr(firstDateField(b.FirstActionDate), now),
			Category:         "State: " + strings.ToUpper(jurisdiction),
			OfficialURL:      &officialURL,
			LastSynced:       now,
		}

		if len(b.Sponsorships) > 0 {
			var primary struct {
				Name string `json:"name"`
			}
			if err := json.Unmarshal(b.Sponsorships[0], &primary); err == nil && primary.Name != "" {
				bill.Sponsor = &primary.Name
			}
		}
		if len(b.Sponsorships) > 1 {
			if cosponsors, err := json.Marshal(b.Sponsorships[1:]); err == nil {
				bill.Cosponsors = cosponsors
			}
		}

		out = append(out, bill)
	}

	return out
}

// firstDateField strips a trailing time component; Open States sometimes
// returns "2025-01-15T00:00:00" for first_action_date.
func firstDateField(value string) string {
	if i := strings.IndexByte(value, 'T'); i > 0 {
		return value[:i]
	}
	return value
}
