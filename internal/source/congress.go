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

// CongressConfig holds congress.gov adapter settings.
type CongressConfig struct {
	BaseURL  string
	APIKey   string
	Congress int
	PageSize int
}

// Congress fetches bills of the current congress from the congress.gov v3 API.
type Congress struct {
	client   *restClient
	baseURL  string
	apiKey   string
	congress int
	pageSize int
	logger   *slog.Logger
}

func NewCongress(cfg CongressConfig, client ClientConfig, logger *slog.Logger) *Congress {
	return &Congress{
		client:   newRESTClient(client, logger.With("source", domain.SourceCongress)),
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		congress: cfg.Congress,
		pageSize: cfg.PageSize,
		logger:   logger.With("source", domain.SourceCongress),
	}
}

func (s *Congress) ID() string   { return domain.SourceCongress }
func (s *Congress) Name() string { return "Congress.gov" }

type congressResponse struct {
	Bills []congressBill `json:"bills"`
}

type congressBill struct {
	Number         string            `json:"number"`
	Title          string            `json:"title"`
	Type           string            `json:"type"`
	IntroducedDate string            `json:"introducedDate"`
	URL            string            `json:"url"`
	LatestAction   *congressAction   `json:"latestAction"`
	Sponsors       []congressSponsor `json:"sponsors"`
	Cosponsors     json.RawMessage   `json:"cosponsors"`
	Committees     json.RawMessage   `json:"committees"`
}

type congressAction struct {
	Text string `json:"text"`
}

type congressSponsor struct {
	FullName string `json:"fullName"`
}

// FetchBills fetches the first page of the configured congress and maps each
// record into a canonical bill.
func (s *Congress) FetchBills(ctx context.Context) ([]domain.Bill, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("%w: congress.gov API key missing", domain.ErrConfiguration)
	}

	url := fmt.Sprintf("%s/bill/%d?api_key=%s&format=json&limit=%d",
		s.baseURL, s.congress, s.apiKey, s.pageSize)

	var resp congressResponse
	if err := s.client.getJSON(ctx, url, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch congress bills: %w", err)
	}

	s.logger.Debug("fetched bills", "count", len(resp.Bills))

	return s.transform(resp.Bills), nil
}

func (s *Congress) transform(bills []congressBill) []domain.Bill {
	now := time.Now().UTC()
	out := make([]domain.Bill, 0, len(bills))

	for _, b := range bills {
		billType := strings.ToLower(b.Type)

		title := b.Title
		if title == "" {
			title = untitledBill
		}

		var latestAction string
		if b.LatestAction != nil {
			latestAction = b.LatestAction.Text
		}

		category := "Other"
		switch billType {
		case "hr", "hjres", "hres":
			category = "House"
		case "s", "sjres", "sres":
			category = "Senate"
		}

		officialURL := b.URL
		if officialURL == "" {
			officialURL = fmt.Sprintf("https://www.congress.gov/bill/%dth-congress/%s-bill/%s",
				s.congress, billType, b.Number)
		}

		bill := domain.Bill{
			ExternalID:       fmt.Sprintf("congress-%d-%s-%s", s.congress, billType, b.Number),
			Source:           domain.SourceCongress,
			BillNumber:       b.Number,
			Title:            title,
			ShortDescription: truncate(title, 200),
			FullText:         title, // the list endpoint carries no bill text
			Status:           NormalizeCongressStatus(latestAction),
			IntroducedDate:   parseDateOr(b.IntroducedDate, now),
			Category:         category,
			OfficialURL:      &officialURL,
			LastSynced:       now,
			Cosponsors:       b.Cosponsors,
			Committees:       b.Committees,
		}

		if len(b.Sponsors) > 0 && b.Sponsors[0].FullName != "" {
			sponsor := b.Sponsors[0].FullName
			bill.Sponsor = &sponsor
		}

		out = append(out, bill)
	}

	return out
}
