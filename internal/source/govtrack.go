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

// GovTrackConfig holds GovTrack adapter settings. GovTrack needs no API key.
type GovTrackConfig struct {
	BaseURL      string
	PageSize     int
	LookbackDays int
}

// GovTrack fetches bills introduced within the lookback window from the
// GovTrack v2 API.
type GovTrack struct {
	client       *restClient
	baseURL      string
	pageSize     int
	lookbackDays int
	logger       *slog.Logger
}

func NewGovTrack(cfg GovTrackConfig, client ClientConfig, logger *slog.Logger) *GovTrack {
	return &GovTrack{
		client:       newRESTClient(client, logger.With("source", domain.SourceGovTrack)),
		baseURL:      cfg.BaseURL,
		pageSize:     cfg.PageSize,
		lookbackDays: cfg.LookbackDays,
		logger:       logger.With("source", domain.SourceGovTrack),
	}
}

func (s *GovTrack) ID() string   { return domain.SourceGovTrack }
func (s *GovTrack) Name() string { return "GovTrack" }

type govtrackResponse struct {
	Objects []govtrackBill `json:"objects"`
}

type govtrackBill struct {
	ID             int64            `json:"id"`
	DisplayNumber  string           `json:"display_number"`
	Number         int              `json:"number"`
	Title          string           `json:"title"`
	TitleNoNumber  string           `json:"title_without_number"`
	CurrentStatus  string           `json:"current_status"`
	IntroducedDate string           `json:"introduced_date"`
	BillType       string           `json:"bill_type"`
	Link           string           `json:"link"`
	Sponsor        *govtrackSponsor `json:"sponsor"`
	Cosponsors     json.RawMessage  `json:"cosponsors"`
	Committees     json.RawMessage  `json:"committees"`
}

type govtrackSponsor struct {
	Name string `json:"name"`
}

// FetchBills fetches bills introduced within the configured lookback window.
func (s *GovTrack) FetchBills(ctx context.Context) ([]domain.Bill, error) {
	dateFilter := time.Now().UTC().AddDate(0, 0, -s.lookbackDays).Format("2006-01-02")
	url := fmt.Sprintf("%s/bill?introduced_date__gte=%s&limit=%d", s.baseURL, dateFilter, s.pageSize)

	var resp govtrackResponse
	if err := s.client.getJSON(ctx, url, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch govtrack bills: %w", err)
	}

	s.logger.Debug("fetched bills", "count", len(resp.Objects), "since", dateFilter)

	return s.transform(resp.Objects), nil
}

func (s *GovTrack) transform(bills []govtrackBill) []domain.Bill {
	now := time.Now().UTC()
	out := make([]domain.Bill, 0, len(bills))

	for _, b := range bills {
		title := b.Title
		if title == "" {
			title = untitledBill
		}

		shortDesc := b.TitleNoNumber
		if shortDesc == "" {
			shortDesc = title
		}

		number := b.DisplayNumber
		if number == "" {
			number = fmt.Sprintf("%d", b.Number)
		}

		category := "Other"
		billType := strings.ToLower(b.BillType)
		switch {
		case strings.Contains(billType, "house"):
			category = "House"
		case strings.Contains(billType, "senate"):
			category = "Senate"
		}

		officialURL := "https://www.govtrack.us" + b.Link

		bill := domain.Bill{
			ExternalID:       fmt.Sprintf("govtrack-%d", b.ID),
			Source:           domain.SourceGovTrack,
			BillNumber:       number,
			Title:            title,
			ShortDescription: truncate(shortDesc, 200),
			FullText:         title, // GovTrack's list endpoint has no bill text
			Status:           NormalizeGovTrackStatus(b.CurrentStatus),
			IntroducedDate:   parseDateOr(b.IntroducedDate, now),
			Category:         category,
			OfficialURL:      &officialURL,
			LastSynced:       now,
			Cosponsors:       b.Cosponsors,
			Committees:       b.Committees,
		}

		if b.Sponsor != nil && b.Sponsor.Name != "" {
			sponsor := b.Sponsor.Name
			bill.Sponsor = &sponsor
		}

		out = append(out, bill)
	}

	return out
}
