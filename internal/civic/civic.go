// Package civic looks up a U.S. House representative by ZIP code via the
// Google Civic Information API.
package civic

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"legisync/internal/domain"
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

type civicResponse struct {
	Offices []struct {
		DivisionID      string `json:"divisionId"`
		OfficialIndices []int  `json:"officialIndices"`
	} `json:"offices"`
	Officials []struct {
		Name   string   `json:"name"`
		Party  string   `json:"party"`
		Emails []string `json:"emails"`
		Phones []string `json:"phones"`
		URLs   []string `json:"urls"`
	} `json:"officials"`
}

var (
	stateRe = regexp.MustCompile(`(?i)state:([a-z]{2})`)
	cdRe    = regexp.MustCompile(`(?i)cd:(\d{1,2})`)
)

// Lookup resolves the House representative for a 5-digit ZIP code. Returns
// ErrNotFound when the upstream has no official for the ZIP.
func (c *Client) Lookup(ctx context.Context, zipCode string) (*domain.Representative, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: civic API key missing", domain.ErrConfiguration)
	}

	q := url.Values{}
	q.Set("address", zipCode)
	q.Set("levels", "country")
	q.Set("roles", "legislatorLowerBody")
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/representatives?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: execute request: %v", domain.ErrUpstreamGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("civic API returned error", "status", resp.StatusCode, "zip", zipCode)
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrUpstreamGateway, resp.StatusCode)
	}

	var civicResp civicResponse
	if err := json.NewDecoder(resp.Body).Decode(&civicResp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrUpstreamParse, err)
	}

	if len(civicResp.Officials) == 0 {
		return nil, fmt.Errorf("%w: no representative for ZIP %s", domain.ErrNotFound, zipCode)
	}

	// Prefer the official linked from an office entry, which also carries
	// the congressional-district division ID.
	officialIndex := 0
	var divisionID string
	for _, office := range civicResp.Offices {
		found := false
		for _, idx := range office.OfficialIndices {
			if idx >= 0 && idx < len(civicResp.Officials) {
				officialIndex = idx
				divisionID = office.DivisionID
				found = true
				break
			}
		}
		if found {
			break
		}
	}

	official := civicResp.Officials[officialIndex]

	rep := &domain.Representative{
		Name:     orDefault(official.Name, "Unknown"),
		Party:    strings.ReplaceAll(orDefault(official.Party, "Unknown"), " Party", ""),
		District: deriveDistrict(divisionID, zipCode),
		Email:    firstOr(official.Emails, "contact@house.gov"),
		Phone:    firstOr(official.Phones, "(202) 225-3121"),
		Website:  firstOr(official.URLs, "https://www.house.gov"),
	}

	return rep, nil
}

// deriveDistrict turns an OCD division ID like
// "ocd-division/country:us/state:ma/cd:2" into "MA-02".
func deriveDistrict(divisionID, zipCode string) string {
	stateMatch := stateRe.FindStringSubmatch(divisionID)
	cdMatch := cdRe.FindStringSubmatch(divisionID)
	if stateMatch == nil || cdMatch == nil {
		return "ZIP " + zipCode
	}

	cd := cdMatch[1]
	if len(cd) == 1 {
		cd = "0" + cd
	}
	return strings.ToUpper(stateMatch[1]) + "-" + cd
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func firstOr(values []string, def string) string {
	if len(values) > 0 && values[0] != "" {
		return values[0]
	}
	return def
}
