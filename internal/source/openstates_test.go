package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legisync/internal/domain"
)

func openStatesFixture(jurisdiction string) string {
	return fmt.Sprintf(`{
  "results": [
    {
      "id": "ocd-bill/abc-%s",
      "identifier": "AB 123",
      "title": "Housing Affordability Act",
      "session": "20252026",
      "classification": ["passage"],
      "first_action_date": "2025-04-01T00:00:00",
      "openstates_url": "https://openstates.org/%s/bills/20252026/AB123/",
      "sponsorships": [
        {"name": "Maria Lopez", "primary": true},
        {"name": "Sam Green", "primary": false},
        {"name": "Alex Kim", "primary": false}
      ]
    }
  ]
}`, jurisdiction, jurisdiction)
}

func newOpenStatesForTest(t *testing.T, jurisdictions []string, handler http.HandlerFunc) *OpenStates {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewOpenStates(OpenStatesConfig{
		BaseURL:       srv.URL,
		APIKey:        "test-key",
		Jurisdictions: jurisdictions,
		PerPage:       50,
	}, testClientConfig(), testLogger())
}

func TestOpenStates_FetchBills(t *testing.T) {
	var seen []string
	src := newOpenStatesForTest(t, []string{"ca", "ny"}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		assert.Equal(t, "50", r.URL.Query().Get("per_page"))

		jurisdiction := r.URL.Query().Get("jurisdiction")
		seen = append(seen, jurisdiction)
		w.Write([]byte(openStatesFixture(jurisdiction)))
	})

	bills, err := src.FetchBills(context.Background())

	require.NoError(t, err)
	require.Len(t, bills, 2)
	assert.Equal(t, []string{"ca", "ny"}, seen)

	first := bills[0]
	assert.Equal(t, "openstates-ocd-bill/abc-ca", first.ExternalID)
	assert.Equal(t, domain.SourceOpenStates, first.Source)
	assert.Equal(t, "AB 123", first.BillNumber)
	assert.Equal(t, domain.StatusPassedHouse, first.Status)
	assert.Equal(t, "State: CA", first.Category)
	assert.Equal(t, "2025-04-01", first.IntroducedDate.Format("2006-01-02"))
	require.NotNil(t, first.Sponsor)
	assert.Equal(t, "Maria Lopez", *first.Sponsor)
	// Everything past the primary sponsorship lands in cosponsors.
	assert.Contains(t, string(first.Cosponsors), "Sam Green")
	assert.Contains(t, string(first.Cosponsors), "Alex Kim")
	assert.NotContains(t, string(first.Cosponsors), "Maria Lopez")

	assert.Equal(t, "State: NY", bills[1].Category)
}

func TestOpenStates_FailingJurisdictionIsSkipped(t *testing.T) {
	src := newOpenStatesForTest(t, []string{"ca", "ny", "tx"}, func(w http.ResponseWriter, r *http.Request) {
		jurisdiction := r.URL.Query().Get("jurisdiction")
		if jurisdiction == "ny" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte(openStatesFixture(jurisdiction)))
	})

	bills, err := src.FetchBills(context.Background())

	require.NoError(t, err)
	require.Len(t, bills, 2)
	assert.Equal(t, "State: CA", bills[0].Category)
	assert.Equal(t, "State: TX", bills[1].Category)
}

func TestOpenStates_MissingAPIKey(t *testing.T) {
	src := NewOpenStates(OpenStatesConfig{
		BaseURL:       "http://unused",
		Jurisdictions: []string{"ca"},
		PerPage:       50,
	}, testClientConfig(), testLogger())

	bills, err := src.FetchBills(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
	assert.Nil(t, bills)
}

func TestOpenStates_CancelledContextStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := newOpenStatesForTest(t, []string{"ca", "ny"}, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected after cancellation")
	})

	_, err := src.FetchBills(ctx)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
