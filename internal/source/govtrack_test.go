package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legisync/internal/domain"
)

const govtrackFixture = `{
  "objects": [
    {
      "id": 484557,
      "display_number": "H.R. 22",
      "number": 22,
      "title": "H.R. 22: SAVE Act",
      "title_without_number": "SAVE Act",
      "current_status": "passed_house",
      "introduced_date": "2025-01-03",
      "bill_type": "house_bill",
      "link": "/congress/bills/119/hr22",
      "sponsor": {"name": "Chip Roy"}
    },
    {
      "id": 500001,
      "display_number": "",
      "number": 99,
      "title": "",
      "current_status": "referred",
      "introduced_date": "bad-date",
      "bill_type": "senate_bill",
      "link": "/congress/bills/119/s99",
      "sponsor": null
    }
  ]
}`

func newGovTrackForTest(t *testing.T, handler http.HandlerFunc) *GovTrack {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewGovTrack(GovTrackConfig{
		BaseURL:      srv.URL,
		PageSize:     250,
		LookbackDays: 30,
	}, testClientConfig(), testLogger())
}

func TestGovTrack_FetchBills(t *testing.T) {
	src := newGovTrackForTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bill", r.URL.Path)
		assert.Equal(t, "250", r.URL.Query().Get("limit"))

		since, err := time.Parse("2006-01-02", r.URL.Query().Get("introduced_date__gte"))
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, -30), since, 24*time.Hour)

		w.Write([]byte(govtrackFixture))
	})

	bills, err := src.FetchBills(context.Background())

	require.NoError(t, err)
	require.Len(t, bills, 2)

	first := bills[0]
	assert.Equal(t, "govtrack-484557", first.ExternalID)
	assert.Equal(t, domain.SourceGovTrack, first.Source)
	assert.Equal(t, "H.R. 22", first.BillNumber)
	assert.Equal(t, "H.R. 22: SAVE Act", first.Title)
	assert.Equal(t, "SAVE Act", first.ShortDescription)
	assert.Equal(t, domain.StatusPassedHouse, first.Status)
	assert.Equal(t, "House", first.Category)
	require.NotNil(t, first.Sponsor)
	assert.Equal(t, "Chip Roy", *first.Sponsor)
	require.NotNil(t, first.OfficialURL)
	assert.Equal(t, "https://www.govtrack.us/congress/bills/119/hr22", *first.OfficialURL)

	second := bills[1]
	assert.Equal(t, "govtrack-500001", second.ExternalID)
	assert.Equal(t, "99", second.BillNumber) // falls back to the numeric field
	assert.Equal(t, "Untitled Bill", second.Title)
	assert.Equal(t, domain.StatusCommitteeReview, second.Status)
	assert.Equal(t, "Senate", second.Category)
	assert.Nil(t, second.Sponsor)
	// Unparseable introduced_date falls back to the sync time.
	assert.WithinDuration(t, time.Now().UTC(), second.IntroducedDate, time.Minute)
}

func TestGovTrack_UpstreamError(t *testing.T) {
	src := newGovTrackForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := src.FetchBills(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamFetch))
}
