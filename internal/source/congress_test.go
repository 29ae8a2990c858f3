package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legisync/internal/domain"
)

const congressFixture = `{
  "bills": [
    {
      "number": "1234",
      "title": "Clean Water Infrastructure Act",
      "type": "HR",
      "introducedDate": "2025-03-10",
      "url": "https://api.congress.gov/v3/bill/119/hr/1234",
      "latestAction": {"text": "Referred to the Committee on Energy and Commerce."},
      "sponsors": [{"fullName": "Rep. Doe, Jane [D-CA-12]"}]
    },
    {
      "number": "567",
      "title": "",
      "type": "S",
      "introducedDate": "2025-02-01",
      "latestAction": {"text": "Passed Senate without amendment."},
      "sponsors": []
    }
  ]
}`

func newCongressForTest(t *testing.T, handler http.HandlerFunc) *Congress {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewCongress(CongressConfig{
		BaseURL:  srv.URL,
		APIKey:   "test-key",
		Congress: 119,
		PageSize: 250,
	}, testClientConfig(), testLogger())
}

func TestCongress_FetchBills(t *testing.T) {
	src := newCongressForTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bill/119", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "250", r.URL.Query().Get("limit"))
		w.Write([]byte(congressFixture))
	})

	bills, err := src.FetchBills(context.Background())

	require.NoError(t, err)
	require.Len(t, bills, 2)

	first := bills[0]
	assert.Equal(t, "congress-119-hr-1234", first.ExternalID)
	assert.Equal(t, domain.SourceCongress, first.Source)
	assert.Equal(t, "1234", first.BillNumber)
	assert.Equal(t, "Clean Water Infrastructure Act", first.Title)
	assert.Equal(t, domain.StatusCommitteeReview, first.Status)
	assert.Equal(t, "House", first.Category)
	require.NotNil(t, first.Sponsor)
	assert.Equal(t, "Rep. Doe, Jane [D-CA-12]", *first.Sponsor)
	assert.Equal(t, "2025-03-10", first.IntroducedDate.Format("2006-01-02"))
	require.NotNil(t, first.OfficialURL)
	assert.Equal(t, "https://api.congress.gov/v3/bill/119/hr/1234", *first.OfficialURL)

	second := bills[1]
	assert.Equal(t, "congress-119-s-567", second.ExternalID)
	assert.Equal(t, "Untitled Bill", second.Title)
	assert.Equal(t, domain.StatusPassedSenate, second.Status)
	assert.Equal(t, "Senate", second.Category)
	assert.Nil(t, second.Sponsor)
	require.NotNil(t, second.OfficialURL)
	assert.Equal(t, "https://www.congress.gov/bill/119th-congress/s-bill/567", *second.OfficialURL)
}

func TestCongress_MissingAPIKey(t *testing.T) {
	src := NewCongress(CongressConfig{BaseURL: "http://unused", Congress: 119, PageSize: 250},
		testClientConfig(), testLogger())

	bills, err := src.FetchBills(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
	assert.Nil(t, bills)
}

func TestCongress_UpstreamError(t *testing.T) {
	src := newCongressForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := src.FetchBills(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamFetch))
}

func TestCongress_EmptyPage(t *testing.T) {
	src := newCongressForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"bills": []}`))
	})

	bills, err := src.FetchBills(context.Background())

	require.NoError(t, err)
	assert.Empty(t, bills)
}
