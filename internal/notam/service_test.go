package notam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yegors/notamify/internal/observability"
	"github.com/yegors/notamify/pkg/logger"
)

func newTestService(baseURL string, clock clockwork.Clock) *Service {
	return NewService(ServiceConfig{
		BaseURL:               baseURL,
		APIKey:                testAPIKey,
		RequestTimeoutSecs:    5,
		DefaultLookaheadHours: 24,
	}, observability.NewMetricsForTesting(), clock, logger.NewNop())
}

func TestService_SynthesizesTimeWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)

	var params url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params = r.URL.Query()
		writePage(t, w, 0, nil, nil)
	}))
	defer srv.Close()

	svc := newTestService(srv.URL, clock)
	_, err := svc.GetNOTAMs(context.Background(), "kjfk", "", "", 0)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-15T10:30:00Z", params.Get("starts_at"))
	assert.Equal(t, "2024-03-16T10:30:00Z", params.Get("ends_at"))
	assert.Equal(t, []string{"KJFK"}, params["location"])
}

func TestService_CustomLookahead(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)

	var params url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params = r.URL.Query()
		writePage(t, w, 0, nil, nil)
	}))
	defer srv.Close()

	svc := newTestService(srv.URL, clock)
	_, err := svc.GetNOTAMs(context.Background(), "KJFK", "", "", 6)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-15T10:30:00Z", params.Get("starts_at"))
	assert.Equal(t, "2024-03-15T16:30:00Z", params.Get("ends_at"))
}

func TestService_ExplicitWindowPassedThrough(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC))

	var params url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params = r.URL.Query()
		writePage(t, w, 0, nil, nil)
	}))
	defer srv.Close()

	svc := newTestService(srv.URL, clock)
	_, err := svc.GetNOTAMs(context.Background(), "KJFK", "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z", 0)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01T00:00:00Z", params.Get("starts_at"))
	assert.Equal(t, "2024-01-02T00:00:00Z", params.Get("ends_at"))
}

func TestService_GetAffectedElements_EmptyResult(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writePage(t, w, 0, nil, nil)
	}))
	defer srv.Close()

	svc := newTestService(srv.URL, clock)
	summary, err := svc.GetAffectedElements(context.Background(), "KJFK", "", "", 0)
	require.NoError(t, err)

	assert.Equal(t, "No active NOTAMs found for KJFK in the time period 2024-01-01T00:00:00Z to 2024-01-02T00:00:00Z.", summary)
}

func TestService_GetAffectedElements_RendersSummary(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writePage(t, w, 1, []map[string]interface{}{{
			"id":        "N-1",
			"icao_code": "KJFK",
			"interpretation": map[string]interface{}{
				"category": "RUNWAY",
				"affected_elements": []map[string]interface{}{
					{"type": "RUNWAY", "identifier": "04L", "effect": "CLOSED"},
				},
			},
		}}, nil)
	}))
	defer srv.Close()

	svc := newTestService(srv.URL, clock)
	summary, err := svc.GetAffectedElements(context.Background(), "kjfk", "", "", 0)
	require.NoError(t, err)

	assert.Contains(t, summary, "NOTAM AFFECTED ELEMENTS SUMMARY")
	assert.Contains(t, summary, "Time Period: 2024-01-01T00:00:00Z to 2024-01-02T00:00:00Z")
	assert.Contains(t, summary, "   AIRPORT: KJFK")
	assert.Contains(t, summary, "     RUNWAY:")
	assert.Contains(t, summary, "       • 04L")
	assert.Contains(t, summary, "         Effect: CLOSED")
}

func TestService_InvalidLocationsFailBeforeFetch(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	svc := newTestService(srv.URL, clock)
	_, err := svc.GetNOTAMs(context.Background(), "KJFK,EGLL,EDDM,KLAX,KORD,EDDF", "", "", 0)

	var invalid *InvalidQueryError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 0, requests)
}

func TestService_StartStop(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	svc := newTestService("http://unused", clock)

	require.NoError(t, svc.Start())
	require.NoError(t, svc.Start(), "starting twice is a no-op")
	require.NoError(t, svc.Stop())
	require.NoError(t, svc.Stop(), "stopping twice is a no-op")
}
