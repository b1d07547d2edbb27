package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(srv *httptest.Server, opts ...ClientOption) *Client {
	base := []ClientOption{
		WithEndpoints(Endpoints{
			Archives: srv.URL + "/Archives/edgar/data",
			Data:     srv.URL,
			Files:    srv.URL + "/files",
		}),
		WithHTTPClient(srv.Client()),
		WithRateLimit(1000, 1000),
		WithUserAgent("Test Runner test@example.com"),
	}
	return NewClient(append(base, opts...)...)
}

func TestClientSetsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := testClient(srv).FetchFilingDocument(context.Background(), "0000320193", "000032019320000096", "R2.htm")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, "Test Runner test@example.com", gotUA)
}

func TestClientArchivePath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	// Leading CIK zeros are stripped and accession dashes removed in archive URLs.
	_, err := testClient(srv).FetchFilingDocument(context.Background(), "0000320193", "0000320193-20-000096", "FilingSummary.xml")
	require.NoError(t, err)
	assert.Equal(t, "/Archives/edgar/data/320193/000032019320000096/FilingSummary.xml", gotPath)
}

func TestClientRetriesOnRateLimit(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := testClient(srv).FetchFilingSummary(context.Background(), "320193", "000032019320000096")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, 2, attempts)
}

func TestClientRetryBudgetExhausted(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv, WithMaxRetries(2)).FetchFilingSummary(context.Background(), "320193", "000032019320000096")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retry budget exhausted")
	assert.Equal(t, 2, attempts)
}

func TestClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("too late"))
	}))
	defer srv.Close()

	_, err := testClient(srv, WithTimeout(10*time.Millisecond)).
		FetchFilingDocument(context.Background(), "320193", "000032019320000096", "R2.htm")
	require.Error(t, err)
}

func TestClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient(srv).FetchFilingDocument(context.Background(), "320193", "000032019320000096", "missing.htm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestClientUsesCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	cache := NewDocumentCache(t.TempDir())
	client := testClient(srv, WithCache(cache))

	ctx := context.Background()
	first, err := client.FetchFilingDocument(ctx, "320193", "000032019320000096", "R2.htm")
	require.NoError(t, err)
	second, err := client.FetchFilingDocument(ctx, "320193", "000032019320000096", "R2.htm")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, hits)
}
