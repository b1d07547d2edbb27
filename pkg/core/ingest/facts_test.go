package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const companyFactsJSON = `{
  "facts": {
    "us-gaap": {
      "Assets": {
        "units": {
          "USD": [
            {"end": "2022-09-24", "val": 352755000000, "form": "10-K", "fp": "FY", "accn": "0000320193-22-000108"},
            {"end": "2023-09-30", "val": 352583000000, "form": "10-K", "fp": "FY", "accn": "0000320193-23-000106"},
            {"end": "2023-07-01", "val": 335038000000, "form": "10-Q", "fp": "Q3", "accn": "0000320193-23-000077"}
          ]
        }
      },
      "Revenues": {
        "units": {
          "USD": [
            {"end": "2023-09-30", "val": 383285000000, "form": "10-K", "fp": "FY", "accn": "0000320193-23-000106"}
          ]
        }
      }
    }
  }
}`

// factsServer serves the submissions history alongside the companyfacts
// payload, the two calls the facts pivot makes.
func factsServer(t *testing.T, factsJSON string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/submissions/"):
			w.Write([]byte(submissionsJSON))
		case strings.HasPrefix(r.URL.Path, "/api/xbrl/companyfacts/"):
			w.Write([]byte(factsJSON))
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestAnnualFacts(t *testing.T) {
	srv := factsServer(t, companyFactsJSON)
	defer srv.Close()

	table, err := testClient(srv).AnnualFacts(context.Background(), "0000320193")
	require.NoError(t, err)

	assert.Equal(t, []string{"Assets", "Revenues"}, table.Facts)
	require.Len(t, table.Dates, 2)
	assert.Equal(t, "2022-09-24", table.Dates[0].Format("2006-01-02"))
	assert.Equal(t, "2023-09-30", table.Dates[1].Format("2006-01-02"))

	fy23 := time.Date(2023, 9, 30, 0, 0, 0, 0, time.UTC)
	v := table.Value("Assets", fy23)
	require.NotNil(t, v)
	assert.Equal(t, 352583000000.0, *v)

	// Revenues has no FY22 observation; the cell stays nil.
	assert.Nil(t, table.Value("Revenues", table.Dates[0]))
	// The 10-Q observation never enters the annual pivot.
	assert.Nil(t, table.Value("Assets", time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)))
}

func TestQuarterlyFacts(t *testing.T) {
	srv := factsServer(t, companyFactsJSON)
	defer srv.Close()

	table, err := testClient(srv).QuarterlyFacts(context.Background(), "0000320193")
	require.NoError(t, err)

	assert.Equal(t, []string{"Assets"}, table.Facts)
	require.Len(t, table.Dates, 1)
	assert.Equal(t, "2023-07-01", table.Dates[0].Format("2006-01-02"))
}

// A 10-K tags interim period ends too. Only ends that are report dates of the
// form's filings make it into the pivot.
func TestAnnualFactsExcludesInterimPeriodEnds(t *testing.T) {
	const factsJSON = `{
	  "facts": {
	    "us-gaap": {
	      "Revenues": {
	        "units": {
	          "USD": [
	            {"end": "2023-04-01", "val": 94836000000, "form": "10-K", "fp": "FY", "accn": "0000320193-23-000106"},
	            {"end": "2023-09-30", "val": 383285000000, "form": "10-K", "fp": "FY", "accn": "0000320193-23-000106"}
	          ]
	        }
	      }
	    }
	  }
	}`
	srv := factsServer(t, factsJSON)
	defer srv.Close()

	table, err := testClient(srv).AnnualFacts(context.Background(), "0000320193")
	require.NoError(t, err)

	require.Len(t, table.Dates, 1)
	assert.Equal(t, "2023-09-30", table.Dates[0].Format("2006-01-02"))
	assert.Nil(t, table.Value("Revenues", time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)))
}

// Observations whose accession is not among the form's filings are dropped
// even when their period end matches a report date.
func TestAnnualFactsExcludesForeignAccessions(t *testing.T) {
	const factsJSON = `{
	  "facts": {
	    "us-gaap": {
	      "Assets": {
	        "units": {
	          "USD": [
	            {"end": "2023-09-30", "val": 1, "form": "10-K", "fp": "FY", "accn": "0000320193-24-999999"}
	          ]
	        }
	      }
	    }
	  }
	}`
	srv := factsServer(t, factsJSON)
	defer srv.Close()

	_, err := testClient(srv).AnnualFacts(context.Background(), "0000320193")
	assert.Error(t, err)
}

// Duplicate (fact, end) pairs across unit keys resolve by sorted key order,
// last one wins, regardless of map iteration order.
func TestAnnualFactsUnitOrderDeterministic(t *testing.T) {
	const factsJSON = `{
	  "facts": {
	    "us-gaap": {
	      "Assets": {
	        "units": {
	          "USD": [
	            {"end": "2023-09-30", "val": 100, "form": "10-K", "fp": "FY", "accn": "0000320193-23-000106"}
	          ],
	          "shares": [
	            {"end": "2023-09-30", "val": 200, "form": "10-K", "fp": "FY", "accn": "0000320193-23-000106"}
	          ]
	        }
	      }
	    }
	  }
	}`
	srv := factsServer(t, factsJSON)
	defer srv.Close()

	for i := 0; i < 5; i++ {
		table, err := testClient(srv).AnnualFacts(context.Background(), "0000320193")
		require.NoError(t, err)
		v := table.Value("Assets", time.Date(2023, 9, 30, 0, 0, 0, 0, time.UTC))
		require.NotNil(t, v)
		assert.Equal(t, 200.0, *v)
	}
}

func TestFactsNoObservations(t *testing.T) {
	srv := factsServer(t, `{"facts": {"us-gaap": {}}}`)
	defer srv.Close()

	_, err := testClient(srv).AnnualFacts(context.Background(), "0000320193")
	assert.Error(t, err)
}

func TestPivotFactsDuplicateKeepsLast(t *testing.T) {
	end := time.Date(2022, 9, 24, 0, 0, 0, 0, time.UTC)
	table := pivotFacts([]observation{
		{fact: "Assets", end: end, val: 100},
		{fact: "Assets", end: end, val: 200},
	})

	v := table.Value("Assets", end)
	require.NotNil(t, v)
	assert.Equal(t, 200.0, *v)
}
