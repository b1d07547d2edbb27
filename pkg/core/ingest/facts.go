package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// FactTable is a pivot of XBRL company facts: one row per fact name, one
// column per period end date. Missing observations are nil.
type FactTable struct {
	Facts  []string
	Dates  []time.Time
	Values [][]*float64 // Values[i][j] = Facts[i] at Dates[j]
}

// Value returns the observation for a fact at a period end, or nil.
func (t *FactTable) Value(fact string, date time.Time) *float64 {
	for i, f := range t.Facts {
		if f != fact {
			continue
		}
		for j, d := range t.Dates {
			if d.Equal(date) {
				return t.Values[i][j]
			}
		}
	}
	return nil
}

// factUnit is one observation inside the companyfacts response.
type factUnit struct {
	End  string  `json:"end"`
	Val  float64 `json:"val"`
	Form string  `json:"form"`
	FP   string  `json:"fp"`
	Accn string  `json:"accn"`
}

type companyFactsResponse struct {
	Facts struct {
		USGAAP map[string]struct {
			Units map[string][]factUnit `json:"units"`
		} `json:"us-gaap"`
	} `json:"facts"`
}

// observation is one flattened (fact, end, value) triple before pivoting.
type observation struct {
	fact string
	end  time.Time
	val  float64
}

// AnnualFacts pivots the company's us-gaap facts reported on 10-K filings.
func (c *Client) AnnualFacts(ctx context.Context, cik string) (*FactTable, error) {
	return c.facts(ctx, cik, "10-K")
}

// QuarterlyFacts pivots the company's us-gaap facts reported on 10-Q filings.
func (c *Client) QuarterlyFacts(ctx context.Context, cik string) (*FactTable, error) {
	return c.facts(ctx, cik, "10-Q")
}

func (c *Client) facts(ctx context.Context, cik, form string) (*FactTable, error) {
	// Observations are restricted to the form's filings: the accession must
	// belong to one, and the period end must be one of their report dates.
	// A 10-K also tags interim period ends; those never enter the annual pivot.
	filings, err := c.Filings(ctx, cik, form)
	if err != nil {
		return nil, err
	}
	accessions := make(map[string]struct{}, len(filings))
	reportDates := make(map[time.Time]struct{}, len(filings))
	for _, f := range filings {
		accessions[f.AccessionNumber] = struct{}{}
		if !f.ReportDate.IsZero() {
			reportDates[f.ReportDate] = struct{}{}
		}
	}

	url := fmt.Sprintf("%s/api/xbrl/companyfacts/CIK%s.json", c.endpoints.Data, cik)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var resp companyFactsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, eris.Wrapf(err, "ingest: decode company facts for CIK %s", cik)
	}

	var obs []observation
	for fact, detail := range resp.Facts.USGAAP {
		// Unit keys are walked in sorted order so keep-last over duplicate
		// (fact, end) pairs is deterministic.
		unitKeys := make([]string, 0, len(detail.Units))
		for key := range detail.Units {
			unitKeys = append(unitKeys, key)
		}
		sort.Strings(unitKeys)
		for _, key := range unitKeys {
			for _, u := range detail.Units[key] {
				if u.Form != form {
					continue
				}
				if _, ok := accessions[strings.ReplaceAll(u.Accn, "-", "")]; !ok {
					continue
				}
				end, err := time.Parse("2006-01-02", u.End)
				if err != nil {
					continue
				}
				if _, ok := reportDates[end]; !ok {
					continue
				}
				obs = append(obs, observation{fact: fact, end: end, val: u.Val})
			}
		}
	}
	if len(obs) == 0 {
		return nil, eris.Errorf("ingest: no %s facts for CIK %s", form, cik)
	}

	return pivotFacts(obs), nil
}

// pivotFacts turns flat observations into a fact-by-date table. Facts are
// sorted by name, dates chronologically. Duplicate (fact, end) pairs keep the
// last observation, matching EDGAR's restatement ordering where later filings
// re-report earlier periods.
func pivotFacts(obs []observation) *FactTable {
	factIdx := make(map[string]int)
	dateIdx := make(map[time.Time]int)
	var facts []string
	var dates []time.Time
	for _, o := range obs {
		if _, ok := factIdx[o.fact]; !ok {
			factIdx[o.fact] = 0
			facts = append(facts, o.fact)
		}
		if _, ok := dateIdx[o.end]; !ok {
			dateIdx[o.end] = 0
			dates = append(dates, o.end)
		}
	}
	sort.Strings(facts)
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	for i, f := range facts {
		factIdx[f] = i
	}
	for j, d := range dates {
		dateIdx[d] = j
	}

	values := make([][]*float64, len(facts))
	for i := range values {
		values[i] = make([]*float64, len(dates))
	}
	for _, o := range obs {
		v := o.val
		values[factIdx[o.fact]][dateIdx[o.end]] = &v
	}

	return &FactTable{Facts: facts, Dates: dates, Values: values}
}
