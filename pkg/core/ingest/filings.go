package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Filing is one submission from a company's EDGAR filing history.
type Filing struct {
	AccessionNumber string    // de-dashed, e.g. "000032019323000106"
	Form            string    // e.g. "10-K"
	FilingDate      time.Time
	ReportDate      time.Time // period of report; zero when EDGAR omits it
	PrimaryDocument string
}

// tickerEntry matches one record in company_tickers.json, which is keyed by
// arbitrary string indexes rather than laid out as an array.
type tickerEntry struct {
	CIK    int    `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// LookupCIK resolves a ticker symbol to its zero-padded ten-digit CIK using the
// SEC's company_tickers.json file. Share-class dots are folded to dashes to
// match EDGAR's convention (BRK.B -> BRK-B). Lookup is case-insensitive.
func (c *Client) LookupCIK(ctx context.Context, ticker string) (string, error) {
	ticker = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(ticker), ".", "-"))
	if ticker == "" {
		return "", eris.New("ingest: empty ticker")
	}

	body, err := c.get(ctx, c.endpoints.Files+"/company_tickers.json")
	if err != nil {
		return "", err
	}

	var entries map[string]tickerEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return "", eris.Wrap(err, "ingest: decode company_tickers.json")
	}

	for _, e := range entries {
		if strings.ToUpper(e.Ticker) == ticker {
			return fmt.Sprintf("%010d", e.CIK), nil
		}
	}
	return "", eris.Errorf("ingest: ticker %q not found", ticker)
}

// submissionsResponse mirrors the parallel-array layout of the EDGAR
// submissions API. Index i across the arrays describes one filing.
type submissionsResponse struct {
	Filings struct {
		Recent struct {
			AccessionNumber []string `json:"accessionNumber"`
			Form            []string `json:"form"`
			FilingDate      []string `json:"filingDate"`
			ReportDate      []string `json:"reportDate"`
			PrimaryDocument []string `json:"primaryDocument"`
		} `json:"recent"`
	} `json:"filings"`
}

// Filings lists a company's recent submissions, newest first, optionally
// filtered by form type ("10-K", "10-Q", ...). An empty form returns all.
func (c *Client) Filings(ctx context.Context, cik, form string) ([]Filing, error) {
	url := fmt.Sprintf("%s/submissions/CIK%s.json", c.endpoints.Data, cik)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var resp submissionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, eris.Wrapf(err, "ingest: decode submissions for CIK %s", cik)
	}

	recent := resp.Filings.Recent
	filings := make([]Filing, 0, len(recent.AccessionNumber))
	for i := range recent.AccessionNumber {
		if form != "" && recent.Form[i] != form {
			continue
		}
		f := Filing{
			AccessionNumber: strings.ReplaceAll(recent.AccessionNumber[i], "-", ""),
			Form:            recent.Form[i],
		}
		if i < len(recent.PrimaryDocument) {
			f.PrimaryDocument = recent.PrimaryDocument[i]
		}
		if i < len(recent.FilingDate) && recent.FilingDate[i] != "" {
			t, err := time.Parse("2006-01-02", recent.FilingDate[i])
			if err != nil {
				zap.L().Warn("ingest: unparseable filing date",
					zap.String("raw", recent.FilingDate[i]),
					zap.String("accession", f.AccessionNumber))
			} else {
				f.FilingDate = t
			}
		}
		if i < len(recent.ReportDate) && recent.ReportDate[i] != "" {
			if t, err := time.Parse("2006-01-02", recent.ReportDate[i]); err == nil {
				f.ReportDate = t
			}
		}
		filings = append(filings, f)
	}

	zap.L().Debug("ingest: listed filings",
		zap.String("cik", cik),
		zap.String("form", form),
		zap.Int("count", len(filings)))
	return filings, nil
}
