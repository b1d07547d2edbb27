package edgar

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// DocumentFetcher supplies the two filing artifacts the pipeline consumes:
// the filing's summary manifest and individual rendered documents.
// ingest.Client implements it.
type DocumentFetcher interface {
	FetchFilingSummary(ctx context.Context, cik, accession string) ([]byte, error)
	FetchFilingDocument(ctx context.Context, cik, accession, name string) ([]byte, error)
}

// Scraper runs the statement extraction pipeline for one filing at a time:
// resolve the statement's document, fetch it, extract the table grid. It
// holds no per-call state, so one Scraper is safe for concurrent use as long
// as its fetcher is.
type Scraper struct {
	fetcher DocumentFetcher
	labelFn LabelFunc
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithLabelFunc overrides the row label extraction strategy.
func WithLabelFunc(fn LabelFunc) Option {
	return func(s *Scraper) { s.labelFn = fn }
}

// NewScraper creates a Scraper over the given fetcher.
func NewScraper(fetcher DocumentFetcher, opts ...Option) *Scraper {
	s := &Scraper{fetcher: fetcher, labelFn: DefaultLabelFunc}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StatementFileCatalog fetches and parses a filing's summary manifest.
func (s *Scraper) StatementFileCatalog(ctx context.Context, cik, accession string) (FileCatalog, error) {
	body, err := s.fetcher.FetchFilingSummary(ctx, cik, accession)
	if err != nil {
		return nil, eris.Wrapf(err, "edgar: fetch filing summary for %s/%s", cik, accession)
	}
	return ParseFilingSummary(bytes.NewReader(body))
}

// GetOneStatement retrieves one financial statement from a filing and returns
// its normalized grid together with the statement's declared title. Failures
// to resolve a document, an XML-only rendering, and an empty extraction are
// distinct error conditions; per-cell parse failures have already degraded to
// nil values by the time a grid is returned.
func (s *Scraper) GetOneStatement(ctx context.Context, cik, accession string, st StatementType) (*StatementGrid, string, error) {
	catalog, err := s.StatementFileCatalog(ctx, cik, accession)
	if err != nil {
		return nil, "", err
	}

	file, matched, err := ResolveStatementFile(catalog, st)
	if err != nil {
		return nil, "", err
	}
	if strings.HasSuffix(strings.ToLower(file), ".xml") {
		return nil, "", &UnsupportedFormatError{File: file}
	}

	zap.L().Info("edgar: fetching statement document",
		zap.String("cik", cik),
		zap.String("accession", accession),
		zap.String("statement", string(st)),
		zap.String("file", file))

	body, err := s.fetcher.FetchFilingDocument(ctx, cik, accession, file)
	if err != nil {
		return nil, "", eris.Wrapf(err, "edgar: fetch statement document %s", file)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, "", eris.Wrapf(err, "edgar: parse statement document %s", file)
	}

	grid, err := assembleGrid(extractStatement(doc, s.labelFn))
	if err != nil {
		return nil, "", err
	}

	label := statementTitle(doc)
	if label == "" {
		label = matched
	}
	return grid, label, nil
}
