package edgar

import (
	"math"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// LabelFunc derives a stable row label from the anchor element inside a data
// row's label cell. The extraction convention is pluggable because the token
// format belongs to the EDGAR renderer, not to this pipeline.
type LabelFunc func(anchor *goquery.Selection) string

// DefaultLabelFunc extracts the "defref_" identifier that EDGAR's XBRL
// renderer embeds in each label cell's onclick attribute, e.g.
// top.Show.showAR( this, 'defref_us-gaap_CashAndCashEquivalents', window );
// yields us-gaap_CashAndCashEquivalents. Falls back to the visible label text
// when the marker is absent.
func DefaultLabelFunc(anchor *goquery.Selection) string {
	if onclick, ok := anchor.Attr("onclick"); ok {
		if _, after, found := strings.Cut(onclick, "defref_"); found {
			if token, _, _ := strings.Cut(after, "',"); token != "" {
				return token
			}
		}
	}
	return strings.TrimSpace(anchor.Text())
}

// extractedStatement is the raw output of one document walk: one label and one
// value row per data row, plus the shared date axis. Every row has exactly
// len(Dates) values, nil where the filing reported nothing for that period.
type extractedStatement struct {
	Labels []string
	Rows   [][]*float64
	Dates  []time.Time
}

// extractStatement walks every table in a rendered statement document. The
// date axis is read once per document from the th.th header cells and is
// shared by all tables; a statement file describes one consistent time axis.
// Header dates that fail to parse drop their column from the axis and from
// every row, so remaining columns keep their alignment.
func extractStatement(doc *goquery.Document, labelFn LabelFunc) *extractedStatement {
	dates, keep, total := dateAxis(doc)
	ext := &extractedStatement{Dates: dates}

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		multiplier, special := tableUnits(table)

		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			anchors := row.Find("td.pl a, td.pl.custom a")
			if anchors.Length() == 0 {
				// Section header or spacer row, not a data row.
				return
			}

			vals := make([]*float64, total)
			pos := 0
			row.Find("td.text, td.nump, td.num").Each(func(_ int, cell *goquery.Selection) {
				i := pos
				pos++
				if i >= len(vals) {
					return
				}
				if cell.HasClass("text") {
					// Pure-text cells hold footnote refs, never figures.
					return
				}
				raw := strings.TrimSpace(cell.Text())
				vals[i] = normalizeCell(raw, multiplier, special, cell.HasClass("num"))
			})

			ext.Labels = append(ext.Labels, labelFn(anchors.First()))
			ext.Rows = append(ext.Rows, projectColumns(vals, keep))
		})
	})

	return ext
}

// dateAxis reads the per-column date headers (th.th cells with a nested div)
// and normalizes each one. It returns the parsed dates, a keep mask over the
// raw header columns, and the raw column count so rows can be filled by
// position before malformed columns are dropped.
func dateAxis(doc *goquery.Document) ([]time.Time, []bool, int) {
	var dates []time.Time
	var keep []bool
	doc.Find("th.th").Each(func(_ int, th *goquery.Selection) {
		raw := strings.TrimSpace(th.ChildrenFiltered("div").First().Text())
		if raw == "" {
			return
		}
		t, err := NormalizeDate(raw)
		if err != nil {
			zap.L().Warn("edgar: dropping statement column with unparseable date",
				zap.String("raw", raw))
			keep = append(keep, false)
			return
		}
		dates = append(dates, t)
		keep = append(keep, true)
	})
	return dates, keep, len(keep)
}

// tableUnits derives the unit multiplier and the special-case flag from a
// table's first header cell. Figures default to thousands; "in Millions"
// scales currency cells by 1000. The "unless otherwise specified" phrasing
// marks tables whose figures are already absolute and must be divided by 1000
// regardless of any thousands/millions hint.
func tableUnits(table *goquery.Selection) (multiplier float64, special bool) {
	multiplier = 1
	th := table.Find("th").First()
	if th.Length() == 0 {
		return multiplier, false
	}
	header := th.Text()
	if strings.Contains(header, "in Millions") {
		multiplier = 1000
	}
	return multiplier, strings.Contains(header, "unless otherwise specified")
}

// normalizeCell converts one value-bearing cell. Parenthesization always wins
// the sign; otherwise the renderer's num class marks the value negative.
func normalizeCell(raw string, multiplier float64, special, negativeRole bool) *float64 {
	if special {
		multiplier = 1
	}
	p := NormalizeNumber(raw, multiplier)
	if p == nil {
		return nil
	}
	v := *p
	if special {
		v /= 1000
	}
	parenthesized := strings.Contains(raw, "(") && strings.Contains(raw, ")")
	if negativeRole && !parenthesized {
		v = -math.Abs(v)
	}
	return &v
}

// projectColumns keeps only the value positions whose header date parsed.
func projectColumns(vals []*float64, keep []bool) []*float64 {
	out := make([]*float64, 0, len(vals))
	for i, ok := range keep {
		if ok {
			out = append(out, vals[i])
		}
	}
	return out
}

// statementTitle returns the statement's declared title from the th.tl header
// cell, lowercased the way downstream consumers key on it.
func statementTitle(doc *goquery.Document) string {
	return strings.ToLower(strings.TrimSpace(doc.Find("th.tl").First().Text()))
}
