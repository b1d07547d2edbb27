// Package edgar extracts normalized financial statement tables from SEC EDGAR
// filings. It locates the rendered document for a requested statement inside a
// filing, walks its HTML table structure with goquery, and produces a
// rectangular grid of line items by report dates.
package edgar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// StatementType identifies one of the three financial statements a filing
// renders as a standalone document.
type StatementType string

const (
	BalanceSheet      StatementType = "balance_sheet"
	IncomeStatement   StatementType = "income_statement"
	CashFlowStatement StatementType = "cash_flow_statement"
)

// ParseStatementType converts a user-supplied name into a StatementType.
func ParseStatementType(s string) (StatementType, error) {
	switch StatementType(s) {
	case BalanceSheet, IncomeStatement, CashFlowStatement:
		return StatementType(s), nil
	}
	return "", fmt.Errorf("unknown statement type %q", s)
}

// FileCatalog maps the lowercased short name of each rendered statement
// document in a filing to its file name. Built once per filing from
// FilingSummary.xml.
type FileCatalog map[string]string

// StatementGrid is the normalized form of one financial statement:
// rows keyed by line-item label, columns keyed by report date.
// Cells[i][j] holds the value of Labels[i] at Dates[j]; nil marks a value
// the filing did not report for that period.
type StatementGrid struct {
	Labels []string
	Dates  []time.Time
	Cells  [][]*float64
}

// Value returns the cell for a label and date, or nil if either is absent.
func (g *StatementGrid) Value(label string, date time.Time) *float64 {
	col := -1
	for j, d := range g.Dates {
		if d.Equal(date) {
			col = j
			break
		}
	}
	if col < 0 {
		return nil
	}
	for i, l := range g.Labels {
		if l == label {
			return g.Cells[i][col]
		}
	}
	return nil
}

// WriteTSV writes the grid as tab-separated text, one line item per row with
// report dates as column headers.
func (g *StatementGrid) WriteTSV(w io.Writer) error {
	header := make([]string, 0, len(g.Dates)+1)
	header = append(header, "line_item")
	for _, d := range g.Dates {
		header = append(header, d.Format("2006-01-02"))
	}
	if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
		return err
	}
	for i, label := range g.Labels {
		row := make([]string, 0, len(g.Dates)+1)
		row = append(row, label)
		for _, v := range g.Cells[i] {
			if v == nil {
				row = append(row, "")
			} else {
				row = append(row, fmt.Sprintf("%.0f", *v))
			}
		}
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}
