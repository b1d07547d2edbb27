package edgar

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// filingSummary models the slice of FilingSummary.xml this package needs: the
// report list with each document's titles and file name.
type filingSummary struct {
	Reports []struct {
		ShortName    string `xml:"ShortName"`
		LongName     string `xml:"LongName"`
		HtmlFileName string `xml:"HtmlFileName"`
		XmlFileName  string `xml:"XmlFileName"`
	} `xml:"MyReports>Report"`
}

// ParseFilingSummary builds a FileCatalog from a filing's FilingSummary.xml.
// Only reports whose long name marks them as a statement are kept; cover
// pages, notes and schedules are left out. Short names are lowercased so
// lookups are case-insensitive. HTML renderings are preferred, with the XML
// file name as fallback for filings that ship no HTML.
func ParseFilingSummary(r io.Reader) (FileCatalog, error) {
	var summary filingSummary
	if err := xml.NewDecoder(r).Decode(&summary); err != nil {
		return nil, eris.Wrap(err, "edgar: decode filing summary")
	}

	catalog := make(FileCatalog)
	for _, report := range summary.Reports {
		file := report.HtmlFileName
		if file == "" {
			file = report.XmlFileName
		}
		if file == "" || report.ShortName == "" {
			continue
		}
		if !strings.Contains(report.LongName, "Statement") {
			continue
		}
		catalog[strings.ToLower(report.ShortName)] = file
	}
	return catalog, nil
}
