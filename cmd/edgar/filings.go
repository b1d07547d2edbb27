package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	filingsForm  string
	filingsLimit int
)

var filingsCmd = &cobra.Command{
	Use:   "filings <ticker|cik>",
	Short: "List a company's recent EDGAR filings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cik, err := resolveCIK(cmd, args[0])
		if err != nil {
			return err
		}

		filings, err := newClient().Filings(cmd.Context(), cik, filingsForm)
		if err != nil {
			return err
		}
		if filingsLimit > 0 && len(filings) > filingsLimit {
			filings = filings[:filingsLimit]
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ACCESSION\tFORM\tFILED\tPERIOD\tDOCUMENT")
		for _, f := range filings {
			period := ""
			if !f.ReportDate.IsZero() {
				period = f.ReportDate.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				f.AccessionNumber, f.Form, f.FilingDate.Format("2006-01-02"), period, f.PrimaryDocument)
		}
		return w.Flush()
	},
}

func init() {
	filingsCmd.Flags().StringVar(&filingsForm, "form", "", "filter by form type, e.g. 10-K")
	filingsCmd.Flags().IntVar(&filingsLimit, "limit", 20, "maximum filings to show (0 = all)")
	rootCmd.AddCommand(filingsCmd)
}
