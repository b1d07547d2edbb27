package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"edgar_scraper/pkg/core/ingest"
)

var factsQuarterly bool

var factsCmd = &cobra.Command{
	Use:   "facts <ticker|cik>",
	Short: "Pivot a company's XBRL facts by period",
	Long:  "Fetches the company's us-gaap XBRL facts and prints a fact-by-period table. Defaults to annual (10-K) observations; --quarterly switches to 10-Q.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cik, err := resolveCIK(cmd, args[0])
		if err != nil {
			return err
		}

		client := newClient()
		var table *ingest.FactTable
		if factsQuarterly {
			table, err = client.QuarterlyFacts(cmd.Context(), cik)
		} else {
			table, err = client.AnnualFacts(cmd.Context(), cik)
		}
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprint(w, "FACT")
		for _, d := range table.Dates {
			fmt.Fprintf(w, "\t%s", d.Format("2006-01-02"))
		}
		fmt.Fprintln(w)
		for i, fact := range table.Facts {
			fmt.Fprint(w, fact)
			for _, v := range table.Values[i] {
				if v == nil {
					fmt.Fprint(w, "\t")
				} else {
					fmt.Fprintf(w, "\t%g", *v)
				}
			}
			fmt.Fprintln(w)
		}
		return w.Flush()
	},
}

func init() {
	factsCmd.Flags().BoolVar(&factsQuarterly, "quarterly", false, "use 10-Q observations instead of 10-K")
	rootCmd.AddCommand(factsCmd)
}
