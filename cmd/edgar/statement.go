package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"edgar_scraper/pkg/core/edgar"
)

var statementForm string

var statementCmd = &cobra.Command{
	Use:   "statement <ticker|cik> <balance_sheet|income_statement|cash_flow_statement> [accession]",
	Short: "Extract one financial statement from a filing",
	Long:  "Extracts the requested statement from a filing's rendered report pages and prints it as TSV. Without an accession number, the most recent filing of the chosen form is used.",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := edgar.ParseStatementType(args[1])
		if err != nil {
			return err
		}

		cik, err := resolveCIK(cmd, args[0])
		if err != nil {
			return err
		}

		client := newClient()

		var accession string
		if len(args) == 3 {
			accession = args[2]
		} else {
			filings, err := client.Filings(cmd.Context(), cik, statementForm)
			if err != nil {
				return err
			}
			if len(filings) == 0 {
				return fmt.Errorf("no %s filings for CIK %s", statementForm, cik)
			}
			accession = filings[0].AccessionNumber
		}

		scraper := edgar.NewScraper(client)
		grid, label, err := scraper.GetOneStatement(cmd.Context(), cik, accession, st)
		if err != nil {
			return err
		}

		zap.L().Info("statement extracted",
			zap.String("cik", cik),
			zap.String("accession", accession),
			zap.String("label", label),
			zap.Int("rows", len(grid.Labels)))

		return grid.WriteTSV(os.Stdout)
	},
}

func init() {
	statementCmd.Flags().StringVar(&statementForm, "form", "10-K", "form type used when no accession is given")
	rootCmd.AddCommand(statementCmd)
}
