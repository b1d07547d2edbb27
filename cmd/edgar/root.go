package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"edgar_scraper/pkg/config"
	"edgar_scraper/pkg/core/ingest"
)

var (
	cfg        *config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "edgar",
	Short: "Scrape financial statements from SEC EDGAR",
	Long:  "Resolves tickers to CIKs, lists filings, and extracts balance sheets, income statements, and cash flow statements from rendered 10-K/10-Q reports.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")
}

// newClient builds the EDGAR client from loaded configuration.
func newClient() *ingest.Client {
	return ingest.NewClient(
		ingest.WithUserAgent(cfg.Identity.UserAgent()),
		ingest.WithRateLimit(cfg.HTTP.RateLimit, cfg.HTTP.Burst),
		ingest.WithTimeout(time.Duration(cfg.HTTP.TimeoutSecs)*time.Second),
		ingest.WithMaxRetries(cfg.HTTP.MaxRetries),
		ingest.WithCache(ingest.NewDocumentCache(cfg.Cache.Dir)),
	)
}

// resolveCIK accepts either a ticker symbol or a raw CIK number.
func resolveCIK(cmd *cobra.Command, symbol string) (string, error) {
	if isNumeric(symbol) {
		if len(symbol) < 10 {
			symbol = strings.Repeat("0", 10-len(symbol)) + symbol
		}
		return symbol, nil
	}
	return newClient().LookupCIK(cmd.Context(), symbol)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
