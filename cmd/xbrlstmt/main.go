package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	xbrl "github.com/finlens/go-xbrl"
)

var cfg *Config

var rootCmd = &cobra.Command{
	Use:   "xbrlstmt",
	Short: "Extract structured financial statements from SEC XBRL filings",
	Long:  "Downloads XBRL filings from SEC EDGAR, extracts the core financial statements using the presentation and calculation linkbases, and exports them to Excel.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newFetcher builds a fetcher from configuration. The SEC rejects requests
// without a contact User-Agent, so a valid email is required.
func newFetcher() (*xbrl.Fetcher, error) {
	email := cfg.SEC.Email
	if email == "" {
		var err error
		email, err = xbrl.GetSecEmail()
		if err != nil {
			return nil, err
		}
	}

	return xbrl.NewFetcher(xbrl.FetcherOptions{
		UserAgent:    xbrl.BuildUserAgent(email),
		Timeout:      time.Duration(cfg.HTTP.TimeoutSecs) * time.Second,
		RateLimiters: xbrl.DefaultRateLimiters(),
		Logger:       zap.L(),
	}), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
