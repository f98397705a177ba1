package main

import (
	"fmt"

	"github.com/spf13/cobra"

	xbrl "github.com/finlens/go-xbrl"
)

var (
	filingsForms []string
	filingsFrom  string
	filingsTo    string
	filingsLimit int
)

var filingsCmd = &cobra.Command{
	Use:   "filings CIK",
	Short: "List a company's recent XBRL filings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fetcher, err := newFetcher()
		if err != nil {
			return err
		}

		subs, err := fetcher.FetchSubmissions(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		filings := xbrl.FilterByForms(subs.GetRecentFilings(), filingsForms...)
		if filingsFrom != "" || filingsTo != "" {
			filings = xbrl.FilterByDateRange(filings, filingsFrom, filingsTo)
		}
		xbrl.SortByFilingDateDesc(filings)

		if len(filings) == 0 {
			fmt.Println("no matching filings")
			return nil
		}

		fmt.Printf("%-6s  %-12s  %-12s  %-20s\n", "FORM", "FILED", "PERIOD", "ACCESSION")
		for i, f := range filings {
			if filingsLimit > 0 && i >= filingsLimit {
				break
			}
			fmt.Printf("%-6s  %-12s  %-12s  %-20s\n", f.Form, f.FilingDate, f.ReportDate, f.AccessionNumber)
		}
		return nil
	},
}

func init() {
	filingsCmd.Flags().StringSliceVar(&filingsForms, "forms", []string{"10-K", "10-Q"}, "form types to list (comma separated)")
	filingsCmd.Flags().StringVar(&filingsFrom, "from", "", "earliest filing date (YYYY-MM-DD)")
	filingsCmd.Flags().StringVar(&filingsTo, "to", "", "latest filing date (YYYY-MM-DD)")
	filingsCmd.Flags().IntVar(&filingsLimit, "limit", 20, "maximum filings to list (0 = all)")
	rootCmd.AddCommand(filingsCmd)
}
