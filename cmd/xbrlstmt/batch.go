package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	xbrl "github.com/finlens/go-xbrl"
)

var (
	batchForms  []string
	batchFrom   string
	batchTo     string
	batchLimit  int
	batchOutDir string
)

var batchCmd = &cobra.Command{
	Use:   "batch CIK",
	Short: "Extract statements for every matching filing of a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fetcher, err := newFetcher()
		if err != nil {
			return err
		}
		extractor := xbrl.NewExtractor(fetcher, zap.L())

		result, err := extractor.ExtractBatch(cmd.Context(), xbrl.BatchOptions{
			CIK:      args[0],
			Forms:    batchForms,
			DateFrom: batchFrom,
			DateTo:   batchTo,
			Limit:    batchLimit,
		})
		if err != nil {
			return err
		}

		for _, ex := range result.Extractions {
			name := fmt.Sprintf("%s_%s.xlsx", ex.Filing.Form, ex.Filing.AccessionNumber)
			path := filepath.Join(batchOutDir, name)
			if err := xbrl.ExportXLSX(ex.Statements, path); err != nil {
				zap.L().Warn("workbook write failed", zap.String("path", path), zap.Error(err))
				continue
			}
			fmt.Printf("wrote %s\n", path)
		}

		fmt.Printf("found %d filings, extracted %d, %d errors\n",
			result.TotalFound, result.Fetched, len(result.Errors))
		return nil
	},
}

func init() {
	batchCmd.Flags().StringSliceVar(&batchForms, "forms", []string{"10-K", "10-Q"}, "form types to extract (comma separated)")
	batchCmd.Flags().StringVar(&batchFrom, "from", "", "earliest filing date (YYYY-MM-DD)")
	batchCmd.Flags().StringVar(&batchTo, "to", "", "latest filing date (YYYY-MM-DD)")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "maximum filings to extract (0 = all)")
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", ".", "directory for output workbooks")
	rootCmd.AddCommand(batchCmd)
}
