package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	xbrl "github.com/finlens/go-xbrl"
)

var (
	exportCIK       string
	exportAccession string
	exportURL       string
	exportOut       string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Extract a filing's financial statements to an Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		fetcher, err := newFetcher()
		if err != nil {
			return err
		}
		extractor := xbrl.NewExtractor(fetcher, zap.L())

		var set *xbrl.StatementSet
		switch {
		case exportURL != "":
			set, err = extractor.ExtractFilingURL(cmd.Context(), exportURL)
		case exportCIK != "" && exportAccession != "":
			set, err = extractor.ExtractFiling(cmd.Context(), exportCIK, exportAccession)
		default:
			return eris.New("either --url or both --cik and --accession are required")
		}
		if err != nil {
			return err
		}

		if err := xbrl.ExportXLSX(set, exportOut); err != nil {
			return err
		}

		fmt.Printf("wrote %d statement sheets to %s\n", len(set.Statements()), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportCIK, "cik", "", "company CIK")
	exportCmd.Flags().StringVar(&exportAccession, "accession", "", "filing accession number")
	exportCmd.Flags().StringVar(&exportURL, "url", "", "EDGAR archive URL of the filing")
	exportCmd.Flags().StringVar(&exportOut, "out", "statements.xlsx", "output workbook path")
	rootCmd.AddCommand(exportCmd)
}
