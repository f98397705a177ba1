package xbrl

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// BatchOptions configures batch statement extraction across a CIK's filings.
type BatchOptions struct {
	CIK              string   // Required: CIK to extract filings for
	Forms            []string // Form types to include (default: 10-K, 10-Q)
	DateFrom         string   // Optional: filing-date lower bound (YYYY-MM-DD)
	DateTo           string   // Optional: filing-date upper bound (YYYY-MM-DD)
	Limit            int      // Optional: cap on filings extracted (0 = all)
	IncludePaginated bool     // If true, also walk the paginated older filings
}

// FilingStatements pairs one filing with its extracted statement set.
type FilingStatements struct {
	Filing     Filing
	Statements *StatementSet
}

// BatchResult contains the results of a batch extraction.
type BatchResult struct {
	Extractions []FilingStatements
	TotalFound  int     // Filings matching the criteria
	Fetched     int     // Filings successfully extracted
	Errors      []error // Per-filing extraction failures
}

// ExtractBatch extracts statements for every filing of a CIK matching the
// criteria, newest first. One filing failing does not abort the batch; its
// error is accumulated and the remaining filings are still processed.
func (e *Extractor) ExtractBatch(ctx context.Context, opts BatchOptions) (*BatchResult, error) {
	if opts.CIK == "" {
		return nil, eris.New("CIK is required")
	}
	if len(opts.Forms) == 0 {
		opts.Forms = []string{"10-K", "10-Q"}
	}

	subs, err := e.fetcher.FetchSubmissions(ctx, opts.CIK)
	if err != nil {
		return nil, eris.Wrap(err, "batch extract")
	}

	var filings []Filing
	if opts.IncludePaginated {
		filings, err = subs.GetAllFilings(ctx, e.fetcher)
		if err != nil {
			return nil, eris.Wrap(err, "batch extract")
		}
	} else {
		filings = subs.GetRecentFilings()
	}

	filings = FilterByForms(filings, opts.Forms...)
	if opts.DateFrom != "" || opts.DateTo != "" {
		filings = FilterByDateRange(filings, opts.DateFrom, opts.DateTo)
	}
	SortByFilingDateDesc(filings)

	result := &BatchResult{TotalFound: len(filings)}

	for _, filing := range filings {
		if opts.Limit > 0 && result.Fetched >= opts.Limit {
			break
		}
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "batch extract")
		}

		set, err := e.ExtractFiling(ctx, filing.CIK, filing.AccessionNumber)
		if err != nil {
			e.log.Warn("filing extraction failed",
				zap.String("accession", filing.AccessionNumber),
				zap.String("form", filing.Form),
				zap.Error(err),
			)
			result.Errors = append(result.Errors, err)
			continue
		}

		result.Extractions = append(result.Extractions, FilingStatements{
			Filing:     filing,
			Statements: set,
		})
		result.Fetched++
	}

	return result, nil
}
