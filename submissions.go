package xbrl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/rotisserie/eris"
)

// edgarDataBase is the submissions API host; tests point it at a local server.
var edgarDataBase = "https://data.sec.gov"

// Submissions represents the SEC submissions data for a CIK
type Submissions struct {
	CIK           string      `json:"cik"`
	EntityType    string      `json:"entityType"`
	SIC           string      `json:"sic"`
	Name          string      `json:"name"`
	Tickers       []string    `json:"tickers"`
	Exchanges     []string    `json:"exchanges"`
	FiscalYearEnd string      `json:"fiscalYearEnd"`
	Filings       FilingsData `json:"filings"`
}

// FilingsData contains recent and paginated filings information
type FilingsData struct {
	Recent FilingArrays `json:"recent"`
	Files  []FilingFile `json:"files"`
}

// FilingFile represents a paginated file containing older filings
type FilingFile struct {
	Name        string `json:"name"`
	FilingCount int    `json:"filingCount"`
	FilingFrom  string `json:"filingFrom"`
	FilingTo    string `json:"filingTo"`
}

// FilingArrays contains parallel arrays of filing data
// Each index in the arrays represents one filing
type FilingArrays struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	ReportDate      []string `json:"reportDate"`
	Form            []string `json:"form"`
	IsXBRL          []int    `json:"isXBRL"`
	IsInlineXBRL    []int    `json:"isInlineXBRL"`
	PrimaryDocument []string `json:"primaryDocument"`
}

// Filing represents a single filing with its metadata
type Filing struct {
	AccessionNumber string
	FilingDate      string
	ReportDate      string
	Form            string
	IsXBRL          bool
	IsInlineXBRL    bool
	PrimaryDocument string
	// Derived fields
	CIK string
	URL string // Full URL to the primary document
}

// FetchSubmissions fetches and parses the CIK submissions JSON from SEC
func (f *Fetcher) FetchSubmissions(ctx context.Context, cik string) (*Submissions, error) {
	// Pad CIK to 10 digits
	paddedCIK := fmt.Sprintf("%010s", cik)
	url := fmt.Sprintf("%s/submissions/CIK%s.json", edgarDataBase, paddedCIK)

	data, err := f.Get(ctx, url)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch submissions for CIK %s", cik)
	}

	return ParseSubmissions(bytes.NewReader(data))
}

// ParseSubmissions parses a submissions JSON from a reader (for local files or testing)
func ParseSubmissions(r io.Reader) (*Submissions, error) {
	var subs Submissions
	if err := json.NewDecoder(r).Decode(&subs); err != nil {
		return nil, eris.Wrap(err, "parse submissions JSON")
	}
	return &subs, nil
}

// GetFilings converts the parallel arrays in FilingArrays into a slice of Filing structs
func (fa *FilingArrays) GetFilings(cik string) []Filing {
	count := len(fa.AccessionNumber)
	filings := make([]Filing, count)

	for i := 0; i < count; i++ {
		filing := Filing{
			CIK:             cik,
			AccessionNumber: fa.AccessionNumber[i],
		}

		// Remaining arrays are parallel but occasionally shorter in practice
		if i < len(fa.FilingDate) {
			filing.FilingDate = fa.FilingDate[i]
		}
		if i < len(fa.ReportDate) {
			filing.ReportDate = fa.ReportDate[i]
		}
		if i < len(fa.Form) {
			filing.Form = fa.Form[i]
		}
		if i < len(fa.IsXBRL) {
			filing.IsXBRL = fa.IsXBRL[i] != 0
		}
		if i < len(fa.IsInlineXBRL) {
			filing.IsInlineXBRL = fa.IsInlineXBRL[i] != 0
		}
		if i < len(fa.PrimaryDocument) {
			filing.PrimaryDocument = fa.PrimaryDocument[i]
		}

		filing.URL = filing.BuildURL()
		filings[i] = filing
	}

	return filings
}

// BuildURL constructs the full SEC EDGAR URL for this filing's primary document
func (f *Filing) BuildURL() string {
	return archiveBaseURL(f.CIK, f.AccessionNumber) + "/" + f.PrimaryDocument
}

// GetRecentFilings returns all recent filings as a slice
func (s *Submissions) GetRecentFilings() []Filing {
	return s.Filings.Recent.GetFilings(s.CIK)
}

// FilterByForms keeps filings whose form type matches any of the given types
// exactly (e.g. "10-K", "10-Q"). Amendments ("10-K/A") are matched when the
// amended form is requested explicitly.
func FilterByForms(filings []Filing, forms ...string) []Filing {
	var filtered []Filing
	for _, f := range filings {
		for _, form := range forms {
			if f.Form == form {
				filtered = append(filtered, f)
				break
			}
		}
	}
	return filtered
}

// FilterByDateRange filters filings by filing date range (inclusive).
// Dates should be in YYYY-MM-DD format; empty bounds are open.
func FilterByDateRange(filings []Filing, from, to string) []Filing {
	var filtered []Filing
	for _, f := range filings {
		if from != "" && f.FilingDate < from {
			continue
		}
		if to != "" && f.FilingDate > to {
			continue
		}
		filtered = append(filtered, f)
	}
	return filtered
}

// SortByFilingDateDesc orders filings newest first. The sort is stable so
// same-day filings keep their submissions-file order.
func SortByFilingDateDesc(filings []Filing) {
	sort.SliceStable(filings, func(i, j int) bool {
		return filings[i].FilingDate > filings[j].FilingDate
	})
}

// FetchPaginatedFilings fetches and parses a paginated filings file
func (f *Fetcher) FetchPaginatedFilings(ctx context.Context, filename string) (*FilingArrays, error) {
	url := fmt.Sprintf("%s/submissions/%s", edgarDataBase, filename)

	data, err := f.Get(ctx, url)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch paginated filings %s", filename)
	}

	// Paginated files only contain the FilingArrays
	var filings FilingArrays
	if err := json.Unmarshal(data, &filings); err != nil {
		return nil, eris.Wrapf(err, "parse paginated filings %s", filename)
	}

	return &filings, nil
}

// GetAllFilings returns all filings including paginated results
func (s *Submissions) GetAllFilings(ctx context.Context, f *Fetcher) ([]Filing, error) {
	allFilings := s.GetRecentFilings()

	for _, fileInfo := range s.Filings.Files {
		filings, err := f.FetchPaginatedFilings(ctx, fileInfo.Name)
		if err != nil {
			return nil, err
		}
		allFilings = append(allFilings, filings.GetFilings(s.CIK)...)
	}

	return allFilings, nil
}
