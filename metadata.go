package xbrl

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
)

// FilingRef identifies one filing in the EDGAR archive.
type FilingRef struct {
	CIK       string
	Accession string // canonical dashed form: 0001193125-25-314736
}

var filingURLPattern = regexp.MustCompile(`/edgar/data/(\d+)/(\d+)`)

// ParseFilingURL extracts CIK and accession number from an SEC EDGAR archive URL.
// Example URL: https://www.sec.gov/Archives/edgar/data/1018724/000101872425000040/amzn-20241231_htm.xml
func ParseFilingURL(rawURL string) (*FilingRef, error) {
	matches := filingURLPattern.FindStringSubmatch(rawURL)
	if len(matches) < 3 {
		return nil, eris.Errorf("could not extract CIK and accession from URL %s", rawURL)
	}

	return &FilingRef{
		CIK:       matches[1],
		Accession: FormatAccession(matches[2]),
	}, nil
}

// FormatAccession converts an 18-digit accession number into the canonical
// dashed form (XXXXXXXXXX-XX-XXXXXX). Already-dashed or non-standard values
// are returned unchanged.
func FormatAccession(accession string) string {
	if len(accession) == 18 && !strings.Contains(accession, "-") {
		return accession[:10] + "-" + accession[10:12] + "-" + accession[12:]
	}
	return accession
}

// accessionPath returns the accession number in the dash-less form used in
// archive URL paths.
func accessionPath(accession string) string {
	return strings.ReplaceAll(accession, "-", "")
}
