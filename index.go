package xbrl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// IndexEntry is one file listed in an accession directory.
type IndexEntry struct {
	Name         string `json:"name"`
	LastModified string `json:"last-modified"`
	Size         string `json:"size"`
}

// FilingIndex lists the files available for one filing.
type FilingIndex struct {
	CIK       string
	Accession string
	Entries   []IndexEntry
}

// FilingDocuments names the three source documents resolved from a filing
// index. Instance is always set; the linkbases are empty when the filing
// does not include them.
type FilingDocuments struct {
	Instance     string
	Presentation string
	Calculation  string
}

const (
	// instanceMarker tags the machine-readable instance document that EDGAR
	// extracts from an inline-XBRL primary document.
	instanceMarker = "_htm.xml"

	presentationSuffix = "_pre.xml"
	calculationSuffix  = "_cal.xml"
)

// edgarArchiveBase is the EDGAR archive host; tests point it at a local server.
var edgarArchiveBase = "https://www.sec.gov"

// archiveBaseURL builds the EDGAR archive directory URL for a filing.
func archiveBaseURL(cik, accession string) string {
	return fmt.Sprintf("%s/Archives/edgar/data/%s/%s",
		edgarArchiveBase,
		strings.TrimLeft(cik, "0"),
		accessionPath(accession),
	)
}

// FetchFilingIndex downloads the file listing for one accession. It prefers
// the JSON directory index and falls back to parsing the HTML listing when
// the JSON form is unavailable.
func (f *Fetcher) FetchFilingIndex(ctx context.Context, cik, accession string) (*FilingIndex, error) {
	base := archiveBaseURL(cik, accession)

	idx := &FilingIndex{CIK: cik, Accession: FormatAccession(accession)}

	data, err := f.Get(ctx, base+"/index.json")
	if err == nil {
		entries, perr := parseIndexJSON(data)
		if perr == nil {
			idx.Entries = entries
			return idx, nil
		}
		f.log.Warn("filing index JSON unparsable, falling back to HTML listing",
			zap.String("accession", accession),
			zap.Error(perr),
		)
	}

	page, err := f.Get(ctx, base+"/")
	if err != nil {
		return nil, eris.Wrapf(err, "fetch filing index for %s", accession)
	}

	entries, err := parseIndexHTML(page)
	if err != nil {
		return nil, eris.Wrapf(err, "parse filing index for %s", accession)
	}
	idx.Entries = entries
	return idx, nil
}

// parseIndexJSON decodes the EDGAR directory index JSON.
func parseIndexJSON(data []byte) ([]IndexEntry, error) {
	var doc struct {
		Directory struct {
			Items []IndexEntry `json:"item"`
		} `json:"directory"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "decode index JSON")
	}
	if len(doc.Directory.Items) == 0 {
		return nil, eris.New("index JSON lists no files")
	}
	return doc.Directory.Items, nil
}

// parseIndexHTML extracts file names from the EDGAR HTML directory listing.
// The listing is a table of anchors whose hrefs end in the file names.
func parseIndexHTML(data []byte) ([]IndexEntry, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, eris.Wrap(err, "parse index HTML")
	}

	var entries []IndexEntry
	seen := make(map[string]bool)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				name := attr.Val
				if i := strings.LastIndex(name, "/"); i >= 0 {
					name = name[i+1:]
				}
				// Directory links and navigation anchors carry no extension.
				if name == "" || !strings.Contains(name, ".") || seen[name] {
					continue
				}
				seen[name] = true
				entries = append(entries, IndexEntry{Name: name})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(entries) == 0 {
		return nil, eris.New("index HTML lists no files")
	}
	return entries, nil
}

// ResolveDocuments picks the instance document and the two linkbases out of
// the index. The instance document is the .xml file carrying the _htm.xml
// marker (the machine-readable extraction of the inline-XBRL primary
// document). Missing linkbases are not an error; a missing instance is.
func (idx *FilingIndex) ResolveDocuments() (FilingDocuments, error) {
	var docs FilingDocuments
	for _, e := range idx.Entries {
		name := e.Name
		switch {
		case strings.HasSuffix(name, instanceMarker):
			if docs.Instance == "" {
				docs.Instance = name
			}
		case strings.HasSuffix(name, presentationSuffix):
			if docs.Presentation == "" {
				docs.Presentation = name
			}
		case strings.HasSuffix(name, calculationSuffix):
			if docs.Calculation == "" {
				docs.Calculation = name
			}
		}
	}

	if docs.Instance == "" {
		return docs, eris.Errorf("no XBRL instance document in filing %s", idx.Accession)
	}
	return docs, nil
}

// DocumentURL returns the archive URL of a file in this filing's directory.
func (idx *FilingIndex) DocumentURL(name string) string {
	return archiveBaseURL(idx.CIK, idx.Accession) + "/" + name
}
