package xbrl

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Extractor turns one EDGAR filing into its set of statement tables. The
// three source documents are fetched and parsed concurrently; the instance
// document is mandatory and its failure fails the extraction, while a
// missing or broken linkbase only degrades the row ordering for its source.
// A call either returns a complete StatementSet or an error, never partial
// results.
type Extractor struct {
	fetcher *Fetcher
	log     *zap.Logger
}

// NewExtractor creates an Extractor. A nil logger disables logging.
func NewExtractor(fetcher *Fetcher, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{fetcher: fetcher, log: logger}
}

// ExtractFiling extracts the financial statements of one filing identified
// by CIK and accession number.
func (e *Extractor) ExtractFiling(ctx context.Context, cik, accession string) (*StatementSet, error) {
	idx, err := e.fetcher.FetchFilingIndex(ctx, cik, accession)
	if err != nil {
		return nil, eris.Wrapf(err, "extract filing %s", accession)
	}

	docs, err := idx.ResolveDocuments()
	if err != nil {
		return nil, eris.Wrapf(err, "extract filing %s", accession)
	}

	var (
		inst *Instance
		pres map[Statement][]string
		calc map[Statement][]string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := e.fetcher.Get(gctx, idx.DocumentURL(docs.Instance))
		if err != nil {
			return eris.Wrap(err, "instance document")
		}
		parsed, err := ParseInstance(data)
		if err != nil {
			return eris.Wrap(err, "instance document")
		}
		inst = parsed
		return nil
	})

	g.Go(func() error {
		pres = e.fetchLinkbase(gctx, idx, docs.Presentation, "presentation", ParsePresentation)
		return nil
	})

	g.Go(func() error {
		calc = e.fetchLinkbase(gctx, idx, docs.Calculation, "calculation", ParseCalculation)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, eris.Wrapf(err, "extract filing %s", accession)
	}

	e.log.Debug("parsed instance document",
		zap.String("accession", accession),
		zap.String("dialect", string(inst.Dialect)),
		zap.Int("contexts", len(inst.Contexts)),
		zap.Int("facts", len(inst.Facts)),
		zap.Int("skipped_contexts", inst.SkippedContexts),
		zap.Int("skipped_facts", inst.SkippedFacts),
	)

	return BuildStatements(inst, MergeCalculation(pres, calc)), nil
}

// ExtractFilingURL extracts statements for a filing identified by any EDGAR
// archive URL naming its directory.
func (e *Extractor) ExtractFilingURL(ctx context.Context, rawURL string) (*StatementSet, error) {
	ref, err := ParseFilingURL(rawURL)
	if err != nil {
		return nil, err
	}
	return e.ExtractFiling(ctx, ref.CIK, ref.Accession)
}

// fetchLinkbase downloads and parses one optional linkbase. Any failure
// degrades to a nil concept map for that source: best-effort tables from the
// remaining source beat aborting the run.
func (e *Extractor) fetchLinkbase(
	ctx context.Context,
	idx *FilingIndex,
	name string,
	kind string,
	parse func([]byte) (map[Statement][]string, error),
) map[Statement][]string {
	if name == "" {
		e.log.Warn("filing has no linkbase",
			zap.String("accession", idx.Accession),
			zap.String("kind", kind),
		)
		return nil
	}

	data, err := e.fetcher.Get(ctx, idx.DocumentURL(name))
	if err != nil {
		e.log.Warn("linkbase fetch failed, degrading",
			zap.String("accession", idx.Accession),
			zap.String("kind", kind),
			zap.Error(err),
		)
		return nil
	}

	result, err := parse(data)
	if err != nil {
		e.log.Warn("linkbase unparsable, degrading",
			zap.String("accession", idx.Accession),
			zap.String("kind", kind),
			zap.Error(err),
		)
		return nil
	}

	return result
}
