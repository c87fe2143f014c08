package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joseph-ayodele/laptop-specs/constants"
	"github.com/joseph-ayodele/laptop-specs/internal/catalog"
	"github.com/joseph-ayodele/laptop-specs/internal/entity"
	"github.com/joseph-ayodele/laptop-specs/internal/export"
	"github.com/joseph-ayodele/laptop-specs/internal/extract"
	"github.com/joseph-ayodele/laptop-specs/internal/ingest"
	"github.com/joseph-ayodele/laptop-specs/internal/listing"
	"github.com/joseph-ayodele/laptop-specs/internal/normalize"
	"github.com/joseph-ayodele/laptop-specs/internal/pdftext"
	"github.com/joseph-ayodele/laptop-specs/internal/pipeline"
	"github.com/joseph-ayodele/laptop-specs/internal/report"
	"github.com/joseph-ayodele/laptop-specs/internal/schema"
	"github.com/joseph-ayodele/laptop-specs/internal/store"
)

const watchDebounce = 750 * time.Millisecond

func (a *app) newExtractor() *extract.Extractor {
	text := pdftext.NewExtractor(pdftext.Config{
		Pdftotext:       a.cfg.Extract.PDFToTextBin,
		Fallback:        a.cfg.Extract.PDFToTextFallback,
		BreakerFailures: uint32(a.cfg.Extract.BreakerFailures),
		BreakerCooldown: a.cfg.Extract.BreakerCooldown,
		MaxPages:        a.cfg.Extract.MaxPages,
	}, a.logger)
	return extract.NewExtractor(extract.NewPDFTextAdapter(text), a.logger,
		extract.WithRawText(a.cfg.Extract.KeepRawText),
		extract.WithTimeout(a.cfg.Extract.Timeout),
	)
}

type extractOptions struct {
	dir     string
	out     string
	workers int
	dedupe  bool
}

func (a *app) extractDir(ctx context.Context, o extractOptions) (pipeline.Result, error) {
	workers := o.workers
	if workers <= 0 {
		workers = a.cfg.Extract.Workers
	}
	batch := pipeline.NewBatch(pipeline.Config{
		Workers:    workers,
		SkipHidden: true,
		Dedupe:     o.dedupe,
		OutputPath: o.out,
	}, a.newExtractor(), a.metrics, a.logger)

	res, err := batch.Run(ctx, o.dir)
	if err != nil {
		return res, err
	}
	for _, d := range res.Diagnostics {
		a.logger.Warn("extract.diagnostic", "document", d.Document, "stage", d.Stage, "error", d.Error)
	}
	fmt.Fprintf(a.stdout, "extracted %d record(s) from %s, %d diagnostic(s), %d duplicate(s) skipped -> %s\n",
		len(res.Records), o.dir, len(res.Diagnostics), len(res.Skipped), o.out)
	return res, nil
}

func readDocuments(path string) ([]entity.SpecDocument, error) {
	var docs []entity.SpecDocument
	if err := store.ReadJSON(path, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []entity.SpecDocument{}
	}
	return docs, nil
}

func readListings(path string) ([]entity.Listing, error) {
	var out []entity.Listing
	if err := store.ReadJSON(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// optionalListings reads a listings file when a path is given.
func (a *app) optionalListings(path string) ([]entity.Listing, error) {
	if path == "" {
		return nil, nil
	}
	return readListings(path)
}

// validate checks docs and logs one line per violation.
func (a *app) validate(docs []entity.SpecDocument, schemaPath string) (schema.Result, error) {
	s, err := a.loadSchema(schemaPath)
	if err != nil {
		return schema.Result{}, err
	}
	res := schema.NewValidator(s, a.logger).Validate(docs)
	a.metrics.SchemaViolations(len(res.Errors))
	for _, v := range res.Errors {
		a.logger.Warn("schema.violation", "path", v.Path.String(), "message", v.Message)
	}
	if res.Valid {
		a.logger.Info("schema.valid", "documents", len(docs), "schema", s.Name)
	} else {
		a.logger.Warn("schema.invalid", "documents", len(docs), "violations", len(res.Errors))
	}
	return res, nil
}

func (a *app) parseListings(ctx context.Context, dir, out string) ([]entity.Listing, error) {
	res, err := listing.Default(a.logger).ParseDir(ctx, dir, a.metrics)
	if err != nil {
		return nil, err
	}
	for _, d := range res.Diagnostics {
		a.logger.Warn("listing.diagnostic", "document", d.Document, "stage", d.Stage, "error", d.Error)
	}
	if out != "" {
		if err := store.WriteJSON(out, res.Listings); err != nil {
			return nil, err
		}
	}
	fmt.Fprintf(a.stdout, "parsed %d listing(s) from %s -> %s\n", len(res.Listings), dir, out)
	return res.Listings, nil
}

func (a *app) merge(docs []entity.SpecDocument, listings []entity.Listing, out string) ([]catalog.Product, error) {
	products := catalog.Merge(docs, listings)
	if err := store.WriteJSON(out, products); err != nil {
		return nil, err
	}
	matched := 0
	for _, p := range products {
		if p.Listing != nil {
			matched++
		}
	}
	if rest := catalog.Unmatched(products, listings); len(rest) > 0 {
		a.logger.Info("merge.unmatched_listings", "count", len(rest))
	}
	fmt.Fprintf(a.stdout, "merged %d product(s), %d with web listing -> %s\n", len(products), matched, out)
	return products, nil
}

func (a *app) writeReport(docs []entity.SpecDocument, out string, toStdout bool) error {
	text := report.Summary(docs)
	if out != "" {
		if err := store.WriteFile(out, []byte(text)); err != nil {
			return err
		}
	}
	if toStdout {
		fmt.Fprintln(a.stdout, text)
	}
	return nil
}

func (a *app) writeWorkbook(ctx context.Context, docs []entity.SpecDocument, listings []entity.Listing, out string) error {
	b, err := export.NewService(a.logger).WorkbookXLSX(ctx, docs, listings)
	if err != nil {
		return err
	}
	if err := store.WriteFile(out, b); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "workbook -> %s\n", out)
	return nil
}

type runOptions struct {
	extract   extractOptions
	htmlDir   string
	schema    string
	strict    bool
	workbook  bool
	skipPages bool
}

// runAll is the full pipeline: extract, normalize, validate, persist, then the
// optional listing merge, report and workbook.
func (a *app) runAll(ctx context.Context, o runOptions) error {
	p := a.cfg.Paths

	res, err := a.extractDir(ctx, o.extract)
	if err != nil {
		return err
	}

	docs, err := normalize.Documents(res.Records)
	if err != nil {
		return err
	}
	docs = normalize.Normalize(docs)

	vr, err := a.validate(docs, o.schema)
	if err != nil {
		return err
	}
	if !vr.Valid && o.strict {
		return vr.Err()
	}

	if err := store.WriteJSON(p.NormalizedSpecsFile, docs); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "normalized %d record(s) -> %s (valid=%t)\n", len(docs), p.NormalizedSpecsFile, vr.Valid)

	var listings []entity.Listing
	if !o.skipPages && dirExists(o.htmlDir) {
		listings, err = a.parseListings(ctx, o.htmlDir, p.ListingsFile)
		if err != nil {
			return err
		}
	} else {
		a.logger.Info("run.listings.skipped", "dir", o.htmlDir)
	}

	if _, err := a.merge(docs, listings, p.ContextFile); err != nil {
		return err
	}
	if err := a.writeReport(docs, p.ReportFile, false); err != nil {
		return err
	}
	if o.workbook {
		if err := a.writeWorkbook(ctx, docs, listings, p.WorkbookFile); err != nil {
			return err
		}
	}
	a.logger.Info("run.done",
		"run_id", res.RunID.String(),
		"records", len(docs),
		"diagnostics", len(res.Diagnostics),
		"valid", vr.Valid,
		"listings", len(listings),
	)
	return nil
}

// watch calls fn once per debounced burst of PDF changes in dir until ctx ends.
// A failed round is logged and the watch continues.
func (a *app) watch(ctx context.Context, dir string, fn func(context.Context) error) error {
	events, errs, err := ingest.Watch(ctx, ingest.WatchConfig{
		Dir:         dir,
		AllowedExts: constants.PDFExtensions,
		Debounce:    watchDebounce,
		Logger:      a.logger,
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	a.logger.Info("watch.start", "dir", dir)

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("watch.stop", "dir", dir)
			return nil
		case paths, ok := <-events:
			if !ok {
				return nil
			}
			a.logger.Info("watch.changed", "files", len(paths))
			if err := fn(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				a.logger.Error("watch.round.failed", "error", err)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			a.logger.Warn("watch.error", "error", err)
		}
	}
}

func dirExists(dir string) bool {
	if dir == "" {
		return false
	}
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
