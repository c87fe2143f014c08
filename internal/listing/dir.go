package listing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joseph-ayodele/laptop-specs/constants"
	"github.com/joseph-ayodele/laptop-specs/internal/common"
	"github.com/joseph-ayodele/laptop-specs/internal/entity"
	"github.com/joseph-ayodele/laptop-specs/internal/ingest"
	"github.com/joseph-ayodele/laptop-specs/internal/pipeline"
)

// Observer is notified once per parsed page; metrics.BatchMetrics implements it.
type Observer interface {
	ListingParsed(err error)
}

// DirResult holds the listings of a directory of saved pages and the pages that
// could not be read.
type DirResult struct {
	Listings    []entity.Listing
	Diagnostics []pipeline.Diagnostic
}

// ParseDir parses every .html/.htm file of dir (non-recursive, hidden files
// skipped). A page that fails becomes a diagnostic; the rest are still returned.
func (p *Parser) ParseDir(ctx context.Context, dir string, obs Observer) (DirResult, error) {
	logger := common.LoggerFromContext(ctx, p.logger)
	res := DirResult{Listings: []entity.Listing{}}

	docs, err := ingest.ListDocuments(ctx, dir, ingest.ListOptions{
		Exts:       constants.HTMLExtensions,
		SkipHidden: true,
	})
	if err != nil {
		return res, fmt.Errorf("list pages: %w", err)
	}
	for _, f := range docs.Failures {
		res.Diagnostics = append(res.Diagnostics, pipeline.Diagnostic{
			Document: filepath.Base(f.Path), Stage: constants.StageIngest, Error: f.Err,
		})
	}

	for _, d := range docs.Documents {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		l, err := p.parseFile(d.Path)
		if obs != nil {
			obs.ListingParsed(err)
		}
		if err != nil {
			logger.Warn("listing.page.failed", "path", d.Path, "error", err)
			res.Diagnostics = append(res.Diagnostics, pipeline.Diagnostic{
				Document: d.Name, Stage: constants.StageParse, Error: err.Error(),
			})
			continue
		}
		l.SourceDocument = d.Name
		res.Listings = append(res.Listings, l)
	}

	logger.Info("listing.dir.done",
		"dir", dir,
		"listings", len(res.Listings),
		"diagnostics", len(res.Diagnostics),
	)
	return res, nil
}

func (p *Parser) parseFile(path string) (entity.Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return entity.Listing{}, common.NewDocumentReadError(filepath.Base(path), err)
	}
	defer func() { _ = f.Close() }()

	l, err := p.Parse(f, "")
	if err != nil {
		return entity.Listing{}, err
	}
	if l.SourceURL == "" {
		// no URL in the page: fall back to the file name for both
		l.SourceURL = filepath.Base(path)
		if b := constants.DetectBrand(path); b != constants.Unknown {
			l.Brand = b
		}
	}
	return l, nil
}

// Default is a Parser over VendorSelectors.
func Default(logger *slog.Logger) *Parser {
	return NewParser(VendorSelectors, logger)
}
