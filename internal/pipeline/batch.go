package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/laptop-specs/constants"
	"github.com/joseph-ayodele/laptop-specs/internal/common"
	"github.com/joseph-ayodele/laptop-specs/internal/entity"
	"github.com/joseph-ayodele/laptop-specs/internal/ingest"
	"github.com/joseph-ayodele/laptop-specs/internal/store"
)

// DocumentExtractor turns one document into one raw record.
type DocumentExtractor interface {
	Extract(ctx context.Context, path string) (entity.RawSpec, error)
}

// Recorder receives per-document outcomes; metrics.BatchMetrics implements it.
type Recorder interface {
	StartDocument()
	FinishDocument(status string, duration time.Duration, missing []string)
	SkipDocument(status string)
}

type Config struct {
	Workers    int    // <= 0 -> runtime.NumCPU()
	SkipHidden bool   // ignore dot-files
	Dedupe     bool   // skip documents whose content duplicates an earlier one
	OutputPath string // raw collection destination; empty -> not persisted
}

// Diagnostic records one document the batch could not turn into a record.
type Diagnostic struct {
	Document string `json:"document"`
	Stage    string `json:"stage"`
	Error    string `json:"error"`
}

// Skip is a document left out on purpose, e.g. a content duplicate.
type Skip struct {
	Document string `json:"document"`
	Reason   string `json:"reason"`
}

type Result struct {
	RunID       uuid.UUID
	Records     []entity.RawSpec
	Diagnostics []Diagnostic
	Skipped     []Skip
	Stats       ingest.DirStats
	Duration    time.Duration
}

// Batch extracts every PDF of a directory.
type Batch struct {
	cfg       Config
	extractor DocumentExtractor
	recorder  Recorder
	logger    *slog.Logger
}

func NewBatch(cfg Config, extractor DocumentExtractor, recorder Recorder, logger *slog.Logger) *Batch {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Batch{cfg: cfg, extractor: extractor, recorder: recorder, logger: logger}
}

type outcome struct {
	record *entity.RawSpec
	diag   *Diagnostic
}

// Run extracts dir (non-recursive) with bounded parallelism. A document that fails
// becomes a Diagnostic; the batch carries on. Records keep enumeration order and are
// written once, after every document finished. Only listing, cancellation and write
// failures are returned as errors.
func (b *Batch) Run(ctx context.Context, dir string) (Result, error) {
	start := time.Now()
	res := Result{RunID: uuid.New()}
	ctx = common.WithRunID(ctx, res.RunID.String())
	logger := common.LoggerFromContext(ctx, b.logger)

	listing, err := ingest.ListDocuments(ctx, dir, ingest.ListOptions{
		SkipHidden: b.cfg.SkipHidden,
		Dedupe:     b.cfg.Dedupe,
	})
	if err != nil {
		return res, fmt.Errorf("list documents: %w", err)
	}
	res.Stats = listing.Stats
	for _, f := range listing.Failures {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{Document: filepath.Base(f.Path), Stage: constants.StageIngest, Error: f.Err})
	}
	for _, f := range listing.Skipped {
		res.Skipped = append(res.Skipped, Skip{Document: filepath.Base(f.Path), Reason: f.Err})
		if b.recorder != nil {
			b.recorder.SkipDocument(string(constants.StatusSkipped))
		}
		logger.Info("batch.document.skipped", "document", filepath.Base(f.Path), "status", constants.StatusSkipped, "reason", f.Err)
	}
	logger.Info("batch.start",
		"dir", dir,
		"documents", len(listing.Documents),
		"workers", b.cfg.Workers,
	)

	outcomes := make([]outcome, len(listing.Documents))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Workers)
	for i, doc := range listing.Documents {
		if gctx.Err() != nil {
			break
		}
		i, doc := i, doc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = b.process(gctx, logger, doc)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		res.Duration = time.Since(start)
		logger.Warn("batch.canceled", "error", err)
		return res, err
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	for _, o := range outcomes {
		switch {
		case o.record != nil:
			res.Records = append(res.Records, *o.record)
		case o.diag != nil:
			res.Diagnostics = append(res.Diagnostics, *o.diag)
		}
	}
	if res.Records == nil {
		res.Records = []entity.RawSpec{}
	}

	if b.cfg.OutputPath != "" {
		if err := store.WriteJSON(b.cfg.OutputPath, res.Records); err != nil {
			logger.Error("batch.write.failed", "path", b.cfg.OutputPath, "error", err)
			res.Duration = time.Since(start)
			return res, err
		}
	}

	res.Duration = time.Since(start)
	logger.Info("batch.done",
		"records", len(res.Records),
		"diagnostics", len(res.Diagnostics),
		"skipped", len(res.Skipped),
		"output", b.cfg.OutputPath,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (b *Batch) process(ctx context.Context, logger *slog.Logger, doc ingest.Document) (out outcome) {
	start := time.Now()
	if b.recorder != nil {
		b.recorder.StartDocument()
	}
	status := constants.StatusExtracted
	var missing []string
	defer func() {
		if b.recorder != nil {
			b.recorder.FinishDocument(string(status), time.Since(start), missing)
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			status = constants.StatusExtractError
			logger.Error("batch.document.panic", "path", doc.Path, "panic", r)
			out = outcome{diag: &Diagnostic{Document: doc.Name, Stage: constants.StageExtract, Error: fmt.Sprint(r)}}
		}
	}()

	spec, err := b.extractor.Extract(ctx, doc.Path)
	if err != nil {
		stage := constants.StageExtract
		status = constants.StatusExtractError
		var readErr *common.DocumentReadError
		if errors.As(err, &readErr) {
			stage = constants.StageRead
			status = constants.StatusReadError
		}
		logger.Warn("batch.document.failed", "path", doc.Path, "stage", stage, "error", err)
		return outcome{diag: &Diagnostic{Document: doc.Name, Stage: stage, Error: err.Error()}}
	}

	missing = spec.Missing()
	logger.Info("batch.document.ok",
		"path", doc.Path,
		"brand", spec.Brand,
		"model", spec.Model,
		"missing_fields", len(missing),
	)
	return outcome{record: &spec}
}
