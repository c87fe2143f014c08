package extract

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/laptop-specs/constants"
	"github.com/joseph-ayodele/laptop-specs/internal/common"
	"github.com/joseph-ayodele/laptop-specs/internal/entity"
	"github.com/joseph-ayodele/laptop-specs/internal/fields"
)

// Extractor turns one datasheet into one raw spec record.
type Extractor struct {
	text        TextExtractor
	rules       *fields.Registry
	keepRawText bool
	timeout     time.Duration
	logger      *slog.Logger
}

type Option func(*Extractor)

// WithRegistry swaps the field rule table.
func WithRegistry(r *fields.Registry) Option {
	return func(e *Extractor) { e.rules = r }
}

// WithTimeout bounds the text read of a single document; 0 means no bound.
func WithTimeout(d time.Duration) Option {
	return func(e *Extractor) { e.timeout = d }
}

// WithRawText keeps the first characters of the document text on each record.
func WithRawText(keep bool) Option {
	return func(e *Extractor) { e.keepRawText = keep }
}

func NewExtractor(text TextExtractor, logger *slog.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Extractor{text: text, rules: fields.Standard(), logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract reads path and assembles its record. Any read failure is returned as a
// *common.DocumentReadError.
func (e *Extractor) Extract(ctx context.Context, path string) (entity.RawSpec, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	res, err := e.text.Extract(ctx, path)
	if err != nil {
		return entity.RawSpec{}, common.NewDocumentReadError(filepath.Base(path), err)
	}
	for _, w := range res.Warnings {
		e.logger.Debug("text extraction warning", "path", path, "warning", w)
	}
	e.logger.Debug("text extracted",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"chars", len(res.Text),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return e.FromText(path, res.Text), nil
}

// FromText assembles a record from already extracted text. Brand comes from the path
// only, never from the text.
func (e *Extractor) FromText(path, text string) entity.RawSpec {
	r := e.rules
	spec := entity.RawSpec{
		SourceDocument:  filepath.Base(path),
		Brand:           constants.DetectBrand(path),
		Model:           r.Scalar(fields.Model, text),
		Processor:       r.List(fields.Processor, text),
		Memory:          r.List(fields.Memory, text),
		Storage:         r.List(fields.Storage, text),
		Display:         r.Attrs(fields.Display, text),
		Graphics:        r.List(fields.Graphics, text),
		Battery:         r.Scalar(fields.Battery, text),
		Weight:          r.Scalar(fields.Weight, text),
		Dimensions:      r.Scalar(fields.Dimensions, text),
		Ports:           r.List(fields.Ports, text),
		Wireless:        r.Attrs(fields.Wireless, text),
		OperatingSystem: r.List(fields.OperatingSystem, text),
		Security:        r.List(fields.Security, text),
		MultiMedia:      r.Attrs(fields.MultiMedia, text),
		Monitor:         r.Attrs(fields.Monitor, text),
		Chipset:         r.Scalar(fields.Chipset, text),
		Colour:          r.List(fields.Colour, text),
		CaseMaterial:    r.Scalar(fields.CaseMaterial, text),
		Network:         r.Attrs(fields.Network, text),
		Warranty:        r.Scalar(fields.Warranty, text),
		Certification:   r.List(fields.Certification, text),
		InputDevice:     r.Attrs(fields.InputDevice, text),
		Power:           r.Attrs(fields.Power, text),
	}
	if e.keepRawText {
		spec.RawText = preview(text, constants.RawTextPreviewLen)
	}
	return spec
}

// preview cuts text to at most n runes.
func preview(text string, n int) string {
	count := 0
	for i := range text {
		if count == n {
			return text[:i]
		}
		count++
	}
	return text
}
