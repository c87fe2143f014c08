package extract

import (
	"context"

	"github.com/joseph-ayodele/laptop-specs/internal/pdftext"
)

type PDFTextAdapter struct {
	e *pdftext.Extractor
}

func NewPDFTextAdapter(e *pdftext.Extractor) *PDFTextAdapter {
	return &PDFTextAdapter{e: e}
}

func (a *PDFTextAdapter) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	r, err := a.e.Extract(ctx, path)
	return TextExtractionResult{
		Text:     r.Text,
		Pages:    r.Pages,
		Method:   r.Method,
		Duration: r.Duration,
		Warnings: r.Warnings,
	}, err
}
