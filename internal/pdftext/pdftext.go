package pdftext

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/sony/gobreaker/v2"

	"github.com/joseph-ayodele/laptop-specs/constants"
)

const (
	MethodNative    = "pdf-native"
	MethodPdftotext = "pdftotext"
)

// ErrNoText is the warning attached to a result whose document has no text layer.
var ErrNoText = errors.New("no extractable text")

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Fallback  bool   // run pdftotext when the native reader fails or finds no text
	MaxPages  int    // read at most this many pages; 0 = no limit

	// BreakerFailures consecutive pdftotext failures open the breaker (0 -> 5);
	// while open the fallback is skipped for BreakerCooldown (0 -> 30s).
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

type ExtractionResult struct {
	Text     string
	Pages    int
	Method   string // MethodNative | MethodPdftotext
	Duration time.Duration
	Warnings []string
}

// Extractor produces the full text of one PDF datasheet.
type Extractor struct {
	cfg     Config
	runner  Runner
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = 30 * time.Second
	}
	return &Extractor{
		cfg:     cfg,
		runner:  execRunner{logger: logger},
		breaker: newBreaker(cfg, logger),
		logger:  logger,
	}
}

// newBreaker guards the pdftotext subprocess: a missing or crashing binary
// fails every document, so after a run of failures the fallback is skipped.
func newBreaker(cfg Config, logger *slog.Logger) *gobreaker.CircuitBreaker[[]byte] {
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "pdftotext",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: func(err error) bool {
			// a canceled batch says nothing about the binary
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit_breaker_state_change", "operation", name, "from", from.String(), "to", to.String())
		},
	})
}

// Extract reads the document natively and falls back to pdftotext when configured.
// Pages without text are skipped; pages are joined with "\n".
func (e *Extractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	if !constants.IsPDFExt(ext) {
		return ExtractionResult{}, fmt.Errorf("unsupported extension: %q", ext)
	}
	if err := ctx.Err(); err != nil {
		return ExtractionResult{}, err
	}

	text, pages, warns, err := e.readNative(path)
	res := ExtractionResult{Text: text, Pages: pages, Method: MethodNative, Warnings: warns}
	if err == nil && strings.TrimSpace(text) != "" {
		res.Text = Normalize(text)
		res.Duration = time.Since(start)
		return res, nil
	}

	if !e.cfg.Fallback {
		res.Duration = time.Since(start)
		if err != nil {
			return res, err
		}
		res.Warnings = append(res.Warnings, ErrNoText.Error())
		return res, nil
	}

	if err != nil {
		e.logger.Warn("native pdf read failed, trying pdftotext", "path", path, "error", err)
		res.Warnings = append(res.Warnings, err.Error())
	}
	text, pages, w, ferr := e.pdfToText(ctx, path)
	res.Warnings = append(res.Warnings, w...)
	res.Duration = time.Since(start)
	if ferr != nil {
		if err != nil {
			return res, fmt.Errorf("%w; pdftotext: %w", err, ferr)
		}
		return res, fmt.Errorf("pdftotext: %w", ferr)
	}
	res.Text = Normalize(text)
	res.Pages = pages
	res.Method = MethodPdftotext
	return res, nil
}

func (e *Extractor) readNative(path string) (text string, pages int, warnings []string, err error) {
	file, err := os.Open(path)
	if err != nil {
		return "", 0, nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return "", 0, nil, fmt.Errorf("stat pdf: %w", err)
	}

	// the pdf package panics on some malformed streams
	defer func() {
		if r := recover(); r != nil {
			text, pages, err = "", 0, fmt.Errorf("parse pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(file, info.Size())
	if err != nil {
		return "", 0, nil, fmt.Errorf("parse pdf: %w", err)
	}

	total := reader.NumPage()
	if e.cfg.MaxPages > 0 && total > e.cfg.MaxPages {
		total = e.cfg.MaxPages
	}
	parts := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, perr := page.GetPlainText(nil)
		if perr != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: %v", i, perr))
			continue
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		parts = append(parts, pageText)
	}
	return strings.Join(parts, "\n"), reader.NumPage(), warnings, nil
}

func (e *Extractor) pdfToText(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	// pdftotext -layout -enc UTF-8 -eol unix [-l N] <path> -
	args := []string{"-layout", "-enc", "UTF-8", "-eol", "unix"}
	if e.cfg.MaxPages > 0 {
		args = append(args, "-l", strconv.Itoa(e.cfg.MaxPages))
	}
	args = append(args, path, "-")

	var errb []byte
	out, err := e.breaker.Execute(func() ([]byte, error) {
		stdout, stderr, rerr := e.runner.Run(ctx, e.cfg.Pdftotext, args...)
		errb = stderr
		return stdout, rerr
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", 0, nil, fmt.Errorf("%s unavailable: %w", e.cfg.Pdftotext, err)
		}
		return "", 0, []string{strings.TrimSpace(string(errb))}, err
	}
	text = string(out)
	// A form-feed \f is used as page separator by default
	pages = 1 + strings.Count(strings.TrimRight(text, "\f"), "\f")
	return text, pages, nil, nil
}
