package export

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/laptop-specs/internal/catalog"
	"github.com/joseph-ayodele/laptop-specs/internal/entity"
	"github.com/joseph-ayodele/laptop-specs/internal/report"
)

const (
	SpecsSheet        = "Specs"
	CompletenessSheet = "Completeness"

	listSeparator = "; "
	maxCellLen    = 2000
)

type column struct {
	header string
	width  float64
	value  func(p catalog.Product) any
}

func specCol(header, key string, width float64) column {
	return column{header: header, width: width, value: func(p catalog.Product) any {
		return cellText(p.Specs[key])
	}}
}

var columns = []column{
	{header: "Brand", width: 10, value: func(p catalog.Product) any { return p.Brand }},
	{header: "Model", width: 30, value: func(p catalog.Product) any { return p.Model }},
	{header: "Source Document", width: 36, value: func(p catalog.Product) any { return p.SourceDocument }},
	specCol("Processor", entity.KeyProcessor, 48),
	specCol("Memory", entity.KeyMemory, 28),
	specCol("Storage", entity.KeyStorage, 28),
	specCol("Display", entity.KeyDisplay, 48),
	specCol("Graphics", entity.KeyGraphics, 36),
	specCol("Battery", entity.KeyBattery, 16),
	{header: "Weight", width: 12, value: func(p catalog.Product) any { return report.FirstWeight(p.Specs) }},
	specCol("Dimensions", entity.KeyDimensions, 28),
	specCol("Ports", entity.KeyPorts, 48),
	specCol("Wireless", entity.KeyWireless, 36),
	specCol("Operating System", entity.KeyOperatingSystem, 28),
	specCol("Security", entity.KeySecurity, 36),
	specCol("Chipset", entity.KeyChipset, 20),
	specCol("Colour", entity.KeyColour, 16),
	specCol("Case Material", entity.KeyCaseMaterial, 20),
	specCol("Network", entity.KeyNetwork, 28),
	specCol("Warranty", entity.KeyWarranty, 28),
	specCol("Certification", entity.KeyCertification, 36),
	specCol("Power", entity.KeyPower, 28),
	{header: "Price", width: 12, value: func(p catalog.Product) any { return price(p, func(l *entity.Listing) *float64 { return l.PriceCurrent }) }},
	{header: "Original Price", width: 14, value: func(p catalog.Product) any { return price(p, func(l *entity.Listing) *float64 { return l.PriceOriginal }) }},
	{header: "Availability", width: 14, value: func(p catalog.Product) any {
		if p.Listing == nil {
			return ""
		}
		return p.Listing.Availability
	}},
	{header: "Price Source", width: 12, value: func(p catalog.Product) any { return p.PriceSource }},
	{header: "Listing URL", width: 60, value: func(p catalog.Product) any {
		if p.Listing == nil {
			return ""
		}
		return p.Listing.SourceURL
	}},
}

// Service produces XLSX workbooks from normalized spec documents.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// WorkbookXLSX returns an XLSX workbook (as bytes) with one "Specs" row per
// document, priced from the matching listing when there is one, and a
// "Completeness" sheet.
func (s *Service) WorkbookXLSX(ctx context.Context, docs []entity.SpecDocument, listings []entity.Listing) ([]byte, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	products := catalog.Merge(docs, listings)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// the default sheet becomes Specs
	if err := f.SetSheetName(f.GetSheetName(0), SpecsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeSpecs(f, products); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(CompletenessSheet); err != nil {
		return nil, err
	}
	if err := writeCompleteness(f, report.Completeness(docs, report.CompletenessFields)); err != nil {
		return nil, err
	}
	activeIndex, _ := f.GetSheetIndex(SpecsSheet)
	f.SetActiveSheet(activeIndex)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(products),
		"listings", len(listings),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeSpecs(f *excelize.File, products []catalog.Product) error {
	for i, c := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SpecsSheet, cell, c.header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(SpecsSheet, name, name, c.width)
	}

	for r, p := range products {
		row := r + 2
		for i, c := range columns {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(SpecsSheet, cell, c.value(p)); err != nil {
				return fmt.Errorf("write %s: %w", cell, err)
			}
		}
	}

	return f.SetPanes(SpecsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeCompleteness(f *excelize.File, rows []report.FieldCompleteness) error {
	headers := []string{"Field", "Specified", "Total", "Coverage"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(CompletenessSheet, cell, h)
	}
	for r, c := range rows {
		row := r + 2
		coverage := 0.0
		if c.Total > 0 {
			coverage = float64(c.Specified) / float64(c.Total)
		}
		for i, v := range []any{c.Label(), c.Specified, c.Total, coverage} {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(CompletenessSheet, cell, v); err != nil {
				return fmt.Errorf("write %s: %w", cell, err)
			}
		}
	}
	_ = f.SetColWidth(CompletenessSheet, "A", "A", 18)
	return nil
}

func price(p catalog.Product, pick func(*entity.Listing) *float64) any {
	if p.Listing == nil {
		return ""
	}
	if v := pick(p.Listing); v != nil {
		return *v
	}
	return ""
}

// cellText flattens a spec value: lists joined with "; ", mappings as
// "key: value" pairs in key order.
func cellText(v any) string {
	return truncate(flatten(v), maxCellLen)
}

func flatten(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case []string:
		return strings.Join(t, listSeparator)
	case []any:
		parts := make([]string, 0, len(t))
		for _, x := range t {
			parts = append(parts, flatten(x))
		}
		return strings.Join(parts, listSeparator)
	case entity.Attributes:
		return flatten(map[string]any(t))
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			val := flatten(t[k])
			if strings.Contains(val, listSeparator) {
				val = "[" + val + "]"
			}
			parts = append(parts, k+": "+val)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(t)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
