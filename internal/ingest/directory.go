package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/laptop-specs/constants"
)

// ListDocuments reads root (non-recursive) and returns the matching files in
// directory order. Unreadable entries become failures; the listing carries on.
func ListDocuments(ctx context.Context, root string, opts ListOptions) (Listing, error) {
	var out Listing
	if strings.TrimSpace(root) == "" {
		return out, errors.New("root path is required")
	}
	exts := opts.Exts
	if exts == nil {
		exts = constants.PDFExtensions
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return out, fmt.Errorf("read dir: %w", err)
	}

	seen := map[string]string{}
	for _, d := range entries {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		out.Stats.Scanned++
		if d.IsDir() {
			continue
		}
		path := filepath.Join(root, d.Name())
		if opts.SkipHidden && IsHidden(path) {
			out.Stats.Hidden++
			continue
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if _, ok := exts[ext]; !ok {
			continue
		}
		out.Stats.Matched++

		info, err := d.Info()
		if err != nil {
			out.Failures = append(out.Failures, FileResult{Path: path, Err: err.Error()})
			out.Stats.Failed++
			continue
		}
		doc := Document{Path: path, Name: d.Name(), Ext: ext, Size: info.Size()}

		if opts.Dedupe {
			sum, err := HashFile(path)
			if err != nil {
				out.Failures = append(out.Failures, FileResult{Path: path, Err: err.Error()})
				out.Stats.Failed++
				continue
			}
			if first, dup := seen[sum]; dup {
				out.Skipped = append(out.Skipped, FileResult{Path: path, Err: "duplicate of " + first})
				out.Stats.Deduplicated++
				continue
			}
			seen[sum] = d.Name()
			doc.HashHex = sum
		}
		out.Documents = append(out.Documents, doc)
	}
	return out, nil
}

// HashFile returns the hex sha256 of a file's content.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}
