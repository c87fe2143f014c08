package ingest

// Document is one source file picked up from an input directory.
type Document struct {
	Path    string
	Name    string
	Ext     string
	Size    int64
	HashHex string // sha256 of the content, set when deduplicating
}

// FileResult is a per-file failure or skip.
type FileResult struct {
	Path string
	Err  string
}

// DirStats summarizes a directory listing.
type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Hidden       uint32
	Deduplicated uint32
	Failed       uint32
}

// ListOptions controls ListDocuments.
type ListOptions struct {
	// Exts restricts the listing (lowercase, without '.'); nil -> PDF only.
	Exts map[string]struct{}
	// SkipHidden drops dot-files.
	SkipHidden bool
	// Dedupe drops files whose content hash was already seen earlier in the listing.
	Dedupe bool
}

// Listing is the outcome of ListDocuments.
type Listing struct {
	Documents []Document
	Failures  []FileResult
	Skipped   []FileResult // duplicates dropped by Dedupe
	Stats     DirStats
}
