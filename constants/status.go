package constants

// DocumentStatus is the per-document outcome of a batch run.
type DocumentStatus string

// Stable values (these exact strings appear in diagnostics and metrics).
const (
	StatusExtracted    DocumentStatus = "EXTRACTED"     // record produced
	StatusReadError    DocumentStatus = "READ_ERROR"    // document could not be opened or parsed
	StatusExtractError DocumentStatus = "EXTRACT_ERROR" // text read but record assembly failed
	StatusSkipped      DocumentStatus = "SKIPPED"       // duplicate content or not attempted
)

// Stage names recorded on diagnostics.
const (
	StageIngest  = "ingest"
	StageRead    = "read"
	StageExtract = "extract"
	StageParse   = "parse"
)
