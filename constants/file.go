package constants

import "strings"

// PDFExtensions holds the extensions picked up by the batch extraction driver.
var PDFExtensions = map[string]struct{}{
	"pdf": {},
}

// HTMLExtensions holds the extensions of saved product pages.
var HTMLExtensions = map[string]struct{}{
	"html": {},
	"htm":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsPDFExt reports whether a normalized extension is a PDF.
func IsPDFExt(ext string) bool {
	_, ok := PDFExtensions[ext]
	return ok
}
