package pdftext

import (
	"regexp"
	"strings"
)

var (
	reCRLF     = regexp.MustCompile(`\r\n?`)
	reNUL      = regexp.MustCompile("\x00+")
	reFormFeed = regexp.MustCompile(`\f`)
)

// Normalize repairs line endings, NUL bytes and page breaks. It keeps spacing and
// blank lines intact because field patterns anchor on line boundaries.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reNUL.ReplaceAllString(s, "")
	s = reFormFeed.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
