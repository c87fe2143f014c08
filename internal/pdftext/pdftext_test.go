package pdftext

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	out   string
	err   error
	calls [][]string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.calls = append(s.calls, append([]string{name}, args...))
	if s.err != nil {
		return nil, []byte("Syntax Error: Couldn't find trailer dictionary"), s.err
	}
	return []byte(s.out), nil, nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	_, err := e.Extract(context.Background(), "datasheet.docx")
	assert.Error(t, err)
}

func TestExtract_MissingFile(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	_, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestExtract_GarbageWithoutFallback(t *testing.T) {
	path := writeFile(t, "broken.pdf", "this is not a pdf")
	runner := &stubRunner{out: "unused"}
	e := NewExtractor(Config{}, nil)
	e.runner = runner

	_, err := e.Extract(context.Background(), path)
	assert.Error(t, err)
	assert.Empty(t, runner.calls)
}

func TestExtract_FallsBackToPdftotext(t *testing.T) {
	path := writeFile(t, "thinkpad.pdf", "%PDF-1.7 truncated")
	runner := &stubRunner{out: "ThinkPad E14 Gen 5\r\n16GB DDR5\fPage two\f"}
	e := NewExtractor(Config{Fallback: true, Pdftotext: "/usr/bin/pdftotext"}, nil)
	e.runner = runner

	res, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, MethodPdftotext, res.Method)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "ThinkPad E14 Gen 5\n16GB DDR5\nPage two", res.Text)
	assert.NotEmpty(t, res.Warnings)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "/usr/bin/pdftotext", runner.calls[0][0])
	assert.Equal(t, "-", runner.calls[0][len(runner.calls[0])-1])
	assert.NotContains(t, runner.calls[0], "-l")
}

func TestExtract_MaxPagesLimitsPdftotext(t *testing.T) {
	path := writeFile(t, "probook.pdf", "%PDF-1.7 truncated")
	runner := &stubRunner{out: "HP ProBook 450 G10\fSecond page\f"}
	e := NewExtractor(Config{Fallback: true, MaxPages: 2}, nil)
	e.runner = runner

	_, err := e.Extract(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"pdftotext", "-layout", "-enc", "UTF-8", "-eol", "unix", "-l", "2", path, "-"}, runner.calls[0])
}

func TestExtract_FallbackFailureKeepsBothCauses(t *testing.T) {
	path := writeFile(t, "probook.pdf", "garbage")
	e := NewExtractor(Config{Fallback: true}, nil)
	e.runner = &stubRunner{err: errors.New("exit status 1")}

	_, err := e.Extract(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftotext")
	assert.Contains(t, err.Error(), "exit status 1")
}

func TestExtract_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := NewExtractor(Config{}, nil)
	_, err := e.Extract(ctx, writeFile(t, "a.pdf", "x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "a\nb\nc", Normalize("a\r\nb\rc"))
	assert.Equal(t, "Memory: 16GB\nnext page", Normalize("Memory:\x00 16GB\fnext page\n\n"))
	assert.Equal(t, "keep  spacing", Normalize("  keep  spacing  "))
}

func TestExtract_BreakerStopsSpawningFailingBinary(t *testing.T) {
	path := writeFile(t, "broken.pdf", "garbage")
	runner := &stubRunner{err: errors.New("exec: \"pdftotext\": executable file not found in $PATH")}
	e := NewExtractor(Config{Fallback: true, BreakerFailures: 2, BreakerCooldown: time.Hour}, nil)
	e.runner = runner

	for i := 0; i < 4; i++ {
		_, err := e.Extract(context.Background(), path)
		require.Error(t, err)
	}
	assert.Len(t, runner.calls, 2)

	_, err := e.Extract(context.Background(), path)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}
