package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/laptop-specs/constants"
	"github.com/joseph-ayodele/laptop-specs/internal/common"
	"github.com/joseph-ayodele/laptop-specs/internal/entity"
)

type stubText struct {
	texts map[string]string
	err   error
}

func (s stubText) Extract(_ context.Context, path string) (TextExtractionResult, error) {
	if s.err != nil {
		return TextExtractionResult{}, s.err
	}
	return TextExtractionResult{Text: s.texts[path], Pages: 1, Method: "stub"}, nil
}

func TestExtract_ThinkPadWithoutProcessor(t *testing.T) {
	path := "/data/pdfs/ThinkPad_E14_Gen5_Intel_Spec.pdf"
	e := NewExtractor(stubText{texts: map[string]string{
		path: "ThinkPad E14 Gen 5 (Intel)\nMemory: 16GB DDR4-3200\n1.41 kg",
	}}, nil)

	spec, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, constants.Lenovo, spec.Brand)
	assert.Equal(t, []string{constants.NotSpecified}, spec.Processor)
	assert.Equal(t, "ThinkPad_E14_Gen5_Intel_Spec.pdf", spec.SourceDocument)
	assert.Equal(t, "ThinkPad E14 Gen 5 (Intel)", spec.Model)
	assert.Equal(t, "1.41 kg", spec.Weight)
	assert.Empty(t, spec.RawText)
}

func TestExtract_BrandIgnoresContent(t *testing.T) {
	e := NewExtractor(stubText{texts: map[string]string{
		"datasheet.pdf": "HP ProBook 450 G10 by Lenovo ThinkPad team",
	}}, nil)

	spec, err := e.Extract(context.Background(), "datasheet.pdf")
	require.NoError(t, err)
	assert.Equal(t, constants.Unknown, spec.Brand)
	assert.Equal(t, "ProBook 450 G10", spec.Model)
}

func TestExtract_ReadFailureIsDocumentReadError(t *testing.T) {
	cause := errors.New("malformed xref table")
	e := NewExtractor(stubText{err: cause}, nil)

	_, err := e.Extract(context.Background(), "/data/pdfs/hp_probook.pdf")
	require.Error(t, err)

	var readErr *common.DocumentReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "hp_probook.pdf", readErr.Source)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, common.ErrDocumentRead)
}

func TestFromText_EmptyTextIsAllSentinels(t *testing.T) {
	spec := NewExtractor(nil, nil).FromText("notes.pdf", "")

	assert.Equal(t, constants.UnknownModel, spec.Model)
	assert.Equal(t, constants.NotSpecified, spec.Battery)
	assert.Equal(t, constants.NotSpecified, spec.Warranty)
	assert.Equal(t, []string{constants.NotSpecified}, spec.Memory)
	assert.Equal(t, []string{constants.NotSpecified}, spec.Graphics)
	assert.Equal(t, entity.Attributes{"size": "Not specified", "resolution": "Not specified"}, spec.Display)
	assert.Equal(t, entity.Attributes{"adapter_wattage": "Not specified"}, spec.Power)
	assert.Len(t, spec.Wireless, 4)
}

func TestFromText_RawTextPreview(t *testing.T) {
	text := strings.Repeat("ü", 600)
	spec := NewExtractor(nil, nil, WithRawText(true)).FromText("x.pdf", text)
	assert.Equal(t, 500, len([]rune(spec.RawText)))

	spec = NewExtractor(nil, nil, WithRawText(true)).FromText("x.pdf", "short")
	assert.Equal(t, "short", spec.RawText)
}

type slowText struct{}

func (slowText) Extract(ctx context.Context, _ string) (TextExtractionResult, error) {
	<-ctx.Done()
	return TextExtractionResult{}, ctx.Err()
}

func TestExtract_TimeoutIsDocumentReadError(t *testing.T) {
	e := NewExtractor(slowText{}, nil, WithTimeout(10*time.Millisecond))

	_, err := e.Extract(context.Background(), "slow.pdf")

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDocumentRead)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
