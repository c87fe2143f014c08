package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentReadError(t *testing.T) {
	cause := errors.New("malformed xref")
	err := fmt.Errorf("batch: %w", NewDocumentReadError("probook.pdf", cause))

	var readErr *DocumentReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "probook.pdf", readErr.Source)
	assert.ErrorIs(t, err, ErrDocumentRead)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrSerialization)
	assert.Contains(t, err.Error(), "probook.pdf")
}

func TestSerializationError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewSerializationError("out.json", "write", cause)

	assert.ErrorIs(t, err, ErrSerialization)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "write out.json: disk full", err.Error())
}

func TestAppError(t *testing.T) {
	err := NewAppError("CONFIG_ERROR", "bad", ErrInvalidInput)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "CONFIG_ERROR: bad: invalid input", err.Error())
	assert.Equal(t, "X: y", NewAppError("X", "y", nil).Error())
	assert.Nil(t, WrapError(nil, "ctx"))
}
