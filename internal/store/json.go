package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joseph-ayodele/laptop-specs/internal/common"
)

// WriteJSON writes v as indented JSON (no HTML escaping) through a temp file and a
// rename, so readers never see a partial file. Errors are *common.SerializationError.
func WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return common.NewSerializationError(path, "encode", err)
	}
	return WriteFile(path, buf.Bytes())
}

// WriteFile atomically replaces path with data.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return common.NewSerializationError(path, "mkdir", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return common.NewSerializationError(path, "create", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return common.NewSerializationError(path, "write", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return common.NewSerializationError(path, "sync", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return common.NewSerializationError(path, "close", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return common.NewSerializationError(path, "chmod", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return common.NewSerializationError(path, "rename", err)
	}
	return nil
}

// ReadJSON decodes the file at path into v.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return common.NewSerializationError(path, "read", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return common.NewSerializationError(path, "decode", fmt.Errorf("invalid json: %w", err))
	}
	return nil
}
