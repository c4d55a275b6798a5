package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when a slot has never been written.
var ErrNotFound = errors.New("record not found")

// Slot is a single named record stored as indented JSON. Every write replaces
// the whole file.
type Slot[T any] struct {
	path string
}

func NewSlot[T any](path string) *Slot[T] {
	return &Slot[T]{path: path}
}

func (s *Slot[T]) Path() string {
	return s.path
}

// Write encodes v and replaces the slot contents.
func (s *Slot[T]) Write(v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	return atomicWrite(s.path, data, 0o644)
}

// Read decodes the slot into into, which should be pre-populated with
// defaults; fields missing from the record keep them. On error into may be
// partially filled, so callers decode into a scratch value.
func (s *Slot[T]) Read(into T) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("reading file: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("unmarshalling record: expected a JSON object")
	}

	if err := json.Unmarshal(trimmed, into); err != nil {
		return fmt.Errorf("unmarshalling record: %w", err)
	}
	return nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
// This prevents partial or empty files if the process is interrupted.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
