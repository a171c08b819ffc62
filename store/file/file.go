package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid/v5"

	"github.com/Rebyuu/draw4friends/store"
)

// FileCanvasStore persists the stroke log as a single JSON array on disk.
// Append is a full read-modify-write of the file; logs are small (one
// shared canvas, bounded by session length) so the O(n) rewrite is the
// accepted cost. This is the first thing to revisit if the canvas ever
// outgrows a single deployment.
type FileCanvasStore struct {
	path string
}

func NewFileCanvasStore(path string) (*FileCanvasStore, error) {
	if path == "" {
		return nil, errors.New("drawing file path is empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure drawing directory: %w", err)
		}
	}

	return &FileCanvasStore{path: path}, nil
}

func (fileStore *FileCanvasStore) Load(ctx context.Context) ([]json.RawMessage, error) {
	data, err := os.ReadFile(fileStore.path)
	if err != nil {
		if os.IsNotExist(err) {
			// First run: no file means a blank canvas.
			return []json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read drawing file: %w", err)
	}

	entries := []json.RawMessage{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrCorruptLog, err)
	}

	return entries, nil
}

func (fileStore *FileCanvasStore) Append(ctx context.Context, entry json.RawMessage) error {
	entries, err := fileStore.Load(ctx)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	return fileStore.write(entries)
}

func (fileStore *FileCanvasStore) Reset(ctx context.Context) error {
	return fileStore.write([]json.RawMessage{})
}

// write replaces the file via a uniquely named temp file and a rename,
// so a crash mid-write never leaves a half-written log behind.
func (fileStore *FileCanvasStore) write(entries []json.RawMessage) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal drawing log: %w", err)
	}

	suffix, err := uuid.NewV4()
	if err != nil {
		return err
	}

	tmpPath := fileStore.path + "." + suffix.String() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write drawing file: %w", err)
	}

	if err := os.Rename(tmpPath, fileStore.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace drawing file: %w", err)
	}

	return nil
}
