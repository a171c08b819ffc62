package file_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rebyuu/draw4friends/store"
	"github.com/Rebyuu/draw4friends/store/file"
)

func newTestStore(t *testing.T) *file.FileCanvasStore {
	t.Helper()
	fileStore, err := file.NewFileCanvasStore(filepath.Join(t.TempDir(), "drawing.json"))
	assert.NoError(t, err)
	return fileStore
}

func TestLoad_MissingFileIsEmptyLog(t *testing.T) {
	fileStore := newTestStore(t)

	entries, err := fileStore.Load(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAppend_PreservesOrderAndBytes(t *testing.T) {
	fileStore := newTestStore(t)
	ctx := context.Background()

	first := json.RawMessage(`{"fromX":0,"fromY":0,"toX":10,"toY":10,"color":"#000000","width":5,"save":true}`)
	second := json.RawMessage(`{"type":"clear"}`)

	assert.NoError(t, fileStore.Append(ctx, first))
	assert.NoError(t, fileStore.Append(ctx, second))

	entries, err := fileStore.Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []json.RawMessage{first, second}, entries)
}

func TestReset_TruncatesLog(t *testing.T) {
	fileStore := newTestStore(t)
	ctx := context.Background()

	assert.NoError(t, fileStore.Append(ctx, json.RawMessage(`{"fromX":1}`)))
	assert.NoError(t, fileStore.Reset(ctx))

	entries, err := fileStore.Load(ctx)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAppend_AfterReset(t *testing.T) {
	fileStore := newTestStore(t)
	ctx := context.Background()

	assert.NoError(t, fileStore.Append(ctx, json.RawMessage(`{"fromX":1}`)))
	assert.NoError(t, fileStore.Reset(ctx))
	assert.NoError(t, fileStore.Append(ctx, json.RawMessage(`{"fromX":2}`)))

	entries, err := fileStore.Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []json.RawMessage{json.RawMessage(`{"fromX":2}`)}, entries)
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawing.json")
	assert.NoError(t, os.WriteFile(path, []byte("not an array"), 0o644))

	fileStore, err := file.NewFileCanvasStore(path)
	assert.NoError(t, err)

	_, err = fileStore.Load(context.Background())
	assert.ErrorIs(t, err, store.ErrCorruptLog)
}

func TestLoad_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawing.json")
	ctx := context.Background()

	fileStore, err := file.NewFileCanvasStore(path)
	assert.NoError(t, err)
	entry := json.RawMessage(`{"fromX":0,"fromY":0,"toX":3,"toY":4,"color":"#ff0000","width":2,"save":true}`)
	assert.NoError(t, fileStore.Append(ctx, entry))

	// A fresh store over the same file sees the same log.
	reopened, err := file.NewFileCanvasStore(path)
	assert.NoError(t, err)
	entries, err := reopened.Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []json.RawMessage{entry}, entries)
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	fileStore, err := file.NewFileCanvasStore(filepath.Join(dir, "drawing.json"))
	assert.NoError(t, err)

	ctx := context.Background()
	assert.NoError(t, fileStore.Append(ctx, json.RawMessage(`{"fromX":1}`)))
	assert.NoError(t, fileStore.Reset(ctx))

	files, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "drawing.json", files[0].Name())
}
