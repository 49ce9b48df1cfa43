package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docubot-labs/docubot/internal/core/domain"
)

// recordingIngest captures ingested filenames.
type recordingIngest struct {
	mu    sync.Mutex
	names []string
	err   error
}

func (r *recordingIngest) Ingest(_ context.Context, _ []byte, filename string) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.names = append(r.names, filename)
	return &domain.Document{ID: "doc-" + filename, ChunkCount: 1}, nil
}

func (r *recordingIngest) Remove(context.Context, string) error { return nil }

func (r *recordingIngest) ingested() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("report.pdf"))
	assert.True(t, Supported("NOTES.TXT"))
	assert.True(t, Supported("readme.md"))
	assert.False(t, Supported("data.csv"))
	assert.False(t, Supported("archive.zip"))
	assert.False(t, Supported("noext"))
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, t.TempDir())
	assert.Error(t, err)

	_, err = New(&recordingIngest{}, filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestWatcher_IngestExisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.zip"), []byte("zip"), 0o600))

	ingest := &recordingIngest{}
	w, err := New(ingest, dir)
	require.NoError(t, err)

	require.NoError(t, w.ingestExisting(context.Background()))
	assert.Equal(t, []string{"notes.txt"}, ingest.ingested())
}

func TestWatcher_HandleEventDebounces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))

	ingest := &recordingIngest{}
	w, err := New(ingest, dir)
	require.NoError(t, err)

	ctx := context.Background()
	// Repeated writes to the same file must result in one ingestion
	w.handleEvent(ctx, fsnotify.Event{Name: path, Op: fsnotify.Create})
	w.handleEvent(ctx, fsnotify.Event{Name: path, Op: fsnotify.Write})
	w.handleEvent(ctx, fsnotify.Event{Name: path, Op: fsnotify.Write})

	require.Eventually(t, func() bool {
		return len(ingest.ingested()) == 1
	}, 3*time.Second, 50*time.Millisecond)

	// Hold steady, no further ingestions
	time.Sleep(settleDelay + 100*time.Millisecond)
	assert.Len(t, ingest.ingested(), 1)
}

func TestWatcher_HandleEventIgnoresUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o600))

	ingest := &recordingIngest{}
	w, err := New(ingest, dir)
	require.NoError(t, err)

	w.handleEvent(context.Background(), fsnotify.Event{Name: path, Op: fsnotify.Create})

	time.Sleep(settleDelay + 100*time.Millisecond)
	assert.Empty(t, ingest.ingested())
}

func TestWatcher_DuplicateIsSilentlySkipped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dup.txt")
	require.NoError(t, os.WriteFile(path, []byte("same"), 0o600))

	ingest := &recordingIngest{err: domain.ErrAlreadyExists}
	w, err := New(ingest, dir)
	require.NoError(t, err)

	// Must not panic or record anything
	w.ingestFile(context.Background(), path)
	assert.Empty(t, ingest.ingested())
}
