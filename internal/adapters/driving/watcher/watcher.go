// Package watcher auto-ingests documents dropped into a watched directory.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/docubot-labs/docubot/internal/core/domain"
	"github.com/docubot-labs/docubot/internal/core/ports/driving"
	"github.com/docubot-labs/docubot/internal/logger"
)

// settleDelay is how long to wait after the last write event before
// reading a file, so partially-copied files are not ingested.
const settleDelay = 500 * time.Millisecond

// supportedExtensions lists the file types picked up from the inbox.
var supportedExtensions = map[string]bool{
	".pdf": true,
	".txt": true,
	".md":  true,
}

// Watcher monitors a directory and ingests new documents as they appear.
type Watcher struct {
	ingest driving.IngestService
	dir    string

	// pending tracks files awaiting their settle delay.
	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a watcher for the given directory.
func New(ingest driving.IngestService, dir string) (*Watcher, error) {
	if ingest == nil {
		return nil, errors.New("watcher: ingest service is required")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watcher: %s is not a directory", dir)
	}

	return &Watcher{
		ingest:  ingest,
		dir:     dir,
		pending: make(map[string]*time.Timer),
	}, nil
}

// Run watches the directory until the context is cancelled. Files
// already present when Run starts are ingested first.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watcher: %w", err)
	}

	if err := w.ingestExisting(ctx); err != nil {
		return err
	}

	logger.Info("Watching %s for new documents", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// ingestExisting processes files already in the directory.
func (w *Watcher) ingestExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if Supported(path) {
			w.ingestFile(ctx, path)
		}
	}
	return nil
}

// handleEvent schedules ingestion for create and write events on
// supported files, debounced by the settle delay.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}
	if !Supported(event.Name) {
		return
	}

	path := event.Name

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Reset(settleDelay)
		return
	}

	w.pending[path] = time.AfterFunc(settleDelay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.ingestFile(ctx, path)
	})
}

// ingestFile reads and ingests a single file, logging the outcome.
func (w *Watcher) ingestFile(ctx context.Context, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("read %s: %v", path, err)
		return
	}

	doc, err := w.ingest.Ingest(ctx, content, filepath.Base(path))
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			logger.Debug("%s already ingested, skipping", path)
			return
		}
		logger.Warn("ingest %s: %v", path, err)
		return
	}

	logger.Info("Ingested %s as %s (%d chunks)", path, doc.ID, doc.ChunkCount)
}

// Supported reports whether the file type is picked up by the watcher.
func Supported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}
