package content

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher mirrors a local directory into the custom content store. Every
// write or create under the root triggers a re-upload of the touched file.
type Watcher struct {
	watcher  *fsnotify.Watcher
	uploader *Uploader
	root     string
	logger   *slog.Logger
	done     chan struct{}

	// Debounce settings; lastUpload is touched only from the watch loop.
	debounce   time.Duration
	lastUpload map[string]time.Time
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long repeated events for one file are collapsed
// into a single upload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// NewWatcher builds a Watcher over root. fsnotify watches are not
// recursive, so every existing subdirectory is registered up front; new
// subdirectories are picked up from create events.
func NewWatcher(uploader *Uploader, root string, logger *slog.Logger, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:    fsw,
		uploader:   uploader,
		root:       root,
		logger:     logger,
		done:       make(chan struct{}),
		debounce:   500 * time.Millisecond,
		lastUpload: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(w)
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return fs.SkipDir
		}
		return fsw.Add(path)
	})
	if err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Start blocks, uploading changed files until Stop is called or the
// context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Info("watching for content changes", "dir", w.root)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.handle(ctx, event)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("content watcher error", "error", err)
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		}
	}
}

// StartAsync runs Start on its own goroutine and reports errors through
// the returned channel.
func (w *Watcher) StartAsync(ctx context.Context) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Start(ctx)
	}()
	return errCh
}

// Stop ends the watch loop and releases the underlying watches.
func (w *Watcher) Stop() {
	close(w.done)
	w.watcher.Close()
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		// Removed or renamed away before we got here.
		return
	}

	if info.IsDir() {
		if event.Has(fsnotify.Create) {
			if err := w.watcher.Add(event.Name); err != nil {
				w.logger.Warn("cannot watch new directory", "dir", event.Name, "error", err)
			}
		}
		return
	}

	// Editors fire several events per save; collapse them into one upload.
	if last, ok := w.lastUpload[event.Name]; ok && time.Since(last) < w.debounce {
		return
	}
	w.lastUpload[event.Name] = time.Now()

	// Small delay so the write is complete before we read the file.
	time.Sleep(100 * time.Millisecond)

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		w.logger.Warn("cannot resolve changed path", "path", event.Name, "error", err)
		return
	}
	if err := w.uploader.UploadFile(ctx, event.Name, filepath.ToSlash(rel)); err != nil {
		w.logger.Warn("upload failed", "file", rel, "error", err)
	}
}
