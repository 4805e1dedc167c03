// Package transcripts loads talk transcript files from disk as documents.
package transcripts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
	"github.com/veritas-labs/paperchat-cli/internal/core/ports/driven"
	"github.com/veritas-labs/paperchat-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// transcriptExt is the only file extension treated as a transcript.
const transcriptExt = ".txt"

// debounceWindow batches rapid-fire filesystem events, such as an editor
// writing a file in several syscalls, into one change notification.
const debounceWindow = 500 * time.Millisecond

// Normaliser converts transcript files into documents. It is satisfied by
// the transcript normaliser package.
type Normaliser interface {
	Normalise(file domain.TranscriptFile) (domain.Document, error)
}

// Source loads transcript documents from a set of files and directories.
// Directories are walked recursively for .txt files.
type Source struct {
	paths      []string
	normaliser Normaliser
}

// New creates a transcript source over the given paths.
func New(paths []string, n Normaliser) *Source {
	return &Source{paths: paths, normaliser: n}
}

// Name identifies the source in logs and error messages.
func (s *Source) Name() string {
	return fmt.Sprintf("transcripts (%s)", strings.Join(s.paths, ", "))
}

// Load reads and normalises every transcript under the configured paths.
// Missing paths are logged and skipped. Files are loaded in sorted path
// order so repeated runs see documents in the same order.
func (s *Source) Load(ctx context.Context) ([]domain.Document, error) {
	files, err := s.collect()
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var docs []domain.Document
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Skipping unreadable transcript %s: %v", path, err)
			continue
		}

		doc, err := s.normaliser.Normalise(domain.TranscriptFile{
			Path:    path,
			Content: string(content),
		})
		if err != nil {
			logger.Warn("Skipping transcript: %v", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// collect expands the configured paths into a flat list of transcript files.
func (s *Source) collect() ([]string, error) {
	var files []string
	for _, path := range s.paths {
		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Transcript path %s not found, skipping", path)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: stat %s: %v", domain.ErrDataSource, path, err)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(p), transcriptExt) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: walk %s: %v", domain.ErrDataSource, path, err)
		}
	}
	return files, nil
}

// Watch blocks, invoking onChange whenever a transcript under the
// configured paths is created, modified, renamed or removed. Events are
// debounced so a burst of writes triggers one call. Watch returns when
// the context is cancelled.
func (s *Source) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	watching := 0
	for _, path := range s.paths {
		info, err := os.Stat(path)
		if err != nil {
			logger.Warn("Not watching %s: %v", path, err)
			continue
		}
		target := path
		if !info.IsDir() {
			target = filepath.Dir(path)
		}
		if err := watcher.Add(target); err != nil {
			return fmt.Errorf("watch %s: %w", target, err)
		}
		watching++
	}
	if watching == 0 {
		return fmt.Errorf("%w: no watchable transcript paths", domain.ErrDataSource)
	}

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			logger.Debug("Transcript change: %s", event)
			if timer == nil {
				timer = time.AfterFunc(debounceWindow, func() {
					select {
					case pending <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(debounceWindow)
			}

		case <-pending:
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// relevant reports whether the event concerns a transcript file.
func relevant(event fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(event.Name), transcriptExt) {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
