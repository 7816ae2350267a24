// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultSettleDelay gives the external transcriber time to finish writing
// the transcript file before the pipeline reads it.
const defaultSettleDelay = 500 * time.Millisecond

// TriggerFunc is called when the watched transcript file appears or is
// rewritten. Errors are logged, never fatal to the watch loop.
type TriggerFunc func(ctx context.Context) error

// Watcher monitors the transcripts directory and triggers a pipeline run
// whenever the source transcript lands.
type Watcher struct {
	dir         string
	file        string
	trigger     TriggerFunc
	settleDelay time.Duration
	fsWatcher   *fsnotify.Watcher
	logger      *slog.Logger
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher) error

// WithSettleDelay overrides the write-settle delay.
func WithSettleDelay(d time.Duration) WatcherOption {
	return func(w *Watcher) error {
		if d < 0 {
			return fmt.Errorf("settle delay cannot be negative")
		}
		w.settleDelay = d
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger
		return nil
	}
}

// New creates a watcher on dir that fires trigger when file (a bare
// filename inside dir) is created or written.
func New(dir, file string, trigger TriggerFunc, opts ...WatcherOption) (*Watcher, error) {
	if trigger == nil {
		return nil, fmt.Errorf("trigger required")
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	w := &Watcher{
		dir:         dir,
		file:        file,
		trigger:     trigger,
		settleDelay: defaultSettleDelay,
		fsWatcher:   fsWatcher,
		logger:      slog.Default().With("component", "watcher"),
	}
	for _, opt := range opts {
		if optErr := opt(w); optErr != nil {
			fsWatcher.Close()
			return nil, optErr
		}
	}
	return w, nil
}

// Start runs the watch loop until the context is canceled or the watcher
// is stopped.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Info("watching for transcript", "dir", w.dir, "file", w.file)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.isTranscriptEvent(event) {
				continue
			}
			w.logger.Info("transcript detected", "path", event.Name)

			// Let the writer finish before the pipeline reads.
			select {
			case <-time.After(w.settleDelay):
			case <-ctx.Done():
				return ctx.Err()
			}

			if err := w.trigger(ctx); err != nil {
				w.logger.Error("failed to trigger processing", "err", err)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("watch error", "err", err)
		}
	}
}

// Stop closes the underlying filesystem watcher, ending Start.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// isTranscriptEvent reports whether the event is a create or write of the
// watched transcript file.
func (w *Watcher) isTranscriptEvent(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return false
	}
	return filepath.Base(event.Name) == w.file
}
