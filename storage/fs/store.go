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

package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/poiesic/vidrecall/core"
	"github.com/poiesic/vidrecall/storage"
)

const (
	transcriptsDirName = "transcripts"
	embeddingsFileName = "embeddings.bin"
	slotFileExt        = ".txt"
)

// defaultChunkDirs is the ordered search list for an existing chunk
// directory. Writes always target the first entry.
var defaultChunkDirs = []string{"chunks", "text_chunks", "text chunks"}

// Store is a filesystem-backed storage.ContentStore. Slots are plain text
// files under a transcripts directory; chunks are individual chunk_{N}.txt
// files; the embedding collection is a single MUS-encoded binary file next
// to the chunks.
//
// Writes go through a temp-file rename so concurrent readers never observe
// a partially written slot.
type Store struct {
	root      string
	chunkDirs []string
	logger    *slog.Logger

	mu sync.RWMutex
}

// StoreOption configures a Store during construction.
type StoreOption func(*Store) error

// WithChunkDirs overrides the chunk directory search list. The first entry
// is the write target; the rest are read fallbacks.
func WithChunkDirs(dirs ...string) StoreOption {
	return func(s *Store) error {
		if len(dirs) == 0 {
			return fmt.Errorf("chunk directory list cannot be empty")
		}
		s.chunkDirs = dirs
		return nil
	}
}

// WithLogger sets the logger for store operations.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		s.logger = logger
		return nil
	}
}

// NewStore opens (creating if needed) a content store rooted at dir.
func NewStore(dir string, opts ...StoreOption) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("store directory cannot be empty")
	}

	s := &Store{
		root:      dir,
		chunkDirs: defaultChunkDirs,
		logger:    slog.Default().With("component", "fsstore"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("invalid store option: %w", err)
		}
	}

	if err := os.MkdirAll(s.transcriptsDir(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create transcripts directory: %w", err)
	}
	if err := os.MkdirAll(s.primaryChunksDir(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chunks directory: %w", err)
	}

	s.logger.Debug("content store opened", "root", dir)
	return s, nil
}

var _ storage.ContentStore = (*Store)(nil)

func (s *Store) transcriptsDir() string {
	return filepath.Join(s.root, transcriptsDirName)
}

func (s *Store) primaryChunksDir() string {
	return filepath.Join(s.root, s.chunkDirs[0])
}

// resolveChunksDir returns the first directory from the search list that
// exists on disk, falling back to the primary when none does.
func (s *Store) resolveChunksDir() string {
	for _, name := range s.chunkDirs {
		dir := filepath.Join(s.root, name)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return s.primaryChunksDir()
}

func (s *Store) slotPath(slot storage.Slot) string {
	return filepath.Join(s.transcriptsDir(), string(slot)+slotFileExt)
}

// ReadSlot returns the slot's text, or storage.ErrNotFound if absent.
func (s *Store) ReadSlot(ctx context.Context, slot storage.Slot) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.slotPath(slot))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: slot %q", storage.ErrNotFound, slot)
		}
		return "", fmt.Errorf("failed to read slot %q: %w", slot, err)
	}
	return string(data), nil
}

// WriteSlot stores text under the slot, replacing any previous value.
func (s *Store) WriteSlot(ctx context.Context, slot storage.Slot, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.atomicWrite(s.slotPath(slot), []byte(text)); err != nil {
		return fmt.Errorf("failed to write slot %q: %w", slot, err)
	}
	s.logger.Debug("slot written", "slot", slot, "bytes", len(text))
	return nil
}

// DeleteSlot removes the slot. Absence is not an error.
func (s *Store) DeleteSlot(ctx context.Context, slot storage.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.slotPath(slot)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete slot %q: %w", slot, err)
	}
	return nil
}

// HasSlot reports whether the slot currently holds data.
func (s *Store) HasSlot(ctx context.Context, slot storage.Slot) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, err := os.Stat(s.slotPath(slot))
	return err == nil && !info.IsDir()
}

// WriteChunks replaces the stored chunk sequence in the primary chunk
// directory. Old chunk files are removed first so a shorter sequence does
// not leave stale tail chunks behind.
func (s *Store) WriteChunks(ctx context.Context, chunks []core.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.primaryChunksDir()
	if err := s.removeChunkFiles(dir); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create chunks directory: %w", err)
	}

	for _, chunk := range chunks {
		if err := core.ValidateChunk(&chunk); err != nil {
			return fmt.Errorf("chunk %d: %w", chunk.Index, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("chunk_%d%s", chunk.Index, slotFileExt))
		if err := s.atomicWrite(path, []byte(chunk.Text)); err != nil {
			return fmt.Errorf("failed to write chunk %d: %w", chunk.Index, err)
		}
	}

	s.logger.Debug("chunks written", "count", len(chunks), "dir", dir)
	return nil
}

// ReadChunks returns the stored chunks ordered by the first integer in each
// filename. Files without a digit sequence in their name are skipped.
func (s *Store) ReadChunks(ctx context.Context) ([]core.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := s.resolveChunksDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []core.Chunk{}, nil
		}
		return nil, fmt.Errorf("failed to list chunks directory: %w", err)
	}

	type chunkFile struct {
		order int
		name  string
	}
	var files []chunkFile
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == embeddingsFileName {
			continue
		}
		order, ok := firstInteger(entry.Name())
		if !ok {
			continue
		}
		files = append(files, chunkFile{order: order, name: entry.Name()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].order < files[j].order })

	chunks := make([]core.Chunk, 0, len(files))
	for i, f := range files {
		data, err := os.ReadFile(filepath.Join(dir, f.name))
		if err != nil {
			return nil, fmt.Errorf("failed to read chunk %q: %w", f.name, err)
		}
		chunks = append(chunks, core.Chunk{Index: i, Text: string(data)})
	}
	return chunks, nil
}

// HasChunk reports whether the chunk with the given index exists.
func (s *Store) HasChunk(ctx context.Context, index int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := filepath.Join(s.resolveChunksDir(), fmt.Sprintf("chunk_%d%s", index, slotFileExt))
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// WriteEmbeddings replaces the stored embedding collection.
func (s *Store) WriteEmbeddings(ctx context.Context, embeddings [][]float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bs, err := storage.MarshalEmbeddings(embeddings)
	if err != nil {
		return fmt.Errorf("failed to serialize embeddings: %w", err)
	}

	dir := s.primaryChunksDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create chunks directory: %w", err)
	}
	if err := s.atomicWrite(filepath.Join(dir, embeddingsFileName), bs); err != nil {
		return fmt.Errorf("failed to write embeddings: %w", err)
	}

	s.logger.Debug("embeddings written", "rows", len(embeddings))
	return nil
}

// ReadEmbeddings returns the stored embedding collection, or
// storage.ErrNotFound if none has been written.
func (s *Store) ReadEmbeddings(ctx context.Context) ([][]float32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := filepath.Join(s.resolveChunksDir(), embeddingsFileName)
	bs, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: embeddings", storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read embeddings: %w", err)
	}

	embeddings, err := storage.UnmarshalEmbeddings(bs)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize embeddings: %w", err)
	}
	return embeddings, nil
}

// Purge deletes every derived slot, all chunk files, and the embedding
// collection. The source transcript survives. Purge is idempotent.
func (s *Store) Purge(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	derived := []storage.Slot{
		storage.SlotEnglishTranscript,
		storage.SlotCleanedTranscript,
		storage.SlotSummary,
		storage.SlotNotes,
	}
	for _, slot := range derived {
		if err := os.Remove(s.slotPath(slot)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to purge slot %q: %w", slot, err)
		}
	}

	// Sweep every candidate chunk directory, not just the primary, so a
	// store inherited from an older layout comes out clean too.
	for _, name := range s.chunkDirs {
		dir := filepath.Join(s.root, name)
		if err := s.removeChunkFiles(dir); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(s.primaryChunksDir(), 0o755); err != nil {
		return fmt.Errorf("failed to recreate chunks directory: %w", err)
	}

	s.logger.Info("content store purged", "root", s.root)
	return nil
}

// ChunksDirectory returns the resolved chunk directory path.
func (s *Store) ChunksDirectory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolveChunksDir()
}

// removeChunkFiles deletes chunk files and the embeddings file from dir.
// A missing directory is fine.
func (s *Store) removeChunkFiles(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to list chunks directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, isChunk := firstInteger(name); !isChunk && name != embeddingsFileName {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %q: %w", name, err)
		}
	}
	return nil
}

// atomicWrite writes data to path via a temp file and rename.
func (s *Store) atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
