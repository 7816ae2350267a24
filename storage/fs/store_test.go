package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/vidrecall/core"
	"github.com/poiesic/vidrecall/storage"
)

func newTestStore(t *testing.T, opts ...StoreOption) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), opts...)
	require.NoError(t, err)
	return store
}

func TestNewStore(t *testing.T) {
	t.Run("creates directories", func(t *testing.T) {
		dir := t.TempDir()
		_, err := NewStore(dir)
		require.NoError(t, err)

		assert.DirExists(t, filepath.Join(dir, "transcripts"))
		assert.DirExists(t, filepath.Join(dir, "chunks"))
	})

	t.Run("rejects empty directory", func(t *testing.T) {
		_, err := NewStore("")
		assert.Error(t, err)
	})

	t.Run("rejects empty chunk dir list", func(t *testing.T) {
		_, err := NewStore(t.TempDir(), WithChunkDirs())
		assert.Error(t, err)
	})
}

func TestStoreSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("write then read round trip", func(t *testing.T) {
		store := newTestStore(t)

		err := store.WriteSlot(ctx, storage.SlotCleanedTranscript, "cleaned text")
		require.NoError(t, err)

		text, err := store.ReadSlot(ctx, storage.SlotCleanedTranscript)
		require.NoError(t, err)
		assert.Equal(t, "cleaned text", text)
	})

	t.Run("missing slot returns ErrNotFound", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.ReadSlot(ctx, storage.SlotSummary)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("write replaces previous value", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.WriteSlot(ctx, storage.SlotNotes, "first"))
		require.NoError(t, store.WriteSlot(ctx, storage.SlotNotes, "second"))

		text, err := store.ReadSlot(ctx, storage.SlotNotes)
		require.NoError(t, err)
		assert.Equal(t, "second", text)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.WriteSlot(ctx, storage.SlotSummary, "summary"))
		require.NoError(t, store.DeleteSlot(ctx, storage.SlotSummary))
		require.NoError(t, store.DeleteSlot(ctx, storage.SlotSummary))

		assert.False(t, store.HasSlot(ctx, storage.SlotSummary))
	})

	t.Run("HasSlot reflects slot state", func(t *testing.T) {
		store := newTestStore(t)

		assert.False(t, store.HasSlot(ctx, storage.SlotSourceTranscript))
		require.NoError(t, store.WriteSlot(ctx, storage.SlotSourceTranscript, "raw"))
		assert.True(t, store.HasSlot(ctx, storage.SlotSourceTranscript))
	})
}

func TestStoreChunks(t *testing.T) {
	ctx := context.Background()

	t.Run("write then read preserves order and content", func(t *testing.T) {
		store := newTestStore(t)

		chunks := []core.Chunk{
			{Index: 0, Text: "first chunk with enough text"},
			{Index: 1, Text: "second chunk with enough text"},
			{Index: 2, Text: "third chunk with enough text"},
		}
		require.NoError(t, store.WriteChunks(ctx, chunks))

		got, err := store.ReadChunks(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		for i, chunk := range got {
			assert.Equal(t, i, chunk.Index)
			assert.Equal(t, chunks[i].Text, chunk.Text)
		}
	})

	t.Run("numeric order beats lexical order", func(t *testing.T) {
		store := newTestStore(t)

		var chunks []core.Chunk
		for i := 0; i < 12; i++ {
			chunks = append(chunks, core.Chunk{Index: i, Text: "chunk text long enough to validate"})
		}
		require.NoError(t, store.WriteChunks(ctx, chunks))

		// chunk_10.txt sorts before chunk_2.txt lexically; numeric
		// ordering must still return 12 chunks in index order.
		got, err := store.ReadChunks(ctx)
		require.NoError(t, err)
		require.Len(t, got, 12)
		for i, chunk := range got {
			assert.Equal(t, i, chunk.Index)
		}
	})

	t.Run("rewriting fewer chunks drops stale tails", func(t *testing.T) {
		store := newTestStore(t)

		long := []core.Chunk{
			{Index: 0, Text: "chunk text long enough to validate"},
			{Index: 1, Text: "chunk text long enough to validate"},
			{Index: 2, Text: "chunk text long enough to validate"},
		}
		require.NoError(t, store.WriteChunks(ctx, long))

		short := []core.Chunk{{Index: 0, Text: "the only remaining chunk text"}}
		require.NoError(t, store.WriteChunks(ctx, short))

		got, err := store.ReadChunks(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("empty store returns empty slice", func(t *testing.T) {
		store := newTestStore(t)

		got, err := store.ReadChunks(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("falls back to legacy chunk directory", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewStore(dir)
		require.NoError(t, err)

		// Remove the primary and plant chunks in a fallback directory.
		require.NoError(t, os.RemoveAll(filepath.Join(dir, "chunks")))
		legacy := filepath.Join(dir, "text_chunks")
		require.NoError(t, os.MkdirAll(legacy, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(legacy, "chunk_0.txt"), []byte("legacy chunk body text here"), 0o644))

		got, err := store.ReadChunks(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "legacy chunk body text here", got[0].Text)
		assert.Equal(t, legacy, store.ChunksDirectory())
	})

	t.Run("HasChunk reports existence", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.WriteChunks(ctx, []core.Chunk{{Index: 0, Text: "chunk text long enough to validate"}}))
		assert.True(t, store.HasChunk(ctx, 0))
		assert.False(t, store.HasChunk(ctx, 1))
	})
}

func TestStoreEmbeddings(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip preserves rows", func(t *testing.T) {
		store := newTestStore(t)

		embeddings := [][]float32{
			{0.1, 0.2, 0.3},
			{0.4, 0.5, 0.6},
		}
		require.NoError(t, store.WriteEmbeddings(ctx, embeddings))

		got, err := store.ReadEmbeddings(ctx)
		require.NoError(t, err)
		assert.Equal(t, embeddings, got)
	})

	t.Run("missing embeddings return ErrNotFound", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.ReadEmbeddings(ctx)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("embeddings file is not listed as a chunk", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.WriteChunks(ctx, []core.Chunk{{Index: 0, Text: "chunk text long enough to validate"}}))
		require.NoError(t, store.WriteEmbeddings(ctx, [][]float32{{0.1}}))

		got, err := store.ReadChunks(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestStorePurge(t *testing.T) {
	ctx := context.Background()

	t.Run("removes derived slots and keeps source", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.WriteSlot(ctx, storage.SlotSourceTranscript, "source"))
		require.NoError(t, store.WriteSlot(ctx, storage.SlotEnglishTranscript, "english"))
		require.NoError(t, store.WriteSlot(ctx, storage.SlotCleanedTranscript, "cleaned"))
		require.NoError(t, store.WriteSlot(ctx, storage.SlotSummary, "summary"))
		require.NoError(t, store.WriteSlot(ctx, storage.SlotNotes, "notes"))
		require.NoError(t, store.WriteChunks(ctx, []core.Chunk{{Index: 0, Text: "chunk text long enough to validate"}}))
		require.NoError(t, store.WriteEmbeddings(ctx, [][]float32{{0.1, 0.2}}))

		require.NoError(t, store.Purge(ctx))

		assert.True(t, store.HasSlot(ctx, storage.SlotSourceTranscript))
		assert.False(t, store.HasSlot(ctx, storage.SlotEnglishTranscript))
		assert.False(t, store.HasSlot(ctx, storage.SlotCleanedTranscript))
		assert.False(t, store.HasSlot(ctx, storage.SlotSummary))
		assert.False(t, store.HasSlot(ctx, storage.SlotNotes))

		chunks, err := store.ReadChunks(ctx)
		require.NoError(t, err)
		assert.Empty(t, chunks)

		_, err = store.ReadEmbeddings(ctx)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("purge on empty store succeeds", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.Purge(ctx))
		require.NoError(t, store.Purge(ctx))
	})
}

func TestFirstInteger(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
		ok    bool
	}{
		{"standard chunk name", "chunk_7.txt", 7, true},
		{"multi digit", "chunk_42.txt", 42, true},
		{"digits embedded elsewhere", "part03_chunk.txt", 3, true},
		{"no digits", "readme.txt", 0, false},
		{"digits only", "15", 15, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := firstInteger(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
