package reembed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/vidrecall/ai/mock"
	"github.com/poiesic/vidrecall/core"
	"github.com/poiesic/vidrecall/storage"
	"github.com/poiesic/vidrecall/storage/fs"
)

func seedChunks(t *testing.T, n int) storage.ContentStore {
	t.Helper()

	store, err := fs.NewStore(t.TempDir())
	require.NoError(t, err)

	chunks := make([]core.Chunk, 0, n)
	for i := 0; i < n; i++ {
		chunks = append(chunks, core.Chunk{
			Index: i,
			Text:  fmt.Sprintf("Chunk number %d explains one part of the installation procedure.", i),
		})
	}
	require.NoError(t, store.WriteChunks(context.Background(), chunks))
	return store
}

func fastConfig() *Config {
	return &Config{
		BatchSize:      3,
		ReportInterval: 3,
		MaxRetries:     3,
		RetryDelay:     time.Millisecond,
	}
}

func TestNewReembedder(t *testing.T) {
	t.Run("requires content store", func(t *testing.T) {
		_, err := NewReembedder(nil, mock.NewMockEmbedder(), nil, &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrContentStoreRequired)
	})

	t.Run("requires embedder", func(t *testing.T) {
		store := seedChunks(t, 1)
		_, err := NewReembedder(store, nil, nil, &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("nil config gets defaults", func(t *testing.T) {
		store := seedChunks(t, 1)
		r, err := NewReembedder(store, mock.NewMockEmbedder(), nil, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig().BatchSize, r.config.BatchSize)
	})

	t.Run("nil progress writer is discarded", func(t *testing.T) {
		store := seedChunks(t, 2)
		r, err := NewReembedder(store, mock.NewMockEmbedder(), fastConfig(), nil)
		require.NoError(t, err)
		require.NoError(t, r.Run(context.Background()))
	})
}

func TestReembedderRun(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the embedding matrix", func(t *testing.T) {
		store := seedChunks(t, 7)
		require.NoError(t, store.WriteEmbeddings(ctx, [][]float32{{1, 2}, {3, 4}}))

		var out bytes.Buffer
		r, err := NewReembedder(store, mock.NewMockEmbedder(), fastConfig(), &out)
		require.NoError(t, err)

		require.NoError(t, r.Run(ctx))

		embeddings, err := store.ReadEmbeddings(ctx)
		require.NoError(t, err)
		assert.Len(t, embeddings, 7)
		assert.Len(t, embeddings[0], 384)
		assert.Contains(t, out.String(), "Reembedding complete")
	})

	t.Run("batches by configured size", func(t *testing.T) {
		store := seedChunks(t, 7)

		embedder := mock.NewMockEmbedder()
		var batchSizes []int
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			batchSizes = append(batchSizes, len(texts))
			vectors := make([][]float32, len(texts))
			for i := range texts {
				vectors[i] = []float32{1, 0}
			}
			return vectors, nil
		}

		r, err := NewReembedder(store, embedder, fastConfig(), &bytes.Buffer{})
		require.NoError(t, err)
		require.NoError(t, r.Run(ctx))

		assert.Equal(t, []int{3, 3, 1}, batchSizes)
	})

	t.Run("errors when no chunks exist", func(t *testing.T) {
		store, err := fs.NewStore(t.TempDir())
		require.NoError(t, err)

		r, err := NewReembedder(store, mock.NewMockEmbedder(), fastConfig(), &bytes.Buffer{})
		require.NoError(t, err)
		assert.ErrorIs(t, r.Run(ctx), ErrNoChunks)
	})

	t.Run("retries failed batches", func(t *testing.T) {
		store := seedChunks(t, 2)

		embedder := mock.NewMockEmbedder()
		attempts := 0
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			attempts++
			if attempts == 1 {
				return nil, errors.New("transient failure")
			}
			vectors := make([][]float32, len(texts))
			for i := range texts {
				vectors[i] = []float32{0, 1}
			}
			return vectors, nil
		}

		r, err := NewReembedder(store, embedder, fastConfig(), &bytes.Buffer{})
		require.NoError(t, err)
		require.NoError(t, r.Run(ctx))
		assert.Equal(t, 2, attempts)
	})

	t.Run("keeps old embeddings when every retry fails", func(t *testing.T) {
		store := seedChunks(t, 2)
		previous := [][]float32{{1, 2}, {3, 4}}
		require.NoError(t, store.WriteEmbeddings(ctx, previous))

		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, errors.New("service down")
		}

		r, err := NewReembedder(store, embedder, fastConfig(), &bytes.Buffer{})
		require.NoError(t, err)
		assert.Error(t, r.Run(ctx))

		embeddings, err := store.ReadEmbeddings(ctx)
		require.NoError(t, err)
		assert.Equal(t, previous, embeddings)
	})
}
