package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/vidrecall/ai/mock"
	"github.com/poiesic/vidrecall/core"
	"github.com/poiesic/vidrecall/storage"
	"github.com/poiesic/vidrecall/storage/badger"
	"github.com/poiesic/vidrecall/storage/fs"
)

const testTranscript = "Ollama makes it easy to run large language models locally. " +
	"You install the runtime, pull a model, and start asking questions. " +
	"The models run entirely on your own machine without sending data anywhere. " +
	"Smaller models work well on laptops while larger ones need a GPU."

type testEnv struct {
	store    storage.ContentStore
	ledger   storage.JobLedger
	provider *mock.MockProvider
	pipeline *Pipeline
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()

	store, err := fs.NewStore(t.TempDir())
	require.NoError(t, err)

	ledger, err := badger.NewMemoryLedger()
	require.NoError(t, err)
	t.Cleanup(func() { ledger.Close() })

	provider := mock.NewMockProvider()

	p, err := NewPipeline(store, ledger, provider, opts...)
	require.NoError(t, err)
	t.Cleanup(p.Release)

	return &testEnv{store: store, ledger: ledger, provider: provider, pipeline: p}
}

func TestNewPipeline(t *testing.T) {
	t.Run("requires content store", func(t *testing.T) {
		ledger, err := badger.NewMemoryLedger()
		require.NoError(t, err)
		defer ledger.Close()

		_, err = NewPipeline(nil, ledger, mock.NewMockProvider())
		assert.ErrorIs(t, err, ErrContentStoreRequired)
	})

	t.Run("requires job ledger", func(t *testing.T) {
		store, err := fs.NewStore(t.TempDir())
		require.NoError(t, err)

		_, err = NewPipeline(store, nil, mock.NewMockProvider())
		assert.ErrorIs(t, err, ErrJobLedgerRequired)
	})

	t.Run("requires AI provider", func(t *testing.T) {
		store, err := fs.NewStore(t.TempDir())
		require.NoError(t, err)
		ledger, err := badger.NewMemoryLedger()
		require.NoError(t, err)
		defer ledger.Close()

		_, err = NewPipeline(store, ledger, nil)
		assert.ErrorIs(t, err, ErrAIProviderRequired)
	})

	t.Run("rejects invalid chunking options", func(t *testing.T) {
		store, err := fs.NewStore(t.TempDir())
		require.NoError(t, err)
		ledger, err := badger.NewMemoryLedger()
		require.NoError(t, err)
		defer ledger.Close()

		_, err = NewPipeline(store, ledger, mock.NewMockProvider(), WithChunking(0, 0))
		assert.Error(t, err)

		_, err = NewPipeline(store, ledger, mock.NewMockProvider(), WithChunking(256, -1))
		assert.Error(t, err)
	})
}

func TestPipelineRunAndWait(t *testing.T) {
	ctx := context.Background()

	t.Run("populates every derived slot", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.store.WriteSlot(ctx, storage.SlotSourceTranscript, testTranscript))

		require.NoError(t, env.pipeline.RunAndWait(ctx))

		english, err := env.store.ReadSlot(ctx, storage.SlotEnglishTranscript)
		require.NoError(t, err)
		assert.True(t, core.MeaningfulText(english))

		cleaned, err := env.store.ReadSlot(ctx, storage.SlotCleanedTranscript)
		require.NoError(t, err)
		assert.True(t, core.MeaningfulText(cleaned))

		chunks, err := env.store.ReadChunks(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, chunks)
		for _, chunk := range chunks {
			assert.True(t, chunk.Meaningful())
		}

		embeddings, err := env.store.ReadEmbeddings(ctx)
		require.NoError(t, err)
		assert.Len(t, embeddings, len(chunks))
	})

	t.Run("records the job in the ledger", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.store.WriteSlot(ctx, storage.SlotSourceTranscript, testTranscript))

		require.NoError(t, env.pipeline.RunAndWait(ctx))

		job, err := env.ledger.LatestJob(ctx)
		require.NoError(t, err)
		require.NotNil(t, job)
		assert.Equal(t, core.StageDone, job.Stage)
		assert.True(t, job.Finished())
		assert.False(t, job.Failed())
	})

	t.Run("missing source transcript fails before any job starts", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.pipeline.RunAndWait(ctx)
		assert.ErrorIs(t, err, ErrSourceTranscriptMissing)

		job, err := env.ledger.LatestJob(ctx)
		require.NoError(t, err)
		assert.Nil(t, job)
	})

	t.Run("too-short source transcript is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.store.WriteSlot(ctx, storage.SlotSourceTranscript, "too short"))

		err := env.pipeline.RunAndWait(ctx)
		assert.ErrorIs(t, err, ErrSourceTranscriptMissing)
	})

	t.Run("embedder failure marks the job failed after earlier stages", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.store.WriteSlot(ctx, storage.SlotSourceTranscript, testTranscript))
		env.provider.MockEmbedderImpl().EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, errors.New("embedding service unavailable")
		}

		err := env.pipeline.RunAndWait(ctx)
		require.Error(t, err)

		job, lerr := env.ledger.LatestJob(ctx)
		require.NoError(t, lerr)
		require.NotNil(t, job)
		assert.True(t, job.Failed())
		assert.Equal(t, core.StageVectorize, job.Stage)
		assert.Contains(t, job.Error, "embedding service unavailable")

		// Earlier stage outputs survive, so status reads partial.
		assert.True(t, env.store.HasSlot(ctx, storage.SlotCleanedTranscript))
		_, eerr := env.store.ReadEmbeddings(ctx)
		assert.ErrorIs(t, eerr, storage.ErrNotFound)
	})

	t.Run("rerun purges previous derived slots first", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.store.WriteSlot(ctx, storage.SlotSourceTranscript, testTranscript))
		require.NoError(t, env.store.WriteSlot(ctx, storage.SlotNotes, "stale notes from the previous run"))

		require.NoError(t, env.pipeline.RunAndWait(ctx))

		assert.False(t, env.store.HasSlot(ctx, storage.SlotNotes))
	})

	t.Run("non-english transcript goes through the translator", func(t *testing.T) {
		env := newTestEnv(t)
		spanish := "Los modelos de lenguaje se ejecutan localmente en tu máquina. " +
			"Instalas el programa, descargas un modelo y empiezas a hacer preguntas sobre el contenido."
		require.NoError(t, env.store.WriteSlot(ctx, storage.SlotSourceTranscript, spanish))
		env.provider.MockTranslatorImpl().TranslateFunc = func(ctx context.Context, text string) (string, error) {
			return testTranscript, nil
		}

		require.NoError(t, env.pipeline.RunAndWait(ctx))

		assert.Equal(t, 1, env.provider.MockTranslatorImpl().CallCount())
		english, err := env.store.ReadSlot(ctx, storage.SlotEnglishTranscript)
		require.NoError(t, err)
		assert.Equal(t, testTranscript, english)
	})

	t.Run("english transcript skips the translator", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.store.WriteSlot(ctx, storage.SlotSourceTranscript, testTranscript))

		require.NoError(t, env.pipeline.RunAndWait(ctx))

		assert.Equal(t, 0, env.provider.MockTranslatorImpl().CallCount())
	})
}

func TestTracker(t *testing.T) {
	ctx := context.Background()

	t.Run("requires content store", func(t *testing.T) {
		_, err := NewTracker(nil)
		assert.ErrorIs(t, err, ErrContentStoreRequired)
	})

	t.Run("status progresses with slot presence", func(t *testing.T) {
		env := newTestEnv(t)
		tracker, err := NewTracker(env.store)
		require.NoError(t, err)

		assert.Equal(t, core.StatusProcessing, tracker.Status(ctx))

		require.NoError(t, env.store.WriteSlot(ctx, storage.SlotCleanedTranscript, testTranscript))
		assert.Equal(t, core.StatusPartial, tracker.Status(ctx))

		require.NoError(t, env.store.WriteSlot(ctx, storage.SlotEnglishTranscript, testTranscript))
		require.NoError(t, env.store.WriteChunks(ctx, []core.Chunk{{Index: 0, Text: "first chunk with enough text"}}))
		assert.Equal(t, core.StatusCompleted, tracker.Status(ctx))
	})

	t.Run("completed status is stable across re-reads", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.store.WriteSlot(ctx, storage.SlotSourceTranscript, testTranscript))
		require.NoError(t, env.pipeline.RunAndWait(ctx))

		tracker, err := NewTracker(env.store)
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			assert.Equal(t, core.StatusCompleted, tracker.Status(ctx))
		}
	})

	t.Run("IsReady needs one meaningful transcript slot", func(t *testing.T) {
		env := newTestEnv(t)
		tracker, err := NewTracker(env.store)
		require.NoError(t, err)

		assert.False(t, tracker.IsReady(ctx))

		require.NoError(t, env.store.WriteSlot(ctx, storage.SlotEnglishTranscript, "short"))
		assert.False(t, tracker.IsReady(ctx))

		require.NoError(t, env.store.WriteSlot(ctx, storage.SlotCleanedTranscript, testTranscript))
		assert.True(t, tracker.IsReady(ctx))
	})
}

func TestCleanTranscript(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "removes bracketed annotations",
			input: "Welcome back. [Music] Today we cover local models. [Applause]",
			want:  "Welcome back. Today we cover local models.",
		},
		{
			name:  "drops filler words",
			input: "So um this is, uh, the setup you need.",
			want:  "So this is, the setup you need.",
		},
		{
			name:  "collapses whitespace",
			input: "Models   run\n\nlocally  on your machine.",
			want:  "Models run locally on your machine.",
		},
		{
			name:  "keeps clean text unchanged",
			input: "Install the runtime and pull a model.",
			want:  "Install the runtime and pull a model.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanTranscript(tt.input))
		})
	}
}

func TestIsLikelyEnglish(t *testing.T) {
	t.Run("detects english", func(t *testing.T) {
		assert.True(t, isLikelyEnglish(testTranscript))
	})

	t.Run("detects non-latin script", func(t *testing.T) {
		assert.False(t, isLikelyEnglish("модели машинного обучения работают локально на вашем компьютере без отправки данных"))
	})

	t.Run("detects latin-script non-english", func(t *testing.T) {
		assert.False(t, isLikelyEnglish("instalas el programa, descargas un modelo y empiezas a hacer preguntas sobre el contenido del video"))
	})

	t.Run("empty text passes through", func(t *testing.T) {
		assert.True(t, isLikelyEnglish(""))
	})
}

func TestChunker(t *testing.T) {
	t.Run("splits long text into multiple chunks", func(t *testing.T) {
		c := newChunker(30, 1, nil)
		text := strings.Repeat("Ollama makes it easy to run large language models locally on your machine. ", 20)

		chunks := c.split(text)
		require.Greater(t, len(chunks), 1)
		for i, chunk := range chunks {
			assert.Equal(t, i, chunk.Index)
			assert.True(t, chunk.Meaningful())
		}
	})

	t.Run("short text yields a single chunk", func(t *testing.T) {
		c := newChunker(256, 1, nil)

		chunks := c.split("One short sentence about local models.")
		require.Len(t, chunks, 1)
		assert.Equal(t, 0, chunks[0].Index)
	})

	t.Run("empty text yields no chunks", func(t *testing.T) {
		c := newChunker(256, 1, nil)
		assert.Empty(t, c.split("   "))
	})

	t.Run("text without terminal punctuation still chunks", func(t *testing.T) {
		c := newChunker(256, 1, nil)

		chunks := c.split("a transcript fragment without any punctuation at all")
		require.Len(t, chunks, 1)
	})
}
