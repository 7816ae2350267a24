package notes

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/vidrecall/ai/mock"
	"github.com/poiesic/vidrecall/core"
	"github.com/poiesic/vidrecall/storage"
	"github.com/poiesic/vidrecall/storage/fs"
)

func buildTranscript(sentences int) string {
	var b strings.Builder
	for i := 0; i < sentences; i++ {
		fmt.Fprintf(&b, "The important step number %d is to configure the model runtime before loading any weights. ", i+1)
	}
	return strings.TrimSpace(b.String())
}

func newTestGenerator(t *testing.T, summarize bool) (*Generator, storage.ContentStore) {
	t.Helper()

	store, err := fs.NewStore(t.TempDir())
	require.NoError(t, err)

	var g *Generator
	if summarize {
		g, err = NewGenerator(store, mock.NewMockSummarizer())
	} else {
		g, err = NewGenerator(store, nil)
	}
	require.NoError(t, err)
	return g, store
}

func TestNewGenerator(t *testing.T) {
	t.Run("requires content store", func(t *testing.T) {
		_, err := NewGenerator(nil, nil)
		assert.ErrorIs(t, err, ErrContentStoreRequired)
	})

	t.Run("summarizer is optional", func(t *testing.T) {
		store, err := fs.NewStore(t.TempDir())
		require.NoError(t, err)

		_, err = NewGenerator(store, nil)
		assert.NoError(t, err)
	})
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("reports processing until a transcript slot is ready", func(t *testing.T) {
		g, _ := newTestGenerator(t, false)

		got := g.Generate(ctx)
		assert.Equal(t, core.StatusPending, got.Status)
		assert.Equal(t, stillProcessingMessage, got.Message)
		assert.Empty(t, got.Notes)
	})

	t.Run("succeeds with only the cleaned transcript present", func(t *testing.T) {
		g, store := newTestGenerator(t, false)
		require.NoError(t, store.WriteSlot(ctx, storage.SlotCleanedTranscript, buildTranscript(20)))

		got := g.Generate(ctx)
		require.Equal(t, core.StatusSuccess, got.Status)
		assert.NotEmpty(t, got.Notes)
		assert.Equal(t, len(strings.Fields(got.Notes)), got.WordCount)
		assert.GreaterOrEqual(t, got.ProcessingTime, 0.0)
	})

	t.Run("renders at most six key points", func(t *testing.T) {
		g, store := newTestGenerator(t, false)
		require.NoError(t, store.WriteSlot(ctx, storage.SlotCleanedTranscript, buildTranscript(12)))

		got := g.Generate(ctx)
		require.Equal(t, core.StatusSuccess, got.Status)

		numbered := 0
		for _, line := range strings.Split(got.Notes, "\n") {
			trimmed := strings.TrimSpace(line)
			if len(trimmed) > 2 && trimmed[0] >= '1' && trimmed[0] <= '9' && strings.HasPrefix(trimmed[1:], ". ") {
				numbered++
				assert.Greater(t, len(trimmed), 15)
			}
		}
		assert.Equal(t, 6, numbered)
	})

	t.Run("document carries every fixed section", func(t *testing.T) {
		g, store := newTestGenerator(t, false)
		require.NoError(t, store.WriteSlot(ctx, storage.SlotCleanedTranscript, buildTranscript(10)))

		got := g.Generate(ctx)
		require.Equal(t, core.StatusSuccess, got.Status)

		for _, section := range []string{
			"# Content Notes",
			"## Overview",
			"## Main Topics",
			"## Key Points",
			"## Additional Information",
			"- Important details from the content",
			"- Supporting facts and evidence",
			"- Relevant context and background",
			"## Takeaways",
			"- Main conclusions or learnings",
			"- Practical applications",
			"- Key insights worth remembering",
		} {
			assert.Contains(t, got.Notes, section)
		}
	})

	t.Run("prefers cleaned over english transcript", func(t *testing.T) {
		g, store := newTestGenerator(t, false)
		require.NoError(t, store.WriteSlot(ctx, storage.SlotEnglishTranscript, buildTranscript(5)))
		cleaned := "The cleaned transcript explains the essential deployment workflow in careful detail. " + buildTranscript(5)
		require.NoError(t, store.WriteSlot(ctx, storage.SlotCleanedTranscript, cleaned))

		got := g.Generate(ctx)
		require.Equal(t, core.StatusSuccess, got.Status)
		assert.Contains(t, got.Notes, "deployment")
	})
}

func TestSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("errors without a transcript", func(t *testing.T) {
		g, _ := newTestGenerator(t, false)

		_, err := g.Summary(ctx)
		assert.ErrorIs(t, err, ErrNoTranscript)
	})

	t.Run("uses the summarizer for long content", func(t *testing.T) {
		g, store := newTestGenerator(t, true)
		require.NoError(t, store.WriteSlot(ctx, storage.SlotCleanedTranscript, buildTranscript(20)))

		summary, err := g.Summary(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, summary)
	})

	t.Run("truncates summarizer input on a rune boundary", func(t *testing.T) {
		store, err := fs.NewStore(t.TempDir())
		require.NoError(t, err)

		summarizer := mock.NewMockSummarizer()
		var captured string
		summarizer.SummarizeFunc = func(ctx context.Context, text string, minWords, maxWords int) (string, error) {
			captured = text
			return "A compact overview of the content.", nil
		}
		g, err := NewGenerator(store, summarizer)
		require.NoError(t, err)

		// The odd-length prefix puts the 1500-byte mark inside a two-byte rune.
		content := strings.Repeat("palabra ", 110) + "x" + strings.Repeat("é", 700)
		require.NoError(t, store.WriteSlot(ctx, storage.SlotCleanedTranscript, content))

		_, err = g.Summary(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, captured)
		assert.True(t, utf8.ValidString(captured))
		assert.LessOrEqual(t, len(captured), 1500)
		assert.True(t, strings.HasPrefix(content, captured))
	})

	t.Run("short content gets the extractive fallback", func(t *testing.T) {
		g, store := newTestGenerator(t, true)
		short := "The first sentence sets up the topic clearly. The last sentence wraps up the discussion neatly."
		require.NoError(t, store.WriteSlot(ctx, storage.SlotCleanedTranscript, short))

		summary, err := g.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, "The first sentence sets up the topic clearly The last sentence wraps up the discussion neatly", summary)
	})
}

func TestExtractKeyPoints(t *testing.T) {
	t.Run("orders by descending score", func(t *testing.T) {
		text := "Nothing notable here at all today. " + // 0 points: 6 words, no indicators
			"The critical configuration step must happen before the model loads into memory. " + // high: length + 2 indicators
			"You should configure logging early because silent failures are expensive to debug later on. " // mid: length + 2 indicators

		points := extractKeyPoints(text)
		require.NotEmpty(t, points)
		for i := 1; i < len(points); i++ {
			assert.GreaterOrEqual(t, scoreSentence(points[i-1]), scoreSentence(points[i]))
		}
		assert.Equal(t, "Nothing notable here at all today", points[len(points)-1])
	})

	t.Run("caps at eight points", func(t *testing.T) {
		points := extractKeyPoints(buildTranscript(15))
		assert.Len(t, points, maxKeyPoints)
	})

	t.Run("skips short fragments", func(t *testing.T) {
		assert.Empty(t, extractKeyPoints("Tiny. Bits. Again."))
	})
}

func TestMainTopics(t *testing.T) {
	t.Run("ranks by frequency", func(t *testing.T) {
		text := "ollama ollama ollama model model runtime weights quantization benchmark"
		topics := mainTopics(text)
		require.Len(t, topics, 5)
		assert.Equal(t, "ollama", topics[0])
		assert.Equal(t, "model", topics[1])
	})

	t.Run("drops stop words and short words", func(t *testing.T) {
		topics := mainTopics("the and is in to memory memory gpu")
		assert.NotContains(t, topics, "the")
		assert.NotContains(t, topics, "gpu")
		assert.Contains(t, topics, "memory")
	})
}

func TestScoreSentence(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     int
	}{
		{
			name:     "optimal length",
			sentence: "This sentence has exactly nine words inside it okay",
			want:     10,
		},
		{
			name:     "importance indicator",
			sentence: "The key detail is the essential configuration of the runtime flags",
			want:     26,
		},
		{
			name:     "numbered point shape",
			sentence: "Step 3 requires exporting the variable before starting the server process",
			want:     15,
		},
		{
			name:     "nothing notable",
			sentence: "just a few words",
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoreSentence(tt.sentence))
		})
	}
}
