package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/vidrecall/core"
	"github.com/poiesic/vidrecall/storage"
)

func newTestLedger(t *testing.T) storage.JobLedger {
	t.Helper()
	ledger, err := NewMemoryLedger()
	require.NoError(t, err)
	t.Cleanup(func() { ledger.Close() })
	return ledger
}

func newTestJob(id core.ID) *core.JobRecord {
	return &core.JobRecord{
		Id:        id,
		Stage:     core.StagePurge,
		StartedAt: time.Now().UTC(),
	}
}

func TestLedgerStartJob(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and retrieves a job", func(t *testing.T) {
		ledger := newTestLedger(t)

		job := newTestJob(1)
		require.NoError(t, ledger.StartJob(ctx, job))

		got, err := ledger.GetJob(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, job.Id, got.Id)
		assert.Equal(t, core.StagePurge, got.Stage)
		assert.False(t, got.Finished())
		assert.False(t, got.Failed())
	})

	t.Run("rejects invalid record", func(t *testing.T) {
		ledger := newTestLedger(t)

		err := ledger.StartJob(ctx, &core.JobRecord{Id: 1, Stage: core.StagePurge})
		assert.ErrorIs(t, err, core.ErrInvalidJobRecord)
	})

	t.Run("rejects zero id", func(t *testing.T) {
		ledger := newTestLedger(t)

		err := ledger.StartJob(ctx, newTestJob(0))
		assert.ErrorIs(t, err, core.ErrInvalidJobRecord)
	})
}

func TestLedgerStageTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("advance moves the stage", func(t *testing.T) {
		ledger := newTestLedger(t)
		require.NoError(t, ledger.StartJob(ctx, newTestJob(1)))

		stages := []core.JobStage{
			core.StageTranslate,
			core.StageClean,
			core.StageChunk,
			core.StageVectorize,
		}
		for _, stage := range stages {
			require.NoError(t, ledger.AdvanceStage(ctx, 1, stage))

			got, err := ledger.GetJob(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, stage, got.Stage)
		}
	})

	t.Run("complete finishes the job", func(t *testing.T) {
		ledger := newTestLedger(t)
		require.NoError(t, ledger.StartJob(ctx, newTestJob(1)))

		require.NoError(t, ledger.CompleteJob(ctx, 1))

		got, err := ledger.GetJob(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, core.StageDone, got.Stage)
		assert.True(t, got.Finished())
		assert.False(t, got.Failed())
	})

	t.Run("fail records the error and finish time", func(t *testing.T) {
		ledger := newTestLedger(t)
		require.NoError(t, ledger.StartJob(ctx, newTestJob(1)))
		require.NoError(t, ledger.AdvanceStage(ctx, 1, core.StageVectorize))

		require.NoError(t, ledger.FailJob(ctx, 1, "embedding service unavailable"))

		got, err := ledger.GetJob(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, core.StageVectorize, got.Stage)
		assert.True(t, got.Finished())
		assert.True(t, got.Failed())
		assert.Equal(t, "embedding service unavailable", got.Error)
	})

	t.Run("unknown job returns ErrNotFound", func(t *testing.T) {
		ledger := newTestLedger(t)

		assert.ErrorIs(t, ledger.AdvanceStage(ctx, 99, core.StageClean), storage.ErrNotFound)
		assert.ErrorIs(t, ledger.CompleteJob(ctx, 99), storage.ErrNotFound)
		assert.ErrorIs(t, ledger.FailJob(ctx, 99, "boom"), storage.ErrNotFound)

		_, err := ledger.GetJob(ctx, 99)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestLedgerLatestJob(t *testing.T) {
	ctx := context.Background()

	t.Run("empty ledger returns nil", func(t *testing.T) {
		ledger := newTestLedger(t)

		got, err := ledger.LatestJob(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("returns the most recently started job", func(t *testing.T) {
		ledger := newTestLedger(t)

		require.NoError(t, ledger.StartJob(ctx, newTestJob(1)))
		require.NoError(t, ledger.CompleteJob(ctx, 1))
		require.NoError(t, ledger.StartJob(ctx, newTestJob(2)))

		got, err := ledger.LatestJob(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, core.ID(2), got.Id)
		assert.False(t, got.Finished())
	})

	t.Run("latest reflects stage updates", func(t *testing.T) {
		ledger := newTestLedger(t)

		require.NoError(t, ledger.StartJob(ctx, newTestJob(1)))
		require.NoError(t, ledger.AdvanceStage(ctx, 1, core.StageChunk))

		got, err := ledger.LatestJob(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, core.StageChunk, got.Stage)
	})
}
