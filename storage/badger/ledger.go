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

package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/vidrecall/core"
	"github.com/poiesic/vidrecall/storage"
)

// Ledger is a BadgerDB-backed storage.JobLedger. Every stage transition is
// a single read-modify-write transaction, so concurrent observers never see
// a half-updated record.
type Ledger struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.JobLedger = (*Ledger)(nil)

// NewLedger creates a job ledger on top of an open backend.
func NewLedger(backend *Backend, logger *slog.Logger) (*Ledger, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		backend: backend,
		logger:  logger.With("component", "ledger"),
	}, nil
}

// StartJob persists a new job record and makes it the latest job.
func (l *Ledger) StartJob(ctx context.Context, record *core.JobRecord) error {
	if err := core.ValidateJobRecord(record); err != nil {
		return err
	}
	if record.Id == 0 {
		return fmt.Errorf("%w: id is zero", core.ErrInvalidJobRecord)
	}

	bs, err := storage.MarshalJobRecord(record)
	if err != nil {
		return err
	}

	err = l.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeJobKey(record.Id), bs); err != nil {
			return err
		}
		if err := tx.Set(makeJobStartedKey(record.StartedAt, record.Id), storage.MarshalID(record.Id)); err != nil {
			return err
		}
		if err := tx.Set([]byte(latestJobKey), storage.MarshalID(record.Id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return fmt.Errorf("failed to start job %d: %w", record.Id, err)
	}

	l.logger.Info("job started", "job_id", record.Id, "stage", record.Stage.String())
	return nil
}

// AdvanceStage atomically moves a job to the given stage.
func (l *Ledger) AdvanceStage(ctx context.Context, id core.ID, stage core.JobStage) error {
	err := l.updateJob(id, func(record *core.JobRecord) error {
		record.Stage = stage
		return nil
	})
	if err != nil {
		return err
	}

	l.logger.Debug("job stage advanced", "job_id", id, "stage", stage.String())
	return nil
}

// CompleteJob marks the job finished.
func (l *Ledger) CompleteJob(ctx context.Context, id core.ID) error {
	err := l.updateJob(id, func(record *core.JobRecord) error {
		record.Stage = core.StageDone
		record.CompletedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return err
	}

	l.logger.Info("job completed", "job_id", id)
	return nil
}

// FailJob marks the job finished with a stage error message.
func (l *Ledger) FailJob(ctx context.Context, id core.ID, stageErr string) error {
	err := l.updateJob(id, func(record *core.JobRecord) error {
		record.CompletedAt = time.Now().UTC()
		record.Error = stageErr
		return nil
	})
	if err != nil {
		return err
	}

	l.logger.Warn("job failed", "job_id", id, "error", stageErr)
	return nil
}

// GetJob retrieves a job record by ID.
func (l *Ledger) GetJob(ctx context.Context, id core.ID) (*core.JobRecord, error) {
	var record *core.JobRecord
	err := l.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		record, err = readJob(tx, id)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// LatestJob returns the most recently started job, or nil if the ledger
// is empty.
func (l *Ledger) LatestJob(ctx context.Context) (*core.JobRecord, error) {
	var record *core.JobRecord
	err := l.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(latestJobKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var id core.ID
		if err := item.Value(func(val []byte) error {
			id, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		record, err = readJob(tx, id)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Close closes the underlying backend.
func (l *Ledger) Close() error {
	return l.backend.Close()
}

// updateJob applies mutate to a job record inside one write transaction.
func (l *Ledger) updateJob(id core.ID, mutate func(*core.JobRecord) error) error {
	return l.backend.WithTx(func(tx *badger.Txn) error {
		record, err := readJob(tx, id)
		if err != nil {
			return err
		}
		if err := mutate(record); err != nil {
			return err
		}

		bs, err := storage.MarshalJobRecord(record)
		if err != nil {
			return err
		}
		if err := tx.Set(makeJobKey(id), bs); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// readJob reads and deserializes a job record within a transaction.
func readJob(tx *badger.Txn, id core.ID) (*core.JobRecord, error) {
	item, err := tx.Get(makeJobKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: job %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	var record *core.JobRecord
	if err := item.Value(func(val []byte) error {
		record, err = storage.UnmarshalJobRecord(val)
		return err
	}); err != nil {
		return nil, err
	}
	return record, nil
}
