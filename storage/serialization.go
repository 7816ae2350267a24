package storage

import (
	"fmt"

	"github.com/poiesic/vidrecall/core"
)

// MarshalJobRecord serializes a job record to MUS binary format.
func MarshalJobRecord(record *core.JobRecord) ([]byte, error) {
	if record == nil {
		return nil, fmt.Errorf("cannot marshal nil job record")
	}
	bs := make([]byte, core.JobRecordMUS.Size(*record))
	core.JobRecordMUS.Marshal(*record, bs)
	return bs, nil
}

// UnmarshalJobRecord deserializes a job record from MUS binary format.
func UnmarshalJobRecord(bs []byte) (*core.JobRecord, error) {
	record, _, err := core.JobRecordMUS.Unmarshal(bs)
	if err != nil {
		return nil, fmt.Errorf("%w: job record: %w", ErrCorruptRecord, err)
	}
	return &record, nil
}

// MarshalEmbeddings serializes an embedding collection to MUS binary format.
// Row order is significant and preserved exactly.
func MarshalEmbeddings(embeddings [][]float32) ([]byte, error) {
	bs := make([]byte, core.EmbeddingSetMUS.Size(embeddings))
	core.EmbeddingSetMUS.Marshal(embeddings, bs)
	return bs, nil
}

// UnmarshalEmbeddings deserializes an embedding collection from MUS binary format.
func UnmarshalEmbeddings(bs []byte) ([][]float32, error) {
	embeddings, _, err := core.EmbeddingSetMUS.Unmarshal(bs)
	if err != nil {
		return nil, fmt.Errorf("%w: embeddings: %w", ErrCorruptRecord, err)
	}
	return embeddings, nil
}

// MarshalID serializes an ID for use as a storage key component.
func MarshalID(id core.ID) []byte {
	bs := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, bs)
	return bs
}

// UnmarshalID deserializes an ID from a storage key component.
func UnmarshalID(bs []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(bs)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %w", ErrCorruptRecord, err)
	}
	return id, nil
}
