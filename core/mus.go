package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the types that cross a storage boundary.
// Written by hand against the mus-go primitives; the encoding is
// versionless, so field order must never change.
var (
	IDMUS           = idMUS{}
	JobRecordMUS    = jobRecordMUS{}
	VectorMUS       = ord.NewSliceSer[float32](varint.Float32)
	EmbeddingSetMUS = ord.NewSliceSer[[]float32](ord.NewSliceSer[float32](varint.Float32))
)

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(v ID) int {
	return varint.Uint64.Size(uint64(v))
}

type jobRecordMUS struct{}

func (s jobRecordMUS) Marshal(v JobRecord, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(v.Id), bs)
	n += varint.Int.Marshal(int(v.Stage), bs[n:])
	n += varint.Int64.Marshal(marshalTime(v.StartedAt), bs[n:])
	n += varint.Int64.Marshal(marshalTime(v.CompletedAt), bs[n:])
	n += ord.String.Marshal(v.Error, bs[n:])
	return n
}

func (s jobRecordMUS) Unmarshal(bs []byte) (v JobRecord, n int, err error) {
	id, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	v.Id = ID(id)

	stage, n1, err := varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Stage = JobStage(stage)

	started, n1, err := varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.StartedAt = unmarshalTime(started)

	completed, n1, err := varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.CompletedAt = unmarshalTime(completed)

	v.Error, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return v, n, err
}

func (s jobRecordMUS) Size(v JobRecord) (size int) {
	size = varint.Uint64.Size(uint64(v.Id))
	size += varint.Int.Size(int(v.Stage))
	size += varint.Int64.Size(marshalTime(v.StartedAt))
	size += varint.Int64.Size(marshalTime(v.CompletedAt))
	size += ord.String.Size(v.Error)
	return size
}

// marshalTime encodes a time as UnixMicro, keeping the zero value round-trippable.
func marshalTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

func unmarshalTime(micros int64) time.Time {
	if micros == 0 {
		return time.Time{}
	}
	return time.UnixMicro(micros).UTC()
}
