// Package storage defines the persistence interfaces for transcript content
// and pipeline job state.
//
// Two independent concerns live here:
//
//   - ContentStore: the named slots and chunk/embedding collections that the
//     pipeline writes and the retrieval, Q&A, and notes consumers read.
//     The filesystem implementation lives in storage/fs.
//   - JobLedger: explicit per-run job records with atomic stage transitions.
//     The Badger implementation lives in storage/badger.
//
// Serialization helpers wrap the MUS serializers from the core package and
// translate decode failures into ErrCorruptRecord.
package storage
