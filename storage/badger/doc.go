// Package badger implements the job ledger on BadgerDB.
//
// One record per pipeline run, keyed by job ID, plus a start-time index and
// a latest-job pointer. Stage transitions happen inside single write
// transactions. Records are serialized with the MUS serializers from core.
//
// Use NewMemoryLedger in tests to get a ledger on an in-memory database.
package badger
