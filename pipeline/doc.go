// Package pipeline orchestrates transcript processing.
//
// One job runs the stages purge, translate, clean, chunk, vectorize in
// strict order against the content store, recording every stage transition
// in the job ledger. Jobs are submitted to a worker pool of size 1, so
// concurrent triggers serialize rather than racing on shared slots.
//
// Stage failures are terminal for the job: recorded in the ledger and
// logged, never surfaced to the trigger. Observers see failures through the
// ledger or the derived status Tracker.
package pipeline
