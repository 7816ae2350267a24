// Package notes builds structured Markdown notes from processed
// transcripts.
//
// The document combines an overview (abstractive summary with an extractive
// fallback), the most frequent topic words, the highest-scoring key point
// sentences, and fixed boilerplate sections. Precondition failures and
// internal errors come back as status values on the result, never as hard
// failures.
package notes
