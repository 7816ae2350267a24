// Package reembed regenerates chunk embeddings in place.
//
// Switching embedding models invalidates the stored embedding matrix but
// not the chunks it was built from. Reembedding re-encodes the existing
// chunks in batches, with retry and progress reporting, and replaces the
// matrix in a single write.
package reembed
