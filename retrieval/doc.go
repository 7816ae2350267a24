// Package retrieval ranks stored transcript chunks against a query by
// embedding cosine similarity.
//
// The engine holds chunks and embeddings in memory and refreshes them only
// through an explicit Reload, so staleness after a new pipeline run is a
// conscious choice of the caller. Queries degrade gracefully: a failed query
// embedding falls back to unranked chunks, and the engine never fails a
// lookup outright.
package retrieval
