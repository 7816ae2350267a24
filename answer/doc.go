// Package answer turns retrieved transcript context into best-effort
// answers.
//
// The synthesizer walks an ordered strategy cascade and stops at the first
// success: greeting shortcut, span extraction, sentence fallback, generative
// fallback, curated knowledge-base lookup, generic hedging. The confidence
// of the result encodes which path fired. Apart from the readiness gate, the
// synthesizer never surfaces an error: capability failures move the cascade
// along and panics are recovered into a fixed response.
package answer
