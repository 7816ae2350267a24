// Package watcher triggers pipeline runs when the external transcriber
// drops a new source transcript into the transcripts directory.
//
// A short settle delay between the filesystem event and the trigger lets
// the writer finish before the pipeline reads the file.
package watcher
