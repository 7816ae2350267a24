// Package fs implements the filesystem content store.
//
// Layout under the store root:
//
//	transcripts/
//	    transcript.txt            source transcript (external writer)
//	    transcript_english.txt    translate stage output
//	    cleaned_transcript.txt    clean stage output
//	    summary.txt               summary consumer output
//	    detailed_notes.txt        notes generator output
//	chunks/
//	    chunk_0.txt ... chunk_N.txt
//	    embeddings.bin            MUS-encoded embedding collection
//
// Chunk reads search an ordered directory list (chunks, text_chunks,
// "text chunks" by default) and use the first directory that exists, so
// stores produced under older layouts remain readable. Writes always target
// the first entry. Chunks are ordered by the first integer in the filename,
// never lexically.
package fs
