package openai

import "strings"

// maxTranslateChars bounds a single translation request so it fits the
// model's context window with room for the translated output.
const maxTranslateChars = 6000

// splitBatches splits text into pieces no longer than limit characters,
// breaking on paragraph boundaries where possible.
func splitBatches(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	paragraphs := strings.Split(text, "\n\n")
	var batches []string
	var current strings.Builder

	for _, para := range paragraphs {
		// A single oversized paragraph is split hard.
		for len(para) > limit {
			if current.Len() > 0 {
				batches = append(batches, current.String())
				current.Reset()
			}
			cut := limit
			if idx := strings.LastIndex(para[:limit], " "); idx > limit/2 {
				cut = idx
			}
			batches = append(batches, para[:cut])
			para = strings.TrimSpace(para[cut:])
		}

		if current.Len()+len(para)+2 > limit && current.Len() > 0 {
			batches = append(batches, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}

	if current.Len() > 0 {
		batches = append(batches, current.String())
	}
	return batches
}

// stripCodeFences removes markdown code fences around an LLM's JSON output.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
