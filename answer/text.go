package answer

import (
	"hash/fnv"
	"strings"
)

// cueWords mark sentences that look like instructions; their presence adds
// a fixed scoring bonus in the sentence fallback.
var cueWords = []string{"how to", "steps", "guide", "tutorial", "install", "run", "setup"}

// wordSet builds the lowercase word set of text.
func wordSet(text string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// overlapCount counts how many words from the set occur in the sentence's
// own word set.
func overlapCount(set map[string]struct{}, sentence string) int {
	count := 0
	for w := range wordSet(sentence) {
		if _, ok := set[w]; ok {
			count++
		}
	}
	return count
}

// containsCueWord reports whether the lowercased sentence contains any
// instructional cue word.
func containsCueWord(sentenceLower string) bool {
	for _, cue := range cueWords {
		if strings.Contains(sentenceLower, cue) {
			return true
		}
	}
	return false
}

// containsToken reports whether token occurs as a whole word in the
// lowercased question. Substring matching would turn "this" into a
// greeting, so detection is token-based.
func containsToken(questionLower, token string) bool {
	for _, w := range strings.Fields(questionLower) {
		if strings.Trim(w, ".,!?;:") == token {
			return true
		}
	}
	return false
}

// hashSelect deterministically picks one of n options from the question
// text. Replaces uniform random selection so identical questions always get
// identical hedging answers.
func hashSelect(question string, n int) int {
	if n <= 0 {
		return 0
	}
	h := fnv.New32a()
	h.Write([]byte(question))
	return int(h.Sum32() % uint32(n))
}

// truncate cuts s to at most max runes.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
