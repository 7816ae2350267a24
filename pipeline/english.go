package pipeline

import (
	"strings"
	"unicode"
)

// englishMarkers are high-frequency English function words. A transcript in
// another latin-script language hits almost none of them.
// Single letters and words shared with other latin-script languages
// (a, in, is) are deliberately absent.
var englishMarkers = map[string]struct{}{
	"the": {}, "and": {}, "of": {}, "to": {}, "that": {}, "it": {},
	"for": {}, "you": {}, "this": {}, "with": {}, "are": {}, "was": {},
	"have": {}, "not": {}, "what": {}, "from": {}, "they": {}, "will": {},
}

const languageSampleWords = 300

// isLikelyEnglish is the translate stage's own detection: a transcript that
// already reads as English is copied through instead of being sent to the
// translator.
func isLikelyEnglish(text string) bool {
	var letters, nonASCII int
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if r > unicode.MaxASCII {
				nonASCII++
			}
		}
	}
	if letters == 0 {
		return true
	}
	if float64(nonASCII)/float64(letters) > 0.15 {
		return false
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) > languageSampleWords {
		words = words[:languageSampleWords]
	}
	hits := 0
	for _, word := range words {
		if _, ok := englishMarkers[strings.Trim(word, ".,!?;:\"'")]; ok {
			hits++
		}
	}
	// Roughly one word in three is a function word in natural English;
	// one in twenty is a generous floor.
	return hits*20 >= len(words)
}
