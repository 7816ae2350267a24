// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"regexp"
	"strings"
)

var (
	// bracketedAnnotation matches transcriber stage directions like
	// [Music], [Applause], [Laughter].
	bracketedAnnotation = regexp.MustCompile(`\[[^\]]*\]`)

	// multiSpace collapses runs of whitespace left behind by removals.
	multiSpace = regexp.MustCompile(`\s+`)

	// spaceBeforePunct fixes " ." and " ," artifacts.
	spaceBeforePunct = regexp.MustCompile(`\s+([.,!?;:])`)
)

// fillerWords are spoken-language fillers that add nothing to retrieval.
// Matched as whole lowercase words only.
var fillerWords = map[string]struct{}{
	"um":  {},
	"umm": {},
	"uh":  {},
	"uhh": {},
	"uhm": {},
	"erm": {},
	"hmm": {},
}

// cleanTranscript normalizes an english transcript for chunking:
// bracketed annotations and filler words are dropped, whitespace is
// collapsed, punctuation spacing is repaired.
func cleanTranscript(text string) string {
	text = bracketedAnnotation.ReplaceAllString(text, " ")

	words := strings.Fields(text)
	kept := words[:0]
	for _, word := range words {
		bare := strings.Trim(strings.ToLower(word), ".,!?;:")
		if _, isFiller := fillerWords[bare]; isFiller {
			continue
		}
		kept = append(kept, word)
	}

	text = strings.Join(kept, " ")
	text = multiSpace.ReplaceAllString(text, " ")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
