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

package notes

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

const (
	maxKeyPoints      = 8
	renderedKeyPoints = 6
	maxTopics         = 5

	minKeyPointChars = 15
	minKeyPointWords = 3
)

// sentenceBoundary splits on runs of terminal punctuation.
var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// importanceIndicators raise a sentence's key point score per occurrence.
var importanceIndicators = []string{
	"important", "key", "main", "essential", "critical", "crucial",
	"must", "should", "because", "therefore", "however", "consequently",
	"significantly", "primarily", "fundamental",
}

// topicStopWords are excluded from topic frequency counting.
var topicStopWords = map[string]struct{}{
	"the": {}, "and": {}, "is": {}, "in": {}, "to": {},
	"of": {}, "a": {}, "that": {}, "it": {}, "for": {},
}

// splitSentences breaks text on terminal punctuation and keeps trimmed
// sentences longer than minChars.
func splitSentences(text string, minChars int) []string {
	var kept []string
	for _, s := range sentenceBoundary.Split(text, -1) {
		s = strings.TrimSpace(s)
		if len(s) > minChars {
			kept = append(kept, s)
		}
	}
	return kept
}

// scoreSentence rates a sentence's suitability as a key point.
// Mid-length sentences, importance indicators, and numbered-point shapes
// score higher.
func scoreSentence(sentence string) int {
	score := 0

	wordCount := len(strings.Fields(sentence))
	if wordCount >= 8 && wordCount <= 25 {
		score += 10
	} else if wordCount > 25 {
		score += 5
	}

	lower := strings.ToLower(sentence)
	for _, indicator := range importanceIndicators {
		if strings.Contains(lower, indicator) {
			score += 8
		}
	}

	runes := []rune(sentence)
	if len(runes) > 0 && unicode.IsUpper(runes[0]) && strings.ContainsFunc(sentence, unicode.IsDigit) {
		score += 5
	}

	return score
}

// extractKeyPoints returns the top-scoring sentences in descending score
// order, at most maxKeyPoints of them.
func extractKeyPoints(text string) []string {
	sentences := splitSentences(text, minKeyPointChars)

	type scored struct {
		score    int
		sentence string
	}
	var candidates []scored
	for _, sentence := range sentences {
		if len(strings.Fields(sentence)) < minKeyPointWords {
			continue
		}
		candidates = append(candidates, scored{score: scoreSentence(sentence), sentence: sentence})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > maxKeyPoints {
		candidates = candidates[:maxKeyPoints]
	}
	points := make([]string, len(candidates))
	for i, c := range candidates {
		points[i] = c.sentence
	}
	return points
}

// mainTopics returns the most frequent non-stop words longer than three
// characters, ties broken by first occurrence.
func mainTopics(text string) []string {
	counts := make(map[string]int)
	var order []string
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if _, stop := topicStopWords[word]; stop || len(word) <= 3 {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxTopics {
		order = order[:maxTopics]
	}
	return order
}

// capitalize upper-cases the first rune of a word.
func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
