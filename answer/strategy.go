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

package answer

import (
	"context"
	"strings"

	"github.com/poiesic/vidrecall/core"
)

// Question carries one question through the strategy cascade, together with
// the retrieved context shared by the strategies.
type Question struct {
	Text    string
	Lowered string
	Chunks  []core.Chunk
	Context string // concatenation of the retrieved chunk texts
}

// newQuestion builds a Question; context fields are filled in later by the
// synthesizer once retrieval has run.
func newQuestion(text string) *Question {
	return &Question{
		Text:    text,
		Lowered: strings.ToLower(strings.TrimSpace(text)),
	}
}

// setChunks attaches the retrieved chunks and their joined text.
func (q *Question) setChunks(chunks []core.Chunk) {
	q.Chunks = chunks
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	q.Context = strings.Join(texts, " ")
}

// HasContext reports whether retrieval produced any chunks.
func (q *Question) HasContext() bool {
	return len(q.Chunks) > 0
}

// Strategy is one step of the answer cascade. Attempt returns the answer
// text, whether the answer was derived from retrieved context, and whether
// the strategy succeeded. A failed or inapplicable strategy returns ok=false
// and the cascade moves on; strategies never return errors.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, q *Question) (text string, fromContext bool, ok bool)
}
