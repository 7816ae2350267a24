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


package core

import (
	"fmt"
	"strings"
)

// Content thresholds used as the "has real content" tests everywhere.
const (
	minTranscriptChars = 50
	minChunkChars      = 10
)

// MeaningfulText reports whether text is non-empty after trimming and
// longer than the transcript content threshold.
func MeaningfulText(text string) bool {
	trimmed := strings.TrimSpace(text)
	return len(trimmed) > minTranscriptChars
}

// ValidateTranscript validates a Transcript according to domain rules.
//
// Validation rules:
//   - Text must be non-empty after trimming and longer than 50 characters
//   - Language must be a known tag
func ValidateTranscript(t *Transcript) error {
	if t == nil {
		return fmt.Errorf("%w: transcript is nil", ErrInvalidTranscript)
	}

	if !t.HasContent() {
		return fmt.Errorf("%w: %w", ErrInvalidTranscript, ErrInsufficientContent)
	}

	if t.Language != LanguageSource && t.Language != LanguageEnglish {
		return fmt.Errorf("%w: %w (%q)", ErrInvalidTranscript, ErrInvalidLanguage, t.Language)
	}

	return nil
}

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Text must be non-empty after trimming and longer than 10 characters
//   - Index must not be negative
func ValidateChunk(c *Chunk) error {
	if c == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if !c.Meaningful() {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrInsufficientContent)
	}

	if c.Index < 0 {
		return fmt.Errorf("%w: negative index %d", ErrInvalidChunk, c.Index)
	}

	return nil
}

// ValidateJobRecord validates a JobRecord according to domain rules.
//
// Validation rules:
//   - StartedAt must be set
//   - Stage must be a known stage
func ValidateJobRecord(j *JobRecord) error {
	if j == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidJobRecord)
	}

	if j.StartedAt.IsZero() {
		return fmt.Errorf("%w: StartedAt is zero", ErrInvalidJobRecord)
	}

	if j.Stage < StagePurge || j.Stage > StageDone {
		return fmt.Errorf("%w: unknown stage %d", ErrInvalidJobRecord, j.Stage)
	}

	return nil
}
