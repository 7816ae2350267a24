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

import "errors"

// Domain validation errors
var (
	// ErrInvalidTranscript indicates a Transcript failed validation.
	ErrInvalidTranscript = errors.New("invalid transcript")

	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrInvalidJobRecord indicates a JobRecord failed validation.
	ErrInvalidJobRecord = errors.New("invalid job record")

	// ErrInsufficientContent indicates text is empty or below the content threshold.
	ErrInsufficientContent = errors.New("insufficient content")

	// ErrInvalidLanguage indicates an unknown transcript language tag.
	ErrInvalidLanguage = errors.New("invalid language tag")
)
