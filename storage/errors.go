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

package storage

import "errors"

var (
	// ErrNotFound indicates the requested slot, chunk, or job does not exist.
	ErrNotFound = errors.New("not found")

	// ErrClosed indicates an operation was attempted on a closed backend.
	ErrClosed = errors.New("storage backend is closed")

	// ErrCorruptRecord indicates a stored record failed to deserialize.
	ErrCorruptRecord = errors.New("corrupt record")

	// ErrEmbeddingMismatch indicates the embedding collection's row count
	// does not match the stored chunk count.
	ErrEmbeddingMismatch = errors.New("embedding count does not match chunk count")
)
