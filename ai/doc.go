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


// Package ai defines the external model capabilities the system depends on:
// embedding, translation, summarization, extractive span location, and free
// text generation.
//
// The interfaces here isolate the rest of the codebase from any particular
// model runtime. The openai subpackage implements them against
// OpenAI-compatible HTTP endpoints; the mock subpackage provides
// deterministic test doubles. SpanExtractor and Generator are optional
// capabilities and may be nil on a given Provider.
package ai
