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

package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// StorageConfig locates the on-disk content store and the job ledger.
type StorageConfig struct {
	// DataDir is the root directory holding transcripts, chunks, and
	// embeddings.
	DataDir string `yaml:"data_dir"`

	// ChunkDirs are candidate chunk directory names, checked in order.
	// Later entries exist for data written by older tooling.
	ChunkDirs []string `yaml:"chunk_dirs,omitempty"`

	// LedgerPath is the Badger database path for job records. Empty means
	// <data_dir>/ledger.
	LedgerPath string `yaml:"ledger_path,omitempty"`
}

// PipelineConfig controls transcript chunking.
type PipelineConfig struct {
	TokenBudget      int `yaml:"token_budget"`
	OverlapSentences int `yaml:"overlap_sentences"`
}

// RetrievalConfig controls question answering retrieval.
type RetrievalConfig struct {
	// TopK is how many chunks are retrieved per question.
	TopK int `yaml:"top_k"`
}

// AIConfig configures the OpenAI-compatible model endpoints.
type AIConfig struct {
	EmbeddingHost  string `yaml:"embedding_host"`
	ChatHost       string `yaml:"chat_host"`
	EmbeddingModel string `yaml:"embedding_model"`
	ChatModel      string `yaml:"chat_model"`

	// SpanExtractor and Generator toggle the optional chat-model answer
	// strategies. Both default to on.
	SpanExtractor *bool `yaml:"span_extractor,omitempty"`
	Generator     *bool `yaml:"generator,omitempty"`
}

// WatcherConfig configures the transcript drop watcher.
type WatcherConfig struct {
	// TranscriptFile is the filename inside the transcripts directory that
	// triggers a pipeline run when it appears.
	TranscriptFile string `yaml:"transcript_file"`

	// SettleDelayMillis is how long to wait after a filesystem event before
	// reading the file.
	SettleDelayMillis int `yaml:"settle_delay_millis"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Storage   StorageConfig   `yaml:"storage"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	AI        AIConfig        `yaml:"ai"`
	Watcher   WatcherConfig   `yaml:"watcher"`
	LogLevel  string          `yaml:"log_level"`
}

// SpanExtractorEnabled reports the span extractor toggle, defaulting to true.
func (c *AIConfig) SpanExtractorEnabled() bool {
	return c.SpanExtractor == nil || *c.SpanExtractor
}

// GeneratorEnabled reports the generator toggle, defaulting to true.
func (c *AIConfig) GeneratorEnabled() bool {
	return c.Generator == nil || *c.Generator
}

// ResolvedLedgerPath returns the configured ledger path, falling back to a
// ledger directory under the data directory.
func (c *StorageConfig) ResolvedLedgerPath() string {
	if c.LedgerPath != "" {
		return c.LedgerPath
	}
	return filepath.Join(c.DataDir, "ledger")
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the configuration used when no file is present.
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = "data"
	}
	if len(cfg.Storage.ChunkDirs) == 0 {
		cfg.Storage.ChunkDirs = []string{"chunks", "text_chunks", "text chunks"}
	}
	if cfg.Pipeline.TokenBudget == 0 {
		cfg.Pipeline.TokenBudget = 256
	}
	if cfg.Pipeline.OverlapSentences == 0 {
		cfg.Pipeline.OverlapSentences = 1
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 5
	}
	if cfg.AI.EmbeddingHost == "" {
		cfg.AI.EmbeddingHost = "http://localhost:11434/v1"
	}
	if cfg.AI.ChatHost == "" {
		cfg.AI.ChatHost = "http://localhost:11434/v1"
	}
	if cfg.AI.EmbeddingModel == "" {
		cfg.AI.EmbeddingModel = "embeddinggemma"
	}
	if cfg.AI.ChatModel == "" {
		cfg.AI.ChatModel = "qwen2.5:3b"
	}
	if cfg.Watcher.TranscriptFile == "" {
		cfg.Watcher.TranscriptFile = "transcript.txt"
	}
	if cfg.Watcher.SettleDelayMillis == 0 {
		cfg.Watcher.SettleDelayMillis = 500
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}
