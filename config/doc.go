// Package config loads the application configuration from YAML.
//
// A missing file is not an error: Load falls back to defaults, and any
// field left empty in the file gets its default value.
package config
