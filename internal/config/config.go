package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Ollama   OllamaConfig   `mapstructure:"ollama"   validate:"required"`
	Pipeline PipelineConfig `mapstructure:"pipeline" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ServerConfig contains process-level settings.
type ServerConfig struct {
	// LogLevel controls the slog level: debug, info, warn or error.
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// APIAddr is the listen address of the read-only inspection API.
	// Empty disables the API.
	APIAddr string `mapstructure:"api_addr"`
}

// OllamaConfig contains all inference service settings.
//
// ProbeTimeout and GenerateTimeout are deliberately separate budgets:
// the availability probe must fail fast while generation is allowed to
// run long against a slow local model.
type OllamaConfig struct {
	BaseURL    string `mapstructure:"base_url"    validate:"required,url"`
	Model      string `mapstructure:"model"       validate:"required"`
	ChatPath   string `mapstructure:"chat_path"   validate:"required"`
	HealthPath string `mapstructure:"health_path" validate:"required"`

	ProbeTimeout    time.Duration `mapstructure:"probe_timeout"    validate:"required,gt=0"`
	GenerateTimeout time.Duration `mapstructure:"generate_timeout" validate:"required,gt=0"`

	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	NumCtx      int     `mapstructure:"num_ctx"     validate:"gte=0"`
}

// PipelineConfig contains annotation pipeline settings.
type PipelineConfig struct {
	// Concurrency is the hard ceiling on simultaneous inference calls.
	Concurrency int `mapstructure:"concurrency" validate:"required,gt=0"`

	// MinDescendants is the minimum number of transitive replies a
	// comment thread must have before it is summarized. A thread with
	// exactly this many descendants is skipped.
	MinDescendants int `mapstructure:"min_descendants" validate:"gte=0"`

	// MaxThreads caps how many top-level threads are summarized per
	// discovery batch.
	MaxThreads int `mapstructure:"max_threads" validate:"gt=0"`
}

// CacheConfig contains annotation cache settings.
type CacheConfig struct {
	// Path is the SQLite database file. Empty selects the in-memory
	// store, which loses annotations on restart.
	Path string `mapstructure:"path"`
}
