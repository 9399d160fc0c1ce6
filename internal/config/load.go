package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config file. Environment variables (prefixed FEEDLENS_, with dots
// replaced by underscores, e.g. FEEDLENS_OLLAMA_BASE_URL) take
// precedence over values from the file.
//
// Returns a populated Config struct or an error if loading or
// validation fails.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("FEEDLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			// A missing explicit file is a hard error; the caller asked
			// for it by name.
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers default values for all optional settings.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.api_addr", "")

	v.SetDefault("ollama.base_url", "http://localhost:11434")
	v.SetDefault("ollama.model", "gemma3:4b")
	v.SetDefault("ollama.chat_path", "/api/chat")
	v.SetDefault("ollama.health_path", "/api/tags")
	v.SetDefault("ollama.probe_timeout", 3*time.Second)
	v.SetDefault("ollama.generate_timeout", 120*time.Second)
	v.SetDefault("ollama.temperature", 0.2)
	v.SetDefault("ollama.num_ctx", 4096)

	v.SetDefault("pipeline.concurrency", 3)
	v.SetDefault("pipeline.min_descendants", 5)
	v.SetDefault("pipeline.max_threads", 10)

	v.SetDefault("cache.path", "")
}

// validate runs struct-tag validation and converts validator errors
// into a readable error message.
func validate(cfg *Config) error {
	v := validator.New()
	err := v.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
	}

	return fmt.Errorf("configuration validation failed: %w", err)
}
