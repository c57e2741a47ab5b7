package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "400ms" parse
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	// Type is "memory" or "redis"
	Type     string `yaml:"type"`
	RedisURL string `yaml:"redis_url"`
}

// VocabularyConfig holds the word bank settings
type VocabularyConfig struct {
	Path string `yaml:"path"`
}

// BotConfig holds local-game bot settings
type BotConfig struct {
	ThinkDelay Duration `yaml:"think_delay"`
}

// AuthConfig holds authentication settings
type AuthConfig struct {
	SessionDuration Duration `yaml:"session_duration"`
}

// Config is the full server configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Bot        BotConfig        `yaml:"bot"`
	Auth       AuthConfig       `yaml:"auth"`
}

// Default returns the configuration used when no file or overrides are
// present
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "",
			Port: 8080,
		},
		Storage: StorageConfig{
			Type: "memory",
		},
		Vocabulary: VocabularyConfig{
			Path: "data/vocabulary.txt",
		},
		Bot: BotConfig{
			ThinkDelay: Duration(400 * time.Millisecond),
		},
		Auth: AuthConfig{
			SessionDuration: Duration(24 * time.Hour),
		},
	}
}

// Load reads configuration from the given YAML file, applying defaults
// for anything unset and environment overrides on top. A missing file is
// not an error; the defaults and environment carry the configuration.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Fall through to env overrides
		case err != nil:
			return Config{}, fmt.Errorf("reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides file values from the environment
func (c *Config) applyEnv() {
	if v := os.Getenv("C4_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("C4_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		c.Storage.Type = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Storage.RedisURL = v
	}
	if v := os.Getenv("C4_VOCABULARY_PATH"); v != "" {
		c.Vocabulary.Path = v
	}
}

// validate checks for inconsistent settings
func (c *Config) validate() error {
	switch c.Storage.Type {
	case "memory":
	case "redis":
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("storage.redis_url (or REDIS_URL) required when storage type is redis")
		}
	default:
		return fmt.Errorf("invalid storage type %q: must be 'memory' or 'redis'", c.Storage.Type)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}
