package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/jeanpaul/unifind/internal/kv"
	"github.com/jeanpaul/unifind/internal/search"
)

// Config is the full unifind configuration.
type Config struct {
	API     APIConfig     `yaml:"api" mapstructure:"api"`
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
}

// APIConfig points at the university directory.
type APIConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

type StorageConfig struct {
	Backend    string `yaml:"backend" mapstructure:"backend"`
	Namespace  string `yaml:"namespace" mapstructure:"namespace"`
	Dir        string `yaml:"dir" mapstructure:"dir"`
	SQLitePath string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
	RedisURL   string `yaml:"redis_url" mapstructure:"redis_url"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	File   string `yaml:"file" mapstructure:"file"`
}

type OutputConfig struct {
	Colors bool `yaml:"colors" mapstructure:"colors"`
}

var envVarRe = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)

func expandEnv(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{BaseURL: search.DefaultBaseURL},
		Storage: StorageConfig{
			Backend:   kv.BackendFile,
			Namespace: "unifind",
		},
		Log:    LogConfig{Level: "info", Format: "text"},
		Output: OutputConfig{Colors: true},
	}
}

// Dir returns the directory config.yaml is looked up in.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "unifind")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "unifind")
}

// Load reads configuration from file (cfgFile, or config.yaml in the search
// paths), UNIFIND_* environment variables and any flags already bound to v.
// Passing a nil v uses the global viper instance.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if v == nil {
		v = viper.GetViper()
	}
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(Dir())
	}

	v.SetEnvPrefix("UNIFIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Storage.RedisURL = expandEnv(cfg.Storage.RedisURL)
	cfg.API.BaseURL = expandEnv(cfg.API.BaseURL)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// are absent from the file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("storage.namespace", cfg.Storage.Namespace)
	v.SetDefault("storage.dir", cfg.Storage.Dir)
	v.SetDefault("storage.sqlite_path", cfg.Storage.SQLitePath)
	v.SetDefault("storage.redis_url", cfg.Storage.RedisURL)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("output.colors", cfg.Output.Colors)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("config: api.base_url is required")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("config: api.base_url %q must be an http(s) URL", c.API.BaseURL)
	}
	if !slices.Contains(kv.Backends, c.Storage.Backend) {
		return fmt.Errorf("config: storage.backend %q is invalid (must be one of %s)",
			c.Storage.Backend, strings.Join(kv.Backends, ", "))
	}
	if c.Storage.Backend == kv.BackendRedis && c.Storage.RedisURL == "" {
		return fmt.Errorf("config: storage backend redis requires storage.redis_url")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	case "":
		c.Log.Level = "info"
	default:
		return fmt.Errorf("config: log.level %q is invalid", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	case "":
		c.Log.Format = "text"
	default:
		return fmt.Errorf("config: log.format %q is invalid (must be text or json)", c.Log.Format)
	}
	return nil
}

// KVOptions converts the storage section for kv.Open.
func (c *Config) KVOptions() kv.Options {
	return kv.Options{
		Backend:    c.Storage.Backend,
		Dir:        c.Storage.Dir,
		SQLitePath: c.Storage.SQLitePath,
		RedisURL:   c.Storage.RedisURL,
	}
}
