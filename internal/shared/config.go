package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Converter ConverterConfig `toml:"converter"`
	Database  DatabaseConfig  `toml:"database"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// ConverterConfig contains settings for the external downloader and
// transcoder plus the timing budget of one conversion request.
type ConverterConfig struct {
	YtdlpPath           string  `toml:"ytdlp_path"`
	FfmpegPath          string  `toml:"ffmpeg_path"`
	TempDir             string  `toml:"temp_dir"`
	HeadersPath         string  `toml:"headers_path"`
	TotalTimeoutSecs    int     `toml:"total_timeout_seconds"`
	ProbeTimeoutSecs    int     `toml:"probe_timeout_seconds"`
	AttemptTimeoutSecs  int     `toml:"attempt_timeout_seconds"`
	CleanupGraceSecs    int     `toml:"cleanup_grace_seconds"`
	KillGraceSecs       int     `toml:"kill_grace_seconds"`
	RateLimitPerSecond  float64 `toml:"rate_limit_per_second"`
	RateLimitBurst      int     `toml:"rate_limit_burst"`
	JanitorIntervalMins int     `toml:"janitor_interval_minutes"`
	JanitorTTLMins      int     `toml:"janitor_ttl_minutes"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// TotalTimeout is the overall deadline for one conversion request.
func (c ConverterConfig) TotalTimeout() time.Duration {
	return time.Duration(c.TotalTimeoutSecs) * time.Second
}

// ProbeTimeout is the sub-deadline for the metadata-only probe call.
func (c ConverterConfig) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutSecs) * time.Second
}

// AttemptTimeout bounds a single download strategy attempt.
func (c ConverterConfig) AttemptTimeout() time.Duration {
	return time.Duration(c.AttemptTimeoutSecs) * time.Second
}

// CleanupGrace is how long a served file lingers before deletion.
func (c ConverterConfig) CleanupGrace() time.Duration {
	return time.Duration(c.CleanupGraceSecs) * time.Second
}

// KillGrace is the delay between a graceful interrupt and a forced kill of a
// child process.
func (c ConverterConfig) KillGrace() time.Duration {
	return time.Duration(c.KillGraceSecs) * time.Second
}

// JanitorInterval is the sweep period for orphaned temp files.
func (c ConverterConfig) JanitorInterval() time.Duration {
	return time.Duration(c.JanitorIntervalMins) * time.Minute
}

// JanitorTTL is the age past which an orphaned temp file is removed.
func (c ConverterConfig) JanitorTTL() time.Duration {
	return time.Duration(c.JanitorTTLMins) * time.Minute
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
