package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/ark-forge/mcp-eu-ai-act/regulation"
	"github.com/ark-forge/mcp-eu-ai-act/utils"
)

type Config struct {
	RiskCategory     string            `json:"risk_category" yaml:"risk_category"`
	FollowImports    bool              `json:"follow_imports" yaml:"follow_imports"`
	Correlate        bool              `json:"correlate" yaml:"correlate"`
	OutputFormat     string            `json:"output_format" yaml:"output_format"`
	OutputFileName   string            `json:"output_file_name" yaml:"output_file_name"`
	LogLevel         string            `json:"log_level" yaml:"log_level"`
	ShowProgress     bool              `json:"show_progress" yaml:"show_progress"`
	ConcurrencyLevel int               `json:"concurrency_level" yaml:"concurrency_level"`
	MaxFileSize      int64             `json:"max_file_size" yaml:"max_file_size"`
	MaxFiles         int               `json:"max_files" yaml:"max_files"`
	MaxIOPerSecond   int               `json:"max_io_per_second" yaml:"max_io_per_second"`
	IncludePatterns  []string          `json:"include_patterns" yaml:"include_patterns"`
	ExcludePatterns  []string          `json:"exclude_patterns" yaml:"exclude_patterns"`
	RestrictPaths    bool              `json:"restrict_paths" yaml:"restrict_paths"`
	BlockedPaths     []string          `json:"blocked_paths" yaml:"blocked_paths"`
	WatchDebounce    time.Duration     `json:"watch_debounce" yaml:"watch_debounce"`
	OtelEndpoint     string            `json:"otel_endpoint" yaml:"otel_endpoint"`
	OtelFromEnv      bool              `json:"otel_from_env" yaml:"otel_from_env"`
	OtelHeaders      map[string]string `json:"otel_headers" yaml:"otel_headers"`
	OtelServiceName  string            `json:"otel_service_name" yaml:"otel_service_name"`
	OtelTimeout      time.Duration     `json:"otel_timeout" yaml:"otel_timeout"`
	OtelExportPaths  bool              `json:"otel_export_paths" yaml:"otel_export_paths"`
	ConfigFile       string            `json:"-" yaml:"-"`
}

func Default() *Config {
	return &Config{
		RiskCategory:     string(regulation.DefaultTier),
		OutputFormat:     "json",
		LogLevel:         "info",
		ConcurrencyLevel: runtime.NumCPU(),
		MaxFileSize:      10 * 1024 * 1024,
		IncludePatterns:  []string{},
		ExcludePatterns:  []string{},
		BlockedPaths:     append([]string(nil), utils.DefaultBlockedPaths...),
		WatchDebounce:    300 * time.Millisecond,
		OtelHeaders:      map[string]string{},
		OtelServiceName:  "aiact",
		OtelTimeout:      5 * time.Second,
	}
}

// LoadFile overlays the settings in path. Files ending in .yaml or .yml are
// read as YAML, everything else as JSON.
func (cfg *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("invalid config file format: %w", err)
	}
	cfg.ConfigFile = path
	return nil
}

// Normalize lowercases enumerated values and fills zero values that have a
// default.
func (cfg *Config) Normalize() {
	cfg.OutputFormat = strings.ToLower(strings.TrimSpace(cfg.OutputFormat))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.RiskCategory = strings.TrimSpace(cfg.RiskCategory)
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "json"
	}
	if cfg.RiskCategory == "" {
		cfg.RiskCategory = string(regulation.DefaultTier)
	}
	if cfg.OtelServiceName == "" {
		cfg.OtelServiceName = "aiact"
	}
	if cfg.OtelHeaders == nil {
		cfg.OtelHeaders = map[string]string{}
	}
}

func (cfg *Config) Validate() error {
	if cfg.OutputFormat != "json" && cfg.OutputFormat != "text" {
		return fmt.Errorf("invalid output format: %s (json or text)", cfg.OutputFormat)
	}
	if _, err := regulation.ParseTier(cfg.RiskCategory); err != nil {
		return err
	}
	if cfg.ConcurrencyLevel <= 0 {
		return fmt.Errorf("concurrency level must be positive")
	}
	if cfg.MaxFileSize < 0 {
		return fmt.Errorf("max-file-size must be zero or positive")
	}
	if cfg.MaxFiles < 0 {
		return fmt.Errorf("max-files must be zero or positive")
	}
	if cfg.MaxIOPerSecond < 0 {
		return fmt.Errorf("max-io-per-second must be zero or positive")
	}
	if cfg.WatchDebounce < 0 {
		return fmt.Errorf("debounce must be zero or positive")
	}
	if cfg.OtelTimeout < 0 {
		return fmt.Errorf("otel-timeout must be zero or positive")
	}
	if cfg.OtelEndpoint != "" {
		if !strings.HasPrefix(cfg.OtelEndpoint, "http://") && !strings.HasPrefix(cfg.OtelEndpoint, "https://") {
			return fmt.Errorf("otel-endpoint must include scheme (http or https)")
		}
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}
	return nil
}

func parseCommaSeparated(input string) []string {
	if input == "" {
		return []string{}
	}
	items := strings.Split(input, ",")
	for i, item := range items {
		items[i] = strings.TrimSpace(item)
	}
	return items
}

func parseHeaders(input string) map[string]string {
	headers := make(map[string]string)
	if input == "" {
		return headers
	}
	items := strings.Split(input, ",")
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.SplitN(item, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}
		headers[key] = value
	}
	return headers
}

// Load builds the effective configuration: defaults, then the file named by
// --config, then every flag set explicitly on fs.
func Load(fs *pflag.FlagSet, f *Flags) (*Config, error) {
	cfg := Default()
	if f.configFile != "" {
		if err := cfg.LoadFile(f.configFile); err != nil {
			return nil, err
		}
	}
	f.Apply(fs, cfg)
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
