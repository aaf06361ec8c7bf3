package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Flags holds the raw command-line values. A flag name may be registered on
// several flag sets; all of them write into the same field.
type Flags struct {
	configFile      string
	format          string
	output          string
	logLevel        string
	progress        bool
	concurrency     int
	maxFileSize     int64
	maxFiles        int
	maxIO           int
	include         string
	exclude         string
	restrictPaths   bool
	blockedPaths    string
	risk            string
	followImports   bool
	correlate       bool
	debounce        time.Duration
	otelEndpoint    string
	otelFromEnv     bool
	otelHeaders     string
	otelServiceName string
	otelTimeout     time.Duration
	otelExportPaths bool
}

var defaults = Default()

// BindGlobal registers the flags shared by every command.
func (f *Flags) BindGlobal(fs *pflag.FlagSet) {
	d := defaults
	fs.StringVar(&f.configFile, "config", "", "Path to a JSON or YAML config file.")
	fs.StringVar(&f.format, "format", d.OutputFormat, "Output format: json or text.")
	fs.StringVarP(&f.output, "output", "o", d.OutputFileName, "Output file name (default: stdout).")
	fs.StringVar(&f.logLevel, "log-level", d.LogLevel, "Log level: debug, info, warn, error, fatal, or panic.")
	fs.BoolVar(&f.progress, "progress", d.ShowProgress, "Show a progress bar while scanning.")
	fs.IntVar(&f.concurrency, "concurrency", d.ConcurrencyLevel, "Number of files read in parallel.")
	fs.Int64Var(&f.maxFileSize, "max-file-size", d.MaxFileSize, "Files larger than this many bytes are counted but not matched (0 means unlimited).")
	fs.IntVar(&f.maxFiles, "max-files", d.MaxFiles, "Stop after this many files (0 means unlimited).")
	fs.IntVar(&f.maxIO, "max-io-per-second", d.MaxIOPerSecond, "Maximum file reads per second (0 means unlimited).")
	fs.StringVar(&f.include, "include", "", "Comma-separated list of include patterns.")
	fs.StringVar(&f.exclude, "exclude", "", "Comma-separated list of exclude patterns.")
	fs.BoolVar(&f.restrictPaths, "restrict-paths", d.RestrictPaths, "Refuse to scan system directories.")
	fs.StringVar(&f.blockedPaths, "blocked-paths", strings.Join(d.BlockedPaths, ","), "Comma-separated list of directories refused by --restrict-paths.")
	fs.StringVar(&f.otelEndpoint, "otel-endpoint", d.OtelEndpoint, "OTLP/HTTP logs endpoint receiving each result.")
	fs.BoolVar(&f.otelFromEnv, "otel-from-env", d.OtelFromEnv, "Read the OTLP endpoint from OTEL_EXPORTER_OTLP_* variables.")
	fs.StringVar(&f.otelHeaders, "otel-headers", "", "Comma-separated key=value headers sent to the OTLP endpoint.")
	fs.StringVar(&f.otelServiceName, "otel-service-name", d.OtelServiceName, "service.name resource attribute.")
	fs.DurationVar(&f.otelTimeout, "otel-timeout", d.OtelTimeout, "OTLP export timeout.")
	fs.BoolVar(&f.otelExportPaths, "otel-export-paths", d.OtelExportPaths, "Include project paths in exported results.")
}

func (f *Flags) BindRisk(fs *pflag.FlagSet) {
	fs.StringVarP(&f.risk, "risk", "r", defaults.RiskCategory,
		fmt.Sprintf("Risk category: unacceptable, high, limited or minimal (default: %s).", defaults.RiskCategory))
}

func (f *Flags) BindFollowImports(fs *pflag.FlagSet) {
	fs.BoolVar(&f.followImports, "follow-imports", defaults.FollowImports, "Propagate detections to files that import a detected file.")
}

func (f *Flags) BindCorrelate(fs *pflag.FlagSet) {
	fs.BoolVar(&f.correlate, "correlate", defaults.Correlate, "Add the GDPR correlation to the report.")
}

func (f *Flags) BindDebounce(fs *pflag.FlagSet) {
	fs.DurationVar(&f.debounce, "debounce", defaults.WatchDebounce, "Quiet period before a changed project is rescanned.")
}

// ConfigFile is the value of --config.
func (f *Flags) ConfigFile() string {
	return f.configFile
}

// Apply copies every flag explicitly set on fs into cfg.
func (f *Flags) Apply(fs *pflag.FlagSet, cfg *Config) {
	fs.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "format":
			cfg.OutputFormat = f.format
		case "output":
			cfg.OutputFileName = f.output
		case "log-level":
			cfg.LogLevel = f.logLevel
		case "progress":
			cfg.ShowProgress = f.progress
		case "concurrency":
			cfg.ConcurrencyLevel = f.concurrency
		case "max-file-size":
			cfg.MaxFileSize = f.maxFileSize
		case "max-files":
			cfg.MaxFiles = f.maxFiles
		case "max-io-per-second":
			cfg.MaxIOPerSecond = f.maxIO
		case "include":
			cfg.IncludePatterns = parseCommaSeparated(f.include)
		case "exclude":
			cfg.ExcludePatterns = parseCommaSeparated(f.exclude)
		case "restrict-paths":
			cfg.RestrictPaths = f.restrictPaths
		case "blocked-paths":
			cfg.BlockedPaths = parseCommaSeparated(f.blockedPaths)
		case "risk":
			cfg.RiskCategory = f.risk
		case "follow-imports":
			cfg.FollowImports = f.followImports
		case "correlate":
			cfg.Correlate = f.correlate
		case "debounce":
			cfg.WatchDebounce = f.debounce
		case "otel-endpoint":
			cfg.OtelEndpoint = f.otelEndpoint
		case "otel-from-env":
			cfg.OtelFromEnv = f.otelFromEnv
		case "otel-headers":
			cfg.OtelHeaders = parseHeaders(f.otelHeaders)
		case "otel-service-name":
			cfg.OtelServiceName = f.otelServiceName
		case "otel-timeout":
			cfg.OtelTimeout = f.otelTimeout
		case "otel-export-paths":
			cfg.OtelExportPaths = f.otelExportPaths
		}
	})
}
