package common

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Paths   PathsConfig   `yaml:"paths" toml:"paths"`
	Extract ExtractConfig `yaml:"extract" toml:"extract"`
	Log     LogConfig     `yaml:"log" toml:"log"`
}

// PathsConfig holds input directories and flat-file outputs
type PathsConfig struct {
	PDFDir              string `yaml:"pdf_dir" toml:"pdf_dir"`
	HTMLDir             string `yaml:"html_dir" toml:"html_dir"`
	OutputDir           string `yaml:"output_dir" toml:"output_dir"`
	RawSpecsFile        string `yaml:"raw_specs_file" toml:"raw_specs_file"`
	NormalizedSpecsFile string `yaml:"normalized_specs_file" toml:"normalized_specs_file"`
	ListingsFile        string `yaml:"listings_file" toml:"listings_file"`
	ContextFile         string `yaml:"context_file" toml:"context_file"`
	ReportFile          string `yaml:"report_file" toml:"report_file"`
	WorkbookFile        string `yaml:"workbook_file" toml:"workbook_file"`
	SchemaFile          string `yaml:"schema_file" toml:"schema_file"`
	MetricsFile         string `yaml:"metrics_file" toml:"metrics_file"`
}

// ExtractConfig holds document extraction settings
type ExtractConfig struct {
	Workers           int           `yaml:"workers" toml:"workers"`
	PDFToTextFallback bool          `yaml:"pdftotext_fallback" toml:"pdftotext_fallback"`
	PDFToTextBin      string        `yaml:"pdftotext_bin" toml:"pdftotext_bin"`
	Timeout           time.Duration `yaml:"timeout" toml:"timeout"`
	KeepRawText       bool          `yaml:"keep_raw_text" toml:"keep_raw_text"`
	MaxPages          int           `yaml:"max_pages" toml:"max_pages"`
	BreakerFailures   int           `yaml:"breaker_failures" toml:"breaker_failures"`
	BreakerCooldown   time.Duration `yaml:"breaker_cooldown" toml:"breaker_cooldown"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
}

func defaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			PDFDir:    "data/pdfs",
			HTMLDir:   "data/pages",
			OutputDir: "data",
		},
		Extract: ExtractConfig{
			Workers:      runtime.NumCPU(),
			PDFToTextBin: "pdftotext",
			KeepRawText:  true,
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	cfg := defaultConfig()
	cfg.applyEnv()
	_ = cfg.resolvePaths()
	return cfg
}

// LoadConfigFile reads a YAML (or, for a .toml extension, TOML) config file and
// lets environment variables override it. An empty path behaves like LoadConfig.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		path, err := homedir.Expand(path)
		if err != nil {
			return nil, NewAppError("CONFIG_ERROR", "expand config path", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, NewAppError("CONFIG_ERROR", "read config file", err)
		}
		unmarshal := yaml.Unmarshal
		if strings.EqualFold(filepath.Ext(path), ".toml") {
			unmarshal = toml.Unmarshal
		}
		if err := unmarshal(data, cfg); err != nil {
			return nil, NewAppError("CONFIG_ERROR", fmt.Sprintf("parse config file %s", path), err)
		}
	}
	cfg.applyEnv()
	if err := cfg.resolvePaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Paths.PDFDir = getEnv("PDF_DIR", c.Paths.PDFDir)
	c.Paths.HTMLDir = getEnv("HTML_DIR", c.Paths.HTMLDir)
	c.Paths.OutputDir = getEnv("OUTPUT_DIR", c.Paths.OutputDir)
	c.Paths.RawSpecsFile = getEnv("RAW_SPECS_FILE", c.Paths.RawSpecsFile)
	c.Paths.NormalizedSpecsFile = getEnv("NORMALIZED_SPECS_FILE", c.Paths.NormalizedSpecsFile)
	c.Paths.ListingsFile = getEnv("LISTINGS_FILE", c.Paths.ListingsFile)
	c.Paths.ContextFile = getEnv("CONTEXT_FILE", c.Paths.ContextFile)
	c.Paths.ReportFile = getEnv("REPORT_FILE", c.Paths.ReportFile)
	c.Paths.WorkbookFile = getEnv("WORKBOOK_FILE", c.Paths.WorkbookFile)
	c.Paths.SchemaFile = getEnv("SCHEMA_FILE", c.Paths.SchemaFile)
	c.Paths.MetricsFile = getEnv("METRICS_FILE", c.Paths.MetricsFile)

	c.Extract.Workers = getEnvAsInt("WORKERS", c.Extract.Workers)
	c.Extract.PDFToTextFallback = getEnvAsBool("PDFTOTEXT_FALLBACK", c.Extract.PDFToTextFallback)
	c.Extract.PDFToTextBin = getEnv("PDFTOTEXT_BIN", c.Extract.PDFToTextBin)
	c.Extract.Timeout = getEnvAsDuration("EXTRACT_TIMEOUT", c.Extract.Timeout)
	c.Extract.KeepRawText = getEnvAsBool("KEEP_RAW_TEXT", c.Extract.KeepRawText)
	c.Extract.MaxPages = getEnvAsInt("MAX_PAGES", c.Extract.MaxPages)
	c.Extract.BreakerFailures = getEnvAsInt("PDFTOTEXT_BREAKER_FAILURES", c.Extract.BreakerFailures)
	c.Extract.BreakerCooldown = getEnvAsDuration("PDFTOTEXT_BREAKER_COOLDOWN", c.Extract.BreakerCooldown)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
}

// resolvePaths expands a leading ~ in every path and fills unset output files
// from OutputDir.
func (c *Config) resolvePaths() error {
	p := &c.Paths
	for _, ref := range []*string{
		&p.PDFDir, &p.HTMLDir, &p.OutputDir, &p.RawSpecsFile, &p.NormalizedSpecsFile,
		&p.ListingsFile, &p.ContextFile, &p.ReportFile, &p.WorkbookFile, &p.SchemaFile, &p.MetricsFile,
	} {
		expanded, err := homedir.Expand(*ref)
		if err != nil {
			return NewAppError("CONFIG_ERROR", fmt.Sprintf("expand path %q", *ref), err)
		}
		*ref = expanded
	}

	def := func(p *string, name string) {
		if *p == "" {
			*p = filepath.Join(c.Paths.OutputDir, name)
		}
	}
	def(&c.Paths.RawSpecsFile, "laptop_specs_complete.json")
	def(&c.Paths.NormalizedSpecsFile, "laptop_specs_normalized.json")
	def(&c.Paths.ListingsFile, "laptop_listings.json")
	def(&c.Paths.ContextFile, "laptop_context.json")
	def(&c.Paths.ReportFile, "laptop_specs_report.txt")
	def(&c.Paths.WorkbookFile, "laptop_specs.xlsx")
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator().
		Field("PDF_DIR", c.Paths.PDFDir, Required).
		Field("OUTPUT_DIR", c.Paths.OutputDir, Required).
		Field("WORKERS", c.Extract.Workers, Positive).
		Field("PDFTOTEXT_BREAKER_FAILURES", c.Extract.BreakerFailures, NonNegative).
		Field("MAX_PAGES", c.Extract.MaxPages, NonNegative).
		Field("LOG_LEVEL", strings.ToLower(c.Log.Level), OneOf("debug", "info", "warn", "error"))
	if c.Extract.PDFToTextFallback {
		v.Field("PDFTOTEXT_BIN", c.Extract.PDFToTextBin, Required)
	}
	return ValidateAndReturnError(v)
}
