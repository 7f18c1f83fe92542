// Package config loads the directory's tables and policy values and
// builds the ingestion components from them.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/toolcat/pkg/toolcat/classify"
	"github.com/cognicore/toolcat/pkg/toolcat/internalerr"
	"github.com/cognicore/toolcat/pkg/toolcat/normalize"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ModelFileName is the fallback model file inside the security dir.
const ModelFileName = "text_classifier.json"

// Config is the full configuration document. Tables are ordered
// sequences; their order is the tie-break order of the lookups.
type Config struct {
	Countries       []normalize.Country `yaml:"countries"`
	Categories      []classify.Category `yaml:"categories"`
	Semantic        Semantic            `yaml:"semantic"`
	Thresholds      classify.Thresholds `yaml:"thresholds"`
	RequiredColumns []string            `yaml:"required_columns"`
	DefaultCategory string              `yaml:"default_category"`
	Quality         Quality             `yaml:"quality"`
	Cache           Cache               `yaml:"cache"`
	Paths           Paths               `yaml:"paths"`
	ModelPath       string              `yaml:"model_path"`
	Log             Log                 `yaml:"log"`
}

// Semantic configures the embedding classifier.
type Semantic struct {
	Dim      int              `yaml:"dim"`
	MemoSize int              `yaml:"memo_size"`
	Labels   []classify.Label `yaml:"labels"`
}

// Quality configures the dataset checks.
type Quality struct {
	FutureWindow time.Duration `yaml:"future_window"`
}

// Cache configures the result cache.
type Cache struct {
	TTL        time.Duration `yaml:"ttl"`
	MaxSources int           `yaml:"max_sources"`
}

// Paths are the working directories.
type Paths struct {
	DataDir     string `yaml:"data_dir"`
	SecurityDir string `yaml:"security_dir"`
	LogDir      string `yaml:"log_dir"`
}

// Log configures the logger.
type Log struct {
	Level string `yaml:"level"`
}

// envOverlay lists the environment variables that override the document.
type envOverlay struct {
	DataDir     string        `env:"DATA_DIR"`
	SecurityDir string        `env:"SECURITY_DIR"`
	LogDir      string        `env:"LOG_DIR"`
	ModelPath   string        `env:"TOOLCAT_MODEL_PATH"`
	CacheTTL    time.Duration `env:"TOOLCAT_CACHE_TTL"`
	LogLevel    string        `env:"TOOLCAT_LOG_LEVEL"`
}

// Default returns the built-in configuration.
func Default() (*Config, error) {
	return Parse(nil)
}

// Parse overlays a YAML document on the built-in defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return nil, fmt.Errorf("parse defaults: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.fillTables()
	return &cfg, nil
}

// LoadFile reads a YAML file over the defaults. An empty path returns
// the defaults.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Load reads the file, applies the environment and validates.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides paths, cache TTL and log level from the environment.
func (c *Config) ApplyEnv() error {
	ov, err := env.ParseAs[envOverlay]()
	if err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	setIf(&c.Paths.DataDir, ov.DataDir)
	setIf(&c.Paths.SecurityDir, ov.SecurityDir)
	setIf(&c.Paths.LogDir, ov.LogDir)
	setIf(&c.ModelPath, ov.ModelPath)
	setIf(&c.Log.Level, ov.LogLevel)
	if ov.CacheTTL != 0 {
		c.Cache.TTL = ov.CacheTTL
	}
	return nil
}

// ModelFile returns the fallback model path.
func (c *Config) ModelFile() string {
	if c.ModelPath != "" {
		return c.ModelPath
	}
	return filepath.Join(c.Paths.SecurityDir, ModelFileName)
}

// Validate reports every problem found, joined, wrapping
// internalerr.ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{internalerr.ErrInvalidConfig}, args...)...))
	}

	if len(c.Countries) == 0 {
		bad("countries table is empty")
	}
	if len(c.Categories) == 0 {
		bad("categories table is empty")
	}
	if len(c.Semantic.Labels) == 0 {
		bad("semantic labels are empty")
	}
	if dup := firstDuplicate(len(c.Countries), func(i int) string { return c.Countries[i].Name }); dup != "" {
		bad("duplicate country %q", dup)
	}
	if dup := firstDuplicate(len(c.Categories), func(i int) string { return c.Categories[i].Name }); dup != "" {
		bad("duplicate category %q", dup)
	}
	if !unit(c.Thresholds.Rule) || !unit(c.Thresholds.Semantic) {
		bad("thresholds must lie in [0, 1]")
	}
	if c.Cache.TTL <= 0 {
		bad("cache ttl must be positive")
	}
	if strings.TrimSpace(c.DefaultCategory) == "" {
		bad("default_category is blank")
	}
	return errors.Join(errs...)
}

func (c *Config) fillTables() {
	if len(c.Countries) == 0 {
		c.Countries = append([]normalize.Country(nil), normalize.DefaultCountries...)
	}
	if len(c.Categories) == 0 {
		c.Categories = append([]classify.Category(nil), classify.DefaultCategories...)
	}
	if len(c.Semantic.Labels) == 0 {
		c.Semantic.Labels = append([]classify.Label(nil), classify.DefaultLabels...)
	}
}

func firstDuplicate(n int, name func(int) string) string {
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		k := strings.TrimSpace(name(i))
		if _, ok := seen[k]; ok {
			return k
		}
		seen[k] = struct{}{}
	}
	return ""
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
