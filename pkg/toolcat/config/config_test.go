package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/toolcat/pkg/toolcat/catalog"
	"github.com/cognicore/toolcat/pkg/toolcat/classify"
	"github.com/cognicore/toolcat/pkg/toolcat/internalerr"
	"github.com/cognicore/toolcat/pkg/toolcat/normalize"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, classify.DefaultThresholds, cfg.Thresholds)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, catalog.ToolColumns, cfg.RequiredColumns)
	assert.Equal(t, "未分类", cfg.DefaultCategory)
	assert.Equal(t, 365*24*time.Hour, cfg.Quality.FutureWindow)
	assert.Equal(t, len(normalize.DefaultCountries), len(cfg.Countries))
	assert.Equal(t, classify.DefaultCategories[0].Name, cfg.Categories[0].Name)
	assert.Equal(t, filepath.Join("security", ModelFileName), cfg.ModelFile())
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
countries:
  - name: 日本
    aliases: [japan, 日本]
    codes: [jp]
  - name: 美国
    aliases: [usa]
thresholds:
  rule: 0.5
cache:
  ttl: 30m
`))
	require.NoError(t, err)

	require.Len(t, cfg.Countries, 2)
	assert.Equal(t, "日本", cfg.Countries[0].Name, "table order is kept")
	assert.Equal(t, []string{"jp"}, cfg.Countries[0].Codes)
	assert.Equal(t, 0.5, cfg.Thresholds.Rule)
	assert.Equal(t, 0.7, cfg.Thresholds.Semantic, "untouched keys keep defaults")
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.NotEmpty(t, cfg.Categories)
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("countries: [unclosed"))
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/toolcat.yaml")
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/data")
	t.Setenv("SECURITY_DIR", "/srv/sec")
	t.Setenv("TOOLCAT_CACHE_TTL", "5m")
	t.Setenv("TOOLCAT_LOG_LEVEL", "debug")

	cfg, err := Default()
	require.NoError(t, err)
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "/srv/data", cfg.Paths.DataDir)
	assert.Equal(t, "logs", cfg.Paths.LogDir)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, filepath.Join("/srv/sec", ModelFileName), cfg.ModelFile())

	t.Setenv("TOOLCAT_MODEL_PATH", "/models/m.json")
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "/models/m.json", cfg.ModelFile())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toolcat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_category: 其他工具\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "其他工具", cfg.DefaultCategory)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty countries", func(c *Config) { c.Countries = nil }},
		{"duplicate country", func(c *Config) { c.Countries = append(c.Countries, c.Countries[0]) }},
		{"duplicate category", func(c *Config) { c.Categories = append(c.Categories, c.Categories[1]) }},
		{"rule threshold", func(c *Config) { c.Thresholds.Rule = 1.5 }},
		{"semantic threshold", func(c *Config) { c.Thresholds.Semantic = -0.1 }},
		{"ttl", func(c *Config) { c.Cache.TTL = 0 }},
		{"default category", func(c *Config) { c.DefaultCategory = " " }},
		{"labels", func(c *Config) { c.Semantic.Labels = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Default()
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), internalerr.ErrInvalidConfig)
		})
	}
}
