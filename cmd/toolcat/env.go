package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/cognicore/toolcat/internal/logging"
	"github.com/cognicore/toolcat/pkg/toolcat/config"
	"github.com/cognicore/toolcat/pkg/toolcat/ingest"
)

// common holds the flags every command shares.
type common struct {
	configPath string
	envFile    string
	metricsOut string
}

func (c *common) register(flags *flag.FlagSet) {
	flags.StringVar(&c.configPath, "config", "", "YAML config file (optional)")
	flags.StringVar(&c.envFile, "env", ".env", "dotenv file loaded before the environment overlay")
	flags.StringVar(&c.metricsOut, "metrics", "", "write ingest metrics in text format to this file")
}

// env is what a command needs to run: config, logger, components.
type env struct {
	cfg      *config.Config
	log      logging.Logger
	registry *prometheus.Registry
	comp     *config.Components

	metricsOut string
}

func (c *common) setup() (*env, error) {
	if c.envFile != "" {
		if err := godotenv.Load(c.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", c.envFile, err)
		}
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(logging.Config{Level: cfg.Log.Level, OutputPaths: []string{"stderr"}})
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	comp, err := (&config.Loader{
		Config:  cfg,
		Logger:  log,
		Metrics: ingest.NewMetrics(reg),
	}).Load()
	if err != nil {
		return nil, fmt.Errorf("build components: %w", err)
	}
	return &env{cfg: cfg, log: log, registry: reg, comp: comp, metricsOut: c.metricsOut}, nil
}

// close flushes the logger and writes the metrics dump if requested.
func (e *env) close() error {
	_ = e.log.Sync()
	if e.metricsOut == "" {
		return nil
	}
	families, err := e.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	f, err := os.Create(e.metricsOut)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(f, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return f.Close()
}

// resolve returns the single source argument. A relative path that does
// not exist is looked up in the data dir.
func (e *env) resolve(flags *flag.FlagSet) (string, error) {
	if flags.NArg() != 1 {
		return "", fmt.Errorf("%s: exactly one source file required", flags.Name())
	}
	path := flags.Arg(0)
	if _, err := os.Stat(path); err != nil && !filepath.IsAbs(path) {
		if _, err := os.Stat(filepath.Join(e.cfg.Paths.DataDir, path)); err == nil {
			return filepath.Join(e.cfg.Paths.DataDir, path), nil
		}
	}
	return path, nil
}
