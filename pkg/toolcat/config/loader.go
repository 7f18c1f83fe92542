package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/cognicore/toolcat/internal/logging"
	"github.com/cognicore/toolcat/pkg/toolcat/catalog"
	"github.com/cognicore/toolcat/pkg/toolcat/classify"
	"github.com/cognicore/toolcat/pkg/toolcat/ingest"
	"github.com/cognicore/toolcat/pkg/toolcat/internalerr"
	"github.com/cognicore/toolcat/pkg/toolcat/normalize"
	"github.com/cognicore/toolcat/pkg/toolcat/quality"
)

// Loader constructs the ingestion components from a Config.
type Loader struct {
	Config  *Config
	Logger  logging.Logger
	Metrics *ingest.Metrics
	Now     func() time.Time
}

// Components holds the constructed components.
type Components struct {
	Countries *normalize.CountryTable
	Rules     *classify.Rules
	Semantic  *classify.Embedder
	Fallback  *classify.Model // nil when no trained model is present
	Hybrid    *classify.Hybrid
	Gate      *quality.Gate
	Pipeline  *ingest.Pipeline
}

// Load builds every component. A missing fallback model is logged and
// skipped; any other failure is returned.
func (l *Loader) Load() (*Components, error) {
	cfg := l.Config
	if cfg == nil {
		var err error
		if cfg, err = Default(); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logging.OrNop(l.Logger)

	comp := &Components{
		Countries: normalize.NewCountryTable(cfg.Countries),
		Rules:     classify.NewRules(cfg.Categories),
		Gate: &quality.Gate{
			Required:     []string{catalog.ColName},
			FutureWindow: cfg.Quality.FutureWindow,
		},
	}

	sem, err := classify.NewEmbedder(cfg.Semantic.Labels, classify.EmbedderOptions{
		Dim:      cfg.Semantic.Dim,
		MemoSize: cfg.Semantic.MemoSize,
	})
	if err != nil {
		return nil, fmt.Errorf("load semantic model: %w", err)
	}
	comp.Semantic = sem

	model, err := classify.LoadModel(cfg.ModelFile())
	switch {
	case err == nil:
		comp.Fallback = model
	case errors.Is(err, internalerr.ErrNotFound):
		log.Info("no fallback model, unclassifiable rows get the default category",
			logging.String("path", cfg.ModelFile()))
	default:
		return nil, fmt.Errorf("load fallback model: %w", err)
	}

	var fallback classify.Fallback
	if comp.Fallback != nil {
		fallback = comp.Fallback
	}
	comp.Hybrid = classify.NewHybrid(comp.Rules, comp.Semantic, fallback, cfg.Thresholds)

	comp.Pipeline = ingest.NewPipeline(ingest.Options{
		Countries:       comp.Countries,
		Classifier:      comp.Hybrid,
		Gate:            comp.Gate,
		DefaultCategory: cfg.DefaultCategory,
		Now:             l.Now,
		Logger:          log,
		Metrics:         l.Metrics,
	})
	return comp, nil
}
