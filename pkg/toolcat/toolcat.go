// Package toolcat is the entry point a UI collaborator uses: it loads a
// directory workbook through the ingestion pipeline, memoizes the result
// per source version and records a snapshot of every recomputation.
package toolcat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cognicore/toolcat/internal/logging"
	"github.com/cognicore/toolcat/pkg/toolcat/cache"
	"github.com/cognicore/toolcat/pkg/toolcat/catalog"
	"github.com/cognicore/toolcat/pkg/toolcat/ingest"
	"github.com/cognicore/toolcat/pkg/toolcat/internalerr"
	"github.com/cognicore/toolcat/pkg/toolcat/quality"
	"github.com/cognicore/toolcat/pkg/toolcat/source"
	"github.com/cognicore/toolcat/pkg/toolcat/store"
)

// Directory is the curated AI tool directory facade.
type Directory struct {
	pipeline *ingest.Pipeline
	store    store.Store
	required []string
	now      func() time.Time
	log      logging.Logger
	cache    *cache.Cache[source.Identity, *Result]
}

// Options configures a Directory. Pipeline is required; Store is
// optional.
type Options struct {
	Pipeline        *ingest.Pipeline
	Store           store.Store
	RequiredColumns []string
	CacheTTL        time.Duration
	MaxSources      int
	Now             func() time.Time
	Logger          logging.Logger
}

// Result is one computed load. It is shared between callers and must be
// treated as read-only.
type Result struct {
	Source     source.Identity
	Catalog    *catalog.Catalog
	Tutorials  catalog.Tutorials
	Defects    []catalog.Defect
	Report     quality.Report
	SnapshotID string
	ComputedAt time.Time
}

// New creates a Directory.
func New(opts Options) (*Directory, error) {
	if opts.Pipeline == nil {
		return nil, fmt.Errorf("directory: %w: pipeline is required", internalerr.ErrInvalidInput)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if len(opts.RequiredColumns) == 0 {
		opts.RequiredColumns = catalog.ToolColumns
	}
	log := logging.OrNop(opts.Logger)

	c, err := cache.New[source.Identity, *Result](cache.Options{
		TTL:        opts.CacheTTL,
		MaxSources: opts.MaxSources,
		Now:        opts.Now,
		Logger:     log,
	})
	if err != nil {
		return nil, err
	}
	return &Directory{
		pipeline: opts.Pipeline,
		store:    opts.Store,
		required: opts.RequiredColumns,
		now:      opts.Now,
		log:      log,
		cache:    c,
	}, nil
}

// Close cleanly shuts down the Directory.
func (d *Directory) Close() error {
	if d.store == nil {
		return nil
	}
	return d.store.Close()
}

// Load returns the catalog of the workbook at path. Within the cache TTL
// an unchanged file is served without recomputation.
func (d *Directory) Load(ctx context.Context, path string) (*Result, error) {
	id, err := source.Identify(path)
	if err != nil {
		return nil, err
	}
	res, _, err := d.cache.Get(ctx, id, func(ctx context.Context) (*Result, error) {
		return d.compute(ctx, id)
	})
	return res, err
}

func (d *Directory) compute(ctx context.Context, id source.Identity) (*Result, error) {
	res := &Result{Source: id, ComputedAt: d.now()}

	wb, err := source.ReadWorkbook(id.Path)
	switch {
	case errors.Is(err, internalerr.ErrMissingSheet):
		res.Catalog = catalog.New()
		res.Defects = []catalog.Defect{{Kind: catalog.DefectStructural, Message: err.Error()}}
		return res, nil
	case err != nil:
		return nil, err
	}

	run, err := d.pipeline.Run(ctx, wb.Tools, d.required)
	if err != nil {
		return nil, err
	}
	tutorials, tutDefects := ingest.LoadTutorials(wb.Tutorials.Rows)

	res.Catalog = run.Catalog
	res.Report = run.Report
	res.Tutorials = tutorials
	res.Defects = append(run.Defects, tutDefects...)

	if d.store != nil {
		snap := store.NewSnapshot(id.String(), res.ComputedAt, res.Catalog, res.Tutorials, res.Defects)
		snapID, err := d.store.SaveSnapshot(ctx, snap)
		if err != nil {
			d.log.Warn("snapshot not saved", logging.String("source", id.Path), logging.Err(err))
		} else {
			res.SnapshotID = snapID
		}
	}
	return res, nil
}

// Tutorials returns the tutorials of one tool.
func (d *Directory) Tutorials(ctx context.Context, path, tool string) ([]catalog.Tutorial, error) {
	res, err := d.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	tuts, ok := res.Tutorials[tool]
	if !ok {
		return nil, fmt.Errorf("tutorials for %q: %w", tool, internalerr.ErrNotFound)
	}
	return append([]catalog.Tutorial(nil), tuts...), nil
}

// Export loads the workbook at path and writes its normalized form to out.
func (d *Directory) Export(ctx context.Context, path, out string) (*Result, error) {
	res, err := d.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := source.WriteWorkbook(out, res.Catalog, res.Tutorials); err != nil {
		return nil, err
	}
	return res, nil
}
