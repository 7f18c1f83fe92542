package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cognicore/toolcat/internal/logging"
	"github.com/cognicore/toolcat/pkg/toolcat/catalog"
	"github.com/cognicore/toolcat/pkg/toolcat/classify"
	"github.com/cognicore/toolcat/pkg/toolcat/internalerr"
	"github.com/cognicore/toolcat/pkg/toolcat/normalize"
	"github.com/cognicore/toolcat/pkg/toolcat/quality"
	"github.com/cognicore/toolcat/pkg/toolcat/trend"
)

// DefaultCategory is assigned to rows no classifier tier could place.
const DefaultCategory = "未分类"

// Classifier completes missing categories. *classify.Hybrid implements it.
type Classifier interface {
	Classify(ctx context.Context, name, description string) (classify.Decision, error)
}

// Options configures a Pipeline. Zero values select defaults.
type Options struct {
	Countries       *normalize.CountryTable
	Classifier      Classifier
	Gate            *quality.Gate
	DefaultCategory string
	Now             func() time.Time
	Logger          logging.Logger
	Metrics         *Metrics
}

// Pipeline is safe for concurrent use when its collaborators are.
type Pipeline struct {
	countries       *normalize.CountryTable
	classifier      Classifier
	gate            *quality.Gate
	defaultCategory string
	now             func() time.Time
	log             logging.Logger
	metrics         *Metrics
}

// NewPipeline creates an ingestion pipeline with the given components.
func NewPipeline(opts Options) *Pipeline {
	p := &Pipeline{
		countries:       opts.Countries,
		classifier:      opts.Classifier,
		gate:            opts.Gate,
		defaultCategory: opts.DefaultCategory,
		now:             opts.Now,
		log:             logging.OrNop(opts.Logger),
		metrics:         opts.Metrics,
	}
	if p.countries == nil {
		p.countries = normalize.NewCountryTable(normalize.DefaultCountries)
	}
	if p.gate == nil {
		p.gate = quality.NewGate()
	}
	if p.defaultCategory == "" {
		p.defaultCategory = DefaultCategory
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// Result is the outcome of a run.
type Result struct {
	Catalog *catalog.Catalog
	Defects []catalog.Defect
	Report  quality.Report
}

// record is a row between normalization and assembly.
type record struct {
	row           int
	entry         catalog.Entry
	needsCategory bool
}

// backfill lists the columns a run can do without, and the value it
// substitutes for each.
func backfill(col string, today time.Time) (any, bool) {
	switch col {
	case catalog.ColPopularity:
		return 0, true
	case catalog.ColLastUpdated:
		return today, true
	case catalog.ColCategory:
		return nil, true
	default:
		return nil, false
	}
}

// Run processes one full table. The returned error is non-nil only when
// ctx is done; data problems are reported in Result.Defects.
func (p *Pipeline) Run(ctx context.Context, table catalog.Table, required []string) (Result, error) {
	start := time.Now()
	now := p.now()
	res := Result{Catalog: catalog.New()}

	// 1. Column presence.
	fill, defects, ok := p.checkColumns(table, required, normalize.Today(now))
	res.Defects = append(res.Defects, defects...)
	if !ok {
		p.metrics.defects(res.Defects)
		p.log.Warn("ingest aborted", logging.Int("rows", len(table.Rows)),
			logging.String("defects", formatDefects(res.Defects)))
		return res, nil
	}

	// 2-3. Row checks and normalization.
	records := make([]record, 0, len(table.Rows))
	excluded := 0
	for i, raw := range table.Rows {
		row := i + 2
		if rowDefects := p.gate.CheckRow(raw, row); len(rowDefects) > 0 {
			res.Defects = append(res.Defects, rowDefects...)
			excluded++
			continue
		}
		rec, fieldDefects := p.normalizeRow(raw, fill, row, now)
		res.Defects = append(res.Defects, fieldDefects...)
		records = append(records, rec)
	}

	// 4. Dataset checks.
	dates := make([]quality.DateRecord, len(records))
	for i, rec := range records {
		dates[i] = quality.DateRecord{Row: rec.row, Date: rec.entry.LastUpdated, Defaulted: rec.entry.DateDefaulted}
	}
	report, datasetDefects := p.gate.CheckDataset(dates, now)
	res.Report = report
	res.Defects = append(res.Defects, datasetDefects...)

	// 5. Category completion.
	for i := range records {
		if !records[i].needsCategory {
			continue
		}
		d, err := p.complete(ctx, &records[i])
		if err != nil {
			return Result{Catalog: catalog.New()}, err
		}
		if d != nil {
			res.Defects = append(res.Defects, *d)
		}
	}

	// 6-7. Dedup, trend and assembly.
	seen := make(map[catalog.EntryKey]struct{}, len(records))
	duplicates := 0
	for _, rec := range records {
		key := rec.entry.Key()
		if _, dup := seen[key]; dup {
			duplicates++
			p.log.Debug("duplicate dropped", logging.Int("row", rec.row),
				logging.String("name", key.Name), logging.String("category", key.Category))
			continue
		}
		seen[key] = struct{}{}
		rec.entry.Trend = trend.Score(rec.entry.Popularity, rec.entry.LastUpdated, now)
		res.Catalog.Add(rec.entry)
	}

	elapsed := time.Since(start)
	p.metrics.row(OutcomeKept, res.Catalog.Len())
	p.metrics.row(OutcomeExcluded, excluded)
	p.metrics.row(OutcomeDuplicate, duplicates)
	p.metrics.defects(res.Defects)
	p.metrics.observe(elapsed)

	for _, d := range res.Defects {
		p.log.Debug("defect", logging.String("kind", string(d.Kind)), logging.String("detail", d.String()))
	}
	p.log.Info("ingest complete",
		logging.Int("rows", len(table.Rows)),
		logging.Int("kept", res.Catalog.Len()),
		logging.Int("excluded", excluded),
		logging.Int("duplicates", duplicates),
		logging.Int("defects", len(res.Defects)),
		logging.Duration("elapsed", elapsed),
	)
	return res, nil
}

// checkColumns returns the backfill values for absent optional columns.
// ok is false when a required column is absent and cannot be backfilled.
func (p *Pipeline) checkColumns(table catalog.Table, required []string, today time.Time) (fill map[string]any, defects []catalog.Defect, ok bool) {
	fill = make(map[string]any)
	var missing []string
	for _, col := range required {
		if table.HasColumn(col) {
			continue
		}
		v, canFill := backfill(col, today)
		if !canFill {
			missing = append(missing, col)
			continue
		}
		fill[col] = v
		defects = append(defects, catalog.Defect{
			Kind:    catalog.DefectDataset,
			Column:  col,
			Message: "column absent, backfilled with default",
		})
	}
	if len(missing) > 0 {
		defects = append(defects, catalog.Defect{
			Kind:    catalog.DefectStructural,
			Message: fmt.Sprintf("required columns absent: %s", strings.Join(missing, ", ")),
		})
		return nil, defects, false
	}
	return fill, defects, true
}

func (p *Pipeline) normalizeRow(raw catalog.RawRow, fill map[string]any, row int, now time.Time) (record, []catalog.Defect) {
	value := func(col string) any {
		if v, ok := fill[col]; ok {
			return v
		}
		return raw[col]
	}
	var defects []catalog.Defect
	coerced := func(col, msg string) {
		defects = append(defects, catalog.Defect{Kind: catalog.DefectFieldCoercion, Row: row, Column: col, Message: msg})
	}

	e := catalog.Entry{
		Name:        normalize.Name(raw.String(catalog.ColName)),
		Category:    normalize.Name(raw.String(catalog.ColCategory)),
		Country:     p.countries.Canonicalize(raw.String(catalog.ColCountry)),
		Description: normalize.Text(raw.String(catalog.ColDescription)),
		Company:     normalize.Name(raw.String(catalog.ColCompany)),
	}
	url, ok := normalize.URL(raw.String(catalog.ColURL))
	if !ok {
		coerced(catalog.ColURL, "invalid URL, cleared")
	}
	e.URL = url

	popRaw := value(catalog.ColPopularity)
	pop, ok := normalize.Popularity(popRaw)
	if !ok && !isBlank(popRaw) {
		coerced(catalog.ColPopularity, fmt.Sprintf("non-numeric popularity %q, defaulted to %d", fmt.Sprint(popRaw), pop))
	}
	e.Popularity = pop

	e.OpenSource = normalize.OpenSource(raw[catalog.ColOpenSource]) || normalize.MentionsOpenSource(e.Description)
	e.LastUpdated, e.DateDefaulted = normalize.RecoverDate(value(catalog.ColLastUpdated), now)

	return record{row: row, entry: e, needsCategory: e.Category == ""}, defects
}

// complete assigns a category to rec. A non-nil defect is returned when
// the default category had to be used.
func (p *Pipeline) complete(ctx context.Context, rec *record) (*catalog.Defect, error) {
	if p.classifier != nil {
		d, err := p.classifier.Classify(ctx, rec.entry.Name, rec.entry.Description)
		switch {
		case err == nil:
			rec.entry.Category = d.Category
			p.metrics.stage(d.Stage)
			return nil, nil
		case !errors.Is(err, internalerr.ErrUnclassifiable):
			return nil, fmt.Errorf("classify row %d: %w", rec.row, err)
		}
	}
	p.metrics.stage(classify.StageUnclassified)
	rec.entry.Category = p.defaultCategory
	return &catalog.Defect{
		Kind:    catalog.DefectClassification,
		Row:     rec.row,
		Column:  catalog.ColCategory,
		Message: fmt.Sprintf("no classifier tier was confident, assigned %q", p.defaultCategory),
	}, nil
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func formatDefects(defects []catalog.Defect) string {
	parts := make([]string, len(defects))
	for i, d := range defects {
		parts[i] = d.String()
	}
	return strings.Join(parts, "; ")
}
