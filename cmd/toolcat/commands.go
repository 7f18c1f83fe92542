package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cognicore/toolcat/internal/logging"
	"github.com/cognicore/toolcat/pkg/toolcat"
	"github.com/cognicore/toolcat/pkg/toolcat/catalog"
	"github.com/cognicore/toolcat/pkg/toolcat/classify"
	"github.com/cognicore/toolcat/pkg/toolcat/quality"
	"github.com/cognicore/toolcat/pkg/toolcat/source"
	"github.com/cognicore/toolcat/pkg/toolcat/store"
	"github.com/cognicore/toolcat/pkg/toolcat/store/sqlite"
)

// loadResult is what load prints, as text or JSON.
type loadResult struct {
	Source     string           `json:"source"`
	SnapshotID string           `json:"snapshot_id,omitempty"`
	Entries    []catalog.Entry  `json:"entries"`
	Defects    []catalog.Defect `json:"defects"`
	Report     quality.Report   `json:"report"`
}

func runLoad(ctx context.Context, args []string, stdout io.Writer) (err error) {
	flags := flag.NewFlagSet("load", flag.ContinueOnError)
	var c common
	c.register(flags)
	dbPath := flags.String("db", "", "SQLite file that records a snapshot of every load")
	asJSON := flags.Bool("json", false, "print the result as JSON")
	if err := flags.Parse(args); err != nil {
		return err
	}

	e, err := c.setup()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, e.close()) }()

	path, err := e.resolve(flags)
	if err != nil {
		return err
	}

	var st store.Store
	if *dbPath != "" {
		if st, err = sqlite.OpenSQLite(ctx, *dbPath); err != nil {
			return err
		}
		defer st.Close()
	}

	var out loadResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".xml", ".rss", ".atom":
		table, err := readTable(path, e.log)
		if err != nil {
			return err
		}
		run, err := e.comp.Pipeline.Run(ctx, table, e.cfg.RequiredColumns)
		if err != nil {
			return err
		}
		out = loadResult{Source: path, Entries: run.Catalog.All(), Defects: run.Defects, Report: run.Report}
		if st != nil {
			snap := store.NewSnapshot(path, time.Now(), run.Catalog, nil, run.Defects)
			if out.SnapshotID, err = st.SaveSnapshot(ctx, snap); err != nil {
				return err
			}
		}
	default:
		dir, err := e.directory(st)
		if err != nil {
			return err
		}
		res, err := dir.Load(ctx, path)
		if err != nil {
			return err
		}
		out = loadResult{
			Source:     res.Source.String(),
			SnapshotID: res.SnapshotID,
			Entries:    res.Catalog.All(),
			Defects:    res.Defects,
			Report:     res.Report,
		}
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	printSummary(stdout, out)
	return nil
}

// readTable reads a non-workbook source into a tool table.
func readTable(path string, log logging.Logger) (catalog.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		table, skipped, err := source.LoadJSONL(path)
		if skipped > 0 {
			log.Warn("malformed JSONL lines skipped", logging.String("path", path), logging.Int("skipped", skipped))
		}
		return table, err
	}
	f, err := os.Open(path)
	if err != nil {
		return catalog.Table{}, err
	}
	defer f.Close()
	return source.ReadFeed(f)
}

func printSummary(w io.Writer, out loadResult) {
	counts := make(map[string]int)
	var cats []string
	for _, entry := range out.Entries {
		if counts[entry.Category] == 0 {
			cats = append(cats, entry.Category)
		}
		counts[entry.Category]++
	}
	sort.Strings(cats)

	fmt.Fprintf(w, "source: %s\n", out.Source)
	if out.SnapshotID != "" {
		fmt.Fprintf(w, "snapshot: %s\n", out.SnapshotID)
	}
	fmt.Fprintf(w, "entries: %d\n", len(out.Entries))
	for _, cat := range cats {
		fmt.Fprintf(w, "  %s\t%d\n", cat, counts[cat])
	}
	if out.Report.FutureFlag {
		fmt.Fprintf(w, "warning: %d of %d dates lie in the future\n", out.Report.FutureDates, out.Report.Rows)
	}
	fmt.Fprintf(w, "defects: %d\n", len(out.Defects))
	for _, d := range out.Defects {
		fmt.Fprintf(w, "  %s\n", d)
	}
}

func runExport(ctx context.Context, args []string, stdout io.Writer) (err error) {
	flags := flag.NewFlagSet("export", flag.ContinueOnError)
	var c common
	c.register(flags)
	outPath := flags.String("o", "", "output workbook (required)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *outPath == "" {
		return fmt.Errorf("export: -o is required")
	}

	e, err := c.setup()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, e.close()) }()

	path, err := e.resolve(flags)
	if err != nil {
		return err
	}
	dir, err := e.directory(nil)
	if err != nil {
		return err
	}
	res, err := dir.Export(ctx, path, *outPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "exported %d entries to %s (%d defects)\n", res.Catalog.Len(), *outPath, len(res.Defects))
	return nil
}

func runTrain(ctx context.Context, args []string, stdout io.Writer) (err error) {
	flags := flag.NewFlagSet("train", flag.ContinueOnError)
	var c common
	c.register(flags)
	outPath := flags.String("o", "", "model file (default: the configured model path)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	e, err := c.setup()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, e.close()) }()

	path, err := e.resolve(flags)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var table catalog.Table
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".xml", ".rss", ".atom":
		if table, err = readTable(path, e.log); err != nil {
			return err
		}
	default:
		wb, err := source.ReadWorkbook(path)
		if err != nil {
			return err
		}
		table = wb.Tools
	}

	samples := make([]classify.Sample, 0, len(table.Rows))
	for _, row := range table.Rows {
		cat := strings.TrimSpace(row.String(catalog.ColCategory))
		if cat == "" {
			continue
		}
		samples = append(samples, classify.Sample{
			Name:        row.String(catalog.ColName),
			Description: row.String(catalog.ColDescription),
			Category:    cat,
		})
	}
	model, err := classify.Train(samples)
	if err != nil {
		return err
	}

	dest := *outPath
	if dest == "" {
		dest = e.cfg.ModelFile()
	}
	if err := model.Save(dest); err != nil {
		return err
	}
	e.log.Info("model trained", logging.String("path", dest), logging.Int("samples", len(samples)))
	fmt.Fprintf(stdout, "trained %d categories from %d samples, saved to %s\n", len(model.Classes), len(samples), dest)
	return nil
}

func runTutorials(ctx context.Context, args []string, stdout io.Writer) (err error) {
	flags := flag.NewFlagSet("tutorials", flag.ContinueOnError)
	var c common
	c.register(flags)
	tool := flags.String("tool", "", "only list tutorials of this tool")
	if err := flags.Parse(args); err != nil {
		return err
	}

	e, err := c.setup()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, e.close()) }()

	path, err := e.resolve(flags)
	if err != nil {
		return err
	}
	dir, err := e.directory(nil)
	if err != nil {
		return err
	}

	var tools []string
	tuts := make(catalog.Tutorials)
	if *tool != "" {
		list, err := dir.Tutorials(ctx, path, *tool)
		if err != nil {
			return err
		}
		tools, tuts[*tool] = []string{*tool}, list
	} else {
		res, err := dir.Load(ctx, path)
		if err != nil {
			return err
		}
		for name := range res.Tutorials {
			tools = append(tools, name)
		}
		sort.Strings(tools)
		tuts = res.Tutorials
	}

	for _, name := range tools {
		fmt.Fprintf(stdout, "%s\n", name)
		for _, t := range tuts[name] {
			line := fmt.Sprintf("  %s [%s] %s", t.Title, t.Language, t.URL)
			if t.Rating != nil {
				line += fmt.Sprintf(" (%.1f)", *t.Rating)
			}
			if len(t.Tags) > 0 {
				line += " #" + strings.Join(t.Tags, " #")
			}
			fmt.Fprintln(stdout, line)
		}
	}
	return nil
}

// directory builds the facade over the configured pipeline.
func (e *env) directory(st store.Store) (*toolcat.Directory, error) {
	return toolcat.New(toolcat.Options{
		Pipeline:        e.comp.Pipeline,
		Store:           st,
		RequiredColumns: e.cfg.RequiredColumns,
		CacheTTL:        e.cfg.Cache.TTL,
		MaxSources:      e.cfg.Cache.MaxSources,
		Logger:          e.log,
	})
}
