// Package source reads raw rows from the directory's collaborators: the
// curated workbook, JSONL dumps and tool-launch feeds. It also writes
// the normalized workbook back out.
package source

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cognicore/toolcat/pkg/toolcat/catalog"
	"github.com/cognicore/toolcat/pkg/toolcat/internalerr"
	"github.com/cognicore/toolcat/pkg/toolcat/normalize"
)

// Sheet names of the workbook.
const (
	ToolsSheet     = "Tools"
	TutorialsSheet = "Tutorials"
)

// Workbook is the raw content of a directory workbook.
type Workbook struct {
	Tools     catalog.Table
	Tutorials catalog.Table
}

// Identity identifies a version of a source file for caching.
type Identity struct {
	Path    string
	ModTime time.Time
	Size    int64
}

func (id Identity) String() string {
	return fmt.Sprintf("%s@%d:%d", id.Path, id.ModTime.UnixNano(), id.Size)
}

// Identify stats path.
func Identify(path string) (Identity, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Identity{}, fmt.Errorf("stat source %s: %w", path, err)
	}
	return Identity{Path: path, ModTime: info.ModTime().UTC(), Size: info.Size()}, nil
}

// ReadWorkbook reads the Tools sheet and, when present, the Tutorials
// sheet. A missing Tools sheet wraps internalerr.ErrMissingSheet.
func ReadWorkbook(path string) (Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Workbook{}, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()
	return readWorkbook(f)
}

// ReadWorkbookFrom is ReadWorkbook over a reader.
func ReadWorkbookFrom(r io.Reader) (Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Workbook{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) (Workbook, error) {
	var wb Workbook
	if idx, _ := f.GetSheetIndex(ToolsSheet); idx < 0 {
		return wb, fmt.Errorf("sheet %q: %w", ToolsSheet, internalerr.ErrMissingSheet)
	}
	tools, err := readSheet(f, ToolsSheet)
	if err != nil {
		return wb, err
	}
	wb.Tools = tools

	if idx, _ := f.GetSheetIndex(TutorialsSheet); idx >= 0 {
		tuts, err := readSheet(f, TutorialsSheet)
		if err != nil {
			return wb, err
		}
		wb.Tutorials = tuts
	}
	return wb, nil
}

// readSheet maps every row under the header to a RawRow. Cells are read
// raw, so dates typed as dates arrive as Excel serial numbers. Blank
// cells are nil.
func readSheet(f *excelize.File, sheet string) (catalog.Table, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return catalog.Table{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return catalog.Table{Columns: []string{}}, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	t := catalog.Table{Columns: header, Rows: make([]catalog.RawRow, 0, len(rows)-1)}
	for _, cells := range rows[1:] {
		r := make(catalog.RawRow, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			var v any
			if i < len(cells) && strings.TrimSpace(cells[i]) != "" {
				v = cells[i]
			}
			r[col] = v
		}
		t.Rows = append(t.Rows, r)
	}
	return t, nil
}

// WriteWorkbook exports a catalog and its tutorials with the same sheet
// layout ReadWorkbook consumes.
func WriteWorkbook(path string, c *catalog.Catalog, tutorials catalog.Tutorials) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ToolsSheet); err != nil {
		return fmt.Errorf("create sheet %q: %w", ToolsSheet, err)
	}
	if err := writeRow(f, ToolsSheet, 1, toAny(catalog.ToolColumns)); err != nil {
		return err
	}
	for i, e := range c.All() {
		if err := writeRow(f, ToolsSheet, i+2, toolRow(e)); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(TutorialsSheet); err != nil {
		return fmt.Errorf("create sheet %q: %w", TutorialsSheet, err)
	}
	if err := writeRow(f, TutorialsSheet, 1, toAny(catalog.TutorialColumns)); err != nil {
		return err
	}
	tools := make([]string, 0, len(tutorials))
	for tool := range tutorials {
		tools = append(tools, tool)
	}
	sort.Strings(tools)
	row := 2
	for _, tool := range tools {
		for _, tut := range tutorials[tool] {
			if err := writeRow(f, TutorialsSheet, row, tutorialRow(tool, tut)); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func toolRow(e catalog.Entry) []any {
	return []any{
		e.Name,
		e.Category,
		e.Country,
		e.Company,
		e.Description,
		e.URL,
		normalize.FormatOpenSource(e.OpenSource),
		e.Popularity,
		e.LastUpdated.Format("2006-01-02"),
	}
}

func tutorialRow(tool string, t catalog.Tutorial) []any {
	var rating any
	if t.Rating != nil {
		rating = *t.Rating
	}
	return []any{
		t.ID,
		tool,
		t.Title,
		t.URL,
		t.Type,
		t.Difficulty,
		t.Duration,
		rating,
		t.Language,
		catalog.JoinTags(t.Tags),
		t.Version,
		t.Author,
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
