// Package quality implements the row and dataset checks of the
// ingestion pipeline. Findings are returned as defects, never as errors.
package quality

import (
	"fmt"
	"strings"
	"time"

	"github.com/cognicore/toolcat/pkg/toolcat/catalog"
)

// DefaultFutureWindow is how far past the run date a date may lie before
// the dataset is flagged.
const DefaultFutureWindow = 365 * 24 * time.Hour

// Gate holds the quality policy.
type Gate struct {
	// Required are the per-row fields that must be non-blank.
	Required []string
	// FutureWindow bounds plausible dates; zero means DefaultFutureWindow.
	FutureWindow time.Duration
}

// NewGate returns a gate requiring a tool name.
func NewGate() *Gate {
	return &Gate{Required: []string{catalog.ColName}, FutureWindow: DefaultFutureWindow}
}

// CheckRow reports the required fields missing from a row. row is the
// 1-based spreadsheet row.
func (g *Gate) CheckRow(r catalog.RawRow, row int) []catalog.Defect {
	var defects []catalog.Defect
	for _, col := range g.Required {
		if strings.TrimSpace(r.String(col)) == "" {
			defects = append(defects, catalog.Defect{
				Kind:    catalog.DefectRow,
				Row:     row,
				Column:  col,
				Message: "required field is blank, row excluded",
			})
		}
	}
	return defects
}

// DateRecord is one normalized row date as seen by the dataset check.
type DateRecord struct {
	Row       int
	Date      time.Time
	Defaulted bool
}

// Report summarizes the dataset-level findings.
type Report struct {
	Rows             int  `json:"rows"`
	UnparseableDates int  `json:"unparseable_dates"`
	FutureDates      int  `json:"future_dates"`
	FutureFlag       bool `json:"future_flag"`
}

// CheckDataset counts defaulted dates and flags dates more than the
// future window past now. Both findings are informational.
func (g *Gate) CheckDataset(records []DateRecord, now time.Time) (Report, []catalog.Defect) {
	window := g.FutureWindow
	if window <= 0 {
		window = DefaultFutureWindow
	}
	limit := now.Add(window)

	rep := Report{Rows: len(records)}
	var defects []catalog.Defect
	for _, rec := range records {
		if rec.Defaulted {
			rep.UnparseableDates++
			defects = append(defects, catalog.Defect{
				Kind:    catalog.DefectFieldCoercion,
				Row:     rec.Row,
				Column:  catalog.ColLastUpdated,
				Message: "unparseable date, defaulted to run date",
			})
			continue
		}
		if rec.Date.After(limit) {
			rep.FutureDates++
		}
	}
	rep.FutureFlag = rep.FutureDates > 0

	if rep.UnparseableDates > 0 {
		defects = append(defects, catalog.Defect{
			Kind:    catalog.DefectDataset,
			Column:  catalog.ColLastUpdated,
			Message: fmt.Sprintf("%d of %d dates unparseable", rep.UnparseableDates, rep.Rows),
		})
	}
	if rep.FutureFlag {
		defects = append(defects, catalog.Defect{
			Kind:    catalog.DefectDataset,
			Column:  catalog.ColLastUpdated,
			Message: fmt.Sprintf("%d dates more than %s in the future", rep.FutureDates, window),
		})
	}
	return rep, defects
}
