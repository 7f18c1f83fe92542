package catalog

import "fmt"

// DefectKind classifies a data-quality problem.
type DefectKind string

const (
	// DefectStructural aborts the load: a required column is absent and
	// cannot be backfilled.
	DefectStructural DefectKind = "structural"
	// DefectRow excludes a single row.
	DefectRow DefectKind = "row"
	// DefectFieldCoercion records a field that fell back to its default.
	DefectFieldCoercion DefectKind = "field_coercion"
	// DefectClassification records a row no classifier tier could place.
	DefectClassification DefectKind = "classification_ambiguity"
	// DefectDataset is a dataset-level sanity finding.
	DefectDataset DefectKind = "dataset"
)

// Defect is a human-readable finding surfaced to the caller as data.
// Row is the 1-based spreadsheet row (header is row 1); 0 means the
// finding concerns the whole dataset.
type Defect struct {
	Kind    DefectKind `json:"kind"`
	Row     int        `json:"row,omitempty"`
	Column  string     `json:"column,omitempty"`
	Message string     `json:"message"`
}

func (d Defect) String() string {
	switch {
	case d.Row > 0 && d.Column != "":
		return fmt.Sprintf("[%s] row %d, %s: %s", d.Kind, d.Row, d.Column, d.Message)
	case d.Row > 0:
		return fmt.Sprintf("[%s] row %d: %s", d.Kind, d.Row, d.Message)
	case d.Column != "":
		return fmt.Sprintf("[%s] %s: %s", d.Kind, d.Column, d.Message)
	default:
		return fmt.Sprintf("[%s] %s", d.Kind, d.Message)
	}
}

// CountByKind tallies defects per kind.
func CountByKind(defects []Defect) map[DefectKind]int {
	out := make(map[DefectKind]int)
	for _, d := range defects {
		out[d.Kind]++
	}
	return out
}
