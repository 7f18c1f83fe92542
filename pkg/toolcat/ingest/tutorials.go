package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cognicore/toolcat/pkg/toolcat/catalog"
	"github.com/cognicore/toolcat/pkg/toolcat/normalize"
)

// LoadTutorials groups tutorial rows by related tool, keeping source
// order. Rows without a related tool or a title are excluded.
func LoadTutorials(rows []catalog.RawRow) (catalog.Tutorials, []catalog.Defect) {
	out := make(catalog.Tutorials)
	var defects []catalog.Defect
	for i, raw := range rows {
		row := i + 2
		tool := normalize.Name(raw.String(catalog.ColRelatedTool))
		title := normalize.Text(raw.String(catalog.ColTitle))
		if tool == "" || title == "" {
			col := catalog.ColRelatedTool
			if tool != "" {
				col = catalog.ColTitle
			}
			defects = append(defects, catalog.Defect{
				Kind:    catalog.DefectRow,
				Row:     row,
				Column:  col,
				Message: "required field is blank, tutorial excluded",
			})
			continue
		}

		url, ok := normalize.URL(raw.String(catalog.ColTutorialURL))
		if !ok {
			defects = append(defects, catalog.Defect{
				Kind:    catalog.DefectFieldCoercion,
				Row:     row,
				Column:  catalog.ColTutorialURL,
				Message: "invalid URL, cleared",
			})
		}

		lang := normalize.Name(raw.String(catalog.ColLanguage))
		if lang == "" {
			lang = catalog.DefaultTutorialLanguage
		}

		out[tool] = append(out[tool], catalog.Tutorial{
			ID:          normalize.Name(raw.String(catalog.ColTutorialID)),
			RelatedTool: tool,
			Title:       title,
			URL:         url,
			Type:        normalize.Name(raw.String(catalog.ColType)),
			Difficulty:  normalize.Name(raw.String(catalog.ColDifficultyLevel)),
			Duration:    normalize.Name(raw.String(catalog.ColDuration)),
			Rating:      parseRating(raw[catalog.ColRating]),
			Language:    lang,
			Tags:        catalog.SplitTags(raw.String(catalog.ColTags)),
			Version:     normalize.Name(raw.String(catalog.ColVersionCompatible)),
			Author:      normalize.Name(raw.String(catalog.ColAuthor)),
		})
	}
	return out, defects
}

func parseRating(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		f = t
	case int:
		f = float64(t)
	default:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(fmt.Sprint(t)), 64)
		if err != nil {
			return nil
		}
		f = parsed
	}
	if math.IsNaN(f) {
		return nil
	}
	return &f
}
