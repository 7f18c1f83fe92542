package catalog

import "strings"

// Source column names of the "Tutorials" sheet.
const (
	ColTutorialID        = "TutorialID"
	ColRelatedTool       = "RelatedTool"
	ColTitle             = "Title"
	ColTutorialURL       = "URL"
	ColType              = "Type"
	ColDifficultyLevel   = "DifficultyLevel"
	ColDuration          = "Duration"
	ColRating            = "Rating"
	ColLanguage          = "Language"
	ColTags              = "Tags"
	ColVersionCompatible = "VersionCompatible"
	ColAuthor            = "Author"
)

// TutorialColumns lists the "Tutorials" sheet columns in workbook order.
var TutorialColumns = []string{
	ColTutorialID, ColRelatedTool, ColTitle, ColTutorialURL, ColType,
	ColDifficultyLevel, ColDuration, ColRating, ColLanguage, ColTags,
	ColVersionCompatible, ColAuthor,
}

// DefaultTutorialLanguage is used when a tutorial row has no language.
const DefaultTutorialLanguage = "中文"

// Tutorial is a learning resource attached to a tool by name.
type Tutorial struct {
	ID          string   `json:"id"`
	RelatedTool string   `json:"related_tool"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Type        string   `json:"type"`
	Difficulty  string   `json:"difficulty"`
	Duration    string   `json:"duration"`
	Rating      *float64 `json:"rating,omitempty"`
	Language    string   `json:"language"`
	Tags        []string `json:"tags"`
	Version     string   `json:"version"`
	Author      string   `json:"author"`
}

// Tutorials maps a tool name to its tutorials in source order.
type Tutorials map[string][]Tutorial

// SplitTags splits a tag cell on ASCII or full-width commas, trimming
// each tag and dropping blanks.
func SplitTags(cell string) []string {
	fields := strings.FieldsFunc(cell, func(r rune) bool { return r == ',' || r == '，' })
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := strings.Join(strings.Fields(f), " "); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// JoinTags renders tags the way the workbook stores them.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
