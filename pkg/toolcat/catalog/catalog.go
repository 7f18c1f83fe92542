// Package catalog defines the normalized directory model shared by the
// ingestion pipeline, the stores and the source adapters.
package catalog

import (
	"fmt"
	"time"
)

// Source column names of the "Tools" sheet.
const (
	ColName        = "Name"
	ColCategory    = "Category"
	ColCountry     = "Country"
	ColCompany     = "Company"
	ColDescription = "Description"
	ColURL         = "URL"
	ColOpenSource  = "Open Source"
	ColPopularity  = "Popularity"
	ColLastUpdated = "LastUpdated"
)

// ToolColumns lists the "Tools" sheet columns in workbook order.
var ToolColumns = []string{
	ColName, ColCategory, ColCountry, ColCompany, ColDescription,
	ColURL, ColOpenSource, ColPopularity, ColLastUpdated,
}

// OtherCountry is the bucket for countries that match no alias.
const OtherCountry = "其他"

// RawRow is one untyped source row, column name to raw cell value.
// Values may be missing, blank or malformed.
type RawRow map[string]any

// Has reports whether the column is present in the row.
func (r RawRow) Has(col string) bool {
	_, ok := r[col]
	return ok
}

// String returns the column value as text. Missing and nil values are "".
func (r RawRow) String(col string) string {
	v, ok := r[col]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return fmt.Sprint(t)
	}
}

// Entry is the normalized unit of the directory.
type Entry struct {
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Country     string    `json:"country"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	OpenSource  bool      `json:"open_source"`
	Company     string    `json:"company"`
	Popularity  int       `json:"popularity"`
	LastUpdated time.Time `json:"last_updated"`
	Trend       Trend     `json:"trend"`

	// DateDefaulted is set when LastUpdated was not recoverable and
	// fell back to the run date.
	DateDefaulted bool `json:"date_defaulted,omitempty"`
}

// Key is the deduplication identity of an entry.
func (e Entry) Key() EntryKey {
	return EntryKey{Name: e.Name, Category: e.Category}
}

// EntryKey identifies an entry within a catalog.
type EntryKey struct {
	Name     string
	Category string
}

// Catalog groups entries by category. Categories keep the order in which
// they were first seen and entries keep insertion order within a category.
type Catalog struct {
	order  []string
	groups map[string][]Entry
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{groups: make(map[string][]Entry)}
}

// Add appends an entry to its category group.
func (c *Catalog) Add(e Entry) {
	if c.groups == nil {
		c.groups = make(map[string][]Entry)
	}
	if _, ok := c.groups[e.Category]; !ok {
		c.order = append(c.order, e.Category)
	}
	c.groups[e.Category] = append(c.groups[e.Category], e)
}

// Categories returns category names in first-seen order.
func (c *Catalog) Categories() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Entries returns a copy of the entries of one category.
func (c *Catalog) Entries(category string) []Entry {
	if c == nil {
		return nil
	}
	src := c.groups[category]
	out := make([]Entry, len(src))
	copy(out, src)
	return out
}

// All returns every entry, grouped by category in catalog order.
func (c *Catalog) All() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, 0, c.Len())
	for _, cat := range c.order {
		out = append(out, c.groups[cat]...)
	}
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, entries := range c.groups {
		n += len(entries)
	}
	return n
}

// Empty reports whether the catalog holds no entries.
func (c *Catalog) Empty() bool {
	return c.Len() == 0
}
