// Package classify assigns a category to tools that arrive without one.
// rules.go implements the keyword rule engine on an Aho-Corasick automaton.
package classify

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// OtherCategory is reported by the rule engine when no keyword matches.
const OtherCategory = "其他"

// Result is a category with a confidence in [0, 1].
type Result struct {
	Category   string
	Confidence float64
}

// Category is one rule-table row: a label and the keywords that vote for it.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Rules counts keyword hits per category in a single pass over the text.
// The category with the most distinct hits wins; ties go to the category
// listed first. Confidence is hits divided by the category's keyword count.
type Rules struct {
	categories []Category
	matcher    *ahocorasick.Matcher
	owners     [][]int // keyword index -> category indexes
}

// NewRules builds the automaton from an ordered category table. Keywords
// are lower-cased; duplicates within a category count once.
func NewRules(categories []Category) *Rules {
	r := &Rules{categories: make([]Category, 0, len(categories))}

	var keywords []string
	index := make(map[string]int)
	for ci, c := range categories {
		seen := make(map[string]struct{}, len(c.Keywords))
		normalized := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			normalized = append(normalized, kw)

			ki, ok := index[kw]
			if !ok {
				ki = len(keywords)
				index[kw] = ki
				keywords = append(keywords, kw)
				r.owners = append(r.owners, nil)
			}
			r.owners[ki] = append(r.owners[ki], ci)
		}
		r.categories = append(r.categories, Category{Name: c.Name, Keywords: normalized})
	}

	if len(keywords) > 0 {
		r.matcher = ahocorasick.NewStringMatcher(keywords)
	}
	return r
}

// Classify scores name and description against the table.
func (r *Rules) Classify(name, description string) Result {
	if r.matcher == nil {
		return Result{Category: OtherCategory}
	}

	text := strings.ToLower(name + " " + description)
	hits := r.matcher.MatchThreadSafe([]byte(text))

	counts := make([]int, len(r.categories))
	seen := make(map[int]struct{}, len(hits))
	for _, ki := range hits {
		if _, dup := seen[ki]; dup || ki >= len(r.owners) {
			continue
		}
		seen[ki] = struct{}{}
		for _, ci := range r.owners[ki] {
			counts[ci]++
		}
	}

	best := -1
	for ci, n := range counts {
		if n > 0 && (best < 0 || n > counts[best]) {
			best = ci
		}
	}
	if best < 0 {
		return Result{Category: OtherCategory}
	}

	return Result{
		Category:   r.categories[best].Name,
		Confidence: float64(counts[best]) / float64(len(r.categories[best].Keywords)),
	}
}

// Categories returns the table in order.
func (r *Rules) Categories() []Category {
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out
}
