package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/cognicore/toolcat/pkg/toolcat/catalog"
)

// ReadFeed turns RSS or Atom items announcing tools into raw rows. The
// item title is the tool name; category, country and popularity are
// left for the pipeline to complete or default.
func ReadFeed(r io.Reader) (catalog.Table, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return catalog.Table{}, fmt.Errorf("parse feed: %w", err)
	}

	t := catalog.Table{Columns: catalog.ToolColumns}
	for _, it := range feed.Items {
		row := catalog.RawRow{
			catalog.ColName:        strings.TrimSpace(it.Title),
			catalog.ColDescription: firstNonBlank(it.Description, it.Content),
			catalog.ColURL:         strings.TrimSpace(it.Link),
		}
		switch {
		case it.PublishedParsed != nil:
			row[catalog.ColLastUpdated] = *it.PublishedParsed
		case it.UpdatedParsed != nil:
			row[catalog.ColLastUpdated] = *it.UpdatedParsed
		}
		if len(it.Authors) > 0 && it.Authors[0] != nil {
			row[catalog.ColCompany] = it.Authors[0].Name
		}
		if len(it.Categories) > 0 {
			row[catalog.ColCategory] = it.Categories[0]
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
