package catalog

import (
	"testing"
	"time"
)

func TestCatalogPreservesOrder(t *testing.T) {
	c := New()
	c.Add(Entry{Name: "b", Category: "video"})
	c.Add(Entry{Name: "a", Category: "chat"})
	c.Add(Entry{Name: "c", Category: "video"})

	cats := c.Categories()
	if len(cats) != 2 || cats[0] != "video" || cats[1] != "chat" {
		t.Fatalf("expected [video chat], got %v", cats)
	}

	video := c.Entries("video")
	if len(video) != 2 || video[0].Name != "b" || video[1].Name != "c" {
		t.Errorf("expected insertion order b,c got %v", video)
	}

	all := c.All()
	if len(all) != 3 || all[2].Name != "a" {
		t.Errorf("All should group by category order, got %v", all)
	}
	if c.Len() != 3 {
		t.Errorf("expected Len 3, got %d", c.Len())
	}
}

func TestCatalogEntriesReturnsCopy(t *testing.T) {
	c := New()
	c.Add(Entry{Name: "a", Category: "x"})

	got := c.Entries("x")
	got[0].Name = "mutated"

	if c.Entries("x")[0].Name != "a" {
		t.Error("Entries must not expose internal storage")
	}
}

func TestNilCatalogIsEmpty(t *testing.T) {
	var c *Catalog
	if !c.Empty() || c.Categories() != nil || c.All() != nil {
		t.Error("nil catalog should behave as empty")
	}
}

func TestRawRowString(t *testing.T) {
	row := RawRow{
		"Name":        "  Kimi ",
		"Popularity":  750.0,
		"LastUpdated": time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		"Company":     nil,
	}

	tests := []struct {
		col  string
		want string
	}{
		{"Name", "  Kimi "},
		{"Popularity", "750"},
		{"LastUpdated", "2024-01-05"},
		{"Company", ""},
		{"Missing", ""},
	}
	for _, tt := range tests {
		if got := row.String(tt.col); got != tt.want {
			t.Errorf("String(%q) = %q, want %q", tt.col, got, tt.want)
		}
	}

	if !row.Has("Company") || row.Has("Missing") {
		t.Error("Has should report column presence, not value presence")
	}
}

func TestDefectString(t *testing.T) {
	d := Defect{Kind: DefectRow, Row: 3, Column: ColName, Message: "name is required"}
	if got := d.String(); got != "[row] row 3, Name: name is required" {
		t.Errorf("unexpected defect string %q", got)
	}

	counts := CountByKind([]Defect{d, d, {Kind: DefectDataset}})
	if counts[DefectRow] != 2 || counts[DefectDataset] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}
}

func TestTableHasColumn(t *testing.T) {
	withHeader := Table{Columns: []string{ColName, ColURL}}
	if !withHeader.HasColumn(ColURL) {
		t.Errorf("header column not found")
	}
	if withHeader.HasColumn(ColCountry) {
		t.Errorf("unexpected column %s", ColCountry)
	}

	headerless := Table{Rows: []RawRow{{ColName: "a"}, {ColCountry: nil}}}
	if !headerless.HasColumn(ColCountry) {
		t.Errorf("row key should count as a column")
	}
	if headerless.HasColumn(ColURL) {
		t.Errorf("unexpected column %s", ColURL)
	}
}

func TestTagsRoundTrip(t *testing.T) {
	tags := SplitTags("编程, ide,，  b  c ,")
	want := []string{"编程", "ide", "b c"}
	if len(tags) != len(want) {
		t.Fatalf("SplitTags = %q, want %q", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tag %d = %q, want %q", i, tags[i], want[i])
		}
	}
	if got := JoinTags(want); got != "编程, ide, b c" {
		t.Errorf("JoinTags = %q", got)
	}
	if again := SplitTags(JoinTags(want)); len(again) != 3 {
		t.Errorf("round trip lost tags: %q", again)
	}
}
