package store

import (
	"testing"
	"time"

	"github.com/cognicore/toolcat/pkg/toolcat/catalog"
)

func TestNewIDIsSortable(t *testing.T) {
	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	a := NewID(at)
	b := NewID(at)
	c := NewID(at.Add(time.Second))
	if !(a < b && b < c) {
		t.Fatalf("ids not increasing: %s %s %s", a, b, c)
	}
}

func TestSnapshotCatalogRoundTrip(t *testing.T) {
	c := catalog.New()
	c.Add(catalog.Entry{Name: "a", Category: "video"})
	c.Add(catalog.Entry{Name: "b", Category: "chat"})
	c.Add(catalog.Entry{Name: "c", Category: "video"})

	snap := NewSnapshot("tools.xlsx", time.Now(), c, nil, nil)
	if len(snap.Entries) != 3 {
		t.Fatalf("entries = %d", len(snap.Entries))
	}
	back := snap.Catalog()
	cats := back.Categories()
	if len(cats) != 2 || cats[0] != "video" {
		t.Errorf("categories = %v", cats)
	}
	if got := back.Entries("video"); got[1].Name != "c" {
		t.Errorf("order lost: %v", got)
	}
}

func TestCopySnapshotIsDeep(t *testing.T) {
	r := 4.0
	snap := Snapshot{
		Entries:   []catalog.Entry{{Name: "a"}},
		Tutorials: catalog.Tutorials{"a": {{Title: "t", Tags: []string{"x"}, Rating: &r}}},
	}
	cp := CopySnapshot(snap)
	cp.Entries[0].Name = "changed"
	cp.Tutorials["a"][0].Tags[0] = "changed"
	*cp.Tutorials["a"][0].Rating = 1

	if snap.Entries[0].Name != "a" || snap.Tutorials["a"][0].Tags[0] != "x" || r != 4 {
		t.Errorf("copy aliases the original")
	}
}
