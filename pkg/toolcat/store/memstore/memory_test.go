package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cognicore/toolcat/pkg/toolcat/catalog"
	"github.com/cognicore/toolcat/pkg/toolcat/internalerr"
	"github.com/cognicore/toolcat/pkg/toolcat/store"
)

func snapshot(source string, at time.Time, names ...string) store.Snapshot {
	s := store.Snapshot{Source: source, CreatedAt: at}
	for _, n := range names {
		s.Entries = append(s.Entries, catalog.Entry{Name: n, Category: "chat"})
	}
	return s
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	st := New()
	defer st.Close()

	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	id, err := st.SaveSnapshot(ctx, snapshot("a.xlsx", at, "Kimi", "Cursor"))
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}

	got, err := st.GetSnapshot(ctx, id)
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if len(got.Entries) != 2 || got.Entries[0].Name != "Kimi" {
		t.Errorf("entries = %+v", got.Entries)
	}

	got.Entries[0].Name = "mutated"
	again, _ := st.GetSnapshot(ctx, id)
	if again.Entries[0].Name != "Kimi" {
		t.Error("store returned shared state")
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := New().GetSnapshot(context.Background(), "nope")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLatestSnapshot(t *testing.T) {
	ctx := context.Background()
	st := New()
	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	if _, ok, err := st.LatestSnapshot(ctx, "a.xlsx"); ok || err != nil {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	if _, err := st.SaveSnapshot(ctx, snapshot("a.xlsx", at.Add(time.Hour), "new")); err != nil {
		t.Fatal(err)
	}
	if _, err := st.SaveSnapshot(ctx, snapshot("a.xlsx", at, "old")); err != nil {
		t.Fatal(err)
	}
	if _, err := st.SaveSnapshot(ctx, snapshot("b.xlsx", at.Add(2*time.Hour), "other")); err != nil {
		t.Fatal(err)
	}

	latest, ok, err := st.LatestSnapshot(ctx, "a.xlsx")
	if err != nil || !ok {
		t.Fatalf("LatestSnapshot: ok=%v err=%v", ok, err)
	}
	if latest.Entries[0].Name != "new" {
		t.Errorf("latest = %q, want new", latest.Entries[0].Name)
	}
}
