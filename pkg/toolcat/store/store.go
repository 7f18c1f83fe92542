// Package store persists catalog snapshots: the complete output of one
// pipeline run over one source.
package store

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/toolcat/pkg/toolcat/catalog"
)

// Store is the snapshot persistence interface.
type Store interface {
	Close() error

	// SaveSnapshot stores s and returns its ID, generating one when s.ID
	// is empty.
	SaveSnapshot(ctx context.Context, s Snapshot) (string, error)
	// GetSnapshot returns internalerr.ErrNotFound for unknown IDs.
	GetSnapshot(ctx context.Context, id string) (Snapshot, error)
	// LatestSnapshot returns the most recent snapshot of a source.
	LatestSnapshot(ctx context.Context, source string) (Snapshot, bool, error)
}

// Snapshot is an immutable record of one pipeline run.
type Snapshot struct {
	ID        string
	Source    string
	CreatedAt time.Time
	Entries   []catalog.Entry
	Tutorials catalog.Tutorials
	Defects   []catalog.Defect
}

// NewSnapshot captures a catalog in catalog order.
func NewSnapshot(source string, createdAt time.Time, c *catalog.Catalog, tutorials catalog.Tutorials, defects []catalog.Defect) Snapshot {
	return Snapshot{
		Source:    source,
		CreatedAt: createdAt.UTC(),
		Entries:   c.All(),
		Tutorials: tutorials,
		Defects:   append([]catalog.Defect(nil), defects...),
	}
}

// Catalog rebuilds the grouped catalog.
func (s Snapshot) Catalog() *catalog.Catalog {
	c := catalog.New()
	for _, e := range s.Entries {
		c.Add(e)
	}
	return c
}

var (
	idMu      sync.Mutex
	idEntropy = ulid.Monotonic(rand.Reader, 0)
)

// NewID returns a new lexically sortable snapshot ID.
func NewID(t time.Time) string {
	idMu.Lock()
	defer idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), idEntropy).String()
}

// CopySnapshot deep-copies s so callers cannot alias stored state.
func CopySnapshot(s Snapshot) Snapshot {
	out := s
	out.Entries = append([]catalog.Entry(nil), s.Entries...)
	out.Defects = append([]catalog.Defect(nil), s.Defects...)
	if s.Tutorials != nil {
		out.Tutorials = make(catalog.Tutorials, len(s.Tutorials))
		for tool, tuts := range s.Tutorials {
			cp := make([]catalog.Tutorial, len(tuts))
			for i, t := range tuts {
				cp[i] = t
				cp[i].Tags = append([]string(nil), t.Tags...)
				if t.Rating != nil {
					r := *t.Rating
					cp[i].Rating = &r
				}
			}
			out.Tutorials[tool] = cp
		}
	}
	return out
}
