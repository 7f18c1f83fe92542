package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/toolcat/pkg/toolcat/catalog"
)

var now = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func TestCheckRow(t *testing.T) {
	g := NewGate()

	assert.Empty(t, g.CheckRow(catalog.RawRow{catalog.ColName: "Kimi"}, 2))

	defects := g.CheckRow(catalog.RawRow{catalog.ColName: "  ", catalog.ColCategory: "x"}, 7)
	require.Len(t, defects, 1)
	assert.Equal(t, catalog.DefectRow, defects[0].Kind)
	assert.Equal(t, 7, defects[0].Row)
	assert.Equal(t, catalog.ColName, defects[0].Column)

	assert.Len(t, g.CheckRow(catalog.RawRow{}, 3), 1)
}

func TestCheckDatasetCountsDefaultedDates(t *testing.T) {
	g := NewGate()
	records := []DateRecord{
		{Row: 2, Date: now},
		{Row: 3, Date: now, Defaulted: true},
		{Row: 4, Date: now, Defaulted: true},
	}
	rep, defects := g.CheckDataset(records, now)

	assert.Equal(t, 3, rep.Rows)
	assert.Equal(t, 2, rep.UnparseableDates)
	assert.False(t, rep.FutureFlag)

	counts := catalog.CountByKind(defects)
	assert.Equal(t, 2, counts[catalog.DefectFieldCoercion])
	assert.Equal(t, 1, counts[catalog.DefectDataset])
}

func TestCheckDatasetFlagsFarFutureDates(t *testing.T) {
	g := NewGate()
	records := []DateRecord{
		{Row: 2, Date: now.AddDate(0, 11, 0)},
		{Row: 3, Date: now.AddDate(2, 0, 0)},
	}
	rep, defects := g.CheckDataset(records, now)

	assert.True(t, rep.FutureFlag)
	assert.Equal(t, 1, rep.FutureDates)
	require.Len(t, defects, 1)
	assert.Equal(t, catalog.DefectDataset, defects[0].Kind)
	assert.Zero(t, defects[0].Row)
}

func TestCheckDatasetEmpty(t *testing.T) {
	rep, defects := (&Gate{}).CheckDataset(nil, now)
	assert.Equal(t, Report{}, rep)
	assert.Empty(t, defects)
}
