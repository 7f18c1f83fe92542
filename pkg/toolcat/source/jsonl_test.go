package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/toolcat/pkg/toolcat/catalog"
)

func TestReadJSONL(t *testing.T) {
	in := strings.Join([]string{
		`{"Name": "Kimi", "Popularity": 800}`,
		``,
		`{not json`,
		`[1, 2]`,
		`{"Name": "Cursor", "Category": "💻AI编程工具"}`,
	}, "\n")

	table, skipped, err := ReadJSONL(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Kimi", table.Rows[0].String(catalog.ColName))
	assert.Equal(t, float64(800), table.Rows[0][catalog.ColPopularity])
	assert.True(t, table.HasColumn(catalog.ColCategory))
	assert.False(t, table.HasColumn(catalog.ColURL))
}

func TestLoadJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"Name":"a"}`+"\n"), 0o644))

	table, skipped, err := LoadJSONL(path)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Len(t, table.Rows, 1)

	_, _, err = LoadJSONL(filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)
}
