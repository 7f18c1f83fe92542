package source

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cognicore/toolcat/pkg/toolcat/catalog"
)

// LoadJSONL loads one raw row per line from a JSONL file. Malformed
// lines are skipped and counted.
func LoadJSONL(path string) (table catalog.Table, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return catalog.Table{}, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSONL(f)
}

// ReadJSONL is LoadJSONL over a reader.
func ReadJSONL(r io.Reader) (table catalog.Table, skipped int, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var row catalog.RawRow
		if err := json.Unmarshal([]byte(line), &row); err != nil || row == nil {
			skipped++
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	if err := sc.Err(); err != nil {
		return table, skipped, fmt.Errorf("scan jsonl: %w", err)
	}
	return table, skipped, nil
}
