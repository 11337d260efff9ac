package sources

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// readSemicolonCSV parses the semicolon-separated open-data exports into
// header-keyed row maps. The portals ship UTF-8 with an occasional BOM and
// ragged trailing columns, so the reader stays permissive.
func readSemicolonCSV(blob []byte) ([]map[string]string, error) {
	blob = bytes.TrimPrefix(blob, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(blob))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv parse: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv parse: empty file")
	}

	header := records[0]
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	out := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(record) {
				row[h] = record[i]
			}
		}
		out = append(out, row)
	}

	return out, nil
}
