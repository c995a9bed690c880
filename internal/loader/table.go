// Package loader reads training spreadsheets (xlsx, csv or a Postgres table)
// into an in-memory Table of string cells. It does no type coercion; that is
// left to the training package.
package loader

import "strings"

// Table is a header row plus data rows. Rows may be ragged.
type Table struct {
	Source  string
	Headers []string
	Rows    [][]string
	// Lines holds the 1-based source position of each row: the sheet row,
	// the CSV line, or the result position for Postgres.
	Lines []int

	columns map[string]int
}

func newTable(source string, headers []string, rows [][]string, lines []int) Table {
	cleaned := make([]string, len(headers))
	for idx, header := range headers {
		cleaned[idx] = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	}
	return Table{
		Source:  source,
		Headers: cleaned,
		Rows:    rows,
		Lines:   lines,
		columns: normalizeHeaders(cleaned),
	}
}

// Column returns the index of the first header matching any of names, or -1.
// Matching ignores case, spaces, underscores and hyphens.
func (t Table) Column(names ...string) int {
	columns := t.columns
	if columns == nil {
		columns = normalizeHeaders(t.Headers)
	}
	for _, name := range names {
		if idx, ok := columns[normalizeHeader(name)]; ok {
			return idx
		}
	}
	return -1
}

// Line returns the source position of row i. Tables built without line
// information number rows from 1.
func (t Table) Line(i int) int {
	if i >= 0 && i < len(t.Lines) {
		return t.Lines[i]
	}
	return i + 1
}

// Value returns the trimmed cell at idx, or "" when the row is too short.
func Value(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func normalizeHeaders(headers []string) map[string]int {
	result := make(map[string]int, len(headers))
	for idx, header := range headers {
		normalized := normalizeHeader(header)
		if normalized == "" {
			continue
		}
		if _, exists := result[normalized]; !exists {
			result[normalized] = idx
		}
	}
	return result
}

func normalizeHeader(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = strings.ReplaceAll(value, " ", "")
	value = strings.ReplaceAll(value, "_", "")
	value = strings.ReplaceAll(value, "-", "")
	return value
}

func blankRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
