package loader

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"
)

func loadCSV(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, errors.Wrapf(err, "read %s", path)
	}
	return parseCSV(path, data)
}

func parseCSV(source string, data []byte) (Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, errors.Errorf("%s: file is empty", source)
		}
		return Table{}, errors.Wrapf(err, "%s: unable to read header", source)
	}

	var (
		rows  [][]string
		lines []int
	)
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Table{}, errors.Wrapf(err, "%s: unable to read CSV", source)
		}
		if len(record) == 0 || blankRow(record) {
			continue
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, record)
		lines = append(lines, line)
	}
	return newTable(source, headers, rows, lines), nil
}

// sniffDelimiter prefers ';' when the header line has no commas, which is
// how spreadsheet exports in pt-BR locales come out.
func sniffDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}
	if bytes.IndexByte(line, ',') < 0 && bytes.IndexByte(line, ';') >= 0 {
		return ';'
	}
	return ','
}
