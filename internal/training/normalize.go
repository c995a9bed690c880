package training

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"training-expiry-dashboard/internal/loader"
)

// DateOrder resolves ambiguous slash/hyphen dates such as 03/04/2024.
type DateOrder string

const (
	DayFirst   DateOrder = "dmy"
	MonthFirst DateOrder = "mdy"
)

// ParseDateOrder accepts "dmy" or "mdy"; empty means DayFirst.
func ParseDateOrder(value string) (DateOrder, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "dmy":
		return DayFirst, nil
	case "mdy":
		return MonthFirst, nil
	default:
		return "", errors.Errorf("invalid date order %q (expected dmy or mdy)", value)
	}
}

// ErrMissingColumns is matched by errors.Is on a *MissingColumnsError.
var ErrMissingColumns = errors.New("missing required columns")

// MissingColumnsError lists every required column that could not be found.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return ErrMissingColumns.Error() + ": " + strings.Join(e.Columns, ", ")
}

func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

type column struct {
	name    string
	aliases []string
}

var (
	personColumn   = column{name: "Colaborador", aliases: []string{"Colaborador", "colaboradora", "funcionario", "funcionário", "nome"}}
	trainingColumn = column{name: "Treinamento", aliases: []string{"Treinamento", "curso", "training"}}
	baseDateColumn = column{name: "Data", aliases: []string{"Data", "data_treinamento", "data_realizacao", "date"}}
	offsetColumn   = column{name: "Dias_para_vencer", aliases: []string{"Dias_para_vencer", "dias_vencer", "validade_dias", "days_to_expire"}}
)

// CellIssue records a cell that could not be coerced and was marked absent.
type CellIssue struct {
	Row    int
	Column string
	Value  string
}

// Normalize maps table rows to records, coercing the base date and offset
// columns. Cells that fail coercion become absent; only missing columns are
// an error.
func Normalize(table loader.Table, order DateOrder) ([]Record, []CellIssue, error) {
	columns := []column{personColumn, trainingColumn, baseDateColumn, offsetColumn}
	indexes := make([]int, len(columns))
	var missing []string
	for i, col := range columns {
		indexes[i] = table.Column(col.aliases...)
		if indexes[i] < 0 {
			missing = append(missing, col.name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &MissingColumnsError{Columns: missing}
	}
	personIdx, trainingIdx, dateIdx, offsetIdx := indexes[0], indexes[1], indexes[2], indexes[3]

	records := make([]Record, 0, len(table.Rows))
	var issues []CellIssue
	for i, row := range table.Rows {
		record := Record{
			Row:      table.Line(i),
			Person:   loader.Value(row, personIdx),
			Training: loader.Value(row, trainingIdx),
		}
		if raw := loader.Value(row, dateIdx); raw != "" {
			if parsed, err := ParseDate(raw, order); err == nil {
				record.BaseDate = &parsed
			} else {
				issues = append(issues, CellIssue{Row: record.Row, Column: baseDateColumn.name, Value: raw})
			}
		}
		if raw := loader.Value(row, offsetIdx); raw != "" {
			if days, err := ParseOffset(raw); err == nil {
				record.OffsetDays = &days
			} else {
				issues = append(issues, CellIssue{Row: record.Row, Column: offsetColumn.name, Value: raw})
			}
		}
		records = append(records, record)
	}
	return records, issues, nil
}

var isoLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
}

var dayFirstLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
}

var monthFirstLayouts = []string{
	"1/2/2006",
	"1-2-2006",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
}

// Serial day numbers beyond 9999-12-31 are not dates.
const maxExcelSerial = 2958465

// ParseDate reads an Excel serial number or a textual date and returns the
// calendar date at UTC midnight.
func ParseDate(value string, order DateOrder) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty date")
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if math.IsNaN(serial) || serial < 1 || serial > maxExcelSerial {
			return time.Time{}, errors.Errorf("date serial out of range: %s", value)
		}
		parsed, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, errors.Wrapf(err, "date serial %s", value)
		}
		return DateOnly(parsed), nil
	}
	layouts := append([]string{}, isoLayouts...)
	if order == MonthFirst {
		layouts = append(layouts, monthFirstLayouts...)
	} else {
		layouts = append(layouts, dayFirstLayouts...)
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return DateOnly(parsed), nil
		}
	}
	return time.Time{}, errors.Errorf("unsupported date format: %s", value)
}

// ParseOffset reads a day count. Decimal commas are accepted and fractions
// are floored to whole days.
func ParseOffset(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, errors.New("empty offset")
	}
	if strings.Contains(value, ",") && !strings.Contains(value, ".") {
		value = strings.Replace(value, ",", ".", 1)
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return 0, errors.Wrapf(err, "offset %q", value)
	}
	floored := parsed.Floor()
	if floored.Abs().GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return 0, errors.Errorf("offset out of range: %s", value)
	}
	return int(floored.IntPart()), nil
}
