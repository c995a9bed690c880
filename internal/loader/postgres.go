package loader

import (
	"context"
	"database/sql/driver"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const (
	defaultPostgresTable = "treinamentos"
	postgresTimeout      = 30 * time.Second
)

var relationName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?$`)

func loadPostgres(ctx context.Context, dsn, table string) (Table, error) {
	relation, err := sanitizeRelation(table)
	if err != nil {
		return Table{}, err
	}
	source := redactURL(dsn) + "#" + relation

	ctx, cancel := context.WithTimeout(ctx, postgresTimeout)
	defer cancel()

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return Table{}, errors.Wrapf(err, "connect %s", redactURL(dsn))
	}
	defer conn.Close(context.Background())

	rows, err := conn.Query(ctx, fmt.Sprintf(`SELECT * FROM %s`, relation))
	if err != nil {
		return Table{}, errors.Wrapf(err, "query %s", relation)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	headers := make([]string, len(fields))
	for idx, field := range fields {
		headers[idx] = field.Name
	}

	var values [][]any
	for rows.Next() {
		row, err := rows.Values()
		if err != nil {
			return Table{}, errors.Wrapf(err, "scan %s", relation)
		}
		values = append(values, row)
	}
	if err := rows.Err(); err != nil {
		return Table{}, errors.Wrapf(err, "read %s", relation)
	}
	return tableFromValues(source, headers, values), nil
}

func tableFromValues(source string, headers []string, values [][]any) Table {
	rows := make([][]string, 0, len(values))
	lines := make([]int, 0, len(values))
	for pos, row := range values {
		record := make([]string, len(row))
		for idx, value := range row {
			record[idx] = cellString(value)
		}
		if blankRow(record) {
			continue
		}
		rows = append(rows, record)
		lines = append(lines, pos+1)
	}
	return newTable(source, headers, rows, lines)
}

// cellString renders a decoded Postgres value the way a spreadsheet cell
// would read as text.
func cellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format("2006-01-02")
		}
		return v.Format(time.RFC3339)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case driver.Valuer:
		inner, err := v.Value()
		if err != nil || inner == nil {
			return ""
		}
		if _, loops := inner.(driver.Valuer); loops {
			return fmt.Sprint(inner)
		}
		return cellString(inner)
	default:
		return fmt.Sprint(v)
	}
}

func sanitizeRelation(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = defaultPostgresTable
	}
	if !relationName.MatchString(value) {
		return "", errors.Errorf("invalid table name: %s", value)
	}
	return value, nil
}

func redactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "postgres"
	}
	return parsed.Redacted()
}
