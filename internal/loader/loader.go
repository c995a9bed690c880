package loader

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Source describes where training records come from.
type Source struct {
	// Path is a file path or a postgres:// URL.
	Path string
	// Sheet selects an xlsx worksheet; empty means the first one.
	Sheet string
	// Table is the relation read when Path is a Postgres URL.
	Table string
}

// Load reads src into a Table. The format is picked from the URL scheme or
// the file extension.
func Load(ctx context.Context, src Source) (Table, error) {
	path := strings.TrimSpace(src.Path)
	if path == "" {
		return Table{}, errors.New("input path is required")
	}
	if IsPostgresURL(path) {
		return loadPostgres(ctx, path, src.Table)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return loadXLSX(path, src.Sheet)
	default:
		return Table{}, errors.Errorf("unsupported input format %q (expected .xlsx, .csv or a postgres:// URL)", filepath.Ext(path))
	}
}

// IsPostgresURL reports whether value names a Postgres connection.
func IsPostgresURL(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}
