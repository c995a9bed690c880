// Package config holds the runtime options of the dashboard build and binds
// them to command-line flags. With no flags set the build reads
// base_treinamentos_limpa.xlsx and writes index.html in the working directory.
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"training-expiry-dashboard/internal/training"
)

const (
	DefaultInputPath  = "base_treinamentos_limpa.xlsx"
	DefaultOutputPath = "index.html"
	DefaultTable      = "treinamentos"
	DefaultLogLevel   = "info"
)

// Options configures one dashboard build.
type Options struct {
	InputPath    string
	OutputPath   string
	Sheet        string
	Table        string
	AsOfRaw      string
	DateOrderRaw string
	LogLevel     string

	// Resolved by Validate.
	AsOf      time.Time
	DateOrder training.DateOrder
}

// NewOptions returns Options with defaults applied.
func NewOptions() *Options {
	return &Options{
		InputPath:    DefaultInputPath,
		OutputPath:   DefaultOutputPath,
		Table:        DefaultTable,
		DateOrderRaw: string(training.DayFirst),
		LogLevel:     DefaultLogLevel,
	}
}

// AddFlags binds configuration flags to the provided Cobra command.
func (o *Options) AddFlags(cmd *cobra.Command) {
	o.BindFlags(cmd.Flags())
}

// BindFlags attaches build flags to fs and returns their names.
func (o *Options) BindFlags(fs *pflag.FlagSet) []string {
	var names []string
	fs.StringVarP(&o.InputPath, "input", "i", o.InputPath, "Training spreadsheet (.xlsx or .csv) or a postgres:// URL")
	names = append(names, "input")
	fs.StringVarP(&o.OutputPath, "output", "o", o.OutputPath, "Path of the generated HTML dashboard")
	names = append(names, "output")
	fs.StringVar(&o.Sheet, "sheet", o.Sheet, "Worksheet to read from an xlsx input (defaults to the first sheet)")
	names = append(names, "sheet")
	fs.StringVar(&o.Table, "table", o.Table, "Table to read when --input is a postgres:// URL")
	names = append(names, "table")
	fs.StringVar(&o.AsOfRaw, "as-of", o.AsOfRaw, "Run date used for remaining days (YYYY-MM-DD, defaults to today)")
	names = append(names, "as-of")
	fs.StringVar(&o.DateOrderRaw, "date-order", o.DateOrderRaw, "Field order of ambiguous text dates: dmy or mdy")
	names = append(names, "date-order")
	return names
}

// Validate checks the options and resolves AsOf and DateOrder. now supplies
// the run date when --as-of is not set.
func (o *Options) Validate(now time.Time) error {
	o.InputPath = strings.TrimSpace(o.InputPath)
	if o.InputPath == "" {
		return errors.New("--input is required")
	}
	o.OutputPath = strings.TrimSpace(o.OutputPath)
	if o.OutputPath == "" {
		return errors.New("--output is required")
	}
	o.Sheet = strings.TrimSpace(o.Sheet)
	o.Table = strings.TrimSpace(o.Table)
	if o.Table == "" {
		o.Table = DefaultTable
	}

	order, err := training.ParseDateOrder(o.DateOrderRaw)
	if err != nil {
		return errors.Wrap(err, "invalid --date-order")
	}
	o.DateOrder = order

	o.AsOf = training.DateOnly(now)
	if raw := strings.TrimSpace(o.AsOfRaw); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return errors.Wrapf(err, "invalid --as-of date %q", raw)
		}
		o.AsOf = parsed
	}
	return nil
}
