package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"training-expiry-dashboard/internal/training"
)

func TestDefaults(t *testing.T) {
	opts := NewOptions()
	now := time.Date(2026, 3, 9, 17, 45, 0, 0, time.Local)
	require.NoError(t, opts.Validate(now))

	assert.Equal(t, "base_treinamentos_limpa.xlsx", opts.InputPath)
	assert.Equal(t, "index.html", opts.OutputPath)
	assert.Equal(t, "treinamentos", opts.Table)
	assert.Equal(t, training.DayFirst, opts.DateOrder)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), opts.AsOf)
}

func TestBindFlags(t *testing.T) {
	opts := NewOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	names := opts.BindFlags(fs)
	assert.ElementsMatch(t, []string{"input", "output", "sheet", "table", "as-of", "date-order"}, names)

	require.NoError(t, fs.Parse([]string{
		"-i", "dados/base.csv",
		"--output", "public/index.html",
		"--as-of", "2024-02-15",
		"--date-order", "mdy",
	}))
	require.NoError(t, opts.Validate(time.Now()))

	assert.Equal(t, "dados/base.csv", opts.InputPath)
	assert.Equal(t, "public/index.html", opts.OutputPath)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), opts.AsOf)
	assert.Equal(t, training.MonthFirst, opts.DateOrder)
}

func TestValidateErrors(t *testing.T) {
	cases := map[string]func(*Options){
		"--input is required":  func(o *Options) { o.InputPath = "  " },
		"--output is required": func(o *Options) { o.OutputPath = "" },
		"invalid --as-of":      func(o *Options) { o.AsOfRaw = "15/02/2024" },
		"invalid --date-order": func(o *Options) { o.DateOrderRaw = "ymd" },
	}
	for want, mutate := range cases {
		opts := NewOptions()
		mutate(opts)
		err := opts.Validate(time.Now())
		require.Error(t, err, want)
		assert.Contains(t, err.Error(), want)
	}
}
