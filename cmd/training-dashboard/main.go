// main.go bootstraps training-dashboard: it builds the root Cobra command,
// layers env/config-file values under the flags, and runs the build with a
// signal-aware context.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"training-expiry-dashboard/internal/config"
	"training-expiry-dashboard/internal/dashboard"
	"training-expiry-dashboard/internal/logging"
	"training-expiry-dashboard/internal/report"
	"training-expiry-dashboard/internal/training"
)

const (
	appName   = "training-dashboard"
	envPrefix = "TRAINING_DASHBOARD"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	handleError(err)
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := config.NewOptions()
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Build the static training expiry dashboard",
		Long:          "training-dashboard reads a training spreadsheet, computes due dates and remaining days for the run date, and writes a self-contained HTML dashboard.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, opts, time.Now())
		},
	}
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level (debug, info, warn, error)")
	opts.AddFlags(cmd)
	cmd.Example = `  # Rebuild index.html from base_treinamentos_limpa.xlsx
  training-dashboard

  # Preview the dashboard as it will look on a given date
  training-dashboard --as-of 2025-01-31 --output dist/index.html

  # Read records from Postgres
  training-dashboard --input postgres://reader@db/rh --table rh.treinamentos`
	cmd.AddCommand(newVersionCommand())
	bindViper(cmd)
	return cmd
}

func runBuild(cmd *cobra.Command, opts *config.Options, now time.Time) error {
	if err := opts.Validate(now); err != nil {
		return err
	}
	log, err := logging.New(opts.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	result, err := dashboard.Run(cmd.Context(), opts, log)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	report.PrintSummary(out, result.Document, result.Source)
	fmt.Fprintln(out, "Gerado:", result.OutputPath)
	return nil
}

// bindViper layers env and config-file values under root's flags before any
// command runs. Each root command gets its own viper instance.
func bindViper(root *cobra.Command) {
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		v := viper.New()
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		v.SetEnvPrefix(envPrefix)
		v.AutomaticEnv()
		configFile := os.Getenv(envPrefix + "_CONFIG")
		configureConfigFile(v, configFile)

		if err := v.BindPFlags(root.Flags()); err != nil {
			return err
		}
		if err := v.BindPFlags(root.PersistentFlags()); err != nil {
			return err
		}
		if err := readConfigFile(v, configFile != ""); err != nil {
			return errors.Wrap(err, "read config file")
		}
		applyViper(v, root.Flags(), root.PersistentFlags())
		return nil
	}
}

// applyViper copies env/config values into flags the user did not set.
func applyViper(v *viper.Viper, flagSets ...*pflag.FlagSet) {
	for _, fs := range flagSets {
		fs.VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				return
			}
			if !v.IsSet(f.Name) {
				return
			}
			val := fmt.Sprintf("%v", v.Get(f.Name))
			if val != "" {
				_ = f.Value.Set(val)
			}
		})
	}
}

func configureConfigFile(v *viper.Viper, explicitPath string) {
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		return
	}
	v.SetConfigName("config")
	for _, dir := range configSearchDirs() {
		v.AddConfigPath(dir)
	}
}

func readConfigFile(v *viper.Viper, strict bool) error {
	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if errors.As(err, &cfgErr) && !strict {
			return nil
		}
		return err
	}
	return nil
}

func configSearchDirs() []string {
	added := make(map[string]struct{})
	var dirs []string
	add := func(path string) {
		if path == "" {
			return
		}
		if _, ok := added[path]; ok {
			return
		}
		added[path] = struct{}{}
		dirs = append(dirs, path)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		add(filepath.Join(xdg, appName))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		add(filepath.Join(home, ".config", appName))
	}
	return dirs
}

func handleError(err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", errorMessage(err))
}

func errorMessage(err error) string {
	message := err.Error()
	switch {
	case errors.Is(err, training.ErrMissingColumns):
		message = fmt.Sprintf("%s\nHint: the spreadsheet needs the columns Colaborador, Treinamento, Data and Dias_para_vencer.", err)
	case errors.Is(err, os.ErrNotExist):
		message = fmt.Sprintf("%s\nHint: place the input file in the working directory or pass --input.", err)
	case errors.Is(err, context.DeadlineExceeded):
		message = fmt.Sprintf("%s\nHint: the input source did not answer in time; verify connectivity to the database.", err)
	}
	return message
}
