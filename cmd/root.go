package cmd

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/npmd-dev/npmd/internal/config"
	"github.com/npmd-dev/npmd/internal/index"
	"github.com/npmd-dev/npmd/internal/render"
	"github.com/npmd-dev/npmd/internal/resolver"
)

var (
	cfg *config.Config

	flagIndexPath    string
	flagIgnoreErrors bool
	flagVerbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "npmd",
	Short: "Render numpydoc docstrings as Markdown",
	Long: `npmd renders numpydoc-style docstrings as Markdown and substitutes
{{...}} placeholders in documentation templates with rendered docstrings.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		level := cfg.Log.Level
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagIndexPath, "index", "", "documentation index file (defaults to the cached index)")
	rootCmd.PersistentFlags().BoolVar(&flagIgnoreErrors, "ignore-errors", false, "keep failing placeholders verbatim instead of aborting")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "debug log output")
}

// newEngine builds a render engine backed by the documentation index when
// one exists, falling back to resolving objects straight from Go source.
func newEngine() (*render.Engine, error) {
	path := indexPath()
	if _, err := os.Stat(path); err == nil {
		res, err := index.Open(path)
		if err != nil {
			return nil, err
		}
		slog.Debug("resolving objects from index", "path", path)
		return render.New(res), nil
	}
	slog.Debug("no index found, resolving objects from source", "path", path)
	return render.New(resolver.NewGoPackages()), nil
}

// ignoreErrors prefers the command line flag over the configured default.
func ignoreErrors(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("ignore-errors") {
		return flagIgnoreErrors
	}
	return cfg.Render.IgnoreErrors
}
