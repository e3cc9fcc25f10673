// Package cli provides the exoctl command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/exoarchive/internal/application"
	"github.com/JonMunkholm/exoarchive/internal/config"
	"github.com/JonMunkholm/exoarchive/internal/core"
	"github.com/JonMunkholm/exoarchive/internal/logging"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// Output formats accepted by --format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// runtime holds flag values and the lazily built application for one
// invocation.
type runtime struct {
	format     string
	sourceURL  string
	sourceDir  string
	schemaFile string
	logLevel   string
	getenv     func(string) string

	app *application.App
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(os.Getenv)
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	rt := &runtime{getenv: getenv}

	rootCmd := &cobra.Command{
		Use:   "exoctl",
		Short: "Browse the exoplanet archive from the terminal",
		Long: `exoctl reads the same archive CSV as the web server and prints views,
statistics and detection results.

The source is configured with the server's environment variables
(SOURCE_URL, SOURCE_DIR, SOURCE_PATH, ...). Flags override them.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch rt.format {
			case FormatTable, FormatJSON, FormatCSV:
			default:
				return fmt.Errorf("unknown format %q (want table, json or csv)", rt.format)
			}
			logging.SetupWriter(cmd.ErrOrStderr(), rt.logLevel, "text")
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if rt.app != nil {
				rt.app.Close()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&rt.format, "format", "f", FormatTable, "Output format (table|json|csv)")
	flags.StringVar(&rt.sourceURL, "source-url", "", "Base URL of the archive (overrides SOURCE_URL)")
	flags.StringVar(&rt.sourceDir, "source-dir", "", "Local directory holding the CSV (overrides SOURCE_DIR)")
	flags.StringVar(&rt.schemaFile, "schema", "", "YAML column layout override (overrides SCHEMA_FILE)")
	flags.StringVar(&rt.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{FormatTable, FormatJSON, FormatCSV}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newViewsCommand(rt))
	rootCmd.AddCommand(newBrowseCommand(rt))
	rootCmd.AddCommand(newRecentCommand(rt))
	rootCmd.AddCommand(newStatsCommand(rt))
	rootCmd.AddCommand(newMethodsCommand(rt))
	rootCmd.AddCommand(newClassifyCommand(rt))
	rootCmd.AddCommand(newDetectCommand(rt))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// lookup layers flag values over the environment.
func (rt *runtime) lookup(key string) string {
	switch {
	case key == "SOURCE_URL" && rt.sourceURL != "":
		return rt.sourceURL
	case key == "SOURCE_DIR" && rt.sourceDir != "":
		return rt.sourceDir
	case key == "SCHEMA_FILE" && rt.schemaFile != "":
		return rt.schemaFile
	}
	return rt.getenv(key)
}

// service builds the application on first use. Commands that never touch
// the source do not need a valid source configuration.
func (rt *runtime) service(cmd *cobra.Command) (*core.Service, error) {
	if rt.app != nil {
		return rt.app.Service, nil
	}

	cfg, err := config.LoadFrom(rt.lookup)
	if err != nil {
		return nil, err
	}

	app, err := application.Build(cmd.Context(), cfg, application.Options{})
	if err != nil {
		return nil, err
	}
	rt.app = app
	return app.Service, nil
}

// warnDegraded tells the user on stderr that the records are a fallback.
func warnDegraded(cmd *cobra.Command, degraded bool, problem *core.UserMessage, src core.Source) {
	if !degraded {
		return
	}
	msg := "failed to load exoplanet data"
	if problem != nil {
		msg = fmt.Sprintf("%s: %s (%s)", msg, problem.Message, problem.Code)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s; showing %s records\n", msg, src)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the exoctl version and build commit.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exoctl v%s (%s)\n", Version, GitCommit)
		},
	}
}
