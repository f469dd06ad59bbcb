// Package cmd implements the wikiq command line using Cobra.
package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/wikiq/config"
	"github.com/gaurav-prasanna/wikiq/core/output"
	"github.com/gaurav-prasanna/wikiq/core/render"
	"github.com/gaurav-prasanna/wikiq/core/wiki"
)

var version = "dev"

// SetVersion sets the version string reported by --version.
func SetVersion(v string) {
	version = v
}

// options holds flag values and the collaborators built from them. A fresh
// set is created for every run.
type options struct {
	// Global flags.
	cfgFile   string
	verbose   bool
	colorMode string
	lang      string
	outputDir string

	// Action flags.
	listDisambiguations bool
	disambiguation      int
	showURL             bool
	exportFormat        string

	cfg     *config.Config
	logger  *slog.Logger
	printer *output.Printer
	client  *wiki.Client
}

func newRootCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wikiq <title>",
		Short: "wikiq — print Wikipedia page summaries from the terminal",
		Long: `wikiq looks up a Wikipedia page and prints its introduction.

The title is capitalized the way Wikipedia expects; a trailing qualifier in
parentheses is kept as typed. Redirects are followed and the page's own
title is printed above the summary.

Each API request times out after 30s unless api.timeout is set in
.wikiq.yaml (or WIKIQ_API_TIMEOUT), for example "api.timeout: 1m".

Examples:
  wikiq the matrix
  wikiq "mercury (planet)" --url
  wikiq mercury --list-disambiguations
  wikiq mercury -d 2 -u
  wikiq mercury -d 2 --export pdf --output_dir ./out`,
		Version:       version,
		Args:          titleArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
		RunE: o.runQuery,
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	// Global flags.
	cmd.PersistentFlags().StringVar(&o.cfgFile, "config", "", "config file (default is .wikiq.yaml)")
	cmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&o.colorMode, "color", "auto", "color output: auto, always, or never")
	cmd.PersistentFlags().StringVar(&o.lang, "lang", "", "Wikipedia language edition (default from config, en)")

	// Action flags. --list-disambiguations and --disambiguation are mutually exclusive.
	cmd.Flags().BoolVarP(&o.listDisambiguations, "list-disambiguations", "l", false, "List the entries of the title's disambiguation page")
	cmd.Flags().IntVarP(&o.disambiguation, "disambiguation", "d", 0, "Print the summary of the Nth disambiguation entry (1-based)")
	cmd.Flags().BoolVarP(&o.showURL, "url", "u", false, "Also print the page URL")

	// Export flags.
	cmd.Flags().StringVar(&o.exportFormat, "export", "", "Also export the page: "+strings.Join(render.Formats, ", "))
	cmd.Flags().StringVar(&o.outputDir, "output_dir", "", "Export directory (default: current directory)")

	return cmd
}

// titleArgs requires at least one word of title.
func titleArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
		return &usageError{err: err}
	}
	return nil
}

// setup loads configuration and builds the logger, printer and API client.
func (o *options) setup(cmd *cobra.Command) error {
	mode, err := output.ParseColorMode(o.colorMode)
	if err != nil {
		return &usageError{err: err}
	}

	overrides := map[string]any{}
	if o.lang != "" {
		overrides["api.language"] = o.lang
	}
	if o.verbose {
		overrides["logging.level"] = "debug"
	}
	if o.outputDir != "" {
		overrides["export.dir"] = o.outputDir
	}

	cfg, err := config.Load(o.cfgFile, overrides)
	if err != nil {
		return &output.CLIError{
			Summary:    "could not load configuration",
			Detail:     err.Error(),
			Suggestion: "Check .wikiq.yaml syntax or use --config flag",
			ExitCode:   output.ExitConfigError,
			Err:        err,
		}
	}
	o.cfg = cfg

	o.printer = output.NewPrinter(output.PrinterOptions{
		ColorMode:    mode,
		ConfigColors: cfg.Output.Colors,
		Out:          cmd.OutOrStdout(),
		Err:          cmd.ErrOrStderr(),
	})
	o.logger = newLogger(cmd.ErrOrStderr(), cfg.Logging)

	o.client = wiki.New(
		wiki.WithEndpoint(cfg.Endpoint()),
		wiki.WithUserAgent(cfg.API.UserAgent),
		wiki.WithTimeout(cfg.API.Timeout),
		wiki.WithLogger(o.logger),
	)

	o.logger.Debug("configuration loaded",
		"endpoint", o.client.Endpoint(),
		"timeout", cfg.API.Timeout,
		"export_dir", cfg.Export.Dir,
	)
	return nil
}

func newLogger(w io.Writer, lc config.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Execute runs the root command and exits with its status code.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code. Errors
// are rendered here and nowhere else.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o := &options{}
	cmd := newRootCmd(o)
	// A nil slice makes cobra fall back to os.Args.
	cmd.SetArgs(append([]string{}, args...))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return output.ExitSuccess
	}

	printer := o.printer
	if printer == nil {
		printer = output.NewPrinter(output.PrinterOptions{ColorMode: output.ColorNever, Out: stdout, Err: stderr})
	}
	cliErr := toCLIError(err)
	printer.FormatError(cliErr)
	return cliErr.ExitCode
}
