package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/itsmostafa/mktoc/internal/config"
	"github.com/itsmostafa/mktoc/internal/mdfile"
	"github.com/itsmostafa/mktoc/internal/toc"
	"github.com/itsmostafa/mktoc/internal/ui"
	"github.com/itsmostafa/mktoc/internal/version"
)

// DefaultFile is processed when no files are given.
const DefaultFile = "README.md"

var cfgFile string
var verbose bool
var logFormat string
var toStdout bool

// logger is replaced in PersistentPreRunE once flags are parsed.
var logger = slog.Default()

var rootCmd = &cobra.Command{
	Use:   "mktoc [FILE...]",
	Short: "Generate a table of contents for Markdown files",
	Long: `mktoc regenerates the table of contents between

  <!-- BEGIN mktoc -->
  <!-- END mktoc -->

in each Markdown file, in place. A JSON object in the begin comment, such as
<!-- BEGIN mktoc {"min_depth": 2, "max_depth": 3} -->, overrides the flags,
MKTOC_* environment variables and the config file for that document.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd.ErrOrStderr())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		return updateFiles(cmd.OutOrStdout(), cmd.ErrOrStderr(), defaultPaths(args), s.TOC())
	},
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("mktoc %s\n", version.String()))

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default ./.mktoc.yaml or ~/.mktoc.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	pf.IntP("min-depth", "m", toc.DefaultMinDepth, "Minimum heading level to include")
	pf.IntP("max-depth", "M", toc.DefaultMaxDepth, "Maximum heading level to include")
	pf.BoolP("wrap-in-details", "w", false, "Wrap the table of contents in a collapsible <details> block")

	rootCmd.Flags().BoolVarP(&toStdout, "stdout", "s", false, "Print the result instead of writing the file")
}

// Execute runs the root command
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(w io.Writer) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch logFormat {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return fmt.Errorf("unknown log format: %s (expected text or json)", logFormat)
	}

	logger = slog.New(handler).With("run_id", uuid.NewString())
	slog.SetDefault(logger)
	return nil
}

func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	s, err := config.Load(cmd.Flags(), cfgFile)
	if err != nil {
		return nil, err
	}
	logger.Debug("settings loaded",
		"min_depth", s.MinDepth,
		"max_depth", s.MaxDepth,
		"wrap_in_details", s.WrapInDetails,
	)
	return s, nil
}

func defaultPaths(args []string) []string {
	if len(args) == 0 {
		return []string{DefaultFile}
	}
	return args
}

// updateFiles regenerates each file, or prints it when --stdout is set.
// Failures are reported and the remaining files still processed.
func updateFiles(out, status io.Writer, paths []string, cfg toc.Config) error {
	gen := toc.NewGenerator(logger)

	var summary ui.Summary
	for _, path := range paths {
		if toStdout {
			content, err := mdfile.MakeTOC(path, cfg, gen)
			if err != nil {
				ui.FormatError(status, path, err)
				summary.Failed++
				continue
			}
			fmt.Fprint(out, content)
			continue
		}

		result, err := mdfile.Update(path, cfg, gen)
		if err != nil {
			ui.FormatError(status, path, err)
			summary.Failed++
			continue
		}
		if !result.HasRegion {
			logger.Warn("no mktoc region found", "path", path)
		}
		ui.FormatUpdate(status, result)
		summary.Add(result)
	}

	if len(paths) > 1 && !toStdout {
		ui.FormatSummary(status, summary)
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", summary.Failed, len(paths))
	}
	return nil
}
