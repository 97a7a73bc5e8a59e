package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/itsmostafa/mktoc/internal/lint"
	"github.com/itsmostafa/mktoc/internal/mdfile"
	"github.com/itsmostafa/mktoc/internal/output"
	"github.com/itsmostafa/mktoc/internal/toc"
	"github.com/itsmostafa/mktoc/internal/ui"
)

var checkFormat string

var checkCmd = &cobra.Command{
	Use:   "check [FILE...]",
	Short: "Report stale or inconsistent tables of contents",
	Long: `Check each file without modifying it. Missing sentinels and stale tables of
contents are errors and make the command fail. Invalid embedded config,
headings the scanner and a CommonMark parser disagree on, and duplicate
anchors are reported as warnings or info.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(checkFormat)
		if err != nil {
			return err
		}
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		gen := toc.NewGenerator(logger)
		paths := defaultPaths(args)
		reports := make([]lint.Report, 0, len(paths))
		failed := 0

		for _, path := range paths {
			content, err := mdfile.Read(path)
			if err != nil {
				ui.FormatError(cmd.ErrOrStderr(), path, err)
				failed++
				continue
			}
			report, err := lint.Check(content, s.TOC(), gen)
			if err != nil {
				return fmt.Errorf("failed to check %s: %w", path, err)
			}
			report.Path = path
			if !report.Passed {
				failed++
			}
			reports = append(reports, report)

			if !format.Structured() {
				ui.FormatReport(cmd.OutOrStdout(), report)
			}
		}

		if format.Structured() {
			if err := output.Encode(cmd.OutOrStdout(), format, reports); err != nil {
				return err
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d file(s) failed the check", failed, len(paths))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkFormat, "output", "o", "text", "Output format (text, json, yaml)")
	rootCmd.AddCommand(checkCmd)
}
