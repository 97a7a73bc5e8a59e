package cmd

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/itsmostafa/mktoc/internal/mdfile"
	"github.com/itsmostafa/mktoc/internal/output"
	"github.com/itsmostafa/mktoc/internal/toc"
	"github.com/itsmostafa/mktoc/internal/ui"
)

var headingsFormat string

var headingsCmd = &cobra.Command{
	Use:   "headings FILE",
	Short: "List the headings that would appear in the table of contents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(headingsFormat)
		if err != nil {
			return err
		}
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		content, err := mdfile.Read(args[0])
		if err != nil {
			return err
		}

		cfg := toc.NewGenerator(logger).Resolve(content, s.TOC()).Config
		headings := slices.Collect(toc.Headings(content, cfg.MinDepth, cfg.MaxDepth))
		if headings == nil {
			headings = []toc.Heading{}
		}

		if format.Structured() {
			return output.Encode(cmd.OutOrStdout(), format, headings)
		}
		ui.FormatHeadings(cmd.OutOrStdout(), headings)
		return nil
	},
}

func init() {
	headingsCmd.Flags().StringVarP(&headingsFormat, "output", "o", "text", "Output format (text, json, yaml)")
	rootCmd.AddCommand(headingsCmd)
}
