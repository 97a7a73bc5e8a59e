package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/itsmostafa/mktoc/internal/jsbridge"
	"github.com/itsmostafa/mktoc/internal/mdfile"
	"github.com/itsmostafa/mktoc/internal/toc"
)

var scriptTimeout time.Duration
var scriptWrite bool

var scriptCmd = &cobra.Command{
	Use:   "script SCRIPT.js [FILE]",
	Short: "Run a JavaScript script against a Markdown document",
	Long: `Run a script with the document in the global "document" and a "mktoc" object
providing makeToc, makeTocOnly, textToUrl and headings. print() and
console.log() write to stdout, followed by the value of the last expression.

With --write, a script that assigns a new value to "document" updates FILE.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		code, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read script: %w", err)
		}

		var doc, path string
		if len(args) == 2 {
			path = args[1]
			if doc, err = mdfile.Read(path); err != nil {
				return err
			}
		}

		runner := jsbridge.NewRunner(toc.NewGenerator(logger), s.TOC(), scriptTimeout)
		result := runner.Run(cmd.Context(), string(code), doc)

		out := cmd.OutOrStdout()
		fmt.Fprint(out, result.Output)
		if result.Error != nil {
			return result.Error
		}
		if result.Value != nil {
			fmt.Fprintln(out, result.Value)
		}

		if scriptWrite && path != "" && result.Document != doc {
			if err := mdfile.Write(path, result.Document); err != nil {
				return err
			}
			logger.Info("document updated by script", "path", path)
		}
		return nil
	},
}

func init() {
	scriptCmd.Flags().DurationVar(&scriptTimeout, "timeout", jsbridge.DefaultTimeout, "Abort the script after this long")
	scriptCmd.Flags().BoolVar(&scriptWrite, "write", false, "Write the script's document back to FILE")
	rootCmd.AddCommand(scriptCmd)
}
