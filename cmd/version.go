package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/itsmostafa/mktoc/internal/output"
	"github.com/itsmostafa/mktoc/internal/version"
)

var versionFormat string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(versionFormat)
		if err != nil {
			return err
		}
		if format.Structured() {
			return output.Encode(cmd.OutOrStdout(), format, version.Get())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "mktoc %s\n", version.String())
		return nil
	},
}

func init() {
	versionCmd.Flags().StringVarP(&versionFormat, "output", "o", "text", "Output format (text, json, yaml)")
	rootCmd.AddCommand(versionCmd)
}
