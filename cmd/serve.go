package cmd

import (
	"github.com/spf13/cobra"

	"github.com/itsmostafa/mktoc/internal/server"
	"github.com/itsmostafa/mktoc/internal/toc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve table of contents generation over HTTP",
	Long: `Start an HTTP server. POST a Markdown document to

  /api/toc          the document with its table of contents regenerated
  /api/toc/render   the table of contents block only
  /api/headings     the selected headings as JSON
  /api/check        a lint report as JSON

min_depth, max_depth and wrap_in_details query parameters override the
configured defaults for documents without embedded config.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		srv := server.New(toc.NewGenerator(logger), logger, s.Server, s.TOC())
		return srv.Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	rootCmd.AddCommand(serveCmd)
}
