package cmd

import (
	"github.com/spf13/cobra"

	"github.com/itsmostafa/mktoc/internal/mdfile"
	"github.com/itsmostafa/mktoc/internal/toc"
	"github.com/itsmostafa/mktoc/internal/ui"
	"github.com/itsmostafa/mktoc/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [FILE...]",
	Short: "Regenerate tables of contents whenever the files change",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		status := cmd.ErrOrStderr()
		cfg := s.TOC()
		w, err := watch.New(defaultPaths(args), toc.NewGenerator(logger), watch.Options{
			Config:   cfg,
			Debounce: s.Watch.Debounce,
			Logger:   logger,
			OnUpdate: func(r *mdfile.Result) { ui.FormatUpdate(status, r) },
			OnError:  func(path string, err error) { ui.FormatError(status, path, err) },
		})
		if err != nil {
			return err
		}

		ui.FormatWatchHeader(status, w.Paths(), cfg, s.Watch.Debounce)
		return w.Run(cmd.Context())
	},
}

func init() {
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "Wait this long after the last change before regenerating")
	rootCmd.AddCommand(watchCmd)
}
