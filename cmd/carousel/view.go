package main

import (
	"log/slog"

	"github.com/philipparndt/gocarousel/internal/app"
	"github.com/spf13/cobra"
)

var viewCell bool

var viewCmd = &cobra.Command{
	Use:   "view [cover...]",
	Short: "Open the showcase in a window",
	Long: `Open the showcase in a raylib window. Covers given as arguments replace the
configured ring items. Click an item to focus it, drag to orbit, use the mouse
wheel or the arrow keys to scroll. The config file is reloaded when it changes.`,
	RunE: runView,
}

func init() {
	viewCmd.Flags().BoolVar(&viewCell, "cell", false, "show the cell scene")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Carousel.Items = args
	}
	if viewCell {
		cfg.Cell.Enabled = true
	}

	return app.Run(app.Options{
		Config:     cfg,
		ConfigPath: configPath,
		Loader:     newLoader(cfg),
		Logger:     slog.Default(),
	})
}
