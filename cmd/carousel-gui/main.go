package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gocarousel/internal/config"
	"github.com/philipparndt/gocarousel/internal/gui"
	"github.com/philipparndt/gocarousel/internal/showcase"
	"github.com/philipparndt/gocarousel/pkg/asset"
	"github.com/philipparndt/gocarousel/pkg/viewer"
)

// App is the desktop showcase window
type App struct {
	window fyne.Window
	logger *slog.Logger
	view   *gui.ShowcaseView
	status *gui.StatusPanel
	stop   context.CancelFunc
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	a := app.New()
	w := a.NewWindow("gocarousel")

	appInstance := &App{window: w, logger: logger}
	defer appInstance.stopLoop()

	// An optional argument names the config file
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := loadConfig(configPath, logger)
	if err != nil {
		appInstance.showError(err)
	} else {
		w.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
		appInstance.start(cfg, configPath)
	}

	w.ShowAndRun()
}

func loadConfig(path string, logger *slog.Logger) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path, logger)
}

func (a *App) start(cfg *config.Config, configPath string) {
	base := cfg.Assets.BaseDir
	if configPath != "" && !filepath.IsAbs(base) {
		base = filepath.Join(filepath.Dir(configPath), base)
	}
	loader := asset.NewLoader(
		asset.WithBaseDir(base),
		asset.WithConcurrency(cfg.Assets.Concurrency),
		asset.WithTimeout(cfg.Assets.Timeout.Duration),
		asset.WithMaxTexture(cfg.Assets.MaxTexture),
		asset.WithLogger(a.logger),
	)

	raster := viewer.NewRasterRenderer(cfg.Window.Width, cfg.Window.Height)
	d, err := showcase.New(cfg, loader, raster,
		showcase.WithLogger(a.logger),
		showcase.WithViewport(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		a.showError(fmt.Errorf("failed to build showcase: %w", err))
		return
	}

	a.view = gui.NewShowcaseView(d, raster, a.logger)
	a.status = gui.NewStatusPanel()
	a.view.SetOnFrame(a.status.Update)

	infoScroll := container.NewVScroll(a.status.Content())
	infoScroll.SetMinSize(fyne.NewSize(260, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		infoScroll, // right
		a.view,     // center
	)
	a.window.SetContent(content)

	ctx, cancel := context.WithCancel(context.Background())
	a.stop = cancel
	go a.view.Run(ctx, cfg.Window.FPS)
}

func (a *App) stopLoop() {
	if a.stop != nil {
		a.stop()
	}
}

func (a *App) showError(err error) {
	a.logger.Error("startup failed", "err", err)
	a.window.SetContent(container.NewCenter(widget.NewLabel("Could not start the showcase")))
	dialog.ShowError(err, a.window)
}
