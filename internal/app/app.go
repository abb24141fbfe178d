// Package app hosts the showcase in a raylib window: it feeds mouse, wheel and
// resize events to the driver, ticks it once per frame and reloads the config
// file when it changes.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gocarousel/internal/config"
	"github.com/philipparndt/gocarousel/internal/showcase"
	"github.com/philipparndt/gocarousel/pkg/asset"
)

// Options configures Run. ConfigPath enables hot reload when it is set and
// watching is enabled in the config.
type Options struct {
	Config     *config.Config
	ConfigPath string
	Loader     *asset.Loader
	Logger     *slog.Logger
}

// Run opens the window and blocks until it is closed
func Run(opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loader := opts.Loader
	if loader == nil {
		loader = asset.NewLoader(asset.WithLogger(logger))
	}

	app := &App{
		cfg:      cfg,
		loader:   loader,
		logger:   logger,
		renderer: NewRenderer(),
		Scroll: ScrollState{
			step: 120,
			max:  scrollLimit(cfg),
		},
		Reload: ReloadState{configPath: opts.ConfigPath},
		UI:     UIState{showHUD: true},
	}

	driver, err := app.newDriver(cfg, cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return err
	}
	app.driver = driver

	if app.Reload.configPath != "" && cfg.Watch.Enabled {
		if err := app.setupFileWatcher(); err != nil {
			logger.Warn("config hot reload unavailable", "err", err)
		} else {
			defer app.Reload.fileWatcher.Close()
		}
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Window.FPS))

	for !rl.WindowShouldClose() {
		app.applyReload()
		app.handleInput()

		dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))

		rl.BeginDrawing()
		if err := app.driver.Tick(dt); err != nil {
			logger.Error("frame failed", "err", err)
		}
		if app.UI.showHUD {
			app.drawHUD()
		}
		rl.EndDrawing()
	}
	return nil
}

func (app *App) newDriver(cfg *config.Config, width, height int) (*showcase.Driver, error) {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout(cfg))
	defer cancel()
	driver, err := showcase.New(cfg, app.loader, app.renderer,
		showcase.WithLogger(app.logger),
		showcase.WithViewport(width, height),
		showcase.WithLoadContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build showcase: %w", err)
	}
	return driver, nil
}

// loadTimeout bounds the whole initial load, not just one request
func loadTimeout(cfg *config.Config) time.Duration {
	d := cfg.Assets.Timeout.Duration
	if d <= 0 {
		d = 15 * time.Second
	}
	return 4 * d
}

// scrollLimit lets the wheel go slightly past the last zone so the frozen
// beyond-range frame can be seen
func scrollLimit(cfg *config.Config) float64 {
	zones := cfg.Scroll.Zones
	if len(zones) == 0 {
		return 0
	}
	return zones[len(zones)-1].End * 1.1
}

func (app *App) drawHUD() {
	d := app.driver
	lines := []string{
		fmt.Sprintf("%d fps", rl.GetFPS()),
		fmt.Sprintf("focus: %s", d.Focus().State()),
	}
	if it := d.Focus().Focused(); it != nil {
		lines = append(lines, fmt.Sprintf("item: %d", it.Index()))
	}
	if d.Mapper() != nil {
		f := d.Frame()
		zone := f.Zone
		if f.Beyond {
			zone += " (beyond)"
		}
		lines = append(lines,
			fmt.Sprintf("scroll: %.0f", app.Scroll.offset),
			fmt.Sprintf("zone: %s %.0f%%", zone, f.Progress*100),
			fmt.Sprintf("fov: %.1f offset: %.0f", f.Params.FieldOfView, f.Params.ViewOffsetX),
		)
	}
	if app.Reload.lastErr != nil {
		lines = append(lines, "config: "+app.Reload.lastErr.Error())
	}

	y := int32(10)
	for _, line := range lines {
		rl.DrawText(line, 10, y, 18, rl.RayWhite)
		y += 22
	}
}
