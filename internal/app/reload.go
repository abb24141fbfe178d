package app

import (
	"fmt"

	"github.com/philipparndt/gocarousel/internal/config"
	"github.com/philipparndt/gocarousel/pkg/watcher"
)

// setupFileWatcher watches the config file for changes
func (app *App) setupFileWatcher() error {
	fw, err := watcher.NewFileWatcher(app.cfg.Watch.Debounce.Duration, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Watch(app.Reload.configPath); err != nil {
		fw.Close()
		return err
	}
	fw.Start()
	app.Reload.fileWatcher = fw
	app.logger.Info("watching config", "path", app.Reload.configPath)
	return nil
}

// applyReload rebuilds the driver when the config changed. It runs on the
// window thread between frames; a broken file keeps the current showcase.
func (app *App) applyReload() {
	if app.Reload.fileWatcher == nil {
		return
	}
	select {
	case path := <-app.Reload.fileWatcher.Changes():
		if err := app.reload(path); err != nil {
			app.Reload.lastErr = err
			app.logger.Warn("config reload failed, keeping previous", "path", path, "err", err)
			return
		}
		app.Reload.lastErr = nil
		app.Reload.reloads++
		app.logger.Info("config reloaded", "path", path, "reloads", app.Reload.reloads)
	default:
	}
}

func (app *App) reload(path string) error {
	cfg, err := config.Load(path, app.logger)
	if err != nil {
		return err
	}
	width, height := app.driver.Viewport()
	driver, err := app.newDriver(cfg, width, height)
	if err != nil {
		return err
	}
	app.cfg = cfg
	app.driver = driver
	app.Scroll.max = scrollLimit(cfg)
	if app.Scroll.offset > 0 {
		driver.RestoreScroll(app.Scroll.offset)
	}
	return nil
}
