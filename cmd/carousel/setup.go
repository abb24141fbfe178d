package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/philipparndt/gocarousel/internal/config"
	"github.com/philipparndt/gocarousel/pkg/asset"
	"github.com/spf13/cobra"
)

func setupLogging(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig reads --config, or returns the defaults without one
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath, slog.Default())
}

// newLoader resolves relative asset paths against the config's base_dir,
// which itself is relative to the config file
func newLoader(cfg *config.Config) *asset.Loader {
	base := cfg.Assets.BaseDir
	if configPath != "" && !filepath.IsAbs(base) {
		base = filepath.Join(filepath.Dir(configPath), base)
	}
	return asset.NewLoader(
		asset.WithBaseDir(base),
		asset.WithConcurrency(cfg.Assets.Concurrency),
		asset.WithTimeout(cfg.Assets.Timeout.Duration),
		asset.WithMaxTexture(cfg.Assets.MaxTexture),
		asset.WithLogger(slog.Default()),
	)
}
