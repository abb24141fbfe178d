package app

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gocarousel/internal/config"
	"github.com/philipparndt/gocarousel/internal/showcase"
	"github.com/philipparndt/gocarousel/pkg/asset"
	"github.com/philipparndt/gocarousel/pkg/watcher"
)

// ScrollState holds the virtual page scroll driven by the wheel and keys
type ScrollState struct {
	offset float64
	step   float64 // Pixels per wheel notch
	max    float64 // Upper clamp, a little past the last zone
}

// InteractionState holds mouse state for click vs drag detection
type InteractionState struct {
	mouseDownPos rl.Vector2
	mouseMoved   bool
	pressed      bool
}

// ReloadState holds the config hot reload machinery
type ReloadState struct {
	configPath  string
	fileWatcher *watcher.FileWatcher
	reloads     int
	lastErr     error
}

// UIState holds overlay settings
type UIState struct {
	showHUD bool
}

// App is the raylib window host around a showcase driver
type App struct {
	cfg      *config.Config
	loader   *asset.Loader
	logger   *slog.Logger
	renderer *Renderer
	driver   *showcase.Driver

	Scroll      ScrollState
	Interaction InteractionState
	Reload      ReloadState
	UI          UIState
}
