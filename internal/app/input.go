package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// dragThreshold separates a click from a drag, in pixels
const dragThreshold = 4

// handleInput processes user input
func (app *App) handleInput() {
	if rl.IsWindowResized() {
		app.driver.Resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
	}

	if rl.IsKeyPressed(rl.KeyH) {
		app.UI.showHUD = !app.UI.showHUD
	}

	// Track mouse down for click vs drag detection
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Interaction.mouseDownPos = rl.GetMousePosition()
		app.Interaction.mouseMoved = false
		app.Interaction.pressed = true
		app.driver.PointerDown()
	}

	if app.Interaction.pressed && rl.IsMouseButtonDown(rl.MouseLeftButton) {
		pos := rl.GetMousePosition()
		if !app.Interaction.mouseMoved {
			dx := float64(pos.X - app.Interaction.mouseDownPos.X)
			dy := float64(pos.Y - app.Interaction.mouseDownPos.Y)
			app.Interaction.mouseMoved = math.Hypot(dx, dy) > dragThreshold
		}
		if app.Interaction.mouseMoved {
			delta := rl.GetMouseDelta()
			if delta.X != 0 || delta.Y != 0 {
				app.driver.Drag(float64(delta.X), float64(delta.Y))
			}
		}
	}

	if app.Interaction.pressed && rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		app.Interaction.pressed = false
		app.driver.PointerUp()
		if !app.Interaction.mouseMoved {
			pos := rl.GetMousePosition()
			app.driver.Click(float64(pos.X), float64(pos.Y))
		}
	}

	// Wheel and keys move the virtual page
	delta := -float64(rl.GetMouseWheelMove()) * app.Scroll.step
	switch {
	case rl.IsKeyPressed(rl.KeyDown):
		delta += app.Scroll.step
	case rl.IsKeyPressed(rl.KeyUp):
		delta -= app.Scroll.step
	case rl.IsKeyPressed(rl.KeyPageDown):
		delta += float64(rl.GetScreenHeight())
	case rl.IsKeyPressed(rl.KeyPageUp):
		delta -= float64(rl.GetScreenHeight())
	case rl.IsKeyPressed(rl.KeyHome):
		delta = -app.Scroll.offset
	}
	if delta != 0 {
		app.scrollBy(delta)
	}
}

// scrollBy moves the page and reports the new offset to the driver
func (app *App) scrollBy(delta float64) {
	offset := math.Max(0, app.Scroll.offset+delta)
	if app.Scroll.max > 0 {
		offset = math.Min(offset, app.Scroll.max)
	}
	if offset == app.Scroll.offset {
		return
	}
	app.Scroll.offset = offset
	app.driver.Scroll(offset)
}
