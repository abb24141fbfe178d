// Package gui hosts the showcase in a fyne window. Frames are drawn by the
// software raster renderer and shown as a canvas image.
package gui

import (
	"context"
	"image"
	"log/slog"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gocarousel/internal/showcase"
	"github.com/philipparndt/gocarousel/pkg/viewer"
)

// ScrollStep is the page distance of one wheel unit reported by fyne
const ScrollStep = 4.0

// ShowcaseView renders a showcase driver and forwards pointer and wheel input
type ShowcaseView struct {
	widget.BaseWidget

	driver *showcase.Driver
	raster *viewer.RasterRenderer
	image  *canvas.Image
	logger *slog.Logger

	scroll     float64
	maxScroll  float64
	isDragging bool
	onFrame    func(d *showcase.Driver)
}

// NewShowcaseView wraps a driver that was built with raster as its renderer
func NewShowcaseView(d *showcase.Driver, raster *viewer.RasterRenderer, logger *slog.Logger) *ShowcaseView {
	if logger == nil {
		logger = slog.Default()
	}
	v := &ShowcaseView{
		driver: d,
		raster: raster,
		image:  canvas.NewImageFromImage(raster.Image()),
		logger: logger,
	}
	v.image.FillMode = canvas.ImageFillStretch
	v.image.ScaleMode = canvas.ImageScalePixels
	if m := d.Mapper(); m != nil {
		zones := m.Zones()
		v.maxScroll = zones[len(zones)-1].End * 1.1
	}
	v.ExtendBaseWidget(v)
	return v
}

// SetOnFrame sets a callback run after every rendered frame
func (v *ShowcaseView) SetOnFrame(callback func(d *showcase.Driver)) {
	v.onFrame = callback
}

// ScrollOffset returns the virtual page offset
func (v *ShowcaseView) ScrollOffset() float64 {
	return v.scroll
}

// Step advances the driver by dt and shows the new frame.
// It must run on the fyne main thread.
func (v *ShowcaseView) Step(dt time.Duration) {
	if err := v.driver.Tick(dt); err != nil {
		v.logger.Error("frame failed", "err", err)
		return
	}
	v.image.Image = v.raster.Image()
	v.image.Refresh()
	if v.onFrame != nil {
		v.onFrame(v.driver)
	}
}

// Run ticks the view at fps until ctx is done
func (v *ShowcaseView) Run(ctx context.Context, fps int) {
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			fyne.Do(func() { v.Step(dt) })
		}
	}
}

// CreateRenderer creates the renderer for the widget
func (v *ShowcaseView) CreateRenderer() fyne.WidgetRenderer {
	return &showcaseRenderer{view: v}
}

// MouseDown holds the ambient rotation while a button is pressed
func (v *ShowcaseView) MouseDown(*desktop.MouseEvent) {
	v.driver.PointerDown()
}

// MouseUp releases the pointer hold
func (v *ShowcaseView) MouseUp(*desktop.MouseEvent) {
	v.driver.PointerUp()
}

// Dragged handles mouse drag events for orbiting
func (v *ShowcaseView) Dragged(event *fyne.DragEvent) {
	v.isDragging = true
	v.driver.Drag(float64(event.Dragged.DX), float64(event.Dragged.DY))
}

// DragEnd handles the end of a drag event
func (v *ShowcaseView) DragEnd() {
	v.isDragging = false
}

// Tapped focuses the ring item under the pointer
func (v *ShowcaseView) Tapped(event *fyne.PointEvent) {
	if v.isDragging {
		return
	}
	v.driver.Click(float64(event.Position.X), float64(event.Position.Y))
}

// Scrolled moves the virtual page
func (v *ShowcaseView) Scrolled(event *fyne.ScrollEvent) {
	offset := math.Max(0, v.scroll-float64(event.Scrolled.DY)*ScrollStep)
	if v.maxScroll > 0 {
		offset = math.Min(offset, v.maxScroll)
	}
	if offset == v.scroll {
		return
	}
	v.scroll = offset
	v.driver.Scroll(offset)
}

// showcaseRenderer implements fyne.WidgetRenderer
type showcaseRenderer struct {
	view *ShowcaseView
}

func (r *showcaseRenderer) Layout(size fyne.Size) {
	w, h := int(size.Width), int(size.Height)
	if w <= 0 || h <= 0 {
		return
	}
	r.view.image.Resize(size)
	if b := r.view.raster.Image().Bounds(); b.Dx() != w || b.Dy() != h {
		r.view.raster.Resize(w, h)
		r.view.driver.Resize(w, h)
	}
}

func (r *showcaseRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *showcaseRenderer) Refresh() {
	canvas.Refresh(r.view.image)
}

func (r *showcaseRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.view.image}
}

func (r *showcaseRenderer) Destroy() {}

// Snapshot returns the last rendered frame
func (v *ShowcaseView) Snapshot() image.Image {
	return v.raster.Image()
}
