package showcase

// PointerDown stops the ambient rotation while a button or touch is held
func (d *Driver) PointerDown() {
	d.auto.PointerDown()
}

// PointerUp releases the pointer hold. A focused item keeps its own hold.
func (d *Driver) PointerUp() {
	d.auto.PointerUp()
}

// Drag orbits the camera by a pointer movement in pixels
func (d *Driver) Drag(dx, dy float64) {
	d.orbit.Drag(dx, dy, float64(d.height))
}

// Click picks the ring item under a screen position and focuses it.
// It reports whether a focus rotation started.
func (d *Driver) Click(x, y float64) bool {
	if d.rc.Ring == nil {
		return false
	}
	ray := d.rc.Camera.Ray(x, y, float64(d.width), float64(d.height))
	hit, ok := d.rc.Scene.Pick(ray)
	if !ok {
		return false
	}
	item := d.rc.Ring.ItemByNode(hit.Node)
	if item == nil {
		return false
	}
	d.logger.Debug("item picked", "item", item.Index(), "distance", hit.Distance)
	return d.focus.Select(item)
}

// Scroll records the page scroll offset. The camera follows on the next Tick.
func (d *Driver) Scroll(offset float64) {
	d.scrollOffset = offset
	d.scrolled = true
	if d.speed != nil {
		d.speed.Observe(offset)
	}
}

// RestoreScroll moves to offset without counting it as scroll movement, so
// the rotation speed stays at rest. Hosts use it after rebuilding a driver.
func (d *Driver) RestoreScroll(offset float64) {
	d.scrollOffset = offset
	d.scrolled = true
	if d.speed != nil {
		d.speed.Reset(offset)
	}
}

// Resize updates the viewport, the camera aspect and the offset ramp width
func (d *Driver) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	d.width, d.height = width, height
	d.syncViewport()
}

func (d *Driver) syncViewport() {
	cam := d.rc.Camera
	cam.SetAspect(float64(d.width) / float64(d.height))
	if d.mapper != nil {
		d.mapper.SetViewportWidth(float64(d.width) * d.cfg.Cell.ViewportRatio)
		d.applyFrame(d.frame)
		// offset ramps depend on the width
		d.scrolled = true
	}
}
