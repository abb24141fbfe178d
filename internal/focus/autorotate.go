package focus

import "time"

// Hold is a reason for pausing the ambient rotation. Holds are independent:
// releasing one never clears another.
type Hold uint8

const (
	// HoldPointer is set while a pointer button or touch is down
	HoldPointer Hold = 1 << iota
	// HoldFocus is set while an item is rotating into focus or focused
	HoldFocus
	// HoldScroll is set while the scroll zone stops the rotation
	HoldScroll
)

// AutoRotation is the slow ambient spin of the ring
type AutoRotation struct {
	// Speed is in radians per second
	Speed float64
	holds Hold
}

// NewAutoRotation creates an unheld auto-rotation
func NewAutoRotation(speed float64) *AutoRotation {
	return &AutoRotation{Speed: speed}
}

// Hold pauses the rotation for the given reason
func (a *AutoRotation) Hold(h Hold) { a.holds |= h }

// Release removes one hold reason
func (a *AutoRotation) Release(h Hold) { a.holds &^= h }

// Held reports whether the given reason is currently holding
func (a *AutoRotation) Held(h Hold) bool { return a.holds&h != 0 }

// Active reports whether no hold is set
func (a *AutoRotation) Active() bool { return a.holds == 0 }

// PointerDown stops auto-rotation while the pointer is pressed
func (a *AutoRotation) PointerDown() { a.Hold(HoldPointer) }

// PointerUp releases the pointer hold. Other holds stay in place.
func (a *AutoRotation) PointerUp() { a.Release(HoldPointer) }

// Step returns the rotation to apply for dt, zero while held
func (a *AutoRotation) Step(dt time.Duration) float64 {
	if !a.Active() || dt <= 0 {
		return 0
	}
	return a.Speed * dt.Seconds()
}
