// Package ring holds the showcase items and their evenly spaced slots.
package ring

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/gocarousel/pkg/anglemath"
	"github.com/philipparndt/gocarousel/pkg/geometry"
	"github.com/philipparndt/gocarousel/pkg/scene"
)

// ErrEmpty is returned when a ring is built without items
var ErrEmpty = errors.New("ring needs at least one item")

// Layout selects where slots live
type Layout int

const (
	// Carousel places items on a horizontal circle facing outward
	Carousel Layout = iota
	// Helix places items on a cylinder facing the center
	Helix
)

// ParseLayout maps a config name to a layout
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "ring", "carousel", "":
		return Carousel, nil
	case "helix":
		return Helix, nil
	}
	return Carousel, fmt.Errorf("unknown layout %q", s)
}

// Source describes one item before it is placed
type Source struct {
	Path string
	Kind scene.MaterialKind
}

// Item is one entry of the ring. Its angular position is fixed when the ring
// is built.
type Item struct {
	index   int
	angle   float64
	source  Source
	scale   float64
	focused bool

	// Node is the scene node drawn for this item, if any
	Node *scene.Node
}

// Index returns the position of the item in the ring
func (it *Item) Index() int { return it.index }

// AngularPosition returns 2π·index/total
func (it *Item) AngularPosition() float64 { return it.angle }

// Source returns the asset the item was built from
func (it *Item) Source() Source { return it.source }

// Kind returns the material kind chosen at creation
func (it *Item) Kind() scene.MaterialKind { return it.source.Kind }

// Scale returns the current display scale
func (it *Item) Scale() float64 { return it.scale }

// SetScale changes the display scale and the node's scale
func (it *Item) SetScale(s float64) {
	it.scale = s
	if it.Node != nil {
		it.Node.Scale = s
	}
}

// Focused reports whether the item is the focused one
func (it *Item) Focused() bool { return it.focused }

// SetFocused marks the item focused or not
func (it *Item) SetFocused(f bool) { it.focused = f }

// Ring is a fixed set of evenly spaced items
type Ring struct {
	items   []*Item
	layout  Layout
	radius  float64
	yOffset float64
}

// New builds a ring over the sources in order
func New(sources []Source, layout Layout, radius, yOffset float64) (*Ring, error) {
	if len(sources) == 0 {
		return nil, ErrEmpty
	}
	if radius <= 0 || math.IsNaN(radius) {
		return nil, fmt.Errorf("ring radius must be positive, got %v", radius)
	}
	r := &Ring{layout: layout, radius: radius, yOffset: yOffset}
	total := float64(len(sources))
	for i, src := range sources {
		r.items = append(r.items, &Item{
			index:  i,
			angle:  anglemath.TwoPi * float64(i) / total,
			source: src,
			scale:  1,
		})
	}
	return r, nil
}

// Duplicate repeats the source list n times, the way the cover list is
// doubled to fill the ring
func Duplicate(sources []Source, n int) []Source {
	if n < 1 {
		n = 1
	}
	out := make([]Source, 0, len(sources)*n)
	for i := 0; i < n; i++ {
		out = append(out, sources...)
	}
	return out
}

// Len returns the number of items
func (r *Ring) Len() int { return len(r.items) }

// Items returns the items in index order
func (r *Ring) Items() []*Item { return r.items }

// Item returns the item at index i or nil
func (r *Ring) Item(i int) *Item {
	if i < 0 || i >= len(r.items) {
		return nil
	}
	return r.items[i]
}

// Radius returns the layout radius
func (r *Ring) Radius() float64 { return r.radius }

// Layout returns the active layout
func (r *Ring) Layout() Layout { return r.layout }

// ItemByNode finds the item owning a scene node
func (r *Ring) ItemByNode(n *scene.Node) *Item {
	if n == nil || n.Tag < 0 || n.Tag >= len(r.items) {
		return nil
	}
	it := r.items[n.Tag]
	if it.Node != n {
		return nil
	}
	return it
}

// Slot returns the local position and yaw of an item's slot
func (r *Ring) Slot(it *Item) (geometry.Vector3, float64) {
	theta := it.angle
	switch r.layout {
	case Helix:
		theta += math.Pi
		pos := geometry.NewVector3(math.Sin(theta)*r.radius, r.yOffset, math.Cos(theta)*r.radius)
		return pos, theta + math.Pi
	default:
		pos := geometry.NewVector3(math.Sin(theta)*r.radius, 0, math.Cos(theta)*r.radius)
		return pos, theta
	}
}

// Place moves every item node to its slot
func (r *Ring) Place() {
	for _, it := range r.items {
		if it.Node == nil {
			continue
		}
		it.Node.Position, it.Node.RotationY = r.Slot(it)
	}
}

// FrontIndex returns the item closest to facing the viewer when the ring
// is rotated by the given angle
func (r *Ring) FrontIndex(rotation float64) int {
	best := 0
	bestDelta := math.Inf(1)
	for _, it := range r.items {
		d := math.Abs(anglemath.Normalize(rotation + it.angle))
		if d < bestDelta {
			best, bestDelta = it.index, d
		}
	}
	return best
}
