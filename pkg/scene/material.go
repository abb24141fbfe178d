package scene

import (
	"image"
	"image/color"
)

// MaterialKind selects how a surface is shaded. It is fixed when an item is
// created and never inferred from the asset afterwards.
type MaterialKind int

const (
	// Opaque surfaces use a flat color
	Opaque MaterialKind = iota
	// Transmissive surfaces are blended over what is behind them
	Transmissive
	// Textured surfaces sample a horizontal region of an image
	Textured
)

func (k MaterialKind) String() string {
	switch k {
	case Opaque:
		return "opaque"
	case Transmissive:
		return "transmissive"
	case Textured:
		return "textured"
	default:
		return "unknown"
	}
}

// ParseMaterialKind maps a config name to a kind
func ParseMaterialKind(s string) (MaterialKind, bool) {
	switch s {
	case "opaque", "":
		return Opaque, true
	case "transmissive", "glass":
		return Transmissive, true
	case "textured":
		return Textured, true
	}
	return Opaque, false
}

// TextureRegion is the horizontal slice of a texture mapped onto a face,
// expressed like a texture offset and repeat in UV space.
type TextureRegion struct {
	Offset float64
	Repeat float64
}

// FullRegion maps the whole texture
var FullRegion = TextureRegion{Offset: 0, Repeat: 1}

// Material describes the shading of one face or a whole shape
type Material struct {
	Kind    MaterialKind
	Color   color.RGBA
	Opacity float64
	Texture image.Image
	Region  TextureRegion
}

// Flat returns an opaque material with a single color
func Flat(c color.RGBA) Material {
	return Material{Kind: Opaque, Color: c, Opacity: 1, Region: FullRegion}
}

// Glass returns a transmissive material
func Glass(c color.RGBA, opacity float64) Material {
	return Material{Kind: Transmissive, Color: c, Opacity: opacity, Region: FullRegion}
}

// Texture returns a textured material sampling region of img
func Texture(img image.Image, region TextureRegion) Material {
	return Material{Kind: Textured, Color: color.RGBA{255, 255, 255, 255}, Opacity: 1, Texture: img, Region: region}
}

// Sample returns the material color at texture coordinate (u, v) in [0, 1].
// Non-textured materials ignore the coordinate.
func (m Material) Sample(u, v float64) color.RGBA {
	if m.Kind != Textured || m.Texture == nil {
		return m.Color
	}
	b := m.Texture.Bounds()
	if b.Empty() {
		return m.Color
	}
	tu := m.Region.Offset + u*m.Region.Repeat
	x := b.Min.X + int(tu*float64(b.Dx()))
	y := b.Min.Y + int((1-v)*float64(b.Dy()))
	x = clampInt(x, b.Min.X, b.Max.X-1)
	y = clampInt(y, b.Min.Y, b.Max.Y-1)
	r, g, bl, a := m.Texture.At(x, y).RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8), uint8(a >> 8)}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
