package showcase

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/philipparndt/gocarousel/internal/config"
	"github.com/philipparndt/gocarousel/internal/ring"
	"github.com/philipparndt/gocarousel/pkg/geometry"
	"github.com/philipparndt/gocarousel/pkg/scene"
)

// Magazine proportions: an 8.4 x 11 inch cover, 0.15 inch thick
var MagazineSize = geometry.NewVector3(1, 11.0/8.4, 0.15/8.4)

// PanelSize is the helix image panel
var PanelSize = geometry.NewVector3(1.2, 0.9, 0.01)

// The cover image is a spread: back cover, spine and front cover side by side
var (
	FrontRegion = scene.TextureRegion{Offset: 0.505, Repeat: 0.495}
	BackRegion  = scene.TextureRegion{Offset: 0, Repeat: 0.495}
	SpineRegion = scene.TextureRegion{Offset: 0.495, Repeat: 0.01}
)

// MagazineFaces returns the per-face materials for a cover spread
func MagazineFaces(cover image.Image, edge color.RGBA) [6]scene.Material {
	flat := scene.Flat(edge)
	var faces [6]scene.Material
	faces[scene.FaceRight] = flat
	faces[scene.FaceLeft] = scene.Texture(cover, SpineRegion)
	faces[scene.FaceTop] = flat
	faces[scene.FaceBottom] = flat
	faces[scene.FaceFront] = scene.Texture(cover, FrontRegion)
	faces[scene.FaceBack] = scene.Texture(cover, BackRegion)
	return faces
}

func uniformFaces(m scene.Material) [6]scene.Material {
	return [6]scene.Material{m, m, m, m, m, m}
}

func (d *Driver) buildRing(assets Assets) error {
	cfg := d.cfg.Carousel
	if len(cfg.Items) == 0 {
		return nil
	}
	kind, ok := scene.ParseMaterialKind(strings.ToLower(cfg.ItemKind))
	if !ok {
		return fmt.Errorf("unknown item kind %q", cfg.ItemKind)
	}
	layout, err := ring.ParseLayout(strings.ToLower(cfg.Layout))
	if err != nil {
		return err
	}
	edge, err := config.ParseColor(cfg.SpineColor)
	if err != nil {
		return fmt.Errorf("carousel spine color: %w", err)
	}

	textures := map[string]image.Image{}
	if kind == scene.Textured {
		for _, res := range assets.LoadTextures(d.loadCtx, unique(cfg.Items)) {
			if res.Err == nil {
				textures[res.Source] = res.Image
			}
		}
	}

	var sources []ring.Source
	for _, src := range ring.Duplicate(toSources(cfg.Items, kind), cfg.Duplicate) {
		if kind == scene.Textured && textures[src.Path] == nil {
			continue
		}
		sources = append(sources, src)
	}
	if len(sources) == 0 {
		return fmt.Errorf("%w: %d configured", errNoItems, len(cfg.Items))
	}

	radius, yOffset := cfg.Radius, 0.0
	if layout == ring.Helix {
		radius, yOffset = cfg.Helix.Radius, cfg.Helix.YOffset
	}
	r, err := ring.New(sources, layout, radius, yOffset)
	if err != nil {
		return fmt.Errorf("failed to build ring: %w", err)
	}

	group := scene.NewGroup("ring")
	for _, it := range r.Items() {
		node := d.itemNode(it, layout, textures[it.Source().Path], edge)
		node.Tag = it.Index()
		node.Pickable = true
		it.Node = node
		group.Add(node)
	}
	r.Place()
	d.rc.Scene.Root.Add(group)
	d.rc.Ring = r
	d.rc.RingGroup = group

	if cfg.Assembly.Enabled {
		d.assembly = ring.NewAssembly(r, cfg.Assembly.Scatter, cfg.Assembly.Duration.Duration, cfg.Assembly.Seed)
	}
	d.logger.Info("ring built", "items", r.Len(), "configured", len(cfg.Items)*max(cfg.Duplicate, 1), "layout", cfg.Layout)
	return nil
}

func (d *Driver) itemNode(it *ring.Item, layout ring.Layout, cover image.Image, edge color.RGBA) *scene.Node {
	name := fmt.Sprintf("item-%d", it.Index())
	size := MagazineSize
	if layout == ring.Helix {
		size = PanelSize
	}
	switch it.Kind() {
	case scene.Textured:
		if layout == ring.Helix {
			faces := uniformFaces(scene.Flat(edge))
			faces[scene.FaceFront] = scene.Texture(cover, scene.FullRegion)
			faces[scene.FaceBack] = scene.Texture(cover, scene.FullRegion)
			return scene.NewBox(name, size, faces)
		}
		return scene.NewBox(name, size, MagazineFaces(cover, edge))
	case scene.Transmissive:
		return scene.NewBox(name, size, uniformFaces(scene.Glass(edge, 0.5)))
	default:
		return scene.NewBox(name, size, uniformFaces(scene.Flat(edge)))
	}
}

func toSources(paths []string, kind scene.MaterialKind) []ring.Source {
	out := make([]ring.Source, len(paths))
	for i, p := range paths {
		out[i] = ring.Source{Path: p, Kind: kind}
	}
	return out
}

func unique(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
