package showcase

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/philipparndt/gocarousel/internal/config"
	"github.com/philipparndt/gocarousel/internal/particles"
	"github.com/philipparndt/gocarousel/pkg/anglemath"
	"github.com/philipparndt/gocarousel/pkg/geometry"
	"github.com/philipparndt/gocarousel/pkg/scene"
)

// Cell is the cell model: loaded parts, the waving blob and its particles
type Cell struct {
	Group *scene.Node
	Parts map[string]*scene.Node
	Blob  *scene.Node
	Dots  []*scene.Node
	// Bounds is the particle bounds radius actually used
	Bounds float64

	waveStep float64
}

func (c *Cell) step(field *particles.Field) {
	if c.Blob.Wave != nil {
		c.Blob.Wave.Time += c.waveStep
	}
	if field == nil {
		return
	}
	field.Tick()
	for i, p := range field.Particles() {
		if i < len(c.Dots) {
			c.Dots[i].Position = p.Position
		}
	}
}

func (d *Driver) buildCell(assets Assets) error {
	cfg := d.cfg.Cell
	cell := &Cell{
		Group:    scene.NewGroup("cell"),
		Parts:    map[string]*scene.Node{},
		waveStep: cfg.WaveTimeStep,
	}

	paths := make([]string, len(cfg.Components))
	for i, c := range cfg.Components {
		paths[i] = c.Path
	}
	models := assets.LoadModels(d.loadCtx, paths)
	for i, comp := range cfg.Components {
		res := models[i]
		if res.Err != nil {
			continue
		}
		m, err := componentMaterial(comp)
		if err != nil {
			return fmt.Errorf("cell component %q: %w", comp.Name, err)
		}
		node := scene.NewMesh(comp.Name, res.Model.Triangles, m)
		node.Position = geometry.NewVector3(0, 0, comp.Z)
		cell.Group.Add(node)
		cell.Parts[comp.Name] = node
	}

	bounds := d.cfg.Particles.BoundsRadius
	if part, ok := cell.Parts[cfg.BoundsPart]; ok {
		box := scene.WorldBounds(part).Translate(part.Position.Negate())
		if z := box.Max.Z * cfg.BoundsFactor; z > 0 {
			bounds = z
		}
	} else {
		d.logger.Warn("bounds part missing, using configured particle bounds", "part", cfg.BoundsPart, "bounds", bounds)
	}
	cell.Bounds = bounds

	blob := scene.NewSphere("blob", bounds+cfg.BlobPadding, cfg.BlobSegments,
		scene.Glass(color.RGBA{R: 128, G: 160, B: 255, A: 255}, 0.1))
	blob.Wave = &scene.Wave{Deformation: cfg.Deformation, Amplitude: 1}
	cell.Group.Add(blob)
	cell.Blob = blob

	pc := d.cfg.Particles
	field, err := particles.New(particles.Config{
		Count:         pc.Count,
		BoundsRadius:  bounds,
		SpawnFraction: pc.SpawnFraction,
		Speed:         pc.Speed,
		MaxDeflection: anglemath.DegToRad(pc.MaxDeflection),
		Seed:          pc.Seed,
	})
	if err != nil {
		return err
	}
	black := scene.Flat(color.RGBA{A: 255})
	for i, p := range field.Particles() {
		dot := scene.NewSphere(fmt.Sprintf("particle-%d", i), pc.SphereRadius, 6, black)
		dot.Position = p.Position
		blob.Add(dot)
		cell.Dots = append(cell.Dots, dot)
	}

	d.field = field
	d.rc.Cell = cell
	d.rc.Scene.Root.Add(cell.Group)
	d.logger.Info("cell built", "parts", len(cell.Parts), "bounds", bounds, "particles", field.Len())
	return nil
}

func componentMaterial(c config.ComponentConfig) (scene.Material, error) {
	kind, ok := scene.ParseMaterialKind(strings.ToLower(c.Material))
	if !ok {
		return scene.Material{}, fmt.Errorf("unknown material %q", c.Material)
	}
	col := color.RGBA{255, 255, 255, 255}
	if c.Color != "" {
		var err error
		if col, err = config.ParseColor(c.Color); err != nil {
			return scene.Material{}, err
		}
	}
	switch kind {
	case scene.Transmissive:
		return scene.Glass(col, c.Opacity), nil
	default:
		return scene.Flat(col), nil
	}
}
