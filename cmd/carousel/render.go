package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/philipparndt/gocarousel/internal/showcase"
	"github.com/philipparndt/gocarousel/pkg/anglemath"
	"github.com/philipparndt/gocarousel/pkg/viewer"
	"github.com/spf13/cobra"
)

var (
	renderFrames     int
	renderEvery      int
	renderOut        string
	renderSize       string
	renderCell       bool
	renderClick      string
	renderScrollFrom float64
	renderScrollTo   float64
)

var renderCmd = &cobra.Command{
	Use:   "render [cover...]",
	Short: "Render frames to PNG files without a window",
	Long: `Run the showcase headless with the software renderer and write PNG frames.
The scroll offset moves linearly from --scroll-from to --scroll-to over the run,
and --click selects the item under a pixel on the first frame.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().IntVarP(&renderFrames, "frames", "n", 120, "number of frames to simulate")
	renderCmd.Flags().IntVar(&renderEvery, "every", 30, "write every n-th frame")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "frames", "output directory")
	renderCmd.Flags().StringVar(&renderSize, "size", "", "frame size as WIDTHxHEIGHT (default from config)")
	renderCmd.Flags().BoolVar(&renderCell, "cell", false, "render the cell scene")
	renderCmd.Flags().StringVar(&renderClick, "click", "", "click position as X,Y on the first frame")
	renderCmd.Flags().Float64Var(&renderScrollFrom, "scroll-from", 0, "scroll offset at the first frame")
	renderCmd.Flags().Float64Var(&renderScrollTo, "scroll-to", 0, "scroll offset at the last frame")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Carousel.Items = args
	}
	if renderCell {
		cfg.Cell.Enabled = true
	}
	width, height := cfg.Window.Width, cfg.Window.Height
	if renderSize != "" {
		if width, height, err = parseSize(renderSize); err != nil {
			return err
		}
	}
	if renderFrames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", renderFrames)
	}
	if renderEvery <= 0 {
		renderEvery = renderFrames
	}

	raster := viewer.NewRasterRenderer(width, height)
	ctx := cmd.Context()
	if timeout := cfg.Assets.Timeout.Duration; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 4*timeout)
		defer cancel()
	}
	d, err := showcase.New(cfg, newLoader(cfg), raster,
		showcase.WithLogger(slog.Default()),
		showcase.WithViewport(width, height),
		showcase.WithLoadContext(ctx),
	)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(renderOut, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if renderClick != "" {
		x, y, err := parsePoint(renderClick)
		if err != nil {
			return err
		}
		if !d.Click(x, y) {
			fmt.Printf("Click at %.0f,%.0f hit no item\n", x, y)
		}
	}

	dt := time.Second / time.Duration(cfg.Window.FPS)
	scrolling := renderScrollFrom != 0 || renderScrollTo != 0
	written := 0
	for i := 0; i < renderFrames; i++ {
		if scrolling {
			t := 0.0
			if renderFrames > 1 {
				t = float64(i) / float64(renderFrames-1)
			}
			d.Scroll(anglemath.Lerp(renderScrollFrom, renderScrollTo, t))
		}
		if err := d.Tick(dt); err != nil {
			return err
		}
		if (i+1)%renderEvery != 0 && i != renderFrames-1 {
			continue
		}
		if err := writeFrame(raster, filepath.Join(renderOut, fmt.Sprintf("frame-%04d.png", i+1))); err != nil {
			return err
		}
		written++
	}

	stats := raster.Stats()
	fmt.Println("Render Summary")
	fmt.Println("==============")
	fmt.Printf("Frames: %d (%d written to %s)\n", renderFrames, written, renderOut)
	fmt.Printf("Size: %dx%d\n", width, height)
	fmt.Printf("Facets: %d drawn, %d culled, %d clipped\n", stats.Drawn, stats.Culled, stats.Clipped)
	fmt.Printf("Focus: %s\n", d.Focus().State())
	if it := d.Focus().Focused(); it != nil {
		fmt.Printf("Focused item: %d (%s)\n", it.Index(), it.Source().Path)
	}
	if d.Mapper() != nil {
		f := d.Frame()
		fmt.Printf("Zone: %s %.1f%% (fov %.2f, offset %.1f)\n", f.Zone, f.Progress*100, f.Params.FieldOfView, f.Params.ViewOffsetX)
	}
	return nil
}

func writeFrame(raster *viewer.RasterRenderer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := raster.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func parseSize(s string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q: want WIDTHxHEIGHT", s)
	}
	width, err1 := strconv.Atoi(w)
	height, err2 := strconv.Atoi(h)
	if err1 != nil || err2 != nil || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: want WIDTHxHEIGHT", s)
	}
	return width, height, nil
}

func parsePoint(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid point %q: want X,Y", s)
	}
	x, err1 := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, err2 := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("invalid point %q: want X,Y", s)
	}
	return x, y, nil
}
