package main

import (
	"fmt"
	"strconv"

	"github.com/philipparndt/gocarousel/internal/scroll"
	"github.com/philipparndt/gocarousel/internal/showcase"
	"github.com/spf13/cobra"
)

var zonesStep float64

var zonesCmd = &cobra.Command{
	Use:   "zones [offset...]",
	Short: "Validate the scroll zones and show the camera at given offsets",
	Long: `Validate the configured scroll zones, list boundaries where the field of view
jumps, and print the zone, progress and camera parameters for each offset.
Without offsets the range is sampled every --step pixels.`,
	RunE: runZones,
}

func init() {
	zonesCmd.Flags().Float64Var(&zonesStep, "step", 300, "sampling step when no offsets are given")
	rootCmd.AddCommand(zonesCmd)
}

func runZones(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	zones := showcase.ZonesFromConfig(cfg.Scroll.Zones)
	initial := scroll.CameraParams{}
	if len(zones) > 0 {
		initial.FieldOfView = zones[0].StartFOV
	}
	m, err := scroll.NewMapper(zones, initial)
	if err != nil {
		return fmt.Errorf("invalid scroll zones: %w", err)
	}
	m.SetViewportWidth(float64(cfg.Window.Width) * cfg.Cell.ViewportRatio)

	fmt.Println("Scroll Zones")
	fmt.Println("============")
	for _, z := range zones {
		fmt.Printf("  %-10s %7.0f - %-7.0f fov %6.2f -> %-6.2f", z.Name, z.Start, z.End, z.StartFOV, z.EndFOV)
		if z.Offset != nil {
			fmt.Printf(" offset %.0f + %.2f·width", z.Offset.Start, z.Offset.WidthRatio)
		}
		if z.HaltAutoRotateAt > 0 {
			fmt.Printf(" halt rotation past %.0f%%", z.HaltAutoRotateAt*100)
		}
		fmt.Println()
	}

	if gaps := m.Discontinuities(); len(gaps) > 0 {
		fmt.Println("\nDiscontinuities:")
		for _, g := range gaps {
			fmt.Printf("  %.0f %s -> %s: fov %.2f jumps to %.2f\n", g.Offset, g.From, g.To, g.FOVEnd, g.FOVNew)
		}
	}

	var offsets []float64
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("invalid offset %q: %w", a, err)
		}
		offsets = append(offsets, v)
	}
	if len(offsets) == 0 && len(zones) > 0 {
		if zonesStep <= 0 {
			return fmt.Errorf("step must be positive, got %v", zonesStep)
		}
		end := zones[len(zones)-1].End
		for v := 0.0; v <= end+zonesStep; v += zonesStep {
			offsets = append(offsets, v)
		}
	}

	fmt.Println("\nCamera:")
	for _, v := range offsets {
		f := m.Update(v)
		if f.Beyond {
			fmt.Printf("  %7.0f  beyond range, frozen at fov %.2f offset %.1f\n", v, f.Params.FieldOfView, f.Params.ViewOffsetX)
			continue
		}
		rotate := "on"
		if !f.AutoRotate {
			rotate = "off"
		}
		fmt.Printf("  %7.0f  %-10s %5.1f%%  fov %6.2f  offset %7.1f  rotate %s\n",
			v, f.Zone, f.Progress*100, f.Params.FieldOfView, f.Params.ViewOffsetX, rotate)
	}
	return nil
}
