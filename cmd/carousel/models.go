package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/philipparndt/gocarousel/pkg/stl"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models [file...]",
	Short: "Display information about the cell model parts",
	Long: `Show triangle counts and bounding boxes for STL files. Without arguments the
configured cell components are listed, together with the particle bounds the
cell scene derives from them.`,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	type part struct{ name, path string }
	var parts []part
	if len(args) > 0 {
		for _, a := range args {
			parts = append(parts, part{name: filepath.Base(a), path: a})
		}
	} else {
		loader := newLoader(cfg)
		for _, c := range cfg.Cell.Components {
			parts = append(parts, part{name: c.Name, path: loader.Resolve(c.Path)})
		}
	}

	fmt.Println("Model Parts")
	fmt.Println("===========")
	failed := 0
	for _, p := range parts {
		model, err := stl.ParseFile(p.path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", p.name, err)
			failed++
			continue
		}
		bbox := model.Centered().BoundingBox()
		size := bbox.Size()
		fmt.Printf("%s (%s)\n", p.name, p.path)
		fmt.Printf("  Triangles: %d\n", model.TriangleCount())
		fmt.Printf("  Size: %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)

		if len(args) == 0 && p.name == cfg.Cell.BoundsPart {
			fmt.Printf("  Particle bounds: %.3f (%.2f x max z %.3f)\n",
				bbox.Max.Z*cfg.Cell.BoundsFactor, cfg.Cell.BoundsFactor, bbox.Max.Z)
		}
	}

	if failed == len(parts) && failed > 0 {
		return fmt.Errorf("no model could be read")
	}
	return nil
}
