package main

import (
	"fmt"
	"math"

	"github.com/philipparndt/gocarousel/internal/particles"
	"github.com/philipparndt/gocarousel/pkg/anglemath"
	"github.com/spf13/cobra"
)

var (
	particleTicks int
	particleCount int
	particleSeed  uint64
)

var particlesCmd = &cobra.Command{
	Use:   "particles",
	Short: "Simulate the particle field and check the boundary",
	Long: `Run the reflective particle field headless for a number of ticks and report
how far particles travelled past the boundary. Particles may overshoot by at
most one step; the command fails if any went further.`,
	RunE: runParticles,
}

func init() {
	particlesCmd.Flags().IntVarP(&particleTicks, "ticks", "t", 10000, "number of ticks to simulate")
	particlesCmd.Flags().IntVar(&particleCount, "count", 0, "particle count (default from config)")
	particlesCmd.Flags().Uint64Var(&particleSeed, "seed", 0, "random seed (default from config)")
	rootCmd.AddCommand(particlesCmd)
}

func runParticles(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pc := cfg.Particles
	if particleCount > 0 {
		pc.Count = particleCount
	}
	if cmd.Flags().Changed("seed") {
		pc.Seed = particleSeed
	}

	field, err := particles.New(particles.Config{
		Count:         pc.Count,
		BoundsRadius:  pc.BoundsRadius,
		SpawnFraction: pc.SpawnFraction,
		Speed:         pc.Speed,
		MaxDeflection: anglemath.DegToRad(pc.MaxDeflection),
		Seed:          pc.Seed,
	})
	if err != nil {
		return err
	}

	for i := 0; i < particleTicks; i++ {
		field.Tick()
	}

	stats := field.Stats()
	limit := pc.BoundsRadius + pc.Speed
	overshoot := math.Max(0, stats.MaxDistance-pc.BoundsRadius)

	fmt.Println("Particle Field")
	fmt.Println("==============")
	fmt.Printf("Particles: %d\n", field.Len())
	fmt.Printf("Ticks: %d\n", stats.Ticks)
	fmt.Printf("Bounds radius: %.4f (step %.4f)\n", pc.BoundsRadius, pc.Speed)
	fmt.Printf("Reflections: %d\n", stats.Reflections)
	fmt.Printf("Resampled directions: %d\n", stats.Resamples)
	fmt.Printf("Max distance: %.6f (overshoot %.6f)\n", stats.MaxDistance, overshoot)

	if stats.MaxDistance > limit {
		return fmt.Errorf("particle left the soft boundary: %.6f > %.6f", stats.MaxDistance, limit)
	}
	fmt.Println("Boundary: ok")
	return nil
}
