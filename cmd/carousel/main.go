package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gocarousel/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "carousel",
	Short: "An interactive 3D carousel and cell showcase",
	Long: `carousel renders a ring of magazine covers or image panels and a cell model
with a bouncing particle field. Items rotate to the front when clicked, and the
scroll position moves the camera through named zones.

Every setting can be overridden from a TOML file passed with --config.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
