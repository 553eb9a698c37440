package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/philipparndt/gotrim/internal/config"
	"github.com/philipparndt/gotrim/pkg/analysis"
	"github.com/philipparndt/gotrim/pkg/trim"
	"github.com/philipparndt/gotrim/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "gotrim",
	Short: "Reconstruct triangle surfaces from point clouds",
	Long: `gotrim builds the Delaunay tetrahedralization of a point cloud and trims it
down to a manifold triangle surface with an advancing front. It also generates
sample clouds and checks and measures the resulting STL files.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log trimming progress to stderr")
}

// loadConfig reads the configuration file and applies the trim flags the
// user set on cmd
func loadConfig(cmd *cobra.Command) (config.File, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.File{}, err
	}
	if cmd.Flags().Lookup(config.FlagStrategy) != nil {
		if err := config.Apply(cmd.Flags(), &cfg.Trim); err != nil {
			return config.File{}, err
		}
	}
	return cfg, nil
}

// limitsOf returns the trim thresholds surfaces are measured against
func limitsOf(c trim.Configuration) analysis.Limits {
	return analysis.Limits{MaxEdgeLength: c.MaxEdgeLength, SliverRatio: c.SliverRatio}
}

func newLogger() *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "", log.Ltime)
}

var (
	warn = color.New(color.FgYellow).SprintFunc()
	bad  = color.New(color.FgRed).SprintFunc()
	good = color.New(color.FgGreen).SprintFunc()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", bad("Error:"), err)
		os.Exit(1)
	}
}
