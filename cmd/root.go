package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dlacc/dlacc/memplan"
	"github.com/dlacc/dlacc/memplan/graphspec"
	"github.com/dlacc/dlacc/memplan/target"
)

var (
	// CLI flags for the memory allocation pass
	graphPath      string  // Path to the YAML graph description
	targetName     string  // Backend name (bm1680, bm1682, bm1880)
	localMemSize   uint64  // Local memory budget override in bytes (0 = target default)
	shrinkFactor   float64 // Per-step multiplier applied to value sizes when shrinking
	splitThreshold float64 // Shrink convergence guard before splitting
	logLevel       string  // Log verbosity level
	showStats      bool    // Print aggregated planning statistics
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "dlacc",
	Short: "Memory planning compiler for deep-learning accelerators",
}

// allocCmd runs the memory allocation pass using parameters from CLI flags
var allocCmd = &cobra.Command{
	Use:   "alloc",
	Short: "Plan local memory for a computation graph",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if graphPath == "" {
			logrus.Fatalf("Graph description not provided. Exiting.")
		}

		spec, err := graphspec.LoadGraphSpec(graphPath)
		if err != nil {
			logrus.Fatalf("unable to read graph description; %v", err)
		}
		graph, err := spec.Build()
		if err != nil {
			logrus.Fatalf("invalid graph description; %v", err)
		}

		var tgt target.Target
		if localMemSize > 0 {
			tgt = target.NewGenericTarget(targetName, localMemSize)
		} else {
			if !target.IsValidTarget(targetName) {
				logrus.Fatalf("Unknown target %q", targetName)
			}
			tgt = target.NewTarget(targetName)
		}

		logrus.Infof("Planning %q for target %s with %d bytes of local memory",
			graph.Name, tgt.Name(), tgt.LocalMemSize())

		cfg := memplan.NewPlannerConfig(shrinkFactor, splitThreshold)
		pass := memplan.NewMemoryAllocation(tgt, cfg)
		plan, err := pass.Run(graph)
		if err != nil {
			logrus.Fatalf("memory allocation failed; %v", err)
		}

		plan.Dump(os.Stdout)
		if showStats {
			plan.Stats.Print()
		}

		logrus.Info("Memory allocation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	allocCmd.Flags().StringVar(&graphPath, "graph", "", "Path to the YAML graph description")
	allocCmd.Flags().StringVar(&targetName, "target", "bm1880", "Backend name (bm1680, bm1682, bm1880)")
	allocCmd.Flags().Uint64Var(&localMemSize, "local-mem-size", 0, "Local memory budget override in bytes (0 = target default)")
	allocCmd.Flags().Float64Var(&shrinkFactor, "shrink-factor", memplan.DefaultShrinkFactor, "Per-step size multiplier used when shrinking a sub-graph")
	allocCmd.Flags().Float64Var(&splitThreshold, "split-threshold", memplan.DefaultSplitThreshold, "Peak ratio above which shrinking gives up and the sub-graph is split")
	allocCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	allocCmd.Flags().BoolVar(&showStats, "stats", false, "Print aggregated planning statistics")

	// Attach `alloc` as a subcommand to `root`
	rootCmd.AddCommand(allocCmd)
}
