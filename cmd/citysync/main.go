package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "citysync",
		Short: "Building placement and subdivision layout engine",
	}

	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(distributeCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a site config without starting the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func generateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [project-path]",
		Short: "Generate a subdivision batch and print the placements as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runGenerate(args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.total, "total", "n", 20, "number of buildings to generate")
	cmd.Flags().Float64Var(&opts.spacing, "spacing", 20, "grid spacing in meters")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "footprint scale factor applied to spacing")
	cmd.Flags().StringVar(&opts.mix, "mix", "60,30,10", "percentage mix detached,townhouse,midrise")
	cmd.Flags().StringVar(&opts.at, "at", "0,0", "cluster anchor as x,z")
	return cmd
}

func distributeCmd() *cobra.Command {
	var total int
	var mix string

	cmd := &cobra.Command{
		Use:   "distribute",
		Short: "Show how a percentage mix distributes over a building count",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDistribute(total, mix)
		},
	}

	cmd.Flags().IntVarP(&total, "total", "n", 20, "number of buildings")
	cmd.Flags().StringVar(&mix, "mix", "60,30,10", "percentage mix detached,townhouse,midrise")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int
	var dbPath string

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local dev server for interactive placement",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runServe(args[0], port, dbPath)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	cmd.Flags().StringVar(&dbPath, "db", "", "registry database path (default <project>/registry.db)")
	return cmd
}
