// Package cmd provides the CLI commands for census-report.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"census-report/internal/config"
	"census-report/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "census-report",
	Short: "Aggregate demographic count records into summary reports",
	Long: `census-report groups row-level census population records by any
combination of demographic dimensions and produces summary tables with
counts and percentages, optionally reshaped into cross-tabulations.

Examples:
  census-report report --years 2020 --group-by Race
  census-report report --years 2020,2021 --counties Cook,Lake --group-by Age,Sex
  census-report report --years 2020 --group-by Race --format csv -o report.csv`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.census-report.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("census-report version 0.1.0")
	},
}

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		fmt.Printf("data folder:    %s\n", cfg.Data.Folder)
		fmt.Printf("reference file: %s\n", orBuiltin(cfg.Data.ReferenceFile))
		fmt.Printf("output format:  %s\n", cfg.Output.DefaultFormat)
		fmt.Printf("server address: %s\n", cfg.Server.Address)
		return nil
	},
}

func orBuiltin(s string) string {
	if s == "" {
		return "(built-in)"
	}
	return s
}
