package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/tracklab/hdfsum/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags (wired to config/viper)
	cfgFile string
	quiet   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "hdfsum",
	Short: "hdfsum: summarize HDF5 sensor-position captures into CSV tables",
	Long: `hdfsum reads folders of HDF5 position captures and reduces each file to
per-sensor summaries: average XYZ position and maximum pairwise excursion.
Results are written as two spreadsheet-friendly CSV tables with one row per file.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.hdfsum/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress and non-essential output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = &cfgpkg.Global{
			InputExtensions:  []string{".hdf5", ".h5"},
			FloatPrecision:   -1,
			AverageFileName:  "average_positions.csv",
			DistanceFileName: "max_distances.csv",
			WriteManifest:    true,
		}
		return
	}
	cfg = c
}
