package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tracklab/hdfsum/internal/batch"
	"github.com/tracklab/hdfsum/internal/hdf"
	"github.com/tracklab/hdfsum/internal/report"
	"github.com/tracklab/hdfsum/internal/utils"
)

var (
	procExts      []string
	procPrecision int
	procManifest  bool
)

// fileReader is the reader the process command runs with; tests substitute a
// fake so command behavior can be exercised without libhdf5 fixtures.
var fileReader hdf.Reader = hdf.HDF5Reader{}

var processCmd = &cobra.Command{
	Use:   "process <input_folder> <output_folder>",
	Short: "Summarize every data file in a folder into two CSV tables",
	Long: `Process reads every HDF5 file in input_folder, computes per-sensor average
positions and maximum pairwise excursions, and writes average_positions.csv and
max_distances.csv to output_folder. A file that cannot be read still occupies a
row with blank cells; only setup problems abort the run.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputDir, outputDir := args[0], args[1]

		exts := cfg.InputExtensions
		if cmd.Flags().Changed("ext") {
			exts = procExts
		}
		precision := cfg.FloatPrecision
		if cmd.Flags().Changed("precision") {
			precision = procPrecision
		}
		writeManifest := cfg.WriteManifest
		if cmd.Flags().Changed("manifest") {
			writeManifest = procManifest
		}

		info, err := os.Stat(inputDir)
		if err != nil || !info.IsDir() {
			if err == nil {
				err = fmt.Errorf("not a directory")
			}
			return &batch.SetupError{Op: "open input folder", Path: inputDir, Err: err}
		}
		if err := utils.EnsureDir(outputDir); err != nil {
			return &batch.SetupError{Op: "create output folder", Path: outputDir, Err: err}
		}

		names, paths, err := utils.ListDataFiles(inputDir, exts)
		if err != nil {
			return &batch.SetupError{Op: "scan input folder", Path: inputDir, Err: err}
		}

		manifest := report.NewManifest(inputDir)

		agg := batch.New(fileReader)
		if !quiet {
			agg.Progress = func(i, n int, name string) {
				fmt.Printf("[%d/%d] Processing %s...\n", i+1, n, name)
			}
		}
		res := agg.Process(names, paths)

		for _, w := range res.Warnings {
			fmt.Fprintf(os.Stderr, "⚠ Warning: %s\n", w)
		}

		emitter := report.Emitter{FloatPrecision: precision}
		avgPath := filepath.Join(outputDir, cfg.AverageFileName)
		if err := emitter.WriteAverages(avgPath, res.Columns, res.Rows); err != nil {
			return fmt.Errorf("write averages table: %w", err)
		}
		distPath := filepath.Join(outputDir, cfg.DistanceFileName)
		if err := emitter.WriteDistances(distPath, res.Columns, res.Rows); err != nil {
			return fmt.Errorf("write distances table: %w", err)
		}

		if writeManifest {
			manifest.Finish(res)
			if err := manifest.Write(outputDir); err != nil {
				return fmt.Errorf("write manifest: %w", err)
			}
		}

		if !quiet {
			fmt.Printf("✓ Processed %d files (%d failed, %d warnings) → %s\n",
				len(res.Rows), res.Failed, len(res.Warnings), outputDir)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().StringSliceVar(&procExts, "ext", nil, "input file extensions (overrides config, e.g. --ext .hdf5,.h5)")
	processCmd.Flags().IntVar(&procPrecision, "precision", -1, "decimals per CSV cell; -1 = shortest round-trip (overrides config)")
	processCmd.Flags().BoolVar(&procManifest, "manifest", true, "write run_manifest.json beside the tables (overrides config)")
}
