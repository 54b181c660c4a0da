package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/tracklab/hdfsum/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set hdfsum configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("input_extensions: %s\n", strings.Join(cfg.InputExtensions, ","))
		fmt.Printf("float_precision: %d\n", cfg.FloatPrecision)
		fmt.Printf("average_file_name: %s\n", cfg.AverageFileName)
		fmt.Printf("distance_file_name: %s\n", cfg.DistanceFileName)
		fmt.Printf("write_manifest: %t\n", cfg.WriteManifest)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "input_extensions":
			exts := strings.Split(val, ",")
			for i, e := range exts {
				e = strings.TrimSpace(e)
				if e == "" || !strings.HasPrefix(e, ".") {
					return fmt.Errorf("invalid extension %q (use a comma list like .hdf5,.h5)", e)
				}
				exts[i] = e
			}
			cfg.InputExtensions = exts
		case "float_precision":
			i, err := strconv.Atoi(val)
			if err != nil || i < -1 {
				return fmt.Errorf("invalid int for float_precision: %v", val)
			}
			cfg.FloatPrecision = i
		case "average_file_name":
			cfg.AverageFileName = val
		case "distance_file_name":
			cfg.DistanceFileName = val
		case "write_manifest":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for write_manifest: %v", val)
			}
			cfg.WriteManifest = b
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
