package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// InputExtensions selects which files in the input folder are processed.
	InputExtensions []string `mapstructure:"input_extensions" yaml:"input_extensions"`
	// FloatPrecision is the number of decimals in CSV cells; -1 means the
	// shortest representation that round-trips.
	FloatPrecision int `mapstructure:"float_precision" yaml:"float_precision"`
	// Output table file names, relative to the output folder.
	AverageFileName  string `mapstructure:"average_file_name" yaml:"average_file_name"`
	DistanceFileName string `mapstructure:"distance_file_name" yaml:"distance_file_name"`
	// WriteManifest controls whether a run_manifest.json is written alongside
	// the tables.
	WriteManifest bool `mapstructure:"write_manifest" yaml:"write_manifest"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.hdfsum/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".hdfsum")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("HDFSUM")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("input_extensions", []string{".hdf5", ".h5"})
	v.SetDefault("float_precision", -1)
	v.SetDefault("average_file_name", "average_positions.csv")
	v.SetDefault("distance_file_name", "max_distances.csv")
	v.SetDefault("write_manifest", true)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".hdfsum")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if len(c.InputExtensions) == 0 {
		c.InputExtensions = []string{".hdf5", ".h5"}
	}
	return &c, nil
}
