// Package config loads meshedge settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultFormat    = "table"
	DefaultPrecision = -1
	DefaultWorkers   = 1
	DefaultDebounce  = 500 * time.Millisecond

	// EnvPath names the environment variable holding the config path.
	EnvPath = "MESHEDGE_CONFIG"

	// DefaultPath is read when neither a flag nor EnvPath names a file.
	DefaultPath = "meshedge.toml"
)

// Formats lists the accepted output formats
var Formats = []string{"table", "csv", "json", "yaml"}

// Config is the top-level configuration
type Config struct {
	Output  OutputConfig  `toml:"output"`
	Compute ComputeConfig `toml:"compute"`
	Watch   WatchConfig   `toml:"watch"`
}

// OutputConfig controls how tables are printed.
type OutputConfig struct {
	// Format is one of: table | csv | json | yaml.
	Format string `toml:"format"`

	// Precision is the number of digits after the decimal point.
	// -1 prints the shortest representation that round-trips.
	Precision int `toml:"precision"`
}

// ComputeConfig controls the edge length computation.
type ComputeConfig struct {
	// Workers is the number of goroutines; 0 or 1 computes sequentially.
	Workers int `toml:"workers"`
}

// WatchConfig controls the watch command.
type WatchConfig struct {
	// Debounce is how long to wait after the last change before recomputing.
	Debounce time.Duration `toml:"debounce"`
}

// Default returns a config with every field set to its default
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format:    DefaultFormat,
			Precision: DefaultPrecision,
		},
		Compute: ComputeConfig{Workers: DefaultWorkers},
		Watch:   WatchConfig{Debounce: DefaultDebounce},
	}
}

// Load reads the config at path over the defaults. An empty path falls back
// to $MESHEDGE_CONFIG and then to ./meshedge.toml; a missing fallback file
// is not an error, a missing explicit path is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvPath)
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config: %s: unknown key %q", path, undecoded[0].String())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges
func (c *Config) Validate() error {
	if !slices.Contains(Formats, c.Output.Format) {
		return fmt.Errorf("config: output.format %q must be one of %v", c.Output.Format, Formats)
	}
	if c.Output.Precision < -1 {
		return fmt.Errorf("config: output.precision must be >= -1, got %d", c.Output.Precision)
	}
	if c.Compute.Workers < 0 {
		return fmt.Errorf("config: compute.workers must be >= 0, got %d", c.Compute.Workers)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("config: watch.debounce must be >= 0, got %s", c.Watch.Debounce)
	}
	return nil
}
