package bench

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config lists what to collect. The order of every list is the order of the
// rows in the summaries.
type Config struct {
	// Root is the benchmark directory holding bench/, indicators/, etc.
	Root         string   `toml:"root"`
	Datasets     []string `toml:"datasets"`
	Approaches   []string `toml:"approaches"`
	QueryLengths []int    `toml:"query_lengths"`
	// CompressionOutput and QueryOutput are the summary files. An empty value
	// skips that summary.
	CompressionOutput string `toml:"compression_output"`
	QueryOutput       string `toml:"query_output"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Root:              ".",
		CompressionOutput: "compression.tsv",
		QueryOutput:       "query.tsv",
	}
}

// LoadConfig reads a TOML configuration file on top of [DefaultConfig].
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return config, fmt.Errorf("failed to load collect configuration %q: %w", path, err)
	}
	return config, nil
}

// Collect writes the summaries selected by config.
func (c *Collector) Collect(config Config) error {
	if config.CompressionOutput != "" {
		if err := c.CollectCompression(config.CompressionOutput, config.Datasets); err != nil {
			return fmt.Errorf("failed to write compression summary: %w", err)
		}
	}
	if config.QueryOutput != "" {
		err := c.CollectQueries(
			config.QueryOutput, config.Datasets, config.Approaches, config.QueryLengths)
		if err != nil {
			return fmt.Errorf("failed to write query summary: %w", err)
		}
	}
	return nil
}
