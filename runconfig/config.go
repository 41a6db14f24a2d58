// Package runconfig holds the JSON-configurable knobs for a spsim run:
// where the program image lives, how many cycles to allow before
// giving up, and which trace/dump files to emit. Structurally this
// follows the teacher's timing/latency.TimingConfig: a plain struct
// with json tags, DefaultConfig/LoadConfig/SaveConfig/Validate.
package runconfig

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds one run's settings.
type Config struct {
	// Program is the path to the hex memory image to load.
	Program string `json:"program"`

	// MaxCycles bounds how many cycles the run will tick before it is
	// declared non-terminating. Default: 1,000,000.
	MaxCycles uint64 `json:"max_cycles"`

	// CycleTracePath is where the per-cycle architectural trace is
	// written. Empty disables cycle tracing. Default: "cycle_trace.txt".
	CycleTracePath string `json:"cycle_trace_path"`

	// InstTracePath is where the loader's one-line "program ... loaded"
	// record is written. Empty disables it. Default: "inst_trace.txt".
	InstTracePath string `json:"inst_trace_path"`

	// SramiDumpPath and SramdDumpPath are where the post-halt memory
	// images are written. Empty disables the corresponding dump.
	// Defaults: "srami_out.txt" and "sramd_out.txt".
	SramiDumpPath string `json:"srami_dump_path"`
	SramdDumpPath string `json:"sramd_dump_path"`
}

// DefaultConfig returns a Config with the reference model's default
// file names and a generous cycle bound.
func DefaultConfig() *Config {
	return &Config{
		MaxCycles:      1_000_000,
		CycleTracePath: "cycle_trace.txt",
		InstTracePath:  "inst_trace.txt",
		SramiDumpPath:  "srami_out.txt",
		SramdDumpPath:  "sramd_out.txt",
	}
}

// LoadConfig reads a Config from a JSON file, starting from
// DefaultConfig and overlaying whatever fields the file sets.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse run config: %w", err)
	}

	return config, nil
}

// SaveConfig writes c to path as indented JSON.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize run config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run config file: %w", err)
	}

	return nil
}

// Validate checks that the config names a program and a usable cycle
// bound.
func (c *Config) Validate() error {
	if c.Program == "" {
		return fmt.Errorf("program must be set")
	}
	if c.MaxCycles == 0 {
		return fmt.Errorf("max_cycles must be > 0")
	}
	return nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
