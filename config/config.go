// Package config handles runtime configuration for the yobipow miner.
package config

import (
	"flag"
	"runtime"
)

// Config holds the miner's runtime settings. None of these are part of
// the proof wire format except the hashing params and difficulty, which
// the operator must share with verifiers out of band.
type Config struct {
	// Hashing parameters. When MemoryTarget is non-empty the params are
	// derived from it instead.
	SCost uint32
	TCost uint32
	Delta uint32

	// MemoryTarget is a decimal byte count to derive params from.
	MemoryTarget string

	// Difficulty in leading zero bits, [3, 63].
	Difficulty uint32

	// Salt is the hex-encoded 64-byte salt; empty means random.
	Salt string

	// Threads is the number of mining goroutines.
	Threads int

	// Logging
	Log LogConfig
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
	JSON  bool
	File  string
}

// Default returns the default miner configuration.
func Default() *Config {
	return &Config{
		SCost:      1,
		TCost:      1,
		Delta:      3,
		Difficulty: 3,
		Threads:    runtime.NumCPU(),
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

// Load parses command-line flags over the defaults.
func Load(args []string) (*Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("yobipow", flag.ContinueOnError)
	sCost := fs.Uint("s-cost", uint(cfg.SCost), "Balloon space cost (buffer slots)")
	tCost := fs.Uint("t-cost", uint(cfg.TCost), "Balloon time cost (mixing rounds)")
	delta := fs.Uint("delta", uint(cfg.Delta), "Balloon dependencies per slot per round")
	fs.StringVar(&cfg.MemoryTarget, "memory", "", "Derive params from a target byte count (decimal)")
	difficulty := fs.Uint("difficulty", uint(cfg.Difficulty), "Required leading zero bits [3, 63]")
	fs.StringVar(&cfg.Salt, "salt", "", "Hex-encoded 64-byte salt (default: random)")
	fs.IntVar(&cfg.Threads, "threads", cfg.Threads, "Mining goroutines")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.Log.JSON, "log-json", cfg.Log.JSON, "Log as JSON")
	fs.StringVar(&cfg.Log.File, "log-file", cfg.Log.File, "Also log to this file (JSON)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.SCost = uint32(*sCost)
	cfg.TCost = uint32(*tCost)
	cfg.Delta = uint32(*delta)
	cfg.Difficulty = uint32(*difficulty)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
