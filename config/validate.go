package config

import (
	"encoding/hex"
	"fmt"

	"github.com/yobicash/yobicrypto/pkg/balloon"
	"github.com/yobicash/yobicrypto/pkg/hash"
	"github.com/yobicash/yobicrypto/pkg/memory"
	"github.com/yobicash/yobicrypto/pkg/pow"
)

// Validate checks the miner config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if cfg.MemoryTarget != "" {
		if _, err := memory.FromString(cfg.MemoryTarget); err != nil {
			return fmt.Errorf("memory must be a decimal byte count: %w", err)
		}
	} else if _, err := balloon.NewParams(cfg.SCost, cfg.TCost, cfg.Delta); err != nil {
		return fmt.Errorf("s-cost and t-cost must be >= 1 and delta >= %d: %w", balloon.MinDelta, err)
	}

	if cfg.Difficulty < pow.MinDifficulty || cfg.Difficulty > pow.MaxDifficulty {
		return fmt.Errorf("difficulty must be in range [%d, %d]", pow.MinDifficulty, pow.MaxDifficulty)
	}

	if cfg.Salt != "" {
		b, err := hex.DecodeString(cfg.Salt)
		if err != nil {
			return fmt.Errorf("salt must be hex: %w", err)
		}
		if len(b) != hash.DigestSize {
			return fmt.Errorf("salt must be %d bytes, got %d", hash.DigestSize, len(b))
		}
	}

	if cfg.Threads < 1 {
		return fmt.Errorf("threads must be >= 1")
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log-level must be debug, info, warn, or error")
	}

	return nil
}

// Params builds the Balloon params from the config, deriving them from
// the memory target when one is set.
func (c *Config) Params() (balloon.Params, error) {
	if c.MemoryTarget != "" {
		target, err := memory.FromString(c.MemoryTarget)
		if err != nil {
			return balloon.Params{}, err
		}
		return balloon.ParamsFromMemory(target)
	}
	return balloon.NewParams(c.SCost, c.TCost, c.Delta)
}
