// yobipow mines and verifies Balloon-hash proofs of work.
//
// Usage:
//
//	yobipow [--difficulty=N --s-cost=S --t-cost=T --delta=D]  Mine a proof
//	yobipow --memory=BYTES                                    Derive params from a memory budget
//	yobipow --help                                            Show help
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yobicash/yobicrypto/config"
	"github.com/yobicash/yobicrypto/internal/log"
	"github.com/yobicash/yobicrypto/pkg/hash"
	"github.com/yobicash/yobicrypto/pkg/pow"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Miner.Error().Err(err).Msg("mining failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	params, err := cfg.Params()
	if err != nil {
		return err
	}

	salt, err := loadSalt(cfg.Salt)
	if err != nil {
		return err
	}

	proof, err := pow.New(salt, params, cfg.Difficulty)
	if err != nil {
		return err
	}
	proof.Threads = cfg.Threads

	mem, err := proof.Memory()
	if err != nil {
		return err
	}

	log.Miner.Info().
		Uint32("s_cost", params.SCost).
		Uint32("t_cost", params.TCost).
		Uint32("delta", params.Delta).
		Uint32("difficulty", cfg.Difficulty).
		Int("threads", cfg.Threads).
		Str("memory_bytes", mem.String()).
		Str("salt", salt.String()).
		Msg("mining")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if err := proof.MineContext(ctx); err != nil {
		return err
	}
	if !proof.Mined() {
		log.Miner.Warn().Msg("nonce space exhausted without a proof")
		return nil
	}

	if err := proof.Validate(); err != nil {
		return err
	}

	log.Miner.Info().
		Uint64("nonce", *proof.Nonce).
		Str("digest", proof.Digest.String()).
		Dur("elapsed", time.Since(start)).
		Msg("proof found and verified")

	fmt.Printf("nonce:  %d\n", *proof.Nonce)
	fmt.Printf("digest: %s\n", proof.Digest)
	return nil
}

// loadSalt decodes the configured salt or draws a random one.
func loadSalt(s string) (hash.Digest, error) {
	if s == "" {
		var salt hash.Digest
		if _, err := rand.Read(salt[:]); err != nil {
			return hash.Digest{}, err
		}
		return salt, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return hash.Digest{}, err
	}
	return hash.FromBytes(b)
}
