package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/btcsuite/btclog"
	lru "github.com/krisalay/lru-cache"
	"github.com/spf13/cobra"
)

// benchLog is the command's own logger; the cache package logs through the
// same backend under its own subsystem tag.
var benchLog = btclog.Disabled

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Measure LRU cache throughput against golang-lru",
		Long: `benchmark runs a random get/put workload against the LRU cache and,
optionally, against hashicorp/golang-lru as a baseline.

Every flag can also be set through an LRUBENCH_ environment variable
(for example LRUBENCH_READ_RATIO=0.9) or a config file passed with --config.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}

			setupLogging(cfg.LogLevel)

			return run(cmd.Context(), cfg)
		},
	}

	addFlags(cmd.Flags())
	return cmd
}

func setupLogging(level string) {
	backend := btclog.NewBackend(os.Stdout)

	lvl, _ := btclog.LevelFromString(level)

	benchLog = backend.Logger("BNCH")
	benchLog.SetLevel(lvl)

	cacheLog := backend.Logger(lru.Subsystem)
	cacheLog.SetLevel(lvl)
	lru.UseLogger(cacheLog)
}

func run(ctx context.Context, cfg *config) error {
	benchLog.Infof("Config: capacity=%d keys=%d ops/worker=%d workers=%d "+
		"read-ratio=%.2f shared=%v seed=%d", cfg.Capacity, cfg.Keys,
		cfg.Ops, cfg.Workers, cfg.ReadRatio, cfg.Shared, cfg.Seed)

	results := make([]result, 0, 2)
	for _, impl := range cfg.impls() {
		benchLog.Infof("Running %s workload", impl)

		res, err := runWorkload(ctx, cfg, impl)
		if err != nil {
			return fmt.Errorf("%s workload failed: %w", impl, err)
		}
		results = append(results, res)
	}

	fmt.Println("\n================ RESULTS =================")
	for _, r := range results {
		fmt.Printf("%-10s ops=%-10d time=%-14v throughput=%.2f ops/sec "+
			"hit-ratio=%.3f\n", r.impl, r.ops, r.duration,
			r.throughput(), r.hitRatio())
	}
	fmt.Println("==========================================")

	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
