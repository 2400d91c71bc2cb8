package quub

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quubnetwork/quub/internal/config"
	"github.com/quubnetwork/quub/internal/ledger"
	"github.com/quubnetwork/quub/internal/miner"
)

var benchConfig config.BenchConfig

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark the proof-of-work search",
	Long: `bench runs the parallel nonce search against a throwaway block and
reports the winning nonce and the hash rate.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		benchConfig = config.LoadBenchConfigFromCLI()
		if err := benchConfig.Validate(); err != nil {
			return fmt.Errorf("invalid bench configuration: %w", err)
		}

		slog.Debug("Command-line arguments", "benchConfig", benchConfig)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		handleInterrupt(cancel)

		if benchConfig.Timeout > 0 {
			var timeoutCancel context.CancelFunc
			ctx, timeoutCancel = context.WithTimeout(ctx, benchConfig.Timeout)
			defer timeoutCancel()
		}

		return runBench(ctx, chainConfig, benchConfig)
	},
}

func init() {
	benchCmd.Flags().IntP("workers", "w", runtime.NumCPU(), "Parallel search workers")
	benchCmd.Flags().Duration("timeout", 30*time.Second, "Abort the search after this long (0 searches forever)")

	if err := viper.BindPFlags(benchCmd.Flags()); err != nil {
		slog.Error("Failed to bind benchCmd flags", "error", err)
	}
}

func runBench(ctx context.Context, chainCfg config.ChainConfig, benchCfg config.BenchConfig) error {
	b := ledger.NewBlock(0, ledger.Now(), []ledger.Record{{"bench": true}}, "0")
	slog.Info("Searching", "difficulty", chainCfg.Difficulty, "workers", benchCfg.Workers)

	start := time.Now()
	if err := miner.Solve(ctx, b, chainCfg.Difficulty, benchCfg.Workers); err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}
	elapsed := time.Since(start)

	fmt.Printf("Solved difficulty %d in %s\n", chainCfg.Difficulty, elapsed.Round(time.Millisecond))
	fmt.Printf("Nonce: %d\n", b.Nonce)
	fmt.Printf("Hash:  %s\n", b.Hash)
	if elapsed > 0 {
		fmt.Printf("~%.0f hashes/s across %d workers\n", float64(b.Nonce+1)/elapsed.Seconds(), benchCfg.Workers)
	}
	return nil
}
