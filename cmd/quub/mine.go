package quub

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quubnetwork/quub/internal/config"
	"github.com/quubnetwork/quub/internal/ledger"
	"github.com/quubnetwork/quub/internal/metrics"
	"github.com/quubnetwork/quub/internal/metrics/collectors"
	"github.com/quubnetwork/quub/internal/miner"
)

var (
	mineConfig    config.MineConfig
	metricsConfig config.MetricsConfig
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine a batch of blocks filled with synthetic records",
	Long: `mine buffers synthetic transfer records, seals them into blocks one by
one and verifies the chain afterwards.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if parent := cmd.Parent(); parent != nil && parent.PreRunE != nil {
			if err := parent.PreRunE(parent, args); err != nil {
				return err
			}
		}

		mineConfig = config.LoadMineConfigFromCLI()
		if err := mineConfig.Validate(); err != nil {
			return fmt.Errorf("invalid mine configuration: %w", err)
		}

		metricsConfig = config.LoadMetricsConfigFromCLI()
		if err := metricsConfig.Validate(); err != nil {
			return fmt.Errorf("invalid metrics configuration: %w", err)
		}

		slog.Debug("Command-line arguments", "mineConfig", mineConfig, "metricsConfig", metricsConfig)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		handleInterrupt(cancel)

		return runMine(ctx, chainConfig, mineConfig, metricsConfig)
	},
}

func init() {
	mineCmd.Flags().IntP("blocks", "b", 5, "Number of blocks to mine")
	mineCmd.Flags().IntP("records", "n", 3, "Synthetic records per block")
	mineCmd.Flags().Bool("enable-prometheus", false, "Enable Prometheus metrics server")
	mineCmd.Flags().String("prometheus-addr", "0.0.0.0:2112", "Address and port of the Prometheus metrics server")

	if err := viper.BindPFlags(mineCmd.Flags()); err != nil {
		slog.Error("Failed to bind mineCmd flags", "error", err)
	}
}

func runMine(ctx context.Context, chainCfg config.ChainConfig, mineCfg config.MineConfig, metricsCfg config.MetricsConfig) error {
	chain := ledger.NewChain(chainCfg.Difficulty)
	mining := collectors.NewMiningMetrics()

	if metricsCfg.Enabled {
		server, err := metrics.CreateMetricsServer(chain, metricsCfg.Addr, mining)
		if err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		slog.Info("Prometheus metrics server started", "addr", metricsCfg.Addr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				slog.Error("Failed to shut down metrics server", "error", err)
			}
		}()
	}

	slog.Info("Mining blocks", "blocks", mineCfg.Blocks, "records", mineCfg.Records, "difficulty", chainCfg.Difficulty)

	bar := progressbar.NewOptions64(
		int64(mineCfg.Blocks),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription("Mining blocks..."),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	if err := bar.RenderBlank(); err != nil {
		return fmt.Errorf("failed to render progress bar: %w", err)
	}

	start := time.Now()
	var totalAttempts uint64
	for i := 0; i < mineCfg.Blocks; i++ {
		if ctx.Err() != nil {
			slog.Info("Mining cancelled by user")
			return ctx.Err()
		}

		for j := 0; j < mineCfg.Records; j++ {
			chain.AddRecord(syntheticRecord(i, j))
		}

		blockStart := time.Now()
		res := <-miner.MineAsync(chain)
		if res.Err != nil {
			return fmt.Errorf("failed to mine block %d: %w", i+1, res.Err)
		}

		attempts := res.Block.Nonce + 1
		totalAttempts += attempts
		mining.ObserveBlock(attempts, time.Since(blockStart))

		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}

	if err := bar.Finish(); err != nil {
		return fmt.Errorf("failed to finish progress bar: %w", err)
	}

	if err := chain.Verify(); err != nil {
		return fmt.Errorf("chain failed verification after mining: %w", err)
	}

	elapsed := time.Since(start)
	fmt.Printf("Mined %d blocks (%d hashes) in %s, ~%.0f hashes/s\n",
		mineCfg.Blocks, totalAttempts, elapsed.Round(time.Millisecond), float64(totalAttempts)/elapsed.Seconds())
	fmt.Println("Chain verified: every block linked and sealed")
	return nil
}

func syntheticRecord(block, seq int) ledger.Record {
	return ledger.Record{
		"from":   fmt.Sprintf("wallet-%d", block),
		"to":     fmt.Sprintf("wallet-%d", block+1),
		"amount": seq + 1,
	}
}

// handleInterrupt handles interrupt signals for graceful shutdown.
func handleInterrupt(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		slog.Info("Received interrupt signal, shutting down...")
		cancel()
	}()
}
