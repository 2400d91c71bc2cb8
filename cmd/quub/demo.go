package quub

import (
	"fmt"
	"log/slog"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quubnetwork/quub/internal/jsonx"
	"github.com/quubnetwork/quub/internal/ledger"
	"github.com/quubnetwork/quub/internal/miner"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through a short mining session",
	Long: `demo seals three sample transfers into two blocks, verifies the chain
integrity and prints every block.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(chainConfig.Difficulty, viper.GetBool("json"))
	},
}

func init() {
	demoCmd.Flags().Bool("json", false, "Print the chain as JSON instead of rendered blocks")
	if err := viper.BindPFlags(demoCmd.Flags()); err != nil {
		slog.Error("Failed to bind demoCmd flags", "error", err)
	}
}

func runDemo(difficulty int, asJSON bool) error {
	chain := ledger.NewChain(difficulty)
	slog.Debug("Genesis block mined", "hash", chain.Latest().Hash, "difficulty", difficulty)

	rounds := [][]ledger.Record{
		{
			{"from": "Alice", "to": "Bob", "amount": 50},
			{"from": "Bob", "to": "Charlie", "amount": 25},
		},
		{
			{"from": "Charlie", "to": "Alice", "amount": 10},
		},
	}

	if !asJSON {
		pterm.DefaultSection.Println("quub demo chain")
	}

	for i, records := range rounds {
		for _, r := range records {
			chain.AddRecord(r)
		}
		if asJSON {
			if _, err := chain.MinePending(); err != nil {
				return fmt.Errorf("failed to mine block %d: %w", i+1, err)
			}
			continue
		}
		if err := mineRound(chain, i+1); err != nil {
			return err
		}
	}

	if err := chain.Verify(); err != nil {
		return fmt.Errorf("chain failed verification: %w", err)
	}

	if asJSON {
		out, err := jsonx.MarshalIndent(chain.Snapshot(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode chain: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	renderChain(chain)
	pterm.Success.Printfln("Verified %d blocks at difficulty %d", chain.Length(), difficulty)
	return nil
}

func mineRound(chain *ledger.Chain, n int) error {
	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Mining block %d...", n))
	res := <-miner.MineAsync(chain)
	if res.Err != nil {
		spinner.Fail(fmt.Sprintf("Block %d failed", n))
		return fmt.Errorf("failed to mine block %d: %w", n, res.Err)
	}
	spinner.Success(fmt.Sprintf("Block %d sealed with nonce %d", n, res.Block.Nonce))
	return nil
}

func renderChain(chain *ledger.Chain) {
	for i := 0; i < chain.Length(); i++ {
		b, _ := chain.Block(i)
		title := fmt.Sprintf("Block %d", b.Index)
		if b.Index == 0 {
			title = "Block 0 (genesis)"
		}
		records, _ := jsonx.Marshal(b.Data)
		body := fmt.Sprintf("Timestamp: %.6f\nNonce:     %d\nHash:      %s\nPrevious:  %s\nRecords:   %s",
			b.Timestamp, b.Nonce, b.Hash, b.PrevHash, records)
		pterm.DefaultBox.WithTitle(title).WithTitleTopLeft().Println(body)
	}
}
