// Package miner provides mining orchestration on top of the ledger core:
// asynchronous sealing of pending records and a parallel proof-of-work
// search for standalone blocks.
package miner

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/quubnetwork/quub/internal/ledger"
)

// Result carries the outcome of an asynchronous mining round.
type Result struct {
	Block *ledger.Block
	Err   error
}

// MineAsync runs Chain.MinePending on its own goroutine and delivers exactly
// one Result on the returned channel. The channel is buffered, so an
// abandoned result does not leak the goroutine.
func MineAsync(c *ledger.Chain) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		b, err := c.MinePending()
		out <- Result{Block: b, Err: err}
		close(out)
	}()
	return out
}

// Solve runs a parallel proof-of-work search over b's nonce space. The space
// is partitioned by stride: worker w probes b.Nonce+w, b.Nonce+w+workers, and
// so on, each against a private copy of the block. The first worker to find a
// satisfying digest publishes its nonce and hash into b and cancels the rest.
//
// On context cancellation the search stops and b is left untouched. Solve is
// for standalone blocks; chain sealing goes through Chain.MinePending.
func Solve(ctx context.Context, b *ledger.Block, difficulty, workers int) error {
	if difficulty <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}

	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu     sync.Mutex
		winner *ledger.Block
	)

	g, searchCtx := errgroup.WithContext(searchCtx)
	stride := uint64(workers)
	for w := 0; w < workers; w++ {
		candidate := *b
		candidate.Nonce = b.Nonce + uint64(w)
		g.Go(func() error {
			for {
				select {
				case <-searchCtx.Done():
					return nil
				default:
				}
				candidate.Hash = candidate.ComputeHash()
				if candidate.MeetsDifficulty(difficulty) {
					mu.Lock()
					if winner == nil {
						winner = &candidate
					}
					mu.Unlock()
					cancel()
					return nil
				}
				candidate.Nonce += stride
			}
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if winner == nil {
		return errors.Wrap(ctx.Err(), "proof-of-work search aborted")
	}
	b.Nonce = winner.Nonce
	b.Hash = winner.Hash
	return nil
}
