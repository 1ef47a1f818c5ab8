// Package perft counts the leaf nodes of the pseudo-legal move tree.
//
// Every node is reached by executing a generated move, so the counts double as
// a consistency check of move generation and board transitions.
package perft

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/chesscore/internal/board"
)

// Cache stores subtree node counts keyed by board hash and remaining depth.
type Cache interface {
	Get(hash uint64, depth int) (uint64, bool, error)
	Put(hash uint64, depth int, nodes uint64) error
}

// minCachedDepth keeps shallow subtrees, which are cheaper to recount than to look up, out of the cache.
const minCachedDepth = 2

// Counter walks the move tree. Root moves are split across Workers goroutines;
// boards are immutable, so workers share nothing but the optional Cache.
type Counter struct {
	Workers int
	Cache   Cache

	// Leaf, when set, is called with every leaf board reached by executing
	// a move. It runs on worker goroutines. Subtrees answered from the
	// Cache are not visited.
	Leaf func(*board.Board)
}

// NewCounter creates a counter with one worker per CPU and no cache.
func NewCounter() *Counter {
	return &Counter{Workers: runtime.NumCPU()}
}

// Count returns the number of leaf nodes depth plies below b.
func (c *Counter) Count(ctx context.Context, b *board.Board, depth int) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}

	divide, err := c.Divide(ctx, b, depth)
	if err != nil {
		return 0, err
	}

	var nodes uint64
	for _, n := range divide {
		nodes += n
	}
	return nodes, nil
}

// Divide returns the leaf count below each root move, keyed by its coordinate form.
func (c *Counter) Divide(ctx context.Context, b *board.Board, depth int) (map[string]uint64, error) {
	moves := b.CurrentPlayerMoves()
	counts := make([]uint64, len(moves))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.Workers, 1))

	for i, m := range moves {
		i, m := i, m
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			next, err := m.Execute()
			if err != nil {
				return err
			}
			n, err := c.count(ctx, next, depth-1)
			if err != nil {
				return err
			}
			counts[i] = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	divide := make(map[string]uint64, len(moves))
	for i, m := range moves {
		divide[m.UCI()] = counts[i]
	}
	return divide, nil
}

// count executes every move down to the leaves, so a move that fails to
// execute surfaces as an error rather than a silent miscount.
func (c *Counter) count(ctx context.Context, b *board.Board, depth int) (uint64, error) {
	if depth <= 0 {
		if c.Leaf != nil {
			c.Leaf(b)
		}
		return 1, nil
	}

	cached := c.Cache != nil && depth >= minCachedDepth
	if cached {
		n, ok, err := c.Cache.Get(b.Hash(), depth)
		if err != nil {
			return 0, err
		}
		if ok {
			return n, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var nodes uint64
	for _, m := range b.CurrentPlayerMoves() {
		next, err := m.Execute()
		if err != nil {
			return 0, err
		}
		n, err := c.count(ctx, next, depth-1)
		if err != nil {
			return 0, err
		}
		nodes += n
	}

	if cached {
		if err := c.Cache.Put(b.Hash(), depth, nodes); err != nil {
			return 0, err
		}
	}
	return nodes, nil
}
