// Package schedule expresses the run's concurrency policy as a value: a
// single ForEach combinator runs N generation units either strictly in order
// (interactive runs, so prompts never interleave) or as an unordered
// concurrent fan-out (the default).
package schedule

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Policy selects how a batch of generation units is run.
type Policy int

const (
	// Sequential runs units one at a time, in order, stopping at the first error.
	Sequential Policy = iota

	// Concurrent launches all units together and waits for the whole batch,
	// returning the first error observed.
	Concurrent
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	if p == Sequential {
		return "sequential"
	}
	return "concurrent"
}

// ForPolicy maps the interactive flag to its scheduling policy.
func ForPolicy(interactive bool) Policy {
	if interactive {
		return Sequential
	}
	return Concurrent
}

// ForEach runs fn for every index in [0, n) under the given policy.
func ForEach(ctx context.Context, policy Policy, n int, fn func(ctx context.Context, i int) error) error {
	if policy == Sequential {
		for i := 0; i < n; i++ {
			if err := fn(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		group.Go(func() error {
			return fn(groupCtx, i)
		})
	}
	return group.Wait()
}
