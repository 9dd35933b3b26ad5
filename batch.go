package cjsontools

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/cjson-tools/cjsontools/internal/pool"
)

// threadHeuristicSizeBytes and threadHeuristicCount gate whether a batch
// call bothers spinning up the worker pool at all: small batches finish
// faster processed serially on the calling goroutine than they would
// after paying for goroutine dispatch and queue synchronization.
const (
	threadHeuristicSizeBytes = 64 * 1024
	threadHeuristicCount     = 4
)

// Result holds one batch slot's outcome. Object key order is preserved
// from the input, and the serial and threaded paths run the same
// per-document operation, so both produce the same Output bytes for the
// same input set.
type Result struct {
	Output []byte
	Err    error
}

// FlattenBatch runs Flatten over every input independently, in parallel
// when threads are allowed (WithThreads, on by default) and the batch
// meets both the count and total-size thresholds, and serially
// otherwise. A per-document failure is reported
// in that slot's Result.Err as a *TaskError and does not affect other
// slots.
func FlattenBatch(inputs [][]byte, opts ...BatchOption) ([]Result, error) {
	cfg := newBatchConfig(opts)
	return runBatch(inputs, cfg, func(input []byte) ([]byte, error) {
		return Flatten(input, WithPretty(cfg.pretty))
	})
}

func shouldUseThreads(inputs [][]byte, cfg batchConfig) bool {
	if !cfg.useThreads {
		return false
	}
	if len(inputs) < threadHeuristicCount {
		return false
	}
	var total int
	for _, in := range inputs {
		total += len(in)
	}
	return total >= threadHeuristicSizeBytes
}

func workerCount(cfg batchConfig, n int) int {
	if cfg.numThreads > 0 {
		return cfg.numThreads
	}
	w := defaultParallelism()
	if w > n {
		w = n
	}
	if w < 1 {
		w = 1
	}
	return w
}

func runBatch(inputs [][]byte, cfg batchConfig, fn func([]byte) ([]byte, error)) ([]Result, error) {
	results := make([]Result, len(inputs))
	if len(inputs) == 0 {
		return results, nil
	}

	if !shouldUseThreads(inputs, cfg) {
		for i, input := range inputs {
			out, err := fn(input)
			if err != nil {
				results[i] = Result{Err: &TaskError{Index: i, Cause: err}}
				continue
			}
			results[i] = Result{Output: out}
		}
		return results, nil
	}

	workers := workerCount(cfg, len(inputs))
	p := pool.New(workers, workers*2)
	defer p.Shutdown(pool.Drain)

	g, _ := errgroup.WithContext(context.Background())
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			done := make(chan struct{})
			accepted := p.Submit(func() {
				defer close(done)
				out, err := fn(input)
				if err != nil {
					results[i] = Result{Err: &TaskError{Index: i, Cause: err}}
					return
				}
				results[i] = Result{Output: out}
			})
			if !accepted {
				return ErrPoolStopped
			}
			<-done
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
