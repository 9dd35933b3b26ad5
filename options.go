package cjsontools

import "runtime"

// config holds the options recognized by the single-document operations.
type config struct {
	pretty bool
}

// Option configures a single-document operation.
type Option func(*config)

// WithPretty enables 2-space-indented output instead of compact JSON.
func WithPretty(enable bool) Option {
	return func(c *config) { c.pretty = enable }
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// batchConfig holds the options recognized by the batch operations.
type batchConfig struct {
	pretty     bool
	useThreads bool
	numThreads int
}

// BatchOption configures a batch operation.
type BatchOption func(*batchConfig)

// WithBatchPretty enables 2-space-indented output for batch results.
func WithBatchPretty(enable bool) BatchOption {
	return func(c *batchConfig) { c.pretty = enable }
}

// WithThreads toggles whether a batch call is allowed to use the worker
// pool at all. When false, every document is processed serially on the
// calling goroutine regardless of WithNumThreads.
func WithThreads(enable bool) BatchOption {
	return func(c *batchConfig) { c.useThreads = enable }
}

// WithNumThreads pins the worker pool's size for a batch call. A value of
// 0 (the default) sizes the pool to GOMAXPROCS, capped at the number of
// documents in the batch.
func WithNumThreads(n int) BatchOption {
	return func(c *batchConfig) { c.numThreads = n }
}

func newBatchConfig(opts []BatchOption) batchConfig {
	c := batchConfig{useThreads: true}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// defaultParallelism mirrors the teacher's fallback of using all
// available cores when no explicit thread count is requested.
func defaultParallelism() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	return n
}
