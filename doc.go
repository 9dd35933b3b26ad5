// Package cjsontools implements a high-throughput JSON transformation engine:
// flattening, schema inference, path-type analysis, null/empty-string
// stripping, and regex key/value rewriting, individually or fused into a
// single tree traversal via Builder. A batch layer parallelizes independent
// documents across a bounded worker pool (see internal/pool).
package cjsontools
