package cjsontools

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenBatchSerialPath(t *testing.T) {
	inputs := [][]byte{
		[]byte(`{"a":{"b":1}}`),
		[]byte(`{"c":2}`),
	}
	results, err := FlattenBatch(inputs, WithThreads(false))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.JSONEq(t, `{"a.b":1}`, string(results[0].Output))
	assert.JSONEq(t, `{"c":2}`, string(results[1].Output))
}

func TestFlattenBatchThreadedPathMatchesSerialContent(t *testing.T) {
	// Pad each document so the batch clears the total-size threshold and
	// the threaded call really goes through the worker pool.
	inputs := make([][]byte, 10)
	pad := strings.Repeat("p", threadHeuristicSizeBytes/len(inputs))
	for i := range inputs {
		inputs[i] = []byte(`{"x":{"y":1},"pad":"` + pad + `"}`)
	}
	require.True(t, shouldUseThreads(inputs, newBatchConfig([]BatchOption{WithThreads(true)})))

	serial, err := FlattenBatch(inputs, WithThreads(false))
	require.NoError(t, err)
	threaded, err := FlattenBatch(inputs, WithThreads(true), WithNumThreads(4))
	require.NoError(t, err)

	require.Len(t, threaded, len(serial))
	for i := range serial {
		require.NoError(t, serial[i].Err)
		require.NoError(t, threaded[i].Err)
		assert.JSONEq(t, string(serial[i].Output), string(threaded[i].Output))
	}
}

func TestFlattenBatchIsolatesPerDocumentFailures(t *testing.T) {
	inputs := [][]byte{
		[]byte(`{"a":1}`),
		[]byte(`not json`),
		[]byte(`{"b":2}`),
	}
	results, err := FlattenBatch(inputs, WithThreads(false))
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	require.Error(t, results[1].Err)
	var te *TaskError
	require.ErrorAs(t, results[1].Err, &te)
	assert.Equal(t, 1, te.Index)
	assert.NoError(t, results[2].Err)
}

func TestFlattenBatchEmptyInput(t *testing.T) {
	results, err := FlattenBatch(nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestShouldUseThreadsHeuristic(t *testing.T) {
	small := [][]byte{[]byte(`1`), []byte(`2`)}
	cfg := newBatchConfig(nil)
	assert.False(t, shouldUseThreads(small, cfg))

	// Count threshold met, but total size is tiny: still serial.
	manyTiny := make([][]byte, threadHeuristicCount)
	for i := range manyTiny {
		manyTiny[i] = []byte(`1`)
	}
	assert.False(t, shouldUseThreads(manyTiny, cfg))

	// Size threshold met, but only one document: still serial.
	big := [][]byte{make([]byte, threadHeuristicSizeBytes+1)}
	assert.False(t, shouldUseThreads(big, cfg))

	// Both thresholds met: parallelize.
	manyAndBig := make([][]byte, threadHeuristicCount)
	for i := range manyAndBig {
		manyAndBig[i] = make([]byte, threadHeuristicSizeBytes/threadHeuristicCount+1)
	}
	assert.True(t, shouldUseThreads(manyAndBig, cfg))

	forcedOff := newBatchConfig([]BatchOption{WithThreads(false)})
	assert.False(t, shouldUseThreads(manyAndBig, forcedOff))
}
