// Package tests holds black-box integration coverage for the public API,
// exercised only through the module's exported surface.
package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cjsontools "github.com/cjson-tools/cjsontools"
)

func TestFlattenAndPathTypesAgreeOnLeafSet(t *testing.T) {
	input := []byte(`{"user":{"id":1,"tags":["a","b"]},"active":true}`)

	flat, err := cjsontools.Flatten(input)
	require.NoError(t, err)
	types, err := cjsontools.PathTypes(input)
	require.NoError(t, err)

	flatVal, err := cjsontools.Parse(flat)
	require.NoError(t, err)
	typesVal, err := cjsontools.Parse(types)
	require.NoError(t, err)

	assert.ElementsMatch(t, flatVal.Keys(), typesVal.Keys())
}

func TestBuilderProducesSameResultAsChainedStandaloneCalls(t *testing.T) {
	input := []byte(`{"old_name":"old_val","drop":null,"empty":""}`)

	viaBuilder, err := cjsontools.NewBuilder().
		AddJSON(input).
		RemoveNulls().
		RemoveEmptyStrings().
		ReplaceKeys("^old_", "new_").
		Build()
	require.NoError(t, err)

	viaChain, err := cjsontools.RemoveNulls(input)
	require.NoError(t, err)
	viaChain, err = cjsontools.RemoveEmptyStrings(viaChain)
	require.NoError(t, err)
	viaChain, err = cjsontools.ReplaceKeys(viaChain, "^old_", "new_")
	require.NoError(t, err)

	assert.JSONEq(t, string(viaChain), string(viaBuilder))
}

func TestFlattenBatchAndGenerateSchemaBatchEndToEnd(t *testing.T) {
	docs := [][]byte{
		[]byte(`{"a":1,"b":{"c":"x"}}`),
		[]byte(`{"a":"y","d":[1,2]}`),
	}

	results, err := cjsontools.FlattenBatch(docs)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		require.NoError(t, r.Err)
	}

	schema, err := cjsontools.GenerateSchemaBatch(docs)
	require.NoError(t, err)
	schemaVal, err := cjsontools.Parse(schema)
	require.NoError(t, err)
	props, ok := schemaVal.Get("properties")
	require.True(t, ok)
	_, ok = props.Get("a")
	assert.True(t, ok)
}

func TestRoundTripPreservesNumberText(t *testing.T) {
	input := []byte(`{"pi":3.14000,"big":123456789012345,"neg":-0.5e10}`)
	out, err := cjsontools.Flatten(input)
	require.NoError(t, err)

	// Flatten doesn't touch scalar leaves' text, only restructures paths.
	flatVal, err := cjsontools.Parse(out)
	require.NoError(t, err)
	pi, ok := flatVal.Get("pi")
	require.True(t, ok)
	assert.Equal(t, "3.14000", pi.NumRaw)
}
