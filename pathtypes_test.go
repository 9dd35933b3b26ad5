package cjsontools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathTypesBasic(t *testing.T) {
	out, err := PathTypes([]byte(`{"a":1,"b":"x","c":true,"d":null,"e":1.5}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"integer","b":"string","c":"boolean","d":"null","e":"number"}`, string(out))
}

func TestPathTypesNestedAndArrayIndices(t *testing.T) {
	out, err := PathTypes([]byte(`{"a":{"b":[1,"x"]}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a.b[0]":"integer","a.b[1]":"string"}`, string(out))
}

func TestPathTypesEmptyContainersAreLeaves(t *testing.T) {
	out, err := PathTypes([]byte(`{"a":{},"b":[]}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"object","b":"array"}`, string(out))
}
