package cjsontools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeCompactRoundTrip(t *testing.T) {
	src := `{"a":1,"b":[1,2,3],"c":"x","d":null,"e":true,"f":1.5}`
	v, err := Parse([]byte(src))
	require.NoError(t, err)
	out, err := Serialize(v, false)
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}

func TestSerializePretty(t *testing.T) {
	v, err := Parse([]byte(`{"a":1,"b":{"c":2}}`))
	require.NoError(t, err)
	out, err := Serialize(v, true)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": {\n    \"c\": 2\n  }\n}", string(out))
}

func TestSerializeEmptyContainers(t *testing.T) {
	out, err := Serialize(NewObject(), false)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))

	out, err = Serialize(NewArray(), false)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestSerializeStringEscaping(t *testing.T) {
	v := NewString("a\nb\"c\\d")
	out, err := Serialize(v, false)
	require.NoError(t, err)
	assert.Equal(t, `"a\nb\"c\\d"`, string(out))
}
