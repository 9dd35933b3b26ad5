package cjsontools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchemaObject(t *testing.T) {
	out, err := GenerateSchema([]byte(`{"name":"alice","age":30,"tags":["a","b"]}`))
	require.NoError(t, err)

	v, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, "object", mustGet(v, "type").Str)

	props, ok := v.Get("properties")
	require.True(t, ok)

	name, _ := props.Get("name")
	assert.Equal(t, "string", mustGet(name, "type").Str)

	age, _ := props.Get("age")
	assert.Equal(t, "integer", mustGet(age, "type").Str)

	tags, _ := props.Get("tags")
	assert.Equal(t, "array", mustGet(tags, "type").Str)
	items, ok := tags.Get("items")
	require.True(t, ok)
	assert.Equal(t, "string", mustGet(items, "type").Str)
}

func TestGenerateSchemaScalar(t *testing.T) {
	out, err := GenerateSchema([]byte(`42`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"integer"}`, string(out))
}

func TestGenerateSchemaEmptyArrayHasEmptyItems(t *testing.T) {
	out, err := GenerateSchema([]byte(`[]`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"array","items":{}}`, string(out))
}

func TestGenerateSchemaEmptyObjectHasEmptyProperties(t *testing.T) {
	out, err := GenerateSchema([]byte(`{}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"object","properties":{}}`, string(out))
}

func TestGenerateSchemaBatchUnionsAcrossDocuments(t *testing.T) {
	out, err := GenerateSchemaBatch([][]byte{
		[]byte(`{"id":1}`),
		[]byte(`{"id":"x","name":"y"}`),
	})
	require.NoError(t, err)

	v, err := Parse(out)
	require.NoError(t, err)
	props, ok := v.Get("properties")
	require.True(t, ok)

	id, _ := props.Get("id")
	assert.ElementsMatch(t, []string{"integer", "string"}, schemaTypeNames(mustGet(id, "type")))

	name, ok := props.Get("name")
	require.True(t, ok)
	assert.Equal(t, "string", mustGet(name, "type").Str)
}

func TestGenerateSchemaBatchPerDocumentErrorIsTaskError(t *testing.T) {
	_, err := GenerateSchemaBatch([][]byte{[]byte(`{"a":1}`), []byte(`not json`)})
	require.Error(t, err)
	var te *TaskError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 1, te.Index)
}
