package cjsontools

import "sort"

// GenerateSchema parses input and infers a JSON-schema-shaped fragment
// describing its structure: "type" (a string, or an array of strings when
// a property or array position observes more than one runtime type),
// "properties" for objects, and "items" for arrays.
func GenerateSchema(input []byte, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	v, err := Parse(input)
	if err != nil {
		return nil, err
	}
	out := inferSchema(v)
	return Serialize(out, cfg.pretty)
}

// GenerateSchemaBatch infers a schema for each input independently, then
// folds them into a single schema describing the union of every document,
// via MergeSchemaValues. Per-document parse failures abort the whole call
// with a *TaskError, since there is no single "schema" to return otherwise.
func GenerateSchemaBatch(inputs [][]byte, opts ...BatchOption) ([]byte, error) {
	cfg := newBatchConfig(opts)
	var merged *Value
	for i, input := range inputs {
		v, err := Parse(input)
		if err != nil {
			return nil, &TaskError{Index: i, Cause: err}
		}
		s := inferSchema(v)
		if merged == nil {
			merged = s
		} else {
			merged = MergeSchemaValues(merged, s)
		}
	}
	if merged == nil {
		merged = NewObject()
	}
	return Serialize(merged, cfg.pretty)
}

func inferSchema(v *Value) *Value {
	out := NewObject()
	switch v.Kind {
	case KindObject:
		out.Set("type", NewString("object"))
		props := NewObject()
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			props.Set(key, inferSchema(child))
		}
		out.Set("properties", props)
	case KindArray:
		out.Set("type", NewString("array"))
		items := NewObject()
		for _, elem := range v.Arr {
			s := inferSchema(elem)
			if items.Len() == 0 {
				items = s
			} else {
				items = MergeSchemaValues(items, s)
			}
		}
		out.Set("items", items)
	default:
		out.Set("type", NewString(ScalarTypeName(v)))
	}
	return out
}

// schemaTypeNames returns the sorted set of type names a schema fragment's
// "type" field denotes, whether it holds a single string or an array.
func schemaTypeNames(typeField *Value) []string {
	if typeField == nil {
		return nil
	}
	set := make(map[string]struct{})
	switch typeField.Kind {
	case KindString:
		set[typeField.Str] = struct{}{}
	case KindArray:
		for _, e := range typeField.Arr {
			if e.Kind == KindString {
				set[e.Str] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// typeValueFromNames encodes a sorted name set back into a "type" field:
// a bare string for one name, a sorted array for more than one.
func typeValueFromNames(names []string) *Value {
	if len(names) == 0 {
		return NewNull()
	}
	if len(names) == 1 {
		return NewString(names[0])
	}
	sort.Strings(names)
	arr := NewArray()
	for _, n := range names {
		arr.Arr = append(arr.Arr, NewString(n))
	}
	return arr
}
