package cjsontools

// MergeSchemaValues folds two inferred schema fragments into one
// describing the union of both: types are unioned, object properties are
// merged key-wise (recursing where both sides define the same property),
// and array item schemas are merged recursively. The merge is commutative
// and associative, so batch schema inference can fold documents in any
// order or grouping and reach the same result.
func MergeSchemaValues(a, b *Value) *Value {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	out := NewObject()

	aTypes := schemaTypeNames(mustGet(a, "type"))
	bTypes := schemaTypeNames(mustGet(b, "type"))
	out.Set("type", typeValueFromNames(unionStrings(aTypes, bTypes)))

	aProps, aHasProps := a.Get("properties")
	bProps, bHasProps := b.Get("properties")
	if aHasProps || bHasProps {
		out.Set("properties", mergeSchemaProperties(aProps, bProps))
	}

	aItems, aHasItems := a.Get("items")
	bItems, bHasItems := b.Get("items")
	switch {
	case aHasItems && bHasItems:
		out.Set("items", MergeSchemaValues(aItems, bItems))
	case aHasItems:
		out.Set("items", aItems)
	case bHasItems:
		out.Set("items", bItems)
	}

	return out
}

func mustGet(v *Value, key string) *Value {
	child, _ := v.Get(key)
	return child
}

func mergeSchemaProperties(a, b *Value) *Value {
	out := NewObject()
	if a != nil {
		for _, key := range a.Keys() {
			child, _ := a.Get(key)
			out.Set(key, child)
		}
	}
	if b != nil {
		for _, key := range b.Keys() {
			bChild, _ := b.Get(key)
			if aChild, ok := out.Get(key); ok {
				out.Set(key, MergeSchemaValues(aChild, bChild))
			} else {
				out.Set(key, bChild)
			}
		}
	}
	return out
}

// unionStrings returns the union of two string sets, given as
// already-deduplicated slices, in no particular order (typeValueFromNames
// sorts it).
func unionStrings(a, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		set[s] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	return out
}
