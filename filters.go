package cjsontools

// RemoveNulls parses input and returns it with every object entry whose
// value is JSON null removed, recursively.
func RemoveNulls(input []byte, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	v, err := Parse(input)
	if err != nil {
		return nil, err
	}
	out := stripTree(v, isNull)
	return Serialize(out, cfg.pretty)
}

// RemoveEmptyStrings parses input and returns it with every object entry
// whose value is the empty string removed, recursively.
func RemoveEmptyStrings(input []byte, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	v, err := Parse(input)
	if err != nil {
		return nil, err
	}
	out := stripTree(v, isEmptyString)
	return Serialize(out, cfg.pretty)
}

func isNull(v *Value) bool { return v.Kind == KindNull }

func isEmptyString(v *Value) bool { return v.Kind == KindString && v.Str == "" }

// stripTree returns a copy of v with any object entry satisfying drop
// removed at every level; arrays keep their elements (including ones
// satisfying drop) since array position is meaningful, only object keys
// are filtered.
func stripTree(v *Value, drop func(*Value) bool) *Value {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindObject:
		out := NewObject()
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			if drop(child) {
				continue
			}
			out.Set(key, stripTree(child, drop))
		}
		return out
	case KindArray:
		arr := NewArray()
		for _, elem := range v.Arr {
			arr.Arr = append(arr.Arr, stripTree(elem, drop))
		}
		return arr
	default:
		return v
	}
}
