package cjsontools

// Flatten parses input, flattens nested objects/arrays into a single-level
// object of dotted/bracketed paths, and re-serializes it.
func Flatten(input []byte, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	v, err := Parse(input)
	if err != nil {
		return nil, err
	}
	out := flattenValueTree(v)
	return Serialize(out, cfg.pretty)
}

// flattenValueTree implements the flatten operation's top-level quirks
// shared by both the standalone Flatten and the fused Builder: a
// top-level array passes through unflattened, a top-level scalar is
// wrapped under the empty-string key, and only object trees are actually
// flattened into dotted/bracketed paths.
func flattenValueTree(v *Value) *Value {
	if v == nil {
		return NewObject()
	}
	switch v.Kind {
	case KindArray:
		return v
	case KindObject:
		out := NewObject()
		if v.Len() == 0 {
			return out
		}
		pb := newPathBuilder()
		flattenObject(v, pb, out)
		return out
	default:
		out := NewObject()
		out.Set("", v)
		return out
	}
}

func flattenObject(v *Value, pb *pathBuilder, out *Value) {
	for _, key := range v.Keys() {
		child, _ := v.Get(key)
		pb.pushKey(key)
		flattenInto(child, pb, out)
		pb.pop()
	}
}

func flattenInto(v *Value, pb *pathBuilder, out *Value) {
	switch v.Kind {
	case KindObject:
		if v.Len() == 0 {
			out.Set(pb.String(), v)
			return
		}
		flattenObject(v, pb, out)
	case KindArray:
		if v.Len() == 0 {
			out.Set(pb.String(), v)
			return
		}
		for i, elem := range v.Arr {
			pb.pushIndex(i)
			flattenInto(elem, pb, out)
			pb.pop()
		}
	default:
		out.Set(pb.String(), v)
	}
}
