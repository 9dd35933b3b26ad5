package cjsontools

// PathTypes parses input and returns a single-level object mapping every
// leaf path to the name of its runtime JSON type, using the same
// dotted/bracketed path grammar as Flatten.
func PathTypes(input []byte, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	v, err := Parse(input)
	if err != nil {
		return nil, err
	}
	out := NewObject()
	pb := newPathBuilder()
	collectPathTypes(v, pb, out)
	return Serialize(out, cfg.pretty)
}

func collectPathTypes(v *Value, pb *pathBuilder, out *Value) {
	switch v.Kind {
	case KindObject:
		if v.Len() == 0 {
			out.Set(pb.String(), NewString(ScalarTypeName(v)))
			return
		}
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			pb.pushKey(key)
			collectPathTypes(child, pb, out)
			pb.pop()
		}
	case KindArray:
		if v.Len() == 0 {
			out.Set(pb.String(), NewString(ScalarTypeName(v)))
			return
		}
		for i, elem := range v.Arr {
			pb.pushIndex(i)
			collectPathTypes(elem, pb, out)
			pb.pop()
		}
	default:
		out.Set(pb.String(), NewString(ScalarTypeName(v)))
	}
}
