package cjsontools

import "regexp"

// ReplaceKeys parses input and rewrites every object key whose text
// matches pattern as a substring, substituting each match with
// replacement literally (no backreference expansion), recursively through
// the whole tree.
func ReplaceKeys(input []byte, pattern, replacement string, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}
	v, err := Parse(input)
	if err != nil {
		return nil, err
	}
	out := rewriteKeys(v, re, replacement)
	return Serialize(out, cfg.pretty)
}

// ReplaceValues parses input and rewrites every string value whose text
// matches pattern as a substring, the same way ReplaceKeys rewrites keys.
// Non-string values are left untouched.
func ReplaceValues(input []byte, pattern, replacement string, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}
	v, err := Parse(input)
	if err != nil {
		return nil, err
	}
	out := rewriteValues(v, re, replacement)
	return Serialize(out, cfg.pretty)
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Reason: err.Error()}
	}
	return re, nil
}

// applyRewrite substitutes every match of re in s with replacement,
// literally. Returns s unchanged (same string, not a copy) when there is
// no match, so callers can cheaply detect a no-op.
func applyRewrite(re *regexp.Regexp, replacement, s string) string {
	if !re.MatchString(s) {
		return s
	}
	return re.ReplaceAllLiteralString(s, replacement)
}

func rewriteKeys(v *Value, re *regexp.Regexp, replacement string) *Value {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindObject:
		out := NewObject()
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			newKey := applyRewrite(re, replacement, key)
			out.Set(newKey, rewriteKeys(child, re, replacement))
		}
		return out
	case KindArray:
		arr := NewArray()
		for _, elem := range v.Arr {
			arr.Arr = append(arr.Arr, rewriteKeys(elem, re, replacement))
		}
		return arr
	default:
		return v
	}
}

func rewriteValues(v *Value, re *regexp.Regexp, replacement string) *Value {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindObject:
		out := NewObject()
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			out.Set(key, rewriteValues(child, re, replacement))
		}
		return out
	case KindArray:
		arr := NewArray()
		for _, elem := range v.Arr {
			arr.Arr = append(arr.Arr, rewriteValues(elem, re, replacement))
		}
		return arr
	case KindString:
		return NewString(applyRewrite(re, replacement, v.Str))
	default:
		return v
	}
}
