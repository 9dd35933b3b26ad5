package cjsontools

import "strings"

// Serialize encodes v as compact JSON, or 2-space-indented JSON when
// pretty is true.
func Serialize(v *Value, pretty bool) ([]byte, error) {
	var b strings.Builder
	enc := &encoder{out: &b, pretty: pretty}
	if err := enc.encode(v, 0); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

type encoder struct {
	out    *strings.Builder
	pretty bool
}

func (e *encoder) newline(depth int) {
	if !e.pretty {
		return
	}
	e.out.WriteByte('\n')
	for i := 0; i < depth; i++ {
		e.out.WriteString("  ")
	}
}

func (e *encoder) encode(v *Value, depth int) error {
	if v == nil {
		e.out.WriteString("null")
		return nil
	}
	switch v.Kind {
	case KindNull:
		e.out.WriteString("null")
	case KindBool:
		if v.Bool {
			e.out.WriteString("true")
		} else {
			e.out.WriteString("false")
		}
	case KindNumber:
		if v.NumRaw == "" {
			return &EncodeError{Reason: "number value has no textual representation"}
		}
		e.out.WriteString(v.NumRaw)
	case KindString:
		e.encodeString(v.Str)
	case KindArray:
		return e.encodeArray(v, depth)
	case KindObject:
		return e.encodeObject(v, depth)
	default:
		return &EncodeError{Reason: "unknown value kind"}
	}
	return nil
}

func (e *encoder) encodeArray(v *Value, depth int) error {
	e.out.WriteByte('[')
	if len(v.Arr) == 0 {
		e.out.WriteByte(']')
		return nil
	}
	for i, elem := range v.Arr {
		if i > 0 {
			e.out.WriteByte(',')
		}
		e.newline(depth + 1)
		if err := e.encode(elem, depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.out.WriteByte(']')
	return nil
}

func (e *encoder) encodeObject(v *Value, depth int) error {
	e.out.WriteByte('{')
	keys := v.Keys()
	if len(keys) == 0 {
		e.out.WriteByte('}')
		return nil
	}
	for i, k := range keys {
		if i > 0 {
			e.out.WriteByte(',')
		}
		e.newline(depth + 1)
		e.encodeString(k)
		e.out.WriteByte(':')
		if e.pretty {
			e.out.WriteByte(' ')
		}
		child, _ := v.Get(k)
		if err := e.encode(child, depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.out.WriteByte('}')
	return nil
}

const hexDigits = "0123456789abcdef"

func (e *encoder) encodeString(s string) {
	e.out.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			e.out.WriteString(`\"`)
		case '\\':
			e.out.WriteString(`\\`)
		case '\n':
			e.out.WriteString(`\n`)
		case '\r':
			e.out.WriteString(`\r`)
		case '\t':
			e.out.WriteString(`\t`)
		case '\b':
			e.out.WriteString(`\b`)
		case '\f':
			e.out.WriteString(`\f`)
		default:
			if r < 0x20 {
				e.out.WriteString(`\u00`)
				e.out.WriteByte(hexDigits[(r>>4)&0xf])
				e.out.WriteByte(hexDigits[r&0xf])
			} else {
				e.out.WriteRune(r)
			}
		}
	}
	e.out.WriteByte('"')
}
