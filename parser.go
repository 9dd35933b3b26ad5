package cjsontools

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Parse decodes a single JSON document into a Value tree. It is a
// hand-rolled recursive-descent parser rather than encoding/json or
// goccy/go-json because it must preserve two things neither library
// exposes: the verbatim source text of every number (so an untouched
// number round-trips byte-for-byte) and the integer/real discriminant
// used throughout schema inference and path typing.
func Parse(input []byte) (*Value, error) {
	p := &parser{src: input}
	p.skipWS()
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if p.pos != len(p.src) {
		return nil, &ParseError{Offset: p.pos, Reason: "unexpected trailing data"}
	}
	return v, nil
}

type parser struct {
	src []byte
	pos int
}

func (p *parser) errf(format string, args ...interface{}) error {
	return &ParseError{Offset: p.pos, Reason: fmt.Sprintf(format, args...)}
}

func (p *parser) skipWS() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *parser) parseValue() (*Value, error) {
	c, ok := p.peek()
	if !ok {
		return nil, p.errf("unexpected end of input")
	}
	switch {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		s, err := p.parseStringLiteral()
		if err != nil {
			return nil, err
		}
		return NewString(s), nil
	case c == 't':
		return p.parseLiteral("true", NewBool(true))
	case c == 'f':
		return p.parseLiteral("false", NewBool(false))
	case c == 'n':
		return p.parseLiteral("null", NewNull())
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return nil, p.errf("unexpected character %q", c)
	}
}

func (p *parser) parseLiteral(lit string, v *Value) (*Value, error) {
	if p.pos+len(lit) > len(p.src) || string(p.src[p.pos:p.pos+len(lit)]) != lit {
		return nil, p.errf("invalid literal, expected %q", lit)
	}
	p.pos += len(lit)
	return v, nil
}

func (p *parser) parseObject() (*Value, error) {
	p.pos++ // consume '{'
	obj := NewObject()
	p.skipWS()
	if c, ok := p.peek(); ok && c == '}' {
		p.pos++
		return obj, nil
	}
	for {
		p.skipWS()
		c, ok := p.peek()
		if !ok || c != '"' {
			return nil, p.errf("expected string key")
		}
		key, err := p.parseStringLiteral()
		if err != nil {
			return nil, err
		}
		p.skipWS()
		c, ok = p.peek()
		if !ok || c != ':' {
			return nil, p.errf("expected ':' after object key")
		}
		p.pos++
		p.skipWS()
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
		p.skipWS()
		c, ok = p.peek()
		if !ok {
			return nil, p.errf("unterminated object")
		}
		if c == ',' {
			p.pos++
			continue
		}
		if c == '}' {
			p.pos++
			return obj, nil
		}
		return nil, p.errf("expected ',' or '}' in object")
	}
}

func (p *parser) parseArray() (*Value, error) {
	p.pos++ // consume '['
	arr := NewArray()
	p.skipWS()
	if c, ok := p.peek(); ok && c == ']' {
		p.pos++
		return arr, nil
	}
	for {
		p.skipWS()
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr.Arr = append(arr.Arr, val)
		p.skipWS()
		c, ok := p.peek()
		if !ok {
			return nil, p.errf("unterminated array")
		}
		if c == ',' {
			p.pos++
			continue
		}
		if c == ']' {
			p.pos++
			return arr, nil
		}
		return nil, p.errf("expected ',' or ']' in array")
	}
}

func (p *parser) parseNumber() (*Value, error) {
	start := p.pos
	isReal := false
	if c, ok := p.peek(); ok && c == '-' {
		p.pos++
	}
	if c, ok := p.peek(); !ok || c < '0' || c > '9' {
		return nil, p.errf("invalid number")
	}
	for {
		c, ok := p.peek()
		if !ok || c < '0' || c > '9' {
			break
		}
		p.pos++
	}
	if c, ok := p.peek(); ok && c == '.' {
		isReal = true
		p.pos++
		digits := 0
		for {
			c, ok := p.peek()
			if !ok || c < '0' || c > '9' {
				break
			}
			p.pos++
			digits++
		}
		if digits == 0 {
			return nil, p.errf("invalid number, missing fractional digits")
		}
	}
	if c, ok := p.peek(); ok && (c == 'e' || c == 'E') {
		isReal = true
		p.pos++
		if c, ok := p.peek(); ok && (c == '+' || c == '-') {
			p.pos++
		}
		digits := 0
		for {
			c, ok := p.peek()
			if !ok || c < '0' || c > '9' {
				break
			}
			p.pos++
			digits++
		}
		if digits == 0 {
			return nil, p.errf("invalid number, missing exponent digits")
		}
	}
	raw := string(p.src[start:p.pos])
	if isReal {
		return NewReal(raw), nil
	}
	return NewInt(raw), nil
}

func (p *parser) parseStringLiteral() (string, error) {
	p.pos++ // consume opening quote
	var b strings.Builder
	for {
		c, ok := p.peek()
		if !ok {
			return "", p.errf("unterminated string")
		}
		if c == '"' {
			p.pos++
			return b.String(), nil
		}
		if c == '\\' {
			p.pos++
			esc, ok := p.peek()
			if !ok {
				return "", p.errf("unterminated escape sequence")
			}
			switch esc {
			case '"':
				b.WriteByte('"')
				p.pos++
			case '\\':
				b.WriteByte('\\')
				p.pos++
			case '/':
				b.WriteByte('/')
				p.pos++
			case 'b':
				b.WriteByte('\b')
				p.pos++
			case 'f':
				b.WriteByte('\f')
				p.pos++
			case 'n':
				b.WriteByte('\n')
				p.pos++
			case 'r':
				b.WriteByte('\r')
				p.pos++
			case 't':
				b.WriteByte('\t')
				p.pos++
			case 'u':
				p.pos++
				r, err := p.parseUnicodeEscape()
				if err != nil {
					return "", err
				}
				if utf16.IsSurrogate(r) {
					if p.pos+1 < len(p.src) && p.src[p.pos] == '\\' && p.src[p.pos+1] == 'u' {
						save := p.pos
						p.pos += 2
						r2, err := p.parseUnicodeEscape()
						if err != nil {
							return "", err
						}
						combined := utf16.DecodeRune(r, r2)
						if combined != utf8.RuneError {
							b.WriteRune(combined)
							continue
						}
						p.pos = save
					}
					b.WriteRune(utf8.RuneError)
					continue
				}
				b.WriteRune(r)
			default:
				return "", p.errf("invalid escape character %q", esc)
			}
			continue
		}
		if c < 0x20 {
			return "", p.errf("control character in string")
		}
		b.WriteByte(c)
		p.pos++
	}
}

func (p *parser) parseUnicodeEscape() (rune, error) {
	if p.pos+4 > len(p.src) {
		return 0, p.errf("invalid unicode escape")
	}
	var r rune
	for i := 0; i < 4; i++ {
		c := p.src[p.pos+i]
		var d rune
		switch {
		case c >= '0' && c <= '9':
			d = rune(c - '0')
		case c >= 'a' && c <= 'f':
			d = rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = rune(c-'A') + 10
		default:
			return 0, p.errf("invalid unicode escape digit %q", c)
		}
		r = r*16 + d
	}
	p.pos += 4
	return r, nil
}
