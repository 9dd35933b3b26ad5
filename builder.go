package cjsontools

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"

	jsonc "github.com/goccy/go-json"
)

type builderState int

const (
	stateEmpty builderState = iota
	stateReady
	stateExecuting
	stateDone
	stateFailed
)

func (s builderState) String() string {
	switch s {
	case stateEmpty:
		return "Empty"
	case stateReady:
		return "Ready"
	case stateExecuting:
		return "Executing"
	case stateDone:
		return "Done"
	case stateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// capability bits record which operation categories are queued, letting
// Build skip categories with nothing to do. With no bits set the
// traversal copies the tree unchanged and Build still re-serializes it,
// honoring PrettyPrint.
const (
	capKeyRewrite uint8 = 1 << iota
	capRemoval
	capValueRewrite
	capFlatten
)

type rewriteOp struct {
	pattern     string
	replacement string
	re          *regexp.Regexp
}

// Builder assembles a sequence of transformations and applies all of them
// in a single traversal of the input tree, rather than one full pass per
// operation. Within a traversal, every node visit applies queued
// operations in a fixed category order regardless of the order the
// categories were queued in: key rewrites, then removal filters, then
// value rewrites; multiple operations within the same category still run
// in the order they were queued. Flatten, when requested, always runs
// last, as a separate pass over the already-transformed tree.
type Builder struct {
	id uuid.UUID

	state builderState
	caps  uint8
	err   error

	input *Value

	keyOps   []rewriteOp
	filters  []func(*Value) bool
	valueOps []rewriteOp
	pretty   bool
}

// NewBuilder returns a Builder ready to accept input via AddJSON.
func NewBuilder() *Builder {
	return &Builder{id: uuid.New(), state: stateEmpty}
}

func (b *Builder) fail(op string, err error) {
	b.state = stateFailed
	b.err = &BuilderStateError{Op: op, State: stateFailed.String(), Reason: err.Error(), Builder: b.id.String()}
}

func (b *Builder) canModify(op string) bool {
	if b.err != nil {
		return false
	}
	switch b.state {
	case stateEmpty, stateReady:
		return true
	default:
		orig := b.state.String()
		b.state = stateFailed
		b.err = &BuilderStateError{Op: op, State: orig, Builder: b.id.String(), Reason: "builder is no longer accepting operations"}
		return false
	}
}

// canAddJSON gates AddJSON specifically. AddJSON's allowed states differ
// from the other queuing methods: it accepts Empty (first input) and Done
// (re-supplying input to rerun an already-queued pipeline without calling
// Reset), but rejects Ready, since swapping input after operations have
// already been queued against the previous input would be silent and
// surprising.
func (b *Builder) canAddJSON() bool {
	if b.err != nil {
		return false
	}
	switch b.state {
	case stateEmpty, stateDone:
		return true
	default:
		orig := b.state.String()
		b.state = stateFailed
		b.err = &BuilderStateError{Op: "AddJSON", State: orig, Builder: b.id.String(), Reason: "builder is no longer accepting operations"}
		return false
	}
}

// AddJSON supplies (or replaces) the builder's input document. v may be
// raw JSON as []byte or string, or any Go value accepted by
// github.com/goccy/go-json's Marshal. Valid in Empty (first input) or Done
// (rerunning the queued pipeline against new input); rejected in Ready,
// where operations have been queued but Build has not yet run.
func (b *Builder) AddJSON(v interface{}) *Builder {
	if !b.canAddJSON() {
		return b
	}
	var data []byte
	switch t := v.(type) {
	case []byte:
		data = t
	case string:
		data = []byte(t)
	default:
		encoded, err := jsonc.Marshal(v)
		if err != nil {
			b.fail("AddJSON", err)
			return b
		}
		data = encoded
	}
	parsed, err := Parse(data)
	if err != nil {
		b.fail("AddJSON", err)
		return b
	}
	b.input = parsed
	b.state = stateReady
	return b
}

// RemoveEmptyStrings queues removal of object entries whose value is the
// empty string.
func (b *Builder) RemoveEmptyStrings() *Builder {
	if !b.canModify("RemoveEmptyStrings") {
		return b
	}
	b.filters = append(b.filters, isEmptyString)
	b.caps |= capRemoval
	return b
}

// RemoveNulls queues removal of object entries whose value is null.
func (b *Builder) RemoveNulls() *Builder {
	if !b.canModify("RemoveNulls") {
		return b
	}
	b.filters = append(b.filters, isNull)
	b.caps |= capRemoval
	return b
}

// ReplaceKeys queues a substring regex rewrite of object keys.
func (b *Builder) ReplaceKeys(pattern, replacement string) *Builder {
	if !b.canModify("ReplaceKeys") {
		return b
	}
	re, err := compilePattern(pattern)
	if err != nil {
		b.fail("ReplaceKeys", err)
		return b
	}
	b.keyOps = append(b.keyOps, rewriteOp{pattern: pattern, replacement: replacement, re: re})
	b.caps |= capKeyRewrite
	return b
}

// ReplaceValues queues a substring regex rewrite of string values.
func (b *Builder) ReplaceValues(pattern, replacement string) *Builder {
	if !b.canModify("ReplaceValues") {
		return b
	}
	re, err := compilePattern(pattern)
	if err != nil {
		b.fail("ReplaceValues", err)
		return b
	}
	b.valueOps = append(b.valueOps, rewriteOp{pattern: pattern, replacement: replacement, re: re})
	b.caps |= capValueRewrite
	return b
}

// Flatten queues the flatten operation as the pipeline's final pass.
func (b *Builder) Flatten() *Builder {
	if !b.canModify("Flatten") {
		return b
	}
	b.caps |= capFlatten
	return b
}

// PrettyPrint toggles 2-space-indented output.
func (b *Builder) PrettyPrint(enable bool) *Builder {
	if !b.canModify("PrettyPrint") {
		return b
	}
	b.pretty = enable
	return b
}

// Build runs every queued operation in a single traversal and returns the
// serialized result. An empty operation queue still re-serializes the
// input (honoring PrettyPrint) rather than returning it verbatim.
func (b *Builder) Build() ([]byte, error) {
	if b.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuilderFailed, b.err)
	}
	if b.state == stateEmpty {
		err := &BuilderStateError{Op: "Build", State: b.state.String(), Builder: b.id.String(), Cause: ErrNoInput}
		b.state = stateFailed
		b.err = err
		return nil, err
	}
	if b.state != stateReady {
		err := &BuilderStateError{Op: "Build", State: b.state.String(), Builder: b.id.String(), Reason: "builder is no longer accepting operations"}
		b.state = stateFailed
		b.err = err
		return nil, err
	}
	b.state = stateExecuting

	result := b.applyFused(b.input)
	if b.caps&capFlatten != 0 {
		result = flattenValueTree(result)
	}

	out, err := Serialize(result, b.pretty)
	if err != nil {
		b.state = stateFailed
		b.err = fmt.Errorf("builder %s: %w", b.id, err)
		return nil, b.err
	}
	b.state = stateDone
	return out, nil
}

// Reset clears all queued operations, input, and error state, returning
// the builder to Empty so it can be reused.
func (b *Builder) Reset() *Builder {
	b.state = stateEmpty
	b.caps = 0
	b.err = nil
	b.input = nil
	b.keyOps = nil
	b.filters = nil
	b.valueOps = nil
	b.pretty = false
	return b
}

// applyFused walks v once, applying (in this fixed order, at every node)
// queued key rewrites, then removal filters, then value rewrites. caps is
// checked once per node per category so a category with nothing queued
// costs a single bitmask test rather than ranging over its (empty)
// descriptor slice.
func (b *Builder) applyFused(v *Value) *Value {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindObject:
		out := NewObject()
		rewriteKeys := b.caps&capKeyRewrite != 0
		filterEntries := b.caps&capRemoval != 0
		for _, key := range v.Keys() {
			child, _ := v.Get(key)

			newKey := key
			if rewriteKeys {
				for _, op := range b.keyOps {
					newKey = applyRewrite(op.re, op.replacement, newKey)
				}
			}

			if filterEntries {
				dropped := false
				for _, drop := range b.filters {
					if drop(child) {
						dropped = true
						break
					}
				}
				if dropped {
					continue
				}
			}

			out.Set(newKey, b.applyFused(child))
		}
		return out
	case KindArray:
		arr := NewArray()
		for _, elem := range v.Arr {
			arr.Arr = append(arr.Arr, b.applyFused(elem))
		}
		return arr
	case KindString:
		s := v.Str
		if b.caps&capValueRewrite != 0 {
			for _, op := range b.valueOps {
				s = applyRewrite(op.re, op.replacement, s)
			}
		}
		return NewString(s)
	default:
		return v
	}
}
