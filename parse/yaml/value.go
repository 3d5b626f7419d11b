package yaml

import (
	"fmt"
	"strings"
)

// =========================
// Value Tree
// =========================

type Kind string

const (
	KindMapping  Kind = "mapping"
	KindSequence Kind = "sequence"
	KindString   Kind = "string"
	KindInt      Kind = "int"
	KindFloat    Kind = "float"
	KindBool     Kind = "bool"
	KindNull     Kind = "null"
)

// Node is one value of a parsed document. The concrete type is always one of
// *Mapping, *Sequence or *Scalar.
type Node interface {
	Kind() Kind
	Value() any
}

// -------- Mapping --------

// Mapping keeps keys in insertion order. Setting an existing key replaces its
// value but keeps the key's original position.
type Mapping struct {
	keys  []string
	items map[string]Node
}

func NewMapping() *Mapping {
	return &Mapping{items: make(map[string]Node)}
}

func (*Mapping) Kind() Kind { return KindMapping }

func (m *Mapping) Value() any { return m.items }

func (m *Mapping) Set(key string, n Node) {
	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.items[key] = n
}

// Lookup reports whether key is present, which Get alone cannot tell apart
// from an explicit null.
func (m *Mapping) Lookup(key string) (Node, bool) {
	n, ok := m.items[key]
	return n, ok
}

func (m *Mapping) Get(key string) Node {
	if n, ok := m.items[key]; ok {
		return n
	}
	return NewNull()
}

func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *Mapping) Len() int { return len(m.keys) }

// Each visits entries in key order until fn returns false.
func (m *Mapping) Each(fn func(key string, n Node) bool) {
	for _, k := range m.keys {
		if !fn(k, m.items[k]) {
			return
		}
	}
}

// -------- Sequence --------

type Sequence struct {
	Elems []Node
}

func NewSequence(elems ...Node) *Sequence {
	return &Sequence{Elems: elems}
}

func (*Sequence) Kind() Kind { return KindSequence }

func (s *Sequence) Value() any { return s.Elems }

func (s *Sequence) Len() int { return len(s.Elems) }

func (s *Sequence) Index(i int) (Node, bool) {
	if i < 0 || i >= len(s.Elems) {
		return nil, false
	}
	return s.Elems[i], true
}

func (s *Sequence) Append(n Node) {
	s.Elems = append(s.Elems, n)
}

// -------- Scalar --------

type Scalar struct {
	Type Kind
	V    any
}

func NewString(s string) *Scalar { return &Scalar{Type: KindString, V: s} }
func NewInt(i int64) *Scalar { return &Scalar{Type: KindInt, V: i} }
func NewFloat(f float64) *Scalar { return &Scalar{Type: KindFloat, V: f} }
func NewBool(b bool) *Scalar { return &Scalar{Type: KindBool, V: b} }
func NewNull() *Scalar { return &Scalar{Type: KindNull} }

func (v *Scalar) Kind() Kind { return v.Type }

func (v *Scalar) Value() any { return v.V }

func (v *Scalar) IsNull() bool { return v.Type == KindNull }

func (v *Scalar) AsString() (string, bool) {
	s, ok := v.V.(string)
	return s, ok && v.Type == KindString
}

func (v *Scalar) AsInt() (int64, bool) {
	i, ok := v.V.(int64)
	return i, ok && v.Type == KindInt
}

func (v *Scalar) AsFloat() (float64, bool) {
	f, ok := v.V.(float64)
	return f, ok && v.Type == KindFloat
}

func (v *Scalar) AsBool() (bool, bool) {
	b, ok := v.V.(bool)
	return b, ok && v.Type == KindBool
}

// =========================
// Comparison / Debug
// =========================

// Equal reports whether a and b are structurally identical, mapping key order
// included. A nil Node equals a null scalar.
func Equal(a, b Node) bool {
	if isNullNode(a) || isNullNode(b) {
		return isNullNode(a) && isNullNode(b)
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *Mapping:
		bv := b.(*Mapping)
		if len(av.keys) != len(bv.keys) {
			return false
		}
		for i, k := range av.keys {
			if bv.keys[i] != k || !Equal(av.items[k], bv.items[k]) {
				return false
			}
		}
		return true
	case *Sequence:
		bv := b.(*Sequence)
		if len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !Equal(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case *Scalar:
		return av.V == b.(*Scalar).V
	}
	return false
}

func isNullNode(n Node) bool {
	if n == nil {
		return true
	}
	s, ok := n.(*Scalar)
	return ok && s.IsNull()
}

// String renders the tree on one line, e.g. {a: [1, "x", null]}.
func String(n Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case nil:
		b.WriteString("null")
	case *Mapping:
		b.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteString(": ")
			writeNode(b, v.items[k])
		}
		b.WriteByte('}')
	case *Sequence:
		b.WriteByte('[')
		for i, e := range v.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			writeNode(b, e)
		}
		b.WriteByte(']')
	case *Scalar:
		switch v.Type {
		case KindNull:
			b.WriteString("null")
		case KindString:
			fmt.Fprintf(b, "%q", v.V)
		default:
			fmt.Fprint(b, v.V)
		}
	}
}
