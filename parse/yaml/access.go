package yaml

import "fmt"

// =========================
// Safe Access Helpers
// =========================

// Get walks path from root. A string step selects a mapping key and an int
// step a sequence index (0-based).
//
// A missing key yields a null scalar and ends the walk, which is
// indistinguishable from a key explicitly set to null or ~; use
// Mapping.Lookup when the difference matters. An index out of range, a step
// that does not fit the node it is applied to, or a step of any other type
// is a *NavigationError.
func Get(root Node, path ...any) (Node, error) {
	cur := root
	if cur == nil {
		cur = NewNull()
	}
	for _, step := range path {
		switch s := step.(type) {
		case string:
			m, ok := cur.(*Mapping)
			if !ok {
				return nil, &NavigationError{Step: step, Kind: cur.Kind(), Reason: "not a mapping"}
			}
			n, ok := m.Lookup(s)
			if !ok {
				return NewNull(), nil
			}
			cur = n
		case int:
			seq, ok := cur.(*Sequence)
			if !ok {
				return nil, &NavigationError{Step: step, Kind: cur.Kind(), Reason: "not a sequence"}
			}
			n, ok := seq.Index(s)
			if !ok {
				return nil, &NavigationError{
					Step:   step,
					Kind:   cur.Kind(),
					Reason: fmt.Sprintf("index out of range [0,%d)", seq.Len()),
				}
			}
			cur = n
		default:
			return nil, &NavigationError{Step: step, Kind: cur.Kind(), Reason: fmt.Sprintf("unsupported step type %T", step)}
		}
	}
	return cur, nil
}

func GetUntyped(root Node, path ...any) (any, error) {
	n, err := Get(root, path...)
	if err != nil {
		return nil, err
	}
	return ToUntyped(n), nil
}

// ToUntyped converts a tree into plain Go values: map[string]any, []any,
// string, int64, float64, bool and nil. Mapping key order is lost.
func ToUntyped(n Node) any {
	switch v := n.(type) {
	case *Scalar:
		return v.V
	case *Sequence:
		out := make([]any, len(v.Elems))
		for i := range v.Elems {
			out[i] = ToUntyped(v.Elems[i])
		}
		return out
	case *Mapping:
		m := make(map[string]any, v.Len())
		for _, k := range v.keys {
			m[k] = ToUntyped(v.items[k])
		}
		return m
	default:
		return nil
	}
}

func MustString(n Node) string {
	v := n.(*Scalar)
	return v.V.(string)
}

func MustInt(n Node) int64 {
	v := n.(*Scalar)
	return v.V.(int64)
}

func MustFloat(n Node) float64 {
	v := n.(*Scalar)
	return v.V.(float64)
}

func MustBool(n Node) bool {
	v := n.(*Scalar)
	return v.V.(bool)
}
