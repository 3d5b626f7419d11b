package yaml

import "fmt"

// =========================
// Errors
// =========================

// ClassificationError is returned when a span of input matches no token
// pattern.
type ClassificationError struct {
	Offset   int // byte offset in the normalised input
	Fragment string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("yaml: cannot classify %q at offset %d", e.Fragment, e.Offset)
}

// StructuralError is returned when the token sequence does not reduce to
// exactly one well-formed document. Remaining holds the unconsumed tokens.
type StructuralError struct {
	Reason    string
	Remaining []Token
}

func (e *StructuralError) Error() string {
	if e.Reason != "" {
		return "yaml: " + e.Reason
	}
	return fmt.Sprintf("yaml: expected end of yaml, found: %.40s", formatTokens(e.Remaining, 40))
}

// NavigationError is returned by Get when a path step cannot be applied.
type NavigationError struct {
	Step   any
	Kind   Kind // kind of the node the step was applied to
	Reason string
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("yaml: cannot apply step %#v to %s: %s", e.Step, e.Kind, e.Reason)
}
