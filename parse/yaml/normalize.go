package yaml

// =========================
// Token Normaliser
// =========================

// normalize makes the nesting introduced on compound lines explicit. In
// `- key: val` both the dash and the key open one more level, so an indent
// token one column wider than the enclosing one is inserted between them.
// An indent directly before a dash is widened by the dash's column, and
// consecutive indents collapse into the first. The input is not modified.
func normalize(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens)+len(tokens)/2)
	enclosing := -1 // index in out of the latest indent
	for _, t := range tokens {
		if n := len(out); n > 0 {
			prev := out[n-1].Kind
			if prev == TokenSeqDash && (t.Kind == TokenKey || t.Kind == TokenSeqDash) ||
				prev == TokenKey && t.Kind == TokenKey {
				width := 1
				if enclosing >= 0 {
					width = out[enclosing].Width + 1
				}
				out = append(out, indentToken(width))
				enclosing = len(out) - 1
			}
		}

		if n := len(out); n > 0 && out[n-1].Kind == TokenIndent {
			switch t.Kind {
			case TokenSeqDash:
				out[n-1].Width++
			case TokenIndent:
				continue
			}
		}
		if t.Kind == TokenIndent {
			enclosing = len(out)
		}
		out = append(out, t)
	}
	return out
}
