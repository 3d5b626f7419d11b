package yaml

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// =========================
// Scalar Reconstruction
// =========================

// literals resolves Bool, Null and Empty tokens. Anything not listed (null,
// ~) is null. Collections are never shared between calls.
var literals = map[string]func() Node{
	"true":  func() Node { return NewBool(true) },
	"false": func() Node { return NewBool(false) },
	"{}":    func() Node { return NewMapping() },
	"[]":    func() Node { return NewSequence() },
}

func literal(s string) Node {
	if fn, ok := literals[s]; ok {
		return fn()
	}
	return NewNull()
}

var foldBreaksRe = regexp.MustCompile("\n\n| \n")

// blockScalar rebuilds a `|` or `>` scalar from its header line and body.
// Without the `-` chomp indicator the result always ends in exactly one
// newline; `+` is treated the same way. The indentation indicator digit is
// accepted and ignored.
func blockScalar(raw string) string {
	header, body, _ := strings.Cut(raw, "\n")
	body = stripIndent(strings.TrimRightFunc(body, unicode.IsSpace))

	out := body
	if header[0] == '>' {
		var b strings.Builder
		for _, line := range strings.Split(body, "\n") {
			if strings.HasPrefix(line, " ") {
				b.WriteString("\n" + line + "\n")
			} else {
				b.WriteString(line + " ")
			}
		}
		out = foldBreaksRe.ReplaceAllString(b.String(), "\n")
	}

	out = strings.TrimRightFunc(out, unicode.IsSpace)
	if !strings.HasPrefix(header[1:], "-") {
		out += "\n"
	}
	return out
}

// stripIndent removes the indentation common to all non-blank lines and the
// trailing whitespace of every line.
func stripIndent(s string) string {
	lines := strings.Split(s, "\n")
	common := -1
	for i, line := range lines {
		if isBlank(line) && i != len(lines)-1 {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if common < 0 || n < common {
			common = n
		}
	}
	for i, line := range lines {
		if isBlank(line) {
			lines[i] = ""
			continue
		}
		lines[i] = strings.TrimRight(line[common:], " \t")
	}
	return strings.Join(lines, "\n")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// unquote strips the delimiters of a quoted scalar. Single-quoted text first
// collapses doubled quotes; both styles then decode backslash escapes.
func unquote(raw string) (string, error) {
	if len(raw) < 2 {
		return "", &StructuralError{Reason: fmt.Sprintf("unterminated quoted scalar %q", raw)}
	}
	body := raw[1 : len(raw)-1]
	if raw[0] == '\'' {
		body = strings.ReplaceAll(body, "''", "'")
	}
	decoded, err := decodeEscapes(body)
	if err != nil {
		return "", &StructuralError{Reason: fmt.Sprintf("%s in %s", err, raw)}
	}
	return decoded, nil
}

func decodeEscapes(s string) (string, error) {
	if strings.IndexByte(s, '\\') < 0 {
		return s, nil
	}
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' {
			out.WriteByte(ch)
			continue
		}
		if i+1 >= len(s) {
			return "", fmt.Errorf("invalid escape at end of string")
		}
		i++
		switch s[i] {
		case 'a':
			out.WriteByte('\a')
		case 'b':
			out.WriteByte('\b')
		case 'e':
			out.WriteByte('\x1b')
		case 't':
			out.WriteByte('\t')
		case 'n':
			out.WriteByte('\n')
		case 'v':
			out.WriteByte('\v')
		case 'f':
			out.WriteByte('\f')
		case 'r':
			out.WriteByte('\r')
		case 's':
			out.WriteByte(' ')
		case '"', '\'', '\\', '/':
			out.WriteByte(s[i])
		case '\n': // line continuation
		case '0', '1', '2', '3', '4', '5', '6', '7':
			// up to three octal digits, at most \377
			maxLen := 2
			if s[i] <= '3' {
				maxLen = 3
			}
			j := i
			for j < len(s) && j-i < maxLen && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(s[i:j], 8, 8)
			out.WriteRune(rune(v))
			i = j - 1
		case 'x', 'u', 'U':
			width := hexEscapeWidth(s[i])
			if i+1+width > len(s) {
				return "", fmt.Errorf("invalid \\%c escape", s[i])
			}
			r, err := parseHexRune(s[i+1 : i+1+width])
			if err != nil {
				return "", fmt.Errorf("invalid \\%c escape: %v", s[i], err)
			}
			out.WriteRune(r)
			i += width
		default:
			return "", fmt.Errorf("unsupported escape \\%c", s[i])
		}
	}
	return out.String(), nil
}

func hexEscapeWidth(c byte) int {
	switch c {
	case 'x':
		return 2
	case 'u':
		return 4
	}
	return 8
}

func parseHexRune(h string) (rune, error) {
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, err
	}
	if v > utf8.MaxRune || !utf8.ValidRune(rune(v)) {
		return 0, fmt.Errorf("%s is not a unicode scalar value", h)
	}
	return rune(v), nil
}

// plainScalar decides between Float and String for an unquoted value. Only
// text made of `-+.0-9eE` that contains a digit and parses completely becomes
// a Float, so Infinity, NaN and .inf stay strings. An overflowing literal
// keeps the signed infinity ParseFloat reports.
func plainScalar(s string) Node {
	if s != "" && strings.Trim(s, "-+.0123456789eE") == "" && strings.ContainsAny(s, "0123456789") {
		f, err := strconv.ParseFloat(s, 64)
		if err == nil || isRangeError(err) {
			return NewFloat(f)
		}
	}
	return NewString(s)
}

// intScalar parses a decimal integer token. Values outside int64 fall back to
// the plain scalar rules and therefore become floats.
func intScalar(s string) Node {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewInt(i)
	}
	return plainScalar(s)
}

func isRangeError(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}
