package yaml

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// =========================
// Token Classifier
// =========================
//
// The classifier walks the prepared text and, at every offset, tries the
// matchers below in order; the first one that matches wins. The order is
// significant: a quoted string shadows a comment inside it, a block scalar
// shadows the lines of its body, a key shadows a plain value and so on.
// Offsets no matcher accepts are skipped, which only ever happens for
// whitespace between tokens.

type matcher struct {
	kind  TokenKind
	match func(src string, pos int) int // end offset, or -1
}

var matchers = []matcher{
	{TokenQuote, matchQuote},
	{TokenBlock, matchBlock},
	{TokenFlow, matchFlow},
	{TokenDocMarker, matchDocMarker},
	{TokenTag, matchTag},
	{TokenAnchor, matchAnchor},
	{TokenComment, matchComment},
	{TokenSeqDash, matchSeqDash},
	{TokenBool, matchWords("true", "false")},
	{TokenNull, matchWords("null", "~")},
	{TokenEmpty, matchEmpty},
	{TokenInt, matchInt},
	{TokenIndent, matchIndent},
	{TokenKey, matchKey},
	{TokenVal, matchVal},
}

var blankLinesRe = regexp.MustCompile(`\n\s*\n|\n`)

// Tokenize classifies text and normalises the indentation tokens, producing
// the sequence the structural parser consumes.
func Tokenize(text string) ([]Token, error) {
	tokens, err := classify(text)
	if err != nil {
		return nil, err
	}
	return normalize(tokens), nil
}

// prepare drops blank lines, prefixes every line with one space and ends the
// text with a newline, so every line has the same start-of-line anchor.
func prepare(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = blankLinesRe.ReplaceAllString(text, "\n ")
	text = strings.TrimFunc(text, isTrimmable)
	return " " + text + "\n"
}

func classify(text string) ([]Token, error) {
	src := prepare(text)
	if !utf8.ValidString(src) {
		off := firstInvalidUTF8(src)
		return nil, &ClassificationError{Offset: off, Fragment: fragmentAt(src, off)}
	}

	var tokens []Token
	for pos := 0; pos < len(src); {
		kind, end := matchAt(src, pos)
		if end < 0 {
			if !isSpace(src[pos]) {
				return nil, &ClassificationError{Offset: pos, Fragment: fragmentAt(src, pos)}
			}
			pos++
			continue
		}
		raw := src[pos:end]
		pos = end
		if kind.discarded() {
			continue
		}
		tokens = append(tokens, newToken(kind, raw))
	}
	return tokens, nil
}

func matchAt(src string, pos int) (TokenKind, int) {
	for _, m := range matchers {
		if end := m.match(src, pos); end > pos {
			return m.kind, end
		}
	}
	return 0, -1
}

func newToken(kind TokenKind, raw string) Token {
	if kind == TokenIndent {
		return indentToken(len(raw))
	}
	if strings.TrimFunc(raw, isTrimmable) == "" {
		return Token{Kind: kind, Text: raw}
	}
	text := strings.TrimFunc(raw, isTrimmable)
	if kind == TokenKey {
		text = strings.TrimFunc(text[:strings.IndexByte(text, ':')], isTrimmable)
	}
	return Token{Kind: kind, Text: text}
}

// -------- Matchers --------

func matchQuote(src string, pos int) int {
	switch src[pos] {
	case '"':
		return matchQuoted(src, pos, '"', false)
	case '\'':
		return matchQuoted(src, pos, '\'', true)
	}
	return -1
}

// matchQuoted finds the closing quote on the same line. A backslash-escaped
// quote is skipped; when nothing else closes the string, the last escaped
// quote is taken as the closing one. Single-quoted strings must be followed
// by a space or the end of the line.
func matchQuoted(src string, pos int, q byte, bounded bool) int {
	closeAt := func(i int) int {
		if !bounded {
			return i + 1
		}
		return spaceOrEOL(src, i+1)
	}
	var escaped []int
	for i := pos + 1; !isEOL(src, i); {
		switch {
		case src[i] == q:
			if end := closeAt(i); end >= 0 {
				return end
			}
			i++
		case src[i] == '\\' && i+1 < len(src) && src[i+1] == q:
			escaped = append(escaped, i)
			i += 2
		default:
			i++
		}
	}
	for j := len(escaped) - 1; j >= 0; j-- {
		if end := closeAt(escaped[j] + 1); end >= 0 {
			return end
		}
	}
	return -1
}

// matchBlock accepts a `|` or `>` header line followed by a body whose first
// line is indented deeper than the line prefix and whose following lines are
// indented at least as deep as the first.
func matchBlock(src string, pos int) int {
	if src[pos] != '|' && src[pos] != '>' {
		return -1
	}
	i := pos + 1
	if i < len(src) && (src[i] == '+' || src[i] == '-') {
		i++
	}
	if i < len(src) && isDigit(src[i]) {
		i++
	}
	i = skipSpaces(src, i)
	if i < len(src) && src[i] == '#' {
		i = lineEnd(src, i)
	}
	if i >= len(src) || src[i] != '\n' {
		return -1
	}
	i++

	if i >= len(src) || src[i] != ' ' {
		return -1
	}
	content := skipSpaces(src, i+1)
	indent := content - (i + 1)
	if indent == 0 || isEOL(src, content) {
		return -1
	}
	end := lineEnd(src, content)
	if end >= len(src) {
		return -1
	}
	i = end + 1

	for hasSpaces(src, i, indent+1) && !isEOL(src, i+indent+1) {
		end := lineEnd(src, i+indent+1)
		if end >= len(src) {
			break
		}
		i = end + 1
	}
	return i
}

// matchFlow captures a bracketed collection that spans lines as opaque text:
// the opening line, a deeper line ending in a comma, further lines at least
// as deep, and an optional closing bracket line.
func matchFlow(src string, pos int) int {
	if src[pos] != '[' && src[pos] != '{' {
		return -1
	}
	i := lineEnd(src, pos)
	if i >= len(src) {
		return -1
	}
	i++

	if i >= len(src) || src[i] != ' ' {
		return -1
	}
	content := skipSpaces(src, i+1)
	spaces := content - (i + 1)
	end := lineEnd(src, content)
	if end >= len(src) {
		return -1
	}
	line := src[content:end]
	indent := spaces
	switch {
	case len(line) >= 2 && strings.HasSuffix(line, ","):
	case line == "," && spaces >= 2:
		indent = spaces - 1
	default:
		return -1
	}
	if indent == 0 {
		return -1
	}
	i = end + 1

	for hasSpaces(src, i, indent+1) && !isEOL(src, i+indent+1) {
		end := lineEnd(src, i+indent+1)
		if end >= len(src) {
			break
		}
		i = end + 1
	}

	if j := skipSpaces(src, i); j > i && j+1 < len(src) && (src[j] == ']' || src[j] == '}') && src[j+1] == '\n' {
		i = j + 2
	}
	return i
}

func matchDocMarker(src string, pos int) int {
	if !isLineStart(src, pos) || src[pos] != ' ' {
		return -1
	}
	rest := src[pos+1:]
	switch {
	case strings.HasPrefix(rest, "%"):
		return lineEnd(src, pos+1)
	case strings.HasPrefix(rest, "---"), strings.HasPrefix(rest, "..."):
		return spaceOrEOL(src, pos+4)
	}
	return -1
}

func matchTag(src string, pos int) int {
	if src[pos] != '!' {
		return -1
	}
	return skipNonSpace(src, pos+1)
}

func matchAnchor(src string, pos int) int {
	if src[pos] != '&' {
		return -1
	}
	if end := skipNonSpace(src, pos+1); end > pos+1 {
		return end
	}
	return -1
}

func matchComment(src string, pos int) int {
	i := skipSpaces(src, pos)
	if i >= len(src) || src[i] != '#' {
		return -1
	}
	return lineEnd(src, i)
}

func matchSeqDash(src string, pos int) int {
	if src[pos] != '-' {
		return -1
	}
	return spaceOrEOL(src, pos+1)
}

func matchWords(words ...string) func(string, int) int {
	return func(src string, pos int) int {
		for _, w := range words {
			if strings.HasPrefix(src[pos:], w) {
				if end := spaceOrEOL(src, pos+len(w)); end >= 0 {
					return end
				}
			}
		}
		return -1
	}
}

func matchEmpty(src string, pos int) int {
	if strings.HasPrefix(src[pos:], "[]") || strings.HasPrefix(src[pos:], "{}") {
		return pos + 2
	}
	return -1
}

func matchInt(src string, pos int) int {
	i := pos
	if src[i] == '-' || src[i] == '+' {
		i++
	}
	start := i
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	if i == start {
		return -1
	}
	return spaceOrEOL(src, i)
}

func matchIndent(src string, pos int) int {
	if !isLineStart(src, pos) {
		return -1
	}
	if end := skipSpaces(src, pos); end > pos {
		return end
	}
	return -1
}

// matchKey accepts everything up to the first `:` that is followed by a space
// or the end of the line. Brackets and braces cannot appear in a key.
func matchKey(src string, pos int) int {
	i := pos
	for i < len(src) && strings.IndexByte("[{:\n", src[i]) < 0 {
		i++
	}
	if i == pos || i >= len(src) || src[i] != ':' {
		return -1
	}
	return spaceOrEOL(src, i+1)
}

// matchVal takes the rest of the line, stopping before a ` #` comment.
func matchVal(src string, pos int) int {
	if isSpace(src[pos]) {
		return -1
	}
	i := pos + 1
	for i < len(src) && src[i] != '\n' && !(src[i] == ' ' && i+1 < len(src) && src[i+1] == '#') {
		i++
	}
	return i
}

// -------- Helpers --------

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isTrimmable(r rune) bool { return r <= ' ' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLineStart(src string, pos int) bool {
	return pos == 0 || src[pos-1] == '\n'
}

func isEOL(src string, i int) bool {
	return i >= len(src) || src[i] == '\n'
}

// spaceOrEOL matches a single space (consumed) or an end of line (not
// consumed) at i.
func spaceOrEOL(src string, i int) int {
	if i < len(src) && src[i] == ' ' {
		return i + 1
	}
	if isEOL(src, i) {
		return i
	}
	return -1
}

func lineEnd(src string, i int) int {
	if j := strings.IndexByte(src[i:], '\n'); j >= 0 {
		return i + j
	}
	return len(src)
}

func skipSpaces(src string, i int) int {
	for i < len(src) && src[i] == ' ' {
		i++
	}
	return i
}

func skipNonSpace(src string, i int) int {
	for i < len(src) && !isSpace(src[i]) {
		i++
	}
	return i
}

func hasSpaces(src string, i, n int) bool {
	if i+n > len(src) {
		return false
	}
	for k := i; k < i+n; k++ {
		if src[k] != ' ' {
			return false
		}
	}
	return true
}

func firstInvalidUTF8(s string) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(s)
}

func fragmentAt(src string, pos int) string {
	end := lineEnd(src, pos)
	if end-pos > 40 {
		end = pos + 40
	}
	return src[pos:end]
}
