package yaml

import "strings"

// =========================
// Tokens
// =========================

type TokenKind uint8

// Declaration order is the classifier's match priority.
const (
	TokenQuote TokenKind = iota
	TokenBlock
	TokenFlow
	TokenDocMarker
	TokenTag
	TokenAnchor
	TokenComment
	TokenSeqDash
	TokenBool
	TokenNull
	TokenEmpty
	TokenInt
	TokenIndent
	TokenKey
	TokenVal
)

var tokenKindNames = [...]string{
	TokenQuote:     "QUOTE",
	TokenBlock:     "BLOCK",
	TokenFlow:      "FLOW",
	TokenDocMarker: "DOC",
	TokenTag:       "TAG",
	TokenAnchor:    "ANCHOR",
	TokenComment:   "COMMENT",
	TokenSeqDash:   "SEQ",
	TokenBool:      "BOOL",
	TokenNull:      "NULL",
	TokenEmpty:     "EMPTY",
	TokenInt:       "INT",
	TokenIndent:    "INDENT",
	TokenKey:       "KEY",
	TokenVal:       "VAL",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "UNKNOWN"
}

// discarded reports kinds that are recognised only so they are not mistaken
// for values.
func (k TokenKind) discarded() bool {
	switch k {
	case TokenDocMarker, TokenTag, TokenAnchor, TokenComment:
		return true
	}
	return false
}

// Token is a classified span of the normalised input. Indent tokens carry
// only their width; Text is empty for them.
type Token struct {
	Kind  TokenKind
	Text  string
	Width int
}

func indentToken(width int) Token {
	return Token{Kind: TokenIndent, Width: width}
}

// Lexeme returns the token's source text. An indent is rendered as its run
// of spaces.
func (t Token) Lexeme() string {
	if t.Kind == TokenIndent {
		return strings.Repeat(" ", t.Width)
	}
	return t.Text
}

func (t Token) String() string {
	return t.Kind.String() + "=" + t.Lexeme()
}

// formatTokens renders tokens as [KIND=text, ...]. With a positive limit,
// rendering stops once the output holds more than limit runes and only that
// prefix is guaranteed to match the full rendering.
func formatTokens(tokens []Token, limit int) string {
	budget := 4 * limit // a rune is at most 4 bytes
	var sb strings.Builder
	sb.WriteByte('[')
	for i, t := range tokens {
		if limit > 0 && sb.Len() > budget {
			break
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.Kind.String())
		sb.WriteByte('=')
		if t.Kind == TokenIndent && limit > 0 {
			sb.WriteString(strings.Repeat(" ", min(t.Width, budget+1)))
			continue
		}
		sb.WriteString(t.Lexeme())
	}
	sb.WriteByte(']')
	return sb.String()
}

// -------- Queue --------

// tokenQueue is consumed front to back; only peek and pop are offered.
type tokenQueue struct {
	tokens []Token
	pos    int
}

func newTokenQueue(tokens []Token) *tokenQueue {
	return &tokenQueue{tokens: tokens}
}

func (q *tokenQueue) empty() bool {
	return q.pos >= len(q.tokens)
}

func (q *tokenQueue) peek() (Token, bool) {
	if q.empty() {
		return Token{}, false
	}
	return q.tokens[q.pos], true
}

func (q *tokenQueue) peekKind(kind TokenKind) bool {
	t, ok := q.peek()
	return ok && t.Kind == kind
}

func (q *tokenQueue) pop() Token {
	t := q.tokens[q.pos]
	q.pos++
	return t
}

func (q *tokenQueue) remaining() []Token {
	return q.tokens[q.pos:]
}
