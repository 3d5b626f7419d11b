// yaml 包实现了一个受限 YAML 子集的解析器，把文本转换为通用的值树（映射 / 序列 / 标量）。
//
// 处理流程：
// - 分类：按优先级顺序的匹配器把文本切分为 token，注释、文档标记、标签和锚点被识别后丢弃
// - 规范化：插入或加宽缩进 token，使每个序列项和嵌套键都带有明确的宽度
// - 结构解析：基于 token 队列的递归下降，由显式的缩进栈驱动
//
// 非目标（设计如此）：
// - 标签、锚点与别名（忽略，别名保留为普通文本）
// - 复杂映射键
// - 流式集合的结构化解析（除 [] 和 {} 外保留为原始文本）
// - 多文档流：文档标记不可见，多个文档会合并为一个
//
// 解析是输入的纯函数，并发调用之间不共享任何状态。
package yaml

import (
	"fmt"
	"io"
	"slices"
)

// =========================
// Public API
// =========================

// Parse parses text and returns the document root. An empty document yields
// a null scalar.
func Parse(text string, opts ...Option) (Node, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	o := newOptions(opts)
	p := &parser{
		tokens:   newTokenQueue(tokens),
		indents:  newIndentStack(),
		maxDepth: o.maxDepth,
	}

	root, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if !p.tokens.empty() {
		return nil, &StructuralError{Remaining: slices.Clone(p.tokens.remaining())}
	}
	return root, nil
}

// ParseReader reads all of r and parses it.
func ParseReader(r io.Reader, opts ...Option) (Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data), opts...)
}

// =========================
// Indentation Stack
// =========================

// indentStack holds the widths of the enclosing blocks, innermost last. It
// starts at [0] and never drops below that.
type indentStack struct {
	widths []int
}

func newIndentStack() *indentStack {
	return &indentStack{widths: []int{0}}
}

func (s *indentStack) top() int {
	return s.widths[len(s.widths)-1]
}

func (s *indentStack) push(w int) {
	s.widths = append(s.widths, w)
}

func (s *indentStack) pop() {
	if len(s.widths) > 1 {
		s.widths = s.widths[:len(s.widths)-1]
	}
}

// =========================
// Parser Implementation
// =========================

type parser struct {
	tokens   *tokenQueue
	indents  *indentStack
	depth    int
	maxDepth int
}

// resolveIndent looks at a leading indent token. A deeper indent opens a
// block (pushed, token consumed); an equal one continues the current block
// (token consumed); a shallower one closes exactly one block and is left in
// place so the enclosing loops can re-evaluate it. It reports whether a block
// was closed.
func (p *parser) resolveIndent() bool {
	t, ok := p.tokens.peek()
	if !ok || t.Kind != TokenIndent {
		return false
	}
	width, top := t.Width, p.indents.top()
	switch {
	case width < top:
		p.indents.pop()
		return true
	case width == top:
		p.tokens.pop()
	default:
		p.indents.push(width)
		p.tokens.pop()
	}
	return false
}

// valueAbsent reports whether the value after a key or dash is missing: the
// input ends, or the next line is not indented deeper than the current block.
func (p *parser) valueAbsent() bool {
	t, ok := p.tokens.peek()
	if !ok {
		return true
	}
	return t.Kind == TokenIndent && t.Width <= p.indents.top()
}

func (p *parser) parseValue() (Node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		return nil, &StructuralError{
			Reason:    fmt.Sprintf("exceeded max depth of %d", p.maxDepth),
			Remaining: slices.Clone(p.tokens.remaining()),
		}
	}

	p.resolveIndent()
	t, ok := p.tokens.peek()
	if !ok {
		return NewNull(), nil
	}

	switch t.Kind {
	case TokenKey:
		return p.parseMapping()
	case TokenSeqDash:
		return p.parseSequence()
	case TokenBool, TokenNull, TokenEmpty:
		return literal(p.tokens.pop().Text), nil
	case TokenQuote:
		s, err := unquote(p.tokens.pop().Text)
		if err != nil {
			return nil, err
		}
		return NewString(s), nil
	case TokenBlock:
		return NewString(blockScalar(p.tokens.pop().Text)), nil
	case TokenInt:
		return intScalar(p.tokens.pop().Text), nil
	default:
		return plainScalar(p.tokens.pop().Text), nil
	}
}

func (p *parser) parseMapping() (Node, error) {
	m := NewMapping()
	for p.tokens.peekKind(TokenKey) {
		key := p.tokens.pop().Text
		var value Node = NewNull()
		if !p.valueAbsent() {
			v, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			value = v
		}
		m.Set(key, value)
		if p.resolveIndent() {
			break
		}
	}
	return m, nil
}

func (p *parser) parseSequence() (Node, error) {
	s := NewSequence()
	for p.tokens.peekKind(TokenSeqDash) {
		p.tokens.pop()
		var elem Node = NewNull()
		if !p.valueAbsent() {
			v, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			elem = v
		}
		s.Append(elem)
		if p.resolveIndent() {
			break
		}
	}
	return s, nil
}
