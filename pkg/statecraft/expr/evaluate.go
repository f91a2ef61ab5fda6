package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// SyntaxError reports where a condition failed to parse.
type SyntaxError struct {
	Src string
	Pos int
	Msg string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expr: %s at offset %d in %q", e.Msg, e.Pos, e.Src)
}

// Compiler compiles conditions with optional custom operators.
type Compiler struct {
	customOps map[string]BinaryOp
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithOperator registers a custom word operator, used infix like contains.
// The name must not shadow a built-in operator or keyword.
func WithOperator(name string, fn BinaryOp) Option {
	return func(c *Compiler) {
		if c.customOps == nil {
			c.customOps = make(map[string]BinaryOp)
		}
		c.customOps[name] = fn
	}
}

// New creates a Compiler with the given options.
func New(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Condition is a compiled boolean expression. It is safe for concurrent use.
type Condition struct {
	src  string
	root node
}

// Source returns the text the condition was compiled from.
func (c *Condition) Source() string {
	return c.src
}

// Eval evaluates the condition against vars.
func (c *Condition) Eval(vars map[string]any) bool {
	return IsTruthy(c.root.eval(vars))
}

// Compile parses src into a Condition.
func (c *Compiler) Compile(src string) (*Condition, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	if len(toks) == 1 {
		return nil, &SyntaxError{Src: src, Pos: 0, Msg: "empty condition"}
	}

	p := &parser{src: src, toks: toks, ops: c.customOps}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf(t, "unexpected %q", t.text)
	}
	return &Condition{src: src, root: root}, nil
}

// MustCompile is like Compile but panics on syntax errors.
func (c *Compiler) MustCompile(src string) *Condition {
	cond, err := c.Compile(src)
	if err != nil {
		panic(err)
	}
	return cond
}

var defaultCompiler = New()

// Compile parses src with the default compiler.
func Compile(src string) (*Condition, error) {
	return defaultCompiler.Compile(src)
}

// MustCompile parses src with the default compiler and panics on error.
func MustCompile(src string) *Condition {
	return defaultCompiler.MustCompile(src)
}

type node interface {
	eval(vars map[string]any) any
}

type literal struct{ v any }

func (n literal) eval(map[string]any) any { return n.v }

type variable struct{ path string }

func (n variable) eval(vars map[string]any) any {
	v, _ := Lookup(vars, n.path)
	return v
}

type negation struct{ x node }

func (n negation) eval(vars map[string]any) any { return !IsTruthy(n.x.eval(vars)) }

type logical struct {
	and  bool
	l, r node
}

func (n logical) eval(vars map[string]any) any {
	left := IsTruthy(n.l.eval(vars))
	if n.and {
		return left && IsTruthy(n.r.eval(vars))
	}
	return left || IsTruthy(n.r.eval(vars))
}

type comparison struct {
	fn   BinaryOp
	l, r node
}

func (n comparison) eval(vars map[string]any) any {
	return n.fn(n.l.eval(vars), n.r.eval(vars))
}

type parser struct {
	src  string
	toks []token
	pos  int
	ops  map[string]BinaryOp
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return &SyntaxError{Src: p.src, Pos: t.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) is(words ...string) bool {
	t := p.peek()
	if t.kind != tokIdent && t.kind != tokOp {
		return false
	}
	for _, w := range words {
		if t.text == w {
			return true
		}
	}
	return false
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.is("or", "||") {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = logical{and: false, l: left, r: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.is("and", "&&") {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = logical{and: true, l: left, r: right}
	}
	return left, nil
}

func (p *parser) parseNot() (node, error) {
	if p.is("not", "!") {
		p.next()
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return negation{x: x}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (node, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	t := p.peek()
	fn, ok := p.operator(t)
	if !ok {
		return left, nil
	}
	p.next()

	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	return comparison{fn: fn, l: left, r: right}, nil
}

func (p *parser) operator(t token) (BinaryOp, bool) {
	switch t.kind {
	case tokOp:
		fn, ok := builtinOps[t.text]
		return fn, ok
	case tokIdent:
		if t.text == "contains" {
			return builtinOps["contains"], true
		}
		fn, ok := p.ops[t.text]
		return fn, ok
	default:
		return nil, false
	}
}

func (p *parser) parseOperand() (node, error) {
	t := p.next()
	switch t.kind {
	case tokLParen:
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, p.errorf(closing, "expected )")
		}
		return inner, nil
	case tokString:
		return literal{v: t.text}, nil
	case tokNumber:
		if i, err := strconv.ParseInt(t.text, 10, 64); err == nil {
			return literal{v: i}, nil
		}
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, p.errorf(t, "invalid number %q", t.text)
		}
		return literal{v: f}, nil
	case tokIdent:
		switch strings.ToLower(t.text) {
		case "true":
			return literal{v: true}, nil
		case "false":
			return literal{v: false}, nil
		case "null", "nil":
			return literal{v: nil}, nil
		case "and", "or", "not", "contains":
			return nil, p.errorf(t, "unexpected keyword %q", t.text)
		}
		return variable{path: t.text}, nil
	case tokEOF:
		return nil, p.errorf(t, "unexpected end of condition")
	default:
		return nil, p.errorf(t, "unexpected %q", t.text)
	}
}
