package expr

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex splits src into tokens. Keywords are returned as tokIdent.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := rune(src[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case c == '\'' || c == '"':
			end := strings.IndexRune(src[i+1:], c)
			if end < 0 {
				return nil, &SyntaxError{Src: src, Pos: i, Msg: "unterminated string"}
			}
			toks = append(toks, token{tokString, src[i+1 : i+1+end], i})
			i += end + 2
		case isDigit(c) || (c == '-' && i+1 < len(src) && isDigit(rune(src[i+1]))):
			start := i
			i++
			for i < len(src) && (isDigit(rune(src[i])) || src[i] == '.') {
				i++
			}
			toks = append(toks, token{tokNumber, src[start:i], start})
		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentPart(rune(src[i])) {
				i++
			}
			toks = append(toks, token{tokIdent, src[start:i], start})
		default:
			op := matchOp(src[i:])
			if op == "" {
				return nil, &SyntaxError{Src: src, Pos: i, Msg: "unexpected character " + string(c)}
			}
			toks = append(toks, token{tokOp, op, i})
			i += len(op)
		}
	}
	return append(toks, token{tokEOF, "", len(src)}), nil
}

var symbolOps = []string{"==", "!=", "<=", ">=", "&&", "||", "<", ">", "!"}

func matchOp(s string) string {
	for _, op := range symbolOps {
		if strings.HasPrefix(s, op) {
			return op
		}
	}
	return ""
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || isDigit(c) || c == '.' || c == '?'
}
