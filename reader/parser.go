// Package reader implements the lexer/parser pair that turns MAL
// source text into a types.Value AST: Tokenize splits the input into
// a token stream, and ReadStr drives a
// recursive-descent parser over that stream.
package reader

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/aledsdavies/malcore/types"
)

// ReadStr tokenizes and parses a single top-level form. Trailing
// tokens after the first form are ignored, matching MAL's read_str.
func ReadStr(s string) (types.Value, error) {
	ts := newTokenStream(Tokenize(s))
	if _, ok := ts.peek(); !ok {
		return types.Nil, nil
	}
	return readForm(ts)
}

func readForm(ts *tokenStream) (types.Value, error) {
	tok, ok := ts.peek()
	if !ok {
		return types.Nil, eofError("form")
	}

	switch tok {
	case "(":
		return readSeq(ts, "(", ")", types.NewList)
	case "[":
		return readSeq(ts, "[", "]", types.NewVector)
	case "{":
		return readSeq(ts, "{", "}", types.NewHashMap)
	case ")", "]", "}":
		return types.Nil, errors.Errorf("unexpected '%s'", tok)
	case "'":
		return readWrapped(ts, "quote")
	case "`":
		return readWrapped(ts, "quasiquote")
	case "~":
		return readWrapped(ts, "unquote")
	case "~@":
		return readWrapped(ts, "splice-unquote")
	case "@":
		return readWrapped(ts, "deref")
	case "^":
		ts.next()
		meta, err := readForm(ts)
		if err != nil {
			return types.Nil, err
		}
		form, err := readForm(ts)
		if err != nil {
			return types.Nil, err
		}
		return types.NewList(types.NewSymbol("with-meta"), form, meta), nil
	default:
		return readAtom(ts)
	}
}

// readWrapped consumes the current reader-macro token and returns
// (sym (readForm)) — the quote-family expansion.
func readWrapped(ts *tokenStream, sym string) (types.Value, error) {
	ts.next()
	inner, err := readForm(ts)
	if err != nil {
		return types.Nil, err
	}
	return types.NewList(types.NewSymbol(sym), inner), nil
}

func readSeq(ts *tokenStream, open, close string, build func(...types.Value) types.Value) (types.Value, error) {
	ts.next() // consume open
	var items []types.Value
	for {
		tok, ok := ts.peek()
		if !ok {
			return types.Nil, eofError(close)
		}
		if tok == close {
			ts.next()
			return build(items...), nil
		}
		item, err := readForm(ts)
		if err != nil {
			return types.Nil, err
		}
		items = append(items, item)
	}
}

func readAtom(ts *tokenStream) (types.Value, error) {
	tok, _ := ts.next()

	switch {
	case tok == "nil":
		return types.Nil, nil
	case tok == "true":
		return types.True, nil
	case tok == "false":
		return types.False, nil
	case isIntLiteral(tok):
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return types.Nil, errors.Wrapf(err, "invalid integer literal: %s", tok)
		}
		return types.NewNumber(n), nil
	case isFloatLiteral(tok):
		return types.Nil, unsupportedNumericError(tok)
	case strings.HasPrefix(tok, `"`):
		s, err := unescapeString(tok)
		if err != nil {
			return types.Nil, err
		}
		return types.NewString(s), nil
	case strings.HasPrefix(tok, ":"):
		return types.NewKeyword(tok[1:]), nil
	default:
		return types.NewSymbol(tok), nil
	}
}

func isIntLiteral(tok string) bool {
	if tok == "" {
		return false
	}
	i := 0
	if tok[0] == '-' {
		i = 1
	}
	if i >= len(tok) {
		return false
	}
	for ; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return true
}

func isFloatLiteral(tok string) bool {
	if tok == "" || !strings.Contains(tok, ".") {
		return false
	}
	i := 0
	if tok[0] == '-' {
		i = 1
	}
	if i >= len(tok) {
		return false
	}
	seenDigit, seenDot := false, false
	for ; i < len(tok); i++ {
		c := tok[i]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case c == '.' && !seenDot:
			seenDot = true
		default:
			return false
		}
	}
	return seenDigit && seenDot
}

// unescapeString validates and unescapes a "..." token: it must start
// and end with an unescaped double quote and have balanced escapes;
// \\ -> \, \" -> ", \n -> newline.
func unescapeString(tok string) (string, error) {
	if len(tok) < 2 || tok[len(tok)-1] != '"' || isEscapedClosingQuote(tok) {
		return "", unbalancedError(tok)
	}
	body := tok[1 : len(tok)-1]

	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", unbalancedError(tok)
		}
		switch body[i] {
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case 'n':
			sb.WriteByte('\n')
		default:
			sb.WriteByte('\\')
			sb.WriteByte(body[i])
		}
	}
	return sb.String(), nil
}

// isEscapedClosingQuote reports whether the token's trailing quote is
// itself escaped (e.g. `"abc\"`), which means the string never closed.
func isEscapedClosingQuote(tok string) bool {
	if len(tok) < 2 {
		return true
	}
	backslashes := 0
	for i := len(tok) - 2; i >= 0 && tok[i] == '\\'; i-- {
		backslashes++
	}
	return backslashes%2 == 1
}
