package reader

import "github.com/pkg/errors"

// ErrorKind categorizes the three parse-error shapes: running out of
// tokens inside an open collection, a malformed string literal, and a
// rejected float literal.
type ErrorKind int

const (
	ErrUnexpectedEOF ErrorKind = iota
	ErrUnbalancedString
	ErrUnsupportedNumeric
)

// ParseError carries the offending token context alongside its kind so
// a REPL can print a short diagnostic without walking the call stack.
type ParseError struct {
	Kind    ErrorKind
	Message string
}

func (e *ParseError) Error() string { return e.Message }

func eofError(context string) error {
	return errors.WithStack(&ParseError{
		Kind:    ErrUnexpectedEOF,
		Message: "expected '" + context + "', got EOF",
	})
}

func unbalancedError(token string) error {
	return errors.WithStack(&ParseError{
		Kind:    ErrUnbalancedString,
		Message: "unbalanced string literal: " + token,
	})
}

func unsupportedNumericError(token string) error {
	return errors.WithStack(&ParseError{
		Kind:    ErrUnsupportedNumeric,
		Message: "unsupported numeric literal: floats are not supported: " + token,
	})
}
