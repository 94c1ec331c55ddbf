// Package printer renders types.Value back to text, in either the
// readable form (round-trips through the reader) or the plain/display
// form used by str/println.
package printer

import (
	"strconv"
	"strings"

	"github.com/aledsdavies/malcore/types"
)

// PrStr renders v as text. When readable is true, strings are
// re-escaped (\ -> \\, " -> \", newline -> \n) and wrapped in quotes;
// when false, strings are emitted verbatim. Lists, vectors, hash-maps
// and atoms pass readable down to their elements; every other kind
// prints the same way regardless of readable.
func PrStr(v types.Value, readable bool) string {
	var sb strings.Builder
	write(&sb, v, readable)
	return sb.String()
}

func write(sb *strings.Builder, v types.Value, readable bool) {
	switch v.Kind {
	case types.KindNil:
		sb.WriteString("nil")
	case types.KindBool:
		if v.Bool {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case types.KindNumber:
		sb.WriteString(strconv.FormatInt(v.Number, 10))
	case types.KindSymbol:
		sb.WriteString(v.Str)
	case types.KindKeyword:
		sb.WriteByte(':')
		sb.WriteString(v.Str)
	case types.KindString:
		if readable {
			writeEscaped(sb, v.Str)
		} else {
			sb.WriteString(v.Str)
		}
	case types.KindList:
		writeSeq(sb, v.Items, "(", ")", readable)
	case types.KindVector:
		writeSeq(sb, v.Items, "[", "]", readable)
	case types.KindHashMap:
		writeSeq(sb, v.Items, "{", "}", readable)
	case types.KindAtom:
		sb.WriteString("(atom ")
		write(sb, v.Atom.Value, readable)
		sb.WriteByte(')')
	case types.KindFunction, types.KindClosure:
		sb.WriteString("#<function>")
	default:
		sb.WriteString("#<unknown>")
	}
}

func writeSeq(sb *strings.Builder, items []types.Value, open, close string, readable bool) {
	sb.WriteString(open)
	for i, item := range items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		write(sb, item, readable)
	}
	sb.WriteString(close)
}

func writeEscaped(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
}

// JoinPrStr implements pr-str's contract: each argument rendered
// readably, joined with a single space.
func JoinPrStr(args []types.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = PrStr(a, true)
	}
	return strings.Join(parts, " ")
}

// JoinStr implements str's contract: each argument rendered
// unreadably, concatenated with no separator.
func JoinStr(args []types.Value) string {
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(PrStr(a, false))
	}
	return sb.String()
}
