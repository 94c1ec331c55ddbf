package printer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/malcore/printer"
	"github.com/aledsdavies/malcore/reader"
	"github.com/aledsdavies/malcore/types"
)

func TestPrStrBasics(t *testing.T) {
	assert.Equal(t, "nil", printer.PrStr(types.Nil, true))
	assert.Equal(t, "true", printer.PrStr(types.True, true))
	assert.Equal(t, "false", printer.PrStr(types.False, true))
	assert.Equal(t, "42", printer.PrStr(types.NewNumber(42), true))
	assert.Equal(t, ":kw", printer.PrStr(types.NewKeyword("kw"), true))
	assert.Equal(t, "abc", printer.PrStr(types.NewSymbol("abc"), true))
}

func TestPrStrStringEscaping(t *testing.T) {
	assert.Equal(t, `"a\nb"`, printer.PrStr(types.NewString("a\nb"), true))
	assert.Equal(t, "a\nb", printer.PrStr(types.NewString("a\nb"), false))
	assert.Equal(t, `"a\"b"`, printer.PrStr(types.NewString(`a"b`), true))
}

func TestPrStrSequences(t *testing.T) {
	list := types.NewList(types.NewNumber(1), types.NewNumber(2))
	assert.Equal(t, "(1 2)", printer.PrStr(list, true))
	vec := types.NewVector(types.NewNumber(1), types.NewNumber(2))
	assert.Equal(t, "[1 2]", printer.PrStr(vec, true))
}

// TestReadPrintRoundTrip checks that READ(PRINT(v))
// is structurally equal to v for every readably-printable value.
func TestReadPrintRoundTrip(t *testing.T) {
	values := []types.Value{
		types.Nil,
		types.True,
		types.False,
		types.NewNumber(-3),
		types.NewString("hello \"world\"\nline2"),
		types.NewKeyword("kw"),
		types.NewSymbol("sym"),
		types.NewList(types.NewNumber(1), types.NewVector(types.NewNumber(2), types.NewKeyword("k"))),
	}
	for _, v := range values {
		text := printer.PrStr(v, true)
		got, err := reader.ReadStr(text)
		require.NoErrorf(t, err, "printed=%q", text)
		assert.Truef(t, types.Equal(got, v), "round-trip mismatch: printed=%q got=%+v want=%+v", text, got, v)
	}
}

func TestJoinPrStrAndJoinStr(t *testing.T) {
	args := []types.Value{types.NewString("a"), types.NewString("b")}
	assert.Equal(t, `"a" "b"`, printer.JoinPrStr(args))
	assert.Equal(t, "ab", printer.JoinStr(args))
}
