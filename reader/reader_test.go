package reader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/malcore/reader"
	"github.com/aledsdavies/malcore/types"
)

func TestTokenize(t *testing.T) {
	tokens := reader.Tokenize(`(+ 1 2) ; a comment
	"a string" :kw`)
	assert.Equal(t, []string{"(", "+", "1", "2", ")", `"a string"`, ":kw"}, tokens)
}

func TestReadAtoms(t *testing.T) {
	cases := map[string]types.Value{
		"nil":      types.Nil,
		"true":     types.True,
		"false":    types.False,
		"42":       types.NewNumber(42),
		"-7":       types.NewNumber(-7),
		"abc":      types.NewSymbol("abc"),
		":kw":      types.NewKeyword("kw"),
		`"hello"`:  types.NewString("hello"),
		`"a\nb"`:   types.NewString("a\nb"),
		`"a\\b"`:   types.NewString(`a\b`),
		`"a\"b"`:   types.NewString(`a"b`),
	}
	for input, want := range cases {
		got, err := reader.ReadStr(input)
		require.NoErrorf(t, err, "input=%q", input)
		assert.Truef(t, types.Equal(got, want), "input=%q got=%+v want=%+v", input, got, want)
	}
}

func TestReadCollections(t *testing.T) {
	got, err := reader.ReadStr("(1 [2 3] {:a 1})")
	require.NoError(t, err)
	require.Equal(t, types.KindList, got.Kind)
	require.Len(t, got.Items, 3)
	assert.Equal(t, types.KindVector, got.Items[1].Kind)
	assert.Equal(t, types.KindHashMap, got.Items[2].Kind)
}

func TestReadQuoteFamily(t *testing.T) {
	cases := map[string]string{
		"'x":   "(quote x)",
		"`x":   "(quasiquote x)",
		"~x":   "(unquote x)",
		"~@x":  "(splice-unquote x)",
		"@x":   "(deref x)",
	}
	for input, wantStr := range cases {
		got, err := reader.ReadStr(input)
		require.NoErrorf(t, err, "input=%q", input)
		want, err := reader.ReadStr(wantStr)
		require.NoError(t, err)
		assert.Truef(t, types.Equal(got, want), "input=%q got=%+v want=%+v", input, got, want)
	}
}

func TestReadUnterminatedListIsEOFError(t *testing.T) {
	_, err := reader.ReadStr("(1 2")
	require.Error(t, err)
}

func TestReadUnbalancedStringIsError(t *testing.T) {
	_, err := reader.ReadStr(`"abc`)
	require.Error(t, err)
}

func TestReadFloatLiteralIsRejected(t *testing.T) {
	_, err := reader.ReadStr("1.5")
	require.Error(t, err)
}

func TestReadStrTrailingTokensIgnored(t *testing.T) {
	got, err := reader.ReadStr("1 2 3")
	require.NoError(t, err)
	assert.True(t, types.Equal(got, types.NewNumber(1)))
}

func TestReadLeadingPlusIsSymbolNotNumber(t *testing.T) {
	got, err := reader.ReadStr("+5")
	require.NoError(t, err)
	assert.True(t, types.Equal(got, types.NewSymbol("+5")))

	got, err = reader.ReadStr("+1.5")
	require.NoError(t, err)
	assert.True(t, types.Equal(got, types.NewSymbol("+1.5")), "a leading + never reads as a numeric literal, float or int")
}
