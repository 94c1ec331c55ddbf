package types_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/malcore/types"
)

// valueComparer lets go-cmp compare types.Value despite its func-valued
// Fn field and the unexported fields reachable through Closure.Env, by
// delegating to types.Equal for the cases that define structural
// equality (including List/Vector cross-kind equality).
var valueComparer = cmp.Comparer(func(a, b types.Value) bool {
	return types.Equal(a, b)
})

func TestTruthiness(t *testing.T) {
	falsy := []types.Value{types.Nil, types.False}
	for _, v := range falsy {
		assert.False(t, v.IsTruthy())
	}

	truthy := []types.Value{
		types.True,
		types.NewNumber(0),
		types.NewString(""),
		types.NewList(),
		types.NewVector(),
	}
	for _, v := range truthy {
		assert.Truef(t, v.IsTruthy(), "expected %v to be truthy", v)
	}
}

func TestEqualListVectorCrossType(t *testing.T) {
	list := types.NewList(types.NewNumber(1), types.NewNumber(2), types.NewNumber(3))
	vec := types.NewVector(types.NewNumber(1), types.NewNumber(2), types.NewNumber(3))

	require.True(t, types.Equal(list, vec))
	require.True(t, types.Equal(vec, list))
	require.Empty(t, cmp.Diff(list, vec, valueComparer))

	shortVec := types.NewVector(types.NewNumber(1), types.NewNumber(2))
	assert.False(t, types.Equal(list, shortVec))
}

func TestEqualCrossTagIsFalse(t *testing.T) {
	assert.False(t, types.Equal(types.NewNumber(0), types.Nil))
	assert.False(t, types.Equal(types.NewString("true"), types.True))
	assert.False(t, types.Equal(types.NewSymbol("x"), types.NewKeyword("x")))
}

func TestEqualBuiltinFunctionByName(t *testing.T) {
	plus1 := types.NewFunction("+", func(args []types.Value) (types.Value, error) { return types.Nil, nil })
	plus2 := types.NewFunction("+", func(args []types.Value) (types.Value, error) { return types.Nil, nil })
	assert.True(t, types.Equal(plus1, plus2), "two Functions with the same builtin name must compare equal")

	minus := types.NewFunction("-", func(args []types.Value) (types.Value, error) { return types.Nil, nil })
	assert.False(t, types.Equal(plus1, minus))
}

func TestEqualReflexiveSymmetric(t *testing.T) {
	a := types.NewList(types.NewNumber(1), types.NewKeyword("k"))
	b := types.NewList(types.NewNumber(1), types.NewKeyword("k"))
	assert.True(t, types.Equal(a, a))
	assert.True(t, types.Equal(a, b))
	assert.True(t, types.Equal(b, a))
}
