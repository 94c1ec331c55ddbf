package builtins

import (
	"github.com/pkg/errors"

	"github.com/aledsdavies/malcore/types"
)

var errDivideByZero = errors.New("/: division by zero")

func registerNumeric(t Table) {
	t.add("+", numOp("+", func(a, b int64) int64 { return a + b }))
	t.add("-", numOp("-", func(a, b int64) int64 { return a - b }))
	t.add("*", numOp("*", func(a, b int64) int64 { return a * b }))
	t.add("/", divide)

	t.add("<", cmpOp("<", func(a, b int64) bool { return a < b }))
	t.add("<=", cmpOp("<=", func(a, b int64) bool { return a <= b }))
	t.add(">", cmpOp(">", func(a, b int64) bool { return a > b }))
	t.add(">=", cmpOp(">=", func(a, b int64) bool { return a >= b }))

	t.add("=", func(args []types.Value) (types.Value, error) {
		if len(args) != 2 {
			return types.Nil, wrongArity("=", "2", len(args))
		}
		return types.NewBool(types.Equal(args[0], args[1])), nil
	})
}

func twoNumbers(name string, args []types.Value) (int64, int64, error) {
	if len(args) != 2 {
		return 0, 0, wrongArity(name, "2", len(args))
	}
	if args[0].Kind != types.KindNumber {
		return 0, 0, typeError(name, "number", args[0])
	}
	if args[1].Kind != types.KindNumber {
		return 0, 0, typeError(name, "number", args[1])
	}
	return args[0].Number, args[1].Number, nil
}

func numOp(name string, op func(a, b int64) int64) types.Fn {
	return func(args []types.Value) (types.Value, error) {
		a, b, err := twoNumbers(name, args)
		if err != nil {
			return types.Nil, err
		}
		return types.NewNumber(op(a, b)), nil
	}
}

func cmpOp(name string, op func(a, b int64) bool) types.Fn {
	return func(args []types.Value) (types.Value, error) {
		a, b, err := twoNumbers(name, args)
		if err != nil {
			return types.Nil, err
		}
		return types.NewBool(op(a, b)), nil
	}
}

// divide truncates toward zero, matching Go's native integer division
// (unlike Python's floor division, which the Python reference
// implementation papers over with plain "/" on floats
// is explicit that this implementation truncates toward zero).
func divide(args []types.Value) (types.Value, error) {
	a, b, err := twoNumbers("/", args)
	if err != nil {
		return types.Nil, err
	}
	if b == 0 {
		return types.Nil, errDivideByZero
	}
	return types.NewNumber(a / b), nil
}
