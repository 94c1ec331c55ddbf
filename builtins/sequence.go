package builtins

import (
	"github.com/pkg/errors"

	"github.com/aledsdavies/malcore/types"
)

func registerSequence(t Table) {
	t.add("list", func(args []types.Value) (types.Value, error) {
		return types.NewList(args...), nil
	})

	t.add("list?", func(args []types.Value) (types.Value, error) {
		if len(args) != 1 {
			return types.Nil, wrongArity("list?", "1", len(args))
		}
		return types.NewBool(args[0].Kind == types.KindList), nil
	})

	t.add("empty?", func(args []types.Value) (types.Value, error) {
		if len(args) != 1 {
			return types.Nil, wrongArity("empty?", "1", len(args))
		}
		return types.NewBool(len(args[0].Seq()) == 0), nil
	})

	t.add("count", func(args []types.Value) (types.Value, error) {
		if len(args) != 1 {
			return types.Nil, wrongArity("count", "1", len(args))
		}
		v := args[0]
		if v.Kind == types.KindNil {
			return types.NewNumber(0), nil
		}
		if !v.IsSeq() {
			return types.Nil, typeError("count", "list or vector", v)
		}
		return types.NewNumber(int64(len(v.Items))), nil
	})

	t.add("cons", func(args []types.Value) (types.Value, error) {
		if len(args) != 2 {
			return types.Nil, wrongArity("cons", "2", len(args))
		}
		if !args[1].IsSeq() && !args[1].IsNil() {
			return types.Nil, typeError("cons", "list or vector", args[1])
		}
		items := append([]types.Value{args[0]}, args[1].Seq()...)
		return types.NewList(items...), nil
	})

	t.add("concat", func(args []types.Value) (types.Value, error) {
		var items []types.Value
		for _, a := range args {
			if !a.IsSeq() && !a.IsNil() {
				return types.Nil, typeError("concat", "list or vector", a)
			}
			items = append(items, a.Seq()...)
		}
		return types.NewList(items...), nil
	})

	t.add("vec", func(args []types.Value) (types.Value, error) {
		if len(args) != 1 {
			return types.Nil, wrongArity("vec", "1", len(args))
		}
		v := args[0]
		switch v.Kind {
		case types.KindVector:
			return v, nil
		case types.KindList:
			return types.NewVector(v.Items...), nil
		case types.KindNil:
			return types.NewVector(), nil
		default:
			return types.Nil, typeError("vec", "list, vector, or nil", v)
		}
	})

	t.add("nth", func(args []types.Value) (types.Value, error) {
		if len(args) != 2 {
			return types.Nil, wrongArity("nth", "2", len(args))
		}
		if !args[0].IsSeq() {
			return types.Nil, typeError("nth", "list or vector", args[0])
		}
		if args[1].Kind != types.KindNumber {
			return types.Nil, typeError("nth", "number", args[1])
		}
		idx := args[1].Number
		items := args[0].Items
		if idx < 0 || idx >= int64(len(items)) {
			return types.Nil, errors.New("nth: index out of range")
		}
		return items[idx], nil
	})

	t.add("first", func(args []types.Value) (types.Value, error) {
		if len(args) != 1 {
			return types.Nil, wrongArity("first", "1", len(args))
		}
		v := args[0]
		if v.Kind == types.KindNil {
			return types.Nil, nil
		}
		if !v.IsSeq() {
			return types.Nil, typeError("first", "list or vector", v)
		}
		if len(v.Items) == 0 {
			return types.Nil, nil
		}
		return v.Items[0], nil
	})

	t.add("rest", func(args []types.Value) (types.Value, error) {
		if len(args) != 1 {
			return types.Nil, wrongArity("rest", "1", len(args))
		}
		v := args[0]
		if v.Kind == types.KindNil {
			return types.NewList(), nil
		}
		if !v.IsSeq() {
			return types.Nil, typeError("rest", "list or vector", v)
		}
		if len(v.Items) <= 1 {
			return types.NewList(), nil
		}
		return types.NewList(v.Items[1:]...), nil
	})
}
