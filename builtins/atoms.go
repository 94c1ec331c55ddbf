package builtins

import (
	"github.com/pkg/errors"

	"github.com/aledsdavies/malcore/types"
)

// registerAtoms wires the mutable reference cell family. Under the
// single-threaded model, reset!/swap! replace the cell's
// payload with a plain assignment — no compare-and-swap is needed.
func registerAtoms(t Table) {
	t.add("atom", func(args []types.Value) (types.Value, error) {
		if len(args) != 1 {
			return types.Nil, wrongArity("atom", "1", len(args))
		}
		return types.NewAtom(args[0]), nil
	})

	t.add("atom?", func(args []types.Value) (types.Value, error) {
		if len(args) != 1 {
			return types.Nil, wrongArity("atom?", "1", len(args))
		}
		return types.NewBool(args[0].Kind == types.KindAtom), nil
	})

	t.add("deref", func(args []types.Value) (types.Value, error) {
		if len(args) != 1 {
			return types.Nil, wrongArity("deref", "1", len(args))
		}
		if args[0].Kind != types.KindAtom {
			return types.Nil, typeError("deref", "atom", args[0])
		}
		return args[0].Atom.Value, nil
	})

	t.add("reset!", func(args []types.Value) (types.Value, error) {
		if len(args) != 2 {
			return types.Nil, wrongArity("reset!", "2", len(args))
		}
		if args[0].Kind != types.KindAtom {
			return types.Nil, typeError("reset!", "atom", args[0])
		}
		args[0].Atom.Value = args[1]
		return args[1], nil
	})

	// swap! needs to invoke a Function or Closure, which this package
	// cannot do on its own (calling a Closure requires the evaluator's
	// apply/TCO machinery). It is registered here as a placeholder and
	// overridden by eval.NewRootEnv once Apply exists, keeping the
	// rest of the atom family — and every builtin that needs no
	// callback into the evaluator — entirely within this package.
	t.add("swap!", func(args []types.Value) (types.Value, error) {
		return types.Nil, errDeferredToEval
	})
}

var errDeferredToEval = errors.New("swap!: not callable outside the evaluator")
