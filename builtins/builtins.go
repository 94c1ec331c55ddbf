// Package builtins holds the built-in function table seeded into the
// root environment: arithmetic, comparison, sequence manipulation,
// printing, I/O, and atoms. It depends only on types,
// reader, and printer — not on eval — so that eval can depend on it
// without a cycle; the `eval` builtin itself is wired up one layer
// up, in eval.NewRootEnv, once a root *env.Env exists to close over.
package builtins

import (
	"github.com/pkg/errors"

	"github.com/aledsdavies/malcore/types"
)

// Table is a name-keyed registry of built-in callables, modeled after
// a name-keyed registry but
// collapsed to the single flat namespace the builtin table
// needs — MAL has no decorator categories to keep separate.
type Table map[string]types.Fn

// All returns every built-in function the root environment seeds,
// keyed by its MAL name.
func All() Table {
	t := make(Table)
	registerNumeric(t)
	registerSequence(t)
	registerPrinting(t)
	registerIO(t)
	registerAtoms(t)
	return t
}

func (t Table) add(name string, fn types.Fn) {
	t[name] = fn
}

func wrongArity(name string, want string, got int) error {
	return errors.Errorf("%s: wrong number of args (expected %s, got %d)", name, want, got)
}

func typeError(name string, want string, got types.Value) error {
	return errors.Errorf("%s: expected a %s, got %s", name, want, got.TypeName())
}
