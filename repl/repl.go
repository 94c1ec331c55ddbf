// Package repl wires the public READ/EVAL/PRINT entry points
// on top of a root environment: reading text into a
// Value, evaluating it, printing the result, and the convenience
// Rep = READ then EVAL then PRINT.
package repl

import (
	"github.com/aledsdavies/malcore/env"
	"github.com/aledsdavies/malcore/eval"
	"github.com/aledsdavies/malcore/printer"
	"github.com/aledsdavies/malcore/reader"
	"github.com/aledsdavies/malcore/types"
)

// Repl owns the root environment that every Rep call evaluates
// against, keeping top-level def!/defmacro! bindings live across
// calls the way an interactive session expects.
type Repl struct {
	Env *env.Env
}

// New constructs a Repl: a root environment seeded with constants and
// builtins (via eval.NewRootEnv), *ARGV* bound to argv, and the
// bootstrap forms pre-evaluated.
func New(argv []string) (*Repl, error) {
	root := eval.NewRootEnv()

	argvItems := make([]types.Value, len(argv))
	for i, a := range argv {
		argvItems[i] = types.NewString(a)
	}
	root.Set(types.Symbol("*ARGV*"), types.NewList(argvItems...))

	r := &Repl{Env: root}
	for _, form := range bootstrapForms {
		if _, err := r.Rep(form); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// bootstrapForms are pre-evaluated into the root environment at
// construction time.
var bootstrapForms = []string{
	`(def! not (fn* (a) (if a false true)))`,
	`(def! load-file (fn* (f) (eval (read-string (str "(do " (slurp f) "\nnil)")))))`,
	`(defmacro! cond (fn* (& xs) (if (> (count xs) 0) (list 'if (first xs) (if (> (count xs) 1) (nth xs 1) (throw "odd number of forms to cond")) (cons 'cond (rest (rest xs)))))))`,
}

// Read parses one form from text.
func Read(text string) (types.Value, error) {
	return reader.ReadStr(text)
}

// Eval evaluates ast in the REPL's root environment.
func (r *Repl) Eval(ast types.Value) (types.Value, error) {
	return eval.Eval(ast, r.Env)
}

// Print renders v in its readable form.
func Print(v types.Value) string {
	return printer.PrStr(v, true)
}

// Rep runs READ then EVAL then PRINT over text against the REPL's root
// environment.
func (r *Repl) Rep(text string) (string, error) {
	ast, err := Read(text)
	if err != nil {
		return "", err
	}
	val, err := r.Eval(ast)
	if err != nil {
		return "", err
	}
	return Print(val), nil
}
