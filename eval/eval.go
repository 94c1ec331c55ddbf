// Package eval implements the special-form dispatcher, the TCO
// trampoline, macro expansion, and apply — the evaluation half of the
// READ/EVAL/PRINT pipeline.
package eval

import (
	"github.com/pkg/errors"

	"github.com/aledsdavies/malcore/builtins"
	"github.com/aledsdavies/malcore/env"
	"github.com/aledsdavies/malcore/types"
)

// LispError wraps a types.Value raised by the `throw` builtin so
// try*/catch* can recover the original Value instead of a stringified
// copy.
type LispError struct {
	Value types.Value
}

func (e *LispError) Error() string { return "uncaught exception" }

// Throw constructs the error `throw` raises.
func Throw(v types.Value) error { return &LispError{Value: v} }

// AsLispValue converts any error crossing a catch* boundary into a
// types.Value: a LispError yields its original payload, anything else
// becomes a String of its message.
func AsLispValue(err error) types.Value {
	var le *LispError
	if errors.As(err, &le) {
		return le.Value
	}
	return types.NewString(err.Error())
}

var symQuote = types.Symbol("quote")
var symQuasiquote = types.Symbol("quasiquote")
var symUnquote = types.Symbol("unquote")
var symSpliceUnquote = types.Symbol("splice-unquote")
var symDef = types.Symbol("def!")
var symLet = types.Symbol("let*")
var symDo = types.Symbol("do")
var symIf = types.Symbol("if")
var symFn = types.Symbol("fn*")
var symDefMacro = types.Symbol("defmacro!")
var symMacroExpand = types.Symbol("macroexpand")
var symTry = types.Symbol("try*")
var symCatch = types.Symbol("catch*")

// Eval is the single evaluation loop. Tail
// positions (let* body, do's last form, if's chosen branch, and
// application of a Closure) are implemented by rewriting the local
// ast/environment and looping, so deeply tail-recursive MAL programs
// do not grow the Go call stack.
func Eval(ast types.Value, environment types.Environment) (types.Value, error) {
	for {
		expanded, err := macroExpand(ast, environment)
		if err != nil {
			return types.Nil, err
		}
		ast = expanded

		if ast.Kind != types.KindList {
			return evalNonList(ast, environment)
		}
		if len(ast.Items) == 0 {
			return ast, nil
		}

		head := ast.Items[0]
		if head.Kind == types.KindSymbol {
			switch types.Symbol(head.Str) {
			case symDef:
				return evalDef(ast, environment)
			case symLet:
				newAst, newEnv, err := evalLetTail(ast, environment)
				if err != nil {
					return types.Nil, err
				}
				ast, environment = newAst, newEnv
				continue
			case symDo:
				newAst, err := evalDoTail(ast, environment)
				if err != nil {
					return types.Nil, err
				}
				ast = newAst
				continue
			case symIf:
				newAst, err := evalIfTail(ast, environment)
				if err != nil {
					return types.Nil, err
				}
				ast = newAst
				continue
			case symFn:
				return evalFnStar(ast, environment)
			case symQuote:
				return evalQuote(ast)
			case symQuasiquote:
				newAst, err := evalQuasiquoteTail(ast)
				if err != nil {
					return types.Nil, err
				}
				ast = newAst
				continue
			case symDefMacro:
				return evalDefMacro(ast, environment)
			case symMacroExpand:
				if len(ast.Items) != 2 {
					return types.Nil, errors.New("macroexpand: wrong number of args (expected 1)")
				}
				return macroExpand(ast.Items[1], environment)
			case symTry:
				return evalTryCatch(ast, environment)
			}
		}

		// Apply: evaluate every element, then dispatch on the callable.
		fn, args, err := evalApplyForm(ast, environment)
		if err != nil {
			return types.Nil, err
		}
		switch fn.Kind {
		case types.KindFunction:
			return fn.Fn(args)
		case types.KindClosure:
			newEnv, err := fn.Closure.Env.NewChild(fn.Closure.Params, fn.Closure.Rest, args)
			if err != nil {
				return types.Nil, err
			}
			ast, environment = fn.Closure.Body, newEnv
			continue
		default:
			return types.Nil, errors.Errorf("not callable: %s", fn.TypeName())
		}
	}
}

func evalNonList(ast types.Value, environment types.Environment) (types.Value, error) {
	switch ast.Kind {
	case types.KindSymbol:
		return environment.Get(types.Symbol(ast.Str))
	case types.KindVector:
		items, err := evalEach(ast.Items, environment)
		if err != nil {
			return types.Nil, err
		}
		return types.NewVector(items...), nil
	case types.KindHashMap:
		items := make([]types.Value, len(ast.Items))
		for i, v := range ast.Items {
			if i%2 == 0 {
				items[i] = v // key: kept literal
				continue
			}
			ev, err := Eval(v, environment)
			if err != nil {
				return types.Nil, err
			}
			items[i] = ev
		}
		return types.NewHashMap(items...), nil
	default:
		return ast, nil
	}
}

func evalEach(items []types.Value, environment types.Environment) ([]types.Value, error) {
	out := make([]types.Value, len(items))
	for i, item := range items {
		v, err := Eval(item, environment)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func evalApplyForm(ast types.Value, environment types.Environment) (fn types.Value, args []types.Value, err error) {
	items, err := evalEach(ast.Items, environment)
	if err != nil {
		return types.Nil, nil, err
	}
	return items[0], items[1:], nil
}

func evalDef(ast types.Value, environment types.Environment) (types.Value, error) {
	if len(ast.Items) != 3 || ast.Items[1].Kind != types.KindSymbol {
		return types.Nil, errors.New("def!: expected (def! name expr)")
	}
	val, err := Eval(ast.Items[2], environment)
	if err != nil {
		return types.Nil, err
	}
	environment.Set(types.Symbol(ast.Items[1].Str), val)
	return val, nil
}

func evalLetTail(ast types.Value, environment types.Environment) (types.Value, types.Environment, error) {
	if len(ast.Items) != 3 || !ast.Items[1].IsSeq() {
		return types.Nil, nil, errors.New("let*: expected (let* (bindings...) body)")
	}
	binds := ast.Items[1].Items
	if len(binds)%2 != 0 {
		return types.Nil, nil, errors.New("let*: binding list must have an even number of forms")
	}
	child, err := environment.NewChild(nil, nil, nil)
	if err != nil {
		return types.Nil, nil, err
	}
	for i := 0; i < len(binds); i += 2 {
		if binds[i].Kind != types.KindSymbol {
			return types.Nil, nil, errors.New("let*: binding name must be a symbol")
		}
		val, err := Eval(binds[i+1], child)
		if err != nil {
			return types.Nil, nil, err
		}
		child.Set(types.Symbol(binds[i].Str), val)
	}
	return ast.Items[2], child, nil
}

func evalDoTail(ast types.Value, environment types.Environment) (types.Value, error) {
	body := ast.Items[1:]
	if len(body) == 0 {
		return types.Nil, nil
	}
	for _, form := range body[:len(body)-1] {
		if _, err := Eval(form, environment); err != nil {
			return types.Nil, err
		}
	}
	return body[len(body)-1], nil
}

func evalIfTail(ast types.Value, environment types.Environment) (types.Value, error) {
	if len(ast.Items) < 3 || len(ast.Items) > 4 {
		return types.Nil, errors.New("if: expected (if cond then [else])")
	}
	cond, err := Eval(ast.Items[1], environment)
	if err != nil {
		return types.Nil, err
	}
	if cond.IsTruthy() {
		return ast.Items[2], nil
	}
	if len(ast.Items) == 4 {
		return ast.Items[3], nil
	}
	return types.Nil, nil
}

func evalFnStar(ast types.Value, environment types.Environment) (types.Value, error) {
	if len(ast.Items) != 3 || !ast.Items[1].IsSeq() {
		return types.Nil, errors.New("fn*: expected (fn* (params...) body)")
	}
	params, rest, err := parseParamList(ast.Items[1].Items)
	if err != nil {
		return types.Nil, err
	}
	return types.NewClosure(&types.Closure{
		Params: params,
		Rest:   rest,
		Body:   ast.Items[2],
		Env:    environment,
	}), nil
}

func parseParamList(raw []types.Value) ([]types.Symbol, *types.Symbol, error) {
	syms := make([]types.Symbol, len(raw))
	for i, v := range raw {
		if v.Kind != types.KindSymbol {
			return nil, nil, errors.New("fn*: parameter list must contain only symbols")
		}
		syms[i] = types.Symbol(v.Str)
	}
	return env.SplitParams(syms)
}

func evalQuote(ast types.Value) (types.Value, error) {
	if len(ast.Items) != 2 {
		return types.Nil, errors.New("quote: expected (quote x)")
	}
	return ast.Items[1], nil
}

func evalQuasiquoteTail(ast types.Value) (types.Value, error) {
	if len(ast.Items) != 2 {
		return types.Nil, errors.New("quasiquote: expected (quasiquote x)")
	}
	return Quasiquote(ast.Items[1]), nil
}

func evalDefMacro(ast types.Value, environment types.Environment) (types.Value, error) {
	if len(ast.Items) != 3 || ast.Items[1].Kind != types.KindSymbol {
		return types.Nil, errors.New("defmacro!: expected (defmacro! name fnexpr)")
	}
	val, err := Eval(ast.Items[2], environment)
	if err != nil {
		return types.Nil, err
	}
	if val.Kind != types.KindClosure {
		return types.Nil, errors.New("defmacro!: expression must evaluate to a function")
	}
	macro := *val.Closure
	macro.IsMacro = true
	macroVal := types.NewClosure(&macro)
	environment.Set(types.Symbol(ast.Items[1].Str), macroVal)
	return macroVal, nil
}

func evalTryCatch(ast types.Value, environment types.Environment) (types.Value, error) {
	if len(ast.Items) != 3 {
		// try* with no catch*: just evaluate, errors propagate.
		if len(ast.Items) == 2 {
			return Eval(ast.Items[1], environment)
		}
		return types.Nil, errors.New("try*: expected (try* a (catch* sym b))")
	}
	result, err := Eval(ast.Items[1], environment)
	if err == nil {
		return result, nil
	}

	catchForm := ast.Items[2]
	if !catchForm.IsSeq() || len(catchForm.Items) != 3 ||
		catchForm.Items[0].Kind != types.KindSymbol || types.Symbol(catchForm.Items[0].Str) != symCatch ||
		catchForm.Items[1].Kind != types.KindSymbol {
		return types.Nil, errors.New("try*: expected (catch* sym body)")
	}

	child, childErr := environment.NewChild([]types.Symbol{types.Symbol(catchForm.Items[1].Str)}, nil, []types.Value{AsLispValue(err)})
	if childErr != nil {
		return types.Nil, childErr
	}
	return Eval(catchForm.Items[2], child)
}

// NewRootEnv builds the root *env.Env, seeded with the constants and
// builtin table from builtins.All(), plus the `eval` and `swap!`
// builtins, which need the evaluator itself and so cannot live in the
// builtins package without an import cycle (note that
// `eval` evaluating in the root environment, not the caller's).
func NewRootEnv() *env.Env {
	root := env.New(nil)
	for name, fn := range builtins.All() {
		root.Set(types.Symbol(name), types.NewFunction(name, fn))
	}
	root.Set(types.Symbol("nil"), types.Nil)
	root.Set(types.Symbol("true"), types.True)
	root.Set(types.Symbol("false"), types.False)

	root.Set("eval", types.NewFunction("eval", func(args []types.Value) (types.Value, error) {
		if len(args) != 1 {
			return types.Nil, errors.New("eval: wrong number of args (expected 1)")
		}
		return Eval(args[0], root)
	}))

	root.Set("throw", types.NewFunction("throw", func(args []types.Value) (types.Value, error) {
		if len(args) != 1 {
			return types.Nil, errors.New("throw: wrong number of args (expected 1)")
		}
		return types.Nil, Throw(args[0])
	}))

	root.Set("swap!", types.NewFunction("swap!", func(args []types.Value) (types.Value, error) {
		if len(args) < 2 {
			return types.Nil, errors.New("swap!: wrong number of args (expected at least 2)")
		}
		if args[0].Kind != types.KindAtom {
			return types.Nil, errors.Errorf("swap!: expected an atom, got %s", args[0].TypeName())
		}
		fnArgs := append([]types.Value{args[0].Atom.Value}, args[2:]...)
		newVal, err := Apply(args[1], fnArgs)
		if err != nil {
			return types.Nil, err
		}
		args[0].Atom.Value = newVal
		return newVal, nil
	}))

	return root
}

// Apply invokes fn (Function or Closure) with args in a non-tail
// position, as needed by swap! and other builtins that call back into
// user code. Unlike the main loop's Closure branch, this recurses
// through Eval rather than rewriting loop state, since callers here
// need the result, not a tail rewrite.
func Apply(fn types.Value, args []types.Value) (types.Value, error) {
	switch fn.Kind {
	case types.KindFunction:
		return fn.Fn(args)
	case types.KindClosure:
		childEnv, err := fn.Closure.Env.NewChild(fn.Closure.Params, fn.Closure.Rest, args)
		if err != nil {
			return types.Nil, err
		}
		return Eval(fn.Closure.Body, childEnv)
	default:
		return types.Nil, errors.Errorf("not callable: %s", fn.TypeName())
	}
}

// macroExpand repeatedly applies a macro closure to ast's unevaluated
// tail while ast's head resolves to a macro.
func macroExpand(ast types.Value, environment types.Environment) (types.Value, error) {
	for {
		macro, ok := lookupMacro(ast, environment)
		if !ok {
			return ast, nil
		}
		expanded, err := Apply(macro, ast.Items[1:])
		if err != nil {
			return types.Nil, err
		}
		ast = expanded
	}
}

func lookupMacro(ast types.Value, environment types.Environment) (types.Value, bool) {
	if ast.Kind != types.KindList || len(ast.Items) == 0 {
		return types.Nil, false
	}
	head := ast.Items[0]
	if head.Kind != types.KindSymbol {
		return types.Nil, false
	}
	val, err := environment.Get(types.Symbol(head.Str))
	if err != nil || val.Kind != types.KindClosure || !val.Closure.IsMacro {
		return types.Nil, false
	}
	return val, true
}
