// Package env implements the lexically scoped environment chain: a
// frame mapping symbols to values, with an optional parent frame that
// Find/Get walk when a symbol is absent locally.
package env

import (
	"github.com/pkg/errors"

	"github.com/aledsdavies/malcore/types"
)

// Env is one frame in the scope chain. Child frames are born at
// let*/fn* invocation and hold a reference to their parent (never a
// copy), so a Closure's captured frame stays live for as long as the
// Closure is reachable.
type Env struct {
	vars  map[types.Symbol]types.Value
	outer *Env
}

// New creates a root or child frame with no outer, or the given outer.
func New(outer *Env) *Env {
	return &Env{
		vars:  make(map[types.Symbol]types.Value),
		outer: outer,
	}
}

// Set stores val under sym in this frame only, shadowing any binding
// of the same name in an outer frame.
func (e *Env) Set(sym types.Symbol, val types.Value) {
	e.vars[sym] = val
}

// Find returns the nearest frame (this one or an ancestor) that binds
// sym directly, or nil if none does.
func (e *Env) Find(sym types.Symbol) *Env {
	for frame := e; frame != nil; frame = frame.outer {
		if _, ok := frame.vars[sym]; ok {
			return frame
		}
	}
	return nil
}

// Get resolves sym via Find and reads its value, or fails with the
// spec's lookup-error message.
func (e *Env) Get(sym types.Symbol) (types.Value, error) {
	frame := e.Find(sym)
	if frame == nil {
		return types.Nil, errors.Errorf("'%s' not found", string(sym))
	}
	return frame.vars[sym], nil
}

// NewChild builds a fresh frame whose outer is e, binding params to
// exprs positionally. A "&" rest symbol (passed separately as rest,
// since the reader/evaluator strips it out of params before calling)
// receives a List of every exprs element from its position onward.
// Too few exprs before rest is reached is an arity error.
func (e *Env) NewChild(params []types.Symbol, rest *types.Symbol, exprs []types.Value) (types.Environment, error) {
	child := New(e)
	if rest == nil {
		if len(exprs) != len(params) {
			return nil, errors.Errorf("wrong number of args: expected %d, got %d", len(params), len(exprs))
		}
		for i, p := range params {
			child.Set(p, exprs[i])
		}
		return child, nil
	}

	if len(exprs) < len(params) {
		return nil, errors.Errorf("wrong number of args: expected at least %d, got %d", len(params), len(exprs))
	}
	for i, p := range params {
		child.Set(p, exprs[i])
	}
	child.Set(*rest, types.NewList(exprs[len(params):]...))
	return child, nil
}

// SplitParams separates a raw fn*/defmacro! parameter list into the
// positional parameters and an optional "&" rest symbol, validating
// that at most one "&" appears and that exactly one symbol follows it,
// ("Variadic binding").
func SplitParams(raw []types.Symbol) (params []types.Symbol, rest *types.Symbol, err error) {
	for i, sym := range raw {
		if sym != "&" {
			continue
		}
		if i != len(raw)-2 || raw[i+1] == "&" {
			return nil, nil, errors.New("'&' must be followed by exactly one parameter name")
		}
		restName := raw[i+1]
		return raw[:i], &restName, nil
	}
	return raw, nil, nil
}
