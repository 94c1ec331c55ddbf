package eval

import "github.com/aledsdavies/malcore/types"

// Quasiquote expands x into code that reconstructs it with unquoted
// pieces spliced in. The result is data — a List built
// from quote/cons/concat/vec calls — that the caller re-enters the
// evaluator on, rather than interpreting quasiquote directly; this
// keeps splice-unquote consistent with concat/cons (see
// and DESIGN.md's grounding on the sxpf quasiquote reference).
func Quasiquote(x types.Value) types.Value {
	switch x.Kind {
	case types.KindSymbol, types.KindHashMap:
		return types.NewList(types.NewSymbol(string(symQuote)), x)
	case types.KindVector:
		return types.NewList(types.NewSymbol("vec"), qqList(x.Items))
	case types.KindList:
		if isUnwrap(x, symUnquote) {
			return x.Items[1]
		}
		return qqList(x.Items)
	default:
		return x
	}
}

// isUnwrap reports whether x is a two-element list headed by sym,
// e.g. (unquote y) or (splice-unquote y).
func isUnwrap(x types.Value, sym types.Symbol) bool {
	return x.Kind == types.KindList && len(x.Items) == 2 &&
		x.Items[0].Kind == types.KindSymbol && types.Symbol(x.Items[0].Str) == sym
}

// qqList folds right-to-left over items, building nested cons/concat calls.
func qqList(items []types.Value) types.Value {
	acc := types.NewList()
	for i := len(items) - 1; i >= 0; i-- {
		elt := items[i]
		if isUnwrap(elt, symSpliceUnquote) {
			acc = types.NewList(types.NewSymbol("concat"), elt.Items[1], acc)
			continue
		}
		acc = types.NewList(types.NewSymbol("cons"), Quasiquote(elt), acc)
	}
	return acc
}
