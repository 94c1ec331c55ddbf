package builtins

import (
	"fmt"

	"github.com/aledsdavies/malcore/printer"
	"github.com/aledsdavies/malcore/types"
)

// registerPrinting wires pr-str/str/prn/println per the
// pure/impure split (see SPEC_FULL.md's Open Question decision):
// pr-str is a pure string constructor, prn is the side-effecting
// printer.
func registerPrinting(t Table) {
	t.add("pr-str", func(args []types.Value) (types.Value, error) {
		return types.NewString(printer.JoinPrStr(args)), nil
	})

	t.add("str", func(args []types.Value) (types.Value, error) {
		return types.NewString(printer.JoinStr(args)), nil
	})

	t.add("prn", func(args []types.Value) (types.Value, error) {
		fmt.Println(printer.JoinPrStr(args))
		return types.Nil, nil
	})

	t.add("println", func(args []types.Value) (types.Value, error) {
		fmt.Println(printer.JoinStr(args))
		return types.Nil, nil
	})
}
