package builtins

import (
	"os"

	"github.com/pkg/errors"

	"github.com/aledsdavies/malcore/reader"
	"github.com/aledsdavies/malcore/types"
)

// registerIO wires read-string and slurp. slurp opens, fully reads,
// and releases its file handle within this single call — every file
// handle is scoped to a single operation, never held open across calls.
func registerIO(t Table) {
	t.add("read-string", func(args []types.Value) (types.Value, error) {
		if len(args) != 1 {
			return types.Nil, wrongArity("read-string", "1", len(args))
		}
		if args[0].Kind != types.KindString {
			return types.Nil, typeError("read-string", "string", args[0])
		}
		return reader.ReadStr(args[0].Str)
	})

	t.add("slurp", func(args []types.Value) (types.Value, error) {
		if len(args) != 1 {
			return types.Nil, wrongArity("slurp", "1", len(args))
		}
		if args[0].Kind != types.KindString {
			return types.Nil, typeError("slurp", "string", args[0])
		}
		content, err := os.ReadFile(args[0].Str)
		if err != nil {
			return types.Nil, errors.Wrapf(err, "slurp: %s", args[0].Str)
		}
		return types.NewString(string(content)), nil
	})
}
