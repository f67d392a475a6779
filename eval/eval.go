// Package eval runs expression queries against decoded documents.
//
// Expressions are compiled and evaluated with expr-lang/expr over the
// native-value view of the document, which is bound to the variable
// "doc". The result is converted back to an IR node.
package eval

import (
	"github.com/expr-lang/expr"

	"github.com/sibircevs/mpack/debug"
	"github.com/sibircevs/mpack/ir"
)

// Eval compiles and runs src against doc.
func Eval(doc *ir.Node, src string) (*ir.Node, error) {
	env := map[string]any{
		"doc": ir.ToAny(doc),
	}
	if debug.Eval() {
		debug.Logf("eval %q\n", src)
	}
	prg, err := expr.Compile(src, expr.Env(env))
	if err != nil {
		return nil, err
	}
	res, err := expr.Run(prg, env)
	if err != nil {
		return nil, err
	}
	if debug.Eval() {
		debug.LogAny(res)
	}
	return ir.FromAny(normalize(res))
}

// normalize widens the container types expr returns into the
// vocabulary ir.FromAny accepts.
func normalize(v any) any {
	switch x := v.(type) {
	case []any:
		for i := range x {
			x[i] = normalize(x[i])
		}
		return x
	case map[string]any:
		for k := range x {
			x[k] = normalize(x[k])
		}
		return x
	case []string:
		res := make([]any, len(x))
		for i := range x {
			res[i] = x[i]
		}
		return res
	case []int:
		res := make([]any, len(x))
		for i := range x {
			res[i] = int64(x[i])
		}
		return res
	case []int64:
		res := make([]any, len(x))
		for i := range x {
			res[i] = x[i]
		}
		return res
	case []float64:
		res := make([]any, len(x))
		for i := range x {
			res[i] = x[i]
		}
		return res
	default:
		return v
	}
}
