// Package timeutc reports wall-clock times that are created without being
// converted to UTC. Todo timestamps are stored and served in UTC, so a
// local-zone time.Time leaking into a record changes its wire form.
package timeutc

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"
)

const analyzerName = "timeutc"

// Analyzer flags time.Now and time.Unix* calls not directly followed by .UTC().
var Analyzer = &analysis.Analyzer{
	Name:     analyzerName,
	Doc:      "checks that time.Now and time.Unix* results are converted with .UTC()",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// constructors return a time.Time in the local zone.
var constructors = map[string]bool{
	"Now":       true,
	"Unix":      true,
	"UnixMilli": true,
	"UnixMicro": true,
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.WithStack([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}
		call := n.(*ast.CallExpr)

		name, ok := localTimeConstructor(pass.TypesInfo, call)
		if !ok || convertedToUTC(call, stack) || suppressed(pass, call) {
			return true
		}

		pass.Reportf(call.Pos(), "time.%s() should be followed by .UTC() for timezone consistency", name)
		return true
	})

	return nil, nil
}

func localTimeConstructor(info *types.Info, call *ast.CallExpr) (string, bool) {
	fn, ok := typeutil.Callee(info, call).(*types.Func)
	if !ok || fn.Pkg() == nil || fn.Pkg().Path() != "time" {
		return "", false
	}
	if sig, ok := fn.Type().(*types.Signature); !ok || sig.Recv() != nil {
		return "", false
	}
	return fn.Name(), constructors[fn.Name()]
}

// convertedToUTC reports whether the call is the receiver of a .UTC() call.
func convertedToUTC(call *ast.CallExpr, stack []ast.Node) bool {
	if len(stack) < 2 {
		return false
	}
	sel, ok := stack[len(stack)-2].(*ast.SelectorExpr)
	return ok && sel.X == call && sel.Sel.Name == "UTC"
}

// suppressed reports a //nolint or //nolint:timeutc comment on the call's
// line or the line above.
func suppressed(pass *analysis.Pass, call *ast.CallExpr) bool {
	pos := pass.Fset.Position(call.Pos())

	for _, f := range pass.Files {
		if pass.Fset.Position(f.Pos()).Filename != pos.Filename {
			continue
		}
		for _, cg := range f.Comments {
			for _, c := range cg.List {
				line := pass.Fset.Position(c.Pos()).Line
				if line != pos.Line && line != pos.Line-1 {
					continue
				}
				if directiveMatches(c.Text) {
					return true
				}
			}
		}
	}
	return false
}

func directiveMatches(comment string) bool {
	text := strings.TrimSpace(strings.TrimPrefix(comment, "//"))
	rest, ok := strings.CutPrefix(text, "nolint")
	if !ok {
		return false
	}
	linters, scoped := strings.CutPrefix(rest, ":")
	if !scoped {
		return true
	}
	linters, _, _ = strings.Cut(linters, " ")
	for _, name := range strings.Split(linters, ",") {
		if name == analyzerName {
			return true
		}
	}
	return false
}
