package main

// This package provides a custom check for "go vet". The check verifies that
// every switch statement over a SerialKind value either covers all the
// declared kinds or carries a default case, so that adding a kind breaks the
// build of every consumer that forgot to handle it.
// It can be used like the following:
// `go build && go vet -vettool=./kindcheck ./...`

import (
	"go/ast"
	"go/types"
	"sort"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/unitchecker"
)

// kindTypeName is the name of the checked enumeration type.
const kindTypeName = "SerialKind"

var kindAnalyzer = &analysis.Analyzer{
	Name: "kindcheck",
	Doc:  "checks that switches over SerialKind are exhaustive",
	Run:  run,
}

func main() {
	unitchecker.Main(
		kindAnalyzer,
	)
}

// run inspects all the switch statements of the package.
func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			sw, ok := n.(*ast.SwitchStmt)
			if !ok || sw.Tag == nil {
				return true
			}

			named := kindType(pass, sw.Tag)
			if named == nil {
				return true
			}

			seen, hasDefault := coveredKinds(pass, sw)
			if hasDefault {
				return true
			}

			for _, name := range kindConsts(named) {
				if !seen[name] {
					pass.Reportf(sw.Pos(), "switch is missing the %s kind", name)
				}
			}

			return true
		})
	}

	return nil, nil
}

// kindType returns the named type of the switch tag when it is a SerialKind
// enumeration.
func kindType(pass *analysis.Pass, tag ast.Expr) *types.Named {
	tv, ok := pass.TypesInfo.Types[tag]
	if !ok || tv.Type == nil {
		return nil
	}

	named, ok := tv.Type.(*types.Named)
	if !ok || named.Obj().Name() != kindTypeName {
		return nil
	}

	return named
}

// coveredKinds collects the constant names listed by the case clauses.
func coveredKinds(pass *analysis.Pass, sw *ast.SwitchStmt) (map[string]bool, bool) {
	seen := map[string]bool{}
	hasDefault := false

	for _, stmt := range sw.Body.List {
		cc, ok := stmt.(*ast.CaseClause)
		if !ok {
			continue
		}

		if cc.List == nil {
			hasDefault = true
			continue
		}

		for _, expr := range cc.List {
			var ident *ast.Ident

			switch e := expr.(type) {
			case *ast.Ident:
				ident = e
			case *ast.SelectorExpr:
				ident = e.Sel
			default:
				continue
			}

			obj := pass.TypesInfo.ObjectOf(ident)
			if _, ok := obj.(*types.Const); ok {
				seen[obj.Name()] = true
			}
		}
	}

	return seen, hasDefault
}

// kindConsts returns the names of the constants declared with the given
// type, in a stable order.
func kindConsts(named *types.Named) []string {
	pkg := named.Obj().Pkg()
	if pkg == nil {
		return nil
	}

	names := []string{}

	scope := pkg.Scope()
	for _, name := range scope.Names() {
		obj, ok := scope.Lookup(name).(*types.Const)
		if ok && types.Identical(obj.Type(), named) {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}
