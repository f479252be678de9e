package internalcheck

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// branchFreeFuncs lists the functions that handle secret limbs and must not
// contain conditional statements. Loops with fixed bounds are allowed.
var branchFreeFuncs = map[string]bool{
	"mulAdd":             true,
	"mulWide56":          true,
	"mulLow56":           true,
	"barrettReduce":      true,
	"condSubL":           true,
	"mulInternal29":      true,
	"montgomeryReduce29": true,
	"subL":               true,
	"IsCanonical":        true,
	"addMulU128":         true,
	"addU128":            true,
}

func loadScalarPackage(t *testing.T) *packages.Package {
	t.Helper()
	cfg := &packages.Config{
		Mode: packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedFiles | packages.NeedName,
	}

	pkgs, err := packages.Load(cfg, "c25519.mleku.dev")
	if err != nil {
		t.Fatalf("load package: %v", err)
	}
	if len(pkgs) != 1 {
		t.Fatalf("expected one package, got %d", len(pkgs))
	}
	if len(pkgs[0].Errors) > 0 {
		t.Fatalf("package errors: %v", pkgs[0].Errors)
	}
	return pkgs[0]
}

func TestNoBranchesInLimbArithmetic(t *testing.T) {
	pkg := loadScalarPackage(t)

	var findings []string
	seen := make(map[string]bool)

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Body == nil || !branchFreeFuncs[fn.Name.Name] {
				continue
			}
			seen[fn.Name.Name] = true

			ast.Inspect(fn.Body, func(n ast.Node) bool {
				switch n.(type) {
				case *ast.IfStmt, *ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt:
					pos := pkg.Fset.Position(n.Pos())
					findings = append(findings, fmt.Sprintf("%s:%d: conditional in %s",
						filepath.Base(pos.Filename), pos.Line, fn.Name.Name))
				}
				return true
			})
		}
	}

	for name := range branchFreeFuncs {
		if !seen[name] {
			t.Errorf("function %s not found; update branchFreeFuncs", name)
		}
	}

	if len(findings) > 0 {
		t.Fatalf("constant-time policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

func TestNoDirectByteComparison(t *testing.T) {
	pkg := loadScalarPackage(t)

	var findings []string
	for _, file := range pkg.Syntax {
		ast.Inspect(file, func(n ast.Node) bool {
			be, ok := n.(*ast.BinaryExpr)
			if !ok || (be.Op != token.EQL && be.Op != token.NEQ) {
				return true
			}

			left := pkg.TypesInfo.TypeOf(be.X)
			right := pkg.TypesInfo.TypeOf(be.Y)
			if isByteSequence(left) && isByteSequence(right) {
				pos := pkg.Fset.Position(be.Pos())
				findings = append(findings, fmt.Sprintf("%s:%d: avoid == on encodings; use crypto/subtle",
					filepath.Base(pos.Filename), pos.Line))
			}
			return true
		})
	}

	if len(findings) > 0 {
		t.Fatalf("constant-time policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

func isByteSequence(typ types.Type) bool {
	if typ == nil {
		return false
	}

	switch tt := typ.(type) {
	case *types.Slice:
		return isByte(tt.Elem())
	case *types.Array:
		return isByte(tt.Elem())
	case *types.Pointer:
		return isByteSequence(tt.Elem())
	case *types.Named:
		return isByteSequence(tt.Underlying())
	default:
		return false
	}
}

func isByte(t types.Type) bool {
	basic, ok := t.(*types.Basic)
	return ok && basic.Kind() == types.Byte
}
