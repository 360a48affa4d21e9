// Copyright (c) 2024 The Falcon Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package consteval implements the whole-AST constant-folding pass:
// it walks a function body in source order, evaluates every ConstDef
// initialiser to a 32-bit integer, and records it in the symbol table.
// VarDecl and Stmt nodes are left untouched; Var bindings are created by
// irgen, not here.
package consteval

import (
	"github.com/lidianzhong/sysy/internal/ast"
	"github.com/lidianzhong/sysy/internal/clog"
	"github.com/lidianzhong/sysy/internal/compileerr"
	"github.com/lidianzhong/sysy/internal/symtab"
)

// Run folds every ConstDecl in block, in source order, into table.
func Run(table *symtab.Table, block *ast.Block) error {
	for _, item := range block.Items {
		decl, ok := item.(*ast.ConstDecl)
		if !ok {
			continue
		}
		for _, def := range decl.Defs {
			value, isConst, err := Eval(table, def.Init)
			if err != nil {
				return err
			}
			if !isConst {
				return compileerr.Newf(compileerr.ErrNonConstantInitialiser, "const %s", def.Name)
			}
			if err := table.DefineConst(def.Name, value); err != nil {
				return err
			}
			clog.Stage("const-eval").Debugf("%s = %d", def.Name, value)
		}
	}
	return nil
}

// Eval evaluates expr to a 32-bit integer. isConst is false, with err
// nil, when expr is not a compile-time constant (e.g. it names a
// variable), and the caller decides whether that is fatal. err is non-nil
// only for ConstDivByZero, the one way evaluation of an otherwise-
// constant expression can fail outright.
func Eval(table *symtab.Table, expr ast.Expr) (value int32, isConst bool, err error) {
	switch e := expr.(type) {
	case *ast.NumberExpr:
		return e.Value, true, nil

	case *ast.LVal:
		if v, ok := table.LookupConst(e.Name); ok {
			return v, true, nil
		}
		return 0, false, nil

	case *ast.UnaryExpr:
		v, isConst, err := Eval(table, e.Sub)
		if err != nil || !isConst {
			return 0, isConst, err
		}
		switch e.Op {
		case "+":
			return v, true, nil
		case "-":
			return -v, true, nil
		case "!":
			return boolToInt(v == 0), true, nil
		}

	case *ast.BinaryExpr:
		l, lConst, err := Eval(table, e.LHS)
		if err != nil {
			return 0, false, err
		}
		r, rConst, err := Eval(table, e.RHS)
		if err != nil {
			return 0, false, err
		}
		if !lConst || !rConst {
			return 0, false, nil
		}
		return evalBinary(e.Op, l, r)
	}
	return 0, false, nil
}

func evalBinary(op string, l, r int32) (int32, bool, error) {
	switch op {
	case "+":
		return l + r, true, nil
	case "-":
		return l - r, true, nil
	case "*":
		return l * r, true, nil
	case "/":
		if r == 0 {
			return 0, false, compileerr.Newf(compileerr.ErrConstDivByZero, "%d / 0", l)
		}
		return l / r, true, nil
	case "%":
		if r == 0 {
			return 0, false, compileerr.Newf(compileerr.ErrConstDivByZero, "%d %% 0", l)
		}
		return l % r, true, nil
	case "<":
		return boolToInt(l < r), true, nil
	case ">":
		return boolToInt(l > r), true, nil
	case "<=":
		return boolToInt(l <= r), true, nil
	case ">=":
		return boolToInt(l >= r), true, nil
	case "==":
		return boolToInt(l == r), true, nil
	case "!=":
		return boolToInt(l != r), true, nil
	case "&&":
		return boolToInt(l != 0 && r != 0), true, nil
	case "||":
		return boolToInt(l != 0 || r != 0), true, nil
	}
	return 0, false, nil
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
