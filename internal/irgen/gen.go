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

package irgen

import (
	"github.com/lidianzhong/sysy/internal/ast"
	"github.com/lidianzhong/sysy/internal/clog"
	"github.com/lidianzhong/sysy/internal/compileerr"
	"github.com/lidianzhong/sysy/internal/symtab"
)

// Generate lowers fn to Koopa IR text, reading const values from table
// (already populated by consteval.Run) and creating Var bindings in table
// as it allocates storage for local variables.
func Generate(fn *ast.FuncDef, table *symtab.Table) (string, error) {
	b := NewBuilder()
	retType := "i32"
	if fn.RetType == "void" {
		retType = "void"
	}
	b.StartFunc(fn.Name, retType)
	b.BasicBlock("entry")
	if err := genBlock(b, table, fn.Body); err != nil {
		return "", err
	}
	b.EndFunc()
	clog.Stage("irgen").Debugf("generated %d bytes of IR for @%s", len(b.String()), fn.Name)
	return b.String(), nil
}

func genBlock(b *Builder, table *symtab.Table, block *ast.Block) error {
	for _, item := range block.Items {
		if err := genBlockItem(b, table, item); err != nil {
			return err
		}
	}
	return nil
}

func genBlockItem(b *Builder, table *symtab.Table, item ast.BlockItem) error {
	switch it := item.(type) {
	case *ast.ConstDecl:
		return nil // folded by consteval; nothing to emit
	case *ast.VarDecl:
		return genVarDecl(b, table, it)
	case *ast.AssignStmt:
		return genAssign(b, table, it)
	case *ast.ReturnStmt:
		return genReturn(b, table, it)
	}
	return nil
}

func genVarDecl(b *Builder, table *symtab.Table, decl *ast.VarDecl) error {
	for _, def := range decl.Defs {
		handle := b.Alloc("i32")
		if err := table.DefineVar(def.Name, handle); err != nil {
			return err
		}
		if def.Init != nil {
			value, err := genExpr(b, table, def.Init)
			if err != nil {
				return err
			}
			b.Store(value, handle)
		} else {
			b.Store("0", handle)
		}
	}
	return nil
}

func genAssign(b *Builder, table *symtab.Table, stmt *ast.AssignStmt) error {
	name := stmt.Target.Name
	if table.IsConst(name) {
		return compileerr.Newf(compileerr.ErrAssignToConst, "%s", name)
	}
	handle, ok, err := table.VarHandle(name)
	if err != nil {
		return err
	}
	if !ok {
		return compileerr.Newf(compileerr.ErrUnresolvedName, "%s", name)
	}
	value, err := genExpr(b, table, stmt.Value)
	if err != nil {
		return err
	}
	b.Store(value, handle)
	return nil
}

func genReturn(b *Builder, table *symtab.Table, stmt *ast.ReturnStmt) error {
	if stmt.Value == nil {
		b.Ret("", false)
		return nil
	}
	value, err := genExpr(b, table, stmt.Value)
	if err != nil {
		return err
	}
	b.Ret(value, true)
	return nil
}

func genExpr(b *Builder, table *symtab.Table, expr ast.Expr) (string, error) {
	switch e := expr.(type) {
	case *ast.NumberExpr:
		return b.Number(e.Value), nil

	case *ast.LVal:
		if v, ok := table.LookupConst(e.Name); ok {
			return b.Number(v), nil
		}
		handle, ok, err := table.VarHandle(e.Name)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", compileerr.Newf(compileerr.ErrUnresolvedName, "%s", e.Name)
		}
		return b.Load(handle), nil

	case *ast.UnaryExpr:
		sub, err := genExpr(b, table, e.Sub)
		if err != nil {
			return "", err
		}
		return b.Unary(e.Op, sub), nil

	case *ast.BinaryExpr:
		lhs, err := genExpr(b, table, e.LHS)
		if err != nil {
			return "", err
		}
		rhs, err := genExpr(b, table, e.RHS)
		if err != nil {
			return "", err
		}
		return b.Binary(e.Op, lhs, rhs), nil
	}
	return "", compileerr.Newf(compileerr.ErrUnresolvedName, "unsupported expression %v", expr)
}
