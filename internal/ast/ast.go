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

// Package ast defines the tagged-tree node set for the SysY subset: one
// function, local int consts/vars, assignment, return, and expressions
// over unary/binary operators.
package ast

import "fmt"

// Node is the root marker every AST node satisfies.
type Node interface {
	String() string
}

// BlockItem is either a ConstDecl, a VarDecl, or a Stmt.
type BlockItem interface {
	Node
	blockItem()
}

// Stmt is Assign or Return.
type Stmt interface {
	Node
	BlockItem
	stmtNode()
}

// Expr is Number, LVal, Unary, or Binary.
type Expr interface {
	Node
	exprNode()
}

// -----------------------------------------------------------------------
// Top level

// CompUnit is the whole translation unit: exactly one function.
type CompUnit struct {
	Func *FuncDef
}

func (c *CompUnit) String() string { return fmt.Sprintf("CompUnit{%s}", c.Func) }

// FuncDef is the single entry-point function. RetType is "int" or "void";
// the parser accepts either keyword and any identifier as Name.
type FuncDef struct {
	RetType string
	Name    string
	Body    *Block
}

func (f *FuncDef) String() string { return fmt.Sprintf("FuncDef{%s %s}", f.RetType, f.Name) }

// Block is a sequence of BlockItems sharing the function's single flat scope.
type Block struct {
	Items []BlockItem
}

func (b *Block) String() string { return fmt.Sprintf("Block{%d items}", len(b.Items)) }

// -----------------------------------------------------------------------
// Declarations

// ConstDecl declares one or more named compile-time constants.
type ConstDecl struct {
	BaseType string
	Defs     []*ConstDef
}

func (d *ConstDecl) String() string { return fmt.Sprintf("ConstDecl{%d defs}", len(d.Defs)) }
func (d *ConstDecl) blockItem()     {}

// ConstDef binds Name to the compile-time-constant value of Init.
type ConstDef struct {
	Name string
	Init Expr
}

func (d *ConstDef) String() string { return fmt.Sprintf("ConstDef{%s}", d.Name) }

// VarDecl declares one or more local variables.
type VarDecl struct {
	BaseType string
	Defs     []*VarDef
}

func (d *VarDecl) String() string { return fmt.Sprintf("VarDecl{%d defs}", len(d.Defs)) }
func (d *VarDecl) blockItem()     {}

// VarDef binds Name to a storage slot; Init is nil when the variable is
// declared without an initialiser (implicit zero).
type VarDef struct {
	Name string
	Init Expr
}

func (d *VarDef) String() string { return fmt.Sprintf("VarDef{%s}", d.Name) }

// -----------------------------------------------------------------------
// Statements

// AssignStmt stores Value into the variable Target resolves to.
type AssignStmt struct {
	Target *LVal
	Value  Expr
}

func (s *AssignStmt) String() string { return fmt.Sprintf("AssignStmt{%s}", s.Target.Name) }
func (s *AssignStmt) blockItem()     {}
func (s *AssignStmt) stmtNode()      {}

// ReturnStmt returns Value, or nothing when Value is nil (void return).
type ReturnStmt struct {
	Value Expr
}

func (s *ReturnStmt) String() string { return "ReturnStmt" }
func (s *ReturnStmt) blockItem()     {}
func (s *ReturnStmt) stmtNode()      {}

// -----------------------------------------------------------------------
// Expressions

// NumberExpr is an integer literal.
type NumberExpr struct {
	Value int32
}

func (e *NumberExpr) String() string { return fmt.Sprintf("Number{%d}", e.Value) }
func (e *NumberExpr) exprNode()      {}

// LVal references a named const or variable.
type LVal struct {
	Name string
}

func (e *LVal) String() string { return fmt.Sprintf("LVal{%s}", e.Name) }
func (e *LVal) exprNode()      {}

// UnaryExpr is one of "+", "-", "!" applied to Sub.
type UnaryExpr struct {
	Op  string
	Sub Expr
}

func (e *UnaryExpr) String() string { return fmt.Sprintf("Unary{%s}", e.Op) }
func (e *UnaryExpr) exprNode()      {}

// BinaryExpr applies one of the supported binary operators to LHS, RHS.
type BinaryExpr struct {
	Op  string
	LHS Expr
	RHS Expr
}

func (e *BinaryExpr) String() string { return fmt.Sprintf("Binary{%s}", e.Op) }
func (e *BinaryExpr) exprNode()      {}
