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

// Package symtab implements the single flat-scope name table shared by
// const-eval and IR-gen: every name is either a compile-time Const or an
// addressable Var, never both over its lifetime.
package symtab

import "github.com/lidianzhong/sysy/internal/compileerr"

// Kind tags a Symbol as a compile-time constant or addressable storage.
type Kind int

const (
	// KindConst marks a symbol holding a folded compile-time value.
	KindConst Kind = iota
	// KindVar marks a symbol holding an IR-builder-issued storage handle.
	KindVar
)

// Symbol is the tagged-union value stored per name: exactly one of
// IntValue (Kind == KindConst) or Handle (Kind == KindVar) is meaningful.
type Symbol struct {
	Kind     Kind
	IntValue int32
	Handle   string
}

// Table is the function's single flat scope.
type Table struct {
	symbols map[string]Symbol
}

// New returns an empty table.
func New() *Table {
	return &Table{symbols: make(map[string]Symbol)}
}

// DefineConst binds name to a constant value. Redefining any existing
// name, const or var, is a DuplicateDefinition error.
func (t *Table) DefineConst(name string, value int32) error {
	if _, exists := t.symbols[name]; exists {
		return compileerr.Newf(compileerr.ErrDuplicateDefinition, "const %s", name)
	}
	t.symbols[name] = Symbol{Kind: KindConst, IntValue: value}
	return nil
}

// DefineVar binds name to a storage handle (an IR-builder-issued name).
func (t *Table) DefineVar(name, handle string) error {
	if _, exists := t.symbols[name]; exists {
		return compileerr.Newf(compileerr.ErrDuplicateDefinition, "var %s", name)
	}
	t.symbols[name] = Symbol{Kind: KindVar, Handle: handle}
	return nil
}

// Contains reports whether name is bound, regardless of kind.
func (t *Table) Contains(name string) bool {
	_, ok := t.symbols[name]
	return ok
}

// IsConst reports whether name is bound as a constant.
func (t *Table) IsConst(name string) bool {
	sym, ok := t.symbols[name]
	return ok && sym.Kind == KindConst
}

// IsVar reports whether name is bound as a variable.
func (t *Table) IsVar(name string) bool {
	sym, ok := t.symbols[name]
	return ok && sym.Kind == KindVar
}

// LookupConst returns the constant value bound to name. ok is false if
// name is unbound or bound to a different kind.
func (t *Table) LookupConst(name string) (value int32, ok bool) {
	sym, exists := t.symbols[name]
	if !exists || sym.Kind != KindConst {
		return 0, false
	}
	return sym.IntValue, true
}

// LookupVar returns the storage handle bound to name. ok is false if name
// is unbound or bound to a different kind.
func (t *Table) LookupVar(name string) (handle string, ok bool) {
	sym, exists := t.symbols[name]
	if !exists || sym.Kind != KindVar {
		return "", false
	}
	return sym.Handle, true
}

// ConstValue is the strict form of LookupConst: a missing name reports
// ok=false with a nil error, while a name bound as a variable fails with
// SymbolKindMismatch.
func (t *Table) ConstValue(name string) (value int32, ok bool, err error) {
	sym, exists := t.symbols[name]
	if !exists {
		return 0, false, nil
	}
	if sym.Kind != KindConst {
		return 0, false, compileerr.Newf(compileerr.ErrSymbolKindMismatch, "%s is not a constant", name)
	}
	return sym.IntValue, true, nil
}

// VarHandle is the strict form of LookupVar: a missing name reports
// ok=false with a nil error, while a name bound as a constant fails with
// SymbolKindMismatch.
func (t *Table) VarHandle(name string) (handle string, ok bool, err error) {
	sym, exists := t.symbols[name]
	if !exists {
		return "", false, nil
	}
	if sym.Kind != KindVar {
		return "", false, compileerr.Newf(compileerr.ErrSymbolKindMismatch, "%s is not a variable", name)
	}
	return sym.Handle, true, nil
}

// KindOf returns the kind name is bound to, and whether it is bound at all.
func (t *Table) KindOf(name string) (Kind, bool) {
	sym, ok := t.symbols[name]
	return sym.Kind, ok
}
