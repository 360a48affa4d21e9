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

// Package koopa is a standalone IR loader: it reparses the Koopa text
// irgen produced into a navigable in-memory graph of Program, Function,
// BasicBlock and Value, each Value carrying a Kind and Type discriminant.
// Operand references are resolved to value pointers during the load, so
// the backend never touches instruction text again.
package koopa

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lidianzhong/sysy/internal/compileerr"
)

// Type is the Unit/non-Unit discriminant: Unit marks side-effect-only
// instructions (Store, Return); every other kind produces a value and is
// typed Int32.
type Type int

const (
	TypeUnit Type = iota
	TypeInt32
)

// ValueKind discriminates the six instruction/operand shapes this loader
// recognises.
type ValueKind int

const (
	KindInteger ValueKind = iota
	KindBinary
	KindAlloc
	KindLoad
	KindStore
	KindReturn
)

// Value is one loaded instruction or literal operand. Only the fields
// relevant to Kind are meaningful; see the per-kind comments below.
type Value struct {
	Name string // "%k", or "" for an unnamed literal/side-effect instruction
	Kind ValueKind
	Type Type

	IntVal int32 // KindInteger: the literal's value

	BinOp string // KindBinary: the mnemonic (add, sub, lt, eq, and, ...)
	LHS   *Value // KindBinary: left operand
	RHS   *Value // KindBinary: right operand

	AllocType string // KindAlloc: the allocated type's name ("i32")

	Src *Value // KindLoad: the address loaded from

	Stored *Value // KindStore: the value being stored
	Dest   *Value // KindStore: the address stored to

	RetVal *Value // KindReturn: the returned value, or nil for bare "ret"
}

// BasicBlock is a labelled, terminator-ending instruction sequence.
type BasicBlock struct {
	Label string
	Insts []*Value
}

// Function is one loaded "fun @name(): type { ... }".
type Function struct {
	Name    string
	RetType Type
	Blocks  []*BasicBlock
}

// Program is the top-level loaded graph: every function in the source.
type Program struct {
	Funcs []*Function
}

var funcHeaderRE = regexp.MustCompile(`^fun @([A-Za-z_][A-Za-z0-9_]*)\(\):\s*(\S+)\s*\{$`)

var binOps = map[string]bool{
	"add": true, "sub": true, "mul": true, "div": true, "mod": true,
	"lt": true, "gt": true, "le": true, "ge": true, "eq": true, "ne": true,
	"and": true, "or": true,
}

func malformed(format string, args ...interface{}) error {
	return compileerr.Newf(compileerr.ErrMalformedIR, format, args...)
}

// Load reparses text into a Program. The loader owns the returned graph
// but not the text it was built from; Values hold no reference back to
// the source string once parsing completes.
func Load(text string) (*Program, error) {
	prog := &Program{}
	var fn *Function
	var block *BasicBlock
	env := map[string]*Value{}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "fun @"):
			m := funcHeaderRE.FindStringSubmatch(line)
			if m == nil {
				return nil, malformed("malformed function header %q", line)
			}
			fn = &Function{Name: m[1], RetType: parseType(m[2])}
			prog.Funcs = append(prog.Funcs, fn)
			block = nil
			env = map[string]*Value{}

		case line == "}":
			fn = nil
			block = nil

		case strings.HasPrefix(line, "%") && strings.HasSuffix(line, ":") && !strings.Contains(line, "="):
			if fn == nil {
				return nil, malformed("basic block label outside any function: %q", line)
			}
			block = &BasicBlock{Label: strings.TrimSuffix(strings.TrimPrefix(line, "%"), ":")}
			fn.Blocks = append(fn.Blocks, block)

		default:
			if block == nil {
				return nil, malformed("instruction outside any basic block: %q", line)
			}
			v, err := parseInst(line, env)
			if err != nil {
				return nil, err
			}
			block.Insts = append(block.Insts, v)
		}
	}
	if fn != nil {
		return nil, malformed("unterminated function %q", fn.Name)
	}
	return prog, nil
}

func parseType(s string) Type {
	if s == "i32" {
		return TypeInt32
	}
	return TypeUnit
}

func parseInst(line string, env map[string]*Value) (*Value, error) {
	if name, rhs, ok := strings.Cut(line, " = "); ok {
		return parseAssigningInst(name, rhs, env)
	}
	if line == "ret" {
		return &Value{Kind: KindReturn, Type: TypeUnit}, nil
	}
	if rest, ok := strings.CutPrefix(line, "ret "); ok {
		v, err := resolveOperand(strings.TrimSpace(rest), env)
		if err != nil {
			return nil, err
		}
		return &Value{Kind: KindReturn, Type: TypeUnit, RetVal: v}, nil
	}
	if rest, ok := strings.CutPrefix(line, "store "); ok {
		valTok, destTok, ok := strings.Cut(rest, ", ")
		if !ok {
			return nil, malformed("malformed store: %q", line)
		}
		val, err := resolveOperand(strings.TrimSpace(valTok), env)
		if err != nil {
			return nil, err
		}
		dest, err := resolveOperand(strings.TrimSpace(destTok), env)
		if err != nil {
			return nil, err
		}
		return &Value{Kind: KindStore, Type: TypeUnit, Stored: val, Dest: dest}, nil
	}
	return nil, malformed("unrecognised instruction: %q", line)
}

func parseAssigningInst(name, rhs string, env map[string]*Value) (*Value, error) {
	if typ, ok := strings.CutPrefix(rhs, "alloc "); ok {
		v := &Value{Name: name, Kind: KindAlloc, Type: TypeInt32, AllocType: strings.TrimSpace(typ)}
		env[name] = v
		return v, nil
	}
	if addrTok, ok := strings.CutPrefix(rhs, "load "); ok {
		addr, err := resolveOperand(strings.TrimSpace(addrTok), env)
		if err != nil {
			return nil, err
		}
		v := &Value{Name: name, Kind: KindLoad, Type: TypeInt32, Src: addr}
		env[name] = v
		return v, nil
	}
	op, operandsTok, ok := strings.Cut(rhs, " ")
	if !ok || !binOps[op] {
		return nil, malformed("unrecognised instruction rhs: %q", rhs)
	}
	lhsTok, rhsTok, ok := strings.Cut(operandsTok, ", ")
	if !ok {
		return nil, malformed("malformed binary operands: %q", operandsTok)
	}
	lhs, err := resolveOperand(strings.TrimSpace(lhsTok), env)
	if err != nil {
		return nil, err
	}
	rhsVal, err := resolveOperand(strings.TrimSpace(rhsTok), env)
	if err != nil {
		return nil, err
	}
	v := &Value{Name: name, Kind: KindBinary, Type: TypeInt32, BinOp: op, LHS: lhs, RHS: rhsVal}
	env[name] = v
	return v, nil
}

func resolveOperand(tok string, env map[string]*Value) (*Value, error) {
	if strings.HasPrefix(tok, "%") {
		v, ok := env[tok]
		if !ok {
			return nil, malformed("reference to undefined value %q", tok)
		}
		return v, nil
	}
	n, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		return nil, malformed("malformed operand %q", tok)
	}
	return &Value{Kind: KindInteger, Type: TypeInt32, IntVal: int32(n)}, nil
}
