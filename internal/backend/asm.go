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

package backend

import (
	"fmt"
	"strings"

	"github.com/lidianzhong/sysy/internal/clog"
	"github.com/lidianzhong/sysy/internal/compileerr"
	"github.com/lidianzhong/sysy/internal/koopa"
)

// Assembler accumulates RISC-V assembly text. No register allocation is
// performed: every value lives on the stack and instructions move
// operands through t0/t1 around each operation.
type Assembler struct {
	buf strings.Builder
}

func (a *Assembler) emit(format string, args ...interface{}) {
	a.buf.WriteString("  ")
	a.buf.WriteString(fmt.Sprintf(format, args...))
	a.buf.WriteByte('\n')
}

func (a *Assembler) label(format string, args ...interface{}) {
	a.buf.WriteString(fmt.Sprintf(format, args...))
	a.buf.WriteByte('\n')
}

// Emit lowers every function in prog to RISC-V assembly text.
func Emit(prog *koopa.Program) (string, error) {
	a := &Assembler{}
	a.label(".text")
	for _, fn := range prog.Funcs {
		if err := a.emitFunc(fn); err != nil {
			return "", err
		}
	}
	return a.buf.String(), nil
}

func (a *Assembler) emitFunc(fn *koopa.Function) error {
	frame := PlanFrame(fn)
	clog.Stage("codegen").Debugf("@%s frame size=%d slots=%d", fn.Name, frame.Size, len(frame.Offsets))

	a.label(".globl %s", fn.Name)
	a.label("%s:", fn.Name)
	if frame.Size > 0 {
		a.emit("addi %s, %s, -%d", RegSP, RegSP, frame.Size)
	}

	for _, block := range fn.Blocks {
		for _, inst := range block.Insts {
			if err := a.emitInst(inst, frame); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *Assembler) emitInst(inst *koopa.Value, frame *Frame) error {
	switch inst.Kind {
	case koopa.KindAlloc:
		// no code: the slot planned for inst *is* the allocation.
		return nil

	case koopa.KindLoad:
		if err := a.loadOperand(inst.Src, frame, RegT0); err != nil {
			return err
		}
		return a.storeResult(inst, frame, RegT0)

	case koopa.KindStore:
		if err := a.loadOperand(inst.Stored, frame, RegT0); err != nil {
			return err
		}
		off, ok := frame.Offsets[inst.Dest]
		if !ok {
			return compileerr.Newf(compileerr.ErrMalformedIR, "store destination has no stack slot")
		}
		a.emit("sw %s, %d(%s)", RegT0, off, RegSP)
		return nil

	case koopa.KindBinary:
		if err := a.loadOperand(inst.LHS, frame, RegT0); err != nil {
			return err
		}
		if err := a.loadOperand(inst.RHS, frame, RegT1); err != nil {
			return err
		}
		if err := a.emitBinaryOp(inst.BinOp); err != nil {
			return err
		}
		return a.storeResult(inst, frame, RegT0)

	case koopa.KindReturn:
		if inst.RetVal != nil {
			if err := a.loadOperand(inst.RetVal, frame, RegA0); err != nil {
				return err
			}
		}
		if frame.Size > 0 {
			a.emit("addi %s, %s, %d", RegSP, RegSP, frame.Size)
		}
		a.emit("ret")
		return nil
	}
	return compileerr.Newf(compileerr.ErrMalformedIR, "unsupported instruction kind %v", inst.Kind)
}

// loadOperand materialises op's value into reg: an immediate via li, a
// previously computed value via lw from its planned stack slot.
func (a *Assembler) loadOperand(op *koopa.Value, frame *Frame, reg string) error {
	if op.Kind == koopa.KindInteger {
		a.emit("li %s, %d", reg, op.IntVal)
		return nil
	}
	off, ok := frame.Offsets[op]
	if !ok {
		return compileerr.Newf(compileerr.ErrMalformedIR, "operand has no stack slot")
	}
	a.emit("lw %s, %d(%s)", reg, off, RegSP)
	return nil
}

func (a *Assembler) storeResult(inst *koopa.Value, frame *Frame, reg string) error {
	off, ok := frame.Offsets[inst]
	if !ok {
		return compileerr.Newf(compileerr.ErrMalformedIR, "value has no stack slot")
	}
	a.emit("sw %s, %d(%s)", reg, off, RegSP)
	return nil
}

// emitBinaryOp lowers a Koopa binary mnemonic into one or two RISC-V
// instructions operating on t0/t1, leaving the result in t0.
func (a *Assembler) emitBinaryOp(op string) error {
	switch op {
	case "add", "sub", "mul":
		a.emit("%s %s, %s, %s", op, RegT0, RegT0, RegT1)
	case "div":
		a.emit("div %s, %s, %s", RegT0, RegT0, RegT1)
	case "mod":
		a.emit("rem %s, %s, %s", RegT0, RegT0, RegT1)
	case "lt":
		a.emit("slt %s, %s, %s", RegT0, RegT0, RegT1)
	case "gt":
		a.emit("slt %s, %s, %s", RegT0, RegT1, RegT0)
	case "le":
		a.emit("slt %s, %s, %s", RegT0, RegT1, RegT0)
		a.emit("xori %s, %s, 1", RegT0, RegT0)
	case "ge":
		a.emit("slt %s, %s, %s", RegT0, RegT0, RegT1)
		a.emit("xori %s, %s, 1", RegT0, RegT0)
	case "eq":
		a.emit("xor %s, %s, %s", RegT0, RegT0, RegT1)
		a.emit("seqz %s, %s", RegT0, RegT0)
	case "ne":
		a.emit("xor %s, %s, %s", RegT0, RegT0, RegT1)
		a.emit("snez %s, %s", RegT0, RegT0)
	case "and", "or":
		a.emit("%s %s, %s, %s", op, RegT0, RegT0, RegT1)
	default:
		return compileerr.Newf(compileerr.ErrMalformedIR, "unsupported binary op %q", op)
	}
	return nil
}
