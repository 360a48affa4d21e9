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

// Package backend lowers a loaded Koopa program (internal/koopa) to
// 32-bit RISC-V assembly: a stack-layout planner assigns every
// value-producing instruction a unique frame slot, then codegen walks
// instructions in source order emitting loads/stores around the working
// registers.
package backend

// Working registers. Codegen only ever names these three
// general-purpose registers as instruction destinations. No register
// allocation is performed, every value lives on the stack.
const (
	RegT0 = "t0" // scratch: left operand / load destination
	RegT1 = "t1" // scratch: right operand
	RegA0 = "a0" // return value register, RISC-V calling convention
	RegSP = "sp" // stack pointer
)
