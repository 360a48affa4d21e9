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

// Package compile wires the core passes into a single sequential
// pipeline: parse, const-eval, IR-gen, then (for assembly output) the
// Koopa loader, stack layout and RISC-V codegen. The "-koopa" mode stops
// after IR-gen and returns the IR text itself.
package compile

import (
	"io"

	"github.com/lidianzhong/sysy/internal/ast"
	"github.com/lidianzhong/sysy/internal/backend"
	"github.com/lidianzhong/sysy/internal/clog"
	"github.com/lidianzhong/sysy/internal/consteval"
	"github.com/lidianzhong/sysy/internal/irgen"
	"github.com/lidianzhong/sysy/internal/koopa"
	"github.com/lidianzhong/sysy/internal/symtab"
)

// Mode selects the pipeline's endpoint.
type Mode int

const (
	// ModeKoopa stops after IR-gen and returns Koopa IR text.
	ModeKoopa Mode = iota
	// ModeRiscv continues through the loader and backend to RISC-V asm.
	ModeRiscv
)

// Run executes the pipeline over src and returns the textual output
// selected by mode.
func Run(src io.Reader, mode Mode) (string, error) {
	root, err := ast.Parse(src)
	if err != nil {
		return "", err
	}
	clog.Stage("parse").Debugf("parsed function @%s", root.Func.Name)

	table := symtab.New()
	if err := consteval.Run(table, root.Func.Body); err != nil {
		return "", err
	}

	irText, err := irgen.Generate(root.Func, table)
	if err != nil {
		return "", err
	}

	if mode == ModeKoopa {
		return irText, nil
	}

	prog, err := koopa.Load(irText)
	if err != nil {
		return "", err
	}
	return backend.Emit(prog)
}
