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
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lidianzhong/sysy/internal/clog"
	"github.com/lidianzhong/sysy/internal/compile"
	"github.com/lidianzhong/sysy/internal/compileerr"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: sysyc {-koopa|-riscv} INPUT -o OUTPUT")
}

// parseArgs reads the fixed four-token grammar directly off argv.
// Neither the standard flag package nor the usual flag libraries can
// express "-koopa"/"-riscv" as a long single-dash mode token sitting
// before a bare positional that itself precedes a further "-o" flag, so
// the four tokens are indexed by hand.
func parseArgs(argv []string) (mode compile.Mode, input, output string, err error) {
	if len(argv) != 4 {
		return 0, "", "", compileerr.Newf(compileerr.ErrUnsupportedMode, "expected 4 arguments, got %d", len(argv))
	}
	switch argv[0] {
	case "-koopa":
		mode = compile.ModeKoopa
	case "-riscv":
		mode = compile.ModeRiscv
	default:
		return 0, "", "", compileerr.Newf(compileerr.ErrUnsupportedMode, "unknown mode %q", argv[0])
	}
	input = argv[1]
	if argv[2] != "-o" {
		return 0, "", "", compileerr.Newf(compileerr.ErrUnsupportedMode, "expected -o, got %q", argv[2])
	}
	output = argv[3]
	return mode, input, output, nil
}

func main() {
	clog.SetVerbose(os.Getenv("SYSYC_VERBOSE") != "")

	mode, input, output, err := parseArgs(os.Args[1:])
	if err != nil {
		usage()
		clog.Errorf("%v", err)
		os.Exit(exitCode(err))
	}

	in, err := os.Open(input)
	if err != nil {
		clog.Errorf("open %s: %v", input, err)
		os.Exit(exitCode(compileerr.Newf(compileerr.ErrIOError, "open %s", input)))
	}
	defer in.Close()

	text, err := compile.Run(in, mode)
	if err != nil {
		clog.Errorf("%v", err)
		os.Exit(exitCode(err))
	}

	if err := writeAtomic(output, text); err != nil {
		clog.Errorf("%v", err)
		os.Exit(exitCode(err))
	}
}

// writeAtomic renders text to a temp file beside output and renames it
// into place only once the write has fully succeeded, so a failure never
// leaves a half-written output file behind.
func writeAtomic(output, text string) error {
	dir := filepath.Dir(output)
	tmp, err := os.CreateTemp(dir, ".sysyc-*.tmp")
	if err != nil {
		return compileerr.Newf(compileerr.ErrIOError, "create temp output in %s", dir)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return compileerr.Newf(compileerr.ErrIOError, "write temp output %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return compileerr.Newf(compileerr.ErrIOError, "close temp output %s", tmpName)
	}
	if err := os.Rename(tmpName, output); err != nil {
		os.Remove(tmpName)
		return compileerr.Newf(compileerr.ErrIOError, "rename %s to %s", tmpName, output)
	}
	return nil
}

// exitCode maps a pipeline failure to a process exit status, grouping by
// sentinel so scripts driving the compiler can distinguish a usage error
// from a source-level compile failure.
func exitCode(err error) int {
	switch {
	case errors.Is(err, compileerr.ErrUnsupportedMode):
		return 2
	case errors.Is(err, compileerr.ErrIOError):
		return 3
	default:
		return 1
	}
}
