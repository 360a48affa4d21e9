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
	"os"
	"path/filepath"
	"testing"

	"github.com/lidianzhong/sysy/internal/compile"
	"github.com/lidianzhong/sysy/internal/compileerr"
	"github.com/stretchr/testify/require"
)

func TestParseArgsKoopaMode(t *testing.T) {
	mode, input, output, err := parseArgs([]string{"-koopa", "in.c", "-o", "out.koopa"})
	require.NoError(t, err)
	require.Equal(t, compile.ModeKoopa, mode)
	require.Equal(t, "in.c", input)
	require.Equal(t, "out.koopa", output)
}

func TestParseArgsRiscvMode(t *testing.T) {
	mode, _, _, err := parseArgs([]string{"-riscv", "in.c", "-o", "out.s"})
	require.NoError(t, err)
	require.Equal(t, compile.ModeRiscv, mode)
}

func TestParseArgsRejectsUnknownMode(t *testing.T) {
	_, _, _, err := parseArgs([]string{"-bogus", "in.c", "-o", "out.s"})
	require.ErrorIs(t, err, compileerr.ErrUnsupportedMode)
}

func TestParseArgsRejectsMissingOFlag(t *testing.T) {
	_, _, _, err := parseArgs([]string{"-koopa", "in.c", "--out", "out.s"})
	require.ErrorIs(t, err, compileerr.ErrUnsupportedMode)
}

func TestParseArgsRejectsWrongArgCount(t *testing.T) {
	_, _, _, err := parseArgs([]string{"-koopa", "in.c"})
	require.ErrorIs(t, err, compileerr.ErrUnsupportedMode)
}

func TestWriteAtomicLeavesNoPartialFileOnCreateFailure(t *testing.T) {
	dir := t.TempDir()
	// the missing parent directory makes the temp-file creation fail
	// before anything can land at the output path.
	output := filepath.Join(dir, "sub", "out.s")
	err := writeAtomic(output, "text")
	require.ErrorIs(t, err, compileerr.ErrIOError)
	_, statErr := os.Stat(output)
	require.True(t, os.IsNotExist(statErr))
}

func TestWriteAtomicSucceeds(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.s")
	require.NoError(t, writeAtomic(output, "hello"))
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))
}

func TestExitCodeClassification(t *testing.T) {
	require.Equal(t, 2, exitCode(compileerr.Newf(compileerr.ErrUnsupportedMode, "x")))
	require.Equal(t, 3, exitCode(compileerr.Newf(compileerr.ErrIOError, "x")))
	require.Equal(t, 1, exitCode(compileerr.Newf(compileerr.ErrParseError, "x")))
}
