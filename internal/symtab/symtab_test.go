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

package symtab

import (
	"testing"

	"github.com/lidianzhong/sysy/internal/compileerr"
	"github.com/stretchr/testify/require"
)

func TestDefineConstThenLookup(t *testing.T) {
	table := New()
	require.NoError(t, table.DefineConst("N", 42))
	v, ok := table.LookupConst("N")
	require.True(t, ok)
	require.Equal(t, int32(42), v)
	require.True(t, table.IsConst("N"))
	require.False(t, table.IsVar("N"))
}

func TestDefineVarThenLookup(t *testing.T) {
	table := New()
	require.NoError(t, table.DefineVar("x", "%0"))
	handle, ok := table.LookupVar("x")
	require.True(t, ok)
	require.Equal(t, "%0", handle)
	require.True(t, table.IsVar("x"))
}

func TestRedefinitionIsRejectedAcrossKinds(t *testing.T) {
	table := New()
	require.NoError(t, table.DefineConst("x", 1))
	err := table.DefineVar("x", "%0")
	require.ErrorIs(t, err, compileerr.ErrDuplicateDefinition)
}

func TestLookupWrongKindFails(t *testing.T) {
	table := New()
	require.NoError(t, table.DefineConst("x", 1))
	_, ok := table.LookupVar("x")
	require.False(t, ok)
}

func TestStrictLookupWrongKindIsMismatch(t *testing.T) {
	table := New()
	require.NoError(t, table.DefineConst("c", 1))
	require.NoError(t, table.DefineVar("v", "%0"))

	_, _, err := table.VarHandle("c")
	require.ErrorIs(t, err, compileerr.ErrSymbolKindMismatch)
	_, _, err = table.ConstValue("v")
	require.ErrorIs(t, err, compileerr.ErrSymbolKindMismatch)

	_, ok, err := table.VarHandle("missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestContainsAndKindOfUnboundName(t *testing.T) {
	table := New()
	require.False(t, table.Contains("missing"))
	_, ok := table.KindOf("missing")
	require.False(t, ok)
}
