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
	"strings"
	"testing"

	"github.com/lidianzhong/sysy/internal/ast"
	"github.com/lidianzhong/sysy/internal/compileerr"
	"github.com/lidianzhong/sysy/internal/consteval"
	"github.com/lidianzhong/sysy/internal/symtab"
	"github.com/stretchr/testify/require"
)

func compileFunc(t *testing.T, src string) (string, *symtab.Table) {
	t.Helper()
	cu, err := ast.Parse(strings.NewReader(src))
	require.NoError(t, err)
	table := symtab.New()
	require.NoError(t, consteval.Run(table, cu.Func.Body))
	text, err := Generate(cu.Func, table)
	require.NoError(t, err)
	return text, table
}

func TestGenerateIdentityReturn(t *testing.T) {
	text, _ := compileFunc(t, `int main() { return 0; }`)
	require.Contains(t, text, "fun @main(): i32 {")
	require.Contains(t, text, "ret 0")
}

func TestGenerateUnaryAndArithmetic(t *testing.T) {
	text, _ := compileFunc(t, `int main() { return -(1 + 2) * 3; }`)
	require.Contains(t, text, "= sub 0, %0")
	require.Contains(t, text, "= add 1, 2")
	require.Contains(t, text, "= mul")
}

func TestGenerateVariableWithAssignment(t *testing.T) {
	text, _ := compileFunc(t, `int main() {
		int x = 1;
		x = x + 1;
		return x;
	}`)
	require.Equal(t, 1, strings.Count(text, "= alloc i32"))
	require.Equal(t, 2, strings.Count(text, "store "))
	require.Equal(t, 2, strings.Count(text, "= load "))
}

func TestGenerateConstFoldedThenUsed(t *testing.T) {
	// N substitutes as an immediate, so no load is emitted; the add over
	// the resulting literals is still an IR instruction, not a fold.
	text, _ := compileFunc(t, `int main() {
		const int N = 10;
		return N + 1;
	}`)
	require.Contains(t, text, "= add 10, 1")
	require.Contains(t, text, "ret %0")
	require.NotContains(t, text, "= load ")
}

func TestGenerateConstReturnedDirectly(t *testing.T) {
	text, _ := compileFunc(t, `int main() {
		const int A = 1 + 2;
		const int B = A * 4;
		return B;
	}`)
	require.Contains(t, text, "ret 12")
	require.NotContains(t, text, "= add ")
	require.NotContains(t, text, "= mul ")
}

func TestGenerateAssignToConstantRejected(t *testing.T) {
	cu, err := ast.Parse(strings.NewReader(`int main() {
		const int N = 10;
		N = 1;
		return N;
	}`))
	require.NoError(t, err)
	table := symtab.New()
	require.NoError(t, consteval.Run(table, cu.Func.Body))
	_, err = Generate(cu.Func, table)
	require.ErrorIs(t, err, compileerr.ErrAssignToConst)
}

func TestGenerateNonShortCircuitLogical(t *testing.T) {
	text, _ := compileFunc(t, `int main() { return 1 || 2; }`)
	require.Equal(t, 2, strings.Count(text, "= ne "))
	require.Contains(t, text, "= or ")
}

func TestBuilderUnaryPlusIsIdentity(t *testing.T) {
	b := NewBuilder()
	require.Equal(t, "5", b.Unary("+", "5"))
	require.Empty(t, b.String())
}
