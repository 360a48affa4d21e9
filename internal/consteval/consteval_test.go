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

package consteval

import (
	"strings"
	"testing"

	"github.com/lidianzhong/sysy/internal/ast"
	"github.com/lidianzhong/sysy/internal/compileerr"
	"github.com/lidianzhong/sysy/internal/symtab"
	"github.com/stretchr/testify/require"
)

func parseBody(t *testing.T, src string) *ast.Block {
	t.Helper()
	cu, err := ast.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return cu.Func.Body
}

func TestRunFoldsConstInSourceOrder(t *testing.T) {
	block := parseBody(t, `int main() {
		const int A = 2;
		const int B = A * 10;
		return B;
	}`)
	table := symtab.New()
	require.NoError(t, Run(table, block))

	v, ok := table.LookupConst("A")
	require.True(t, ok)
	require.Equal(t, int32(2), v)

	v, ok = table.LookupConst("B")
	require.True(t, ok)
	require.Equal(t, int32(20), v)
}

func TestRunRejectsDuplicateConst(t *testing.T) {
	block := parseBody(t, `int main() {
		const int A = 1;
		const int A = 2;
		return A;
	}`)
	err := Run(symtab.New(), block)
	require.ErrorIs(t, err, compileerr.ErrDuplicateDefinition)
}

func TestRunRejectsConstDivByZero(t *testing.T) {
	block := parseBody(t, `int main() {
		const int Z = 0;
		const int A = 1 / Z;
		return A;
	}`)
	err := Run(symtab.New(), block)
	require.ErrorIs(t, err, compileerr.ErrConstDivByZero)
}

func TestEvalArithmeticWraps(t *testing.T) {
	table := symtab.New()
	expr := &ast.BinaryExpr{
		Op:  "+",
		LHS: &ast.NumberExpr{Value: 2147483647},
		RHS: &ast.NumberExpr{Value: 1},
	}
	v, isConst, err := Eval(table, expr)
	require.NoError(t, err)
	require.True(t, isConst)
	require.Equal(t, int32(-2147483648), v)
}

func TestEvalLValNamingVariableIsNotConst(t *testing.T) {
	table := symtab.New()
	require.NoError(t, table.DefineVar("x", "%0"))
	_, isConst, err := Eval(table, &ast.LVal{Name: "x"})
	require.NoError(t, err)
	require.False(t, isConst)
}

func TestEvalRelationalAndLogical(t *testing.T) {
	table := symtab.New()
	cases := []struct {
		op       string
		l, r     int32
		expected int32
	}{
		{"<", 1, 2, 1},
		{">", 1, 2, 0},
		{"<=", 2, 2, 1},
		{">=", 1, 2, 0},
		{"==", 2, 2, 1},
		{"!=", 2, 2, 0},
		{"&&", 1, 0, 0},
		{"||", 0, 5, 1},
	}
	for _, c := range cases {
		v, isConst, err := Eval(table, &ast.BinaryExpr{
			Op:  c.op,
			LHS: &ast.NumberExpr{Value: c.l},
			RHS: &ast.NumberExpr{Value: c.r},
		})
		require.NoError(t, err)
		require.True(t, isConst)
		require.Equalf(t, c.expected, v, "op %s", c.op)
	}
}
