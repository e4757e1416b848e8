package vm

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex_SkipsBlankAndCommentLines(t *testing.T) {
	t.Parallel()

	src := "# header\n\n  a var-x  \n\t# indented comment\nb  const\t-1.5\n"
	lines, err := LexString(src)

	require.NoError(t, err)
	require.Equal(t, []Line{
		{Number: 3, Fields: []string{"a", "var-x"}},
		{Number: 5, Fields: []string{"b", "const", "-1.5"}},
	}, lines)
}

func TestCompile_AllOpcodes(t *testing.T) {
	t.Parallel()

	src := `
x var-x
y var-y
k const 2.5
a add x y
s sub x y
m mul x y
hi max x y
lo min x y
n neg x
q square x
r sqrt x
`
	prog, err := Parse(src)
	require.NoError(t, err)

	require.Equal(t, []Instruction{
		VarX{Out: "x"},
		VarY{Out: "y"},
		Const{Out: "k", Value: 2.5},
		Add{Out: "a", A: "x", B: "y"},
		Sub{Out: "s", A: "x", B: "y"},
		Mul{Out: "m", A: "x", B: "y"},
		Max{Out: "hi", A: "x", B: "y"},
		Min{Out: "lo", A: "x", B: "y"},
		Neg{Out: "n", A: "x"},
		Square{Out: "q", A: "x"},
		Sqrt{Out: "r", A: "x"},
	}, prog.Code)
	require.Equal(t, []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, prog.Lines)
	require.Equal(t, "r", prog.Result())

	// const takes a literal, not a variable.
	for _, inst := range prog.Code {
		want := inst.Opcode().Arity()
		if inst.Opcode() == OpConst {
			want = 0
		}
		assert.Len(t, inst.Operands(), want, inst.Opcode().String())
	}
}

func TestCompile_UnknownOpcode(t *testing.T) {
	t.Parallel()

	_, err := Parse("a var-x\na2 frobnicate x")

	var unknown *UnknownOpcodeError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "frobnicate", unknown.Opcode)
	require.Equal(t, Position{Index: 1, Line: 2}, unknown.Pos)
	require.Equal(t, `line 2: unknown opcode "frobnicate"`, err.Error())
}

func TestCompile_ReportsMalformedLineBeforeUnboundName(t *testing.T) {
	t.Parallel()

	// Line 1 reads names that are never bound; line 2 cannot compile.
	_, err := Parse("a add b c\nz frobnicate x")

	var unknown *UnknownOpcodeError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, 2, unknown.Pos.Line)
	var unbound *UnboundVariableError
	require.False(t, errors.As(err, &unbound))
}

func TestCompile_InvalidOperandCount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		src  string
		op   Opcode
		want int
		got  int
	}{
		{"a const", OpConst, 1, 0},
		{"a var-x extra", OpVarX, 0, 1},
		{"a add b", OpAdd, 2, 1},
		{"a neg b c", OpNeg, 1, 2},
	}

	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tc.src)

			var count *InvalidOperandCountError
			require.ErrorAs(t, err, &count)
			require.Equal(t, tc.op, count.Opcode)
			require.Equal(t, tc.want, count.Want)
			require.Equal(t, tc.got, count.Got)
		})
	}
}

func TestCompile_InvalidLiteral(t *testing.T) {
	t.Parallel()

	_, err := Parse("a const one")

	var lit *InvalidLiteralError
	require.ErrorAs(t, err, &lit)
	require.Equal(t, "one", lit.Literal)
}

func TestCompile_OutOfRangeLiteralSaturates(t *testing.T) {
	t.Parallel()

	prog, err := Parse("a const 1e400\nb const -1e400")
	require.NoError(t, err)
	require.True(t, math.IsInf(prog.Code[0].(Const).Value, 1))
	require.True(t, math.IsInf(prog.Code[1].(Const).Value, -1))
}

func TestCompile_MissingOpcode(t *testing.T) {
	t.Parallel()

	_, err := Parse("lonely")

	var malformed *MalformedProgramError
	require.ErrorAs(t, err, &malformed)
	require.True(t, strings.HasPrefix(err.Error(), "line 1: malformed program"))
}

func TestCompile_EmptyInput(t *testing.T) {
	t.Parallel()

	prog, err := Compile(nil)
	require.NoError(t, err)
	require.Zero(t, prog.Len())
	require.Empty(t, prog.Result())
}

func TestOpcode_StringRoundTrip(t *testing.T) {
	t.Parallel()

	for op := OpVarX; op <= OpSqrt; op++ {
		got, ok := LookupOpcode(op.String())
		require.True(t, ok, op.String())
		require.Equal(t, op, got)
	}
	require.Equal(t, "Opcode(99)", Opcode(99).String())
}
