package vm

// Instruction is one single-assignment statement. The concrete types below
// are the only implementations; the evaluator switches over them
// exhaustively.
type Instruction interface {
	// Dest is the variable the instruction binds.
	Dest() string
	// Opcode reports the instruction kind.
	Opcode() Opcode
	// Operands lists the variable names the instruction reads.
	Operands() []string

	instruction()
}

// VarX binds Out to the X coordinate field.
type VarX struct{ Out string }

// VarY binds Out to the Y coordinate field.
type VarY struct{ Out string }

// Const binds Out to a field filled with Value.
type Const struct {
	Out   string
	Value float64
}

// Add computes A + B.
type Add struct{ Out, A, B string }

// Sub computes A - B.
type Sub struct{ Out, A, B string }

// Mul computes A * B.
type Mul struct{ Out, A, B string }

// Max picks A where A > B, otherwise B.
type Max struct{ Out, A, B string }

// Min picks A where A < B, otherwise B.
type Min struct{ Out, A, B string }

// Neg computes -A.
type Neg struct{ Out, A string }

// Square computes A * A.
type Square struct{ Out, A string }

// Sqrt computes the square root of A, or NaN where A is negative.
type Sqrt struct{ Out, A string }

func (i VarX) Dest() string   { return i.Out }
func (i VarY) Dest() string   { return i.Out }
func (i Const) Dest() string  { return i.Out }
func (i Add) Dest() string    { return i.Out }
func (i Sub) Dest() string    { return i.Out }
func (i Mul) Dest() string    { return i.Out }
func (i Max) Dest() string    { return i.Out }
func (i Min) Dest() string    { return i.Out }
func (i Neg) Dest() string    { return i.Out }
func (i Square) Dest() string { return i.Out }
func (i Sqrt) Dest() string   { return i.Out }

func (VarX) Opcode() Opcode   { return OpVarX }
func (VarY) Opcode() Opcode   { return OpVarY }
func (Const) Opcode() Opcode  { return OpConst }
func (Add) Opcode() Opcode    { return OpAdd }
func (Sub) Opcode() Opcode    { return OpSub }
func (Mul) Opcode() Opcode    { return OpMul }
func (Max) Opcode() Opcode    { return OpMax }
func (Min) Opcode() Opcode    { return OpMin }
func (Neg) Opcode() Opcode    { return OpNeg }
func (Square) Opcode() Opcode { return OpSquare }
func (Sqrt) Opcode() Opcode   { return OpSqrt }

func (VarX) Operands() []string     { return nil }
func (VarY) Operands() []string     { return nil }
func (Const) Operands() []string    { return nil }
func (i Add) Operands() []string    { return []string{i.A, i.B} }
func (i Sub) Operands() []string    { return []string{i.A, i.B} }
func (i Mul) Operands() []string    { return []string{i.A, i.B} }
func (i Max) Operands() []string    { return []string{i.A, i.B} }
func (i Min) Operands() []string    { return []string{i.A, i.B} }
func (i Neg) Operands() []string    { return []string{i.A} }
func (i Square) Operands() []string { return []string{i.A} }
func (i Sqrt) Operands() []string   { return []string{i.A} }

func (VarX) instruction()   {}
func (VarY) instruction()   {}
func (Const) instruction()  {}
func (Add) instruction()    {}
func (Sub) instruction()    {}
func (Mul) instruction()    {}
func (Max) instruction()    {}
func (Min) instruction()    {}
func (Neg) instruction()    {}
func (Square) instruction() {}
func (Sqrt) instruction()   {}

// Program is an ordered list of instructions. Lines, when set, holds the
// 1-based source line of each instruction.
type Program struct {
	Code  []Instruction
	Lines []int
}

// NewProgram builds a program from instructions with no source lines.
func NewProgram(code ...Instruction) *Program {
	return &Program{Code: code}
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Code)
}

// Position returns the diagnostic position of instruction i.
func (p *Program) Position(i int) Position {
	pos := Position{Index: i}
	if i < len(p.Lines) {
		pos.Line = p.Lines[i]
	}
	return pos
}

// Result returns the name bound by the last instruction, or "" for an empty
// program.
func (p *Program) Result() string {
	if p.Len() == 0 {
		return ""
	}
	return p.Code[len(p.Code)-1].Dest()
}
