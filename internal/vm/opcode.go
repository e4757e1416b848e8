package vm

import "fmt"

// Opcode identifies an instruction kind.
type Opcode int

const (
	OpVarX Opcode = iota
	OpVarY
	OpConst
	OpAdd
	OpSub
	OpMul
	OpMax
	OpMin
	OpNeg
	OpSquare
	OpSqrt
)

var opcodeNames = [...]string{
	OpVarX:   "var-x",
	OpVarY:   "var-y",
	OpConst:  "const",
	OpAdd:    "add",
	OpSub:    "sub",
	OpMul:    "mul",
	OpMax:    "max",
	OpMin:    "min",
	OpNeg:    "neg",
	OpSquare: "square",
	OpSqrt:   "sqrt",
}

// arity is the number of operand tokens after the opcode. For const the
// single operand is a literal, not a variable name.
var arity = [...]int{
	OpVarX:   0,
	OpVarY:   0,
	OpConst:  1,
	OpAdd:    2,
	OpSub:    2,
	OpMul:    2,
	OpMax:    2,
	OpMin:    2,
	OpNeg:    1,
	OpSquare: 1,
	OpSqrt:   1,
}

var opcodesByName = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeNames))
	for op, name := range opcodeNames {
		m[name] = Opcode(op)
	}
	return m
}()

// LookupOpcode returns the opcode spelled name.
func LookupOpcode(name string) (Opcode, bool) {
	op, ok := opcodesByName[name]
	return op, ok
}

// String returns the textual spelling of the opcode.
func (op Opcode) String() string {
	if op < 0 || int(op) >= len(opcodeNames) {
		return fmt.Sprintf("Opcode(%d)", int(op))
	}
	return opcodeNames[op]
}

// Arity returns the number of operands the opcode takes.
func (op Opcode) Arity() int {
	return arity[op]
}
