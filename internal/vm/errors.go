package vm

import (
	"errors"
	"fmt"
)

// ErrGridMismatch is returned when the X and Y seed fields differ in size.
var ErrGridMismatch = errors.New("grid fields differ in size")

// Position locates an instruction: its 0-based index in the program and,
// when known, its 1-based source line.
type Position struct {
	Index int
	Line  int
}

func (p Position) String() string {
	if p.Line > 0 {
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("instruction %d", p.Index)
}

// MalformedProgramError reports a program with nothing to evaluate, or a
// line too short to be an instruction.
type MalformedProgramError struct {
	Pos    Position
	Reason string
}

func (e *MalformedProgramError) Error() string {
	if e.Reason == "" {
		return "malformed program"
	}
	if e.Pos == (Position{}) {
		return "malformed program: " + e.Reason
	}
	return fmt.Sprintf("%s: malformed program: %s", e.Pos, e.Reason)
}

// UnboundVariableError reports an operand read before any instruction bound it.
type UnboundVariableError struct {
	Pos  Position
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("%s: unbound variable %q", e.Pos, e.Name)
}

// UnknownOpcodeError reports an opcode token outside the instruction set.
type UnknownOpcodeError struct {
	Pos    Position
	Opcode string
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("%s: unknown opcode %q", e.Pos, e.Opcode)
}

// InvalidOperandCountError reports an instruction with the wrong number of
// operands for its opcode.
type InvalidOperandCountError struct {
	Pos    Position
	Opcode Opcode
	Want   int
	Got    int
}

func (e *InvalidOperandCountError) Error() string {
	return fmt.Sprintf("%s: %s takes %d operand(s), got %d", e.Pos, e.Opcode, e.Want, e.Got)
}

// InvalidLiteralError reports a const operand that is not a number.
type InvalidLiteralError struct {
	Pos     Position
	Literal string
	Err     error
}

func (e *InvalidLiteralError) Error() string {
	return fmt.Sprintf("%s: invalid const literal %q: %v", e.Pos, e.Literal, e.Err)
}

func (e *InvalidLiteralError) Unwrap() error { return e.Err }

// RedefinedVariableError reports a second assignment to a bound name.
type RedefinedVariableError struct {
	Pos   Position
	Name  string
	First Position
}

func (e *RedefinedVariableError) Error() string {
	return fmt.Sprintf("%s: variable %q already bound at %s", e.Pos, e.Name, e.First)
}
