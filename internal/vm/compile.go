package vm

import (
	"errors"
	"strconv"
)

// Compile turns token lines into a Program. It checks opcodes, operand
// counts and const literals; name resolution happens during evaluation.
// Out-of-range literals saturate to ±Inf.
// An empty input compiles to an empty program, which Evaluate rejects.
func Compile(lines []Line) (*Program, error) {
	prog := &Program{
		Code:  make([]Instruction, 0, len(lines)),
		Lines: make([]int, 0, len(lines)),
	}
	for i, line := range lines {
		pos := Position{Index: i, Line: line.Number}
		inst, err := compileLine(pos, line.Fields)
		if err != nil {
			return nil, err
		}
		prog.Code = append(prog.Code, inst)
		prog.Lines = append(prog.Lines, line.Number)
	}
	return prog, nil
}

// Parse is Compile over tokens produced by LexString.
func Parse(src string) (*Program, error) {
	lines, err := LexString(src)
	if err != nil {
		return nil, err
	}
	return Compile(lines)
}

func compileLine(pos Position, fields []string) (Instruction, error) {
	if len(fields) < 2 {
		return nil, &MalformedProgramError{Pos: pos, Reason: "instruction needs an output name and an opcode"}
	}
	out, name, args := fields[0], fields[1], fields[2:]

	op, ok := LookupOpcode(name)
	if !ok {
		return nil, &UnknownOpcodeError{Pos: pos, Opcode: name}
	}
	if len(args) != op.Arity() {
		return nil, &InvalidOperandCountError{Pos: pos, Opcode: op, Want: op.Arity(), Got: len(args)}
	}

	switch op {
	case OpVarX:
		return VarX{Out: out}, nil
	case OpVarY:
		return VarY{Out: out}, nil
	case OpConst:
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, &InvalidLiteralError{Pos: pos, Literal: args[0], Err: err}
		}
		return Const{Out: out, Value: v}, nil
	case OpAdd:
		return Add{Out: out, A: args[0], B: args[1]}, nil
	case OpSub:
		return Sub{Out: out, A: args[0], B: args[1]}, nil
	case OpMul:
		return Mul{Out: out, A: args[0], B: args[1]}, nil
	case OpMax:
		return Max{Out: out, A: args[0], B: args[1]}, nil
	case OpMin:
		return Min{Out: out, A: args[0], B: args[1]}, nil
	case OpNeg:
		return Neg{Out: out, A: args[0]}, nil
	case OpSquare:
		return Square{Out: out, A: args[0]}, nil
	case OpSqrt:
		return Sqrt{Out: out, A: args[0]}, nil
	}
	return nil, &UnknownOpcodeError{Pos: pos, Opcode: name}
}
