// Package vm implements the field VM: a straight-line, single-assignment
// instruction set evaluated densely over an N×N coordinate grid.
//
// A program goes through three stages:
//
//	lines, err := vm.Lex(r)            // text -> token lines
//	prog, err := vm.Compile(lines)     // token lines -> tagged instructions
//	out, err := ev.Evaluate(ctx, prog, gridX, gridY)
//
// Each instruction binds exactly one new name to a new field (var-x and
// var-y bind the grid fields by reference). The result is the field bound by
// the last instruction. Evaluation stops at the first error and reports the
// position of the failing instruction; sqrt of a negative sample is not an
// error and yields NaN.
//
// Compile checks every line before anything runs, so a malformed line
// anywhere in the program is reported ahead of an unbound name that
// evaluation would hit earlier in the text.
package vm
