package vm

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/specialistvlad/gridvm/internal/ctxlog"
	"github.com/specialistvlad/gridvm/internal/executor"
	"github.com/specialistvlad/gridvm/internal/field"
)

// Stats summarizes one evaluation.
type Stats struct {
	Instructions int
	Bindings     int
	Samples      int64
	Elapsed      time.Duration
}

// Evaluator executes programs. It holds no per-program state, so one
// Evaluator can run many programs concurrently.
type Evaluator struct {
	exec *executor.Executor
}

// NewEvaluator returns an evaluator that spreads each instruction's samples
// over exec. A nil exec evaluates sequentially.
func NewEvaluator(exec *executor.Executor) *Evaluator {
	if exec == nil {
		exec = executor.Sequential()
	}
	return &Evaluator{exec: exec}
}

// Evaluate runs prog sequentially and returns the field bound by its last
// instruction.
func Evaluate(ctx context.Context, prog *Program, gridX, gridY field.Field) (field.Field, error) {
	return NewEvaluator(nil).Evaluate(ctx, prog, gridX, gridY)
}

// Run lexes, compiles and evaluates the program in src over an n×n grid.
func Run(ctx context.Context, src io.Reader, n int) (field.Field, error) {
	lines, err := Lex(src)
	if err != nil {
		return field.Field{}, err
	}
	prog, err := Compile(lines)
	if err != nil {
		return field.Field{}, err
	}
	x, y := field.Grid(n)
	return Evaluate(ctx, prog, x, y)
}

// Evaluate runs prog against the coordinate fields and returns the field
// bound by its last instruction.
func (ev *Evaluator) Evaluate(ctx context.Context, prog *Program, gridX, gridY field.Field) (field.Field, error) {
	out, _, err := ev.EvaluateStats(ctx, prog, gridX, gridY)
	return out, err
}

// EvaluateStats is Evaluate that also reports evaluation statistics.
func (ev *Evaluator) EvaluateStats(ctx context.Context, prog *Program, gridX, gridY field.Field) (field.Field, Stats, error) {
	if prog.Len() == 0 {
		return field.Field{}, Stats{}, &MalformedProgramError{Reason: "program has no instructions"}
	}
	env, err := NewEnv(gridX, gridY)
	if err != nil {
		return field.Field{}, Stats{}, err
	}

	start := time.Now()
	if err := ev.Exec(ctx, prog, env); err != nil {
		return field.Field{}, Stats{}, err
	}

	out, _ := env.Lookup(prog.Result())
	stats := Stats{
		Instructions: prog.Len(),
		Bindings:     env.Len(),
		Samples:      int64(prog.Len()) * int64(out.Len()),
		Elapsed:      time.Since(start),
	}
	ctxlog.FromContext(ctx).Info("Program evaluated.",
		"instructions", stats.Instructions,
		"size", out.Size(),
		"result", prog.Result(),
		"elapsed", stats.Elapsed,
	)
	return out, stats, nil
}

// Exec runs every instruction of prog in order, binding results in env.
// It stops at the first failing instruction.
func (ev *Evaluator) Exec(ctx context.Context, prog *Program, env *Env) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Executing program.", "instructions", prog.Len(), "size", env.Size(), "workers", ev.exec.Workers())

	for i, inst := range prog.Code {
		if err := ctx.Err(); err != nil {
			return err
		}
		pos := prog.Position(i)
		f, err := ev.step(ctx, pos, inst, env)
		if err != nil {
			return err
		}
		if err := env.bind(pos, inst.Dest(), f); err != nil {
			return err
		}
		logger.Debug("Instruction executed.", "index", pos.Index, "line", pos.Line, "op", inst.Opcode(), "out", inst.Dest())
	}
	return nil
}

// step computes the field produced by one instruction.
func (ev *Evaluator) step(ctx context.Context, pos Position, inst Instruction, env *Env) (field.Field, error) {
	switch inst := inst.(type) {
	case VarX:
		return env.gridX, nil
	case VarY:
		return env.gridY, nil
	case Const:
		return field.Constant(env.Size(), inst.Value), nil
	case Add:
		return ev.binary(ctx, pos, env, inst.A, inst.B, addKernel)
	case Sub:
		return ev.binary(ctx, pos, env, inst.A, inst.B, subKernel)
	case Mul:
		return ev.binary(ctx, pos, env, inst.A, inst.B, mulKernel)
	case Max:
		return ev.binary(ctx, pos, env, inst.A, inst.B, maxKernel)
	case Min:
		return ev.binary(ctx, pos, env, inst.A, inst.B, minKernel)
	case Neg:
		return ev.unary(ctx, pos, env, inst.A, negKernel)
	case Square:
		return ev.unary(ctx, pos, env, inst.A, squareKernel)
	case Sqrt:
		return ev.unary(ctx, pos, env, inst.A, sqrtKernel)
	default:
		return field.Field{}, fmt.Errorf("%s: unsupported instruction %T", pos, inst)
	}
}

func (ev *Evaluator) unary(ctx context.Context, pos Position, env *Env, a string, k unaryKernel) (field.Field, error) {
	fa, err := env.resolve(pos, a)
	if err != nil {
		return field.Field{}, err
	}
	dst := make([]float64, fa.Len())
	err = ev.exec.Map(ctx, len(dst), func(lo, hi int) {
		k(dst[lo:hi], fa.View(lo, hi))
	})
	if err != nil {
		return field.Field{}, err
	}
	return field.FromSamples(fa.Size(), dst)
}

func (ev *Evaluator) binary(ctx context.Context, pos Position, env *Env, a, b string, k binaryKernel) (field.Field, error) {
	fa, err := env.resolve(pos, a)
	if err != nil {
		return field.Field{}, err
	}
	fb, err := env.resolve(pos, b)
	if err != nil {
		return field.Field{}, err
	}
	dst := make([]float64, fa.Len())
	err = ev.exec.Map(ctx, len(dst), func(lo, hi int) {
		k(dst[lo:hi], fa.View(lo, hi), fb.View(lo, hi))
	})
	if err != nil {
		return field.Field{}, err
	}
	return field.FromSamples(fa.Size(), dst)
}
