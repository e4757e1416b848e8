package app

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/gridvm/internal/config"
	"github.com/specialistvlad/gridvm/internal/ctxlog"
	"github.com/specialistvlad/gridvm/internal/executor"
	"github.com/specialistvlad/gridvm/internal/field"
	"github.com/specialistvlad/gridvm/internal/raster"
	"github.com/specialistvlad/gridvm/internal/vm"
)

// Run renders the configured program and delivers the image to every output.
// The first failing stage or output aborts the run.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	r := a.model.Render

	prog, err := loadProgram(r.Program)
	if err != nil {
		return err
	}
	a.logger.Info("Program loaded.", "path", r.Program, "instructions", prog.Len())

	gridX, gridY := field.Grid(r.Size)
	exec := executor.New(r.Workers, r.ChunkSize)

	a.logger.Info("🚀 Evaluating program...", "size", r.Size, "workers", exec.Workers(), "chunk_size", exec.ChunkSize())
	out, stats, err := vm.NewEvaluator(exec).EvaluateStats(ctx, prog, gridX, gridY)
	if err != nil {
		return fmt.Errorf("evaluation of %s failed: %w", r.Program, err)
	}

	img := raster.FromField(out)
	a.logger.Info("🏁 Evaluation finished.",
		"bindings", stats.Bindings,
		"samples", stats.Samples,
		"elapsed", stats.Elapsed,
		"foreground", img.ForegroundCount(),
	)

	for _, o := range a.model.Outputs {
		if err := a.deliver(ctx, o, img); err != nil {
			return fmt.Errorf("output '%s' failed: %w", o.Address(), err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// deliver decodes an output's arguments and hands the image to its sink.
func (a *App) deliver(ctx context.Context, o *config.Output, img *raster.Image) error {
	ctx, logger := ctxlog.With(ctx, "output", o.Address())

	sink, err := a.registry.Sink(o.Kind)
	if err != nil {
		return err
	}
	input := sink.NewInput()
	if err := a.converter.DecodeArguments(ctx, o.Arguments, input); err != nil {
		return err
	}

	logger.Debug("Calling sink.", "kind", o.Kind)
	return sink.Fn(ctx, a.registry, img, input)
}

// loadProgram reads and compiles the program file at path.
func loadProgram(path string) (*vm.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open program: %w", err)
	}
	defer f.Close()

	lines, err := vm.Lex(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read program %s: %w", path, err)
	}
	prog, err := vm.Compile(lines)
	if err != nil {
		return nil, fmt.Errorf("failed to compile program %s: %w", path, err)
	}
	return prog, nil
}
