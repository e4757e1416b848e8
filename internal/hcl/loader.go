package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/gridvm/internal/config"
	"github.com/specialistvlad/gridvm/internal/ctxlog"
	"github.com/specialistvlad/gridvm/internal/fsutil"
	"github.com/specialistvlad/gridvm/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
}

// NewLoader creates a new HCL configuration loader that exposes the process
// environment to job files.
func NewLoader() *Loader {
	return &Loader{environ: os.Environ}
}

// WithEnviron replaces the environment source, mainly for tests.
func (l *Loader) WithEnviron(environ func() []string) *Loader {
	return &Loader{environ: environ}
}

// pendingOutput is an output block whose body waits for the render settings.
type pendingOutput struct {
	file  string
	block *schema.Output
}

// Load parses every .hcl file under paths and merges them into one model.
// At most one `render` block may appear across all files. Output bodies see
// the render settings after override has been applied.
func (l *Loader) Load(ctx context.Context, override config.RenderOverride, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(".hcl", paths...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	base := baseEvalContext(l.environ())
	parser := hclparse.NewParser()
	model := config.NewModel()

	var renderFrom string
	var outputs []pendingOutput

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root schema.File
		if diags := gohcl.DecodeBody(hclFile.Body, base, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if root.Render != nil {
			if renderFrom != "" {
				return nil, fmt.Errorf("duplicate render block in %s (first defined in %s)", file, renderFrom)
			}
			renderFrom = file
			l.translateRender(root.Render, filepath.Dir(file), model.Render)
		}
		for _, out := range root.Outputs {
			outputs = append(outputs, pendingOutput{file: file, block: out})
		}
	}

	if override != nil {
		override(model.Render)
	}
	outCtx := outputEvalContext(base, model.Render)
	for _, p := range outputs {
		out, err := l.translateOutput(p.block, outCtx)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate output in %s: %w", p.file, err)
		}
		model.Outputs = append(model.Outputs, out)
	}

	logger.Debug("HCL loading complete.", "render_file", renderFrom, "outputs", len(model.Outputs))
	return model, nil
}

// translateRender copies explicitly set attributes over the defaults in dst.
func (l *Loader) translateRender(s *schema.Render, dir string, dst *config.Render) {
	if s.Program != nil {
		dst.Program = fsutil.ResolveRelative(dir, *s.Program)
	}
	if s.Size != nil {
		dst.Size = *s.Size
	}
	if s.Workers != nil {
		dst.Workers = *s.Workers
	}
	if s.ChunkSize != nil {
		dst.ChunkSize = *s.ChunkSize
	}
}

// translateOutput evaluates every attribute of an output block.
func (l *Loader) translateOutput(s *schema.Output, evalCtx *hcl.EvalContext) (*config.Output, error) {
	attrs, diags := s.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := &config.Output{
		Kind:      s.Kind,
		Name:      s.Name,
		Arguments: make(map[string]cty.Value, len(attrs)),
	}
	for _, name := range names {
		val, diags := attrs[name].Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, diags
		}
		out.Arguments[name] = val
	}
	return out, nil
}
