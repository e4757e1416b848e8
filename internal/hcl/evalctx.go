package hcl

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/gridvm/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// functions are callable from any expression in a job file.
var functions = map[string]function.Function{
	"format": stdlib.FormatFunc,
	"lower":  stdlib.LowerFunc,
	"max":    stdlib.MaxFunc,
	"min":    stdlib.MinFunc,
	"pow":    stdlib.PowFunc,
	"upper":  stdlib.UpperFunc,
}

// baseEvalContext exposes the process environment as `env` plus the
// function table.
func baseEvalContext(environ []string) *hcl.EvalContext {
	env := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = cty.StringVal(v)
	}

	envVal := cty.MapValEmpty(cty.String)
	if len(env) > 0 {
		envVal = cty.MapVal(env)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": envVal},
		Functions: functions,
	}
}

// outputEvalContext adds the resolved render settings as `render`.
func outputEvalContext(base *hcl.EvalContext, r *config.Render) *hcl.EvalContext {
	child := base.NewChild()
	child.Variables = map[string]cty.Value{
		"render": cty.ObjectVal(map[string]cty.Value{
			"program":    cty.StringVal(r.Program),
			"size":       cty.NumberIntVal(int64(r.Size)),
			"workers":    cty.NumberIntVal(int64(r.Workers)),
			"chunk_size": cty.NumberIntVal(int64(r.ChunkSize)),
		}),
	}
	return child
}
