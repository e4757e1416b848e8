package registry

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/specialistvlad/gridvm/internal/config"
	"github.com/specialistvlad/gridvm/internal/ctxlog"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ValidateRegistry checks that every sink declares a usable input struct:
// unique argument names and field types cty can decode into.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, kind := range r.SinkNames() {
		sink := r.SinkRegistry[kind]
		if sink.Fn == nil {
			errs = append(errs, fmt.Sprintf("sink '%s': no handler function", kind))
		}
		if sink.NewInput == nil || sink.InputType == nil {
			errs = append(errs, fmt.Sprintf("sink '%s': no input struct", kind))
			continue
		}
		if sink.InputType.Kind() != reflect.Struct {
			errs = append(errs, fmt.Sprintf("sink '%s': input type %v is not a struct", kind, sink.InputType))
			continue
		}

		seen := make(map[string]string)
		for i := 0; i < sink.InputType.NumField(); i++ {
			field := sink.InputType.Field(i)
			name, _ := config.ParseArgTag(field.Tag.Get(config.ArgTag))
			if name == "" || !field.IsExported() {
				continue
			}
			if prev, dup := seen[name]; dup {
				errs = append(errs, fmt.Sprintf("sink '%s': argument '%s' is declared by both %s and %s", kind, name, prev, field.Name))
				continue
			}
			seen[name] = field.Name

			if _, err := gocty.ImpliedType(reflect.Zero(field.Type).Interface()); err != nil {
				errs = append(errs, fmt.Sprintf("sink '%s': argument '%s' has unsupported Go type %v: %v", kind, name, field.Type, err))
			}
		}
		logger.Debug("Sink validated.", "kind", kind, "arguments", len(seen))
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// ValidateModel checks that every output in the model names a registered sink.
func (r *Registry) ValidateModel(ctx context.Context, model *config.Model) error {
	var errs []string
	for _, out := range model.Outputs {
		if _, ok := r.SinkRegistry[out.Kind]; !ok {
			errs = append(errs, fmt.Sprintf("output '%s': unknown kind '%s' (known: %v)", out.Address(), out.Kind, r.SinkNames()))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration does not match registered sinks:\n- %s", strings.Join(errs, "\n- "))
	}
	ctxlog.FromContext(ctx).Debug("Configuration matches registered sinks.", "outputs", len(model.Outputs))
	return nil
}
