package vm

import (
	"fmt"

	"github.com/specialistvlad/gridvm/internal/field"
)

type binding struct {
	field field.Field
	pos   Position
}

// Env is the variable binding of one evaluation. Names are bound once and
// never removed. An Env is not safe for concurrent use; evaluate separate
// programs with separate Envs.
type Env struct {
	gridX field.Field
	gridY field.Field
	vars  map[string]binding
}

// NewEnv creates an empty binding seeded with the coordinate fields.
func NewEnv(gridX, gridY field.Field) (*Env, error) {
	if gridX.Size() != gridY.Size() {
		return nil, fmt.Errorf("%w: x is %d, y is %d", ErrGridMismatch, gridX.Size(), gridY.Size())
	}
	return &Env{gridX: gridX, gridY: gridY, vars: make(map[string]binding)}, nil
}

// Size returns N of the N×N fields in this binding.
func (e *Env) Size() int { return e.gridX.Size() }

// Len returns the number of bound names.
func (e *Env) Len() int { return len(e.vars) }

// Lookup returns the field bound to name.
func (e *Env) Lookup(name string) (field.Field, bool) {
	b, ok := e.vars[name]
	return b.field, ok
}

func (e *Env) bind(pos Position, name string, f field.Field) error {
	if prev, ok := e.vars[name]; ok {
		return &RedefinedVariableError{Pos: pos, Name: name, First: prev.pos}
	}
	e.vars[name] = binding{field: f, pos: pos}
	return nil
}

func (e *Env) resolve(pos Position, name string) (field.Field, error) {
	b, ok := e.vars[name]
	if !ok {
		return field.Field{}, &UnboundVariableError{Pos: pos, Name: name}
	}
	return b.field, nil
}
