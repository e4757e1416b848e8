package config

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// RenderOverride adjusts the render settings read from configuration.
type RenderOverride func(r *Render)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths and translates it into
	// the format-agnostic model. A non-nil override runs on the render
	// settings before anything that refers to them is evaluated.
	Load(ctx context.Context, override RenderOverride, paths ...string) (*Model, error)
}

// Converter binds evaluated arguments to the Go input structs of sinks.
type Converter interface {
	// DecodeArguments populates target, a pointer to a struct whose fields
	// carry `arg` tags, from args.
	DecodeArguments(ctx context.Context, args map[string]cty.Value, target any) error
}
