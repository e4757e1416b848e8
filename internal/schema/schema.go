// Package schema holds the HCL decoding targets for render job files.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Render represents the `render` block. Unset attributes stay nil so that
// defaults and command-line overrides can be told apart from explicit values.
type Render struct {
	Program   *string `hcl:"program,optional"`
	Size      *int    `hcl:"size,optional"`
	Workers   *int    `hcl:"workers,optional"`
	ChunkSize *int    `hcl:"chunk_size,optional"`
}

// Output represents an `output "<kind>" "<name>"` block. Its body is kept
// raw and evaluated once the render settings are known.
type Output struct {
	Kind string   `hcl:"kind,label"`
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// File represents the top-level structure of one job file.
type File struct {
	Render  *Render   `hcl:"render,block"`
	Outputs []*Output `hcl:"output,block"`
}
