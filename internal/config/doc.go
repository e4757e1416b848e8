// Package config defines the format-agnostic render job model, along with
// the core interfaces (Loader, Converter) for loading it and for binding
// output arguments to Go structs.
//
// The `config.Model` is the single source of truth for the `app` package.
// Concrete implementations of the interfaces, such as for HCL, are provided in
// separate packages.
package config
