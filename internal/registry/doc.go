// Package registry provides the central "glue" for the module system.
//
// The Registry maps the names used in configuration (an output block's kind,
// a `format` argument) to the compiled Go encoders and sinks that implement
// them. Modules contribute entries through Module.Register.
//
// During application startup the registry is populated and then validated:
// sink input structs must carry well-formed `arg` tags with types cty can
// convert into, and every output kind the job configuration names must have a
// registered sink.
package registry
