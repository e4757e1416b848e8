// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the render lifecycle (load program, evaluate,
// threshold, deliver to outputs), decoupled from any specific entrypoint like
// a CLI.
package app
