// Package cli turns gridvm's command line into an app.Config.
//
// A run needs a PROGRAM argument, a -config job file, or both. Flags that are
// set (-size, -workers, -chunk-size, the positional program) override the job
// file's render block. -o/-output adds a file output next to the job's own
// outputs. Usage errors come back as *ExitError with code 2.
package cli
