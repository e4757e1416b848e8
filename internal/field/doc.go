// Package field defines Field, the dense N×N grid of float64 samples that
// every VM instruction produces, and the coordinate grid generator that
// seeds evaluation with the X and Y fields.
//
// A Field is immutable once built. Samples are stored row-major in a single
// flat slice, so element-wise operations can treat a Field as a plain index
// space of N² samples.
package field
