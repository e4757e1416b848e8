package field

import "fmt"

// Field is an N×N grid of samples. The zero value is an empty field of size 0.
type Field struct {
	size    int
	samples []float64
}

// FromSamples wraps samples as a size×size field. The field takes ownership
// of the slice; callers must not modify it afterwards.
func FromSamples(size int, samples []float64) (Field, error) {
	if size < 0 {
		return Field{}, fmt.Errorf("field size must not be negative, got %d", size)
	}
	if len(samples) != size*size {
		return Field{}, fmt.Errorf("field of size %d needs %d samples, got %d", size, size*size, len(samples))
	}
	return Field{size: size, samples: samples}, nil
}

// Constant returns a size×size field with every sample set to v.
func Constant(size int, v float64) Field {
	samples := make([]float64, size*size)
	for i := range samples {
		samples[i] = v
	}
	return Field{size: size, samples: samples}
}

// Size returns N for an N×N field.
func (f Field) Size() int { return f.size }

// Len returns the number of samples, N².
func (f Field) Len() int { return len(f.samples) }

// At returns the sample at (row, col).
func (f Field) At(row, col int) float64 {
	return f.samples[row*f.size+col]
}

// Sample returns the i-th sample in row-major order.
func (f Field) Sample(i int) float64 { return f.samples[i] }

// Row returns a copy of one row.
func (f Field) Row(row int) []float64 {
	out := make([]float64, f.size)
	copy(out, f.samples[row*f.size:(row+1)*f.size])
	return out
}

// Equal reports whether both fields have the same size and every sample
// compares equal with ==. A NaN sample never equals anything.
func (f Field) Equal(o Field) bool {
	if f.size != o.size || len(f.samples) != len(o.samples) {
		return false
	}
	for i, v := range f.samples {
		if v != o.samples[i] {
			return false
		}
	}
	return true
}

// Same reports whether f and o share the same backing storage, i.e. one is
// a by-reference binding of the other.
func (f Field) Same(o Field) bool {
	if len(f.samples) == 0 || len(o.samples) == 0 {
		return len(f.samples) == len(o.samples) && f.size == o.size
	}
	return f.size == o.size && &f.samples[0] == &o.samples[0]
}

// View returns samples [lo, hi) without copying. The returned slice aliases
// the field and must not be modified.
func (f Field) View(lo, hi int) []float64 {
	return f.samples[lo:hi:hi]
}
