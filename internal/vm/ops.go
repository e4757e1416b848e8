package vm

import "math"

// Kernels apply one opcode over aligned slices. dst, a and b always have
// the same length.

type unaryKernel func(dst, a []float64)

type binaryKernel func(dst, a, b []float64)

func addKernel(dst, a, b []float64) {
	a, b = a[:len(dst)], b[:len(dst)]
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func subKernel(dst, a, b []float64) {
	a, b = a[:len(dst)], b[:len(dst)]
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

func mulKernel(dst, a, b []float64) {
	a, b = a[:len(dst)], b[:len(dst)]
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

// maxKernel keeps a only when a > b, so ties and NaN in a pick b.
func maxKernel(dst, a, b []float64) {
	a, b = a[:len(dst)], b[:len(dst)]
	for i := range dst {
		if a[i] > b[i] {
			dst[i] = a[i]
		} else {
			dst[i] = b[i]
		}
	}
}

// minKernel keeps a only when a < b, so ties and NaN in a pick b.
func minKernel(dst, a, b []float64) {
	a, b = a[:len(dst)], b[:len(dst)]
	for i := range dst {
		if a[i] < b[i] {
			dst[i] = a[i]
		} else {
			dst[i] = b[i]
		}
	}
}

func negKernel(dst, a []float64) {
	a = a[:len(dst)]
	for i := range dst {
		dst[i] = -a[i]
	}
}

func squareKernel(dst, a []float64) {
	a = a[:len(dst)]
	for i := range dst {
		dst[i] = a[i] * a[i]
	}
}

func sqrtKernel(dst, a []float64) {
	a = a[:len(dst)]
	for i := range dst {
		if a[i] >= 0 {
			dst[i] = math.Sqrt(a[i])
		} else {
			dst[i] = math.NaN()
		}
	}
}
