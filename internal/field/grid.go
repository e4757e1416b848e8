package field

// Axis returns n evenly spaced values covering [-1, 1] inclusive. A
// one-sample axis is the single value -1.
func Axis(n int) []float64 {
	axis := make([]float64, n)
	if n == 1 {
		axis[0] = -1
		return axis
	}
	for i := range axis {
		axis[i] = -1 + 2*float64(i)/float64(n-1)
	}
	return axis
}

// Grid returns the X and Y coordinate fields of an n×n domain. X varies
// along columns, Y along rows with row 0 at the top (y = 1).
// It panics if n is not positive.
func Grid(n int) (x, y Field) {
	if n <= 0 {
		panic("field: grid size must be positive")
	}
	axis := Axis(n)
	xs := make([]float64, n*n)
	ys := make([]float64, n*n)
	for row := 0; row < n; row++ {
		base := row * n
		for col := 0; col < n; col++ {
			xs[base+col] = axis[col]
			ys[base+col] = -axis[row]
		}
	}
	return Field{size: n, samples: xs}, Field{size: n, samples: ys}
}
