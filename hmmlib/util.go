package hmmlib

// NullState marks a backpointer that has no predecessor, either at t=0 or
// because every candidate path into the state has probability zero.
const NullState int = -1

// bestIndex returns the first index of the largest strictly positive value
// in x, scanning in order and replacing the running best only on a strict
// increase.  It returns NullState and 0 if no value is positive.
func bestIndex(x []float64) (int, float64) {

	j := NullState
	v := 0.0
	for i := range x {
		if x[i] > v {
			v = x[i]
			j = i
		}
	}

	return j, v
}

// makeIntArray makes a collection of r slices
// of length c, packed contiguously.
func makeIntArray(r, c int) [][]int {

	bka := make([]int, r*c)
	x := make([][]int, r)
	ii := 0
	for j := 0; j < r; j++ {
		x[j] = bka[ii : ii+c]
		ii += c
	}

	return x
}

// makeFloatArray makes a collection of r slices
// of length c, packed contiguously.
func makeFloatArray(r, c int) [][]float64 {

	bka := make([]float64, r*c)
	x := make([][]float64, r)
	ii := 0
	for j := 0; j < r; j++ {
		x[j] = bka[ii : ii+c]
		ii += c
	}

	return x
}
