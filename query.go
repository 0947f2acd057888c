package embeval

import (
	"github.com/viterin/vek/vek32"
)

// Tuple is an analogy question resolved to vocabulary indices: A is to B
// as C is to D. C is the expected answer.
type Tuple struct {
	A, B, C, D int
}

// BuildQuery writes normalize(m[A] - m[B] + m[D]) to dst, which must have
// m.Cols elements. If the sum has zero length, dst becomes the zero
// vector.
func BuildQuery(m *Matrix, t Tuple, dst []float32) {
	copy(dst, m.Row(t.A))
	vek32.Sub_Inplace(dst, m.Row(t.B))
	vek32.Add_Inplace(dst, m.Row(t.D))
	normalize(dst)
}

// BuildQueries builds the query of tuples[i] in row i of dst. dst must
// have at least len(tuples) rows and m.Cols columns.
func BuildQueries(m *Matrix, tuples []Tuple, dst *Matrix) {
	for i, t := range tuples {
		BuildQuery(m, t, dst.Row(i))
	}
}
