package embeval

import (
	"math"

	"github.com/viterin/vek/vek32"
)

// NormalizeRows scales every row of m to unit L2 norm, in place. Rows
// without a positive, finite norm are set to zero. Returns the number of
// zero rows.
func NormalizeRows(m *Matrix) int {
	zero := 0
	for i := 0; i < m.Rows; i++ {
		if !normalize(m.Row(i)) {
			zero++
		}
	}

	return zero
}

// normalize scales vec to unit length. If vec has no usable length, it is
// zeroed and false is returned.
func normalize(vec []float32) bool {
	if len(vec) == 0 {
		return false
	}

	vecLen := vek32.Norm(vec)
	if !usableNorm(vecLen) {
		clear(vec)
		return false
	}

	vek32.MulNumber_Inplace(vec, 1/vecLen)

	return true
}

func usableNorm(n float32) bool {
	f := float64(n)
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
