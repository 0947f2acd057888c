package embeval

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/gonum"
)

// DefaultBackend is the name of the pure Go BLAS backend.
const DefaultBackend = "gonum"

// Backend computes the matrix products used for scoring.
type Backend interface {
	// Name returns the name under which the backend is selected.
	Name() string

	// MulTrans computes c = a · bᵗ, where a is m x k, b is n x k and c is
	// m x n. All matrices are dense and row-major.
	MulTrans(m, n, k int, a, b, c []float32)
}

// blasBackend runs products through a float32 level 3 BLAS implementation.
type blasBackend struct {
	name string
	impl blas.Float32Level3
}

func (b blasBackend) Name() string {
	return b.name
}

func (b blasBackend) MulTrans(m, n, k int, a, bm, c []float32) {
	if m == 0 || n == 0 {
		return
	}

	b.impl.Sgemm(blas.NoTrans, blas.Trans, m, n, k, 1, a, k, bm, k, 0, c, n)
}

var backends = map[string]func() Backend{
	DefaultBackend: func() Backend {
		return blasBackend{name: DefaultBackend, impl: gonum.Implementation{}}
	},
}

// registerBackend makes a backend available to NewBackend. It is only
// called from init functions.
func registerBackend(name string, f func() Backend) {
	backends[name] = f
}

// NewBackend returns the backend with the given name. An empty name
// selects DefaultBackend.
func NewBackend(name string) (Backend, error) {
	if name == "" {
		name = DefaultBackend
	}

	f, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownBackend, name, Backends())
	}

	return f(), nil
}

// Backends returns the names of the available backends.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
