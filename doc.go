// Package embeval evaluates word embeddings on analogy questions.
//
// Given a question file with tuples a b c d grouped in categories, every
// tuple is answered by the vocabulary item closest (by cosine similarity)
// to normalize(a - b + d), with a, b and d themselves excluded. The
// accuracy is reported per category and in total.
//
// Scoring is exact and brute force. Queries are processed in blocks of at
// most Config.RowLimit rows, so that the similarity matrix of a block
// never exceeds RowLimit x vocabulary size entries. The block product is
// a single BLAS GEMM call on the selected backend. The default backend is
// gonum's pure Go BLAS; building with the netlib tag adds a backend that
// uses gonum's C BLAS binding. Binding to the right BLAS library can give
// nice performance improvements. The binding can be configured using CGO
// flags. For instance, to link against OpenBLAS on Linux:
//
//	CGO_LDFLAGS="-L/path/to/OpenBLAS -lopenblas" go build -tags netlib ./cmd/embeval
//
// or Accelerate on OS X:
//
//	CGO_LDFLAGS="-framework Accelerate" go build -tags netlib ./cmd/embeval
package embeval
