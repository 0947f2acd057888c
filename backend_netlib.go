//go:build netlib

package embeval

import (
	"gonum.org/v1/netlib/blas/netlib"
)

// NetlibBackend is the name of the C BLAS backend.
const NetlibBackend = "netlib"

func init() {
	registerBackend(NetlibBackend, func() Backend {
		return blasBackend{name: NetlibBackend, impl: netlib.Implementation{}}
	})
}
