package embeval

import (
	"context"

	"github.com/shirou/gopsutil/v3/mem"
)

// MemoryProbe reports how many bytes can still be allocated.
type MemoryProbe interface {
	Available(ctx context.Context) (uint64, error)
}

// SystemMemory probes the memory that the operating system reports as
// available.
type SystemMemory struct{}

func (SystemMemory) Available(ctx context.Context) (uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}

	return vm.Available, nil
}

// blockBytes is the size of the buffers that the scorer allocates for
// blocks of rows queries against a vocabulary of vocab words with dims
// dimensions.
func blockBytes(rows, vocab, dims int) uint64 {
	const float32Size = 4
	return uint64(rows) * uint64(vocab+dims) * float32Size
}
