package transcoder

import (
	"sync"

	bbgo "github.com/wippyai/bbgo"
)

type Memory = bbgo.Memory
type Allocator = bbgo.Allocator

type Allocation struct {
	Ptr  uint32
	Size uint32
}

// AllocationList records every region a call owns so that all of them can
// be freed on any exit path.
type AllocationList struct {
	allocations []Allocation
}

var allocationListPool = sync.Pool{
	New: func() any {
		return &AllocationList{allocations: make([]Allocation, 0, 8)}
	},
}

func NewAllocationList() *AllocationList {
	return allocationListPool.Get().(*AllocationList)
}

const maxPooledAllocationCapacity = 128

// Release returns to pool. Must call after Free(); list invalid after Release.
func (al *AllocationList) Release() {
	if cap(al.allocations) > maxPooledAllocationCapacity {
		return
	}
	al.Reset()
	allocationListPool.Put(al)
}

func (al *AllocationList) FreeAndRelease(allocator Allocator) {
	al.Free(allocator)
	al.Release()
}

func (al *AllocationList) Add(ptr, size uint32) {
	al.allocations = append(al.allocations, Allocation{Ptr: ptr, Size: size})
}

// Free releases the recorded regions in reverse order of allocation.
func (al *AllocationList) Free(allocator Allocator) {
	if allocator == nil {
		return
	}
	for i := len(al.allocations) - 1; i >= 0; i-- {
		if p := al.allocations[i].Ptr; p != 0 {
			allocator.Free(p)
		}
	}
	al.allocations = al.allocations[:0]
}

func (al *AllocationList) Reset() {
	al.allocations = al.allocations[:0]
}

func (al *AllocationList) Count() int {
	return len(al.allocations)
}

// Bytes returns the total size of the recorded regions.
func (al *AllocationList) Bytes() uint32 {
	var n uint32
	for _, a := range al.allocations {
		n += a.Size
	}
	return n
}
