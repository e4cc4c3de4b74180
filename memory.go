package bbgo

// Memory is the module's linear memory as seen by the binder
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	ReadU32(offset uint32) (uint32, error)
	WriteU32(offset uint32, value uint32) error
	Zero(offset uint32, length uint32) error
}

// MemorySizer provides the current size of linear memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// Allocator allocates regions in linear memory through the module's own
// allocator exports. A region obtained from Alloc must be handed back to
// Free exactly once.
type Allocator interface {
	Alloc(size uint32) (uint32, error)
	Free(ptr uint32)
}
