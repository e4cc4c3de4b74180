// Package testmodule assembles a small WebAssembly module that follows
// barretenberg's export conventions, for tests that need a live instance.
//
// Field elements are treated as 32-byte big-endian numbers of which only the
// low 32 bits take part in arithmetic, which keeps every result a valid
// scalar while staying easy to check by hand.
//
// Exports:
//
//	bbmalloc(size) -> ptr          bump allocator, 0 when memory is exhausted
//	bbfree(ptr)                    heap resets once every region is freed
//	live_allocs() -> i32           regions allocated and not freed
//	fr_add(a, b, out)              out = a + b
//	fr_sum(vec, out)               out = sum of vec
//	fr_sum_with_index(vec, i, out) out = sum + i*65536
//	fr_sum_and_count(vec, s, n)    s = sum, n = element count (u32)
//	fr_echo_vec(vec, out)          *out = module-allocated copy of vec
//	echo_str(str, out)             *out = module-allocated copy of str
//	fr_is_zero(a, out)             out = a == 0 (bool)
//	fail_with(code) -> status      returns the u32 code as status
//	trap()                         unreachable
//	bad_vec_out(out)               *out = vector claiming 0xffffff00 elements
//	bad_sig(i64)                   not pointer convention
//	_initialize()                  sets the flag read by was_initialized
//	was_initialized() -> i32
package testmodule

import "sync"

const (
	// HeapBase is the first address the allocator hands out.
	HeapBase = 1024
	// MemoryPages is the fixed size of linear memory.
	MemoryPages = 2
	// MemoryBytes is the allocator's upper bound.
	MemoryBytes = MemoryPages * 65536
	// IndexWeight scales the index of fr_sum_with_index.
	IndexWeight = 65536
)

// Globals.
const (
	globalHeap = iota
	globalLive
	globalInit
)

// Types.
const (
	typeI32toI32 = iota
	typeI32
	typeToI32
	typeI32x3
	typeI32x2
	typeVoid
	typeI64
)

// Function indices.
const (
	fnMalloc = iota
	fnFree
	fnLiveAllocs
	fnFrAdd
	fnFrSum
	fnFrSumWithIndex
	fnFrSumAndCount
	fnFrEchoVec
	fnEchoStr
	fnFrIsZero
	fnFailWith
	fnTrap
	fnBadVecOut
	fnBadSig
	fnInitialize
	fnWasInitialized
	fnSumVec // internal
	fnWriteFr
	fnCount
)

var (
	wasmOnce  sync.Once
	wasmBytes []byte
)

// Wasm returns the module binary. The returned slice must not be modified.
func Wasm() []byte {
	wasmOnce.Do(func() {
		wasmBytes = build()
	})
	return wasmBytes
}

type function struct {
	name   string // empty for internal functions
	typ    uint32
	locals uint32 // extra i32 locals
	body   func(c *code)
}

func functions() [fnCount]function {
	return [fnCount]function{
		fnMalloc:         {"bbmalloc", typeI32toI32, 1, bodyMalloc},
		fnFree:           {"bbfree", typeI32, 0, bodyFree},
		fnLiveAllocs:     {"live_allocs", typeToI32, 0, func(c *code) { c.gget(globalLive) }},
		fnFrAdd:          {"fr_add", typeI32x3, 0, bodyFrAdd},
		fnFrSum:          {"fr_sum", typeI32x2, 0, bodyFrSum},
		fnFrSumWithIndex: {"fr_sum_with_index", typeI32x3, 0, bodyFrSumWithIndex},
		fnFrSumAndCount:  {"fr_sum_and_count", typeI32x3, 1, bodyFrSumAndCount},
		fnFrEchoVec:      {"fr_echo_vec", typeI32x2, 2, echoBody(32)},
		fnEchoStr:        {"echo_str", typeI32x2, 2, echoBody(1)},
		fnFrIsZero:       {"fr_is_zero", typeI32x2, 0, bodyFrIsZero},
		fnFailWith:       {"fail_with", typeI32toI32, 0, func(c *code) { c.loadBE32(0, 0) }},
		fnTrap:           {"trap", typeVoid, 0, func(c *code) { c.op(opUnreachable) }},
		fnBadVecOut:      {"bad_vec_out", typeI32, 1, bodyBadVecOut},
		fnBadSig:         {"bad_sig", typeI64, 0, func(*code) {}},
		fnInitialize:     {"_initialize", typeVoid, 0, func(c *code) { c.i32(1); c.gset(globalInit) }},
		fnWasInitialized: {"was_initialized", typeToI32, 0, func(c *code) { c.gget(globalInit) }},
		fnSumVec:         {"", typeI32toI32, 4, bodySumVec},
		fnWriteFr:        {"", typeI32x2, 0, bodyWriteFr},
	}
}

func build() []byte {
	var w writer
	w.Byte(0x00, 0x61, 0x73, 0x6d) // magic
	w.Byte(0x01, 0x00, 0x00, 0x00) // version

	// Type section
	typeSigs := [][2][]byte{
		typeI32toI32: {{valI32}, {valI32}},
		typeI32:      {{valI32}, nil},
		typeToI32:    {nil, {valI32}},
		typeI32x3:    {{valI32, valI32, valI32}, nil},
		typeI32x2:    {{valI32, valI32}, nil},
		typeVoid:     {nil, nil},
		typeI64:      {{valI64}, nil},
	}
	var sec writer
	sec.WriteU32(uint32(len(typeSigs)))
	for _, sig := range typeSigs {
		sec.Byte(0x60)
		for _, vals := range sig {
			sec.WriteU32(uint32(len(vals)))
			sec.WriteBytes(vals)
		}
	}
	w.Section(1, &sec)

	fns := functions()

	// Function section
	sec = writer{}
	sec.WriteU32(uint32(len(fns)))
	for _, fn := range fns {
		sec.WriteU32(fn.typ)
	}
	w.Section(3, &sec)

	// Memory section
	sec = writer{}
	sec.WriteU32(1)
	sec.Byte(0x00) // min only
	sec.WriteU32(MemoryPages)
	w.Section(5, &sec)

	// Global section
	sec = writer{}
	inits := []int32{globalHeap: HeapBase, globalLive: 0, globalInit: 0}
	sec.WriteU32(uint32(len(inits)))
	for _, v := range inits {
		sec.Byte(valI32, 0x01) // mutable
		sec.Byte(opI32Const)
		sec.WriteS64(int64(v))
		sec.Byte(opEnd)
	}
	w.Section(6, &sec)

	// Export section
	sec = writer{}
	exported := 1 // memory
	for _, fn := range fns {
		if fn.name != "" {
			exported++
		}
	}
	sec.WriteU32(uint32(exported))
	sec.WriteName("memory")
	sec.Byte(0x02)
	sec.WriteU32(0)
	for i, fn := range fns {
		if fn.name == "" {
			continue
		}
		sec.WriteName(fn.name)
		sec.Byte(0x00)
		sec.WriteU32(uint32(i))
	}
	w.Section(7, &sec)

	// Code section
	sec = writer{}
	sec.WriteU32(uint32(len(fns)))
	for _, fn := range fns {
		var body code
		if fn.locals > 0 {
			body.w.WriteU32(1)
			body.w.WriteU32(fn.locals)
			body.w.Byte(valI32)
		} else {
			body.w.WriteU32(0)
		}
		fn.body(&body)
		body.op(opEnd)
		sec.WriteU32(uint32(len(body.w.Bytes())))
		sec.WriteBytes(body.w.Bytes())
	}
	w.Section(10, &sec)

	out := make([]byte, len(w.Bytes()))
	copy(out, w.Bytes())
	return out
}

// bbmalloc(size) with local 1 = ptr
func bodyMalloc(c *code) {
	c.gget(globalHeap)
	c.i32(7)
	c.op(opI32Add)
	c.i32(-8)
	c.op(opI32And)
	c.set(1)

	// size > MemoryBytes - ptr
	c.get(0)
	c.i32(MemoryBytes)
	c.get(1)
	c.op(opI32Sub)
	c.op(opI32GtU)
	c.op(opIf, blockEmpty)
	c.i32(0)
	c.op(opReturn)
	c.op(opEnd)

	c.get(1)
	c.get(0)
	c.op(opI32Add)
	c.gset(globalHeap)

	c.gget(globalLive)
	c.i32(1)
	c.op(opI32Add)
	c.gset(globalLive)

	c.get(1)
}

func bodyFree(c *code) {
	c.gget(globalLive)
	c.i32(1)
	c.op(opI32Sub)
	c.gset(globalLive)

	c.gget(globalLive)
	c.op(opI32Eqz)
	c.op(opIf, blockEmpty)
	c.i32(HeapBase)
	c.gset(globalHeap)
	c.op(opEnd)
}

// sum_vec(vec) -> i32 with locals 1 = count, 2 = i, 3 = acc, 4 = p
func bodySumVec(c *code) {
	c.loadBE32(0, 0)
	c.set(1)
	c.i32(0)
	c.set(2)
	c.i32(0)
	c.set(3)
	c.get(0)
	c.i32(4)
	c.op(opI32Add)
	c.set(4)

	c.op(opBlock, blockEmpty)
	c.op(opLoop, blockEmpty)
	c.get(2)
	c.get(1)
	c.op(opI32GeU)
	c.op(opBrIf, 1)

	c.get(3)
	c.loadBE32(4, 28)
	c.op(opI32Add)
	c.set(3)

	c.get(4)
	c.i32(32)
	c.op(opI32Add)
	c.set(4)

	c.get(2)
	c.i32(1)
	c.op(opI32Add)
	c.set(2)

	c.op(opBr, 0)
	c.op(opEnd)
	c.op(opEnd)

	c.get(3)
}

// write_fr(out, v) stores v as a 32-byte big-endian field element.
func bodyWriteFr(c *code) {
	for _, off := range []uint32{0, 8, 16} {
		c.get(0)
		c.i64(0)
		c.mem(opI64Store, 3, off)
	}
	c.get(0)
	c.i32(0)
	c.mem(opI32Store, 2, 24)
	c.storeBE32(0, 28, 1)
}

func bodyFrAdd(c *code) {
	c.get(2)
	c.loadBE32(0, 28)
	c.loadBE32(1, 28)
	c.op(opI32Add)
	c.call(fnWriteFr)
}

func bodyFrSum(c *code) {
	c.get(1)
	c.get(0)
	c.call(fnSumVec)
	c.call(fnWriteFr)
}

func bodyFrSumWithIndex(c *code) {
	c.get(2)
	c.get(0)
	c.call(fnSumVec)
	c.loadBE32(1, 0)
	c.i32(IndexWeight)
	c.op(opI32Mul)
	c.op(opI32Add)
	c.call(fnWriteFr)
}

// local 3 = count
func bodyFrSumAndCount(c *code) {
	c.get(1)
	c.get(0)
	c.call(fnSumVec)
	c.call(fnWriteFr)

	c.loadBE32(0, 0)
	c.set(3)
	c.storeBE32(2, 0, 3)
}

// echoBody copies a length-prefixed value of elemSize-byte elements into a
// fresh allocation and stores its pointer in the output slot.
// Locals 2 = size, 3 = ptr.
func echoBody(elemSize int32) func(c *code) {
	return func(c *code) {
		c.loadBE32(0, 0)
		if elemSize != 1 {
			c.i32(elemSize)
			c.op(opI32Mul)
		}
		c.i32(4)
		c.op(opI32Add)
		c.set(2)

		c.get(2)
		c.call(fnMalloc)
		c.set(3)

		c.get(3)
		c.op(opI32Eqz)
		c.op(opIf, blockEmpty)
		c.get(1)
		c.i32(0)
		c.mem(opI32Store, 2, 0)
		c.op(opReturn)
		c.op(opEnd)

		c.get(3)
		c.get(0)
		c.get(2)
		c.op(opPrefixFC)
		c.w.WriteU32(opMemoryCopy)
		c.op(0x00, 0x00)

		c.get(1)
		c.get(3)
		c.mem(opI32Store, 2, 0)
	}
}

func bodyFrIsZero(c *code) {
	c.get(1)
	for i, off := range []uint32{0, 8, 16, 24} {
		c.get(0)
		c.mem(opI64Load, 3, off)
		if i > 0 {
			c.op(opI64Or)
		}
	}
	c.op(opI64Eqz)
	c.mem(opI32Store8, 0, 0)
}

// local 1 = ptr
func bodyBadVecOut(c *code) {
	c.i32(4)
	c.call(fnMalloc)
	c.set(1)

	// bytes ff ff ff 00 as a little-endian store
	c.get(1)
	c.i32(0x00ffffff)
	c.mem(opI32Store, 2, 0)

	c.get(0)
	c.get(1)
	c.mem(opI32Store, 2, 0)
}
