package testmodule

import "bytes"

// writer is a minimal WebAssembly binary writer.
type writer struct {
	buf bytes.Buffer
}

func (w *writer) Bytes() []byte {
	return w.buf.Bytes()
}

func (w *writer) Byte(b ...byte) {
	w.buf.Write(b)
}

func (w *writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// WriteU32 writes an unsigned LEB128 encoded uint32.
func (w *writer) WriteU32(v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf.WriteByte(b)
		if v == 0 {
			break
		}
	}
}

// WriteS64 writes a signed LEB128 encoded int64.
func (w *writer) WriteS64(v int64) {
	more := true
	for more {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && (b&0x40) == 0) || (v == -1 && (b&0x40) != 0) {
			more = false
		} else {
			b |= 0x80
		}
		w.buf.WriteByte(b)
	}
}

func (w *writer) WriteName(s string) {
	w.WriteU32(uint32(len(s)))
	w.buf.WriteString(s)
}

func (w *writer) Section(id byte, body *writer) {
	w.Byte(id)
	w.WriteU32(uint32(body.buf.Len()))
	w.WriteBytes(body.Bytes())
}

// Opcodes used by the module's function bodies.
const (
	opUnreachable = 0x00
	opBlock       = 0x02
	opLoop        = 0x03
	opIf          = 0x04
	opEnd         = 0x0b
	opBr          = 0x0c
	opBrIf        = 0x0d
	opReturn      = 0x0f
	opCall        = 0x10
	opLocalGet    = 0x20
	opLocalSet    = 0x21
	opGlobalGet   = 0x23
	opGlobalSet   = 0x24
	opI32Load     = 0x28
	opI64Load     = 0x29
	opI32Load8U   = 0x2d
	opI32Store    = 0x36
	opI64Store    = 0x37
	opI32Store8   = 0x3a
	opI32Const    = 0x41
	opI64Const    = 0x42
	opI32Eqz      = 0x45
	opI32GeU      = 0x4f
	opI32GtU      = 0x4b
	opI64Eqz      = 0x50
	opI32Add      = 0x6a
	opI32Sub      = 0x6b
	opI32Mul      = 0x6c
	opI32And      = 0x71
	opI32Or       = 0x72
	opI32Shl      = 0x74
	opI32ShrU     = 0x76
	opI64Or       = 0x84
	opPrefixFC    = 0xfc
	opMemoryCopy  = 10 // after 0xfc

	blockEmpty = 0x40

	valI32 = 0x7f
	valI64 = 0x7e
)

// code assembles one function body.
type code struct {
	w writer
}

func (c *code) op(b ...byte) { c.w.Byte(b...) }
func (c *code) i32(v int32) { c.op(opI32Const); c.w.WriteS64(int64(v)) }
func (c *code) i64(v int64) { c.op(opI64Const); c.w.WriteS64(v) }
func (c *code) get(local uint32) { c.op(opLocalGet); c.w.WriteU32(local) }
func (c *code) set(local uint32) { c.op(opLocalSet); c.w.WriteU32(local) }
func (c *code) gget(global uint32) { c.op(opGlobalGet); c.w.WriteU32(global) }
func (c *code) gset(global uint32) { c.op(opGlobalSet); c.w.WriteU32(global) }
func (c *code) call(fn uint32) { c.op(opCall); c.w.WriteU32(fn) }
func (c *code) mem(op byte, align, offset uint32) {
	c.op(op)
	c.w.WriteU32(align)
	c.w.WriteU32(offset)
}

// loadBE32 pushes the big-endian u32 at local+offset.
func (c *code) loadBE32(local, offset uint32) {
	for i := uint32(0); i < 4; i++ {
		c.get(local)
		c.mem(opI32Load8U, 0, offset+i)
		if shift := 24 - 8*int32(i); shift > 0 {
			c.i32(shift)
			c.op(opI32Shl)
		}
		if i > 0 {
			c.op(opI32Or)
		}
	}
}

// storeBE32 writes the value of local v big-endian at addr+offset.
func (c *code) storeBE32(addr, offset, v uint32) {
	for i := uint32(0); i < 4; i++ {
		c.get(addr)
		c.get(v)
		if shift := 24 - 8*int32(i); shift > 0 {
			c.i32(shift)
			c.op(opI32ShrU)
		}
		c.mem(opI32Store8, 0, offset+i)
	}
}
