package testmodule

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

func instantiate(t *testing.T) api.Module {
	t.Helper()
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	t.Cleanup(func() { _ = r.Close(ctx) })

	mod, err := r.Instantiate(ctx, Wasm())
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	return mod
}

func call(t *testing.T, mod api.Module, name string, params ...uint64) []uint64 {
	t.Helper()
	fn := mod.ExportedFunction(name)
	if fn == nil {
		t.Fatalf("missing export %s", name)
	}
	res, err := fn.Call(context.Background(), params...)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return res
}

func fr(v uint32) []byte {
	b := make([]byte, 32)
	binary.BigEndian.PutUint32(b[28:], v)
	return b
}

func frVec(vs ...uint32) []byte {
	b := binary.BigEndian.AppendUint32(nil, uint32(len(vs)))
	for _, v := range vs {
		b = append(b, fr(v)...)
	}
	return b
}

func TestWasmHeader(t *testing.T) {
	wasm := Wasm()
	if !bytes.HasPrefix(wasm, []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}) {
		t.Fatalf("bad header % x", wasm[:8])
	}
	if &Wasm()[0] != &wasm[0] {
		t.Error("Wasm should build once")
	}
}

func TestExports(t *testing.T) {
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	compiled, err := r.CompileModule(ctx, Wasm())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	exports := compiled.ExportedFunctions()
	for _, name := range []string{
		"bbmalloc", "bbfree", "live_allocs", "fr_add", "fr_sum",
		"fr_sum_with_index", "fr_sum_and_count", "fr_echo_vec", "echo_str",
		"fr_is_zero", "fail_with", "trap", "bad_vec_out", "bad_sig",
		"_initialize", "was_initialized",
	} {
		if _, ok := exports[name]; !ok {
			t.Errorf("missing export %s", name)
		}
	}
	if len(exports) != 16 {
		t.Errorf("expected 16 function exports, got %d", len(exports))
	}
	if _, ok := compiled.ExportedMemories()["memory"]; !ok {
		t.Error("memory not exported")
	}
}

func TestAllocator(t *testing.T) {
	mod := instantiate(t)

	a := uint32(call(t, mod, "bbmalloc", 10)[0])
	b := uint32(call(t, mod, "bbmalloc", 3)[0])
	if a != HeapBase {
		t.Errorf("first allocation at %d, want %d", a, HeapBase)
	}
	if b != HeapBase+16 {
		t.Errorf("second allocation at %d, want 8-byte aligned %d", b, HeapBase+16)
	}
	if n := call(t, mod, "live_allocs")[0]; n != 2 {
		t.Errorf("live = %d, want 2", n)
	}

	call(t, mod, "bbfree", uint64(a))
	call(t, mod, "bbfree", uint64(b))
	if n := call(t, mod, "live_allocs")[0]; n != 0 {
		t.Errorf("live = %d, want 0", n)
	}
	if c := uint32(call(t, mod, "bbmalloc", 1)[0]); c != HeapBase {
		t.Errorf("heap not reset, got %d", c)
	}

	if p := call(t, mod, "bbmalloc", MemoryBytes)[0]; p != 0 {
		t.Errorf("oversized allocation should return 0, got %d", p)
	}
}

func TestFrArithmetic(t *testing.T) {
	mod := instantiate(t)
	mem := mod.Memory()

	const in0, in1, out = 4096, 8192, 12288
	mem.Write(in0, fr(4))
	mem.Write(in1, fr(8))
	call(t, mod, "fr_add", in0, in1, out)
	got, _ := mem.Read(out, 32)
	if !bytes.Equal(got, fr(12)) {
		t.Errorf("fr_add = % x", got)
	}

	mem.Write(in0, frVec(4, 8, 12))
	call(t, mod, "fr_sum", in0, out)
	got, _ = mem.Read(out, 32)
	if !bytes.Equal(got, fr(24)) {
		t.Errorf("fr_sum = % x", got)
	}

	mem.Write(in1, []byte{0, 0, 0, 2})
	call(t, mod, "fr_sum_with_index", in0, in1, out)
	got, _ = mem.Read(out, 32)
	if !bytes.Equal(got, fr(24+2*IndexWeight)) {
		t.Errorf("fr_sum_with_index = % x", got)
	}

	call(t, mod, "fr_sum_and_count", in0, out, out+64)
	got, _ = mem.Read(out, 32)
	if !bytes.Equal(got, fr(24)) {
		t.Errorf("sum = % x", got)
	}
	count, _ := mem.Read(out+64, 4)
	if !bytes.Equal(count, []byte{0, 0, 0, 3}) {
		t.Errorf("count = % x", count)
	}
}

func TestFrIsZero(t *testing.T) {
	mod := instantiate(t)
	mem := mod.Memory()

	mem.Write(4096, fr(0))
	call(t, mod, "fr_is_zero", 4096, 8192)
	if b, _ := mem.ReadByte(8192); b != 1 {
		t.Errorf("zero: got %d", b)
	}

	mem.Write(4096, fr(5))
	call(t, mod, "fr_is_zero", 4096, 8192)
	if b, _ := mem.ReadByte(8192); b != 0 {
		t.Errorf("non-zero: got %d", b)
	}
}

func TestEcho(t *testing.T) {
	mod := instantiate(t)
	mem := mod.Memory()

	vec := frVec(1, 2)
	mem.Write(4096, vec)
	call(t, mod, "fr_echo_vec", 4096, 8192)
	ptr, _ := mem.ReadUint32Le(8192)
	if ptr < HeapBase {
		t.Fatalf("bad output pointer %d", ptr)
	}
	got, _ := mem.Read(ptr, uint32(len(vec)))
	if !bytes.Equal(got, vec) {
		t.Errorf("echo vec = % x", got)
	}
	call(t, mod, "bbfree", uint64(ptr))

	str := append(binary.BigEndian.AppendUint32(nil, 5), "hello"...)
	mem.Write(4096, str)
	call(t, mod, "echo_str", 4096, 8192)
	ptr, _ = mem.ReadUint32Le(8192)
	got, _ = mem.Read(ptr, uint32(len(str)))
	if !bytes.Equal(got, str) {
		t.Errorf("echo str = % x", got)
	}
	call(t, mod, "bbfree", uint64(ptr))

	if n := call(t, mod, "live_allocs")[0]; n != 0 {
		t.Errorf("live = %d after frees", n)
	}
}

func TestEchoOutOfMemory(t *testing.T) {
	mod := instantiate(t)
	mem := mod.Memory()

	mem.Write(4096, []byte{0x00, 0x10, 0x00, 0x00}) // 1M elements
	mem.WriteUint32Le(8192, 0xdeadbeef)
	call(t, mod, "fr_echo_vec", 4096, 8192)
	if ptr, _ := mem.ReadUint32Le(8192); ptr != 0 {
		t.Errorf("expected null output pointer, got %#x", ptr)
	}
}

func TestFailures(t *testing.T) {
	mod := instantiate(t)
	mem := mod.Memory()

	mem.Write(4096, []byte{0, 0, 0, 7})
	if status := call(t, mod, "fail_with", 4096)[0]; status != 7 {
		t.Errorf("status = %d", status)
	}

	if _, err := mod.ExportedFunction("trap").Call(context.Background()); err == nil {
		t.Error("trap should fail")
	}

	call(t, mod, "bad_vec_out", 8192)
	ptr, _ := mem.ReadUint32Le(8192)
	prefix, _ := mem.Read(ptr, 4)
	if binary.BigEndian.Uint32(prefix) != 0xffffff00 {
		t.Errorf("prefix = % x", prefix)
	}
}

func TestInitialize(t *testing.T) {
	mod := instantiate(t)
	if v := call(t, mod, "was_initialized")[0]; v != 0 {
		t.Fatalf("initialized before _initialize")
	}
	call(t, mod, "_initialize")
	if v := call(t, mod, "was_initialized")[0]; v != 1 {
		t.Errorf("was_initialized = %d", v)
	}
}
