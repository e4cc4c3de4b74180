package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tetratelabs/wazero/api"

	bberrors "github.com/wippyai/bbgo/errors"
	"github.com/wippyai/bbgo/internal/testmodule"
)

// emptyModule is a valid module with no exports.
var emptyModule = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func newInstance(t *testing.T) (*WazeroModule, *WazeroInstance) {
	t.Helper()
	ctx := context.Background()

	eng, err := NewWazeroEngine(ctx)
	if err != nil {
		t.Fatalf("NewWazeroEngine failed: %v", err)
	}
	t.Cleanup(func() { _ = eng.Close(ctx) })

	mod, err := eng.LoadModule(ctx, testmodule.Wasm())
	if err != nil {
		t.Fatalf("LoadModule failed: %v", err)
	}
	inst, err := mod.Instantiate(ctx)
	if err != nil {
		t.Fatalf("Instantiate failed: %v", err)
	}
	t.Cleanup(func() { _ = inst.Close(ctx) })
	return mod, inst
}

func TestNewWazeroEngineWithConfig(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		cfg         *Config
		name        string
		concurrency uint32
	}{
		{nil, "nil config", 1},
		{&Config{}, "default config", 1},
		{&Config{MemoryLimitPages: 256}, "16MB limit", 1},
		{&Config{HardwareConcurrency: 8}, "concurrency", 8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			engine, err := NewWazeroEngineWithConfig(ctx, tc.cfg)
			if err != nil {
				t.Fatalf("NewWazeroEngineWithConfig failed: %v", err)
			}
			defer engine.Close(ctx)

			if engine.runtime == nil {
				t.Error("engine runtime should not be nil")
			}
			if engine.cfg.HardwareConcurrency != tc.concurrency {
				t.Errorf("expected concurrency %d, got %d", tc.concurrency, engine.cfg.HardwareConcurrency)
			}
		})
	}
}

func TestLoadModule_InvalidBinary(t *testing.T) {
	ctx := context.Background()
	engine, _ := NewWazeroEngine(ctx)
	defer engine.Close(ctx)

	_, err := engine.LoadModule(ctx, []byte("not wasm"))
	if err == nil {
		t.Fatal("expected error for invalid binary")
	}
	var e *bberrors.Error
	if !errors.As(err, &e) || e.Phase != bberrors.PhaseLoad {
		t.Errorf("expected load error, got %v", err)
	}
}

func TestLoadModule_MissingAllocator(t *testing.T) {
	ctx := context.Background()
	engine, _ := NewWazeroEngine(ctx)
	defer engine.Close(ctx)

	_, err := engine.LoadModule(ctx, emptyModule)
	var e *bberrors.Error
	if !errors.As(err, &e) || e.Kind != bberrors.KindNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestLoadModule_ConfiguredAllocator(t *testing.T) {
	ctx := context.Background()
	engine, _ := NewWazeroEngineWithConfig(ctx, &Config{AllocExport: "my_alloc"})
	defer engine.Close(ctx)

	if _, err := engine.LoadModule(ctx, testmodule.Wasm()); err == nil {
		t.Fatal("expected error for missing configured allocator")
	}
}

func TestModule_Exports(t *testing.T) {
	mod, _ := newInstance(t)

	exports := mod.Exports()
	if len(exports) == 0 {
		t.Fatal("no exports")
	}
	for i := 1; i < len(exports); i++ {
		if exports[i-1] > exports[i] {
			t.Fatalf("exports not sorted: %v", exports)
		}
	}

	params, results, ok := mod.ExportSignature("fr_add")
	if !ok {
		t.Fatal("fr_add not found")
	}
	if len(params) != 3 || len(results) != 0 {
		t.Errorf("unexpected fr_add signature %v -> %v", params, results)
	}
	params, _, _ = mod.ExportSignature("bad_sig")
	if len(params) != 1 || params[0] != api.ValueTypeI64 {
		t.Errorf("unexpected bad_sig params %v", params)
	}
	if _, _, ok := mod.ExportSignature("missing"); ok {
		t.Error("expected missing export")
	}
}

func TestInstantiate_RunsInitialize(t *testing.T) {
	_, inst := newInstance(t)

	fn, ok := inst.Export("was_initialized")
	if !ok {
		t.Fatal("was_initialized not found")
	}
	res, err := fn.Call(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res[0] != 1 {
		t.Error("_initialize was not run")
	}
}

func TestInstantiate_Independent(t *testing.T) {
	mod, a := newInstance(t)
	b, err := mod.Instantiate(context.Background())
	if err != nil {
		t.Fatalf("second Instantiate failed: %v", err)
	}
	defer b.Close(context.Background())

	if _, err := a.Allocator().Alloc(16); err != nil {
		t.Fatal(err)
	}
	if b.Allocator().Outstanding() != 0 {
		t.Error("instances should not share allocator state")
	}
}

func TestInstance_Export(t *testing.T) {
	_, inst := newInstance(t)

	if _, ok := inst.Export("fr_add"); !ok {
		t.Error("fr_add should exist")
	}
	if _, ok := inst.Export("missing"); ok {
		t.Error("missing should not exist")
	}
	// cached negative lookup
	if _, ok := inst.Export("missing"); ok {
		t.Error("missing should not exist")
	}
}

func TestInstance_Claim(t *testing.T) {
	_, inst := newInstance(t)

	if err := inst.Claim(); err != nil {
		t.Fatalf("first claim failed: %v", err)
	}
	if err := inst.Claim(); err == nil {
		t.Error("second claim should fail")
	}
	inst.Release()
	if err := inst.Claim(); err != nil {
		t.Errorf("claim after release failed: %v", err)
	}
}

func TestInstance_Close(t *testing.T) {
	ctx := context.Background()
	_, inst := newInstance(t)

	if err := inst.Close(ctx); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := inst.Close(ctx); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
	if !inst.Closed() {
		t.Error("expected closed")
	}
	if err := inst.Claim(); !errors.Is(err, bberrors.ErrClosed) {
		t.Errorf("expected closed error, got %v", err)
	}
	if _, ok := inst.Export("fr_add"); ok {
		t.Error("exports should not resolve after close")
	}
}

func TestAllocator_Balance(t *testing.T) {
	_, inst := newInstance(t)
	alloc := inst.Allocator()

	p1, err := alloc.Alloc(32)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := alloc.Alloc(64)
	if err != nil {
		t.Fatal(err)
	}
	if p1 == 0 || p2 == 0 || p1 == p2 {
		t.Fatalf("bad pointers %d %d", p1, p2)
	}
	if n := alloc.Outstanding(); n != 2 {
		t.Errorf("expected 2 outstanding, got %d", n)
	}

	alloc.Free(p1)
	alloc.Free(p2)
	alloc.Free(0)
	if n := alloc.Outstanding(); n != 0 {
		t.Errorf("expected 0 outstanding, got %d", n)
	}

	fn, _ := inst.Export("live_allocs")
	res, _ := fn.Call(context.Background())
	if res[0] != 0 {
		t.Errorf("module reports %d live regions", res[0])
	}
}

func TestAllocator_Adopt(t *testing.T) {
	_, inst := newInstance(t)
	alloc := inst.Allocator()

	alloc.Adopt(0)
	if alloc.Outstanding() != 0 {
		t.Error("adopting null should not count")
	}
	alloc.Adopt(4096)
	if alloc.Outstanding() != 1 {
		t.Error("adopt should count")
	}
}

func TestAllocator_Exhausted(t *testing.T) {
	_, inst := newInstance(t)

	_, err := inst.Allocator().Alloc(testmodule.MemoryBytes)
	if !errors.Is(err, bberrors.ErrAllocation) {
		t.Fatalf("expected allocation error, got %v", err)
	}
	if inst.Allocator().Outstanding() != 0 {
		t.Error("failed allocation should not count")
	}
}

func TestAllocator_Concurrent(t *testing.T) {
	_, inst := newInstance(t)
	alloc := inst.Allocator()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				p, err := alloc.Alloc(8)
				if err != nil {
					t.Error(err)
					return
				}
				alloc.Free(p)
			}
		}()
	}
	wg.Wait()

	if n := alloc.Outstanding(); n != 0 {
		t.Errorf("expected 0 outstanding, got %d", n)
	}
}

func TestMemory(t *testing.T) {
	_, inst := newInstance(t)
	mem := inst.Memory()

	if mem.Size() != testmodule.MemoryBytes {
		t.Errorf("size %d", mem.Size())
	}

	if err := mem.Write(100, []byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	data, err := mem.Read(100, 3)
	if err != nil || data[0] != 1 || data[2] != 3 {
		t.Errorf("read back %v %v", data, err)
	}

	if err := mem.WriteU32(200, 0x11223344); err != nil {
		t.Fatal(err)
	}
	raw, _ := mem.Read(200, 4)
	if raw[0] != 0x44 || raw[3] != 0x11 {
		t.Errorf("pointer not little-endian: % x", raw)
	}
	v, _ := mem.ReadU32(200)
	if v != 0x11223344 {
		t.Errorf("ReadU32 = %#x", v)
	}

	if err := mem.Zero(100, 8192); err != nil {
		t.Fatal(err)
	}
	data, _ = mem.Read(100, 3)
	if data[0] != 0 {
		t.Error("Zero did not clear")
	}

	if _, err := mem.Read(mem.Size()-2, 4); err == nil {
		t.Error("expected out of bounds read")
	}
	if err := mem.Write(mem.Size(), []byte{1}); err == nil {
		t.Error("expected out of bounds write")
	}
	if err := mem.Zero(mem.Size()-10, 20); err == nil {
		t.Error("expected out of bounds zero")
	}
}

func TestLogger(t *testing.T) {
	if Logger() == nil {
		t.Fatal("default logger should not be nil")
	}
	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("nil logger should fall back to nop")
	}
}
