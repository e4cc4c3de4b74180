package engine

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/bbgo/errors"
)

// Allocator export names, in lookup order.
const (
	BBMalloc = "bbmalloc"
	BBFree   = "bbfree"
	Malloc   = "malloc"
	Free     = "free"

	// InitializeExport is the WASI reactor initializer run on instantiation.
	InitializeExport = "_initialize"
)

// WazeroEngine compiles and instantiates modules on one wazero runtime.
type WazeroEngine struct {
	runtime  wazero.Runtime
	cfg      Config
	hostMu   sync.Mutex
	wasiDone atomic.Bool
	envDone  atomic.Bool
}

// Config holds configuration for engine creation
type Config struct {
	// Stdout and Stderr receive the module's WASI output. nil discards it.
	Stdout io.Writer
	Stderr io.Writer

	// AllocExport and FreeExport name the allocator exports. Empty means
	// bbmalloc/bbfree with malloc/free as fallback.
	AllocExport string
	FreeExport  string

	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means default (65536 pages = 4GB).
	// 256 = 16MB, 1024 = 64MB, 4096 = 256MB
	MemoryLimitPages uint32

	// HardwareConcurrency is reported to the module through
	// env.env_hardware_concurrency. 0 means 1.
	HardwareConcurrency uint32

	// DisableWASI skips providing wasi_snapshot_preview1. Modules that
	// import it then fail to instantiate.
	DisableWASI bool
}

// NewWazeroEngine creates a new wazero-based engine
func NewWazeroEngine(ctx context.Context) (*WazeroEngine, error) {
	return NewWazeroEngineWithConfig(ctx, nil)
}

// NewWazeroEngineWithConfig creates a new engine with custom configuration
func NewWazeroEngineWithConfig(ctx context.Context, cfg *Config) (*WazeroEngine, error) {
	runtimeCfg := wazero.NewRuntimeConfig()

	e := &WazeroEngine{}
	if cfg != nil {
		e.cfg = *cfg
		if cfg.MemoryLimitPages > 0 {
			runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
		}
	}
	if e.cfg.HardwareConcurrency == 0 {
		e.cfg.HardwareConcurrency = 1
	}

	e.runtime = wazero.NewRuntimeWithConfig(ctx, runtimeCfg)
	return e, nil
}

// LoadModule compiles wasmBytes and provides the host modules it imports.
func (e *WazeroEngine) LoadModule(ctx context.Context, wasmBytes []byte) (*WazeroModule, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}

	imports := make(map[string]bool)
	for _, def := range compiled.ImportedFunctions() {
		mod, _, _ := def.Import()
		imports[mod] = true
	}
	if imports[wasiModuleName] && !e.cfg.DisableWASI {
		if err := e.InitWASI(ctx); err != nil {
			_ = compiled.Close(ctx)
			return nil, err
		}
	}
	if imports[envModuleName] {
		if err := e.initEnv(ctx); err != nil {
			_ = compiled.Close(ctx)
			return nil, err
		}
	}

	allocName, freeName, err := e.allocatorExports(compiled)
	if err != nil {
		_ = compiled.Close(ctx)
		return nil, err
	}

	return &WazeroModule{
		engine:    e,
		compiled:  compiled,
		allocName: allocName,
		freeName:  freeName,
	}, nil
}

func (e *WazeroEngine) allocatorExports(compiled wazero.CompiledModule) (string, string, error) {
	exports := compiled.ExportedFunctions()
	pick := func(configured string, candidates ...string) string {
		if configured != "" {
			candidates = []string{configured}
		}
		for _, name := range candidates {
			if _, ok := exports[name]; ok {
				return name
			}
		}
		return ""
	}

	allocName := pick(e.cfg.AllocExport, BBMalloc, Malloc)
	if allocName == "" {
		return "", "", errors.NotFound(errors.PhaseLoad, "allocator export", firstNonEmpty(e.cfg.AllocExport, BBMalloc))
	}
	freeName := pick(e.cfg.FreeExport, BBFree, Free)
	if freeName == "" {
		return "", "", errors.NotFound(errors.PhaseLoad, "free export", firstNonEmpty(e.cfg.FreeExport, BBFree))
	}
	return allocName, freeName, nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func (e *WazeroEngine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// InitWASI instantiates the WASI singleton for this engine's runtime.
// Safe for concurrent calls from multiple modules sharing the same engine.
func (e *WazeroEngine) InitWASI(ctx context.Context) error {
	if e.wasiDone.Load() {
		return nil
	}

	e.hostMu.Lock()
	defer e.hostMu.Unlock()

	if e.wasiDone.Load() {
		return nil
	}
	if e.runtime.Module(wasiModuleName) == nil {
		if _, err := instantiateWASI(ctx, e.runtime); err != nil {
			return errors.Registration(wasiModuleName, "*", err)
		}
	}

	e.wasiDone.Store(true)
	return nil
}

func (e *WazeroEngine) initEnv(ctx context.Context) error {
	if e.envDone.Load() {
		return nil
	}

	e.hostMu.Lock()
	defer e.hostMu.Unlock()

	if e.envDone.Load() {
		return nil
	}
	if e.runtime.Module(envModuleName) == nil {
		if _, err := instantiateEnv(ctx, e.runtime, e.cfg.HardwareConcurrency); err != nil {
			return err
		}
	}

	e.envDone.Store(true)
	return nil
}

// WazeroModule is a compiled module whose allocator exports were verified.
type WazeroModule struct {
	engine    *WazeroEngine
	compiled  wazero.CompiledModule
	allocName string
	freeName  string
}

// Exports returns the names of all exported functions, sorted.
func (m *WazeroModule) Exports() []string {
	defs := m.compiled.ExportedFunctions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExportSignature returns the core signature of an export.
func (m *WazeroModule) ExportSignature(name string) (params, results []api.ValueType, ok bool) {
	def, ok := m.compiled.ExportedFunctions()[name]
	if !ok {
		return nil, nil, false
	}
	return def.ParamTypes(), def.ResultTypes(), true
}

func (m *WazeroModule) Close(ctx context.Context) error {
	return m.compiled.Close(ctx)
}

// Instantiate creates a fresh instance. Reactor modules have their
// _initialize export run before Instantiate returns.
func (m *WazeroModule) Instantiate(ctx context.Context) (*WazeroInstance, error) {
	modConfig := wazero.NewModuleConfig().
		WithName(""). // anonymous for parallel instantiation
		WithStartFunctions()
	if w := m.engine.cfg.Stdout; w != nil {
		modConfig = modConfig.WithStdout(w)
	}
	if w := m.engine.cfg.Stderr; w != nil {
		modConfig = modConfig.WithStderr(w)
	}

	instance, err := m.engine.runtime.InstantiateModule(ctx, m.compiled, modConfig)
	if err != nil {
		return nil, errors.Instantiation(err)
	}

	if init := instance.ExportedFunction(InitializeExport); init != nil {
		if _, err := init.Call(ctx); err != nil {
			_ = instance.Close(ctx)
			return nil, errors.Instantiation(fmt.Errorf("%s: %w", InitializeExport, err))
		}
	}

	inst := &WazeroInstance{
		instance:  instance,
		funcCache: make(map[string]api.Function),
	}
	if mem := instance.Memory(); mem != nil {
		inst.memory = &WazeroMemory{mem: mem}
	}
	inst.alloc = &WazeroAllocator{
		allocFn:  instance.ExportedFunction(m.allocName),
		freeFn:   instance.ExportedFunction(m.freeName),
		stackBuf: make([]uint64, 1),
	}

	Logger().Debug("module instantiated",
		zap.String("alloc", m.allocName),
		zap.String("free", m.freeName))
	return inst, nil
}

// WazeroInstance is a live module instance. It is not safe for concurrent
// use; a binder claims it and serializes calls.
type WazeroInstance struct {
	instance  api.Module
	memory    *WazeroMemory
	alloc     *WazeroAllocator
	funcCache map[string]api.Function
	cacheMu   sync.RWMutex
	claimed   atomic.Bool
	closed    atomic.Bool
	closeMu   sync.Mutex
}

func (i *WazeroInstance) Memory() *WazeroMemory {
	return i.memory
}

func (i *WazeroInstance) Allocator() *WazeroAllocator {
	return i.alloc
}

// Export returns the exported function name, caching lookups.
func (i *WazeroInstance) Export(name string) (api.Function, bool) {
	i.cacheMu.RLock()
	fn, ok := i.funcCache[name]
	i.cacheMu.RUnlock()
	if ok {
		return fn, fn != nil
	}
	if i.closed.Load() {
		return nil, false
	}

	fn = i.instance.ExportedFunction(name)
	i.cacheMu.Lock()
	if i.funcCache != nil {
		i.funcCache[name] = fn
	}
	i.cacheMu.Unlock()
	return fn, fn != nil
}

// Claim marks the instance as owned by one binder. A second claim fails
// until Release.
func (i *WazeroInstance) Claim() error {
	if i.closed.Load() {
		return errors.Closed("module instance")
	}
	if !i.claimed.CompareAndSwap(false, true) {
		return errors.InvalidInput(errors.PhaseInvoke, "module instance is already bound to a binder")
	}
	return nil
}

func (i *WazeroInstance) Release() {
	i.claimed.Store(false)
}

func (i *WazeroInstance) Closed() bool {
	return i.closed.Load()
}

// Close destroys the instance. Subsequent calls are no-ops.
func (i *WazeroInstance) Close(ctx context.Context) error {
	i.closeMu.Lock()
	defer i.closeMu.Unlock()
	if !i.closed.CompareAndSwap(false, true) {
		return nil
	}

	var err error
	if i.instance != nil {
		err = i.instance.Close(ctx)
	}
	i.cacheMu.Lock()
	i.funcCache = nil
	i.cacheMu.Unlock()
	return err
}

// WazeroAllocator calls the module's allocator exports and counts regions
// that were allocated but not yet freed.
type WazeroAllocator struct {
	allocFn     api.Function
	freeFn      api.Function
	currentCtx  context.Context
	stackBuf    []uint64
	stackMutex  sync.Mutex
	outstanding atomic.Int64
}

// SetContext sets the context used for allocator calls.
func (a *WazeroAllocator) SetContext(ctx context.Context) {
	a.stackMutex.Lock()
	defer a.stackMutex.Unlock()
	a.currentCtx = ctx
}

// Alloc returns a region of size bytes. A null pointer from the module is
// reported as an allocation error.
func (a *WazeroAllocator) Alloc(size uint32) (uint32, error) {
	if a.allocFn == nil {
		return 0, errors.AllocationFailed("", size, fmt.Errorf("no allocator available"))
	}

	a.stackMutex.Lock()
	defer a.stackMutex.Unlock()

	ctx := a.currentCtx
	if ctx == nil {
		ctx = context.Background()
	}

	a.stackBuf[0] = uint64(size)
	if err := a.allocFn.CallWithStack(ctx, a.stackBuf[:1]); err != nil {
		return 0, errors.AllocationFailed("", size, err)
	}
	ptr := uint32(a.stackBuf[0])
	if ptr == 0 {
		return 0, errors.AllocationFailed("", size, nil)
	}
	a.outstanding.Add(1)
	return ptr, nil
}

// Free releases a region. Failures are logged, not returned, because frees
// run on cleanup paths that already carry the call's own error.
func (a *WazeroAllocator) Free(ptr uint32) {
	if a.freeFn == nil || ptr == 0 {
		return
	}

	a.stackMutex.Lock()
	defer a.stackMutex.Unlock()

	ctx := a.currentCtx
	if ctx == nil {
		ctx = context.Background()
	}

	a.stackBuf[0] = uint64(ptr)
	if err := a.freeFn.CallWithStack(ctx, a.stackBuf[:1]); err != nil {
		Logger().Warn("free failed",
			zap.Uint32("ptr", ptr),
			zap.Error(err))
		return
	}
	a.outstanding.Add(-1)
}

// Adopt records a region the module allocated on its own, so that the
// matching Free balances the count.
func (a *WazeroAllocator) Adopt(ptr uint32) {
	if ptr != 0 {
		a.outstanding.Add(1)
	}
}

// Outstanding returns the number of regions allocated or adopted and not
// yet freed.
func (a *WazeroAllocator) Outstanding() int64 {
	return a.outstanding.Load()
}

// WazeroMemory wraps wazero memory to implement bbgo.Memory
type WazeroMemory struct {
	mem api.Memory
}

func (m *WazeroMemory) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, fmt.Errorf("read out of bounds: offset=%d, length=%d", offset, length)
	}
	return data, nil
}

func (m *WazeroMemory) Write(offset uint32, data []byte) error {
	ok := m.mem.Write(offset, data)
	if !ok {
		return fmt.Errorf("write out of bounds: offset=%d, length=%d", offset, len(data))
	}
	return nil
}

// ReadU32 reads a little-endian module pointer.
func (m *WazeroMemory) ReadU32(offset uint32) (uint32, error) {
	v, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, fmt.Errorf("read out of bounds: offset=%d, length=4", offset)
	}
	return v, nil
}

func (m *WazeroMemory) WriteU32(offset uint32, value uint32) error {
	if !m.mem.WriteUint32Le(offset, value) {
		return fmt.Errorf("write out of bounds: offset=%d, length=4", offset)
	}
	return nil
}

var zeroPage [4096]byte

func (m *WazeroMemory) Zero(offset uint32, length uint32) error {
	for length > 0 {
		n := length
		if n > uint32(len(zeroPage)) {
			n = uint32(len(zeroPage))
		}
		if !m.mem.Write(offset, zeroPage[:n]) {
			return fmt.Errorf("write out of bounds: offset=%d, length=%d", offset, n)
		}
		offset += n
		length -= n
	}
	return nil
}

func (m *WazeroMemory) Size() uint32 {
	return m.mem.Size()
}
