// Package engine runs barretenberg's WebAssembly module on wazero.
//
// # Architecture
//
// The engine package provides three main types:
//
//	WazeroEngine   - Owns a wazero runtime and the host modules it provides
//	WazeroModule   - A compiled module with verified allocator exports
//	WazeroInstance - A live instance: memory, allocator and export lookup
//
// # Instantiation Flow
//
//  1. WazeroEngine.LoadModule() compiles the binary, provides the
//     wasi_snapshot_preview1 and env imports it needs, and locates the
//     allocator exports (bbmalloc/bbfree, then malloc/free)
//  2. WazeroModule.Instantiate() creates an anonymous instance and runs
//     _initialize when the module is a WASI reactor
//  3. A binder claims the WazeroInstance and owns it until Close
//
// # Host Imports
//
//	env.logstr(ptr)                  NUL-terminated message, logged at info
//	env.env_hardware_concurrency()   Config.HardwareConcurrency (default 1)
//
// # Memory and Allocation
//
// WazeroMemory exposes bounds-checked reads and writes. Module pointers are
// 4 bytes little-endian. WazeroAllocator wraps the allocator exports, turns a
// null pointer into an allocation error and keeps a count of outstanding
// regions so callers can verify that every call freed what it allocated.
//
// # Thread Safety
//
// WazeroEngine and WazeroModule are safe for concurrent use.
// WazeroInstance is NOT thread-safe; exactly one binder may claim it.
package engine
