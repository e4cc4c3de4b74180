// Package bbgo provides typed Go bindings for barretenberg, a cryptographic
// engine shipped as a WebAssembly module.
//
// The module exports flat functions that take pointers to byte buffers in its
// linear memory. This library turns a declarative schema of those exports into
// a generated, typed Go API and executes calls against a live module instance.
//
// # Architecture Overview
//
//	bbgo/            Root package with core Memory and Allocator interfaces
//	├── types/       Type registry: kinds, host types, per-kind encoders/decoders
//	├── transcoder/  Argument framing and output decoding over the registry
//	├── engine/      wazero integration: compile, instantiate, memory, allocator
//	├── binder/      Sync and async call execution against one instance
//	├── bindgen/     Schema loading and Go source generation
//	├── barretenberg/ Generated bindings for barretenberg.wasm
//	├── errors/      Structured error types
//	└── cmd/         bindgen and bbrun command line tools
//
// # Quick Start
//
//	ctx := context.Background()
//	bb, err := barretenberg.Open(ctx, wasmBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer bb.Close(ctx)
//
//	if err := bb.PedersenHashInit(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	h, err := bb.PedersenCompressFields(ctx, types.FrFromUint64(4), types.FrFromUint64(8))
//
// # Calling Convention
//
// Every export receives one pointer per input, each addressing a region that
// holds the argument's encoding, followed by one pointer per output slot.
// Field elements, integers and vector length prefixes are big-endian. The
// binder package documents the convention in full.
//
// # Thread Safety
//
// A module instance runs one export at a time. binder.Sync serializes callers
// with a mutex; binder.Async queues calls and runs them in submission order.
package bbgo
