// Package barretenberg binds the exports of barretenberg.wasm, the compiled
// barretenberg proving library.
//
// API and AsyncAPI in api.gen.go are generated from c_binds.json. Open and
// OpenAsync cover the common case of one instance per process:
//
//	api, err := barretenberg.Open(ctx, wasm)
//	if err != nil {
//		return err
//	}
//	defer api.Close(ctx)
//
//	if err := api.PedersenHashInit(ctx); err != nil {
//		return err
//	}
//	h, err := api.PedersenCompressFields(ctx, types.FrFromUint64(4), types.FrFromUint64(8))
//
// A Runtime compiles the module once and creates independent instances
// with New and NewAsync.
//
// The module must define its own memory. Builds that import env.memory,
// such as the multi-threaded one, are not supported.
package barretenberg
