// Package transcoder frames call arguments and decodes call results.
//
// It sits between the typed surface and module memory:
//
//	┌────────────────────────────────────────────────────────────┐
//	│ Go values ←→ [Transcoder] ←→ byte regions ←→ module memory │
//	└────────────────────────────────────────────────────────────┘
//
// # Framing
//
// Every input argument is encoded into its own region; the binder copies each
// region into a separate allocation and passes one pointer per argument.
// Concatenation is never used, so an export never has to know the size of an
// argument before the one it reads.
//
//	Kind        Region             Output slot
//	──────────────────────────────────────────────
//	fixed       encoding (n)       n bytes, filled in place
//	string      u32 BE len, data   4 bytes, module pointer
//	vec<K>      u32 BE count, ...  4 bytes, module pointer
//
// # Key Types
//
//	Compiler  - Caches per-kind codecs
//	Codec     - Encoder, decoder and slot size for one kind
//	Args      - Encoded argument regions backed by pooled buffers
//
// # Decoding
//
// DecodeOutputs decodes raw output bytes in declaration order and requires
// each output to consume exactly its bytes. Decode reads a length-prefixed
// value straight out of module memory, measuring it first so that a corrupt
// length is reported before anything large is read.
package transcoder
