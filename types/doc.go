// Package types is the registry of value kinds that cross the module boundary.
//
// Every argument and result of a barretenberg export has a Kind drawn from a
// closed set. For each kind the package provides the Go host type, an encoder
// that appends the canonical byte encoding and a decoder that reads it back:
//
//	Kind        Host type        Encoding
//	────────────────────────────────────────────────────────────
//	fr          types.Fr         32 bytes big-endian, < r
//	fq          types.Fq         32 bytes big-endian, < q
//	point       types.Point      x ‖ y, 64 bytes
//	bool        bool             1 byte, non-zero is true
//	u8..u64     uint8..uint64    big-endian
//	bufN        [N]byte          N raw bytes
//	ptr         types.Ptr        4 bytes little-endian
//	string      string           u32 big-endian length, UTF-8 bytes
//	vec<K>      []K              u32 big-endian count, elements
//
// Schema tags are resolved with ParseKind, which also understands the C
// parameter types used in barretenberg's c_bind headers. An unknown tag is an
// error at schema time; there is no fallback encoding.
package types
