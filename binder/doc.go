// Package binder executes typed calls against one live barretenberg module
// instance.
//
// # Calling Convention
//
// Every export is called with positional i32 pointers, inputs first:
//
//	export(in_0, ..., in_{n-1}, out_0, ..., out_{m-1}) [-> status]
//
// Each in_i addresses its own region, allocated through the module's
// allocator and holding the canonical encoding of argument i (see package
// types). Each out_j addresses a reserved, zeroed slot:
//
//	fixed kinds (fr, point, u32, buf32, ...)  slot of the kind's width,
//	                                          filled in place by the module
//	variable kinds (vec<...>, string)         4-byte slot receiving a
//	                                          little-endian pointer to a
//	                                          length-prefixed buffer the
//	                                          module allocated with bbmalloc
//
// The binder decodes variable outputs straight from module memory and hands
// their buffers back with bbfree. A null pointer in a variable slot is
// reported as an allocation failure.
//
// An export returns nothing or a single i32 status. A non-zero status fails
// the call with ErrInvocation and the status in Error.Code, as does a trap.
// An export whose core signature does not match this shape for the declared
// arity is reported as an unknown export.
//
// # Variants
//
//	Sync   Call blocks; concurrent callers are serialized
//	Async  Call returns a *Future; one worker runs calls in FIFO order
//
// Both satisfy the same call shape so generated code can target either.
//
// # Lifetime
//
// Every region a call allocates, including the buffers the module returns, is
// freed before the call completes, on success and on failure. A call that has
// reached the module always runs to completion: the caller's context is only
// consulted before the call starts, and Future.Await stops waiting without
// stopping the call. Close tears the instance down once; calls afterwards fail
// with ErrClosed.
package binder
