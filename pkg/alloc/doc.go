// Package alloc provides the allocation facade the rest of git2 builds on.
//
// # Overview
//
// Every operation either returns a valid buffer or terminates the process
// through the diag fatal sink, so callers never check for allocation
// failure. When the underlying Allocator refuses a request, the facade runs
// a registered recovery callback once (giving the application a chance to
// free memory, e.g. by evicting a cache) and retries the request exactly
// once before giving up.
//
// # Recovery protocol
//
// Each operation walks a small state machine:
//
//	Attempt:    try the raw primitive; success returns the buffer
//	Recovering: invoke TryToFree with the needed byte count
//	Retrying:   try the raw primitive once more
//	Fatal:      diag.Dief with the operation name; never returns
//
// # Allocators
//
// GoAllocator: plain Go heap, never fails.
//
// LimitedAllocator: byte-budget enforcement, for embedders that cap memory
// and for exercising the recovery protocol; Release returns evicted bytes
// to the budget.
//
// # Zero-size requests
//
// An Allocator may return a nil buffer for a zero-size request. The facade
// substitutes a 1-byte request in that case, so callers always receive a
// valid zero-length buffer.
//
// # Usage
//
//	prev := alloc.SetTryToFree(func(size int) { dropCaches() })
//	defer alloc.SetTryToFree(prev)
//
//	name := alloc.Strdup(refName)  // NUL-terminated copy, cannot fail
//
// # Thread safety
//
// Facade instances are not thread-safe. The package-level facade is shared
// process-wide state; callers with multiple allocating goroutines must
// serialize SetTryToFree and ensure the callback is safe wherever
// allocations happen.
package alloc
