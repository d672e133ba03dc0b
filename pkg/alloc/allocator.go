package alloc

import (
	"errors"
	"fmt"
)

// ErrBudget indicates a LimitedAllocator refused a request that would exceed
// its remaining byte budget.
var ErrBudget = errors.New("alloc: budget exceeded")

// Allocator is the raw memory primitive underneath a Facade. Implementations
// may legally return a nil buffer for a zero-size request; the Facade papers
// over that for its callers.
type Allocator interface {
	// Allocate returns a buffer of exactly size bytes.
	Allocate(size int) ([]byte, error)
	// Reallocate returns a buffer of exactly size bytes carrying the prefix
	// of buf that still fits. The returned buffer may alias buf.
	Reallocate(buf []byte, size int) ([]byte, error)
}

// GoAllocator allocates from the Go heap. It never fails; the Facade's
// recovery protocol only ever engages with allocators that can.
type GoAllocator struct{}

// Allocate returns a zeroed buffer of size bytes.
func (GoAllocator) Allocate(size int) ([]byte, error) {
	return make([]byte, size), nil
}

// Reallocate resizes buf, copying the surviving prefix.
func (GoAllocator) Reallocate(buf []byte, size int) ([]byte, error) {
	if size == len(buf) {
		return buf, nil
	}
	if size < len(buf) {
		return buf[:size], nil
	}
	next := make([]byte, size)
	copy(next, buf)
	return next, nil
}

// LimitedAllocator enforces a byte budget over the Go heap. It exists so the
// recovery protocol has something real to free in-process: a recovery
// callback that evicts a cache can hand the reclaimed bytes back through
// Release, after which the retried request may succeed.
//
// A zero-size request returns a nil buffer, the way a C malloc(0) may; this
// keeps the Facade's zero-size substitution exercised.
//
// Not safe for concurrent use.
type LimitedAllocator struct {
	remaining int
}

// NewLimited returns a LimitedAllocator with the given byte budget.
func NewLimited(budget int) *LimitedAllocator {
	return &LimitedAllocator{remaining: budget}
}

// Allocate takes size bytes out of the budget.
func (a *LimitedAllocator) Allocate(size int) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	if size > a.remaining {
		return nil, fmt.Errorf("%w: need %d, %d left", ErrBudget, size, a.remaining)
	}
	a.remaining -= size
	return make([]byte, size), nil
}

// Reallocate resizes buf, charging or refunding the budget by the size delta.
// Resizing to zero refunds buf entirely and returns nothing; the old buffer
// is disposed of and must not be charged against again.
func (a *LimitedAllocator) Reallocate(buf []byte, size int) ([]byte, error) {
	grow := size - len(buf)
	if grow > a.remaining {
		return nil, fmt.Errorf("%w: need %d more, %d left", ErrBudget, grow, a.remaining)
	}
	a.remaining -= grow
	if size == 0 {
		return nil, nil
	}
	next := make([]byte, size)
	copy(next, buf)
	return next, nil
}

// Release returns n bytes to the budget. Recovery callbacks call this after
// dropping whatever they cached in buffers from this allocator.
func (a *LimitedAllocator) Release(n int) {
	a.remaining += n
}

// Remaining reports the unspent budget in bytes.
func (a *LimitedAllocator) Remaining() int {
	return a.remaining
}
