package alloc

import (
	"bytes"

	"github.com/Romain-Geissler/git2/internal/buf"
	"github.com/Romain-Geissler/git2/pkg/diag"
)

// TryToFree is the recovery callback invoked once, with the number of bytes
// the failed request needed, before the request is retried. Implementations
// free memory as a side effect, typically by evicting a cache.
type TryToFree func(size int)

func nothing(size int) {}

// Facade wraps an Allocator so its callers never see allocation failure:
// every operation returns a valid buffer or terminates the process through
// the diag fatal sink. On the first failure the registered TryToFree
// callback runs once and the request is retried exactly once.
//
// Not safe for concurrent use; embedders with multiple allocating goroutines
// must serialize registration themselves.
type Facade struct {
	mem    Allocator
	free   TryToFree
	fatalf func(format string, args ...any)
}

// New returns a Facade over the Go heap.
func New() *Facade {
	return NewWith(GoAllocator{})
}

// NewWith returns a Facade over mem with the no-op recovery callback and the
// diag fatal sink.
func NewWith(mem Allocator) *Facade {
	return &Facade{mem: mem, free: nothing, fatalf: diag.Dief}
}

// SetFatalf installs fn as this facade's fatal handler and returns the
// previous one, so instances can fail independently in tests. Like a diag
// die routine, fn must not return. A nil fn reinstalls diag.Dief.
func (f *Facade) SetFatalf(fn func(format string, args ...any)) func(format string, args ...any) {
	old := f.fatalf
	if fn == nil {
		fn = diag.Dief
	}
	f.fatalf = fn
	return old
}

// SetTryToFree installs fn as the recovery callback and returns the
// previously installed one, so callers can save and restore. A nil fn
// reinstalls the no-op.
func (f *Facade) SetTryToFree(fn TryToFree) TryToFree {
	old := f.free
	if fn == nil {
		fn = nothing
	}
	f.free = fn
	return old
}

// attemptState drives the recovery protocol shared by every operation.
type attemptState uint8

const (
	stateAttempt attemptState = iota
	stateRecovering
	stateRetrying
	stateFatal
)

// run executes attempt under the recovery protocol: on failure, invoke the
// recovery callback with need and retry once; if the retry also fails, fatal
// reports and terminates. attempt returns nil on failure.
func (f *Facade) run(need int, attempt func() []byte, fatal func()) []byte {
	state := stateAttempt
	for {
		switch state {
		case stateAttempt:
			if b := attempt(); b != nil {
				return b
			}
			state = stateRecovering
		case stateRecovering:
			f.free(need)
			state = stateRetrying
		case stateRetrying:
			if b := attempt(); b != nil {
				return b
			}
			state = stateFatal
		case stateFatal:
			fatal()
		}
	}
}

// tryAlloc performs one allocation attempt, substituting a 1-byte request
// when the allocator returns nothing for a zero-size one so callers always
// receive a valid, distinct buffer.
func (f *Facade) tryAlloc(size int) []byte {
	b, err := f.mem.Allocate(size)
	if size == 0 && (err != nil || b == nil) {
		b, err = f.mem.Allocate(1)
		if err == nil && b != nil {
			b = b[:0]
		}
	}
	if err != nil {
		return nil
	}
	return b
}

func (f *Facade) tryRealloc(old []byte, size int) []byte {
	b, err := f.mem.Reallocate(old, size)
	if size == 0 && (err != nil || b == nil) {
		// The zero-size call already disposed of old; the substitute byte is
		// a fresh allocation, not another resize of the released buffer.
		b, err = f.mem.Allocate(1)
		if err == nil && b != nil {
			b = b[:0]
		}
	}
	if err != nil {
		return nil
	}
	return b
}

// Alloc returns a buffer of size bytes. A zero-size request yields a valid
// zero-length buffer, never nil.
func (f *Facade) Alloc(size int) []byte {
	return f.run(size, func() []byte { return f.tryAlloc(size) }, func() {
		f.fatalf("out of memory, alloc failed (tried to allocate %d bytes)", size)
	})
}

// Realloc resizes old to size bytes, preserving the surviving prefix.
func (f *Facade) Realloc(old []byte, size int) []byte {
	return f.run(size, func() []byte { return f.tryRealloc(old, size) }, func() {
		f.fatalf("out of memory, realloc failed")
	})
}

// Calloc returns a zeroed buffer for count elements of elemSize bytes,
// refusing products that overflow before any allocator is invoked.
func (f *Facade) Calloc(count, elemSize int) []byte {
	need, ok := buf.Mul(count, elemSize)
	if !ok {
		f.fatalf("data too large to fit into virtual memory space")
	}
	b := f.run(need, func() []byte { return f.tryAlloc(need) }, func() {
		f.fatalf("out of memory, calloc failed")
	})
	clear(b)
	return b
}

// Allocz returns a buffer of n+1 bytes whose last byte is the NUL
// terminator. The first n bytes are left for the caller to fill. An n for
// which n+1 overflows is fatal before any allocation is attempted.
func (f *Facade) Allocz(n int) []byte {
	size, ok := buf.Add(n, 1)
	if !ok {
		f.fatalf("data too large to fit into virtual memory space")
	}
	b := f.Alloc(size)
	b[n] = 0
	return b
}

// Memdupz duplicates the first n bytes of data into an n+1-byte buffer with
// a NUL terminator at offset n.
func (f *Facade) Memdupz(data []byte, n int) []byte {
	b := f.Allocz(n)
	copy(b, data[:n])
	return b
}

// Strndup duplicates at most n bytes of data, stopping early at an embedded
// NUL. Bytes past n are never examined, terminator or not.
func (f *Facade) Strndup(data []byte, n int) []byte {
	if n > len(data) {
		n = len(data)
	}
	if i := bytes.IndexByte(data[:n], 0); i >= 0 {
		n = i
	}
	return f.Memdupz(data, n)
}

// Strdup returns a NUL-terminated duplicate of s.
func (f *Facade) Strdup(s string) []byte {
	need := len(s) + 1
	return f.run(need, func() []byte {
		b := f.tryAlloc(need)
		if b == nil {
			return nil
		}
		copy(b, s)
		b[len(s)] = 0
		return b
	}, func() {
		f.fatalf("out of memory, strdup failed")
	})
}
