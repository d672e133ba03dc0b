package alloc

// std is the process-wide facade the package-level operations delegate to,
// mirroring the single recovery-callback slot embedding applications expect.
var std = New()

// Alloc returns a buffer of size bytes from the default facade.
func Alloc(size int) []byte { return std.Alloc(size) }

// Realloc resizes old via the default facade.
func Realloc(old []byte, size int) []byte { return std.Realloc(old, size) }

// Calloc returns a zeroed count*elemSize buffer from the default facade.
func Calloc(count, elemSize int) []byte { return std.Calloc(count, elemSize) }

// Allocz returns an n+1-byte NUL-terminated buffer from the default facade.
func Allocz(n int) []byte { return std.Allocz(n) }

// Memdupz duplicates n bytes of data with a trailing NUL via the default facade.
func Memdupz(data []byte, n int) []byte { return std.Memdupz(data, n) }

// Strndup duplicates at most n bytes of data via the default facade.
func Strndup(data []byte, n int) []byte { return std.Strndup(data, n) }

// Strdup returns a NUL-terminated duplicate of s via the default facade.
func Strdup(s string) []byte { return std.Strdup(s) }

// SetTryToFree registers the recovery callback on the default facade and
// returns the previous one.
func SetTryToFree(fn TryToFree) TryToFree { return std.SetTryToFree(fn) }
