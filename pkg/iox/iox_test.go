package iox

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// script replaces a raw syscall with a canned sequence of results. Each step
// either transfers bytes from/to the scripted payloads or fails with an
// errno.
type step struct {
	n   int
	err error
	// data delivered to the caller's buffer for read scripts.
	data []byte
}

func scriptReads(t *testing.T, steps []step) *[]int {
	t.Helper()
	var sizes []int
	i := 0
	prev := sysRead
	sysRead = func(fd int, p []byte) (int, error) {
		require.Less(t, i, len(steps), "read script exhausted")
		s := steps[i]
		i++
		sizes = append(sizes, len(p))
		if s.n > 0 {
			copy(p, s.data[:s.n])
		}
		return s.n, s.err
	}
	t.Cleanup(func() { sysRead = prev })
	return &sizes
}

func scriptWrites(t *testing.T, steps []step) *[][]byte {
	t.Helper()
	var seen [][]byte
	i := 0
	prev := sysWrite
	sysWrite = func(fd int, p []byte) (int, error) {
		require.Less(t, i, len(steps), "write script exhausted")
		s := steps[i]
		i++
		seen = append(seen, append([]byte(nil), p...))
		return s.n, s.err
	}
	t.Cleanup(func() { sysWrite = prev })
	return &seen
}

func TestRead_RestartsOnInterrupt(t *testing.T) {
	scriptReads(t, []step{
		{n: -1, err: unix.EINTR},
		{n: -1, err: unix.EAGAIN},
		{n: 3, data: []byte("abc")},
	})

	p := make([]byte, 8)
	n, err := Read(0, p)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "abc", string(p[:3]))
}

func TestRead_OtherErrorsPassThrough(t *testing.T) {
	scriptReads(t, []step{{n: -1, err: unix.EBADF}})

	n, err := Read(0, make([]byte, 4))
	assert.Equal(t, -1, n)
	assert.ErrorIs(t, err, unix.EBADF)
}

func TestRead_ZeroIsEndOfStream(t *testing.T) {
	scriptReads(t, []step{{n: 0}})

	n, err := Read(0, make([]byte, 4))
	require.NoError(t, err)
	assert.Zero(t, n, "end-of-stream is returned immediately, not retried")
}

func TestWrite_RestartsOnInterrupt(t *testing.T) {
	scriptWrites(t, []step{
		{n: -1, err: unix.EINTR},
		{n: 4},
	})

	n, err := Write(1, []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestReadFull_AccumulatesChunks(t *testing.T) {
	sizes := scriptReads(t, []step{
		{n: 4, data: []byte("abcd")},
		{n: 2, data: []byte("ef")},
		{n: 4, data: []byte("ghij")},
	})

	p := make([]byte, 10)
	n, err := ReadFull(0, p)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, "abcdefghij", string(p))
	assert.Equal(t, []int{10, 6, 4}, *sizes, "cursor advances between calls")
}

func TestReadFull_PartialProgressBeatsError(t *testing.T) {
	// Source yields 4 bytes, then end-of-stream, then would error; with 4
	// bytes already accumulated the result is 4, not the error and not 0.
	scriptReads(t, []step{
		{n: 4, data: []byte("abcd")},
		{n: 0},
	})

	p := make([]byte, 10)
	n, err := ReadFull(0, p)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestReadFull_PartialProgressSwallowsError(t *testing.T) {
	scriptReads(t, []step{
		{n: 4, data: []byte("abcd")},
		{n: -1, err: unix.EIO},
	})

	p := make([]byte, 10)
	n, err := ReadFull(0, p)
	require.NoError(t, err, "the error surfaces only as a short count")
	assert.Equal(t, 4, n)
}

func TestReadFull_ImmediateEndOfStream(t *testing.T) {
	scriptReads(t, []step{{n: 0}})

	n, err := ReadFull(0, make([]byte, 10))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReadFull_ImmediateError(t *testing.T) {
	scriptReads(t, []step{{n: -1, err: unix.EIO}})

	n, err := ReadFull(0, make([]byte, 10))
	assert.Equal(t, -1, n)
	assert.ErrorIs(t, err, unix.EIO)
}

func TestReadFull_EmptyBuffer(t *testing.T) {
	n, err := ReadFull(0, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWriteFull_CompletesAcrossShortWrites(t *testing.T) {
	seen := scriptWrites(t, []step{{n: 3}, {n: 3}, {n: 4}})

	n, err := WriteFull(1, []byte("abcdefghij"))
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	require.Len(t, *seen, 3)
	assert.Equal(t, "defghij", string((*seen)[1]))
	assert.Equal(t, "ghij", string((*seen)[2]))
}

func TestWriteFull_ZeroProgressIsNoSpace(t *testing.T) {
	// 3 bytes land, then a write makes no progress: abort with the
	// synthesized no-space condition, never a partial count.
	scriptWrites(t, []step{{n: 3}, {n: 0}})

	n, err := WriteFull(1, []byte("abcdefghij"))
	assert.Equal(t, -1, n)
	assert.ErrorIs(t, err, unix.ENOSPC)
}

func TestWriteFull_ErrorAborts(t *testing.T) {
	scriptWrites(t, []step{{n: 3}, {n: -1, err: unix.EPIPE}})

	n, err := WriteFull(1, []byte("abcdef"))
	assert.Equal(t, -1, n)
	assert.ErrorIs(t, err, unix.EPIPE)
}

func TestPipeRoundTrip(t *testing.T) {
	// Real descriptors end to end: WriteFull into a pipe, ReadFull out.
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	payload := []byte("object 4b825dc642cb6eb9a060e54bf8d69288fbee4904")
	n, err := WriteFull(int(w.Fd()), payload)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)
	require.NoError(t, w.Close())

	got := make([]byte, len(payload)+16)
	n, err = ReadFull(int(r.Fd()), got)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n, "short read reports bytes actually got")
	assert.Equal(t, payload, got[:n])
}
