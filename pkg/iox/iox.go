// Package iox wraps the blocking read and write system calls so that signal
// interruption and transient unavailability never surface as errors, and
// provides full-transfer loops over them. Everything operates on raw file
// descriptors; errnos other than the restart set pass through unchanged.
package iox

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Raw system-call entry points. Package vars so tests can substitute
// scripted backends; production code never touches these.
var (
	sysRead  = unix.Read
	sysWrite = unix.Write
)

// restartable reports whether the failed call should be reissued unchanged.
func restartable(err error) bool {
	return errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN)
}

// Read is read(2) restarted across EINTR and EAGAIN. It does not guarantee
// len(p) bytes are read even when the data is available; a zero count is
// end-of-stream and is returned as-is.
func Read(fd int, p []byte) (int, error) {
	for {
		n, err := sysRead(fd, p)
		if n < 0 && restartable(err) {
			continue
		}
		return n, err
	}
}

// Write is write(2) restarted across EINTR and EAGAIN. It does not guarantee
// len(p) bytes are written even when the call succeeds.
func Write(fd int, p []byte) (int, error) {
	for {
		n, err := sysWrite(fd, p)
		if n < 0 && restartable(err) {
			continue
		}
		return n, err
	}
}

// ReadFull reads until p is full or progress stops. Partial progress is
// reported as success-so-far: when the terminating call yields zero bytes or
// an error after some bytes were already accumulated, ReadFull returns the
// accumulated count and a nil error, and the caller learns of the short
// condition only through a count smaller than len(p). With nothing
// accumulated, the terminating call's own result is returned: (0, nil) at
// end-of-stream, (-1, err) on failure.
func ReadFull(fd int, p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := Read(fd, p[total:])
		if n <= 0 {
			if total > 0 {
				return total, nil
			}
			return n, err
		}
		total += n
	}
	return total, nil
}

// WriteFull writes all of p or fails. Any error aborts with (-1, err); a
// call that writes zero bytes cannot be retried safely and aborts with
// (-1, unix.ENOSPC). A partial count is never returned, since partially
// written bytes cannot be handed back to the caller.
func WriteFull(fd int, p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := Write(fd, p[total:])
		if n < 0 {
			return -1, err
		}
		if n == 0 {
			return -1, unix.ENOSPC
		}
		total += n
	}
	return total, nil
}
