// Package tmpfile creates uniquely named temporary files from caller-owned
// pattern buffers, filling in the "XXXXXX" run in place so the caller learns
// the chosen name without an extra allocation. Files are opened with
// O_CREAT|O_EXCL, so a successful return always means a fresh file.
package tmpfile

import (
	"bytes"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/Romain-Geissler/git2/pkg/diag"
)

const (
	letters    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	numLetters = uint64(len(letters))

	// tmpMax bounds how many candidate names are tried before giving up.
	tmpMax = 16384
)

// sysOpen is swappable in tests for scripting open results.
var sysOpen = unix.Open

// seed produces the starting value for candidate-name generation.
var seed = func() uint64 {
	now := time.Now()
	return (uint64(now.UnixMicro()) << 16) ^ uint64(now.Unix()) ^ uint64(os.Getpid())
}

// MkstempsMode creates a file from pattern, whose last 6+suffixLen bytes
// must be "XXXXXX" followed by the suffix. The X run is replaced in place
// with the chosen name. Returns the open descriptor, or -1 and the error;
// on failure other than a malformed pattern, pattern[0] is set to NUL.
func MkstempsMode(pattern []byte, suffixLen int, mode uint32) (int, error) {
	n := len(pattern)
	if n < 6+suffixLen {
		return -1, unix.EINVAL
	}
	tmpl := pattern[n-6-suffixLen : n-suffixLen]
	if string(tmpl) != "XXXXXX" {
		return -1, unix.EINVAL
	}

	// Replace the X run with randomness, trying up to tmpMax names.
	value := seed()
	var lastErr error
	for count := 0; count < tmpMax; count++ {
		v := value
		for i := range tmpl {
			tmpl[i] = letters[v%numLetters]
			v /= numLetters
		}

		fd, err := sysOpen(string(pattern), unix.O_CREAT|unix.O_EXCL|unix.O_RDWR, mode)
		if err == nil {
			return fd, nil
		}
		lastErr = err
		// EPERM, ENOSPC and the like will not get better with another name.
		if !errorsIsExist(err) {
			break
		}
		// Only uniqueness matters for the step; 7777 keeps the next tmpMax
		// candidates distinct modulo 2^32.
		value += 7777
	}

	pattern[0] = 0
	return -1, lastErr
}

func errorsIsExist(err error) bool {
	return err == unix.EEXIST || os.IsExist(err)
}

// MkstempMode is MkstempsMode without a suffix.
func MkstempMode(pattern []byte, mode uint32) (int, error) {
	return MkstempsMode(pattern, 0, mode)
}

// Mkstemp is MkstempMode with mode 0600.
func Mkstemp(pattern []byte) (int, error) {
	return MkstempMode(pattern, 0o600)
}

// TempPath writes "$TMPDIR/<template>" (default /tmp) into dst and creates
// the file. Returns ENAMETOOLONG when dst cannot hold the path and its
// terminator.
func TempPath(dst []byte, template string) (int, error) {
	return TempPaths(dst, template, 0)
}

// TempPaths is TempPath for templates carrying a suffix after the X run.
func TempPaths(dst []byte, template string, suffixLen int) (int, error) {
	dir := os.Getenv("TMPDIR")
	if dir == "" {
		dir = "/tmp"
	}
	path := dir + "/" + template
	if len(path)+1 > len(dst) {
		return -1, unix.ENAMETOOLONG
	}
	n := copy(dst, path)
	dst[n] = 0
	return MkstempsMode(dst[:n], suffixLen, 0o600)
}

// XMkstempMode is MkstempMode for callers that treat failure as fatal. The
// message names the original template, since the pattern buffer is clobbered
// on failure.
func XMkstempMode(pattern []byte, mode uint32) int {
	orig := string(pattern)
	fd, err := MkstempMode(pattern, mode)
	if err != nil {
		name := orig
		if i := bytes.IndexByte(pattern, 0); i > 0 {
			name = string(pattern[:i])
		}
		diag.Dief("unable to create temporary file '%s': %v", name, err)
	}
	return fd
}

// XMkstemp is XMkstempMode with mode 0600.
func XMkstemp(pattern []byte) int {
	return XMkstempMode(pattern, 0o600)
}
