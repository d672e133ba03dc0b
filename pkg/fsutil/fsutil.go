// Package fsutil removes filesystem entries on a best-effort basis: failures
// other than the entry already being gone are reported to the warning sink
// and handed back to the caller, who usually keeps going.
package fsutil

import (
	"errors"

	"golang.org/x/sys/unix"

	"github.com/Romain-Geissler/git2/pkg/diag"
)

// ModeGitlink is the file mode marking a commit reference in a tree entry.
// Gitlinks materialize as directories in the worktree and must be removed as
// such.
const ModeGitlink = 0o160000

// Removal syscalls, swappable in tests.
var (
	sysUnlink = unix.Unlink
	sysRmdir  = unix.Rmdir
)

func warnIfUnremovable(op, path string, err error) error {
	if err != nil && !errors.Is(err, unix.ENOENT) {
		diag.Warningf("unable to %s %s: %v", op, path, err)
	}
	return err
}

// UnlinkOrWarn removes the file at path, warning on any failure except the
// file already being absent. The original error is preserved either way.
func UnlinkOrWarn(path string) error {
	return warnIfUnremovable("unlink", path, sysUnlink(path))
}

// RmdirOrWarn removes the directory at path, warning on any failure except
// the directory already being absent.
func RmdirOrWarn(path string) error {
	return warnIfUnremovable("rmdir", path, sysRmdir(path))
}

// RemoveOrWarn removes the entry at path according to its tree-entry mode:
// gitlinks are directories, everything else is a file.
func RemoveOrWarn(mode uint32, path string) error {
	if mode&unix.S_IFMT == ModeGitlink {
		return RmdirOrWarn(path)
	}
	return UnlinkOrWarn(path)
}
