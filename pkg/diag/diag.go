// Package diag is the process-wide diagnostic sink for the git2 core
// primitives: fatal errors that terminate the process and warnings that do
// not. Both routes are registrable so embedding applications and tests can
// capture or redirect diagnostics; registration returns the previously
// installed routine so callers can save and restore.
package diag

import (
	"fmt"
	"os"
)

// DieRoutine receives a formatted fatal message. It must not return; the
// default terminates the process with exit status 128.
type DieRoutine func(msg string)

// WarnRoutine receives a formatted warning message.
type WarnRoutine func(msg string)

var (
	dieRoutine  DieRoutine  = defaultDie
	warnRoutine WarnRoutine = defaultWarn
)

func defaultDie(msg string) {
	fmt.Fprintf(os.Stderr, "fatal: %s\n", msg)
	os.Exit(128)
}

func defaultWarn(msg string) {
	logger().Warn(msg)
}

// SetDieRoutine installs fn as the fatal sink and returns the previous
// routine. A nil fn reinstalls the default.
func SetDieRoutine(fn DieRoutine) DieRoutine {
	old := dieRoutine
	if fn == nil {
		fn = defaultDie
	}
	dieRoutine = fn
	return old
}

// SetWarnRoutine installs fn as the warning sink and returns the previous
// routine. A nil fn reinstalls the default.
func SetWarnRoutine(fn WarnRoutine) WarnRoutine {
	old := warnRoutine
	if fn == nil {
		fn = defaultWarn
	}
	warnRoutine = fn
	return old
}

// Dief reports a fatal condition and terminates the process. It never
// returns, even when a registered routine misbehaves.
func Dief(format string, args ...any) {
	dieRoutine(fmt.Sprintf(format, args...))
	panic("diag: die routine returned")
}

// Warningf reports a non-fatal condition.
func Warningf(format string, args ...any) {
	warnRoutine(fmt.Sprintf(format, args...))
}
