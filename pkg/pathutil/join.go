// Package pathutil concatenates path segments into fixed-capacity buffers,
// collapsing redundant separators. It is not a path-normalization library:
// segments are copied as given, and only the seam between adjacent segments
// is tidied.
package pathutil

import "golang.org/x/sys/unix"

// MaxPath is the platform path-length limit sized for fixed path buffers,
// terminator included.
const MaxPath = unix.PathMax

const separator = '/'

// JoinInto concatenates segs into out with exactly one separator between
// adjacent non-empty segments, NUL-terminates the result, and returns its
// length excluding the terminator. A segment's leading separator is skipped
// when the buffer already ends with one; empty segments contribute nothing.
//
// out must have capacity for the joined path plus the terminator. That is a
// caller contract; no bounds checking is performed here.
func JoinInto(out []byte, segs ...string) int {
	w := 0
	for i, seg := range segs {
		if i > 0 && w > 0 && out[w-1] == separator &&
			len(seg) > 0 && seg[0] == separator {
			seg = seg[1:]
		}
		if len(seg) == 0 {
			continue
		}
		w += copy(out[w:], seg)
		if i < len(segs)-1 && out[w-1] != separator {
			out[w] = separator
			w++
		}
	}
	out[w] = 0
	return w
}

// JoinPairInto is the fixed-arity convenience over a two-segment sequence.
func JoinPairInto(out []byte, a, b string) int {
	return JoinInto(out, a, b)
}

// Join is the allocating convenience over JoinInto, for callers without a
// buffer to fill. The result must fit in MaxPath bytes.
func Join(segs ...string) string {
	var out [MaxPath]byte
	n := JoinInto(out[:], segs...)
	return string(out[:n])
}
