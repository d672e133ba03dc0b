package pathutil

import "path/filepath"

// PrefixFilename applies prefix to the name of a random file on the
// filesystem: arg is returned unchanged when prefix is empty or arg is
// absolute, otherwise the two are concatenated as-is. The prefix carries its
// own trailing separator by contract; none is inserted. Unlike index-aware
// prefixing, this never consults repository state.
func PrefixFilename(prefix, arg string) string {
	if prefix == "" || filepath.IsAbs(arg) {
		return arg
	}
	return prefix + arg
}
