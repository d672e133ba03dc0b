// Package buf provides checked size arithmetic for allocation requests.
package buf

import (
	"math"
	"math/bits"
)

// Add returns a+b, with ok = false when the sum would not fit in an int.
// Both operands must be non-negative allocation sizes.
func Add(a, b int) (int, bool) {
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 || sum > math.MaxInt {
		return 0, false
	}
	return int(sum), true
}

// Mul returns a*b, with ok = false when the product would not fit in an int.
// This guards count*elementSize calculations before they reach an allocator.
func Mul(a, b int) (int, bool) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return int(lo), true
}
