// SPDX-License-Identifier: MIT

/*
Package bitint provides the power-of-two arithmetic the transform code
depends on: sizing sample buffers and checking the radix-2 precondition.

All functions are O(1), allocation free and safe for concurrent use.

Usage:

	// Sample count for one second at 1000 Hz, inclusive of the end point.
	size := bitint.NextPowerOfTwo(1000*1 + 1) // 1024

	// Radix-2 transforms only accept power-of-two lengths.
	ok := bitint.IsPowerOfTwo(len(samples))

----------------------------------------------------------------------

NextPowerOfTwo shifts 1 left by the bit length of (n-1). The subtraction
keeps exact powers of two unchanged:

	n = 8:  bits.Len(7) = 3, 1<<3 = 8
	n = 9:  bits.Len(8) = 4, 1<<4 = 16

Without it, 8 would map to 16.
*/
package bitint

import "math/bits"

// NextPowerOfTwo returns the smallest power of two >= n. Values <= 0 yield 1.
//
//	Input  Output
//	1      1
//	1001   1024
//	2001   2048
//	0      1
func NextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// NextPowerOfTwo32 is NextPowerOfTwo for unsigned 32-bit sample counts.
// Inputs above 1<<31 overflow to 0.
func NextPowerOfTwo32(n uint32) uint32 {
	if n == 0 {
		return 1
	}
	return 1 << bits.Len32(n-1)
}

// IsPowerOfTwo reports whether n is a positive power of two.
//
//	Input  Output  Binary
//	8      true    1000 & 0111 = 0000
//	6      false   0110 & 0101 = 0100
//	0      false   not positive
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Log2 returns the base-2 logarithm of a power of two, i.e. the recursion
// depth of a radix-2 transform of that length. The result is undefined when
// n is not a power of two.
func Log2(n int) int {
	if n <= 0 {
		return 0
	}
	return bits.TrailingZeros(uint(n))
}
