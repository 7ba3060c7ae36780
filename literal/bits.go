package literal

import "math/bits"

// BitCeil returns the smallest power of two that is >= n. Like std::bit_ceil,
// BitCeil(0) and BitCeil(1) are both 1.
func BitCeil(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
