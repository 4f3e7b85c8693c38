package nlcmp

import "bytes"

// DefaultBlockSize is the block size used by a zero Comparator.
const DefaultBlockSize = 128

// Mismatch returns the length of the common prefix of l and r, i.e. the
// index of the first differing byte or min(len(l), len(r)). It skips whole
// matching blocks of block bytes before it scans the tail byte by byte. The
// result does not depend on block.
func Mismatch(l, r []byte, block int) int {
	n := min(len(l), len(r))
	off := 0
	if block > 1 {
		for off+block <= n && bytes.Equal(l[off:off+block], r[off:off+block]) {
			off += block
		}
	}
	for off < n && l[off] == r[off] {
		off++
	}
	return off
}
