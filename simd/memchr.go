package simd

import (
	"encoding/binary"
	"math/bits"
)

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// zeroBytes marks, in the high bit of each byte, the bytes of v that are
// zero. Only the lowest marked byte is exact; that is all callers use.
func zeroBytes(v uint64) uint64 {
	return (v - lo8) & ^v & hi8
}

// matchMask marks the bytes of chunk equal to any of the broadcast needles.
func matchMask(chunk, m1, m2, m3 uint64) uint64 {
	return zeroBytes(chunk^m1) | zeroBytes(chunk^m2) | zeroBytes(chunk^m3)
}

// memchrN finds the first byte equal to any of needles.
func memchrN(haystack []byte, needles [3]byte) int {
	m1 := uint64(needles[0]) * lo8
	m2 := uint64(needles[1]) * lo8
	m3 := uint64(needles[2]) * lo8

	i := 0
	if wideLoop {
		for ; i+32 <= len(haystack); i += 32 {
			a := matchMask(binary.LittleEndian.Uint64(haystack[i:]), m1, m2, m3)
			b := matchMask(binary.LittleEndian.Uint64(haystack[i+8:]), m1, m2, m3)
			c := matchMask(binary.LittleEndian.Uint64(haystack[i+16:]), m1, m2, m3)
			d := matchMask(binary.LittleEndian.Uint64(haystack[i+24:]), m1, m2, m3)
			if a|b|c|d == 0 {
				continue
			}
			switch {
			case a != 0:
				return i + bits.TrailingZeros64(a)/8
			case b != 0:
				return i + 8 + bits.TrailingZeros64(b)/8
			case c != 0:
				return i + 16 + bits.TrailingZeros64(c)/8
			}
			return i + 24 + bits.TrailingZeros64(d)/8
		}
	}
	for ; i+8 <= len(haystack); i += 8 {
		if m := matchMask(binary.LittleEndian.Uint64(haystack[i:]), m1, m2, m3); m != 0 {
			return i + bits.TrailingZeros64(m)/8
		}
	}
	for ; i < len(haystack); i++ {
		if c := haystack[i]; c == needles[0] || c == needles[1] || c == needles[2] {
			return i
		}
	}
	return -1
}
