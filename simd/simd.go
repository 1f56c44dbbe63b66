// Package simd provides fast byte and substring search for the prefilters.
//
// Single-byte search delegates to bytes.IndexByte, which the Go runtime
// already vectorizes on every major platform. Searches for two or three
// bytes use SWAR (SIMD Within A Register): eight bytes are tested at once
// with uint64 arithmetic. On CPUs with wide load ports the SWAR loop is
// unrolled to 32 bytes per iteration.
package simd

import (
	"bytes"

	"golang.org/x/sys/cpu"
)

// wideLoop selects the unrolled SWAR loop.
var wideLoop = cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
func Memchr(haystack []byte, needle byte) int {
	return bytes.IndexByte(haystack, needle)
}

// Memchr2 returns the index of the first instance of either needle1 or
// needle2 in haystack, or -1 if neither is present.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	if needle1 == needle2 {
		return Memchr(haystack, needle1)
	}
	return memchrN(haystack, [3]byte{needle1, needle2, needle2})
}

// Memchr3 returns the index of the first instance of needle1, needle2, or
// needle3 in haystack, or -1 if none are present.
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	return memchrN(haystack, [3]byte{needle1, needle2, needle3})
}
