package simd

import "bytes"

// Memmem returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack. An empty needle matches at 0.
//
// Candidates are found by scanning for the rarest byte of needle and then
// verified. Once verification has failed too often relative to the
// progress made, the rest of the haystack is handed to bytes.Index, which
// is linear in the worst case.
func Memmem(haystack, needle []byte) int {
	switch {
	case len(needle) == 0:
		return 0
	case len(needle) > len(haystack):
		return -1
	case len(needle) == 1:
		return Memchr(haystack, needle[0])
	}

	rare := RarestByte(needle)
	rareByte := needle[rare]
	failures := 0
	pos := rare
	for pos < len(haystack) {
		i := Memchr(haystack[pos:], rareByte)
		if i < 0 {
			return -1
		}
		pos += i
		start := pos - rare
		if start+len(needle) > len(haystack) {
			return -1
		}
		if bytes.Equal(haystack[start:start+len(needle)], needle) {
			return start
		}
		failures++
		if failures > 16 && failures > pos/8 {
			if j := bytes.Index(haystack[start+1:], needle); j >= 0 {
				return start + 1 + j
			}
			return -1
		}
		pos++
	}
	return -1
}
