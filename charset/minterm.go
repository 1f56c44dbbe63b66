package charset

import "slices"

// Minterms partitions the code point domain into the coarsest collection of
// non-empty, pairwise disjoint blocks such that every input set is a union
// of blocks. The blocks are returned ordered by their smallest member, so
// the result is deterministic for a given input.
//
// With no input sets the result is the single block Full().
func Minterms(sets []Set) []Set {
	blocks := []Set{Full()}
	for _, s := range sets {
		if s.IsEmpty() || s.IsFull() {
			continue
		}
		refined := make([]Set, 0, len(blocks)+1)
		for _, b := range blocks {
			in := b.Intersect(s)
			if in.IsEmpty() {
				refined = append(refined, b)
				continue
			}
			out := b.Difference(s)
			refined = append(refined, in)
			if !out.IsEmpty() {
				refined = append(refined, out)
			}
		}
		blocks = refined
	}
	slices.SortFunc(blocks, func(a, b Set) int {
		return int(a.ranges[0].Lo - b.ranges[0].Lo)
	})
	return blocks
}
