package planner

import (
	"encoding/binary"
)

// State is a point in the search space: the next free day of every location
// and the crops still to be scheduled. Remaining holds crop indices and is
// always a sub-sequence of 0..n-1, so two paths that scheduled the same crops
// in a different order end with identical slices.
type State struct {
	Availability []int
	Remaining    []int
}

// Signature returns the canonical key used for duplicate suppression. It
// encodes the availability vector followed by the remaining set as a bitmask,
// which stays canonical even if Remaining were ever produced out of order.
func (s State) Signature() string {
	buf := make([]byte, 0, len(s.Availability)*2+8)
	for _, day := range s.Availability {
		buf = binary.AppendUvarint(buf, uint64(day))
	}
	var mask uint64
	for _, c := range s.Remaining {
		mask |= 1 << uint(c)
	}
	buf = binary.LittleEndian.AppendUint64(buf, mask)
	return string(buf)
}

// without returns a copy of s minus the element at position i, keeping the
// relative order of the rest.
func without(s []int, i int) []int {
	out := make([]int, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}
