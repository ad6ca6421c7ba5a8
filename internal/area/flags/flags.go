// Package flags implements the letter-encoded bitmask codec shared by every
// area file dialect, together with named tables for the common flag fields.
package flags

import (
	"fmt"
	"math"
)

// lowerBase is the bit position of 'a'; lowercase letters continue the
// sequence after 'Z'.
const lowerBase = 26

// Letter returns the weight of a single flag letter.
//
// Postcondition: 'A'..'Z' map to 2^0..2^25, 'a'..'z' map to 2^26..2^51;
// any other byte returns (0, false).
func Letter(ch byte) (int64, bool) {
	switch {
	case ch >= 'A' && ch <= 'Z':
		return int64(1) << (ch - 'A'), true
	case ch >= 'a' && ch <= 'z':
		return int64(1) << (lowerBase + int(ch-'a')), true
	default:
		return 0, false
	}
}

// IsLetter reports whether ch contributes a weight to a flag word.
func IsLetter(ch byte) bool {
	_, ok := Letter(ch)
	return ok
}

// Decode sums the weight of every letter in word. Two-letter codes such as
// "aa" are not positional: each letter adds its own weight.
//
// Precondition: word contains only ASCII letters.
// Postcondition: returns the summed mask, or an error naming the first
// non-letter byte or reporting overflow.
func Decode(word string) (int64, error) {
	var mask int64
	for i := 0; i < len(word); i++ {
		w, ok := Letter(word[i])
		if !ok {
			return 0, fmt.Errorf("flags: %q is not a flag letter in %q", word[i], word)
		}
		if mask > math.MaxInt64-w {
			return 0, fmt.Errorf("flags: %q overflows a 64-bit mask", word)
		}
		mask += w
	}
	return mask, nil
}

// MustDecode is Decode for package-level tables; it panics on invalid input.
func MustDecode(word string) int64 {
	mask, err := Decode(word)
	if err != nil {
		panic(err)
	}
	return mask
}
