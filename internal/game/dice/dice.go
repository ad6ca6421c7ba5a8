// Package dice rolls the hit point, mana and damage dice carried by area
// file mobiles.
package dice

import (
	"fmt"

	"github.com/cory-johannsen/mudarea/internal/area"
)

// RollResult holds the full audit trail for a single dice roll.
//
// Postcondition: Total() == sum(Rolls) + Dice.Bonus.
type RollResult struct {
	Dice  area.Dice // the expression that was rolled
	Rolls []int     // individual die results before the bonus
}

// Total returns the sum of all die results plus the bonus.
//
// Postcondition: return value == sum(r.Rolls) + r.Dice.Bonus.
func (r RollResult) Total() int {
	total := r.Dice.Bonus
	for _, d := range r.Rolls {
		total += d
	}
	return total
}

// String returns a human-readable audit string in the format:
//
//	"2d6+3 → [4 5] +3 = 12"
func (r RollResult) String() string {
	return fmt.Sprintf("%s → %v %+d = %d", r.Dice, r.Rolls, r.Dice.Bonus, r.Total())
}

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
