package dice

import (
	"fmt"

	"github.com/cory-johannsen/mudarea/internal/area"
)

// Validate reports whether d can be rolled.
func Validate(d area.Dice) error {
	if d.Number < 0 {
		return fmt.Errorf("dice: negative die count in %s", d)
	}
	if d.Sides < 0 {
		return fmt.Errorf("dice: negative die sides in %s", d)
	}
	return nil
}

// Roll evaluates d using the given Source. Each of the Number dice lands in
// [1, Sides), so dice with fewer than two sides roll nothing and contribute
// only the bonus.
//
// Precondition: src must be non-nil.
// Postcondition: len(result.Rolls) == d.Number when d.Sides > 1, else 0.
// result.Total() == sum(result.Rolls) + d.Bonus.
func Roll(d area.Dice, src Source) (RollResult, error) {
	if err := Validate(d); err != nil {
		return RollResult{}, err
	}
	if d.Sides <= 1 {
		return RollResult{Dice: d, Rolls: []int{}}, nil
	}
	rolls := make([]int, d.Number)
	for i := range rolls {
		rolls[i] = 1 + src.Intn(d.Sides-1)
	}
	return RollResult{Dice: d, Rolls: rolls}, nil
}

// Range returns the smallest and largest totals d can produce.
//
// Precondition: d must pass Validate.
func Range(d area.Dice) (lo, hi int) {
	if d.Sides <= 1 {
		return d.Bonus, d.Bonus
	}
	return d.Number + d.Bonus, d.Number*(d.Sides-1) + d.Bonus
}

// Average returns the expected total of d.
//
// Precondition: d must pass Validate.
func Average(d area.Dice) float64 {
	if d.Sides <= 1 {
		return float64(d.Bonus)
	}
	return float64(d.Number)*float64(d.Sides)/2 + float64(d.Bonus)
}
