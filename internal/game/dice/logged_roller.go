package dice

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/mudarea/internal/area"
)

// Roller wraps a Source and logger to provide logged dice rolling.
// All rolls are logged at debug level with expression, dice values, bonus, and total.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Roll evaluates d and logs the result at debug level.
//
// Postcondition: result logged; returns RollResult or error.
func (r *Roller) Roll(d area.Dice) (RollResult, error) {
	result, err := Roll(d, r.src)
	if err != nil {
		return RollResult{}, err
	}
	r.logger.Debug("dice roll",
		zap.Stringer("expression", result.Dice),
		zap.Ints("dice", result.Rolls),
		zap.Int("bonus", result.Dice.Bonus),
		zap.Int("total", result.Total()),
	)
	return result, nil
}

// MobStats are rolled hit points and one sample damage roll for a mobile.
type MobStats struct {
	Vnum      int
	HitPoints int
	Mana      int
	Damage    int
}

// RollMob rolls the hit, mana and damage dice of a mobile the way a game
// instantiates it. Merc mobiles have no mana dice.
//
// Precondition: mob must be a *area.RomMob or *area.MercMob.
// Postcondition: Returns the rolled stats or the first roll error.
func (r *Roller) RollMob(mob area.MobRecord) (MobStats, error) {
	var hit, mana, dam area.Dice
	switch m := mob.(type) {
	case *area.RomMob:
		hit, mana, dam = m.Hit, m.Mana, m.Damage
	case *area.MercMob:
		hit, dam = m.Hit, m.Damage
	default:
		return MobStats{}, fmt.Errorf("dice: unsupported mobile type %T", mob)
	}

	stats := MobStats{Vnum: mob.Base().Vnum}
	for _, roll := range []struct {
		d   area.Dice
		out *int
	}{{hit, &stats.HitPoints}, {mana, &stats.Mana}, {dam, &stats.Damage}} {
		res, err := r.Roll(roll.d)
		if err != nil {
			return MobStats{}, fmt.Errorf("mobile %d: %w", stats.Vnum, err)
		}
		*roll.out = res.Total()
	}
	return stats, nil
}
