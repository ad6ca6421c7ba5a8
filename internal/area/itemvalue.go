package area

import "strings"

// ItemValue is the five-slot value block of a Rom object, interpreted
// according to its item type.
type ItemValue interface {
	// Slots returns the five raw slot values in file order.
	Slots() [5]any
}

// WeaponValue is the value block of a weapon.
type WeaponValue struct {
	WeaponClass string `json:"weapon_class"`
	DiceNumber  int    `json:"dice_number"`
	DiceSides   int    `json:"dice_sides"`
	DamageNoun  string `json:"damage_noun"`
	Flags       int64  `json:"flags"`
}

// Slots implements ItemValue.
func (v *WeaponValue) Slots() [5]any {
	return [5]any{v.WeaponClass, v.DiceNumber, v.DiceSides, v.DamageNoun, v.Flags}
}

// ContainerValue is the value block of a container.
type ContainerValue struct {
	Capacity         int   `json:"capacity"`
	Flags            int64 `json:"flags"`
	Key              int   `json:"key"`
	MaxWeight        int   `json:"max_weight"`
	WeightMultiplier int   `json:"weight_multiplier"`
}

// Slots implements ItemValue.
func (v *ContainerValue) Slots() [5]any {
	return [5]any{v.Capacity, v.Flags, v.Key, v.MaxWeight, v.WeightMultiplier}
}

// DrinkValue is the value block of a drink container or fountain.
type DrinkValue struct {
	Capacity  int    `json:"capacity"`
	Remaining int    `json:"remaining"`
	Liquid    string `json:"liquid"`
	Poisoned  int    `json:"poisoned"`
	Unused    int    `json:"unused"`
}

// Slots implements ItemValue.
func (v *DrinkValue) Slots() [5]any {
	return [5]any{v.Capacity, v.Remaining, v.Liquid, v.Poisoned, v.Unused}
}

// WandValue is the value block of a wand or staff.
type WandValue struct {
	Level      int    `json:"level"`
	MaxCharges int    `json:"max_charges"`
	Charges    int    `json:"charges"`
	Spell      string `json:"spell"`
	Unused     int    `json:"unused"`
}

// Slots implements ItemValue.
func (v *WandValue) Slots() [5]any {
	return [5]any{v.Level, v.MaxCharges, v.Charges, v.Spell, v.Unused}
}

// SpellValue is the value block of a potion, pill or scroll.
type SpellValue struct {
	Level  int       `json:"level"`
	Spells [4]string `json:"spells"`
}

// Slots implements ItemValue.
func (v *SpellValue) Slots() [5]any {
	return [5]any{v.Level, v.Spells[0], v.Spells[1], v.Spells[2], v.Spells[3]}
}

// FlagsValue is the value block of every other item type: five flag slots.
type FlagsValue struct {
	Flags [5]int64 `json:"flags"`
}

// Slots implements ItemValue.
func (v *FlagsValue) Slots() [5]any {
	return [5]any{v.Flags[0], v.Flags[1], v.Flags[2], v.Flags[3], v.Flags[4]}
}

var weaponValueSchema = Schema[WeaponValue]{
	WordField("weapon_class", func(v *WeaponValue) *string { return &v.WeaponClass }),
	NumberField("dice_number", func(v *WeaponValue) *int { return &v.DiceNumber }),
	NumberField("dice_sides", func(v *WeaponValue) *int { return &v.DiceSides }),
	WordField("damage_noun", func(v *WeaponValue) *string { return &v.DamageNoun }),
	FlagField("weapon_flags", func(v *WeaponValue) *int64 { return &v.Flags }),
}

var containerValueSchema = Schema[ContainerValue]{
	NumberField("capacity", func(v *ContainerValue) *int { return &v.Capacity }),
	FlagField("container_flags", func(v *ContainerValue) *int64 { return &v.Flags }),
	NumberField("key", func(v *ContainerValue) *int { return &v.Key }),
	NumberField("max_weight", func(v *ContainerValue) *int { return &v.MaxWeight }),
	NumberField("weight_multiplier", func(v *ContainerValue) *int { return &v.WeightMultiplier }),
}

var drinkValueSchema = Schema[DrinkValue]{
	NumberField("capacity", func(v *DrinkValue) *int { return &v.Capacity }),
	NumberField("remaining", func(v *DrinkValue) *int { return &v.Remaining }),
	WordField("liquid", func(v *DrinkValue) *string { return &v.Liquid }),
	NumberField("poisoned", func(v *DrinkValue) *int { return &v.Poisoned }),
	NumberField("unused", func(v *DrinkValue) *int { return &v.Unused }),
}

var wandValueSchema = Schema[WandValue]{
	NumberField("level", func(v *WandValue) *int { return &v.Level }),
	NumberField("max_charges", func(v *WandValue) *int { return &v.MaxCharges }),
	NumberField("charges", func(v *WandValue) *int { return &v.Charges }),
	WordField("spell", func(v *WandValue) *string { return &v.Spell }),
	NumberField("unused", func(v *WandValue) *int { return &v.Unused }),
}

var spellValueSchema = Schema[SpellValue]{
	NumberField("level", func(v *SpellValue) *int { return &v.Level }),
	WordField("spell1", func(v *SpellValue) *string { return &v.Spells[0] }),
	WordField("spell2", func(v *SpellValue) *string { return &v.Spells[1] }),
	WordField("spell3", func(v *SpellValue) *string { return &v.Spells[2] }),
	WordField("spell4", func(v *SpellValue) *string { return &v.Spells[3] }),
}

var flagsValueSchema = Schema[FlagsValue]{
	FlagField("value0", func(v *FlagsValue) *int64 { return &v.Flags[0] }),
	FlagField("value1", func(v *FlagsValue) *int64 { return &v.Flags[1] }),
	FlagField("value2", func(v *FlagsValue) *int64 { return &v.Flags[2] }),
	FlagField("value3", func(v *FlagsValue) *int64 { return &v.Flags[3] }),
	FlagField("value4", func(v *FlagsValue) *int64 { return &v.Flags[4] }),
}

// readItemValue reads the value block whose layout is selected by the
// object's item type word. Matching is case-insensitive.
func readItemValue(c *Cursor, itemType string) (ItemValue, error) {
	switch strings.ToLower(itemType) {
	case "weapon":
		return asItemValue(readInto(c, weaponValueSchema))
	case "container":
		return asItemValue(readInto(c, containerValueSchema))
	case "drink", "fountain":
		return asItemValue(readInto(c, drinkValueSchema))
	case "wand", "staff":
		return asItemValue(readInto(c, wandValueSchema))
	case "potion", "pill", "scroll":
		return asItemValue(readInto(c, spellValueSchema))
	default:
		return asItemValue(readInto(c, flagsValueSchema))
	}
}

// asItemValue drops the typed nil a failed read would otherwise leak into
// the interface.
func asItemValue[T any, P interface {
	*T
	ItemValue
}](v P, err error) (ItemValue, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}
