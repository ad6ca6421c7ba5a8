package area

import "fmt"

var romObjectHeaderSchema = Schema[RomObject]{
	NumberField("vnum", func(o *RomObject) *int { return &o.Vnum }).Skip(),
	StringField("name", func(o *RomObject) *string { return &o.Name }),
	StringField("short_desc", func(o *RomObject) *string { return &o.ShortDesc }),
	StringField("description", func(o *RomObject) *string { return &o.Description }),
	StringField("material", func(o *RomObject) *string { return &o.Material }),
	WordField("item_type", func(o *RomObject) *string { return &o.ItemType }),
	FlagField("extra_flags", func(o *RomObject) *int64 { return &o.ExtraFlags }),
	FlagField("wear_flags", func(o *RomObject) *int64 { return &o.WearFlags }),
}

var romObjectTailSchema = Schema[RomObject]{
	NumberField("level", func(o *RomObject) *int { return &o.Level }),
	NumberField("weight", func(o *RomObject) *int { return &o.Weight }),
	NumberField("cost", func(o *RomObject) *int { return &o.Cost }),
	CustomField("condition", KindLetter, func(o *RomObject, v Value) { o.Condition = int(v.Int) }).
		Transform(conditionPercent),
}

// conditionPercent maps a condition letter to its percentage.
func conditionPercent(v Value) (Value, error) {
	switch v.Text {
	case "P":
		return Value{Int: 100}, nil
	case "G":
		return Value{Int: 90}, nil
	case "A":
		return Value{Int: 75}, nil
	case "W":
		return Value{Int: 50}, nil
	case "D":
		return Value{Int: 25}, nil
	case "B":
		return Value{Int: 10}, nil
	case "R":
		return Value{Int: 0}, nil
	}
	return v, fmt.Errorf("unknown condition %q", v.Text)
}

// affectSchema reads an A or F affect body. Only F affects carry a bitvector.
var affectSchema = Schema[Affect]{
	NumberField("location", func(a *Affect) *int { return &a.Location }),
	NumberField("modifier", func(a *Affect) *int { return &a.Modifier }),
	FlagField("bitvector", func(a *Affect) *int64 { return &a.Bitvector }).
		When(func(a *Affect) bool { return a.Where != ToObject }),
}

var affectTargets = map[byte]AffectWhere{
	'A': ToAffects,
	'I': ToImmune,
	'R': ToResist,
	'V': ToVuln,
}

func readAffect(c *Cursor, where AffectWhere, level int) (*Affect, error) {
	af := &Affect{Where: where, Type: -1, Level: level, Duration: -1}
	if err := affectSchema.Read(c, af); err != nil {
		return nil, err
	}
	return af, nil
}

func readRomObject(c *Cursor, vnum int) (ObjectRecord, error) {
	obj := &RomObject{
		MudBase:  MudBase{Vnum: vnum, ExtraDescriptions: []*ExtraDescription{}},
		Affected: []*Affect{},
	}
	if err := romObjectHeaderSchema.Read(c, obj); err != nil {
		return nil, err
	}
	value, err := readItemValue(c, obj.ItemType)
	if err != nil {
		return nil, err
	}
	obj.Value = value
	if err := romObjectTailSchema.Read(c, obj); err != nil {
		return nil, err
	}
	for {
		letter, err := c.PeekLetter()
		if err != nil {
			return nil, err
		}
		switch letter {
		case 'A':
			c.pos++
			af, err := readAffect(c, ToObject, obj.Level)
			if err != nil {
				return nil, err
			}
			obj.Affected = append(obj.Affected, af)
		case 'F':
			c.pos++
			target, err := c.ReadLetter()
			if err != nil {
				return nil, err
			}
			where, ok := affectTargets[target]
			if !ok {
				return nil, c.Failf("object %d: bad where on flag set %q", vnum, target)
			}
			af, err := readAffect(c, where, obj.Level)
			if err != nil {
				return nil, err
			}
			obj.Affected = append(obj.Affected, af)
		case 'E':
			c.pos++
			ed, err := readExtraDescription(c)
			if err != nil {
				return nil, err
			}
			obj.ExtraDescriptions = append(obj.ExtraDescriptions, ed)
		default:
			return obj, nil
		}
	}
}

var mercObjectSchema = Schema[MercObject]{
	NumberField("vnum", func(o *MercObject) *int { return &o.Vnum }).Skip(),
	StringField("name", func(o *MercObject) *string { return &o.Name }),
	StringField("short_desc", func(o *MercObject) *string { return &o.ShortDesc }),
	StringField("description", func(o *MercObject) *string { return &o.Description }),
	StringField("action_desc", func(o *MercObject) *string { return &o.ActionDesc }),
	NumberField("item_type", func(o *MercObject) *int { return &o.ItemType }),
	FlagField("extra_flags", func(o *MercObject) *int64 { return &o.ExtraFlags }),
	FlagField("wear_flags", func(o *MercObject) *int64 { return &o.WearFlags }),
	NumberField("value0", func(o *MercObject) *int { return &o.Value[0] }),
	NumberField("value1", func(o *MercObject) *int { return &o.Value[1] }),
	NumberField("value2", func(o *MercObject) *int { return &o.Value[2] }),
	NumberField("value3", func(o *MercObject) *int { return &o.Value[3] }),
	NumberField("weight", func(o *MercObject) *int { return &o.Weight }),
	NumberField("cost", func(o *MercObject) *int { return &o.Cost }),
	Discard[MercObject]("cost_per_day", KindNumber),
}

func readMercObject(c *Cursor, vnum int) (ObjectRecord, error) {
	obj := &MercObject{
		MudBase:  MudBase{Vnum: vnum, ExtraDescriptions: []*ExtraDescription{}},
		Affected: []*Affect{},
	}
	if err := mercObjectSchema.Read(c, obj); err != nil {
		return nil, err
	}
	for {
		letter, err := c.PeekLetter()
		if err != nil {
			return nil, err
		}
		switch letter {
		case 'A':
			c.pos++
			af, err := readAffect(c, ToObject, 0)
			if err != nil {
				return nil, err
			}
			obj.Affected = append(obj.Affected, af)
		case 'E':
			c.pos++
			ed, err := readExtraDescription(c)
			if err != nil {
				return nil, err
			}
			obj.ExtraDescriptions = append(obj.ExtraDescriptions, ed)
		default:
			return obj, nil
		}
	}
}
