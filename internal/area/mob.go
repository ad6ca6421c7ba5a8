package area

import "strings"

var romMobHeadSchema = Schema[RomMob]{
	NumberField("vnum", func(m *RomMob) *int { return &m.Vnum }).Skip(),
	StringField("name", func(m *RomMob) *string { return &m.Name }),
	StringField("short_desc", func(m *RomMob) *string { return &m.ShortDesc }),
	StringField("long_desc", func(m *RomMob) *string { return &m.LongDesc }),
	StringField("description", func(m *RomMob) *string { return &m.Description }),
	StringField("race", func(m *RomMob) *string { return &m.Race }),
	FlagField("act", func(m *RomMob) *int64 { return &m.Act }),
	FlagField("affected_by", func(m *RomMob) *int64 { return &m.AffectedBy }),
	NumberField("alignment", func(m *RomMob) *int { return &m.Alignment }),
	NumberField("group", func(m *RomMob) *int { return &m.Group }),
	NumberField("level", func(m *RomMob) *int { return &m.Level }),
	NumberField("hitroll", func(m *RomMob) *int { return &m.Hitroll }),
	DiceField("hit", func(m *RomMob) *Dice { return &m.Hit }),
	DiceField("mana", func(m *RomMob) *Dice { return &m.Mana }),
	DiceField("damage", func(m *RomMob) *Dice { return &m.Damage }),
	WordField("damtype", func(m *RomMob) *string { return &m.DamType }),
}

// armorClassSchema reads the four armor class values, each multiplied by
// scale.
func armorClassSchema(scale int64) Schema[ArmorClass] {
	return Schema[ArmorClass]{
		NumberField("ac_pierce", func(a *ArmorClass) *int { return &a.Pierce }).Transform(Scale(scale)),
		NumberField("ac_bash", func(a *ArmorClass) *int { return &a.Bash }).Transform(Scale(scale)),
		NumberField("ac_slash", func(a *ArmorClass) *int { return &a.Slash }).Transform(Scale(scale)),
		NumberField("ac_exotic", func(a *ArmorClass) *int { return &a.Exotic }).Transform(Scale(scale)),
	}
}

var romArmorClassSchema = armorClassSchema(10)

var romMobTailSchema = Schema[RomMob]{
	FlagField("off_flags", func(m *RomMob) *int64 { return &m.OffFlags }),
	FlagField("imm_flags", func(m *RomMob) *int64 { return &m.ImmFlags }),
	FlagField("res_flags", func(m *RomMob) *int64 { return &m.ResFlags }),
	FlagField("vuln_flags", func(m *RomMob) *int64 { return &m.VulnFlags }),
	WordField("start_pos", func(m *RomMob) *string { return &m.StartPos }),
	WordField("default_pos", func(m *RomMob) *string { return &m.DefaultPos }),
	WordField("sex", func(m *RomMob) *string { return &m.Sex }),
	NumberField("wealth", func(m *RomMob) *int { return &m.Wealth }).Transform(Divide(20)),
	FlagField("form", func(m *RomMob) *int64 { return &m.Form }),
	FlagField("parts", func(m *RomMob) *int64 { return &m.Parts }),
	WordField("size", func(m *RomMob) *string { return &m.Size }),
	WordField("material", func(m *RomMob) *string { return &m.Material }),
}

var mobprogSchema = Schema[Mobprog]{
	WordField("trig_type", func(p *Mobprog) *string { return &p.TrigType }),
	NumberField("vnum", func(p *Mobprog) *int { return &p.Vnum }),
	StringField("trig_phrase", func(p *Mobprog) *string { return &p.TrigPhrase }),
}

// flagCategory names a mobile flag set that an F line may clear bits from.
type flagCategory int

const (
	categoryAct flagCategory = iota
	categoryAff
	categoryOff
	categoryImm
	categoryRes
	categoryVuln
	categoryForm
	categoryParts
	numFlagCategories
)

var flagCategories = [numFlagCategories]struct {
	key   string
	field func(*RomMob) *int64
}{
	categoryAct:   {"act", func(m *RomMob) *int64 { return &m.Act }},
	categoryAff:   {"aff", func(m *RomMob) *int64 { return &m.AffectedBy }},
	categoryOff:   {"off", func(m *RomMob) *int64 { return &m.OffFlags }},
	categoryImm:   {"imm", func(m *RomMob) *int64 { return &m.ImmFlags }},
	categoryRes:   {"res", func(m *RomMob) *int64 { return &m.ResFlags }},
	categoryVuln:  {"vul", func(m *RomMob) *int64 { return &m.VulnFlags }},
	categoryForm:  {"for", func(m *RomMob) *int64 { return &m.Form }},
	categoryParts: {"par", func(m *RomMob) *int64 { return &m.Parts }},
}

// lookupFlagCategory matches word against the category keys in order. A
// word matches when either one is a prefix of the other, so both "aff" and
// "affect" select the affect flags.
func lookupFlagCategory(word string) (flagCategory, bool) {
	w := strings.ToLower(word)
	if w == "" {
		return 0, false
	}
	for i, fc := range flagCategories {
		if strings.HasPrefix(fc.key, w) || strings.HasPrefix(w, fc.key) {
			return flagCategory(i), true
		}
	}
	return 0, false
}

func readRomMob(c *Cursor, vnum int) (MobRecord, error) {
	mob := &RomMob{
		MudBase:  MudBase{Vnum: vnum, ExtraDescriptions: []*ExtraDescription{}},
		Mobprogs: []*Mobprog{},
	}
	if err := romMobHeadSchema.Read(c, mob); err != nil {
		return nil, err
	}
	if err := romArmorClassSchema.Read(c, &mob.AC); err != nil {
		return nil, err
	}
	if err := romMobTailSchema.Read(c, mob); err != nil {
		return nil, err
	}
	for {
		letter, err := c.PeekLetter()
		if err != nil {
			return nil, err
		}
		switch letter {
		case 'F':
			c.pos++
			word, err := c.ReadWord()
			if err != nil {
				return nil, err
			}
			category, ok := lookupFlagCategory(word)
			if !ok {
				return nil, c.Failf("mobile %d: flag remove: flag not found %q", vnum, word)
			}
			mask, err := c.ReadFlag()
			if err != nil {
				return nil, err
			}
			*flagCategories[category].field(mob) &^= mask
		case 'M':
			c.pos++
			prog, err := readInto(c, mobprogSchema)
			if err != nil {
				return nil, err
			}
			mob.Mobprogs = append(mob.Mobprogs, prog)
		default:
			return mob, nil
		}
	}
}

var mercMobSchema = Schema[MercMob]{
	NumberField("vnum", func(m *MercMob) *int { return &m.Vnum }).Skip(),
	StringField("name", func(m *MercMob) *string { return &m.Name }),
	StringField("short_desc", func(m *MercMob) *string { return &m.ShortDesc }),
	StringField("long_desc", func(m *MercMob) *string { return &m.LongDesc }),
	StringField("description", func(m *MercMob) *string { return &m.Description }),
	FlagField("act", func(m *MercMob) *int64 { return &m.Act }),
	FlagField("affected_by", func(m *MercMob) *int64 { return &m.AffectedBy }),
	NumberField("alignment", func(m *MercMob) *int { return &m.Alignment }),
	Discard[MercMob]("mob_type", KindLetter).Transform(ExpectText("S")),
	NumberField("level", func(m *MercMob) *int { return &m.Level }),
	NumberField("hitroll", func(m *MercMob) *int { return &m.Hitroll }),
	NumberField("ac", func(m *MercMob) *int { return &m.AC }),
	DiceField("hit", func(m *MercMob) *Dice { return &m.Hit }),
	DiceField("damage", func(m *MercMob) *Dice { return &m.Damage }),
	NumberField("gold", func(m *MercMob) *int { return &m.Gold }),
	NumberField("experience", func(m *MercMob) *int { return &m.Experience }),
	NumberField("default_pos", func(m *MercMob) *int { return &m.DefaultPos }),
	NumberField("start_pos", func(m *MercMob) *int { return &m.StartPos }),
	NumberField("sex", func(m *MercMob) *int { return &m.Sex }),
}

func readMercMob(c *Cursor, vnum int) (MobRecord, error) {
	mob := &MercMob{MudBase: MudBase{Vnum: vnum, ExtraDescriptions: []*ExtraDescription{}}}
	if err := mercMobSchema.Read(c, mob); err != nil {
		return nil, err
	}
	return mob, nil
}
