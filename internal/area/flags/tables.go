package flags

import "strconv"

// Name binds a symbolic name to the letter that sets it in an area file.
type Name struct {
	Name   string
	Letter string
}

// Table is an ordered set of named flags for one bitmask field.
type Table []Name

// Mask returns the bit for the named flag, or 0 when the table lacks it.
func (t Table) Mask(name string) int64 {
	for _, n := range t {
		if n.Name == name {
			return MustDecode(n.Letter)
		}
	}
	return 0
}

// Names lists the flags set in mask, in table order. Bits without a name are
// reported by their letter, or as "bitN" above 'z', so that no information
// is lost. A negative mask is read as its two's complement bits.
//
// Postcondition: the result is empty (never nil) when mask == 0.
func (t Table) Names(mask int64) []string {
	out := []string{}
	known := int64(0)
	for _, n := range t {
		bit := MustDecode(n.Letter)
		known |= bit
		if mask&bit != 0 {
			out = append(out, n.Name)
		}
	}
	rest := uint64(mask &^ known)
	for i := 0; rest != 0; i++ {
		if rest&1 != 0 {
			out = append(out, bitName(i))
		}
		rest >>= 1
	}
	return out
}

func bitName(i int) string {
	switch {
	case i < lowerBase:
		return string(rune('A' + i))
	case i < 2*lowerBase:
		return string(rune('a' + i - lowerBase))
	default:
		return "bit" + strconv.Itoa(i)
	}
}

// Act holds mobile behaviour flags.
var Act = Table{
	{"npc", "A"}, {"sentinel", "B"}, {"scavenger", "C"}, {"aggressive", "F"},
	{"stay_area", "G"}, {"wimpy", "H"}, {"pet", "I"}, {"train", "J"},
	{"practice", "K"}, {"undead", "O"}, {"cleric", "Q"}, {"mage", "R"},
	{"thief", "S"}, {"warrior", "T"}, {"noalign", "U"}, {"nopurge", "V"},
	{"outdoors", "W"}, {"indoors", "Y"}, {"is_healer", "a"}, {"gain", "b"},
	{"update_always", "c"}, {"is_changer", "d"},
}

// Affect holds affected_by flags.
var Affect = Table{
	{"blind", "A"}, {"invisible", "B"}, {"detect_evil", "C"}, {"detect_invis", "D"},
	{"detect_magic", "E"}, {"detect_hidden", "F"}, {"detect_good", "G"}, {"sanctuary", "H"},
	{"faerie_fire", "I"}, {"infrared", "J"}, {"curse", "K"}, {"poison", "M"},
	{"protect_evil", "N"}, {"protect_good", "O"}, {"sneak", "P"}, {"hide", "Q"},
	{"sleep", "R"}, {"charm", "S"}, {"flying", "T"}, {"pass_door", "U"},
	{"haste", "V"}, {"calm", "W"}, {"plague", "X"}, {"weaken", "Y"},
	{"dark_vision", "Z"}, {"berserk", "a"}, {"swim", "b"}, {"regeneration", "c"},
	{"slow", "d"},
}

// Offense holds mobile off_flags.
var Offense = Table{
	{"area_attack", "A"}, {"backstab", "B"}, {"bash", "C"}, {"berserk", "D"},
	{"disarm", "E"}, {"dodge", "F"}, {"fade", "G"}, {"fast", "H"},
	{"kick", "I"}, {"kick_dirt", "J"}, {"parry", "K"}, {"rescue", "L"},
	{"tail", "M"}, {"trip", "N"}, {"crush", "O"}, {"assist_all", "P"},
	{"assist_align", "Q"}, {"assist_race", "R"}, {"assist_players", "S"},
	{"assist_guard", "T"}, {"assist_vnum", "U"},
}

// Defense holds the shared imm/res/vuln vocabulary.
var Defense = Table{
	{"summon", "A"}, {"charm", "B"}, {"magic", "C"}, {"weapon", "D"},
	{"bash", "E"}, {"pierce", "F"}, {"slash", "G"}, {"fire", "H"},
	{"cold", "I"}, {"lightning", "J"}, {"acid", "K"}, {"poison", "L"},
	{"negative", "M"}, {"holy", "N"}, {"energy", "O"}, {"mental", "P"},
	{"disease", "Q"}, {"drowning", "R"}, {"light", "S"}, {"sound", "T"},
	{"wood", "X"}, {"silver", "Y"}, {"iron", "Z"},
}

// Form holds body form flags.
var Form = Table{
	{"edible", "A"}, {"poison", "B"}, {"magical", "C"}, {"other", "E"},
	{"animal", "G"}, {"sentient", "H"}, {"undead", "I"}, {"construct", "J"},
	{"mist", "K"}, {"intangible", "L"}, {"biped", "M"}, {"centaur", "N"},
	{"insect", "O"}, {"spider", "P"}, {"crustacean", "Q"}, {"worm", "R"},
	{"blob", "S"}, {"mammal", "V"}, {"bird", "W"}, {"reptile", "X"},
	{"snake", "Y"}, {"dragon", "Z"}, {"amphibian", "a"}, {"fish", "b"},
	{"cold_blood", "c"},
}

// Parts holds body part flags.
var Parts = Table{
	{"head", "A"}, {"arms", "B"}, {"legs", "C"}, {"heart", "D"},
	{"brains", "E"}, {"guts", "F"}, {"hands", "G"}, {"feet", "H"},
	{"fingers", "I"}, {"ear", "J"}, {"eye", "K"}, {"long_tongue", "L"},
	{"eyestalks", "M"}, {"tentacles", "N"}, {"fins", "O"}, {"wings", "P"},
	{"tail", "Q"}, {"claws", "U"}, {"fangs", "V"}, {"horns", "W"},
	{"scales", "X"}, {"tusks", "Y"},
}

// Wear holds object wear locations.
var Wear = Table{
	{"take", "A"}, {"finger", "B"}, {"neck", "C"}, {"body", "D"},
	{"head", "E"}, {"legs", "F"}, {"feet", "G"}, {"hands", "H"},
	{"arms", "I"}, {"shield", "J"}, {"about", "K"}, {"waist", "L"},
	{"wrist", "M"}, {"wield", "N"}, {"hold", "O"}, {"no_sac", "P"},
	{"float", "Q"},
}

// Room holds room_flags.
var Room = Table{
	{"dark", "A"}, {"no_mob", "C"}, {"indoors", "D"}, {"private", "J"},
	{"safe", "K"}, {"solitary", "L"}, {"pet_shop", "M"}, {"no_recall", "N"},
	{"imp_only", "O"}, {"gods_only", "P"}, {"heroes_only", "Q"},
	{"newbies_only", "R"}, {"law", "S"}, {"nowhere", "T"},
}

// Exit holds exit_info flags.
var Exit = Table{
	{"door", "A"}, {"closed", "B"}, {"locked", "C"}, {"pickproof", "F"},
	{"nopass", "G"}, {"easy", "H"}, {"hard", "I"}, {"infuriating", "J"},
	{"noclose", "K"}, {"nolock", "L"},
}
