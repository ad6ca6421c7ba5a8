package area_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/mudarea/internal/area"
)

func parseFixture(t *testing.T, name string, d area.Dialect) *area.Area {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	a, err := area.Parse(data, d, area.WithSource(name))
	require.NoError(t, err)
	return a
}

func TestParse_RomFixture_Header(t *testing.T) {
	a := parseFixture(t, "midgaard.rom.are", area.Rom)

	h, ok := a.Header.(*area.RomHeader)
	require.True(t, ok)
	assert.Equal(t, "midgaard.are", h.OriginalFilename)
	assert.Equal(t, "Midgaard", h.Name)
	assert.Equal(t, "{ All } Diku    Midgaard", h.Metadata)
	assert.Equal(t, 3000, h.FirstVnum)
	assert.Equal(t, 3099, h.LastVnum)
	assert.Equal(t, "Midgaard", a.Name())
	assert.Equal(t, "midgaard.rom.are", a.Source)
}

func TestParse_RomFixture_Helps(t *testing.T) {
	a := parseFixture(t, "midgaard.rom.are", area.Rom)

	require.Len(t, a.Helps, 2)
	assert.Equal(t, &area.Help{Level: 0, Keyword: "MIDGAARD", Text: "Midgaard is the great city.\n"}, a.Helps[0])
	assert.Equal(t, -1, a.Helps[1].Level)
	assert.Equal(t, "'CITY GUARD'", a.Helps[1].Keyword)
}

func TestParse_RomFixture_Mobiles(t *testing.T) {
	a := parseFixture(t, "midgaard.rom.are", area.Rom)

	assert.Equal(t, []int{3000, 3001}, a.Mobs.Keys())
	rec, ok := a.Mobs.Get(3000)
	require.True(t, ok)
	mob, ok := rec.(*area.RomMob)
	require.True(t, ok)

	assert.Equal(t, 3000, mob.Vnum)
	assert.Equal(t, "wizard", mob.Name)
	assert.Equal(t, "the wizard", mob.ShortDesc)
	assert.Equal(t, "human", mob.Race)
	assert.Equal(t, int64(1|2|1<<21), mob.Act)
	assert.Equal(t, int64(8|32|512), mob.AffectedBy)
	assert.Equal(t, 900, mob.Alignment)
	assert.Equal(t, 23, mob.Level)
	assert.Equal(t, area.Dice{Number: 8, Sides: 8, Bonus: 300}, mob.Hit)
	assert.Equal(t, area.Dice{Number: 2, Sides: 10, Bonus: 100}, mob.Mana)
	assert.Equal(t, area.Dice{Number: 2, Sides: 8, Bonus: 4}, mob.Damage)
	assert.Equal(t, "magic", mob.DamType)
	assert.Equal(t, area.ArmorClass{Pierce: -60, Bash: -60, Slash: -60, Exotic: 30}, mob.AC)
	// "F off E" clears E from the EF offense flags.
	assert.Equal(t, int64(32), mob.OffFlags)
	assert.Equal(t, int64(8|32), mob.ImmFlags)
	assert.Equal(t, "stand", mob.StartPos)
	assert.Equal(t, "male", mob.Sex)
	assert.Equal(t, 50, mob.Wealth)
	assert.Equal(t, int64(2047), mob.Parts)
	assert.Equal(t, "medium", mob.Size)
	assert.Equal(t, "unknown", mob.Material)
	assert.Equal(t, []*area.Mobprog{{TrigType: "greet", Vnum: 3001, TrigPhrase: "hello"}}, mob.Mobprogs)
}

func TestParse_RomFixture_Objects(t *testing.T) {
	a := parseFixture(t, "midgaard.rom.are", area.Rom)
	assert.Equal(t, []int{3000, 3001, 3002, 3003}, a.Objects.Keys())

	get := func(vnum int) *area.RomObject {
		rec, ok := a.Objects.Get(vnum)
		require.True(t, ok)
		obj, ok := rec.(*area.RomObject)
		require.True(t, ok)
		return obj
	}

	barrel := get(3000)
	assert.Equal(t, &area.DrinkValue{Capacity: 100, Remaining: 100, Liquid: "beer"}, barrel.Value)
	assert.Equal(t, 100, barrel.Condition)
	require.Len(t, barrel.ExtraDescriptions, 1)
	assert.Equal(t, "barrel", barrel.ExtraDescriptions[0].Keyword)

	sword := get(3001)
	assert.Equal(t, "weapon", sword.ItemType)
	assert.Equal(t, int64(65), sword.ExtraFlags)
	assert.Equal(t, int64(8193), sword.WearFlags)
	assert.Equal(t, &area.WeaponValue{WeaponClass: "sword", DiceNumber: 2, DiceSides: 6, DamageNoun: "slash", Flags: 4}, sword.Value)
	assert.Equal(t, 10, sword.Level)
	assert.Equal(t, 12, sword.Weight)
	assert.Equal(t, 300, sword.Cost)
	assert.Equal(t, 90, sword.Condition)
	require.Len(t, sword.Affected, 2)
	assert.Equal(t, &area.Affect{Where: area.ToObject, Type: -1, Level: 10, Duration: -1, Location: 18, Modifier: 2}, sword.Affected[0])
	assert.Equal(t, &area.Affect{Where: area.ToAffects, Type: -1, Level: 10, Duration: -1, Bitvector: 1 << 15}, sword.Affected[1])

	scroll := get(3002)
	assert.Equal(t, &area.SpellValue{Level: 12, Spells: [4]string{"word of recall", "", "", ""}}, scroll.Value)

	bag := get(3003)
	assert.Equal(t, &area.ContainerValue{Capacity: 50, Flags: 3, Key: 3005, MaxWeight: 10, WeightMultiplier: 100}, bag.Value)
	assert.Equal(t, 50, bag.Condition)
}

func TestParse_RomFixture_Rooms(t *testing.T) {
	a := parseFixture(t, "midgaard.rom.are", area.Rom)
	assert.Equal(t, []int{3001, 3005}, a.Rooms.Keys())

	rec, ok := a.Rooms.Get(3001)
	require.True(t, ok)
	room := rec.RoomData()
	assert.Equal(t, "The Temple", room.Name)
	assert.Equal(t, "You are in the southern end of the temple hall.\n", room.Description)
	assert.Equal(t, int64(4|8|1<<18), room.RoomFlags)
	assert.Equal(t, area.Sector(0), room.SectorType)
	assert.Equal(t, 150, room.HealRate)
	assert.Equal(t, 120, room.ManaRate)
	assert.Equal(t, "mages", room.Clan)
	assert.Equal(t, "Zeus", room.Owner)
	require.Len(t, room.Exits, 2)
	assert.Equal(t, &area.Exit{Door: area.North, Description: "You see the temple altar.\n", Key: -1, Destination: 3054}, room.Exits[0])
	assert.Equal(t, &area.Exit{Door: area.South, Keyword: "door", ExitInfo: 1, ResetFlags: 1, Key: 3030, Destination: 3005}, room.Exits[1])
	require.Len(t, room.ExtraDescriptions, 1)

	rec, ok = a.Rooms.Get(3005)
	require.True(t, ok)
	square := rec.RoomData()
	assert.Equal(t, area.Sector(1), square.SectorType)
	assert.Equal(t, 100, square.HealRate)
	assert.Equal(t, 100, square.ManaRate)
	assert.Equal(t, area.ExitIsDoor, square.Exits[0].ExitInfo)
}

func TestParse_RomFixture_FlatSections(t *testing.T) {
	a := parseFixture(t, "midgaard.rom.are", area.Rom)

	require.Len(t, a.Resets, 6)
	assert.Equal(t, &area.Reset{Command: "M", Arg1: 3000, Arg2: 1, Arg3: 3001, Comment: "wizard in temple"}, a.Resets[0])
	assert.Equal(t, &area.Reset{Command: "O", Arg1: 3000, Arg3: 3005}, a.Resets[1])
	assert.Equal(t, &area.Reset{Command: "G", IfFlag: 1, Arg1: 3001}, a.Resets[2])
	assert.Equal(t, &area.Reset{Command: "E", IfFlag: 1, Arg1: 3001, Arg3: 16}, a.Resets[3])
	assert.Equal(t, &area.Reset{Command: "D", Arg1: 3001, Arg2: 2, Arg3: 1}, a.Resets[4])
	assert.Equal(t, &area.Reset{Command: "R", Arg1: 3001, Arg2: 6}, a.Resets[5])

	require.Len(t, a.Shops, 1)
	assert.Equal(t, &area.Shop{
		Keeper:     3000,
		BuyType:    [area.MaxTrades]int{2, 3, 4, 0, 0},
		ProfitBuy:  105,
		ProfitSell: 15,
		CloseHour:  23,
		Comment:    "* the wizard",
	}, a.Shops[0])

	require.Len(t, a.Specials, 2)
	assert.Equal(t, &area.Special{Command: "M", Arg1: 3000, Arg2: "spec_cast_mage", Comment: "* the wizard"}, a.Specials[0])
	assert.Equal(t, "spec_guard", a.Specials[1].Arg2)
}

func TestParse_MercFixture(t *testing.T) {
	a := parseFixture(t, "midgaard.merc.are", area.Merc)

	h, ok := a.Header.(*area.MercHeader)
	require.True(t, ok)
	assert.Equal(t, "{ 5 35} Merc    Midgaard", h.Metadata)

	rec, ok := a.Mobs.Get(3000)
	require.True(t, ok)
	mob, ok := rec.(*area.MercMob)
	require.True(t, ok)
	assert.Equal(t, int64(67), mob.Act)
	assert.Equal(t, int64(40), mob.AffectedBy)
	assert.Equal(t, -10, mob.AC)
	assert.Equal(t, area.Dice{Number: 2, Sides: 8, Bonus: 4}, mob.Damage)
	assert.Equal(t, 1000, mob.Gold)
	assert.Equal(t, 8, mob.DefaultPos)
	assert.Equal(t, 1, mob.Sex)

	orec, ok := a.Objects.Get(3005)
	require.True(t, ok)
	obj, ok := orec.(*area.MercObject)
	require.True(t, ok)
	assert.Equal(t, 5, obj.ItemType)
	assert.Equal(t, int64(8193), obj.WearFlags)
	assert.Equal(t, [4]int{0, 2, 6, 3}, obj.Value)
	assert.Equal(t, 300, obj.Cost)
	require.Len(t, obj.Affected, 1)
	assert.Equal(t, 18, obj.Affected[0].Location)
	require.Len(t, obj.ExtraDescriptions, 1)

	room, ok := a.Rooms.Get(3001)
	require.True(t, ok)
	assert.Equal(t, area.ExitIsDoor|area.ExitPickProof, room.RoomData().Exits[0].ExitInfo)

	require.Len(t, a.Resets, 2)
	assert.Equal(t, &area.Reset{Command: "O", Arg1: 3005, Arg3: 3001, Comment: "* sword"}, a.Resets[1])
	assert.Empty(t, a.Shops)
	assert.Empty(t, a.Specials)
}

func TestParse_SmaugFixture(t *testing.T) {
	a := parseFixture(t, "gate.smaug.are", area.Smaug)

	h, ok := a.Header.(*area.SmaugHeader)
	require.True(t, ok)
	assert.Equal(t, "Smaug Gate", h.Name)
	assert.Equal(t, "A bell rings in the distance.", h.ResetMessage)
	assert.Equal(t, 0, h.HighEconomy)
	assert.Equal(t, 25000, h.LowEconomy)

	rec, ok := a.Rooms.Get(21000)
	require.True(t, ok)
	gate, ok := rec.(*area.SmaugRoom)
	require.True(t, ok)
	assert.Equal(t, area.Sector(1), gate.SectorType)
	assert.Equal(t, 3, gate.TeleDelay)
	assert.Equal(t, 21001, gate.TeleVnum)
	assert.Equal(t, 2, gate.Tunnel)

	rec, ok = a.Rooms.Get(21001)
	require.True(t, ok)
	inside := rec.(*area.SmaugRoom)
	assert.Equal(t, area.Sector(2), inside.SectorType)
	assert.Zero(t, inside.TeleDelay)

	_, ok = a.Mobs.Get(21000)
	assert.True(t, ok)
}

const minimalRom = `#AREA
min.are~
Minimal~
none~
1 1

#MOBILES
#2
mob~
a mob~
A mob.
~
~
human~
0 0 0 0
1 0 1d1+1 1d1+1 1d1+1 hit
0 0 0 0
0 0 0 0
stand stand none 0
0 0 medium flesh
#0

#OBJECTS
#3
junk~
some junk~
Junk.~
dirt~
trash 0 A
0 0 0 0 0
0 1 0 P
#0

#ROOMS
#1
~
~
0 0 0
S
#0

#RESETS
S

#SPECIALS
S

#SHOPS
0

#HELPS
0 $~

#$
`

func TestParse_MinimalRom(t *testing.T) {
	a, err := area.Parse([]byte(minimalRom), area.Rom)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, a.Rooms.Keys())
	assert.Equal(t, []int{2}, a.Mobs.Keys())
	assert.Equal(t, []int{3}, a.Objects.Keys())
	assert.Empty(t, a.Resets)
	assert.Empty(t, a.Specials)
	assert.Empty(t, a.Shops)
	assert.Empty(t, a.Helps)

	rec, _ := a.Objects.Get(3)
	obj := rec.(*area.RomObject)
	assert.Equal(t, &area.FlagsValue{}, obj.Value)
}

func TestParse_SmaugIsRomSuperset(t *testing.T) {
	romArea, err := area.Parse([]byte(minimalRom), area.Rom)
	require.NoError(t, err)
	smaugData := strings.Replace(minimalRom, "#MOBILES", "#ECONOMY 10 20\n\n#RESETMSG Ding.~\n\n#MOBILES", 1)
	smaugArea, err := area.Parse([]byte(smaugData), area.Smaug)
	require.NoError(t, err)

	sh := smaugArea.Header.(*area.SmaugHeader)
	assert.Equal(t, *romArea.Header.(*area.RomHeader), sh.RomHeader)
	assert.Equal(t, 10, sh.HighEconomy)
	assert.Equal(t, "Ding.", sh.ResetMessage)

	assert.Equal(t, romArea.Mobs.Keys(), smaugArea.Mobs.Keys())
	assert.Equal(t, romArea.Objects.Keys(), smaugArea.Objects.Keys())
	romRoom, _ := romArea.Rooms.Get(1)
	smaugRoom, _ := smaugArea.Rooms.Get(1)
	assert.Equal(t, romRoom.RoomData(), smaugRoom.RoomData())
	_, isSmaug := smaugRoom.(*area.SmaugRoom)
	assert.True(t, isSmaug)
}

func TestParse_UnknownSectionIsSkipped(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	data := strings.Replace(minimalRom, "#ROOMS", "#OLCDATA\nsome 1 2 3 junk~\n\n#ROOMS", 1)

	a, err := area.Parse([]byte(data), area.Rom, area.WithLogger(zap.New(core)))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, a.Rooms.Keys())
	require.Equal(t, 1, logs.FilterMessage("skipping unknown section").Len())
	assert.Equal(t, "olcdata", logs.All()[0].ContextMap()["section"])
}

func TestParse_SectionNamesAreCaseInsensitive(t *testing.T) {
	data := strings.Replace(minimalRom, "#ROOMS", "#rooms", 1)
	a, err := area.Parse([]byte(data), area.Rom)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Rooms.Len())
}

func TestParse_ConditionLetters(t *testing.T) {
	cases := map[string]int{"P": 100, "G": 90, "A": 75, "W": 50, "D": 25, "B": 10, "R": 0}
	for letter, want := range cases {
		t.Run(letter, func(t *testing.T) {
			data := strings.Replace(minimalRom, "0 1 0 P", "0 1 0 "+letter, 1)
			a, err := area.Parse([]byte(data), area.Rom)
			require.NoError(t, err)
			rec, _ := a.Objects.Get(3)
			assert.Equal(t, want, rec.(*area.RomObject).Condition)
		})
	}
}

func TestParse_UnknownConditionIsParseError(t *testing.T) {
	data := strings.Replace(minimalRom, "0 1 0 P", "0 1 0 X", 1)
	a, err := area.Parse([]byte(data), area.Rom, area.WithSource("min.are"))
	require.Error(t, err)
	assert.Nil(t, a)

	var pe *area.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "objects", pe.Section)
	assert.Equal(t, "min.are", pe.Source)
	assert.Contains(t, pe.Message, "condition")
	assert.Equal(t, 31, pe.Line)
}

func TestParse_RomExitLockLevels(t *testing.T) {
	cases := []struct {
		locks string
		want  int64
	}{
		{"0", 0},
		{"1", area.ExitIsDoor},
		{"2", area.ExitIsDoor | area.ExitPickProof},
		{"3", area.ExitIsDoor | area.ExitNoPass},
		{"4", area.ExitIsDoor | area.ExitNoPass | area.ExitPickProof},
		{"ABC", 7},
		{"A|F", 33},
		{"35", 35},
	}
	for _, tc := range cases {
		t.Run(tc.locks, func(t *testing.T) {
			room := fmt.Sprintf("#1\n~\n~\n0 0 0\nD1\n~\n~\n%s 0 2\nS\n", tc.locks)
			data := strings.Replace(minimalRom, "#1\n~\n~\n0 0 0\nS\n", room, 1)
			a, err := area.Parse([]byte(data), area.Rom)
			require.NoError(t, err)
			rec, _ := a.Rooms.Get(1)
			exit := rec.RoomData().Exits[0]
			assert.Equal(t, area.East, exit.Door)
			assert.Equal(t, tc.want, exit.ExitInfo)
			assert.Equal(t, tc.want, exit.ResetFlags)
		})
	}
}

func TestParse_RomRoomRejectsUnknownLetter(t *testing.T) {
	data := strings.Replace(minimalRom, "0 0 0\nS\n", "0 0 0\nQ\nS\n", 1)
	_, err := area.Parse([]byte(data), area.Rom)
	var pe *area.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "rooms", pe.Section)
}

func TestParse_UnknownFlagCategoryIsParseError(t *testing.T) {
	data := strings.Replace(minimalRom, "0 0 medium flesh\n", "0 0 medium flesh\nF xyz A\n", 1)
	_, err := area.Parse([]byte(data), area.Rom)
	var pe *area.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Message, "xyz")
}

func TestParse_FlagRemovalCategories(t *testing.T) {
	data := strings.Replace(minimalRom,
		"0 0 0 0\n0 0 0 0\nstand stand none 0\n0 0 medium flesh\n",
		"0 0 0 0\nABC ABC ABC ABC\nstand stand none 0\nABC ABC medium flesh\nF act A\nF affect B\nF imm C\nF res A\nF vul B\nF for C\nF par A\nF off A\n", 1)
	data = strings.Replace(data, "human~\n0 0 0 0", "human~\nABC ABC 0 0", 1)
	a, err := area.Parse([]byte(data), area.Rom)
	require.NoError(t, err)

	rec, _ := a.Mobs.Get(2)
	mob := rec.(*area.RomMob)
	assert.Equal(t, int64(6), mob.Act)
	assert.Equal(t, int64(5), mob.AffectedBy)
	assert.Equal(t, int64(6), mob.OffFlags)
	assert.Equal(t, int64(3), mob.ImmFlags)
	assert.Equal(t, int64(6), mob.ResFlags)
	assert.Equal(t, int64(5), mob.VulnFlags)
	assert.Equal(t, int64(3), mob.Form)
	assert.Equal(t, int64(6), mob.Parts)
}

func TestParse_MercMobRequiresS(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "midgaard.merc.are"))
	require.NoError(t, err)
	bad := strings.Replace(string(data), "900 S", "900 X", 1)

	_, err = area.Parse([]byte(bad), area.Merc)
	var pe *area.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "mobiles", pe.Section)
	assert.Contains(t, pe.Message, "mob_type")
}

func TestParse_MissingTerminatorIsParseError(t *testing.T) {
	data := strings.TrimSuffix(minimalRom, "#$\n")
	a, err := area.Parse([]byte(data), area.Rom)
	require.Error(t, err)
	assert.Nil(t, a)
	var pe *area.ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestParse_TruncatedRecordIsParseError(t *testing.T) {
	data := minimalRom[:strings.Index(minimalRom, "0 0 0\nS")]
	_, err := area.Parse([]byte(data), area.Rom)
	var pe *area.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "rooms", pe.Section)
}

func TestParse_NegativeVnumIsParseError(t *testing.T) {
	data := strings.Replace(minimalRom, "#ROOMS\n#1\n", "#ROOMS\n#-1\n", 1)
	_, err := area.Parse([]byte(data), area.Rom)
	var pe *area.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Message, "negative vnum")
}

func TestParse_UnsupportedDialect(t *testing.T) {
	_, err := area.Parse([]byte("#$"), area.Dialect(42))
	require.Error(t, err)
}

func TestParse_LogsSectionsAtInfo(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	_, err := area.Parse([]byte(minimalRom), area.Rom, area.WithLogger(zap.New(core)), area.WithSource("min.are"))
	require.NoError(t, err)

	var sections []string
	for _, e := range logs.FilterMessage("processing section").All() {
		sections = append(sections, e.ContextMap()["section"].(string))
	}
	assert.Equal(t, []string{"area", "mobiles", "objects", "rooms", "resets", "specials", "shops", "helps"}, sections)
}

func TestParseWith_CustomSection(t *testing.T) {
	p, err := area.ProfileFor(area.Rom)
	require.NoError(t, err)
	var seen string
	p.Sections["note"] = func(st *area.State) error {
		s, err := st.Cursor.ReadString()
		seen = s
		return err
	}
	data := strings.Replace(minimalRom, "#ROOMS", "#NOTE hello~\n\n#ROOMS", 1)

	_, err = area.ParseWith([]byte(data), p)
	require.NoError(t, err)
	assert.Equal(t, "hello", seen)

	fresh, err := area.ProfileFor(area.Rom)
	require.NoError(t, err)
	assert.NotContains(t, fresh.Sections, "note")
}

// TestParse_VnumSectionPreservesOrder checks that a rooms section with N
// distinct vnums yields exactly N rooms in file order.
func TestParse_VnumSectionPreservesOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		vnums := rapid.SliceOfNDistinct(rapid.IntRange(1, 99999), 0, 20, rapid.ID[int]).Draw(rt, "vnums")

		var b strings.Builder
		b.WriteString("#ROOMS\n")
		for _, v := range vnums {
			fmt.Fprintf(&b, "#%d\nRoom %d~\n~\n0 0 0\nS\n", v, v)
		}
		b.WriteString("#0\n\n#$\n")

		a, err := area.Parse([]byte(b.String()), area.Merc)
		if err != nil {
			rt.Fatalf("parse: %v", err)
		}
		if a.Rooms.Len() != len(vnums) {
			rt.Fatalf("got %d rooms, want %d", a.Rooms.Len(), len(vnums))
		}
		for i, k := range a.Rooms.Keys() {
			if k != vnums[i] {
				rt.Fatalf("key %d: got %d, want %d", i, k, vnums[i])
			}
		}
	})
}
