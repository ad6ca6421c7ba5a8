// Package area parses Merc, Rom and Smaug area files into an in-memory
// object graph.
package area

import (
	"fmt"
	"strings"
)

// Dialect identifies one of the supported area file formats.
type Dialect int

// Supported dialects.
const (
	Merc Dialect = iota + 1
	Rom
	Smaug
)

// Dialects lists every supported dialect in declaration order.
var Dialects = []Dialect{Merc, Rom, Smaug}

// String returns the lowercase dialect name.
func (d Dialect) String() string {
	switch d {
	case Merc:
		return "merc"
	case Rom:
		return "rom"
	case Smaug:
		return "smaug"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Dialect) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// ParseDialect maps a case-insensitive dialect name to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	for _, d := range Dialects {
		if strings.EqualFold(name, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown dialect %q (supported: merc, rom, smaug)", name)
}

// Dice is a "<number>d<sides>+<bonus>" expression.
type Dice struct {
	Number int `json:"number"`
	Sides  int `json:"sides"`
	Bonus  int `json:"bonus"`
}

// String renders d in area-file notation, e.g. "3d9+33".
func (d Dice) String() string {
	return fmt.Sprintf("%dd%d%+d", d.Number, d.Sides, d.Bonus)
}

// ArmorClass holds the four Rom armor class values.
type ArmorClass struct {
	Pierce int `json:"pierce"`
	Bash   int `json:"bash"`
	Slash  int `json:"slash"`
	Exotic int `json:"exotic"`
}

// ExtraDescription is a keyword-addressed description attached to a record.
type ExtraDescription struct {
	Keyword     string `json:"keyword"`
	Description string `json:"description"`
}

// MudBase is the shape shared by rooms, mobiles and objects. Vnum is assigned
// by the section loader from the "#<vnum>" marker preceding the record.
type MudBase struct {
	Vnum              int                 `json:"vnum"`
	Name              string              `json:"name"`
	Description       string              `json:"description"`
	ExtraDescriptions []*ExtraDescription `json:"extra_descriptions"`
}

// Base returns b. It is promoted to every record embedding MudBase.
func (b *MudBase) Base() *MudBase { return b }

// Record is any vnum-indexed record.
type Record interface {
	Base() *MudBase
}

// Direction is an exit direction.
type Direction int

// Exit directions in file order.
const (
	North Direction = iota
	East
	South
	West
	Up
	Down
)

var directionNames = [...]string{"north", "east", "south", "west", "up", "down"}

// String returns the direction name, or "direction(n)" when out of range.
func (d Direction) String() string {
	if d >= 0 && int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Valid reports whether d is one of the six fixed directions.
func (d Direction) Valid() bool { return d >= North && d <= Down }

// Sector is a room terrain kind.
type Sector int

var sectorNames = [...]string{
	"inside", "city", "field", "forest", "hills", "mountain",
	"water_swim", "water_noswim", "unused", "air", "desert",
}

// String returns the sector name, or "sector(n)" when out of range.
func (s Sector) String() string {
	if s >= 0 && int(s) < len(sectorNames) {
		return sectorNames[s]
	}
	return fmt.Sprintf("sector(%d)", int(s))
}

// Exit bits used when deriving exit_info from a legacy lock level.
const (
	ExitIsDoor    int64 = 1 << 0
	ExitClosed    int64 = 1 << 1
	ExitLocked    int64 = 1 << 2
	ExitPickProof int64 = 1 << 5
	ExitNoPass    int64 = 1 << 6
)

// Exit is a passage out of a room. Key and Destination are vnums or the
// sentinels used by the file (-1, 0); they are not resolved.
type Exit struct {
	Door        Direction `json:"door"`
	Description string    `json:"description"`
	Keyword     string    `json:"keyword"`
	ExitInfo    int64     `json:"exit_info"`
	ResetFlags  int64     `json:"rs_flags"`
	Key         int       `json:"key"`
	Destination int       `json:"destination"`
}

// Room is a Merc or Rom room.
type Room struct {
	MudBase
	Owner      string  `json:"owner,omitempty"`
	Clan       string  `json:"clan,omitempty"`
	AreaNumber int     `json:"area_number"`
	RoomFlags  int64   `json:"room_flags"`
	SectorType Sector  `json:"sector_type"`
	HealRate   int     `json:"heal_rate"`
	ManaRate   int     `json:"mana_rate"`
	Exits      []*Exit `json:"exits"`
}

// RoomData returns r. SmaugRoom inherits it through embedding.
func (r *Room) RoomData() *Room { return r }

// SmaugRoom extends Room with the teleport and occupancy values Smaug keeps
// on the sector line.
type SmaugRoom struct {
	Room
	TeleDelay int `json:"tele_delay"`
	TeleVnum  int `json:"tele_vnum"`
	Tunnel    int `json:"tunnel"`
}

// RoomRecord is a room of any dialect.
type RoomRecord interface {
	Record
	RoomData() *Room
}

func newRoom(vnum int) Room {
	return Room{
		MudBase:  MudBase{Vnum: vnum, ExtraDescriptions: []*ExtraDescription{}},
		HealRate: 100,
		ManaRate: 100,
		Exits:    []*Exit{},
	}
}

// Mobprog is a Rom mobile program trigger.
type Mobprog struct {
	TrigType   string `json:"trig_type"`
	Vnum       int    `json:"vnum"`
	TrigPhrase string `json:"trig_phrase"`
}

// RomMob is a Rom (and Smaug) mobile.
type RomMob struct {
	MudBase
	ShortDesc  string     `json:"short_desc"`
	LongDesc   string     `json:"long_desc"`
	Race       string     `json:"race"`
	Act        int64      `json:"act"`
	AffectedBy int64      `json:"affected_by"`
	Alignment  int        `json:"alignment"`
	Group      int        `json:"group"`
	Level      int        `json:"level"`
	Hitroll    int        `json:"hitroll"`
	Hit        Dice       `json:"hit"`
	Mana       Dice       `json:"mana"`
	Damage     Dice       `json:"damage"`
	DamType    string     `json:"damtype"`
	AC         ArmorClass `json:"ac"`
	OffFlags   int64      `json:"off_flags"`
	ImmFlags   int64      `json:"imm_flags"`
	ResFlags   int64      `json:"res_flags"`
	VulnFlags  int64      `json:"vuln_flags"`
	StartPos   string     `json:"start_pos"`
	DefaultPos string     `json:"default_pos"`
	Sex        string     `json:"sex"`
	Wealth     int        `json:"wealth"`
	Form       int64      `json:"form"`
	Parts      int64      `json:"parts"`
	Size       string     `json:"size"`
	Material   string     `json:"material"`
	Mobprogs   []*Mobprog `json:"mprogs"`
}

// MercMob is a Merc mobile. Positions and sex are stored as integers.
type MercMob struct {
	MudBase
	ShortDesc  string `json:"short_desc"`
	LongDesc   string `json:"long_desc"`
	Act        int64  `json:"act"`
	AffectedBy int64  `json:"affected_by"`
	Alignment  int    `json:"alignment"`
	Level      int    `json:"level"`
	Hitroll    int    `json:"hitroll"`
	AC         int    `json:"ac"`
	Hit        Dice   `json:"hit"`
	Damage     Dice   `json:"damage"`
	Gold       int    `json:"gold"`
	Experience int    `json:"experience"`
	DefaultPos int    `json:"default_pos"`
	StartPos   int    `json:"start_pos"`
	Sex        int    `json:"sex"`
}

// MobRecord is a mobile of any dialect.
type MobRecord interface {
	Record
	mobRecord()
}

func (*RomMob) mobRecord()  {}
func (*MercMob) mobRecord() {}

// AffectWhere names what an object affect modifies.
type AffectWhere int

// Affect targets.
const (
	ToObject AffectWhere = iota
	ToAffects
	ToImmune
	ToResist
	ToVuln
)

var affectWhereNames = [...]string{"object", "affects", "immune", "resist", "vuln"}

// String returns the target name.
func (w AffectWhere) String() string {
	if w >= 0 && int(w) < len(affectWhereNames) {
		return affectWhereNames[w]
	}
	return fmt.Sprintf("where(%d)", int(w))
}

// MarshalText implements encoding.TextMarshaler.
func (w AffectWhere) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// Affect is an object modifier.
type Affect struct {
	Where     AffectWhere `json:"where"`
	Type      int         `json:"type"`
	Level     int         `json:"level"`
	Duration  int         `json:"duration"`
	Location  int         `json:"location"`
	Modifier  int         `json:"modifier"`
	Bitvector int64       `json:"bitvector"`
}

// RomObject is a Rom (and Smaug) object.
type RomObject struct {
	MudBase
	ShortDesc  string    `json:"short_desc"`
	Material   string    `json:"material"`
	ItemType   string    `json:"item_type"`
	ExtraFlags int64     `json:"extra_flags"`
	WearFlags  int64     `json:"wear_flags"`
	Value      ItemValue `json:"value"`
	Level      int       `json:"level"`
	Weight     int       `json:"weight"`
	Cost       int       `json:"cost"`
	Condition  int       `json:"condition"`
	Affected   []*Affect `json:"affected"`
}

// MercObject is a Merc object. ItemType is the numeric item type.
type MercObject struct {
	MudBase
	ShortDesc  string    `json:"short_desc"`
	ActionDesc string    `json:"action_desc"`
	ItemType   int       `json:"item_type"`
	ExtraFlags int64     `json:"extra_flags"`
	WearFlags  int64     `json:"wear_flags"`
	Value      [4]int    `json:"value"`
	Weight     int       `json:"weight"`
	Cost       int       `json:"cost"`
	Affected   []*Affect `json:"affected"`
}

// ObjectRecord is an object of any dialect.
type ObjectRecord interface {
	Record
	objectRecord()
}

func (*RomObject) objectRecord()  {}
func (*MercObject) objectRecord() {}

// Reset is a spawn or placement directive. Arguments absent for a command
// are zero.
type Reset struct {
	Command string `json:"command"`
	IfFlag  int    `json:"if_flag"`
	Arg1    int    `json:"arg1"`
	Arg2    int    `json:"arg2"`
	Arg3    int    `json:"arg3"`
	Arg4    int    `json:"arg4"`
	Comment string `json:"comment,omitempty"`
}

// Special binds a special procedure to a mobile.
type Special struct {
	Command string `json:"command"`
	Arg1    int    `json:"arg1"`
	Arg2    string `json:"arg2"`
	Comment string `json:"comment,omitempty"`
}

// MaxTrades is the number of item types a shopkeeper buys.
const MaxTrades = 5

// Shop is a shopkeeper definition.
type Shop struct {
	Keeper     int            `json:"keeper"`
	BuyType    [MaxTrades]int `json:"buy_type"`
	ProfitBuy  int            `json:"profit_buy"`
	ProfitSell int            `json:"profit_sell"`
	OpenHour   int            `json:"open_hour"`
	CloseHour  int            `json:"close_hour"`
	Comment    string         `json:"comment,omitempty"`
}

// Help is a help entry.
type Help struct {
	Level   int    `json:"level"`
	Keyword string `json:"keyword"`
	Text    string `json:"text"`
}

// Header is the dialect-specific area metadata.
type Header interface {
	Dialect() Dialect
}

// MercHeader is the single free-text #AREA line of a Merc file.
type MercHeader struct {
	Metadata string `json:"metadata"`
}

// Dialect implements Header.
func (*MercHeader) Dialect() Dialect { return Merc }

// RomHeader is the Rom #AREA block.
type RomHeader struct {
	OriginalFilename string `json:"original_filename"`
	Name             string `json:"name"`
	Metadata         string `json:"metadata"`
	FirstVnum        int    `json:"first_vnum"`
	LastVnum         int    `json:"last_vnum"`
}

// Dialect implements Header.
func (*RomHeader) Dialect() Dialect { return Rom }

func (h *RomHeader) romHeader() *RomHeader { return h }

// SmaugHeader is the Rom header plus the Smaug #RESETMSG and #ECONOMY values.
type SmaugHeader struct {
	RomHeader
	ResetMessage string `json:"resetmsg"`
	HighEconomy  int    `json:"high_economy"`
	LowEconomy   int    `json:"low_economy"`
}

// Dialect implements Header.
func (*SmaugHeader) Dialect() Dialect { return Smaug }

// Area is the root aggregate produced by Parse.
type Area struct {
	Dialect  Dialect                `json:"dialect"`
	Source   string                 `json:"source,omitempty"`
	Header   Header                 `json:"area"`
	Helps    []*Help                `json:"helps"`
	Rooms    *VnumMap[RoomRecord]   `json:"rooms"`
	Mobs     *VnumMap[MobRecord]    `json:"mobs"`
	Objects  *VnumMap[ObjectRecord] `json:"objects"`
	Resets   []*Reset               `json:"resets"`
	Specials []*Special             `json:"specials"`
	Shops    []*Shop                `json:"shops"`
}

func newArea(d Dialect, source string, h Header) *Area {
	return &Area{
		Dialect:  d,
		Source:   source,
		Header:   h,
		Helps:    []*Help{},
		Rooms:    NewVnumMap[RoomRecord](),
		Mobs:     NewVnumMap[MobRecord](),
		Objects:  NewVnumMap[ObjectRecord](),
		Resets:   []*Reset{},
		Specials: []*Special{},
		Shops:    []*Shop{},
	}
}

// Name returns the best display name for the area: the Rom name when
// present, otherwise the Merc metadata line.
func (a *Area) Name() string {
	switch h := a.Header.(type) {
	case *MercHeader:
		return h.Metadata
	case *RomHeader:
		return h.Name
	case *SmaugHeader:
		return h.Name
	}
	return ""
}
