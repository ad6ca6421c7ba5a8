package area

import (
	"fmt"
	"maps"
)

// Profile is the complete reading strategy for one dialect. Profiles are
// plain values: callers may take one from ProfileFor, replace a reader or
// register an extra section, and pass it to ParseWith.
type Profile struct {
	Dialect    Dialect
	NewHeader  func() Header
	ReadArea   func(c *Cursor, h Header) error
	ReadRoom   func(c *Cursor, vnum int) (RoomRecord, error)
	ReadMob    func(c *Cursor, vnum int) (MobRecord, error)
	ReadObject func(c *Cursor, vnum int) (ObjectRecord, error)
	ReadReset  func(c *Cursor, command byte) (*Reset, error)
	// Sections maps lowercased section names to loaders.
	Sections map[string]SectionLoader
}

// Clone returns a copy of p whose section table may be modified
// independently.
func (p *Profile) Clone() *Profile {
	out := *p
	out.Sections = maps.Clone(p.Sections)
	return &out
}

// ProfileFor returns a fresh profile for d.
func ProfileFor(d Dialect) (*Profile, error) {
	switch d {
	case Merc:
		return mercProfile(), nil
	case Rom:
		return romProfile(), nil
	case Smaug:
		return smaugProfile(), nil
	}
	return nil, fmt.Errorf("unsupported dialect %v", d)
}

func baseSections() map[string]SectionLoader {
	return map[string]SectionLoader{
		"area":     loadAreaHeader,
		"helps":    loadHelps,
		"mobiles":  loadMobiles,
		"objects":  loadObjects,
		"rooms":    loadRooms,
		"resets":   loadResets,
		"shops":    loadShops,
		"specials": loadSpecials,
	}
}

func mercProfile() *Profile {
	return &Profile{
		Dialect:    Merc,
		NewHeader:  func() Header { return &MercHeader{} },
		ReadArea:   readMercArea,
		ReadRoom:   readMercRoom,
		ReadMob:    readMercMob,
		ReadObject: readMercObject,
		ReadReset:  readMercReset,
		Sections:   baseSections(),
	}
}

func romProfile() *Profile {
	return &Profile{
		Dialect:    Rom,
		NewHeader:  func() Header { return &RomHeader{} },
		ReadArea:   readRomArea,
		ReadRoom:   readRomRoom,
		ReadMob:    readRomMob,
		ReadObject: readRomObject,
		ReadReset:  readRomReset,
		Sections:   baseSections(),
	}
}

// smaugProfile is the Rom profile with the Smaug room reader, the Smaug
// header and the resetmsg and economy sections.
func smaugProfile() *Profile {
	p := romProfile().Clone()
	p.Dialect = Smaug
	p.NewHeader = func() Header { return &SmaugHeader{} }
	p.ReadRoom = readSmaugRoom
	p.Sections["resetmsg"] = loadResetMessage
	p.Sections["economy"] = loadEconomy
	return p
}

var mercAreaSchema = Schema[MercHeader]{
	StringField("metadata", func(h *MercHeader) *string { return &h.Metadata }),
}

var romAreaSchema = Schema[RomHeader]{
	StringField("original_filename", func(h *RomHeader) *string { return &h.OriginalFilename }),
	StringField("name", func(h *RomHeader) *string { return &h.Name }),
	StringField("metadata", func(h *RomHeader) *string { return &h.Metadata }),
	NumberField("first_vnum", func(h *RomHeader) *int { return &h.FirstVnum }),
	NumberField("last_vnum", func(h *RomHeader) *int { return &h.LastVnum }),
}

var economySchema = Schema[SmaugHeader]{
	NumberField("high_economy", func(h *SmaugHeader) *int { return &h.HighEconomy }),
	NumberField("low_economy", func(h *SmaugHeader) *int { return &h.LowEconomy }),
}

func readMercArea(c *Cursor, h Header) error {
	mh, ok := h.(*MercHeader)
	if !ok {
		return c.Failf("area header %T is not a merc header", h)
	}
	return mercAreaSchema.Read(c, mh)
}

func readRomArea(c *Cursor, h Header) error {
	rh, ok := h.(interface{ romHeader() *RomHeader })
	if !ok {
		return c.Failf("area header %T is not a rom header", h)
	}
	return romAreaSchema.Read(c, rh.romHeader())
}

func smaugHeader(st *State) (*SmaugHeader, error) {
	h, ok := st.Area.Header.(*SmaugHeader)
	if !ok {
		return nil, st.Cursor.Failf("area header %T is not a smaug header", st.Area.Header)
	}
	return h, nil
}

func loadResetMessage(st *State) error {
	h, err := smaugHeader(st)
	if err != nil {
		return err
	}
	h.ResetMessage, err = st.Cursor.ReadString()
	return err
}

func loadEconomy(st *State) error {
	h, err := smaugHeader(st)
	if err != nil {
		return err
	}
	return economySchema.Read(st.Cursor, h)
}
