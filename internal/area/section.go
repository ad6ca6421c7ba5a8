package area

import (
	"strings"

	"go.uber.org/zap"
)

// State is the mutable context handed to section loaders while one buffer is
// parsed.
type State struct {
	Cursor  *Cursor
	Area    *Area
	Profile *Profile
	Logger  *zap.Logger
}

// SectionLoader reads the body of one #SECTION, leaving the cursor just
// before the next section header.
type SectionLoader func(st *State) error

// LoadVnumSection reads "#<vnum>" records until "#0", calling read for each
// vnum with the cursor positioned at the record body.
func LoadVnumSection(st *State, read func(vnum int) error) error {
	c := st.Cursor
	for {
		if err := c.ExpectLetter('#'); err != nil {
			return err
		}
		vnum, err := c.ReadNumber()
		if err != nil {
			return err
		}
		if vnum == 0 {
			return nil
		}
		if vnum < 0 {
			return c.Failf("negative vnum %d", vnum)
		}
		if err := read(vnum); err != nil {
			return err
		}
	}
}

// LoadFlatSection reads letter-introduced records until "S". A "*" line is
// a comment and is discarded.
func LoadFlatSection(st *State, read func(command byte) error) error {
	c := st.Cursor
	for {
		letter, err := c.ReadLetter()
		if err != nil {
			return err
		}
		switch letter {
		case 'S':
			return nil
		case '*':
			c.ReadToEOL()
		default:
			if err := read(letter); err != nil {
				return err
			}
		}
	}
}

// run drives the section state machine until "#$".
func (st *State) run() error {
	c := st.Cursor
	for {
		if err := c.ExpectLetter('#'); err != nil {
			return err
		}
		word, err := c.ReadWord()
		if err != nil {
			return err
		}
		name := strings.ToLower(word)
		if name == "$" {
			return nil
		}
		c.SetSection(name)
		loader, ok := st.Profile.Sections[name]
		if !ok {
			st.Logger.Warn("skipping unknown section", zap.String("section", name), zap.Int("offset", c.Pos()))
			if err := c.SkipTo('#'); err != nil {
				return err
			}
			continue
		}
		st.Logger.Info("processing section", zap.String("section", name))
		if err := loader(st); err != nil {
			return err
		}
	}
}

func loadAreaHeader(st *State) error {
	return st.Profile.ReadArea(st.Cursor, st.Area.Header)
}

func loadRooms(st *State) error {
	return LoadVnumSection(st, func(vnum int) error {
		st.Logger.Debug("reading room", zap.Int("vnum", vnum))
		room, err := st.Profile.ReadRoom(st.Cursor, vnum)
		if err != nil {
			return err
		}
		st.Area.Rooms.Set(vnum, room)
		return nil
	})
}

func loadMobiles(st *State) error {
	return LoadVnumSection(st, func(vnum int) error {
		st.Logger.Debug("reading mobile", zap.Int("vnum", vnum))
		mob, err := st.Profile.ReadMob(st.Cursor, vnum)
		if err != nil {
			return err
		}
		st.Area.Mobs.Set(vnum, mob)
		return nil
	})
}

func loadObjects(st *State) error {
	return LoadVnumSection(st, func(vnum int) error {
		st.Logger.Debug("reading object", zap.Int("vnum", vnum))
		obj, err := st.Profile.ReadObject(st.Cursor, vnum)
		if err != nil {
			return err
		}
		st.Area.Objects.Set(vnum, obj)
		return nil
	})
}

func loadResets(st *State) error {
	return LoadFlatSection(st, func(command byte) error {
		r, err := st.Profile.ReadReset(st.Cursor, command)
		if err != nil {
			return err
		}
		st.Area.Resets = append(st.Area.Resets, r)
		return nil
	})
}

func loadSpecials(st *State) error {
	return LoadFlatSection(st, func(command byte) error {
		s, err := readSpecial(st.Cursor, command)
		if err != nil {
			return err
		}
		st.Area.Specials = append(st.Area.Specials, s)
		return nil
	})
}

// loadShops reads shops until a keeper vnum of 0.
func loadShops(st *State) error {
	c := st.Cursor
	for {
		keeper, err := c.ReadNumber()
		if err != nil {
			return err
		}
		if keeper == 0 {
			return nil
		}
		shop := &Shop{Keeper: keeper}
		if err := shopSchema.Read(c, shop); err != nil {
			return err
		}
		st.Area.Shops = append(st.Area.Shops, shop)
	}
}

// loadHelps reads help entries until a keyword starting with "$".
func loadHelps(st *State) error {
	for {
		help, err := readInto(st.Cursor, helpSchema)
		if err != nil {
			return err
		}
		if isHelpTerminator(help.Keyword) {
			return nil
		}
		st.Area.Helps = append(st.Area.Helps, help)
	}
}
