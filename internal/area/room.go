package area

import (
	"strconv"
	"strings"
)

var extraDescriptionSchema = Schema[ExtraDescription]{
	StringField("keyword", func(e *ExtraDescription) *string { return &e.Keyword }),
	StringField("description", func(e *ExtraDescription) *string { return &e.Description }),
}

func readExtraDescription(c *Cursor) (*ExtraDescription, error) {
	return readInto(c, extraDescriptionSchema)
}

// readInto reads one record of shape s into a fresh value.
func readInto[T any](c *Cursor, s Schema[T]) (*T, error) {
	rec := new(T)
	if err := s.Read(c, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// roomHeaderSchema covers everything before the room's letter loop, except
// the sector type which Smaug keeps on a longer line.
var roomHeaderSchema = Schema[Room]{
	NumberField("vnum", func(r *Room) *int { return &r.Vnum }).Skip(),
	StringField("name", func(r *Room) *string { return &r.Name }),
	StringField("description", func(r *Room) *string { return &r.Description }),
	NumberField("area_number", func(r *Room) *int { return &r.AreaNumber }),
	FlagField("room_flags", func(r *Room) *int64 { return &r.RoomFlags }),
}

var roomSchema = roomHeaderSchema.Extend(
	CustomField("sector_type", KindNumber, func(r *Room, v Value) { r.SectorType = Sector(v.Int) }),
)

// lockLevelInfo maps the legacy 0-4 lock level to exit_info bits.
func lockLevelInfo(level int64) (int64, bool) {
	switch level {
	case 0:
		return 0, true
	case 1:
		return ExitIsDoor, true
	case 2:
		return ExitIsDoor | ExitPickProof, true
	case 3:
		return ExitIsDoor | ExitNoPass, true
	case 4:
		return ExitIsDoor | ExitNoPass | ExitPickProof, true
	}
	return 0, false
}

func setExitInfo(e *Exit, v Value) {
	e.ExitInfo = v.Int
	e.ResetFlags = v.Int
}

// mercExitSchema derives exit_info from a lock level; unknown levels leave
// the exit without flags.
var mercExitSchema = Schema[Exit]{
	CustomField("door", KindNumber, func(e *Exit, v Value) { e.Door = Direction(v.Int) }),
	StringField("description", func(e *Exit) *string { return &e.Description }),
	StringField("keyword", func(e *Exit) *string { return &e.Keyword }),
	CustomField("locks", KindNumber, setExitInfo).Transform(func(v Value) (Value, error) {
		info, _ := lockLevelInfo(v.Int)
		return Value{Int: info}, nil
	}),
	NumberField("key", func(e *Exit) *int { return &e.Key }),
	NumberField("destination", func(e *Exit) *int { return &e.Destination }),
}

// romExitSchema accepts either a lock level or a direct flag expression
// such as "ABC" or "A|F".
var romExitSchema = Schema[Exit]{
	mercExitSchema[0],
	mercExitSchema[1],
	mercExitSchema[2],
	CustomField("locks", KindWord, setExitInfo).Transform(romExitInfo),
	mercExitSchema[4],
	mercExitSchema[5],
}

func romExitInfo(v Value) (Value, error) {
	word := v.Text
	if n, err := strconv.ParseInt(word, 10, 64); err == nil {
		if info, ok := lockLevelInfo(n); ok {
			return Value{Int: info}, nil
		}
		return Value{Int: n}, nil
	}
	mask, err := NewCursor("", []byte(word)).ReadFlag()
	if err != nil {
		return v, err
	}
	return Value{Int: mask}, nil
}

func readMercRoom(c *Cursor, vnum int) (RoomRecord, error) {
	room := newRoom(vnum)
	if err := roomSchema.Read(c, &room); err != nil {
		return nil, err
	}
	for {
		letter, err := c.ReadLetter()
		if err != nil {
			return nil, err
		}
		switch letter {
		case 'S':
			return &room, nil
		case 'D':
			exit, err := readInto(c, mercExitSchema)
			if err != nil {
				return nil, err
			}
			room.Exits = append(room.Exits, exit)
		case 'E':
			ed, err := readExtraDescription(c)
			if err != nil {
				return nil, err
			}
			room.ExtraDescriptions = append(room.ExtraDescriptions, ed)
		default:
			return nil, c.Failf("room %d: unexpected %q (expected D, E or S)", vnum, letter)
		}
	}
}

func readRomRoom(c *Cursor, vnum int) (RoomRecord, error) {
	room := newRoom(vnum)
	if err := roomSchema.Read(c, &room); err != nil {
		return nil, err
	}
	if err := readRomRoomData(c, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// readRomRoomData reads the letter-tagged room attributes up to the closing
// S. Rooms have no trailing ambiguity, so any other letter is an error.
func readRomRoomData(c *Cursor, room *Room) error {
	for {
		letter, err := c.ReadLetter()
		if err != nil {
			return err
		}
		switch letter {
		case 'S':
			return nil
		case 'H':
			if room.HealRate, err = c.ReadNumber(); err != nil {
				return err
			}
		case 'M':
			if room.ManaRate, err = c.ReadNumber(); err != nil {
				return err
			}
		case 'C':
			if room.Clan, err = c.ReadString(); err != nil {
				return err
			}
		case 'O':
			if room.Owner, err = c.ReadString(); err != nil {
				return err
			}
		case 'D':
			exit, err := readInto(c, romExitSchema)
			if err != nil {
				return err
			}
			room.Exits = append(room.Exits, exit)
		case 'E':
			ed, err := readExtraDescription(c)
			if err != nil {
				return err
			}
			room.ExtraDescriptions = append(room.ExtraDescriptions, ed)
		default:
			return c.Failf("room %d: don't know how to process room attribute %q", room.Vnum, letter)
		}
	}
}

// readSmaugRoom reads a room whose sector line also carries the teleport
// delay, teleport target and tunnel size. Missing trailing values are zero.
func readSmaugRoom(c *Cursor, vnum int) (RoomRecord, error) {
	room := &SmaugRoom{Room: newRoom(vnum)}
	if err := roomHeaderSchema.Read(c, &room.Room); err != nil {
		return nil, err
	}
	fields := strings.Fields(c.ReadToEOL())
	if len(fields) == 0 {
		sector, err := c.ReadNumber()
		if err != nil {
			return nil, err
		}
		fields = []string{strconv.Itoa(sector)}
	}
	values := make([]int, 4)
	for i, f := range fields {
		if i >= len(values) {
			break
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, c.Failf("room %d: bad sector line value %q", vnum, f)
		}
		values[i] = n
	}
	room.SectorType = Sector(values[0])
	room.TeleDelay = values[1]
	room.TeleVnum = values[2]
	room.Tunnel = values[3]
	if err := readRomRoomData(c, &room.Room); err != nil {
		return nil, err
	}
	return room, nil
}
