package areafile

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cory-johannsen/mudarea/internal/area"
	"github.com/cory-johannsen/mudarea/internal/area/flags"
	"github.com/cory-johannsen/mudarea/internal/importer"
)

// RoomIndex maps a room vnum to the ID of the zone that defines it. It lets
// the converter tell an exit into a sibling area from a dangling one.
type RoomIndex map[int]string

// ZoneID derives the zone ID for an area from its source file name.
func ZoneID(a *area.Area) string {
	base := filepath.Base(a.Source)
	return importer.NameToID(strings.TrimSuffix(base, filepath.Ext(base)))
}

// IndexRooms builds the RoomIndex for a set of parsed areas. When two areas
// define the same vnum the first one wins; the duplicate is reported by the
// world atlas during import.
func IndexRooms(areas []*area.Area) RoomIndex {
	idx := make(RoomIndex)
	for _, a := range areas {
		zid := ZoneID(a)
		for _, vnum := range a.Rooms.Keys() {
			if _, seen := idx[vnum]; !seen {
				idx[vnum] = zid
			}
		}
	}
	return idx
}

// ConvertArea transforms a parsed area into a ZoneData ready for
// serialisation and validation.
//
// Precondition: a must be non-nil and carry a Source; idx must include a's
// rooms; startRoom is an optional vnum override for the zone's start room
// (0 means the first room in file order).
//
// Postcondition: returns a ZoneData and a (possibly empty) slice of warning
// strings for recoverable issues, or nil ZoneData when the area has no rooms.
func ConvertArea(a *area.Area, idx RoomIndex, startRoom int) (*importer.ZoneData, []string) {
	var warnings []string
	zoneID := ZoneID(a)

	keys := a.Rooms.Keys()
	if len(keys) == 0 {
		return nil, []string{fmt.Sprintf("area %q: no rooms; skipping", a.Source)}
	}

	start := keys[0]
	if startRoom > 0 {
		if _, ok := a.Rooms.Get(startRoom); ok {
			start = startRoom
		}
	}

	rooms := make([]importer.RoomSpec, 0, len(keys))
	for vnum, rec := range a.Rooms.All() {
		room := rec.RoomData()
		spec := importer.RoomSpec{
			ID:          strconv.Itoa(vnum),
			Title:       strings.TrimSpace(room.Name),
			Description: strings.TrimSpace(room.Description),
			Properties:  roomProperties(rec),
		}
		if spec.Title == "" {
			spec.Title = "Room " + spec.ID
		}
		if spec.Description == "" {
			spec.Description = spec.Title
		}
		for _, exit := range room.Exits {
			es, warning := convertExit(vnum, exit, zoneID, idx)
			if warning != "" {
				warnings = append(warnings, warning)
				continue
			}
			spec.Exits = append(spec.Exits, es)
		}
		rooms = append(rooms, spec)
	}

	name := strings.TrimSpace(a.Name())
	if name == "" {
		name = zoneID
	}
	return &importer.ZoneData{
		Zone: importer.ZoneSpec{
			ID:          zoneID,
			Name:        name,
			Description: description(a),
			Source:      filepath.Base(a.Source),
			StartRoom:   strconv.Itoa(start),
			Rooms:       rooms,
		},
	}, warnings
}

func convertExit(vnum int, exit *area.Exit, zoneID string, idx RoomIndex) (importer.ExitSpec, string) {
	if !exit.Door.Valid() {
		return importer.ExitSpec{}, fmt.Sprintf("room %d: exit has unknown direction %d; dropping exit", vnum, int(exit.Door))
	}
	if exit.Destination <= 0 {
		return importer.ExitSpec{}, fmt.Sprintf("room %d: exit %s leads nowhere; dropping exit", vnum, exit.Door)
	}
	owner, known := idx[exit.Destination]
	if !known {
		return importer.ExitSpec{}, fmt.Sprintf(
			"room %d: exit %s targets room %d which no imported area defines; dropping exit",
			vnum, exit.Door, exit.Destination,
		)
	}
	// Lock levels never carry the locked bit; a keyed door starts locked.
	door := exit.ResetFlags&area.ExitIsDoor != 0
	es := importer.ExitSpec{
		Direction: exit.Door.String(),
		Target:    strconv.Itoa(exit.Destination),
		External:  owner != zoneID,
		Door:      door,
		Locked:    door && (exit.ResetFlags&area.ExitLocked != 0 || exit.Key > 0),
		Keyword:   strings.TrimSpace(exit.Keyword),
	}
	if exit.Key > 0 {
		es.Key = strconv.Itoa(exit.Key)
	}
	return es, ""
}

func roomProperties(rec area.RoomRecord) map[string]string {
	room := rec.RoomData()
	props := map[string]string{
		"vnum":   strconv.Itoa(room.Vnum),
		"sector": room.SectorType.String(),
	}
	if names := flags.Room.Names(room.RoomFlags); len(names) > 0 {
		props["room_flags"] = strings.Join(names, ",")
	}
	if room.Owner != "" {
		props["owner"] = room.Owner
	}
	if room.Clan != "" {
		props["clan"] = room.Clan
	}
	if room.HealRate != 100 {
		props["heal_rate"] = strconv.Itoa(room.HealRate)
	}
	if room.ManaRate != 100 {
		props["mana_rate"] = strconv.Itoa(room.ManaRate)
	}
	if sr, ok := rec.(*area.SmaugRoom); ok {
		if sr.TeleVnum > 0 {
			props["tele_vnum"] = strconv.Itoa(sr.TeleVnum)
			props["tele_delay"] = strconv.Itoa(sr.TeleDelay)
		}
		if sr.Tunnel > 0 {
			props["tunnel"] = strconv.Itoa(sr.Tunnel)
		}
	}
	return props
}

// description returns the Rom credits line. Merc files only have the one
// #AREA line, which already serves as the name.
func description(a *area.Area) string {
	switch h := a.Header.(type) {
	case *area.RomHeader:
		return strings.TrimSpace(h.Metadata)
	case *area.SmaugHeader:
		return strings.TrimSpace(h.Metadata)
	}
	return ""
}
