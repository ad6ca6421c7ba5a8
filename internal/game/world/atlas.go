package world

import (
	"fmt"
	"sort"
)

// Atlas indexes the rooms of a set of zones so that exits crossing zone
// boundaries can be resolved. It is built once and read-only afterwards.
type Atlas struct {
	zones map[string]*Zone
	rooms map[string]*Room
	order []string
}

// NewAtlas indexes the given zones.
//
// Postcondition: Returns an Atlas with all rooms indexed by ID, or an error
// on duplicate zone or room IDs.
func NewAtlas(zones []*Zone) (*Atlas, error) {
	a := &Atlas{
		zones: make(map[string]*Zone, len(zones)),
		rooms: make(map[string]*Room),
	}
	for _, z := range zones {
		if _, exists := a.zones[z.ID]; exists {
			return nil, fmt.Errorf("duplicate zone ID: %q", z.ID)
		}
		a.zones[z.ID] = z
		a.order = append(a.order, z.ID)
		for id, room := range z.Rooms {
			if existing, exists := a.rooms[id]; exists {
				return nil, fmt.Errorf("duplicate room ID %q: in zone %q and %q", id, existing.ZoneID, z.ID)
			}
			a.rooms[id] = room
		}
	}
	return a, nil
}

// ValidateExits checks that every exit target in every room resolves to a
// known room across all indexed zones.
//
// Postcondition: Returns nil if all exits resolve, or an error naming the
// first dangling target in zone order.
func (a *Atlas) ValidateExits() error {
	for _, zid := range a.order {
		zone := a.zones[zid]
		ids := make([]string, 0, len(zone.Rooms))
		for id := range zone.Rooms {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			for _, exit := range zone.Rooms[id].Exits {
				if _, ok := a.rooms[exit.TargetRoom]; !ok {
					return fmt.Errorf("zone %q: room %q: exit %q targets unknown room %q",
						zone.ID, id, exit.Direction, exit.TargetRoom)
				}
			}
		}
	}
	return nil
}

// GetRoom returns the room with the given ID.
//
// Postcondition: Returns (room, true) if found, or (nil, false) otherwise.
func (a *Atlas) GetRoom(id string) (*Room, bool) {
	r, ok := a.rooms[id]
	return r, ok
}

// RoomCount returns the total number of rooms across all zones.
func (a *Atlas) RoomCount() int { return len(a.rooms) }

// ZoneCount returns the number of indexed zones.
func (a *Atlas) ZoneCount() int { return len(a.zones) }
