// Package world provides the zone model produced by area import: zones,
// rooms, exits, and directions.
package world

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dominikbraun/graph"
)

// Direction represents a compass direction.
type Direction string

// Standard compass directions and vertical movements.
const (
	North     Direction = "north"
	South     Direction = "south"
	East      Direction = "east"
	West      Direction = "west"
	Northeast Direction = "northeast"
	Northwest Direction = "northwest"
	Southeast Direction = "southeast"
	Southwest Direction = "southwest"
	Up        Direction = "up"
	Down      Direction = "down"
)

// StandardDirections contains all standard compass and vertical directions.
var StandardDirections = []Direction{
	North, South, East, West,
	Northeast, Northwest, Southeast, Southwest,
	Up, Down,
}

// IsStandard reports whether d is one of the ten standard directions.
func (d Direction) IsStandard() bool {
	return slices.Contains(StandardDirections, d)
}

// Opposite returns the opposite of a standard direction.
// For other directions, it returns an empty string.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Northeast:
		return Southwest
	case Southwest:
		return Northeast
	case Northwest:
		return Southeast
	case Southeast:
		return Northwest
	case Up:
		return Down
	case Down:
		return Up
	default:
		return ""
	}
}

// Exit represents a passage from one room to another.
type Exit struct {
	// Direction is the compass direction of the exit.
	Direction Direction
	// TargetRoom is the ID of the destination room.
	TargetRoom string
	// External marks a target that lives in another zone. Such targets are
	// resolved by an Atlas, not by the zone.
	External bool
	// Door indicates the exit has a door.
	Door bool
	// Locked indicates the exit requires a key to pass.
	Locked bool
	// Key is the ID of the key object, if any.
	Key string
	// Keyword is the name used to address the door.
	Keyword string
	// Hidden indicates the exit is not visible by default.
	Hidden bool
}

// Room represents a location in the world.
type Room struct {
	// ID uniquely identifies this room across all imported zones.
	ID string
	// ZoneID identifies the zone this room belongs to.
	ZoneID string
	// Title is the short display name of the room.
	Title string
	// Description is the multi-line room description shown to players.
	Description string
	// Exits lists all passages leading out of this room.
	Exits []Exit
	// Properties holds terrain and flag tags carried over from the area file.
	Properties map[string]string
}

// ExitForDirection returns the exit in the given direction, if one exists.
//
// Postcondition: Returns (exit, true) if found, or (Exit{}, false) otherwise.
func (r *Room) ExitForDirection(dir Direction) (Exit, bool) {
	for _, e := range r.Exits {
		if e.Direction == dir {
			return e, true
		}
	}
	return Exit{}, false
}

// VisibleExits returns all non-hidden exits from this room.
//
// Postcondition: Returns a slice of exits where Hidden is false.
func (r *Room) VisibleExits() []Exit {
	var visible []Exit
	for _, e := range r.Exits {
		if !e.Hidden {
			visible = append(visible, e)
		}
	}
	return visible
}

// Zone groups the rooms imported from one area file.
type Zone struct {
	// ID uniquely identifies this zone.
	ID string
	// Name is the display name of the zone.
	Name string
	// Description summarizes the zone.
	Description string
	// Source is the area file the zone was imported from.
	Source string
	// StartRoom is the ID of the default entry room.
	StartRoom string
	// Rooms contains all rooms in this zone, keyed by room ID.
	Rooms map[string]*Room
}

// Validate checks zone invariants. Internal exits must target a room of this
// zone; external exits only need a target.
//
// Postcondition: Returns nil if valid, or an error describing the first violation.
func (z *Zone) Validate() error {
	if z.ID == "" {
		return fmt.Errorf("zone ID must not be empty")
	}
	if z.Name == "" {
		return fmt.Errorf("zone %q: name must not be empty", z.ID)
	}
	if z.StartRoom == "" {
		return fmt.Errorf("zone %q: start_room must not be empty", z.ID)
	}
	if len(z.Rooms) == 0 {
		return fmt.Errorf("zone %q: must contain at least one room", z.ID)
	}
	if _, ok := z.Rooms[z.StartRoom]; !ok {
		return fmt.Errorf("zone %q: start_room %q not found in rooms", z.ID, z.StartRoom)
	}
	for id, room := range z.Rooms {
		if room.ID != id {
			return fmt.Errorf("zone %q: room key %q does not match room ID %q", z.ID, id, room.ID)
		}
		if room.Title == "" {
			return fmt.Errorf("zone %q: room %q: title must not be empty", z.ID, id)
		}
		if room.Description == "" {
			return fmt.Errorf("zone %q: room %q: description must not be empty", z.ID, id)
		}
		for _, exit := range room.Exits {
			if exit.TargetRoom == "" {
				return fmt.Errorf("zone %q: room %q: exit %q has empty target", z.ID, id, exit.Direction)
			}
			if exit.External {
				continue
			}
			if _, ok := z.Rooms[exit.TargetRoom]; !ok {
				return fmt.Errorf("zone %q: room %q: exit %q targets unknown room %q", z.ID, id, exit.Direction, exit.TargetRoom)
			}
		}
	}
	return nil
}

// Graph returns the directed graph of internal exits between the zone's rooms.
//
// Postcondition: every room is a vertex; every internal exit is an edge.
func (z *Zone) Graph() (graph.Graph[string, string], error) {
	g := graph.New(graph.StringHash, graph.Directed())
	for id := range z.Rooms {
		if err := g.AddVertex(id); err != nil {
			return nil, fmt.Errorf("adding room %q: %w", id, err)
		}
	}
	for id, room := range z.Rooms {
		for _, exit := range room.Exits {
			if exit.External {
				continue
			}
			err := g.AddEdge(id, exit.TargetRoom)
			if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return nil, fmt.Errorf("adding exit %s -> %s: %w", id, exit.TargetRoom, err)
			}
		}
	}
	return g, nil
}

// UnreachableRooms returns the IDs of rooms that cannot be reached from the
// start room through internal exits, sorted.
//
// Precondition: z must be valid.
func (z *Zone) UnreachableRooms() ([]string, error) {
	g, err := z.Graph()
	if err != nil {
		return nil, err
	}
	reached := make(map[string]bool, len(z.Rooms))
	err = graph.BFS(g, z.StartRoom, func(id string) bool {
		reached[id] = true
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("walking zone %q from %q: %w", z.ID, z.StartRoom, err)
	}
	var out []string
	for id := range z.Rooms {
		if !reached[id] {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out, nil
}
