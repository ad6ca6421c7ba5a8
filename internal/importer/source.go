package importer

import "context"

// ZoneData is the common intermediate format produced by all Source
// implementations. Its YAML tags match the zone file schema read by
// world.LoadZoneFromBytes, so it can be marshalled and validated directly.
type ZoneData struct {
	Zone ZoneSpec `yaml:"zone"`
}

// ZoneSpec holds zone-level metadata and its rooms.
type ZoneSpec struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Source      string     `yaml:"source,omitempty"`
	StartRoom   string     `yaml:"start_room"`
	Rooms       []RoomSpec `yaml:"rooms"`
}

// RoomSpec holds a single room's data.
type RoomSpec struct {
	ID          string            `yaml:"id"`
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Exits       []ExitSpec        `yaml:"exits,omitempty"`
	Properties  map[string]string `yaml:"properties,omitempty"`
}

// ExitSpec holds a single exit's data. External exits target a room in
// another zone of the same import.
type ExitSpec struct {
	Direction string `yaml:"direction"`
	Target    string `yaml:"target"`
	External  bool   `yaml:"external,omitempty"`
	Door      bool   `yaml:"door,omitempty"`
	Locked    bool   `yaml:"locked,omitempty"`
	Key       string `yaml:"key,omitempty"`
	Keyword   string `yaml:"keyword,omitempty"`
	Hidden    bool   `yaml:"hidden,omitempty"`
}

// Source loads content from a format-specific source directory and produces
// ZoneData ready to be written as zone YAML files.
//
// Precondition: sourceDir must exist and contain the expected layout for the format.
// Postcondition: returns at least one ZoneData, or a non-nil error.
type Source interface {
	Load(ctx context.Context, sourceDir string) ([]*ZoneData, error)
}
