package importer_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/mudarea/internal/area"
	"github.com/cory-johannsen/mudarea/internal/game/world"
	"github.com/cory-johannsen/mudarea/internal/importer"
	"github.com/cory-johannsen/mudarea/internal/importer/areafile"
)

// staticSource returns a fixed set of zones.
type staticSource struct {
	zones []*importer.ZoneData
	err   error
}

func (s staticSource) Load(context.Context, string) ([]*importer.ZoneData, error) {
	return s.zones, s.err
}

func zoneData(id string, rooms ...importer.RoomSpec) *importer.ZoneData {
	return &importer.ZoneData{Zone: importer.ZoneSpec{
		ID:        id,
		Name:      "Zone " + id,
		StartRoom: rooms[0].ID,
		Rooms:     rooms,
	}}
}

func roomSpec(id string, exits ...importer.ExitSpec) importer.RoomSpec {
	return importer.RoomSpec{ID: id, Title: "Room " + id, Description: "Room " + id + ".", Exits: exits}
}

func TestImporter_Run_AreaFiles(t *testing.T) {
	src := areafile.NewSource(areafile.Options{
		Dialect:  area.Rom,
		Encoding: "latin1",
		Pattern:  "*.are",
		Workers:  2,
	}, nil)
	core, logs := observer.New(zapcore.WarnLevel)

	outDir := filepath.Join(t.TempDir(), "zones")
	imp := importer.New(src, zap.New(core))
	require.NoError(t, imp.Run(context.Background(), filepath.Join("areafile", "testdata"), outDir))

	zones, err := world.LoadZonesFromDir(outDir)
	require.NoError(t, err)
	require.Len(t, zones, 2)

	atlas, err := world.NewAtlas(zones)
	require.NoError(t, err)
	require.NoError(t, atlas.ValidateExits())
	assert.Equal(t, 4, atlas.RoomCount())

	temple, ok := atlas.GetRoom("3001")
	require.True(t, ok)
	exit, ok := temple.ExitForDirection(world.North)
	require.True(t, ok)
	assert.True(t, exit.External)
	assert.Equal(t, "3054", exit.TargetRoom)

	unreachable := logs.FilterMessage("rooms unreachable from start room").All()
	require.Len(t, unreachable, 1)
	assert.Equal(t, "temple", unreachable[0].ContextMap()["zone"])
	assert.Equal(t, []interface{}{"3003"}, unreachable[0].ContextMap()["rooms"])
}

func TestImporter_Run_SourceError(t *testing.T) {
	imp := importer.New(staticSource{err: errors.New("boom")}, nil)
	err := imp.Run(context.Background(), "unused", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading source: boom")
}

func TestImporter_Run_InvalidZoneWritesNothing(t *testing.T) {
	good := zoneData("good", roomSpec("1"))
	bad := zoneData("bad", roomSpec("2", importer.ExitSpec{Direction: "north", Target: "99"}))

	outDir := filepath.Join(t.TempDir(), "out")
	err := importer.New(staticSource{zones: []*importer.ZoneData{good, bad}}, nil).
		Run(context.Background(), "unused", outDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `zone "bad" failed validation`)

	_, statErr := os.Stat(outDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestImporter_Run_DanglingExternalExit(t *testing.T) {
	z := zoneData("lonely", roomSpec("1", importer.ExitSpec{Direction: "up", Target: "500", External: true}))
	err := importer.New(staticSource{zones: []*importer.ZoneData{z}}, nil).
		Run(context.Background(), "unused", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating exits")
}

func TestImporter_Run_DuplicateRoomAcrossZones(t *testing.T) {
	a := zoneData("a", roomSpec("1"))
	b := zoneData("b", roomSpec("1"))
	err := importer.New(staticSource{zones: []*importer.ZoneData{a, b}}, nil).
		Run(context.Background(), "unused", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate room ID")
}

// TestImporter_Run_NZonesProducesNFiles verifies that N linked zones produce
// exactly N output YAML files.
func TestImporter_Run_NZonesProducesNFiles(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(rt, "numZones")

		zones := make([]*importer.ZoneData, n)
		for i := range zones {
			next := fmt.Sprintf("%d", ((i+1)%n)*100)
			var exits []importer.ExitSpec
			if n > 1 {
				exits = append(exits, importer.ExitSpec{Direction: "east", Target: next, External: true})
			}
			zones[i] = zoneData(fmt.Sprintf("zone_%d", i), roomSpec(fmt.Sprintf("%d", i*100), exits...))
		}

		outDir := t.TempDir()
		if err := importer.New(staticSource{zones: zones}, nil).Run(context.Background(), "unused", outDir); err != nil {
			rt.Fatal(err)
		}

		entries, err := os.ReadDir(outDir)
		if err != nil {
			rt.Fatal(err)
		}
		assert.Equal(rt, n, len(entries),
			"Run with %d zone(s) must produce exactly %d output file(s)", n, n)
	})
}
