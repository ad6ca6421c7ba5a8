package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func otherZone() *Zone {
	return &Zone{
		ID:        "other",
		Name:      "Other",
		StartRoom: "room_c",
		Rooms: map[string]*Room{
			"room_c": {
				ID:          "room_c",
				ZoneID:      "other",
				Title:       "Room C",
				Description: "Across the border.",
				Exits: []Exit{
					{Direction: West, TargetRoom: "room_a", External: true},
				},
				Properties: map[string]string{},
			},
		},
	}
}

func TestNewAtlas(t *testing.T) {
	atlas, err := NewAtlas([]*Zone{validTestZone(), otherZone()})
	require.NoError(t, err)
	assert.Equal(t, 3, atlas.RoomCount())
	assert.Equal(t, 2, atlas.ZoneCount())

	room, ok := atlas.GetRoom("room_c")
	require.True(t, ok)
	assert.Equal(t, "other", room.ZoneID)
	_, ok = atlas.GetRoom("nonexistent")
	assert.False(t, ok)
}

func TestNewAtlas_DuplicateZone(t *testing.T) {
	_, err := NewAtlas([]*Zone{validTestZone(), validTestZone()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate zone ID")
}

func TestNewAtlas_DuplicateRoom(t *testing.T) {
	z2 := otherZone()
	z2.Rooms = map[string]*Room{"room_a": {ID: "room_a", ZoneID: "other", Title: "Dup", Description: "Dup"}}
	z2.StartRoom = "room_a"
	_, err := NewAtlas([]*Zone{validTestZone(), z2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate room ID")
}

func TestAtlas_ValidateExits_CrossZone(t *testing.T) {
	atlas, err := NewAtlas([]*Zone{validTestZone(), otherZone()})
	require.NoError(t, err)
	assert.NoError(t, atlas.ValidateExits())
}

func TestAtlas_ValidateExits_Dangling(t *testing.T) {
	z := otherZone()
	z.Rooms["room_c"].Exits[0].TargetRoom = "nowhere"
	atlas, err := NewAtlas([]*Zone{validTestZone(), z})
	require.NoError(t, err)
	err = atlas.ValidateExits()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nowhere")
}
