package internal

import (
	"fmt"
	"sort"
)

// RoomCatalog is the room list in presentation order: group rooms sorted by
// name, followed by one-to-one conversations. It is built once at startup.
type RoomCatalog struct {
	rooms []Room
}

// NewRoomCatalog normalizes rooms into a catalog
func NewRoomCatalog(rooms []Room) *RoomCatalog {
	return &RoomCatalog{rooms: NormalizeRooms(rooms)}
}

// NormalizeRooms sorts rooms by name (byte order, stable) and moves
// one-to-one rooms to the end, preserving their relative order. The input
// slice is not modified.
func NormalizeRooms(rooms []Room) []Room {
	sorted := make([]Room, len(rooms))
	copy(sorted, rooms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	out := make([]Room, 0, len(sorted))
	var conversations []Room
	for _, room := range sorted {
		if room.OneToOne {
			conversations = append(conversations, room)
			continue
		}
		out = append(out, room)
	}
	return append(out, conversations...)
}

// Rooms returns the rooms in presentation order
func (c *RoomCatalog) Rooms() []Room {
	out := make([]Room, len(c.rooms))
	copy(out, c.rooms)
	return out
}

// Len returns the number of rooms
func (c *RoomCatalog) Len() int {
	return len(c.rooms)
}

// First returns the room the session starts on
func (c *RoomCatalog) First() (Room, error) {
	if len(c.rooms) == 0 {
		return Room{}, ErrNoRooms
	}
	return c.rooms[0], nil
}

// Get returns the room with the given id
func (c *RoomCatalog) Get(id string) (Room, bool) {
	for _, room := range c.rooms {
		if room.ID == id {
			return room, true
		}
	}
	return Room{}, false
}

// Find resolves a room by id, exact name, or uri-style url ("/org/room" or "org/room")
func (c *RoomCatalog) Find(nameOrID string) (Room, error) {
	if room, ok := c.Get(nameOrID); ok {
		return room, nil
	}
	for _, room := range c.rooms {
		if room.Name == nameOrID || room.URL == nameOrID || room.URL == "/"+nameOrID {
			return room, nil
		}
	}
	return Room{}, fmt.Errorf("%w: %s", ErrRoomNotFound, nameOrID)
}

// Next returns the room after id, wrapping around
func (c *RoomCatalog) Next(id string) (Room, bool) {
	return c.step(id, 1)
}

// Prev returns the room before id, wrapping around
func (c *RoomCatalog) Prev(id string) (Room, bool) {
	return c.step(id, -1)
}

func (c *RoomCatalog) step(id string, delta int) (Room, bool) {
	n := len(c.rooms)
	if n == 0 {
		return Room{}, false
	}
	for i, room := range c.rooms {
		if room.ID == id {
			return c.rooms[((i+delta)%n+n)%n], true
		}
	}
	return c.rooms[0], true
}
