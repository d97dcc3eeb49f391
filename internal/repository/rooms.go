package repo

import (
	"fmt"

	"gomoku_arena/internal/domain/game"
	errs "gomoku_arena/internal/errors"
	"gomoku_arena/internal/random"
)

const maxIDAttempts = 100

// RoomRegistry holds the live rooms of every mode. It does no locking of its
// own; the owner serialises access.
type RoomRegistry struct {
	random random.Random
	rooms  map[game.Mode]map[string]*game.Room
}

func NewRoomRegistry(rnd random.Random) *RoomRegistry {
	rooms := make(map[game.Mode]map[string]*game.Room, len(game.Modes))
	for _, m := range game.Modes {
		rooms[m] = make(map[string]*game.Room)
	}
	return &RoomRegistry{random: rnd, rooms: rooms}
}

// Create registers a new room under an id that is unused within its mode.
func (g *RoomRegistry) Create(opts game.RoomOptions) (*game.Room, error) {
	mode := opts.Variant.Mode()
	id, err := g.generateID(mode)
	if err != nil {
		return nil, err
	}
	room := game.NewRoom(id, opts)
	g.rooms[mode][id] = room
	return room, nil
}

func (g *RoomRegistry) generateID(mode game.Mode) (string, error) {
	rooms := g.rooms[mode]
	length := mode.IDLength()
	for i := 0; i < maxIDAttempts; i++ {
		id := g.random.String(length, random.Base36)
		if len(id) != length {
			continue
		}
		if _, taken := rooms[id]; !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %s rooms after %d attempts", errs.ErrIDGenerationExhausted, mode, maxIDAttempts)
}

func (g *RoomRegistry) Lookup(mode game.Mode, id string) (*game.Room, bool) {
	room, ok := g.rooms[mode][id]
	return room, ok
}

// Destroy stops the room's tick and removes it. It reports whether the room
// was present.
func (g *RoomRegistry) Destroy(mode game.Mode, id string) bool {
	room, ok := g.rooms[mode][id]
	if !ok {
		return false
	}
	room.StopTick()
	delete(g.rooms[mode], id)
	return true
}

// DestroyRoom removes room only if it is still the registered instance for
// its id, so a late timer cannot remove a newer room that reused the id.
func (g *RoomRegistry) DestroyRoom(room *game.Room) bool {
	current, ok := g.rooms[room.Mode()][room.ID]
	if !ok || current != room {
		return false
	}
	return g.Destroy(room.Mode(), room.ID)
}

// Registered reports whether room is the live instance for its id.
func (g *RoomRegistry) Registered(room *game.Room) bool {
	current, ok := g.rooms[room.Mode()][room.ID]
	return ok && current == room
}

func (g *RoomRegistry) WithParticipant(mode game.Mode, connID string) []*game.Room {
	var out []*game.Room
	for _, room := range g.rooms[mode] {
		if room.HasParticipant(connID) {
			out = append(out, room)
		}
	}
	return out
}

func (g *RoomRegistry) Rooms(mode game.Mode) []*game.Room {
	out := make([]*game.Room, 0, len(g.rooms[mode]))
	for _, room := range g.rooms[mode] {
		out = append(out, room)
	}
	return out
}

func (g *RoomRegistry) Count(mode game.Mode) int {
	return len(g.rooms[mode])
}
