package game

import (
	"fmt"
	"time"

	"gomoku_arena/internal/domain/game"
	errs "gomoku_arena/internal/errors"
)

// CreatePrivateRoom opens an invite-only room. A nil duration makes it untimed.
func (g *GameUseCase) CreatePrivateRoom(connID string, durationMinutes *int) (string, error) {
	opts := game.RoomOptions{Variant: &game.PrivateRoom{Creator: connID}}
	if durationMinutes != nil {
		if *durationMinutes <= 0 {
			return "", fmt.Errorf("%w: duration must be positive, got %d", errs.ErrInvalidRoomOptions, *durationMinutes)
		}
		opts.Timed = true
		opts.Budget = time.Duration(*durationMinutes) * time.Minute
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	room, err := g.rooms.Create(opts)
	if err != nil {
		return "", err
	}
	pv, _ := room.Private()
	pv.AddWaiting(connID)

	g.send(connID, game.EventRoomGenerated, game.RoomPayload{RoomID: room.ID})
	g.log.Infow("private room created", "room", room.ID, "timed", room.Timed)
	return room.ID, nil
}

// JoinWaitingRoom registers a connection in a private room's waiting area.
// Once someone other than the creator arrives, everyone waiting is told the
// game has begun.
func (g *GameUseCase) JoinWaitingRoom(connID, roomID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.rooms.Lookup(game.ModePrivate, roomID)
	if !ok {
		return fmt.Errorf("%w: %s", errs.ErrRoomNotFound, roomID)
	}
	pv, _ := room.Private()
	pv.AddWaiting(connID)

	if connID != pv.Creator && !pv.Claimed {
		pv.Claimed = true
		g.scheduleJoinTimeoutLocked(room)
	}
	if !pv.Claimed {
		return nil
	}

	payload := game.WaitingBegunPayload{RoomID: room.ID}
	if room.Timed {
		secs := room.Clocks[0].Remaining.Seconds()
		payload.InitialRemaining = &secs
	}
	for _, w := range pv.Waiting {
		g.send(w, game.EventGameBegun, payload)
	}
	return nil
}

// LeaveWaitingRoom drops a waiting connection. A room whose creator leaves
// before anyone claimed it is removed.
func (g *GameUseCase) LeaveWaitingRoom(connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, room := range g.rooms.Rooms(game.ModePrivate) {
		pv, _ := room.Private()
		if !pv.RemoveWaiting(connID) {
			continue
		}
		if pv.Creator == connID && !pv.Claimed && room.Outcome == game.OutcomeUndetermined && len(room.Participants) == 0 {
			g.rooms.DestroyRoom(room)
			g.log.Infow("unclaimed private room removed", "room", room.ID)
		}
	}
}
