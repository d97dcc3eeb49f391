package game

import (
	"fmt"

	"gomoku_arena/internal/clock"
	"gomoku_arena/internal/domain/game"
	errs "gomoku_arena/internal/errors"
	"gomoku_arena/internal/usecase/rating"
)

// JoinRoom adds a connection to a room. The second arrival starts the game.
func (g *GameUseCase) JoinRoom(mode game.Mode, roomID, connID, displayName string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.rooms.Lookup(mode, roomID)
	if !ok {
		return fmt.Errorf("%w: %s", errs.ErrRoomNotFound, roomID)
	}
	if !room.AddParticipant(connID, displayName) {
		g.log.Debugw("join ignored", "room", roomID, "conn", connID)
		return nil
	}
	if room.Full() {
		g.startLocked(room)
	}
	return nil
}

func (g *GameUseCase) startLocked(room *game.Room) {
	room.TurnOrigin = g.random.Intn(2)

	names := make(map[string]string, len(room.DisplayNames))
	for k, v := range room.DisplayNames {
		names[k] = v
	}
	g.broadcastLocked(room, game.EventGameBegun, game.GameBegunPayload{
		FirstMover:   room.Mover(),
		DisplayNames: names,
		TurnOrigin:   room.TurnOrigin,
	})

	if room.Timed {
		room.Clocks[room.MoverIndex()].Start(g.clock.Now())
		g.startTickLocked(room)
	}

	g.scheduler.After(g.cfg.StartGrace, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.rooms.Registered(room) {
			room.Begin()
		}
	})
	g.log.Infow("game started", "mode", room.Mode(), "room", room.ID, "origin", room.TurnOrigin)
}

// startTickLocked replaces the room's tick. A tick only acts while it is
// still the room's current one. The handle is written under mu and read by
// the callback under mu.
func (g *GameUseCase) startTickLocked(room *game.Room) {
	room.StopTick()
	self := new(clock.Timer)
	*self = g.scheduler.Every(g.cfg.TickInterval, func() {
		g.onTick(room, self)
	})
	room.Tick = *self
}

// onTick settles the running clock and broadcasts it. Once that clock has run
// out the tick stops; the next move starts a fresh one.
func (g *GameUseCase) onTick(room *game.Room, self *clock.Timer) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if room.Tick != *self || room.Decided() || !g.rooms.Registered(room) {
		return
	}
	running := room.MoverIndex()
	room.Clocks[running].Settle(g.clock.Now())
	g.broadcastLocked(room, game.EventTimeSync, game.TimeSyncPayload{
		Clocks:  room.ClockViews(),
		Running: running,
	})
	if room.Clocks[running].Expired() {
		room.StopTick()
		g.log.Infow("clock expired", "mode", room.Mode(), "room", room.ID, "conn", room.Mover())
	}
}

// Move places the mover's stone. Anything out of turn, on an occupied or
// off-board cell, or outside active play returns ErrInvalidMove and changes
// nothing.
func (g *GameUseCase) Move(mode game.Mode, roomID, connID string, x, y int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.rooms.Lookup(mode, roomID)
	if !ok {
		return fmt.Errorf("%w: %s", errs.ErrRoomNotFound, roomID)
	}
	if !room.Full() ||
		room.Outcome != game.OutcomeInProgress ||
		room.Mover() != connID ||
		!room.Board.InBounds(x, y) ||
		room.Board.At(x, y) != game.CellEmpty {
		return errs.ErrInvalidMove
	}

	room.StopTick()
	mover := room.MoverIndex()
	now := g.clock.Now()
	if room.Timed {
		room.Clocks[mover].Settle(now)
	}

	stone := game.StoneFor(room.Parity())
	room.Board.Place(x, y, stone)
	g.broadcastLocked(room, game.EventMoveAccepted, game.MoveAcceptedPayload{
		Mover:        connID,
		Round:        room.Round,
		X:            x,
		Y:            y,
		Stone:        stone,
		Clocks:       room.ClockViews(),
		Participants: append([]string(nil), room.Participants...),
	})

	switch room.Board.CheckOutcome(x, y) {
	case game.Continue:
		if room.Timed {
			room.Clocks[1-mover].Start(now)
			g.startTickLocked(room)
		}
	case game.Win:
		g.finishWinLocked(room, mover)
	case game.Tie:
		g.finishTieLocked(room)
	}
	room.Round++
	return nil
}

func (g *GameUseCase) finishWinLocked(room *game.Room, winner int) {
	room.Decide()
	payload := game.WinPayload{Winner: room.Participants[winner]}

	names, old, ranked := g.rankedSidesLocked(room)
	var adj rating.Adjustment
	if ranked {
		adj = g.elo.Win(old[0], old[1], rating.Side(winner))
		delta := adj.Delta
		payload.RatingDelta = &delta
	}
	g.broadcastLocked(room, game.EventWin, payload)
	if ranked {
		g.settleRatingsLocked(room.ID, names, adj)
	}
	g.schedulePruneLocked(room)
	g.log.Infow("game won", "mode", room.Mode(), "room", room.ID, "winner", payload.Winner)
}

func (g *GameUseCase) finishTieLocked(room *game.Room) {
	room.Decide()
	var payload game.TiePayload

	names, old, ranked := g.rankedSidesLocked(room)
	var adj rating.Adjustment
	if ranked {
		adj = g.elo.Tie(old[0], old[1])
		delta := adj.Delta
		payload.RatingDelta = &delta
		payload.Gainer = room.Participants[adj.Gainer]
	}
	g.broadcastLocked(room, game.EventTie, payload)
	if ranked {
		g.settleRatingsLocked(room.ID, names, adj)
	}
	g.schedulePruneLocked(room)
	g.log.Infow("game tied", "mode", room.Mode(), "room", room.ID)
}

// Disconnect closes every unfinished room the connection plays in. Ranked
// rooms score it as a forfeit.
func (g *GameUseCase) Disconnect(mode game.Mode, connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, room := range g.rooms.WithParticipant(mode, connID) {
		if room.Decided() {
			continue
		}
		room.StopTick()

		var payload game.PlayerLeftPayload
		names, old, ranked := g.rankedSidesLocked(room)
		var adj rating.Adjustment
		if ranked {
			adj = g.elo.Forfeit(old[0], old[1], rating.Side(room.ParticipantIndex(connID)))
			delta := adj.Delta
			payload.RatingDelta = &delta
		}
		g.broadcastLocked(room, game.EventPlayerLeft, payload, connID)
		g.rooms.DestroyRoom(room)
		if ranked {
			g.settleRatingsLocked(room.ID, names, adj)
		}
		g.log.Infow("player left", "mode", mode, "room", room.ID, "conn", connID, "rated", ranked)
	}
}

// rankedSidesLocked returns usernames and snapshot ratings in join order for
// a full ranked room.
func (g *GameUseCase) rankedSidesLocked(room *game.Room) ([2]string, [2]float64, bool) {
	var names [2]string
	var old [2]float64
	rv, ok := room.Ranked()
	if !ok || !room.Full() {
		return names, old, false
	}
	for i, name := range room.Names() {
		r, found := rv.Ratings[name]
		if !found {
			g.log.Warnw("unrated result", "room", room.ID, "user", name, "error", errs.ErrRatingSnapshotMissing)
			return names, old, false
		}
		names[i], old[i] = name, r
	}
	return names, old, true
}

func (g *GameUseCase) schedulePruneLocked(room *game.Room) {
	g.scheduler.After(g.cfg.ResultLinger, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.rooms.DestroyRoom(room) {
			g.log.Debugw("finished room pruned", "room", room.ID)
		}
	})
}

// scheduleJoinTimeoutLocked removes a room that never got both players.
func (g *GameUseCase) scheduleJoinTimeoutLocked(room *game.Room) {
	g.scheduler.After(g.cfg.JoinTimeout, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if !g.rooms.Registered(room) || room.Full() {
			return
		}
		g.broadcastLocked(room, game.EventPlayerLeft, game.PlayerLeftPayload{})
		g.rooms.DestroyRoom(room)
		g.log.Infow("abandoned room removed", "mode", room.Mode(), "room", room.ID)
	})
}
