package game

import (
	"context"
	"fmt"

	"gomoku_arena/internal/domain/game"
	errs "gomoku_arena/internal/errors"
)

// BeginSearch queues a connection on a search topic and pairs the two longest
// waiting entries. Ranked entries carry the user's current rating.
func (g *GameUseCase) BeginSearch(ctx context.Context, mode game.Mode, connID, displayName string) error {
	entry := game.QueueEntry{ConnID: connID, DisplayName: displayName}

	switch mode {
	case game.ModeQuick:
	case game.ModeRanked:
		lookupCtx, cancel := context.WithTimeout(ctx, g.cfg.StoreTimeout)
		r, err := g.store.FindRating(lookupCtx, displayName)
		cancel()
		if err != nil {
			return fmt.Errorf("%w: %s: %w", errs.ErrRatingLookup, displayName, err)
		}
		entry.Rating = &r
	default:
		return fmt.Errorf("no search queue for %s rooms", mode)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	queue := g.queues[mode]
	if err := queue.Enqueue(entry); err != nil {
		return err
	}
	if pair, ok := queue.DequeuePairIfReady(); ok {
		g.pairLocked(mode, pair)
	}
	return nil
}

func (g *GameUseCase) LeaveSearch(mode game.Mode, connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if q, ok := g.queues[mode]; ok {
		q.Remove(connID)
	}
}

func (g *GameUseCase) pairLocked(mode game.Mode, pair [2]game.QueueEntry) {
	opts := game.RoomOptions{
		Variant: game.QuickRoom{},
		Timed:   true,
		Budget:  g.cfg.TimedGameDuration,
	}
	if mode == game.ModeRanked {
		ratings := make(map[string]float64, 2)
		for _, e := range pair {
			ratings[e.DisplayName] = *e.Rating
		}
		opts.Variant = &game.RankedRoom{Ratings: ratings}
	}

	room, err := g.rooms.Create(opts)
	if err != nil {
		g.log.Errorw("room creation failed", "mode", mode, "error", err)
		for _, e := range pair {
			g.send(e.ConnID, game.EventSearchFailed, game.ReasonPayload{Reason: err.Error()})
		}
		return
	}
	g.scheduleJoinTimeoutLocked(room)

	for _, e := range pair {
		g.send(e.ConnID, game.EventGameCreated, game.RoomPayload{RoomID: room.ID})
	}
	g.log.Infow("players paired", "mode", mode, "room", room.ID)
}
