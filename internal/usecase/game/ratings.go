package game

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	errs "gomoku_arena/internal/errors"
	"gomoku_arena/internal/usecase/rating"
)

// persistRatings writes both new ratings in the background. The returned
// channel yields the first failure, or nil, and is then closed. Nothing is
// retried.
func (g *GameUseCase) persistRatings(names [2]string, adj rating.Adjustment) <-chan error {
	done := make(chan error, 1)
	g.pending.Add(1)
	go func() {
		defer g.pending.Done()
		defer close(done)

		ctx, cancel := context.WithTimeout(context.Background(), g.cfg.StoreTimeout)
		defer cancel()

		var eg errgroup.Group
		for i, name := range names {
			eg.Go(func() error {
				if err := g.store.UpdateRating(ctx, name, adj.New[i]); err != nil {
					return fmt.Errorf("%w: %s: %w", errs.ErrRatingPersist, name, err)
				}
				return nil
			})
		}
		done <- eg.Wait()
	}()
	return done
}

// settleRatingsLocked persists a rated result and logs how the write ended.
// Drain covers both the write and its report.
func (g *GameUseCase) settleRatingsLocked(roomID string, names [2]string, adj rating.Adjustment) {
	done := g.persistRatings(names, adj)
	g.pending.Add(1)
	go func() {
		defer g.pending.Done()
		if err := <-done; err != nil {
			g.log.Errorw("ratings not saved", "room", roomID, "users", names, "ratings", adj.New, "error", err)
			return
		}
		g.log.Infow("ratings saved", "room", roomID, "users", names, "ratings", adj.New)
	}()
}
