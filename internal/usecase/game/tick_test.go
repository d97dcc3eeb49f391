package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gomoku_arena/internal/domain/game"
	repo "gomoku_arena/internal/repository"
)

// Runs the real scheduler so the tick goroutines overlap room setup and
// teardown; meaningful under -race.
func TestRealSchedulerTicksAcrossRoomLifecycle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickInterval = time.Microsecond
	cfg.StartGrace = time.Microsecond

	notifier := &recordingNotifier{}
	uc := NewGameUseCase(cfg, zap.NewNop().Sugar(), Deps{
		Store:    repo.NewMapUserStorage(1000, true),
		Notifier: notifier,
	})

	minutes := 1
	for i := 0; i < 50; i++ {
		id, err := uc.CreatePrivateRoom(fmt.Sprintf("creator-%d", i), &minutes)
		require.NoError(t, err)

		before := len(notifier.named(game.EventTimeSync))
		require.NoError(t, uc.JoinRoom(game.ModePrivate, id, "a", "alice"))
		require.NoError(t, uc.JoinRoom(game.ModePrivate, id, "b", "bob"))
		require.Eventually(t, func() bool {
			return len(notifier.named(game.EventTimeSync)) > before
		}, time.Second, time.Millisecond)

		uc.Disconnect(game.ModePrivate, "a")
	}

	assert.Len(t, notifier.named(game.EventPlayerLeft), 50)
	assert.Zero(t, uc.Stats().Rooms[game.ModePrivate])
}
