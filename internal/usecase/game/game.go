package game

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"gomoku_arena/internal/clock"
	"gomoku_arena/internal/domain/game"
	"gomoku_arena/internal/random"
	repo "gomoku_arena/internal/repository"
	"gomoku_arena/internal/usecase/rating"
)

// RatingStore is the user-store view the session engine needs.
type RatingStore interface {
	FindRating(ctx context.Context, username string) (float64, error)
	UpdateRating(ctx context.Context, username string, rating float64) error
}

// Notifier delivers an event to one connection. It must not block.
type Notifier interface {
	Send(connID string, event game.Event)
}

type Config struct {
	TimedGameDuration time.Duration
	TickInterval      time.Duration
	StartGrace        time.Duration
	ResultLinger      time.Duration
	JoinTimeout       time.Duration
	StoreTimeout      time.Duration
}

func DefaultConfig() Config {
	return Config{
		TimedGameDuration: 150 * time.Second,
		TickInterval:      time.Second,
		StartGrace:        3 * time.Second,
		ResultLinger:      30 * time.Second,
		JoinTimeout:       2 * time.Minute,
		StoreTimeout:      5 * time.Second,
	}
}

type Deps struct {
	Store     RatingStore
	Notifier  Notifier
	Engine    *rating.Engine
	Clock     clock.Clock
	Scheduler clock.Scheduler
	Random    random.Random
}

// GameUseCase owns every room and queue. All state changes happen under mu;
// user-store calls are made without holding it.
type GameUseCase struct {
	mu        sync.Mutex
	cfg       Config
	log       *zap.SugaredLogger
	rooms     *repo.RoomRegistry
	queues    map[game.Mode]*repo.MatchQueue
	store     RatingStore
	notifier  Notifier
	elo       *rating.Engine
	clock     clock.Clock
	scheduler clock.Scheduler
	random    random.Random
	pending   sync.WaitGroup
}

func NewGameUseCase(cfg Config, log *zap.SugaredLogger, deps Deps) *GameUseCase {
	if deps.Engine == nil {
		deps.Engine = rating.NewEngine(rating.DefaultK)
	}
	if deps.Clock == nil {
		deps.Clock = clock.New()
	}
	if deps.Scheduler == nil {
		deps.Scheduler = clock.NewScheduler()
	}
	if deps.Random == nil {
		deps.Random = random.New()
	}
	return &GameUseCase{
		cfg:   cfg,
		log:   log,
		rooms: repo.NewRoomRegistry(deps.Random),
		queues: map[game.Mode]*repo.MatchQueue{
			game.ModeQuick:  repo.NewMatchQueue(),
			game.ModeRanked: repo.NewMatchQueue(),
		},
		store:     deps.Store,
		notifier:  deps.Notifier,
		elo:       deps.Engine,
		clock:     deps.Clock,
		scheduler: deps.Scheduler,
		random:    deps.Random,
	}
}

type Stats struct {
	Rooms  map[game.Mode]int `json:"rooms"`
	Queued map[game.Mode]int `json:"queued"`
}

func (g *GameUseCase) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := Stats{Rooms: make(map[game.Mode]int), Queued: make(map[game.Mode]int)}
	for _, m := range game.Modes {
		s.Rooms[m] = g.rooms.Count(m)
	}
	for m, q := range g.queues {
		s.Queued[m] = q.Len()
	}
	return s
}

// Drain waits for in-flight rating writes.
func (g *GameUseCase) Drain() {
	g.pending.Wait()
}

func (g *GameUseCase) send(connID string, name game.EventName, data any) {
	g.notifier.Send(connID, game.Event{Name: name, Data: data})
}

func (g *GameUseCase) broadcastLocked(room *game.Room, name game.EventName, data any, except ...string) {
	for _, p := range room.Participants {
		if contains(except, p) {
			continue
		}
		g.send(p, name, data)
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
