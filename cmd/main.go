package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gomoku_arena/internal/adapters"
	"gomoku_arena/internal/bootstrap"
	gameDelivery "gomoku_arena/internal/delivery/game"
	healthDelivery "gomoku_arena/internal/delivery/health"
	"gomoku_arena/internal/domain/game"
	ownMiddleware "gomoku_arena/internal/middleware"
	repo "gomoku_arena/internal/repository"
	gameuc "gomoku_arena/internal/usecase/game"
	"gomoku_arena/internal/usecase/rating"
)

const shutdownTimeout = 10 * time.Second

type mainDeliveryHandler struct {
	game   *gameDelivery.GameHandler
	health *healthDelivery.Server
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "gomoku-arena",
		Short:        "Real-time five-in-a-row game server",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newServeCmd())
	return rootCmd
}

func newServeCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the websocket game server and the health service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap.Setup(cfgPath)
			if err != nil {
				return fmt.Errorf("setup configuration: %w", err)
			}
			logger := NewLogger(cfg.LogDevelopment)
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, logger)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", ".env", "dotenv file with configuration")
	return cmd
}

func NewLogger(development bool) *zap.SugaredLogger {
	build := zap.NewProduction
	if development {
		build = zap.NewDevelopment
	}
	logger, err := build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func run(ctx context.Context, cfg *bootstrap.Config, logger *zap.SugaredLogger) error {
	databaseAdapters, store, err := initStorage(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer databaseAdapters.close(logger)

	pool := gameDelivery.NewConnectionPool(logger)
	gameUC := gameuc.NewGameUseCase(gameConfig(cfg), logger, gameuc.Deps{
		Store:    store,
		Notifier: pool,
		Engine:   rating.NewEngine(cfg.RatingK),
	})
	handlers := &mainDeliveryHandler{
		game:   gameDelivery.NewGameHandler(logger, gameUC, pool),
		health: healthDelivery.NewServer(logger),
	}

	r := chi.NewRouter()
	handlers.Router(r, cfg.IsLocalCors)
	httpServer := &http.Server{Addr: ":" + cfg.ServerPort, Handler: r}

	lis, err := net.Listen("tcp", ":"+cfg.GrpcPort)
	if err != nil {
		return fmt.Errorf("listen on grpc port: %w", err)
	}

	errCh := make(chan error, 2)
	go func() {
		if err := handlers.health.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc health server: %w", err)
		}
	}()
	go func() {
		logger.Infof("Server is running on port %s", cfg.ServerPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	case err = <-errCh:
		logger.Errorw("server failed", "error", err)
	}

	handlers.health.Drain()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warnw("http shutdown", "error", err)
	}
	pool.CloseAll()
	pool.Wait()
	gameUC.Drain()
	handlers.health.Stop()
	return err
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/q/search", h.game.HandleSearch(game.ModeQuick))
	r.Get("/r/search", h.game.HandleSearch(game.ModeRanked))
	r.Get("/waiting", h.game.HandleWaitingRoom)
	r.Get("/q/game", h.game.HandleGame(game.ModeQuick))
	r.Get("/r/game", h.game.HandleGame(game.ModeRanked))
	r.Get("/p/game", h.game.HandleGame(game.ModePrivate))

	r.Get("/stats", h.game.HandleStats)
	r.Get("/health", h.health.HandleHTTP)
}

func gameConfig(cfg *bootstrap.Config) gameuc.Config {
	return gameuc.Config{
		TimedGameDuration: cfg.TimedGameDuration,
		TickInterval:      cfg.TickInterval,
		StartGrace:        cfg.StartGrace,
		ResultLinger:      cfg.ResultLinger,
		JoinTimeout:       cfg.JoinTimeout,
		StoreTimeout:      cfg.StoreTimeout,
	}
}

// initStorage picks the user store. The Redis cache is layered on top when REDIS_URL is set.
func initStorage(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) (*dataBaseAdapters, gameuc.RatingStore, error) {
	dbAdapters := &dataBaseAdapters{}

	var store repo.RatingSource
	switch cfg.StorageType {
	case bootstrap.StorageMemory:
		store = repo.NewMapUserStorage(cfg.DefaultRating, true)
	case bootstrap.StorageMongo:
		dbAdapters.mongoAdapter = adapters.NewAdapterMongo(cfg, log)
		if err := dbAdapters.mongoAdapter.Init(ctx); err != nil {
			return nil, nil, err
		}
		store = repo.NewMongoUserStorage(dbAdapters.mongoAdapter.Database, log, cfg.StoreTimeout, cfg.DefaultRating)
	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_TYPE %q", cfg.StorageType)
	}

	if cfg.RedisUrl != "" {
		dbAdapters.redisAdapter = adapters.NewAdapterRedis(cfg, log)
		if err := dbAdapters.redisAdapter.Init(ctx); err != nil {
			dbAdapters.close(log)
			return nil, nil, err
		}
		store = repo.NewCachedRatingStore(store, dbAdapters.redisAdapter.GetClient(), cfg.RatingCacheTTL, log)
	}

	log.Infow("storage initialised", "type", cfg.StorageType, "cache", cfg.RedisUrl != "")
	return dbAdapters, store, nil
}

func (d *dataBaseAdapters) close(log *zap.SugaredLogger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if d.mongoAdapter != nil {
		if err := d.mongoAdapter.Close(ctx); err != nil {
			log.Warnw("close mongo", "error", err)
		}
	}
	if d.redisAdapter != nil {
		if err := d.redisAdapter.Close(ctx); err != nil {
			log.Warnw("close redis", "error", err)
		}
	}
}
