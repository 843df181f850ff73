package di

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"chess-fen/internal/auth"
	authmongo "chess-fen/internal/auth/adapter/persistence/mongodb"
	authmemory "chess-fen/internal/auth/adapter/persistence/memory"
	authpostgres "chess-fen/internal/auth/adapter/persistence/postgres"
	"chess-fen/internal/auth/adapter/security"
	authconfig "chess-fen/internal/auth/config"
	authrepo "chess-fen/internal/auth/domain/repository"
	"chess-fen/internal/games"
	gamesmongo "chess-fen/internal/games/adapter/persistence/mongodb"
	gamesmemory "chess-fen/internal/games/adapter/persistence/memory"
	gamespostgres "chess-fen/internal/games/adapter/persistence/postgres"
	gamesrepo "chess-fen/internal/games/domain/repository"
	"chess-fen/internal/predict"
	predictconfig "chess-fen/internal/predict/config"
	"chess-fen/internal/predict/domain/client"
	"chess-fen/internal/shared/database"
	"chess-fen/internal/shared/logger"
	"chess-fen/internal/shared/ratelimit"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container owns the process-wide connections and the modules built on them.
type Container struct {
	mu sync.RWMutex
	// Module instances
	AuthModule    *auth.AuthModule
	GamesModule   *games.GamesModule
	PredictModule *predict.PredictModule
	// Database connections; only the ones the selected driver needs are set
	MongoDB  *mongo.Database
	Postgres *sql.DB
	Redis    *redis.Client
	// Configuration
	DBConfig      *database.Config
	AuthConfig    *authconfig.Config
	PredictConfig *predictconfig.Config
	// Logger
	Logger logger.Logger

	userRepo     authrepo.UserRepository
	positionRepo gamesrepo.PositionRepository
}

// NewContainer creates an empty container.
func NewContainer(log logger.Logger) *Container {
	if log == nil {
		log = logger.NewLogger()
	}
	return &Container{Logger: log.WithComponent("container")}
}

// InitializeStores opens the durable store selected by cfg.Driver, plus Redis when configured.
func (c *Container) InitializeStores(ctx context.Context, cfg *database.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.DBConfig = cfg

	switch cfg.Driver {
	case database.DriverMongoDB:
		db, err := database.ConnectMongo(ctx, cfg)
		if err != nil {
			return err
		}
		c.MongoDB = db
		users, err := authmongo.NewMongoUserRepository(ctx, db)
		if err != nil {
			return err
		}
		c.userRepo = users
		c.positionRepo = gamesmongo.NewMongoPositionRepository(db)

	case database.DriverPostgres:
		db, err := database.OpenPostgres(ctx, cfg)
		if err != nil {
			return err
		}
		c.Postgres = db
		c.userRepo = authpostgres.NewUserRepository(db)
		c.positionRepo = gamespostgres.NewPositionRepository(db)

	case database.DriverMemory:
		c.Logger.Warn("using in-memory store; data is lost on restart")
		c.userRepo = authmemory.NewUserRepository()
		c.positionRepo = gamesmemory.NewPositionRepository()

	default:
		return fmt.Errorf("unknown store driver %q", cfg.Driver)
	}

	rdb, err := database.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	c.Redis = rdb

	c.Logger.WithFields(map[string]interface{}{
		"driver": cfg.Driver,
		"redis":  rdb != nil,
	}).Info("stores initialized")
	return nil
}

// InitializeModules builds the auth, games and predict modules on the opened stores.
// predictor may be nil to use the HTTP upstream from predictCfg.
func (c *Container) InitializeModules(authCfg *authconfig.Config, predictCfg *predictconfig.Config, predictor client.Predictor, opts ...security.Option) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.userRepo == nil || c.positionRepo == nil {
		return errors.New("stores must be initialized before modules")
	}

	c.AuthConfig = authCfg
	c.PredictConfig = predictCfg

	authModule, err := auth.NewAuthModule(c.userRepo, authCfg, c.Logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create auth module: %w", err)
	}
	c.AuthModule = authModule

	c.GamesModule = games.NewGamesModule(c.positionRepo, c.Logger)

	predictModule, err := predict.NewPredictModule(predictCfg, predictor, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create predict module: %w", err)
	}
	c.PredictModule = predictModule

	return nil
}

// RateLimiter guards credential endpoints, sharing counters through Redis when available.
func (c *Container) RateLimiter() fiber.Handler {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cfg := ratelimit.Config{
		Max:    c.AuthConfig.RateLimitMax,
		Window: c.AuthConfig.RateLimitWindow,
	}
	if c.Redis != nil {
		cfg.Storage = ratelimit.NewRedisStorage(c.Redis)
	}
	return ratelimit.New(cfg)
}

// RegisterRoutes mounts every module on router.
func (c *Container) RegisterRoutes(router fiber.Router) {
	limiter := c.RateLimiter()

	c.mu.RLock()
	defer c.mu.RUnlock()

	c.AuthModule.RegisterRoutes(router, limiter)
	c.GamesModule.RegisterRoutes(router, c.AuthModule.GetMiddleware().Protect())
	c.PredictModule.RegisterRoutes(router)
}

// HealthCheck pings the durable store and Redis.
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.userRepo != nil {
		if err := c.userRepo.Ping(ctx); err != nil {
			return fmt.Errorf("store health check failed: %w", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis health check failed: %w", err)
		}
	}
	return nil
}

// Close releases connections in reverse order of initialization.
func (c *Container) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
		c.Redis = nil
	}
	if c.Postgres != nil {
		if err := c.Postgres.Close(); err != nil {
			errs = append(errs, fmt.Errorf("postgres: %w", err))
		}
		c.Postgres = nil
	}
	if c.MongoDB != nil {
		if err := c.MongoDB.Client().Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mongodb: %w", err))
		}
		c.MongoDB = nil
	}
	return errors.Join(errs...)
}
