package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/lagcraft/statusboard/internal/dependencies/clock"
	"github.com/lagcraft/statusboard/internal/model"
	"github.com/lagcraft/statusboard/internal/relay"
	"github.com/lagcraft/statusboard/internal/storage"
	"github.com/lagcraft/statusboard/internal/storage/memory"
	redisstorage "github.com/lagcraft/statusboard/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Store       storage.Store
	StorageType string

	// External dependencies
	Clock clock.Clock

	// Relay
	Hub        *relay.Hub
	Dispatcher *relay.Dispatcher
	WSHandler  *relay.WSHandler
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SeedUsers are created at startup; existing usernames are left alone
	SeedUsers []model.InsertUser
}

// New creates a new application with all dependencies wired. The relay
// hub's event loop is started; call Close on the App to stop it.
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create external dependencies
	clk := clock.New()

	// Create storage based on type
	var store storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New(clk)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig, clk)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	for _, insert := range cfg.SeedUsers {
		if _, err := store.CreateUser(context.Background(), insert); err != nil && !errors.Is(err, model.ErrUsernameTaken) {
			return nil, fmt.Errorf("seeding user %q: %w", insert.Username, err)
		}
	}

	return newWithDependencies(store, storageType, clk, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, storageType string, clk clock.Clock, logger *slog.Logger) *App {
	hub := relay.NewHub(logger)
	dispatcher := relay.NewDispatcher(store, logger)
	wsHandler := relay.NewWSHandler(hub, dispatcher, store, logger)

	go hub.Run()

	return &App{
		Store:       store,
		StorageType: storageType,
		Clock:       clk,
		Hub:         hub,
		Dispatcher:  dispatcher,
		WSHandler:   wsHandler,
	}
}

// Close stops the relay hub and releases storage resources
func (a *App) Close() error {
	a.Hub.Close()
	if closer, ok := a.Store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
