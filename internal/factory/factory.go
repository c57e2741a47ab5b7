package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/PauPin2013/Connect4/internal/dependencies/clock"
	"github.com/PauPin2013/Connect4/internal/dependencies/random"
	"github.com/PauPin2013/Connect4/internal/services/auth"
	"github.com/PauPin2013/Connect4/internal/services/board"
	"github.com/PauPin2013/Connect4/internal/services/bot"
	"github.com/PauPin2013/Connect4/internal/services/offline"
	"github.com/PauPin2013/Connect4/internal/services/session"
	"github.com/PauPin2013/Connect4/internal/services/vocabulary"
	"github.com/PauPin2013/Connect4/internal/storage"
	"github.com/PauPin2013/Connect4/internal/storage/memory"
	redisstorage "github.com/PauPin2013/Connect4/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Delay before the bot replies in a local game, so the move feels played
// rather than instantaneous
const defaultBotThinkDelay = 400 * time.Millisecond

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	VocabularyService *vocabulary.Service
	BoardService      *board.Service
	BotStrategy       bot.Strategy
	GameController    *session.Controller
	GameWatcher       *session.Watcher
	OfflineController *offline.Controller
	AuthService       *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// BotThinkDelay is how long the bot waits before replying in a
	// local game. Zero means the default; tests pass a negative value
	// through newWithDependencies instead.
	BotThinkDelay time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	thinkDelay := cfg.BotThinkDelay
	if thinkDelay == 0 {
		thinkDelay = defaultBotThinkDelay
	}

	return newWithDependencies(store, clk, rnd, authCfg, thinkDelay, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	botThinkDelay time.Duration,
	logger *slog.Logger,
) *App {
	// Create services
	vocabService := vocabulary.New(store)
	boardService := board.New()
	strategy := bot.NewHeuristicStrategy(rnd)
	gameController := session.NewController(store, boardService, vocabService, clk, rnd, logger)
	gameWatcher := session.NewWatcher(store, logger)
	offlineController := offline.NewController(boardService, strategy, botThinkDelay, logger)
	authService := auth.New(store, clk, authCfg)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		VocabularyService: vocabService,
		BoardService:      boardService,
		BotStrategy:       strategy,
		GameController:    gameController,
		GameWatcher:       gameWatcher,
		OfflineController: offlineController,
		AuthService:       authService,
	}
}
