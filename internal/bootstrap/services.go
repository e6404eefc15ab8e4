package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hunter-yen/hunter-server/internal/config"
	"github.com/hunter-yen/hunter-server/internal/cooldown"
	"github.com/hunter-yen/hunter-server/internal/crafting"
	"github.com/hunter-yen/hunter-server/internal/drop"
	"github.com/hunter-yen/hunter-server/internal/encounter"
	"github.com/hunter-yen/hunter-server/internal/event"
	"github.com/hunter-yen/hunter-server/internal/eventlog"
	"github.com/hunter-yen/hunter-server/internal/gamedata"
	"github.com/hunter-yen/hunter-server/internal/item"
	"github.com/hunter-yen/hunter-server/internal/itemuse"
	"github.com/hunter-yen/hunter-server/internal/leaderboard"
	"github.com/hunter-yen/hunter-server/internal/mission"
	"github.com/hunter-yen/hunter-server/internal/player"
	"github.com/hunter-yen/hunter-server/internal/server"
	"github.com/hunter-yen/hunter-server/internal/sse"
	"github.com/hunter-yen/hunter-server/internal/utils"
	"github.com/hunter-yen/hunter-server/internal/wordle"
)

// InitializeWordleStore returns a Redis-backed store when REDIS_ADDR is set
// and an in-process LRU otherwise. The client is nil for the LRU store.
func InitializeWordleStore(ctx context.Context, cfg *config.Config) (wordle.Store, *redis.Client, error) {
	if cfg.RedisAddr == "" {
		slog.Info(wordle.LogMsgUsingMemoryGameStore, "ttl", cfg.WordleTTL)
		return wordle.NewMemoryStore(wordle.DefaultMemoryGames, cfg.WordleTTL), nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, RedisPingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectRedis, err)
	}

	slog.Info(LogMsgRedisConnected, "addr", cfg.RedisAddr)
	slog.Info(wordle.LogMsgUsingRedisGameStore, "ttl", cfg.WordleTTL)
	return wordle.NewRedisStore(rdb, cfg.WordleTTL), rdb, nil
}

// ServiceOptions tunes the service graph
type ServiceOptions struct {
	ItemCacheSize   int
	ItemCacheTTL    time.Duration
	SupplyCooldown  time.Duration
	MissionRetryMax int
	RNG             utils.RNG
}

// OptionsFromConfig derives service tuning from the loaded configuration
func OptionsFromConfig(cfg *config.Config) ServiceOptions {
	return ServiceOptions{
		ItemCacheSize:   cfg.ItemCacheSize,
		ItemCacheTTL:    cfg.ItemCacheTTL,
		SupplyCooldown:  cfg.SupplyCooldown,
		MissionRetryMax: cfg.MissionRetryMax,
		RNG:             utils.NewRNG(time.Now().UnixNano()),
	}
}

// App is the wired service graph
type App struct {
	Services server.Services
	Catalog  *item.Catalog
	EventLog eventlog.Service
	Stream   *sse.Hub
}

// BuildServices wires every game service on top of repos
func BuildServices(repos *Repositories, content *gamedata.Content, bus event.Bus, games wordle.Store, opts ServiceOptions) *App {
	rng := opts.RNG
	if rng == nil {
		rng = utils.NewRNG(time.Now().UnixNano())
	}

	catalog := item.NewCatalog(repos.Catalog, opts.ItemCacheSize, opts.ItemCacheTTL)
	updater := player.NewUpdater(repos.Players, opts.MissionRetryMax)

	drops := drop.NewService(repos.Catalog, updater, catalog, rng, bus)
	missions := mission.NewService(repos.Players, repos.Catalog, updater, drops, rng, bus)
	players := player.NewService(repos.Players, missions, bus)
	itemUse := itemuse.NewService(repos.Players, catalog, itemuse.NewDefaultRegistry(), missions, rng, bus)

	gate := cooldown.NewGate(cooldown.Config{
		Intervals: map[string]time.Duration{cooldown.ActionSupply: opts.SupplyCooldown},
	})
	encounters := encounter.NewService(updater, repos.Catalog, catalog, gate, content.Events, rng, bus)

	eventLog := eventlog.NewService(repos.EventLog)
	stream := sse.NewHub()

	return &App{
		Services: server.Services{
			Players:     players,
			Missions:    missions,
			Catalog:     catalog,
			ItemUse:     itemUse,
			Crafting:    crafting.NewService(catalog, updater, bus),
			Drops:       drops,
			Encounters:  encounters,
			Wordle:      wordle.NewService(repos.Players, missions, games, content.Wordle, rng, bus),
			Leaderboard: leaderboard.NewService(repos.Players),
			History:     eventLog,
			Stream:      stream,
		},
		Catalog:  catalog,
		EventLog: eventLog,
		Stream:   stream,
	}
}
