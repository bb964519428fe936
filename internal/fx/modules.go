package fx

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"league-tracker/internal/config"
	"league-tracker/internal/database"
	"league-tracker/internal/feed"
	"league-tracker/internal/logger"
	"league-tracker/internal/repository"
	"league-tracker/internal/server"
	"league-tracker/internal/service"
)

func provideServer(svc *service.LeaderboardService, log zerolog.Logger) *server.Server {
	return server.New(svc, log)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// feed + persistence
	fx.Provide(feed.NewClient),
	fx.Provide(repository.NewSnapshotRepository),
	// svc
	fx.Provide(service.NewLeaderboardService),
	// server
	fx.Provide(provideServer),
)
