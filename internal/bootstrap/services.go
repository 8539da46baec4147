package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/tpo-portal/tpo-ui-api/config"
	"github.com/tpo-portal/tpo-ui-api/internal/adapters/localstate"
	"github.com/tpo-portal/tpo-ui-api/internal/adapters/redisstate"
	"github.com/tpo-portal/tpo-ui-api/internal/data"
	"github.com/tpo-portal/tpo-ui-api/internal/dispatch"
	"github.com/tpo-portal/tpo-ui-api/internal/gateway"
	"github.com/tpo-portal/tpo-ui-api/internal/genai"
	"github.com/tpo-portal/tpo-ui-api/internal/ports"
	"github.com/tpo-portal/tpo-ui-api/internal/service"
	"github.com/tpo-portal/tpo-ui-api/internal/session"
)

// Container holds the wired application services and their infrastructure
// handles for shutdown.
type Container struct {
	Store      *session.Store
	Dispatcher *dispatch.Dispatcher
	Gateway    ports.AuthGateway
	Postings   *service.PostingService
	Assistant  *genai.Assistant

	DB    *sql.DB
	Redis redis.UniversalClient
}

// BuildServices wires the application graph from configuration. The session
// is restored from persistence before anything can observe it.
func BuildServices(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (*Container, error) {
	c := &Container{}

	state, err := buildStateStore(cfg, logger, c)
	if err != nil {
		return nil, err
	}

	c.Store = session.NewStore(state, logger)

	gw := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.Timeout, c.Store)
	c.Gateway = gw

	c.Dispatcher = dispatch.New(c.Store, gw, logger)
	c.Dispatcher.RestoreSession(ctx)

	gen := genai.NewClient(cfg.GenAI.BaseURL, cfg.GenAI.Model, cfg.GenAI.Timeout, c.Store, logger)
	c.Assistant = genai.NewAssistant(gen)

	db, err := ConnectDB(cfg.Postgres, logger)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.DB = db

	c.Postings = service.NewPostingService(service.PostingServiceOptions{
		Repo:   data.NewPostingRepo(db),
		Logger: logger,
	})

	return c, nil
}

// buildStateStore selects the persistence backend for portal state.
func buildStateStore(cfg config.AppConfig, logger *slog.Logger, c *Container) (ports.StateStore, error) {
	switch cfg.State.Backend {
	case config.StateBackendRedis:
		client, err := ConnectRedis(cfg.Redis, logger)
		if err != nil {
			return nil, fmt.Errorf("state backend redis: %w", err)
		}
		c.Redis = client
		return redisstate.NewWithPrefix(client, cfg.State.RedisPrefix), nil
	default:
		logger.Info("using file state store", "path", cfg.State.FilePath)
		return localstate.New(cfg.State.FilePath), nil
	}
}

// Close releases infrastructure handles. Safe to call on a partially built
// container.
func (c *Container) Close() {
	if c.DB != nil {
		_ = c.DB.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
